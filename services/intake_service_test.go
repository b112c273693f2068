package services

import (
	"context"
	"testing"
	"time"

	"backend/capture"
	"backend/configs"
	"backend/entity"
	"backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *configs.Config {
	return &configs.Config{
		CityCenterLat:      9.0765,
		CityCenterLng:      7.3986,
		DefaultPhoneRegion: "NG",
	}
}

func newIntake(t *testing.T) (*IntakeService, *store.ReportStore) {
	t.Helper()
	st := store.New()
	return NewIntakeService(st, testConfig()), st
}

func validSubmission() Submission {
	return Submission{
		Title:       "Armed robbery",
		Description: "Two men robbed a store at gunpoint",
		Location:    "Lagos",
		CrimeType:   "Armed Robbery",
		CrimeDate:   time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
		CrimeTime:   "14:30",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Fields
}

func TestSubmitValidReport(t *testing.T) {
	svc, st := newIntake(t)

	report, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, entity.StatusPending, report.Status)
	assert.False(t, report.Timestamp.IsZero())
	assert.Equal(t, "Armed robbery", report.Title)
	assert.True(t, report.CrimeDateTime.Before(report.Timestamp))
	assert.Nil(t, report.ContactInfo)

	list := st.ListReports()
	require.Len(t, list, 1)
	assert.Equal(t, report.ID, list[0].ID)
}

func TestSubmitRejectsEmptyTitle(t *testing.T) {
	svc, st := newIntake(t)
	sub := validSubmission()
	sub.Title = "   "

	_, err := svc.Submit(context.Background(), sub)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "title")
	assert.Zero(t, st.Count(), "no partial state may reach the store")
}

func TestSubmitRejectsUnknownCrimeType(t *testing.T) {
	svc, _ := newIntake(t)

	sub := validSubmission()
	sub.CrimeType = ""
	fields := fieldsOf(t, mustErr(t, svc, sub))
	assert.Contains(t, fields, "crimeType")

	sub.CrimeType = "Jaywalking"
	fields = fieldsOf(t, mustErr(t, svc, sub))
	assert.Contains(t, fields, "crimeType")
}

func TestAudioSubstitutesForDescription(t *testing.T) {
	svc, st := newIntake(t)
	sub := validSubmission()
	sub.Description = ""

	// Without audio the submission is rejected.
	fields := fieldsOf(t, mustErr(t, svc, sub))
	assert.Contains(t, fields, "description")

	// With an audio recording it is accepted.
	sub.Audio = "data:audio/webm;base64,UklGRg=="
	report, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, sub.Audio, report.Audio)
	assert.Equal(t, 1, st.Count())
}

func TestSubmitRejectsEmptyLocation(t *testing.T) {
	svc, _ := newIntake(t)
	sub := validSubmission()
	sub.Location = ""
	assert.Contains(t, fieldsOf(t, mustErr(t, svc, sub)), "location")
}

func TestSubmitRejectsMissingOrFutureDate(t *testing.T) {
	svc, _ := newIntake(t)

	sub := validSubmission()
	sub.CrimeDate = ""
	assert.Contains(t, fieldsOf(t, mustErr(t, svc, sub)), "crimeDateTime")

	sub = validSubmission()
	sub.CrimeDate = time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	assert.Contains(t, fieldsOf(t, mustErr(t, svc, sub)), "crimeDateTime")
}

func TestContactRulesWhenUpdatesWanted(t *testing.T) {
	svc, _ := newIntake(t)

	sub := validSubmission()
	sub.WantsUpdate = true
	assert.Contains(t, fieldsOf(t, mustErr(t, svc, sub)), "contactInfo")

	sub.Email = "not-an-email"
	assert.Contains(t, fieldsOf(t, mustErr(t, svc, sub)), "email")

	sub.Email = ""
	sub.Phone = "12345"
	assert.Contains(t, fieldsOf(t, mustErr(t, svc, sub)), "phone")

	sub.Phone = "0803-123-4567 ext" // strips to 10 digits
	report, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	require.NotNil(t, report.ContactInfo)
	assert.True(t, report.WantsUpdate)
	assert.NotEmpty(t, report.ContactInfo.Phone)
}

func TestAllViolationsReportedTogether(t *testing.T) {
	svc, _ := newIntake(t)
	fields := fieldsOf(t, mustErr(t, svc, Submission{}))
	for _, f := range []string{"title", "crimeType", "description", "location", "crimeDateTime"} {
		assert.Contains(t, fields, f)
	}
}

func TestCoordinateFallbackNearCityCenter(t *testing.T) {
	svc, _ := newIntake(t)
	svc.randFloat = func() float64 { return 1.0 } // worst-case offset

	report, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.InDelta(t, 9.0765, report.Coordinates.Lat, 0.051)
	assert.InDelta(t, 7.3986, report.Coordinates.Lng, 0.051)
}

func TestExplicitCoordinatesUsedAsIs(t *testing.T) {
	svc, _ := newIntake(t)
	lat, lng := 6.5244, 3.3792
	sub := validSubmission()
	sub.Lat, sub.Lng = &lat, &lng

	report, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, entity.Coordinates{Lat: lat, Lng: lng}, report.Coordinates)
}

func TestRequireGeolocationRejectsMissingCoordinates(t *testing.T) {
	st := store.New()
	cfg := testConfig()
	cfg.RequireGeolocation = true
	svc := NewIntakeService(st, cfg)

	assert.Contains(t, fieldsOf(t, mustErr(t, svc, validSubmission())), "coordinates")
}

func TestSubmitRejectsMalformedEncodedMedia(t *testing.T) {
	svc, _ := newIntake(t)
	sub := validSubmission()
	sub.Media = []string{"not a data url"}
	assert.Contains(t, fieldsOf(t, mustErr(t, svc, sub)), "media")
}

func TestSuccessfulSubmitReleasesCaptureResources(t *testing.T) {
	svc, _ := newIntake(t)

	dev := &stubDevice{}
	session := capture.NewSession(dev, 0)
	require.NoError(t, session.Start())
	dev.emit([]byte("voice note"))
	_, err := session.Stop()
	require.NoError(t, err)

	attachments := capture.NewAttachmentSet()
	released := 0
	attachments.Add("preview.png", "image/png", func() { released++ })

	sub := validSubmission()
	sub.Description = ""
	sub.Capture = session
	sub.Attachments = attachments

	report, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.NotEmpty(t, report.Audio, "captured audio must be encoded onto the report")

	assert.Equal(t, capture.StateIdle, session.State())
	assert.Equal(t, 1, released)
	assert.Equal(t, 0, attachments.Len())
}

func TestFailedSubmitKeepsCaptureResources(t *testing.T) {
	svc, _ := newIntake(t)

	dev := &stubDevice{}
	session := capture.NewSession(dev, 0)
	require.NoError(t, session.Start())
	dev.emit([]byte("voice note"))
	_, err := session.Stop()
	require.NoError(t, err)

	sub := validSubmission()
	sub.Title = "" // force rejection
	sub.Capture = session

	_, err = svc.Submit(context.Background(), sub)
	require.Error(t, err)
	assert.Equal(t, capture.StateCaptured, session.State(), "the reporter can fix the form and retry")
}

func TestTriageLifecycle(t *testing.T) {
	svc, st := newIntake(t)

	sub := validSubmission()
	sub.Location = "Lagos"
	report, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, report.Status)

	investigating := entity.StatusInvestigating
	updated, found := st.UpdateReport(report.ID, store.Patch{Status: &investigating})
	require.True(t, found)
	assert.Equal(t, entity.StatusInvestigating, updated.Status)

	resolved := entity.StatusResolved
	updated, found = st.UpdateReport(report.ID, store.Patch{Status: &resolved})
	require.True(t, found)
	assert.Equal(t, entity.StatusResolved, updated.Status)
}

func mustErr(t *testing.T, svc *IntakeService, sub Submission) error {
	t.Helper()
	_, err := svc.Submit(context.Background(), sub)
	require.Error(t, err)
	return err
}

// stubDevice is a minimal AudioCaptureDevice for intake tests.
type stubDevice struct {
	onChunk func([]byte)
}

func (d *stubDevice) Start(onChunk func([]byte)) error {
	d.onChunk = onChunk
	return nil
}

func (d *stubDevice) Stop() error { return nil }

func (d *stubDevice) emit(b []byte) {
	if d.onChunk != nil {
		d.onChunk(b)
	}
}
