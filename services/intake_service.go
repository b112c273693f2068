package services

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"time"

	"backend/capture"
	"backend/configs"
	"backend/entity"
	"backend/store"
	"backend/utils"

	"github.com/google/uuid"
)

var emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidationError carries every violated intake rule, keyed by field, in
// user-facing language. It is reported inline and never persists partial
// state to the store.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Submission is the citizen-entered form state handed to Submit.
type Submission struct {
	Title       string
	Description string
	Location    string
	CrimeType   string
	CrimeDate   string // "2006-01-02"
	CrimeTime   string // "15:04"; empty means midday
	IsAtScene   bool

	WantsUpdate bool
	Email       string
	Phone       string

	// Media either arrives pre-encoded (data URLs) or as raw attachments
	// that Submit encodes in original order.
	Media       []string
	MediaInputs []capture.Input

	// Audio either arrives pre-encoded or is taken from a capture session
	// in the Captured state.
	Audio   string
	Capture *capture.Session

	// Attachments tracks transient preview resources; released on
	// successful submission along with the capture session.
	Attachments *capture.AttachmentSet

	Lat *float64
	Lng *float64
}

// IntakeService validates citizen submissions, assembles CrimeReports and
// hands them to the store.
type IntakeService struct {
	store *store.ReportStore
	cfg   *configs.Config

	now       func() time.Time
	randFloat func() float64
}

func NewIntakeService(st *store.ReportStore, cfg *configs.Config) *IntakeService {
	return &IntakeService{
		store:     st,
		cfg:       cfg,
		now:       time.Now,
		randFloat: rand.Float64,
	}
}

// Submit runs the validation rules, encodes attachments, appends the report
// to the store and releases the submission's capture resources. On any
// failure nothing reaches the store and the form keeps its state so the
// reporter can retry.
func (s *IntakeService) Submit(ctx context.Context, sub Submission) (*entity.CrimeReport, error) {
	if fields := s.validate(sub); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	media := append([]string(nil), sub.Media...)
	if len(sub.MediaInputs) > 0 {
		encoded, err := capture.EncodeAll(ctx, sub.MediaInputs)
		if err != nil {
			return nil, err
		}
		media = append(media, encoded...)
	}

	audio := sub.Audio
	if audio == "" && sub.Capture != nil {
		if a := sub.Capture.Audio(); a != nil {
			audio = a.DataURL()
		}
	}

	when, _ := s.combineDateTime(sub)

	var contact *entity.ContactInfo
	if sub.WantsUpdate {
		contact = &entity.ContactInfo{Email: strings.TrimSpace(sub.Email)}
		if strings.TrimSpace(sub.Phone) != "" {
			contact.Phone = utils.CanonicalPhone(sub.Phone, s.cfg.DefaultPhoneRegion)
		}
	}

	report := entity.CrimeReport{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(sub.Title),
		Description:   strings.TrimSpace(sub.Description),
		Location:      strings.TrimSpace(sub.Location),
		CrimeType:     sub.CrimeType,
		Timestamp:     s.now(),
		CrimeDateTime: when,
		IsAtScene:     sub.IsAtScene,
		Status:        entity.StatusPending,
		Media:         media,
		Audio:         audio,
		WantsUpdate:   sub.WantsUpdate,
		ContactInfo:   contact,
		Coordinates:   s.resolveCoordinates(sub),
	}

	if err := s.store.AddReport(report); err != nil {
		return nil, err
	}

	s.release(sub)
	return &report, nil
}

// validate collects every violated rule so they can all be reported at
// once; each rule is independently testable.
func (s *IntakeService) validate(sub Submission) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(sub.Title) == "" {
		fields["title"] = "Title is required"
	}

	if sub.CrimeType == "" {
		fields["crimeType"] = "Crime type is required"
	} else if !entity.ValidCrimeType(sub.CrimeType) {
		fields["crimeType"] = "Unknown crime type"
	}

	if strings.TrimSpace(sub.Description) == "" && !s.hasAudio(sub) {
		fields["description"] = "Description or an audio recording is required"
	}

	if strings.TrimSpace(sub.Location) == "" {
		fields["location"] = "Location is required"
	}

	if when, err := s.combineDateTime(sub); err != nil {
		fields["crimeDateTime"] = "Date of crime is required"
	} else if when.After(s.now()) {
		fields["crimeDateTime"] = "Date of crime cannot be in the future"
	}

	if sub.WantsUpdate {
		email := strings.TrimSpace(sub.Email)
		phone := strings.TrimSpace(sub.Phone)
		if email != "" && !emailRe.MatchString(email) {
			fields["email"] = "Invalid email address"
		}
		if phone != "" {
			digits := utils.NormalizePhone(phone)
			if len(digits) < 10 || len(digits) > 15 {
				fields["phone"] = "Invalid phone number"
			}
		}
		if email == "" && phone == "" {
			fields["contactInfo"] = "At least one contact method is required"
		}
	}

	for _, m := range sub.Media {
		if _, _, err := utils.DecodeDataURL(m); err != nil {
			fields["media"] = "Attached media is not valid encoded content"
			break
		}
	}
	if sub.Audio != "" {
		if _, _, err := utils.DecodeDataURL(sub.Audio); err != nil {
			fields["audio"] = "Attached audio is not valid encoded content"
		}
	}

	if s.cfg.RequireGeolocation && (sub.Lat == nil || sub.Lng == nil) {
		fields["coordinates"] = "A precise location is required"
	}

	return fields
}

func (s *IntakeService) hasAudio(sub Submission) bool {
	if sub.Audio != "" {
		return true
	}
	return sub.Capture != nil && sub.Capture.Audio() != nil
}

// combineDateTime merges the selected date with the time-of-day field.
func (s *IntakeService) combineDateTime(sub Submission) (time.Time, error) {
	if strings.TrimSpace(sub.CrimeDate) == "" {
		return time.Time{}, fmt.Errorf("missing crime date")
	}
	day, err := time.ParseInLocation("2006-01-02", sub.CrimeDate, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	tod := sub.CrimeTime
	if strings.TrimSpace(tod) == "" {
		tod = "12:00"
	}
	clock, err := time.Parse("15:04", tod)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local), nil
}

// resolveCoordinates uses the supplied pair when present; otherwise it
// synthesizes a point near the configured city centre. The fallback only
// runs when RequireGeolocation is off (validation rejects the absence
// otherwise).
func (s *IntakeService) resolveCoordinates(sub Submission) entity.Coordinates {
	if sub.Lat != nil && sub.Lng != nil {
		return entity.Coordinates{Lat: *sub.Lat, Lng: *sub.Lng}
	}
	return entity.Coordinates{
		Lat: s.cfg.CityCenterLat + (s.randFloat()-0.5)*0.1,
		Lng: s.cfg.CityCenterLng + (s.randFloat()-0.5)*0.1,
	}
}

// release frees the transient resources owned by a submission after the
// report has been handed to the store.
func (s *IntakeService) release(sub Submission) {
	if sub.Capture != nil {
		sub.Capture.Close()
	}
	if sub.Attachments != nil {
		sub.Attachments.ReleaseAll()
	}
}
