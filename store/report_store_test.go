package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"backend/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(id string) entity.CrimeReport {
	return entity.CrimeReport{
		ID:            id,
		Title:         "Armed robbery",
		Description:   "Robbery at a convenience store",
		Location:      "Lagos, Nigeria",
		CrimeType:     "Armed Robbery",
		Timestamp:     time.Now(),
		CrimeDateTime: time.Now().Add(-24 * time.Hour),
		Status:        entity.StatusPending,
		Coordinates:   entity.Coordinates{Lat: 6.5244, Lng: 3.3792},
	}
}

func TestAddReportAppearsExactlyOnce(t *testing.T) {
	s := New()
	r := sampleReport("r1")
	require.NoError(t, s.AddReport(r))

	list := s.ListReports()
	require.Len(t, list, 1)
	assert.Equal(t, "r1", list[0].ID)
	assert.Equal(t, entity.StatusPending, list[0].Status)
	assert.False(t, list[0].Timestamp.IsZero())
}

func TestAddReportPreservesInsertionOrder(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.AddReport(sampleReport(fmt.Sprintf("r%d", i))))
	}
	list := s.ListReports()
	require.Len(t, list, 5)
	for i, r := range list {
		assert.Equal(t, fmt.Sprintf("r%d", i), r.ID)
	}
}

func TestAddReportRejectsDuplicateID(t *testing.T) {
	s := New()
	require.NoError(t, s.AddReport(sampleReport("dup")))
	err := s.AddReport(sampleReport("dup"))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, s.Count())
}

func TestUpdateReportStatusOnly(t *testing.T) {
	s := New()
	require.NoError(t, s.AddReport(sampleReport("r1")))
	before, _ := s.Get("r1")

	status := entity.StatusInvestigating
	updated, found := s.UpdateReport("r1", Patch{Status: &status})
	require.True(t, found)
	assert.Equal(t, entity.StatusInvestigating, updated.Status)

	// Everything else unchanged.
	assert.Equal(t, before.ID, updated.ID)
	assert.Equal(t, before.Title, updated.Title)
	assert.Equal(t, before.Timestamp, updated.Timestamp)
	assert.Equal(t, before.CrimeDateTime, updated.CrimeDateTime)
	assert.Equal(t, before.Coordinates, updated.Coordinates)
}

func TestUpdateReportIsIdempotent(t *testing.T) {
	s := New()
	require.NoError(t, s.AddReport(sampleReport("r1")))

	status := entity.StatusResolved
	first, found := s.UpdateReport("r1", Patch{Status: &status})
	require.True(t, found)
	second, found := s.UpdateReport("r1", Patch{Status: &status})
	require.True(t, found)
	assert.Equal(t, first, second)
}

func TestUpdateReportMissingIDIsNoOp(t *testing.T) {
	s := New()
	require.NoError(t, s.AddReport(sampleReport("r1")))
	before := s.ListReports()

	status := entity.StatusResolved
	_, found := s.UpdateReport("missing", Patch{Status: &status})
	assert.False(t, found)
	assert.Equal(t, before, s.ListReports())
}

func TestListReportsReturnsSnapshot(t *testing.T) {
	s := New()
	require.NoError(t, s.AddReport(sampleReport("r1")))

	list := s.ListReports()
	list[0].Title = "tampered"

	fresh, _ := s.Get("r1")
	assert.Equal(t, "Armed robbery", fresh.Title)
}

func TestOnChangeEvents(t *testing.T) {
	s := New()
	var mu sync.Mutex
	var events []Event
	s.OnChange(func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	require.NoError(t, s.AddReport(sampleReport("r1")))
	status := entity.StatusInvestigating
	s.UpdateReport("r1", Patch{Status: &status})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 2)
	assert.Equal(t, EventAdded, events[0].Type)
	assert.Equal(t, "r1", events[0].Report.ID)
	assert.Equal(t, EventUpdated, events[1].Type)
	assert.Equal(t, entity.StatusInvestigating, events[1].Report.Status)
}

func TestConcurrentReadersNeverSeePartialWrites(t *testing.T) {
	s := New()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = s.AddReport(sampleReport(fmt.Sprintf("r%d", i)))
		}
	}()

	for i := 0; i < 50; i++ {
		for _, r := range s.ListReports() {
			// Every observed report is complete.
			assert.NotEmpty(t, r.ID)
			assert.NotEmpty(t, r.Title)
		}
	}
	<-done
	assert.Equal(t, 200, s.Count())
}

func TestAdminAnnotationPatch(t *testing.T) {
	s := New()
	require.NoError(t, s.AddReport(sampleReport("r1")))

	notes := "cross-checked with patrol logs"
	updated, found := s.UpdateReport("r1", Patch{AdminNotes: &notes})
	require.True(t, found)
	assert.Equal(t, notes, updated.AdminNotes)
	assert.Equal(t, entity.StatusPending, updated.Status)
}
