package store

import (
	"errors"
	"log"
	"sync"

	"backend/entity"
)

// ErrDuplicateID signals an id collision on AddReport. Under correct UUID
// generation it never happens, so callers treat it as an invariant violation
// rather than a recoverable user error.
var ErrDuplicateID = errors.New("report id already exists")

type EventType string

const (
	EventAdded   EventType = "added"
	EventUpdated EventType = "updated"
)

// Event carries a snapshot of the report after the mutation was applied.
type Event struct {
	Type   EventType
	Report entity.CrimeReport
}

// Archive is the optional write-through persistence behind the store.
// The in-memory collection stays authoritative; archive failures are
// logged and never surfaced to consumers.
type Archive interface {
	LoadAll() ([]entity.CrimeReport, error)
	Save(r *entity.CrimeReport) error
	Update(r *entity.CrimeReport) error
}

// Patch is a targeted partial update. ID and Timestamp are deliberately
// not representable here, so they can never be overwritten.
type Patch struct {
	Status      *entity.ReportStatus
	AdminNotes  *string
	ContactInfo *entity.ContactInfo
	IsAtScene   *bool
}

// ReportStore is the single source of truth for the report collection.
// Reads return copies, so concurrently rendered views never observe a
// half-written report.
type ReportStore struct {
	mu        sync.RWMutex
	reports   []entity.CrimeReport
	index     map[string]int // id -> position in reports
	listeners []func(Event)
	archive   Archive
}

func New() *ReportStore {
	return &ReportStore{index: make(map[string]int)}
}

// NewWithArchive hydrates the store from the archive and writes through on
// every mutation afterwards.
func NewWithArchive(a Archive) (*ReportStore, error) {
	s := New()
	s.archive = a
	existing, err := a.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if _, dup := s.index[r.ID]; dup {
			log.Printf("store: skipping duplicate archived report %s", r.ID)
			continue
		}
		s.index[r.ID] = len(s.reports)
		s.reports = append(s.reports, r)
	}
	return s, nil
}

// OnChange registers a listener invoked after every successful mutation.
// Listeners receive snapshots and must not call back into the store's
// write path from the same goroutine chain.
func (s *ReportStore) OnChange(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// ListReports returns a copy of the full collection in insertion order.
func (s *ReportStore) ListReports() []entity.CrimeReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.CrimeReport, len(s.reports))
	copy(out, s.reports)
	return out
}

// Get returns a copy of the report with the given id.
func (s *ReportStore) Get(id string) (entity.CrimeReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return entity.CrimeReport{}, false
	}
	return s.reports[i], true
}

// AddReport appends a fully-validated report. The store performs no domain
// validation; it only enforces id uniqueness.
func (s *ReportStore) AddReport(r entity.CrimeReport) error {
	s.mu.Lock()
	if _, exists := s.index[r.ID]; exists {
		s.mu.Unlock()
		log.Printf("store: invariant violation: duplicate report id %s", r.ID)
		return ErrDuplicateID
	}
	s.index[r.ID] = len(s.reports)
	s.reports = append(s.reports, r)
	// Persist before unlocking: rehydration reads the archive back in
	// insert order, so archive writes must follow memory order.
	if s.archive != nil {
		if err := s.archive.Save(&r); err != nil {
			log.Printf("store: archive save failed for %s: %v", r.ID, err)
		}
	}
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.notify(listeners, Event{Type: EventAdded, Report: r})
	return nil
}

// UpdateReport merges the patch into the report matching id. A missing id
// is a silent no-op from the collection's point of view; the returned bool
// lets the API boundary answer 404 while the store itself never fails.
func (s *ReportStore) UpdateReport(id string, p Patch) (entity.CrimeReport, bool) {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		log.Printf("store: update for unknown report id %s ignored", id)
		return entity.CrimeReport{}, false
	}
	r := &s.reports[i]
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.AdminNotes != nil {
		r.AdminNotes = *p.AdminNotes
	}
	if p.ContactInfo != nil {
		ci := *p.ContactInfo
		r.ContactInfo = &ci
	}
	if p.IsAtScene != nil {
		r.IsAtScene = *p.IsAtScene
	}
	updated := *r
	if s.archive != nil {
		if err := s.archive.Update(&updated); err != nil {
			log.Printf("store: archive update failed for %s: %v", id, err)
		}
	}
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.notify(listeners, Event{Type: EventUpdated, Report: updated})
	return updated, true
}

// Count returns the current number of reports.
func (s *ReportStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

func (s *ReportStore) snapshotListeners() []func(Event) {
	out := make([]func(Event), len(s.listeners))
	copy(out, s.listeners)
	return out
}

func (s *ReportStore) notify(listeners []func(Event), ev Event) {
	for _, fn := range listeners {
		fn(ev)
	}
}
