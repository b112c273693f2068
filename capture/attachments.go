package capture

import "sync"

// attachment tracks one preview item and the transient resource behind it.
type attachment struct {
	Name     string
	MIME     string
	release  func()
	released bool
}

// AttachmentSet manages the per-item lifecycle of media attachments:
// attached (resource created) -> removed (resource released). Items are
// independent of the audio session and of each other; every release
// function runs exactly once, whether through Remove, ReleaseAll after a
// successful submission, or teardown.
type AttachmentSet struct {
	mu    sync.Mutex
	items []*attachment
}

func NewAttachmentSet() *AttachmentSet {
	return &AttachmentSet{}
}

// Add registers an attachment and returns its current position.
// release may be nil when the item holds no transient resource.
func (s *AttachmentSet) Add(name, mime string, release func()) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, &attachment{Name: name, MIME: mime, release: release})
	return len(s.items) - 1
}

// Remove releases the item at index i and drops it from the set.
func (s *AttachmentSet) Remove(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.items) {
		return false
	}
	s.items[i].free()
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

func (s *AttachmentSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ReleaseAll releases every remaining item and empties the set.
func (s *AttachmentSet) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		it.free()
	}
	s.items = nil
}

func (a *attachment) free() {
	if a.released {
		return
	}
	a.released = true
	if a.release != nil {
		a.release()
	}
}
