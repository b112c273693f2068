package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachmentReleasedExactlyOnceOnRemove(t *testing.T) {
	s := NewAttachmentSet()
	released := 0
	i := s.Add("photo.png", "image/png", func() { released++ })

	assert.True(t, s.Remove(i))
	assert.Equal(t, 1, released)
	assert.Equal(t, 0, s.Len())

	s.ReleaseAll()
	assert.Equal(t, 1, released, "release must never run twice")
}

func TestReleaseAllCoversRemainingItems(t *testing.T) {
	s := NewAttachmentSet()
	released := make(map[string]int)
	s.Add("a.png", "image/png", func() { released["a"]++ })
	s.Add("b.mp4", "video/mp4", func() { released["b"]++ })
	s.Add("c.png", "image/png", nil) // no transient resource

	s.Remove(0)
	s.ReleaseAll()

	assert.Equal(t, 1, released["a"])
	assert.Equal(t, 1, released["b"])
	assert.Equal(t, 0, s.Len())

	// Teardown twice is harmless.
	s.ReleaseAll()
	assert.Equal(t, 1, released["b"])
}

func TestRemoveOutOfRange(t *testing.T) {
	s := NewAttachmentSet()
	assert.False(t, s.Remove(0))
	assert.False(t, s.Remove(-1))
}
