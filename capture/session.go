package capture

import (
	"fmt"
	"sync"
	"time"

	"backend/utils"
)

// DefaultMaxDuration is the forced-stop limit for one recording.
const DefaultMaxDuration = 300 * time.Second

type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateCaptured
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateCaptured:
		return "captured"
	default:
		return "unknown"
	}
}

// Audio is one finalized, immutable recording.
type Audio struct {
	MIME string
	Data []byte
}

// DataURL encodes the recording the way it is persisted on a report.
func (a *Audio) DataURL() string {
	return utils.DataURL(a.MIME, a.Data)
}

// Session drives one recording lifecycle:
//
//	Idle -> Start -> Recording -> Stop -> Captured -> Delete -> Idle
//
// Re-recording from Captured is allowed; Start while Recording is a
// deterministic error so a second device acquisition can never slip
// through. Recording force-stops after maxDuration.
type Session struct {
	mu      sync.Mutex
	device  AudioCaptureDevice
	state   SessionState
	audio   *Audio
	maxDur  time.Duration
	started time.Time
	timer   *time.Timer
	mime    string

	// Chunk delivery has its own lock: devices may call onChunk
	// synchronously from inside Start or Stop, while the session holds mu.
	chunkMu   sync.Mutex
	accepting bool
	chunks    [][]byte
}

func NewSession(device AudioCaptureDevice, maxDuration time.Duration) *Session {
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDuration
	}
	return &Session{
		device: device,
		maxDur: maxDuration,
		mime:   "audio/webm",
	}
}

// Start acquires the device and begins buffering chunks. On a device or
// permission failure the session stays in its previous state.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return ErrAlreadyRecording
	}
	// A re-record discards the previous capture. Accepting opens before
	// the device starts so a chunk delivered from inside Start is kept.
	s.chunkMu.Lock()
	s.accepting = true
	s.chunks = nil
	s.chunkMu.Unlock()
	if err := s.device.Start(s.onChunk); err != nil {
		s.chunkMu.Lock()
		s.accepting = false
		s.chunks = nil
		s.chunkMu.Unlock()
		return fmt.Errorf("start recording: %w", err)
	}
	s.audio = nil
	s.state = StateRecording
	s.started = time.Now()
	s.timer = time.AfterFunc(s.maxDur, s.autoStop)
	return nil
}

func (s *Session) onChunk(b []byte) {
	s.chunkMu.Lock()
	defer s.chunkMu.Unlock()
	if !s.accepting {
		return
	}
	buf := make([]byte, len(b))
	copy(buf, b)
	s.chunks = append(s.chunks, buf)
}

// Stop finalizes the buffered chunks into one immutable Audio and releases
// the device.
func (s *Session) Stop() (*Audio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked()
}

func (s *Session) stopLocked() (*Audio, error) {
	if s.state != StateRecording {
		return nil, ErrNoRecording
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	// Keep accepting chunks through Stop itself, so a device flushing its
	// buffer on release still lands in the capture.
	stopErr := s.device.Stop()
	s.chunkMu.Lock()
	s.accepting = false
	chunks := s.chunks
	s.chunks = nil
	s.chunkMu.Unlock()

	var size int
	for _, c := range chunks {
		size += len(c)
	}
	data := make([]byte, 0, size)
	for _, c := range chunks {
		data = append(data, c...)
	}
	s.audio = &Audio{MIME: s.mime, Data: data}
	s.state = StateCaptured

	if stopErr != nil {
		return s.audio, fmt.Errorf("release device: %w", stopErr)
	}
	return s.audio, nil
}

// The forced stop at maxDuration is a cancellation, not an error.
func (s *Session) autoStop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.stopLocked()
}

// Delete discards the captured audio and returns the session to Idle.
func (s *Session) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCaptured {
		return ErrNothingCaptured
	}
	s.audio = nil
	s.state = StateIdle
	return nil
}

// Audio returns the captured recording, or nil outside Captured.
func (s *Session) Audio() *Audio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audio
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Elapsed reports how long the current recording has been running.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording {
		return 0
	}
	return time.Since(s.started)
}

// Close tears the session down from any state: an in-flight recording is
// stopped and the device released, captured audio is discarded. Safe to
// call more than once; this is the navigation-away contract.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRecording {
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
		_ = s.device.Stop()
	}
	s.chunkMu.Lock()
	s.accepting = false
	s.chunks = nil
	s.chunkMu.Unlock()
	s.audio = nil
	s.state = StateIdle
}
