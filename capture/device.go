package capture

import "errors"

// Device and permission failures. Both are user-recoverable: recording
// simply does not start and the reporter can fall back to a written
// description.
var (
	ErrPermissionDenied  = errors.New("microphone permission denied")
	ErrDeviceUnavailable = errors.New("no audio input device available")
)

// Session misuse errors.
var (
	ErrAlreadyRecording = errors.New("a recording is already in progress")
	ErrNoRecording      = errors.New("no recording in progress")
	ErrNothingCaptured  = errors.New("no captured audio to delete")
)

// AudioCaptureDevice abstracts the runtime microphone API so the intake
// flow and its tests never depend on concrete hardware. Start must begin
// delivering chunks to onChunk until Stop releases the device. Delivery
// may be synchronous: a device is allowed to call onChunk from inside
// Start or Stop, e.g. when flushing its buffer on release.
type AudioCaptureDevice interface {
	Start(onChunk func([]byte)) error
	Stop() error
}
