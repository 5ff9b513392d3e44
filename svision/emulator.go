package svision

import (
	"github.com/valerio/go-svision/svision/input/action"
	"github.com/valerio/go-svision/svision/video"
)

// Emulator is the interface backends and drivers program against.
type Emulator interface {
	// RunUntilFrame advances emulation by exactly one video frame.
	RunUntilFrame() error

	// GetCurrentFrame returns the most recently composed frame.
	GetCurrentFrame() *video.FrameBuffer

	// HandleAction applies a logical input transition.
	HandleAction(act action.Action, pressed bool)
}

var _ Emulator = (*Supervision)(nil)
