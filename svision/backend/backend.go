// Package backend defines the presentation surface for the emulator:
// rendering frames and translating platform input into actions.
package backend

import (
	"github.com/valerio/go-svision/svision/input"
	"github.com/valerio/go-svision/svision/video"
)

// Backend represents a complete emulator platform (rendering + input).
// Backends are responsible for:
//   - Rendering frames to their specific output (terminal, headless, etc.)
//   - Translating platform-specific input events to Actions via the
//     InputManager
type Backend interface {
	// Init configures the backend. Required before calling Update.
	Init(config Config) error

	// Update renders the frame and processes platform events, forwarding
	// recognized input to the InputManager.
	Update(frame *video.FrameBuffer) error

	// Cleanup releases resources when shutting down.
	Cleanup() error
}

// Config holds configuration for backends.
type Config struct {
	Title string
	Scale int

	// InputManager receives translated input actions.
	InputManager *input.Manager

	// OnQuit is invoked when the backend requests shutdown.
	OnQuit func()
}
