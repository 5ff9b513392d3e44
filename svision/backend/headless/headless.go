// Package headless runs the emulator without a display, for automated
// testing and batch processing.
package headless

import (
	"log/slog"
	"os"

	"github.com/valerio/go-svision/svision/backend"
	"github.com/valerio/go-svision/svision/video"
)

// Backend counts frames and requests shutdown after a fixed number.
type Backend struct {
	config     backend.Config
	frameCount int
	maxFrames  int
}

func New(maxFrames int) *Backend {
	return &Backend{maxFrames: maxFrames}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(handler))

	slog.Info("Running headless mode", "frames", h.maxFrames)
	return nil
}

func (h *Backend) Update(frame *video.FrameBuffer) error {
	h.frameCount++

	if h.frameCount%60 == 0 {
		slog.Debug("Headless progress", "frame", h.frameCount, "of", h.maxFrames)
	}

	if h.frameCount >= h.maxFrames && h.config.OnQuit != nil {
		h.config.OnQuit()
	}
	return nil
}

func (h *Backend) Cleanup() error {
	slog.Info("Headless run complete", "frames", h.frameCount)
	return nil
}
