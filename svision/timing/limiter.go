// Package timing paces the emulation loop against wall-clock time.
package timing

import "time"

// FramesPerSecond is the Supervision's nominal refresh rate.
const FramesPerSecond = 60

// Limiter controls frame rate timing for emulation.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewFixedLimiter returns a limiter that targets the given frame rate.
func NewFixedLimiter(fps int) Limiter {
	return &fixedLimiter{
		frameDuration: time.Second / time.Duration(fps),
		next:          time.Now(),
	}
}

type fixedLimiter struct {
	frameDuration time.Duration
	next          time.Time
}

func (l *fixedLimiter) WaitForNextFrame() {
	now := time.Now()
	if now.Before(l.next) {
		time.Sleep(l.next.Sub(now))
	}
	l.next = l.next.Add(l.frameDuration)
	if time.Now().After(l.next.Add(l.frameDuration)) {
		// Too far behind, resynchronize instead of bursting.
		l.next = time.Now()
	}
}

func (l *fixedLimiter) Reset() {
	l.next = time.Now()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}
