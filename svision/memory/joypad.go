package memory

import "github.com/valerio/go-svision/svision/bit"

// Key represents a button on the Supervision pad. The value doubles as the
// bit index in the controller register.
type Key uint8

const (
	KeyRight Key = iota
	KeyLeft
	KeyDown
	KeyUp
	KeyB
	KeyA
	KeySelect
	KeyStart
)

// Joypad tracks button state for the controller register. Bits are active
// low: a held button reads as 0 and the idle value is 0xFF. Several host
// keys may map to the same Key (Start conventionally has two bindings), the
// register just ORs them into one bit.
type Joypad struct {
	state uint8
}

func NewJoypad() *Joypad {
	return &Joypad{state: 0xFF}
}

// Press marks a key as held.
func (j *Joypad) Press(key Key) {
	j.state = bit.Reset(uint8(key), j.state)
}

// Release marks a key as no longer held.
func (j *Joypad) Release(key Key) {
	j.state = bit.Set(uint8(key), j.state)
}

// Read returns the controller register value.
func (j *Joypad) Read() uint8 {
	return j.state
}
