// Package cpu declares the contract between the Supervision board and an
// external 65C02-compatible instruction core. The core performs every memory
// access through the board's bus; the board never reaches into core internals
// and delivers interrupts only between instruction steps.
package cpu

// Core is the minimal interface an instruction core must implement to drive
// the board. Implementations are expected to hold a reference to the bus and
// route all loads and stores through it.
type Core interface {
	// Reset puts the core in its power-on state, typically fetching the
	// reset vector through the bus.
	Reset()

	// Step executes a single instruction and returns the number of clock
	// cycles it consumed. The board ticks the timer once per fixed quantum
	// of cycles accumulated across steps.
	Step() int

	// IRQ delivers a maskable interrupt request to the core.
	IRQ()

	// NMI delivers a non-maskable interrupt to the core.
	NMI()
}

// NopCore is a placeholder core that executes nothing. It keeps the frame
// driver, timer and sound engine running at full rate for bring-up and tests
// when no instruction core is wired in.
type NopCore struct {
	// IRQCount and NMICount record delivered interrupts.
	IRQCount int
	NMICount int
}

func (c *NopCore) Reset() {}

// Step burns a full quantum per call so the driver makes progress.
func (c *NopCore) Step() int { return 256 }

func (c *NopCore) IRQ() { c.IRQCount++ }

func (c *NopCore) NMI() { c.NMICount++ }
