package memory

// Prescaler divisors selectable through the system control register.
// The timer tick granularity is one 256-cycle instruction quantum, so the
// fast divisor decrements the counter every tick while the slow one needs
// an internal accumulator to count 64 quanta per decrement.
const (
	PrescalerFast uint16 = 256
	PrescalerSlow uint16 = 16384
)

// Timer is the IRQ countdown timer. The enabled flag doubles as the IRQ
// latch: reaching zero while enabled fires the interrupt exactly once and
// clears the flag, and the status registers clear it on read.
type Timer struct {
	counter   uint8
	enabled   bool
	prescaler uint16
	accum     uint16

	// InterruptHandler is invoked when the countdown expires or a zero
	// write fires an instant IRQ.
	InterruptHandler func()
}

// NewTimer returns a timer with the fast prescaler selected.
func NewTimer() *Timer {
	return &Timer{prescaler: PrescalerFast}
}

// Tick advances the timer by one instruction quantum.
//
// An enabled timer that already sits at zero fires the interrupt, disables
// itself and does not decrement this tick. In every other case the counter
// keeps counting down (and wrapping) whether enabled or not, matching the
// free-running hardware counter.
func (t *Timer) Tick() {
	if t.enabled && t.counter == 0 {
		t.enabled = false
		t.fire()
		return
	}

	if t.prescaler == PrescalerFast {
		t.counter--
		return
	}

	t.accum += PrescalerFast
	if t.accum >= t.prescaler {
		t.accum = 0
		t.counter--
	}
}

// WriteCounter sets the countdown value and resets the sub-cycle
// accumulator. Writing zero while enabled fires an instant IRQ instead of
// wrapping to 0xFF.
func (t *Timer) WriteCounter(value uint8) {
	t.counter = value
	t.accum = 0

	if value == 0 && t.enabled {
		t.enabled = false
		t.fire()
	}
}

// Counter returns the current countdown value. Reading has no side effects.
func (t *Timer) Counter() uint8 {
	return t.counter
}

// AcknowledgeStatus implements the read-to-acknowledge semantics of the
// timer status register: it always returns 1 and clears the enabled latch.
func (t *Timer) AcknowledgeStatus() uint8 {
	t.enabled = false
	return 1
}

// SetEnabled sets the IRQ-enable latch, decoded from system control.
func (t *Timer) SetEnabled(enabled bool) {
	t.enabled = enabled
}

// Enabled reports whether the timer will fire on expiry.
func (t *Timer) Enabled() bool {
	return t.enabled
}

// SetPrescaler selects the clock divisor, PrescalerFast or PrescalerSlow.
func (t *Timer) SetPrescaler(prescaler uint16) {
	t.prescaler = prescaler
}

// Prescaler returns the selected clock divisor.
func (t *Timer) Prescaler() uint16 {
	return t.prescaler
}

func (t *Timer) fire() {
	if t.InterruptHandler != nil {
		t.InterruptHandler()
	}
}
