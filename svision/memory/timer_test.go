package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimer_FastPrescalerDecrementsEveryTick(t *testing.T) {
	timer := NewTimer()
	timer.WriteCounter(10)

	for i := 0; i < 4; i++ {
		timer.Tick()
	}

	assert.Equal(t, uint8(6), timer.Counter())
}

func TestTimer_SlowPrescalerAccumulates(t *testing.T) {
	timer := NewTimer()
	timer.SetPrescaler(PrescalerSlow)
	timer.WriteCounter(10)

	// 16384/256 = 64 ticks per decrement.
	for i := 0; i < 63; i++ {
		timer.Tick()
	}
	assert.Equal(t, uint8(10), timer.Counter(), "counter should not move before the accumulator fills")

	timer.Tick()
	assert.Equal(t, uint8(9), timer.Counter())

	for i := 0; i < 64; i++ {
		timer.Tick()
	}
	assert.Equal(t, uint8(8), timer.Counter())
}

func TestTimer_ExpiryFiresOnceAndDisables(t *testing.T) {
	timer := NewTimer()
	fired := 0
	timer.InterruptHandler = func() { fired++ }

	timer.SetEnabled(true)
	timer.WriteCounter(2)

	timer.Tick() // 2 -> 1
	timer.Tick() // 1 -> 0
	assert.Equal(t, 0, fired)
	assert.True(t, timer.Enabled())

	timer.Tick() // expiry: fire, disable, no decrement
	assert.Equal(t, 1, fired)
	assert.False(t, timer.Enabled())
	assert.Equal(t, uint8(0), timer.Counter())

	// Further ticks free-run the counter but never fire again.
	timer.Tick()
	assert.Equal(t, 1, fired)
	assert.Equal(t, uint8(0xFF), timer.Counter())
}

func TestTimer_WriteZeroWhileEnabledFiresInstantly(t *testing.T) {
	timer := NewTimer()
	fired := 0
	timer.InterruptHandler = func() { fired++ }

	timer.SetEnabled(true)
	timer.WriteCounter(0)

	assert.Equal(t, 1, fired, "writing zero while enabled fires an instant IRQ")
	assert.False(t, timer.Enabled())
}

func TestTimer_WriteZeroWhileDisabledIsInert(t *testing.T) {
	timer := NewTimer()
	fired := 0
	timer.InterruptHandler = func() { fired++ }

	timer.WriteCounter(0)
	assert.Equal(t, 0, fired)
}

func TestTimer_WriteResetsAccumulator(t *testing.T) {
	timer := NewTimer()
	timer.SetPrescaler(PrescalerSlow)
	timer.WriteCounter(5)

	for i := 0; i < 63; i++ {
		timer.Tick()
	}
	timer.WriteCounter(5)

	// The accumulator was cleared; a single tick must not decrement.
	timer.Tick()
	assert.Equal(t, uint8(5), timer.Counter())
}

func TestTimer_AcknowledgeStatus(t *testing.T) {
	timer := NewTimer()

	timer.SetEnabled(true)
	assert.Equal(t, uint8(1), timer.AcknowledgeStatus())
	assert.False(t, timer.Enabled())

	// Reads return 1 and clear regardless of prior state.
	assert.Equal(t, uint8(1), timer.AcknowledgeStatus())
	assert.False(t, timer.Enabled())
}
