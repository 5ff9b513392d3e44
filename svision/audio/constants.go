package audio

// Clock constants
const (
	// MasterClock is the Supervision system clock in Hz.
	MasterClock = 4000000
	// SampleRate is the mixed output rate in Hz.
	SampleRate = 44100
)

// Sample buffer sizing. The buffer is trimmed from the front when the
// producer outruns the audio device (drop-oldest backpressure).
const (
	initialBufferCapacity = 4096
	maxBufferSize         = 16384
	bufferRetainSize      = 8192
)

// noiseDivisors maps the 4-bit noise frequency code to a clock divisor.
// The table is a doubling series whose top entry appears three times; the
// two duplicate high entries are part of the hardware table, not padding.
var noiseDivisors = [16]uint32{
	2, 4, 8, 16, 32, 64, 128, 256,
	512, 1024, 2048, 4096, 8192, 16384, 16384, 16384,
}

// dmaDivisors maps the 2-bit audio DMA frequency code to a clock divisor.
var dmaDivisors = [4]uint32{256, 512, 1024, 2048}

// LFSR all-ones reseed values for the two width modes.
const (
	lfsrSeed15 = 0x7FFF
	lfsrSeed7  = 0x7F
)
