package audio

import (
	"sync"

	"github.com/valerio/go-svision/svision/bit"
)

// Reader is the narrow bus capability the audio DMA channel needs: a single
// byte read at an address. The bus injects itself at construction so the
// sample fetch stays an explicit dependency instead of a global.
type Reader interface {
	Read(address uint16) uint8
}

// Duty cycle codes for the square channels.
const (
	duty12 = iota // 12.5%
	duty25        // 25%
	duty50        // 50%
	duty75        // 75%
)

// squareChannel is one of the two programmable tone generators.
type squareChannel struct {
	reg [4]uint8 // raw register values

	duty   uint8  // duty cycle code (0-3)
	volume uint8  // 4-bit volume
	length uint16 // remaining waveform cycles

	enabled  bool
	position uint16 // current position within the waveform
	size     uint16 // samples per complete waveform
}

// dutyThreshold returns the position below which the waveform is high.
func (c *squareChannel) dutyThreshold() uint16 {
	switch c.duty {
	case duty12:
		return c.size / 8
	case duty25:
		return c.size / 4
	case duty50:
		return c.size / 2
	case duty75:
		return c.size * 3 / 4
	default:
		return c.size / 2
	}
}

// noiseChannel is the LFSR noise generator.
type noiseChannel struct {
	volume uint8
	period uint32 // sample ticks per LFSR step
	length uint16 // raw length value, no +1 unlike the square channels

	left, right bool
	continuous  bool
	sevenBit    bool // 7-bit LFSR width mode instead of 15-bit
	enabled     bool

	lfsr     uint16
	position uint32
}

// dmaChannel streams 4-bit PCM nibbles out of cartridge ROM.
type dmaChannel struct {
	start       uint16 // configured ROM start address
	lengthBytes uint32 // byte count, 0 in the register means 4096

	bank        uint8 // 3-bit ROM bank field
	left, right bool
	period      uint32 // derived from the 4-entry divisor table

	triggered  bool
	current    uint16 // read cursor
	sample     uint8  // byte under the cursor
	highNibble bool   // next nibble to emit
	played     uint32 // nibble-samples emitted since trigger
}

// APU is the four-channel Supervision sound engine: two duty-cycle square
// generators, one LFSR noise generator and a ROM-streaming 4-bit PCM (DMA)
// channel. GenerateSample is called at SampleRate, independent of CPU
// instruction timing; register writes arrive through the bus.
type APU struct {
	// mu protects channel state; register writes and sample generation
	// run on the emulation thread but debug surfaces may not.
	mu sync.Mutex

	reader Reader

	square [2]squareChannel
	noise  noiseChannel
	dma    dmaChannel

	// Mixed samples awaiting the audio output context. Producer appends,
	// consumer drains; overflow drops the oldest samples so the emulation
	// thread never blocks.
	sampleBuffer   []int16
	sampleBufferMu sync.Mutex
}

// New creates a sound engine fetching DMA samples through reader.
func New(reader Reader) *APU {
	return &APU{
		reader:       reader,
		sampleBuffer: make([]int16, 0, initialBufferCapacity),
		noise:        noiseChannel{lfsr: lfsrSeed15},
	}
}

// WriteSquare handles a register write for square channel 0 or 1.
//
// Registers 0-1 jointly hold an 11-bit period; any write to them recomputes
// the waveform size and resets the phase to avoid clicks. Register 2 packs
// enable (bit 6), duty (bits 4-5) and volume (low nibble). Register 3 loads
// the length counter with value+1.
func (a *APU) WriteSquare(channel, reg int, value uint8) {
	if channel < 0 || channel > 1 || reg < 0 || reg > 3 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	c := &a.square[channel]
	c.reg[reg] = value

	switch reg {
	case 0, 1:
		period := uint32(c.reg[0]) | uint32(c.reg[1]&0x07)<<8
		c.size = uint16(SampleRate * ((period + 1) << 5) / MasterClock)
		c.position = 0
	case 2:
		c.enabled = bit.IsSet(6, value)
		c.duty = bit.ExtractBits(value, 5, 4)
		c.volume = value & 0x0F
	case 3:
		c.length = uint16(value) + 1
	}
}

// Noise control register layout (register 2).
const (
	noiseWidthBit      = 0 // 1 = 7-bit LFSR
	noiseContinuousBit = 1
	noiseRightBit      = 2
	noiseLeftBit       = 3
	noiseEnableBit     = 4
)

// WriteNoise handles a noise channel register write.
//
// Register 0 packs the frequency code (high nibble, through the divisor
// table) and volume (low nibble). Register 1 is the raw length value — no
// +1, the asymmetry with the square channels is hardware behavior. Register
// 2 sets the mode flags and unconditionally reseeds the LFSR.
func (a *APU) WriteNoise(reg int, value uint8) {
	if reg < 0 || reg > 2 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	n := &a.noise
	switch reg {
	case 0:
		n.volume = value & 0x0F
		n.period = noiseDivisors[value>>4] * SampleRate / MasterClock
		if n.period == 0 {
			n.period = 1
		}
	case 1:
		n.length = uint16(value)
	case 2:
		n.enabled = bit.IsSet(noiseEnableBit, value)
		n.left = bit.IsSet(noiseLeftBit, value)
		n.right = bit.IsSet(noiseRightBit, value)
		n.continuous = bit.IsSet(noiseContinuousBit, value)
		n.sevenBit = bit.IsSet(noiseWidthBit, value)
		n.position = 0
		if n.sevenBit {
			n.lfsr = lfsrSeed7
		} else {
			n.lfsr = lfsrSeed15
		}
	}
}

// Audio DMA control register layout (register 3).
const (
	dmaRightBit = 2
	dmaLeftBit  = 3
)

// WriteDMA handles an audio DMA register write.
//
// Registers 0-1 build the little-endian ROM start address. Register 2 is
// the sample length in 16-byte units, 0 meaning 4096 bytes. Register 3
// packs the frequency code (bits 0-1), routing (bits 2-3) and ROM bank
// (bits 4-6). Register 4's high bit triggers playback: a trigger while
// stopped resets the cursor to the configured address, primes the first
// byte through the bus and starts counting nibble-samples from zero; a
// retrigger mid-playback changes nothing.
func (a *APU) WriteDMA(reg int, value uint8) {
	if reg < 0 || reg > 4 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	d := &a.dma
	switch reg {
	case 0:
		d.start = bit.Combine(bit.High(d.start), value)
	case 1:
		d.start = bit.Combine(value, bit.Low(d.start))
	case 2:
		if value == 0 {
			d.lengthBytes = 4096
		} else {
			d.lengthBytes = uint32(value) * 16
		}
	case 3:
		d.period = dmaDivisors[value&0x03] * SampleRate / MasterClock
		if d.period == 0 {
			d.period = 1
		}
		d.right = bit.IsSet(dmaRightBit, value)
		d.left = bit.IsSet(dmaLeftBit, value)
		d.bank = bit.ExtractBits(value, 6, 4)
	case 4:
		if bit.IsSet(7, value) {
			if !d.triggered {
				d.played = 0
				d.current = d.start
				d.highNibble = true
				d.sample = a.reader.Read(d.current)
			}
			d.triggered = true
		}
	}
}

// GenerateSample mixes one 16-bit output sample and appends it to the
// shared sample buffer for the audio output context.
func (a *APU) GenerateSample() int16 {
	a.mu.Lock()
	right := uint16(a.squareSample(&a.square[0]))
	left := uint16(a.squareSample(&a.square[1]))

	noiseLeft, noiseRight := a.noiseSample()
	left += uint16(noiseLeft)
	right += uint16(noiseRight)

	dma := uint16(a.dmaSample())
	a.mu.Unlock()

	// The DMA nibble rides on top of the averaged tone mix; the shift to
	// the high byte reproduces the hardware DAC's coarse output range.
	sample := int16(dma+(left+right)/2) << 8

	a.pushSample(sample)
	return sample
}

// squareSample produces one sample for a tone channel and advances its
// phase. Wrapping the waveform decrements the length counter; the channel
// one-shots unless the length register is rewritten.
func (a *APU) squareSample(c *squareChannel) uint8 {
	if !c.enabled || c.size == 0 {
		return 0
	}

	var out uint8
	if c.position < c.dutyThreshold() {
		out = c.volume
	}

	c.position++
	if c.position >= c.size {
		c.position = 0
		if c.length > 0 {
			c.length--
			if c.length == 0 {
				c.enabled = false
			}
		}
	}

	return out
}

// noiseSample produces the left/right noise contributions for one sample,
// stepping the LFSR once per period.
func (a *APU) noiseSample() (left, right uint8) {
	n := &a.noise
	if !n.enabled {
		return 0, 0
	}

	n.position++
	if n.position >= n.period {
		n.position = 0
		a.stepLFSR()

		if !n.continuous {
			if n.length > 0 {
				n.length--
			}
			if n.length == 0 {
				n.enabled = false
			}
		}
	}

	if n.lfsr&1 == 1 {
		if n.left {
			left = n.volume
		}
		if n.right {
			right = n.volume
		}
	}

	return left, right
}

// stepLFSR shifts the noise register once: feedback is bit0 XOR bit1, the
// register shifts right, and a set feedback bit is injected at bit 14
// (15-bit mode) or bit 6 after masking to 7 bits (7-bit mode). A register
// that decays to zero is reseeded to all-ones so noise never dies.
func (a *APU) stepLFSR() {
	n := &a.noise

	feedback := (n.lfsr ^ (n.lfsr >> 1)) & 1
	n.lfsr >>= 1
	if feedback != 0 {
		if n.sevenBit {
			n.lfsr = (n.lfsr & 0x3F) | 1<<6
		} else {
			n.lfsr |= 1 << 14
		}
	}

	if n.lfsr == 0 {
		if n.sevenBit {
			n.lfsr = lfsrSeed7
		} else {
			n.lfsr = lfsrSeed15
		}
	}
}

// dmaSample emits the next PCM nibble while triggered. After the low nibble
// of a byte the cursor advances and the next byte is fetched through the
// bus. Exhausting length*2 nibble-samples halts playback.
func (a *APU) dmaSample() uint8 {
	d := &a.dma
	if !d.triggered {
		return 0
	}

	if d.played >= d.lengthBytes*2 {
		d.triggered = false
		return 0
	}

	var nibble uint8
	if d.highNibble {
		nibble = d.sample >> 4
		d.highNibble = false
	} else {
		nibble = d.sample & 0x0F
		d.highNibble = true
		d.current++
		d.sample = a.reader.Read(d.current)
	}

	d.played++
	return nibble
}

func (a *APU) pushSample(sample int16) {
	a.sampleBufferMu.Lock()
	a.sampleBuffer = append(a.sampleBuffer, sample)
	if len(a.sampleBuffer) > maxBufferSize {
		a.sampleBuffer = a.sampleBuffer[len(a.sampleBuffer)-bufferRetainSize:]
	}
	a.sampleBufferMu.Unlock()
}

// GetSamples drains up to count mixed samples for the audio output
// context. A short buffer is zero-padded so the device never starves.
func (a *APU) GetSamples(count int) []int16 {
	a.sampleBufferMu.Lock()
	defer a.sampleBufferMu.Unlock()

	if len(a.sampleBuffer) < count {
		samples := make([]int16, count)
		copy(samples, a.sampleBuffer)
		a.sampleBuffer = a.sampleBuffer[:0]
		return samples
	}

	samples := make([]int16, count)
	copy(samples, a.sampleBuffer[:count])
	a.sampleBuffer = a.sampleBuffer[count:]
	return samples
}

// DMAActive reports whether the PCM channel is mid-playback.
func (a *APU) DMAActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dma.triggered
}

// Reset returns every channel to power-on state.
func (a *APU) Reset() {
	a.mu.Lock()
	a.square = [2]squareChannel{}
	a.noise = noiseChannel{lfsr: lfsrSeed15}
	a.dma = dmaChannel{}
	a.mu.Unlock()

	a.sampleBufferMu.Lock()
	a.sampleBuffer = a.sampleBuffer[:0]
	a.sampleBufferMu.Unlock()
}
