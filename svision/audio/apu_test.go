package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ramReader serves DMA fetches from a flat 64 KiB array.
type ramReader struct {
	mem [0x10000]uint8
}

func (r *ramReader) Read(address uint16) uint8 {
	return r.mem[address]
}

func newTestAPU() (*APU, *ramReader) {
	r := &ramReader{}
	return New(r), r
}

func TestSquare_SizeFromPeriod(t *testing.T) {
	tests := []struct {
		name         string
		low, high    uint8
		expectedSize uint16
	}{
		// size = 44100 * (period+1) * 32 / 4000000, truncated
		{"period 0 truncates to silence", 0x00, 0x00, 0},
		{"period 7", 0x07, 0x00, 2},
		{"period 0x200", 0x00, 0x02, 180},
		{"period 0x7FF", 0xFF, 0x07, 722},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apu, _ := newTestAPU()
			apu.WriteSquare(0, 0, tt.low)
			apu.WriteSquare(0, 1, tt.high)
			assert.Equal(t, tt.expectedSize, apu.square[0].size)
		})
	}
}

func TestSquare_PeriodWriteResetsPhase(t *testing.T) {
	apu, _ := newTestAPU()
	apu.WriteSquare(0, 1, 0x02)
	apu.WriteSquare(0, 2, 0x4F)
	apu.WriteSquare(0, 3, 0xFF)

	for i := 0; i < 50; i++ {
		apu.squareSample(&apu.square[0])
	}
	assert.NotZero(t, apu.square[0].position)

	apu.WriteSquare(0, 0, 0x10)
	assert.Zero(t, apu.square[0].position)
}

func TestSquare_ControlRegister(t *testing.T) {
	apu, _ := newTestAPU()

	apu.WriteSquare(1, 2, 0b0110_1010) // enabled, duty 2, volume 10
	c := &apu.square[1]
	assert.True(t, c.enabled)
	assert.Equal(t, uint8(2), c.duty)
	assert.Equal(t, uint8(10), c.volume)

	apu.WriteSquare(1, 3, 0x00)
	assert.Equal(t, uint16(1), c.length, "length counter is value+1")
}

func TestSquare_DutyCycle50(t *testing.T) {
	apu, _ := newTestAPU()
	apu.WriteSquare(0, 0, 0x00)
	apu.WriteSquare(0, 1, 0x02)        // size 180
	apu.WriteSquare(0, 2, 0b0110_1111) // enabled, duty 2 (50%), volume 15
	apu.WriteSquare(0, 3, 0xFF)

	size := int(apu.square[0].size)
	half := size / 2

	for i := 0; i < size; i++ {
		out := apu.squareSample(&apu.square[0])
		if i < half {
			assert.Equal(t, uint8(15), out, "sample %d should be high", i)
		} else {
			assert.Equal(t, uint8(0), out, "sample %d should be low", i)
		}
	}
}

func TestSquare_DutyThresholds(t *testing.T) {
	tests := []struct {
		duty     uint8
		expected uint16
	}{
		{duty12, 180 / 8},
		{duty25, 180 / 4},
		{duty50, 180 / 2},
		{duty75, 180 * 3 / 4},
	}

	for _, tt := range tests {
		c := &squareChannel{size: 180, duty: tt.duty}
		assert.Equal(t, tt.expected, c.dutyThreshold(), "duty %d", tt.duty)
	}
}

func TestSquare_LengthGating(t *testing.T) {
	apu, _ := newTestAPU()
	apu.WriteSquare(0, 0, 0x07) // size 2
	apu.WriteSquare(0, 2, 0x4F)
	apu.WriteSquare(0, 3, 0x02) // 3 waveform cycles

	c := &apu.square[0]
	for i := 0; i < 3*2; i++ {
		assert.True(t, c.enabled, "channel alive through cycle %d", i)
		apu.squareSample(c)
	}
	assert.False(t, c.enabled, "length expiry disables the channel")
	assert.Zero(t, apu.squareSample(c))
}

func TestNoise_RegisterDecode(t *testing.T) {
	apu, _ := newTestAPU()

	apu.WriteNoise(0, 0xD7) // code 13, volume 7
	n := &apu.noise
	assert.Equal(t, uint8(7), n.volume)
	// divisor 16384 -> 16384*44100/4000000 = 180
	assert.Equal(t, uint32(180), n.period)

	apu.WriteNoise(0, 0x07)
	assert.Equal(t, uint32(1), n.period, "tiny divisors clamp to one sample")

	apu.WriteNoise(1, 9)
	assert.Equal(t, uint16(9), n.length, "noise length is raw, no +1")

	apu.WriteNoise(2, 1<<noiseEnableBit|1<<noiseLeftBit)
	assert.True(t, n.enabled)
	assert.True(t, n.left)
	assert.False(t, n.right)
	assert.False(t, n.continuous)
	assert.False(t, n.sevenBit)
	assert.Equal(t, uint16(lfsrSeed15), n.lfsr, "control write reseeds the LFSR")
}

func TestNoise_DivisorTableDuplicateHighEntries(t *testing.T) {
	assert.Equal(t, noiseDivisors[13], noiseDivisors[14])
	assert.Equal(t, noiseDivisors[13], noiseDivisors[15])
	for i := 1; i < 14; i++ {
		assert.Equal(t, 2*noiseDivisors[i-1], noiseDivisors[i], "entry %d doubles", i)
	}
}

func TestNoise_LFSRNeverZero(t *testing.T) {
	for _, sevenBit := range []bool{false, true} {
		apu, _ := newTestAPU()
		apu.noise.sevenBit = sevenBit
		if sevenBit {
			apu.noise.lfsr = lfsrSeed7
		} else {
			apu.noise.lfsr = lfsrSeed15
		}

		for i := 0; i < 100000; i++ {
			apu.stepLFSR()
			if apu.noise.lfsr == 0 {
				t.Fatalf("LFSR reached zero after %d updates (sevenBit=%v)", i+1, sevenBit)
			}
		}
	}
}

func TestNoise_SevenBitStaysInRange(t *testing.T) {
	apu, _ := newTestAPU()
	apu.WriteNoise(2, 1<<noiseEnableBit|1<<noiseWidthBit)

	for i := 0; i < 1000; i++ {
		apu.stepLFSR()
		assert.LessOrEqual(t, apu.noise.lfsr, uint16(0x7F))
	}
}

func TestNoise_LengthGating(t *testing.T) {
	apu, _ := newTestAPU()
	apu.WriteNoise(0, 0x07) // period 1: one LFSR step per sample
	apu.WriteNoise(1, 3)
	apu.WriteNoise(2, 1<<noiseEnableBit|1<<noiseRightBit)

	for i := 0; i < 3; i++ {
		assert.True(t, apu.noise.enabled, "channel alive through step %d", i)
		apu.noiseSample()
	}
	assert.False(t, apu.noise.enabled, "length expiry disables the channel")
}

func TestNoise_ContinuousModeIgnoresLength(t *testing.T) {
	apu, _ := newTestAPU()
	apu.WriteNoise(0, 0x07)
	apu.WriteNoise(1, 1)
	apu.WriteNoise(2, 1<<noiseEnableBit|1<<noiseContinuousBit|1<<noiseLeftBit)

	for i := 0; i < 500; i++ {
		apu.noiseSample()
	}
	assert.True(t, apu.noise.enabled)
}

func TestDMA_TriggerPrimesFirstByte(t *testing.T) {
	apu, ram := newTestAPU()
	ram.mem[0x4321] = 0xAB

	apu.WriteDMA(0, 0x21)
	apu.WriteDMA(1, 0x43)
	apu.WriteDMA(2, 0x01)
	apu.WriteDMA(4, 0x80)

	d := &apu.dma
	assert.True(t, d.triggered)
	assert.Equal(t, uint16(0x4321), d.current)
	assert.Equal(t, uint8(0xAB), d.sample)
	assert.True(t, d.highNibble)
}

func TestDMA_NibbleOrderAndAdvance(t *testing.T) {
	apu, ram := newTestAPU()
	ram.mem[0x0100] = 0xAB
	ram.mem[0x0101] = 0xCD

	apu.WriteDMA(0, 0x00)
	apu.WriteDMA(1, 0x01)
	apu.WriteDMA(2, 0x01)
	apu.WriteDMA(4, 0x80)

	assert.Equal(t, uint8(0xA), apu.dmaSample())
	assert.Equal(t, uint8(0xB), apu.dmaSample())
	assert.Equal(t, uint8(0xC), apu.dmaSample())
	assert.Equal(t, uint8(0xD), apu.dmaSample())
}

func TestDMA_ZeroLengthPlays8192Nibbles(t *testing.T) {
	apu, _ := newTestAPU()

	apu.WriteDMA(2, 0x00) // length 0 means 4096 bytes
	apu.WriteDMA(4, 0x80)

	for i := 0; i < 4096*2; i++ {
		assert.True(t, apu.dma.triggered, "playback alive at nibble %d", i)
		apu.dmaSample()
	}

	apu.dmaSample()
	assert.False(t, apu.dma.triggered, "playback halts after 8192 nibble-samples")
}

func TestDMA_RetriggerDoesNotRestart(t *testing.T) {
	apu, ram := newTestAPU()
	ram.mem[0x0200] = 0x12

	apu.WriteDMA(0, 0x00)
	apu.WriteDMA(1, 0x02)
	apu.WriteDMA(2, 0x01)
	apu.WriteDMA(4, 0x80)

	for i := 0; i < 5; i++ {
		apu.dmaSample()
	}
	played := apu.dma.played

	apu.WriteDMA(4, 0x80) // retrigger mid-playback
	assert.Equal(t, played, apu.dma.played, "retrigger must not reset progress")
}

func TestDMA_ControlDecode(t *testing.T) {
	apu, _ := newTestAPU()

	apu.WriteDMA(3, 0b0101_1101) // bank 5, left, right, freq code 1
	d := &apu.dma
	assert.Equal(t, uint8(5), d.bank)
	assert.True(t, d.left)
	assert.True(t, d.right)
	// divisor 512 -> 512*44100/4000000 = 5
	assert.Equal(t, uint32(5), d.period)
}

func TestGenerateSample_HighByteOnly(t *testing.T) {
	apu, _ := newTestAPU()
	apu.WriteSquare(0, 1, 0x02)
	apu.WriteSquare(0, 2, 0x4F)
	apu.WriteSquare(0, 3, 0xFF)

	for i := 0; i < 100; i++ {
		sample := apu.GenerateSample()
		assert.Zero(t, sample&0xFF, "low byte stays clear")
	}
}

func TestGenerateSample_MixesChannels(t *testing.T) {
	apu, _ := newTestAPU()

	// Channel 0 (right) at volume 8, long period so the first samples sit
	// inside the duty window.
	apu.WriteSquare(0, 1, 0x07)
	apu.WriteSquare(0, 2, 0x48)
	apu.WriteSquare(0, 3, 0xFF)

	// Channel 1 (left) at volume 4.
	apu.WriteSquare(1, 1, 0x07)
	apu.WriteSquare(1, 2, 0x44)
	apu.WriteSquare(1, 3, 0xFF)

	// (left + right) / 2 = 6, shifted into the high byte.
	assert.Equal(t, int16(6<<8), apu.GenerateSample())
}

func TestGetSamples_DrainAndPad(t *testing.T) {
	apu, _ := newTestAPU()

	for i := 0; i < 10; i++ {
		apu.GenerateSample()
	}

	samples := apu.GetSamples(4)
	assert.Len(t, samples, 4)

	// Asking for more than buffered zero-pads the tail.
	samples = apu.GetSamples(100)
	assert.Len(t, samples, 100)
}

func TestSampleBuffer_DropOldest(t *testing.T) {
	apu, _ := newTestAPU()

	for i := 0; i < maxBufferSize+100; i++ {
		apu.GenerateSample()
	}

	apu.sampleBufferMu.Lock()
	n := len(apu.sampleBuffer)
	apu.sampleBufferMu.Unlock()
	assert.LessOrEqual(t, n, maxBufferSize, "buffer must trim instead of growing")
}
