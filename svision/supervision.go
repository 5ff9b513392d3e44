// Package svision wires the Supervision board together: the memory bus, the
// IRQ timer, the sound engine and the LCD scan-out, driven by an external
// 65C02-compatible instruction core.
package svision

import (
	"github.com/valerio/go-svision/svision/audio"
	"github.com/valerio/go-svision/svision/cpu"
	"github.com/valerio/go-svision/svision/input/action"
	"github.com/valerio/go-svision/svision/memory"
	"github.com/valerio/go-svision/svision/timing"
	"github.com/valerio/go-svision/svision/video"
)

const (
	// cyclesPerTick is the instruction quantum between timer ticks,
	// matching the original board's 256-cycle dispatch period.
	cyclesPerTick = 256

	// ticksPerFrame is how many quanta make up one video frame.
	ticksPerFrame = 256

	// samplesPerFrame keeps audio synthesis on the frame timeline.
	samplesPerFrame = audio.SampleRate / timing.FramesPerSecond
)

// Supervision is one complete emulated console. All hardware state hangs
// off this instance; nothing is process-global, so multiple independent
// machines can coexist.
type Supervision struct {
	bus   *memory.Bus
	core  cpu.Core
	lcd   *video.LCD
	frame *video.FrameBuffer

	leftoverCycles int
}

// New builds a console around a loaded ROM and an instruction core.
func New(rom *memory.ROM, core cpu.Core) *Supervision {
	s := &Supervision{
		bus:  memory.NewBus(rom),
		core: core,
		lcd:  video.NewLCD(),
	}
	s.frame = s.lcd.Scan(s.bus.VRAM(), s.bus.LCDRegisters())
	s.core.Reset()
	return s
}

// NewWithFile loads a ROM from disk and builds a console around it.
func NewWithFile(path string, core cpu.Core) (*Supervision, error) {
	rom, err := memory.LoadROM(path)
	if err != nil {
		return nil, err
	}
	return New(rom, core), nil
}

// Bus exposes the memory bus, mainly for instruction cores and tests.
func (s *Supervision) Bus() *memory.Bus {
	return s.bus
}

// APU exposes the sound engine so a player can pull mixed samples.
func (s *Supervision) APU() *audio.APU {
	return s.bus.APU
}

// RunUntilFrame executes one frame's worth of instruction quanta, ticking
// the timer and delivering pending interrupts between quanta, then composes
// the frame, raises the per-frame NMI and synthesizes the frame's audio.
func (s *Supervision) RunUntilFrame() error {
	for i := 0; i < ticksPerFrame; i++ {
		cycles := s.leftoverCycles
		for cycles < cyclesPerTick {
			cycles += s.core.Step()
		}
		s.leftoverCycles = cycles - cyclesPerTick

		s.bus.TickTimer()
		if s.bus.TakeIRQ() {
			s.core.IRQ()
		}
	}

	s.frame = s.lcd.Scan(s.bus.VRAM(), s.bus.LCDRegisters())

	s.bus.RequestNMI()
	if s.bus.TakeNMI() {
		s.core.NMI()
	}

	for i := 0; i < samplesPerFrame; i++ {
		s.bus.APU.GenerateSample()
	}

	return nil
}

// GetCurrentFrame returns the most recently composed frame.
func (s *Supervision) GetCurrentFrame() *video.FrameBuffer {
	return s.frame
}

// HandleAction applies a logical input transition to the joypad.
func (s *Supervision) HandleAction(act action.Action, pressed bool) {
	key, ok := joypadKey(act)
	if !ok {
		return
	}
	if pressed {
		s.bus.Joypad.Press(key)
	} else {
		s.bus.Joypad.Release(key)
	}
}

func joypadKey(act action.Action) (memory.Key, bool) {
	switch act {
	case action.DPadRight:
		return memory.KeyRight, true
	case action.DPadLeft:
		return memory.KeyLeft, true
	case action.DPadDown:
		return memory.KeyDown, true
	case action.DPadUp:
		return memory.KeyUp, true
	case action.ButtonB:
		return memory.KeyB, true
	case action.ButtonA:
		return memory.KeyA, true
	case action.ButtonSelect:
		return memory.KeySelect, true
	case action.ButtonStart:
		return memory.KeyStart, true
	default:
		return 0, false
	}
}
