package memory

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-svision/svision/addr"
	"github.com/valerio/go-svision/svision/audio"
)

const (
	ramSize  = 0x2000
	vramSize = 0x2000
)

// Bus is the memory bus and register decoder. Every CPU memory access goes
// through Read/Write; the bus owns RAM, VRAM, the LCD register file and the
// bank state, and forwards timer and sound register traffic to the Timer and
// APU. Interrupts are exposed as outward pending signals polled by the frame
// driver rather than delivered into CPU internals.
type Bus struct {
	rom  *ROM
	ram  [ramSize]uint8
	vram [vramSize]uint8

	// lcd holds the 4-byte LCD register file: X size, Y size, X scroll,
	// Y scroll. Mirrored across 0x2000-0x2007 modulo 4.
	lcd [4]uint8

	// bank is the byte offset of the switchable ROM window.
	bank uint32

	APU    *audio.APU
	Timer  *Timer
	Joypad *Joypad

	nmiEnabled bool
	irqPending bool
	nmiPending bool
}

// NewBus creates a bus around a loaded ROM image, wiring up the timer, the
// joypad and the sound engine. The APU gets the bus itself as its sample
// fetch capability, which is the one deliberate cross-dependency in the
// core: audio DMA reads cartridge data through the bus.
func NewBus(rom *ROM) *Bus {
	b := &Bus{
		rom:    rom,
		lcd:    [4]uint8{160, 160, 0, 0},
		Timer:  NewTimer(),
		Joypad: NewJoypad(),
	}
	b.APU = audio.New(b)
	b.Timer.InterruptHandler = func() { b.irqPending = true }
	return b
}

// Read resolves an address to its window or register handler. Unmapped
// addresses return 0xFF and are logged as diagnostics.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address <= addr.RAMEnd:
		return b.ram[address]
	case address == addr.TimerValue:
		return b.Timer.Counter()
	case address == addr.TimerStatus:
		slog.Debug("Timer IRQ status acknowledged")
		return b.Timer.AcknowledgeStatus()
	case address == addr.AudioDMAStatus:
		slog.Debug("Audio DMA IRQ status acknowledged")
		return 0
	case address == addr.IRQStatus:
		// Reports both sources pending; reading clears the timer latch.
		b.Timer.SetEnabled(false)
		return 0b11
	case address >= addr.LCDStart && address <= addr.LCDEnd:
		return b.lcd[address&3]
	case address == addr.Controller:
		return b.Joypad.Read()
	case address >= addr.FixedStart:
		return b.rom.ReadFixed(address)
	case address >= addr.BankStart && address <= addr.BankEnd:
		return b.rom.ReadBank(b.bank, address)
	case address >= addr.VRAMStart && address <= addr.VRAMEnd:
		return b.vram[address-addr.VRAMStart]
	default:
		slog.Debug("Unmapped read", "addr", fmt.Sprintf("0x%04X", address))
		return 0xFF
	}
}

// Write resolves an address and stores or dispatches the value. Reserved
// register ranges are accepted silently; anything outside every window is a
// no-op logged as a diagnostic.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address <= addr.RAMEnd:
		b.ram[address] = value
	case address >= addr.LCDStart && address <= addr.LCDEnd:
		b.lcd[address&3] = value
	case address >= addr.VideoDMAStart && address <= addr.VideoDMAEnd:
		// Video DMA block, not consumed by this core.
	case address >= addr.SquareStart && address <= addr.SquareEnd:
		offset := address - addr.SquareStart
		b.APU.WriteSquare(int(offset>>2), int(offset&3), value)
	case address >= addr.AudioDMAStart && address <= addr.AudioDMAEnd:
		b.APU.WriteDMA(int(address-addr.AudioDMAStart), value)
	case address >= addr.LinkStart && address <= addr.LinkEnd:
		// Link port, accepted and discarded.
	case address == addr.TimerValue:
		b.Timer.WriteCounter(value)
	case address == addr.SystemControl:
		b.writeSystemControl(value)
	case address >= addr.NoiseStart && address <= addr.NoiseEnd:
		b.APU.WriteNoise(int(address-addr.NoiseStart), value)
	case address >= addr.LegacySoundStart && address <= addr.LegacySoundEnd:
		// Reserved sound range, accepted and discarded.
	case address >= addr.VRAMStart && address <= addr.VRAMEnd:
		b.vram[address-addr.VRAMStart] = value
	case address >= addr.BankStart:
		// ROM windows are read-only media, writes are ignored.
	default:
		slog.Debug("Unmapped write",
			"addr", fmt.Sprintf("0x%04X", address),
			"value", fmt.Sprintf("0x%02X", value))
	}
}

// writeSystemControl decodes the bank select, interrupt enables and timer
// prescaler. The enable and prescaler comparisons reproduce the hardware
// register's known-odd encoding verbatim: IRQ enable tests the two-bit
// pattern and the slow prescaler is selected by value&5 == 1, not by the S
// bit alone.
func (b *Bus) writeSystemControl(value uint8) {
	bank := uint32(value>>5) * BankSize
	if int(bank)+BankSize > b.rom.Size() {
		slog.Warn("Bank select past end of ROM",
			"bank", value>>5, "romSize", b.rom.Size())
	}
	b.bank = bank

	b.nmiEnabled = value&1 == 1
	b.Timer.SetEnabled(value&2 == 2)
	if value&5 == 1 {
		b.Timer.SetPrescaler(PrescalerSlow)
	} else {
		b.Timer.SetPrescaler(PrescalerFast)
	}
}

// TickTimer advances the IRQ timer by one instruction quantum. Called by the
// frame driver between instruction batches.
func (b *Bus) TickTimer() {
	b.Timer.Tick()
}

// RequestNMI raises the per-frame NMI signal, gated by the NMI-enable bit.
func (b *Bus) RequestNMI() {
	if b.nmiEnabled {
		b.nmiPending = true
	}
}

// TakeIRQ reports and clears the pending IRQ signal.
func (b *Bus) TakeIRQ() bool {
	pending := b.irqPending
	b.irqPending = false
	return pending
}

// TakeNMI reports and clears the pending NMI signal.
func (b *Bus) TakeNMI() bool {
	pending := b.nmiPending
	b.nmiPending = false
	return pending
}

// VRAM exposes the video RAM for the presentation layer. The returned slice
// aliases bus memory and must be treated as read-only.
func (b *Bus) VRAM() []uint8 {
	return b.vram[:]
}

// LCDRegisters returns a copy of the LCD register file.
func (b *Bus) LCDRegisters() [4]uint8 {
	return b.lcd
}

// Bank returns the current switchable-window offset, for diagnostics.
func (b *Bus) Bank() uint32 {
	return b.bank
}
