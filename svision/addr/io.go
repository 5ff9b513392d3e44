package addr

// memory windows
const (
	// RAMStart is the start of work RAM.
	RAMStart uint16 = 0x0000
	// RAMEnd is the last work RAM address (8 KiB).
	RAMEnd uint16 = 0x1FFF
	// RegistersStart is the start of the hardware register window.
	RegistersStart uint16 = 0x2000
	// RegistersEnd is the end of the hardware register window.
	RegistersEnd uint16 = 0x2FFF
	// VRAMStart is the start of video RAM.
	VRAMStart uint16 = 0x4000
	// VRAMEnd is the last video RAM address (8 KiB).
	VRAMEnd uint16 = 0x5FFF
	// BankStart is the start of the switchable 16 KiB ROM window.
	BankStart uint16 = 0x8000
	// BankEnd is the end of the switchable ROM window.
	BankEnd uint16 = 0xBFFF
	// FixedStart is the start of the fixed ROM window, mapped to the
	// last 16 KiB of the cartridge image.
	FixedStart uint16 = 0xC000
)

// lcd registers
const (
	// LCDStart is the first address of the 4-byte LCD register file.
	// The file is mirrored across the whole range modulo 4:
	// X size, Y size, X scroll, Y scroll.
	LCDStart uint16 = 0x2000
	// LCDEnd is the last mirrored LCD register address.
	LCDEnd uint16 = 0x2007
)

// video DMA (accepted and discarded, the LCD controller latches these
// but nothing in this core consumes them)
const (
	VideoDMAStart uint16 = 0x2008
	VideoDMAEnd   uint16 = 0x200D
)

// sound registers
const (
	// SquareStart is the first square-channel register. Each of the two
	// channels occupies four consecutive registers: period low, period
	// high, control (enable/duty/volume) and length.
	SquareStart uint16 = 0x2010
	// SquareEnd is the last square-channel register.
	SquareEnd uint16 = 0x2017

	// AudioDMAStart is the first audio DMA register: address low,
	// address high, length, control (bank/routing/frequency), trigger.
	AudioDMAStart uint16 = 0x2018
	// AudioDMAEnd is the last audio DMA register.
	AudioDMAEnd uint16 = 0x201C

	// NoiseStart is the first noise-channel register: frequency/volume,
	// length, control.
	NoiseStart uint16 = 0x2028
	// NoiseEnd is the last noise-channel register.
	NoiseEnd uint16 = 0x202A

	// LegacySoundStart..LegacySoundEnd is a reserved sound range that
	// games write to; writes are accepted and discarded.
	LegacySoundStart uint16 = 0x202B
	LegacySoundEnd   uint16 = 0x202F
)

// system registers
const (
	// Controller is the active-low button register.
	//
	//	7       0
	//	---------
	//	SLAB UDLR
	//
	// S: Start, L: Select, A: A, B: B, U: Up, D: Down, L: Left, R: Right.
	// A pressed button reads as 0; the idle value is 0xFF.
	Controller uint16 = 0x2020

	// LinkStart..LinkEnd is the link port; writes are accepted and
	// discarded (no link cable emulation).
	LinkStart uint16 = 0x2021
	LinkEnd   uint16 = 0x2022

	// TimerValue is the 8-bit IRQ timer countdown register. Writing 0
	// while the timer is enabled fires an instant IRQ instead of
	// wrapping to 0xFF.
	TimerValue uint16 = 0x2023

	// TimerStatus acknowledges the timer IRQ source. Reading always
	// returns 1 and clears the timer-enabled latch.
	TimerStatus uint16 = 0x2024

	// AudioDMAStatus acknowledges the audio DMA IRQ source. Reads
	// return 0.
	AudioDMAStatus uint16 = 0x2025

	// SystemControl selects the ROM bank and interrupt enables.
	//
	//	7       0
	//	---------
	//	BBBS D?IN
	//
	// B: bank select for 0x8000-0xBFFF, S: timer prescaler
	// (1 = divide by 16384, 0 = divide by 256), D: display enable,
	// I: IRQ enable, N: NMI enable.
	SystemControl uint16 = 0x2026

	// IRQStatus reports pending IRQ sources (bit 0: timer, bit 1:
	// audio DMA). Reading clears the timer-enabled latch.
	IRQStatus uint16 = 0x2027
)

// Interrupt is an enum that represents one of the possible interrupt lines.
type Interrupt uint8

const (
	// IRQ is the maskable interrupt raised by the timer (and by audio
	// DMA completion on real hardware).
	IRQ Interrupt = iota
	// NMI is the per-frame non-maskable interrupt, gated only by the
	// NMI-enable bit in SystemControl.
	NMI
)
