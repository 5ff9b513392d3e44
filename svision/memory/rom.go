package memory

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

const (
	// BankSize is the size of one switchable ROM window in bytes.
	BankSize = 16384

	bankWindowStart  = 0x8000
	fixedWindowStart = 0xC000
)

// ROM is the immutable cartridge image. The last BankSize bytes are always
// visible through the fixed window at 0xC000-0xFFFF; a 16 KiB slice selected
// by the bank register is visible at 0x8000-0xBFFF.
type ROM struct {
	data      []byte
	fixedBase int
}

// NewROM validates and copies a raw cartridge dump. Images smaller than one
// bank cannot populate the fixed window and are rejected.
func NewROM(data []byte) (*ROM, error) {
	if len(data) == 0 {
		return nil, errors.New("rom: empty image")
	}
	if len(data) < BankSize {
		return nil, fmt.Errorf("rom: image is %d bytes, need at least %d", len(data), BankSize)
	}

	d := make([]byte, len(data))
	copy(d, data)

	return &ROM{
		data:      d,
		fixedBase: len(d) - BankSize,
	}, nil
}

// LoadROM reads a raw binary ROM dump from disk.
func LoadROM(path string) (*ROM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rom: reading %s: %w", path, err)
	}

	slog.Info("Loaded ROM", "path", path, "bytes", len(data))

	return NewROM(data)
}

// Size returns the image size in bytes.
func (r *ROM) Size() int {
	return len(r.data)
}

// ReadBank reads from the switchable window with the given bank offset.
// Reads past the end of the image return 0xFF (open bus) instead of wrapping.
func (r *ROM) ReadBank(bank uint32, address uint16) uint8 {
	index := int(bank) + int(address-bankWindowStart)
	if index >= len(r.data) {
		return 0xFF
	}
	return r.data[index]
}

// ReadFixed reads from the fixed window, which always reflects the last
// BankSize bytes of the image regardless of the bank register.
func (r *ROM) ReadFixed(address uint16) uint8 {
	return r.data[r.fixedBase+int(address-fixedWindowStart)]
}
