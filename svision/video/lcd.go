package video

// vramStride is the byte stride between scanlines in VRAM. Each byte packs
// four 2-bit pixels, low bits first, so a 160-pixel line occupies 40 of the
// 48 bytes per stride.
const vramStride = 0x30

// LCD composes frames from raw VRAM and the 4-byte LCD register file
// (X size, Y size, X scroll, Y scroll). Palette mapping happens here; the
// backends just present the resulting framebuffer.
type LCD struct {
	fb *FrameBuffer
}

func NewLCD() *LCD {
	return &LCD{fb: NewFrameBuffer(ScreenWidth, ScreenHeight)}
}

// Scan renders one frame. The scroll registers select the starting byte:
// X scroll moves in 4-pixel (1-byte) steps, Y scroll in whole strides.
// VRAM addressing wraps at its 8 KiB size.
func (l *LCD) Scan(vram []uint8, regs [4]uint8) *FrameBuffer {
	mask := len(vram) - 1
	offset := int(regs[2])/4 + int(regs[3])*vramStride

	for y := 0; y < ScreenHeight; y++ {
		line := offset
		for x := 0; x < ScreenWidth; x += 4 {
			pixel := vram[line&mask]
			line++

			l.fb.SetPixel(x, y, Palette[pixel&3])
			l.fb.SetPixel(x+1, y, Palette[(pixel>>2)&3])
			l.fb.SetPixel(x+2, y, Palette[(pixel>>4)&3])
			l.fb.SetPixel(x+3, y, Palette[(pixel>>6)&3])
		}
		offset += vramStride
	}

	return l.fb
}
