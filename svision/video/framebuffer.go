package video

// Screen dimensions of the Supervision LCD.
const (
	ScreenWidth  = 160
	ScreenHeight = 160
)

// Color is a 32-bit ARGB pixel value.
type Color uint32

// Palette is the four-shade LCD palette, lightest first. Values match the
// original hardware's green-tinted display.
var Palette = [4]Color{
	0xFF7BC77B,
	0xFF52A68C,
	0xFF2E6260,
	0xFF0D322E,
}

// FrameBuffer holds one rendered frame as ARGB pixels.
type FrameBuffer struct {
	width  int
	height int
	buffer []uint32
}

// NewFrameBuffer creates a frame buffer with the specified size.
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		buffer: make([]uint32, width*height),
	}
}

func (fb *FrameBuffer) Width() int {
	return fb.width
}

func (fb *FrameBuffer) Height() int {
	return fb.height
}

func (fb *FrameBuffer) GetPixel(x, y int) uint32 {
	return fb.buffer[y*fb.width+x]
}

func (fb *FrameBuffer) SetPixel(x, y int, color Color) {
	fb.buffer[y*fb.width+x] = uint32(color)
}

// ToSlice exposes the raw pixel data, row-major.
func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer
}
