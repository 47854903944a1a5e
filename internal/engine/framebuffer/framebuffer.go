// Package framebuffer provides the CPU-side RGBA surface the rasterizer
// writes into.
package framebuffer

import (
	"image"
	"image/color"
)

// FrameBuffer is an RGBA pixel grid with a row stride.
// Contents persist across frames until Clear or a reallocating Resize.
type FrameBuffer struct {
	width  int
	height int
	stride int
	pix    []byte
}

// New creates a frame buffer with the specified dimensions.
// Non-positive dimensions produce an empty buffer.
func New(width, height int) *FrameBuffer {
	fb := &FrameBuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates the pixels if the dimensions have changed and reports
// whether it did. Equal dimensions keep the existing bytes untouched.
func (fb *FrameBuffer) Resize(width, height int) bool {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == fb.width && height == fb.height && fb.pix != nil {
		return false
	}

	fb.width = width
	fb.height = height
	fb.stride = width * 4
	fb.pix = make([]byte, fb.stride*height)
	return true
}

// Clear fills every pixel with c.
func (fb *FrameBuffer) Clear(c color.RGBA) {
	n := len(fb.pix)
	if n == 0 {
		return
	}
	fb.pix[0], fb.pix[1], fb.pix[2], fb.pix[3] = c.R, c.G, c.B, c.A
	// Copy-doubling fill
	for i := 4; i < n; i *= 2 {
		copy(fb.pix[i:], fb.pix[:i])
	}
}

// Size returns the frame buffer dimensions.
func (fb *FrameBuffer) Size() (width, height int) {
	return fb.width, fb.height
}

// Stride returns the number of bytes between vertically adjacent pixels.
func (fb *FrameBuffer) Stride() int {
	return fb.stride
}

// Pix returns the underlying pixel bytes. Writes through it are visible.
func (fb *FrameBuffer) Pix() []byte {
	return fb.pix
}

// PixOffset returns the byte offset of pixel (x, y).
func (fb *FrameBuffer) PixOffset(x, y int) int {
	return y*fb.stride + x*4
}

// RGBAAt returns the color at (x, y), or transparent black out of bounds.
func (fb *FrameBuffer) RGBAAt(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return color.RGBA{}
	}
	i := fb.PixOffset(x, y)
	return color.RGBA{R: fb.pix[i], G: fb.pix[i+1], B: fb.pix[i+2], A: fb.pix[i+3]}
}

// Image returns an *image.RGBA sharing the frame buffer's bytes.
// It stays valid until the next reallocating Resize.
func (fb *FrameBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    fb.pix,
		Stride: fb.stride,
		Rect:   image.Rect(0, 0, fb.width, fb.height),
	}
}

// Snapshot returns a copy of the pixel bytes.
func (fb *FrameBuffer) Snapshot() []byte {
	out := make([]byte, len(fb.pix))
	copy(out, fb.pix)
	return out
}
