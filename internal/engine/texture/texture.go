// Package texture provides the read-only RGBA pixel grids sampled by the
// rasterizer, and decoding of image files into them.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ErrInvalidLayout is returned when width, height, stride and buffer length
// do not describe a valid RGBA grid.
var ErrInvalidLayout = errors.New("invalid texture layout")

// ErrUnsupportedFormat is returned when no registered decoder recognizes
// the image data.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Texture is an RGBA pixel grid addressed through a row stride.
// Stride may exceed Width*4. The rasterizer never writes to Pix.
type Texture struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// New wraps an existing RGBA buffer without copying it.
func New(width, height, stride int, pix []byte) (*Texture, error) {
	t := &Texture{Width: width, Height: height, Stride: stride, Pix: pix}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate reports whether the fields describe a grid every texel of which
// lies inside Pix. Textures from New and the decoders always do.
func (t *Texture) Validate() error {
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidLayout, t.Width, t.Height)
	}
	if t.Stride < t.Width*4 {
		return fmt.Errorf("%w: stride %d < %d", ErrInvalidLayout, t.Stride, t.Width*4)
	}
	if need := (t.Height-1)*t.Stride + t.Width*4; len(t.Pix) < need {
		return fmt.Errorf("%w: buffer has %d bytes, need %d", ErrInvalidLayout, len(t.Pix), need)
	}
	return nil
}

// FromRGBA wraps an *image.RGBA, sharing its pixels.
func FromRGBA(img *image.RGBA) (*Texture, error) {
	b := img.Bounds()
	start := img.PixOffset(b.Min.X, b.Min.Y)
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidLayout)
	}
	return New(b.Dx(), b.Dy(), img.Stride, img.Pix[start:])
}

// FromImage converts any image to a texture. If maxSize > 0 and either
// side exceeds it, the image is downscaled (keeping aspect) with
// Catmull-Rom filtering.
func FromImage(img image.Image, maxSize int) (*Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidLayout)
	}

	w, h := b.Dx(), b.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			w, h = maxSize, max(1, h*maxSize/w)
		} else {
			w, h = max(1, w*maxSize/h), maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		return FromRGBA(dst)
	}

	if rgba, ok := img.(*image.RGBA); ok {
		return FromRGBA(rgba)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return FromRGBA(dst)
}

// Decode decodes image data. name is only used to pick the TGA decoder,
// which has no magic number; other formats are detected from content.
func Decode(data []byte, name string, maxSize int) (*Texture, error) {
	var (
		img image.Image
		err error
	)
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
		if errors.Is(err, image.ErrFormat) {
			err = ErrUnsupportedFormat
		}
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return FromImage(img, maxSize)
}

// Load reads and decodes a texture file.
func Load(path string, maxSize int) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	return Decode(data, filepath.Base(path), maxSize)
}

// Offset returns the byte offset of texel (x, y) in Pix.
func (t *Texture) Offset(x, y int) int {
	return y*t.Stride + x*4
}

// Image returns an *image.RGBA view over the texture pixels (no copy).
func (t *Texture) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    t.Pix,
		Stride: t.Stride,
		Rect:   image.Rect(0, 0, t.Width, t.Height),
	}
}
