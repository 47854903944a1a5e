package texture

import (
	"errors"
	"fmt"
	"image"
)

// TGA decoding errors.
var (
	ErrTruncatedTGA   = errors.New("truncated TGA data")
	ErrUnsupportedTGA = errors.New("unsupported TGA variant")
)

// TGA image type constants.
const (
	tgaTypeUncompressed = 2  // Uncompressed true-color
	tgaTypeRLE          = 10 // RLE compressed true-color
	tgaHeaderSize       = 18
)

type tgaHeader struct {
	idLength     int
	colorMapType byte
	imageType    byte
	width        int
	height       int
	bpp          int
	topToBottom  bool // descriptor bit 5
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, ErrTruncatedTGA
	}
	h := tgaHeader{
		idLength:     int(data[0]),
		colorMapType: data[1],
		imageType:    data[2],
		width:        int(data[12]) | int(data[13])<<8,
		height:       int(data[14]) | int(data[15])<<8,
		bpp:          int(data[16]),
		topToBottom:  data[17]&0x20 != 0,
	}

	if h.colorMapType != 0 {
		return h, fmt.Errorf("%w: color-mapped", ErrUnsupportedTGA)
	}
	if h.imageType != tgaTypeUncompressed && h.imageType != tgaTypeRLE {
		return h, fmt.Errorf("%w: image type %d", ErrUnsupportedTGA, h.imageType)
	}
	if h.bpp != 24 && h.bpp != 32 {
		return h, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedTGA, h.bpp)
	}
	if h.width == 0 || h.height == 0 {
		return h, fmt.Errorf("%w: empty image %dx%d", ErrUnsupportedTGA, h.width, h.height)
	}
	return h, nil
}

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-color TGA
// into an RGBA image with the origin at the top-left.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, ErrTruncatedTGA
	}
	src := data[offset:]
	bytesPerPixel := h.bpp / 8

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	pixelCount := h.width * h.height

	// put writes one BGR(A) source pixel as the n-th pixel in file order.
	put := func(n int, bgra []byte) {
		x := n % h.width
		y := n / h.width
		if !h.topToBottom {
			y = h.height - 1 - y
		}
		i := img.PixOffset(x, y)
		img.Pix[i] = bgra[2]
		img.Pix[i+1] = bgra[1]
		img.Pix[i+2] = bgra[0]
		img.Pix[i+3] = 255
		if bytesPerPixel == 4 {
			img.Pix[i+3] = bgra[3]
		}
	}

	if h.imageType == tgaTypeUncompressed {
		if len(src) < pixelCount*bytesPerPixel {
			return nil, ErrTruncatedTGA
		}
		for n := 0; n < pixelCount; n++ {
			put(n, src[n*bytesPerPixel:])
		}
		return img, nil
	}

	n, pos := 0, 0
	for n < pixelCount {
		if pos >= len(src) {
			return nil, ErrTruncatedTGA
		}
		packet := src[pos]
		pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run-length packet: one pixel repeated count times.
			if pos+bytesPerPixel > len(src) {
				return nil, ErrTruncatedTGA
			}
			px := src[pos : pos+bytesPerPixel]
			pos += bytesPerPixel
			for i := 0; i < count && n < pixelCount; i++ {
				put(n, px)
				n++
			}
			continue
		}

		// Raw packet: count literal pixels.
		if pos+count*bytesPerPixel > len(src) {
			return nil, ErrTruncatedTGA
		}
		for i := 0; i < count && n < pixelCount; i++ {
			put(n, src[pos:])
			pos += bytesPerPixel
			n++
		}
	}

	return img, nil
}
