// Package export writes rendered frames to files: textured frames as PNG,
// wireframe outlines as SVG.
package export

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/texsphere/internal/engine/framebuffer"
	"github.com/Faultbox/texsphere/internal/engine/renderer"
)

var (
	// ErrEmptyOutput is returned when there is nothing to write.
	ErrEmptyOutput = errors.New("empty render output")
	// ErrModeMismatch is returned when the file extension cannot hold the
	// output's mode, e.g. outlines saved as .png.
	ErrModeMismatch = errors.New("file format does not match render mode")
)

// Extension returns the file extension for an output's mode.
func Extension(mode renderer.Mode) string {
	switch mode {
	case renderer.ModeTextured:
		return ".png"
	case renderer.ModeWireframe:
		return ".svg"
	default:
		return ""
	}
}

// EncodePNG writes the frame buffer as a PNG image.
func EncodePNG(w io.Writer, fb *framebuffer.FrameBuffer) error {
	if width, height := fb.Size(); width == 0 || height == 0 {
		return ErrEmptyOutput
	}
	if err := png.Encode(w, fb.Image()); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// Write encodes out in the format matching its mode.
func Write(w io.Writer, out renderer.Output) error {
	switch out.Mode {
	case renderer.ModeTextured:
		return EncodePNG(w, out.Frame)
	case renderer.ModeWireframe:
		return WriteSVG(w, out)
	default:
		return ErrEmptyOutput
	}
}

// Save writes out to path. The extension, if any, must match the mode.
func Save(path string, out renderer.Output) error {
	want := Extension(out.Mode)
	if want == "" {
		return ErrEmptyOutput
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != "" && ext != want {
		return fmt.Errorf("%w: %s output cannot be saved as %s", ErrModeMismatch, out.Mode, ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Write(file, out); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
