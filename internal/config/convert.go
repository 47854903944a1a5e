package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/Faultbox/texsphere/internal/engine/camera"
	"github.com/Faultbox/texsphere/internal/engine/renderer"
	"github.com/Faultbox/texsphere/internal/engine/scene"
)

// ErrInvalidColor is returned for a color string that is not #rrggbb or
// #rrggbbaa.
var ErrInvalidColor = errors.New("invalid color")

// ParseColor parses "#rrggbb" (opaque) or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// FormatColor is the inverse of ParseColor and always emits 8 digits.
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// SceneParams converts the camera and sphere sections to scene parameters.
// Values are not validated here; the scene rejects invalid ones.
func (c *Config) SceneParams() scene.Params {
	return scene.Params{
		Orbit:        camera.NewOrbit(c.Camera.Distance, c.Camera.RotateX, c.Camera.RotateY),
		Radius:       c.Sphere.Radius,
		LatDivisions: c.Sphere.LatDivisions,
		LonDivisions: c.Sphere.LonDivisions,
		FOV:          c.Camera.FOV,
		Near:         c.Camera.Near,
		Far:          c.Camera.Far,
	}
}

// RenderOptions converts the render section to renderer options.
func (c *Config) RenderOptions() (renderer.Options, error) {
	opts := renderer.DefaultOptions()

	bg, err := ParseColor(c.Render.Background)
	if err != nil {
		return opts, fmt.Errorf("render.background: %w", err)
	}
	stroke, err := ParseColor(c.Render.Stroke)
	if err != nil {
		return opts, fmt.Errorf("render.stroke: %w", err)
	}

	opts.Background = bg
	opts.Stroke = stroke
	if c.Render.StrokeWidth > 0 {
		opts.StrokeWidth = c.Render.StrokeWidth
	}
	return opts, nil
}
