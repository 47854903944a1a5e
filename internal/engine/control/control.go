// Package control turns viewer actions (key presses, drags, wheel steps)
// into scene parameter changes.
package control

import "github.com/Faultbox/texsphere/internal/engine/scene"

// Action is a discrete viewer command.
type Action int

const (
	ActionNone Action = iota
	ActionPitchUp
	ActionPitchDown
	ActionYawLeft
	ActionYawRight
	ActionZoomIn
	ActionZoomOut
	ActionRadiusDown
	ActionRadiusUp
	ActionLatDown
	ActionLatUp
	ActionLonDown
	ActionLonUp
	ActionOpenTexture
	ActionToggleTexture
	ActionCapture
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:          "none",
	ActionPitchUp:       "pitch-up",
	ActionPitchDown:     "pitch-down",
	ActionYawLeft:       "yaw-left",
	ActionYawRight:      "yaw-right",
	ActionZoomIn:        "zoom-in",
	ActionZoomOut:       "zoom-out",
	ActionRadiusDown:    "radius-down",
	ActionRadiusUp:      "radius-up",
	ActionLatDown:       "lat-down",
	ActionLatUp:         "lat-up",
	ActionLonDown:       "lon-down",
	ActionLonUp:         "lon-up",
	ActionOpenTexture:   "open-texture",
	ActionToggleTexture: "toggle-texture",
	ActionCapture:       "capture",
	ActionQuit:          "quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Steps holds per-action increments and the slider ranges.
type Steps struct {
	Angle    float32 // degrees per key press
	Distance float32 // distance per key press
	Radius   float32

	MinRadius, MaxRadius float32
	MinLat, MaxLat       int
	MinLon, MaxLon       int
}

// DefaultSteps returns the viewer's slider ranges.
func DefaultSteps() Steps {
	return Steps{
		Angle:     5,
		Distance:  0.25,
		Radius:    0.1,
		MinRadius: 0.1,
		MaxRadius: 10,
		MinLat:    2,
		MaxLat:    128,
		MinLon:    3,
		MaxLon:    256,
	}
}

// Controls holds the parameters the viewer renders from.
type Controls struct {
	Params scene.Params
	Steps  Steps
}

// New creates controls starting at p.
func New(p scene.Params) *Controls {
	return &Controls{Params: p, Steps: DefaultSteps()}
}

// Apply performs a parameter action and reports whether the parameters
// changed. Actions that are not parameter changes return false.
func (c *Controls) Apply(a Action) bool {
	before := c.Params
	p := &c.Params
	s := c.Steps

	switch a {
	case ActionPitchUp:
		p.Orbit.Rotate(s.Angle, 0)
	case ActionPitchDown:
		p.Orbit.Rotate(-s.Angle, 0)
	case ActionYawLeft:
		p.Orbit.Rotate(0, -s.Angle)
	case ActionYawRight:
		p.Orbit.Rotate(0, s.Angle)
	case ActionZoomIn:
		p.Orbit.Distance = clampf(p.Orbit.Distance-s.Distance, p.Orbit.MinDistance, p.Orbit.MaxDistance)
	case ActionZoomOut:
		p.Orbit.Distance = clampf(p.Orbit.Distance+s.Distance, p.Orbit.MinDistance, p.Orbit.MaxDistance)
	case ActionRadiusDown:
		p.Radius = clampf(p.Radius-s.Radius, s.MinRadius, s.MaxRadius)
	case ActionRadiusUp:
		p.Radius = clampf(p.Radius+s.Radius, s.MinRadius, s.MaxRadius)
	case ActionLatDown:
		p.LatDivisions = clampi(p.LatDivisions-1, s.MinLat, s.MaxLat)
	case ActionLatUp:
		p.LatDivisions = clampi(p.LatDivisions+1, s.MinLat, s.MaxLat)
	case ActionLonDown:
		p.LonDivisions = clampi(p.LonDivisions-1, s.MinLon, s.MaxLon)
	case ActionLonUp:
		p.LonDivisions = clampi(p.LonDivisions+1, s.MinLon, s.MaxLon)
	default:
		return false
	}
	return c.Params != before
}

// Drag orbits the camera by a mouse movement in pixels.
func (c *Controls) Drag(dx, dy int) bool {
	before := c.Params.Orbit
	c.Params.Orbit.HandleDrag(float32(dx), float32(dy))
	return c.Params.Orbit != before
}

// Wheel zooms by scroll steps; positive moves closer.
func (c *Controls) Wheel(steps int) bool {
	before := c.Params.Orbit.Distance
	c.Params.Orbit.HandleZoom(float32(steps))
	return c.Params.Orbit.Distance != before
}

func clampf(v, lo, hi float32) float32 {
	if lo < hi {
		return max(lo, min(v, hi))
	}
	return v
}

func clampi(v, lo, hi int) int {
	if lo < hi {
		return max(lo, min(v, hi))
	}
	return v
}
