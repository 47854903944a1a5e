package camera

import (
	gomath "math"

	"github.com/Faultbox/texsphere/pkg/math"
)

// Orbit places an eye on a sphere around the origin. Angles are in degrees
// so they can be fed straight from slider values.
type Orbit struct {
	Distance float32 // Distance from the origin
	Pitch    float32 // Elevation above the XZ plane
	Yaw      float32 // Rotation around Y, 0 looks down -Z from +Z

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32 // degrees per pixel
	ZoomSensitivity float32 // fraction of distance per wheel step
}

// NewOrbit creates an orbit with default limits.
func NewOrbit(distance, pitch, yaw float32) Orbit {
	return Orbit{
		Distance:        distance,
		Pitch:           pitch,
		Yaw:             yaw,
		MinDistance:     0.5,
		MaxDistance:     50,
		MinPitch:        -89,
		MaxPitch:        89,
		DragSensitivity: 0.3,
		ZoomSensitivity: 0.1,
	}
}

// Eye returns the eye position in world space.
func (o *Orbit) Eye() math.Vec3 {
	pitch := float64(o.Pitch) * gomath.Pi / 180
	yaw := float64(o.Yaw) * gomath.Pi / 180

	return math.Vec3{
		X: o.Distance * float32(gomath.Cos(pitch)*gomath.Sin(yaw)),
		Y: o.Distance * float32(gomath.Sin(pitch)),
		Z: o.Distance * float32(gomath.Cos(pitch)*gomath.Cos(yaw)),
	}
}

// HandleDrag updates yaw and pitch from a mouse drag delta in pixels.
func (o *Orbit) HandleDrag(deltaX, deltaY float32) {
	o.Rotate(deltaY*o.DragSensitivity, -deltaX*o.DragSensitivity)
}

// Rotate adds pitch and yaw in degrees. Pitch is clamped, yaw wraps to
// [0, 360).
func (o *Orbit) Rotate(dPitch, dYaw float32) {
	o.Pitch = clamp(o.Pitch+dPitch, o.MinPitch, o.MaxPitch)

	yaw := gomath.Mod(float64(o.Yaw+dYaw), 360)
	if yaw < 0 {
		yaw += 360
	}
	o.Yaw = float32(yaw)
}

// HandleZoom updates distance from a scroll wheel delta.
func (o *Orbit) HandleZoom(delta float32) {
	o.Distance = clamp(o.Distance-delta*o.Distance*o.ZoomSensitivity, o.MinDistance, o.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	if lo < hi {
		return max(lo, min(v, hi))
	}
	return v
}
