// Package camera builds view and projection transforms for the rasterizer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/texsphere/internal/engine"
	"github.com/Faultbox/texsphere/pkg/math"
)

// WorldUp is the up direction used for every look-at.
var WorldUp = math.Vec3{X: 0, Y: 1, Z: 0}

// parallelEpsilon is the sine of the smallest accepted angle between the
// look direction and WorldUp.
const parallelEpsilon = 1e-6

// Defaults for the projection.
const (
	DefaultFOV  = 45.0
	DefaultNear = 0.1
	DefaultFar  = 100.0
)

// Camera is an eye position with the view and projection matrices derived
// from it. All fields are private copies; a Camera never changes after Build.
type Camera struct {
	position   math.Vec3
	view       math.Mat4
	projection math.Mat4
	viewProj   math.Mat4
}

// Build creates a camera at eye looking at target.
// fovDegrees is the vertical field of view; aspectRatio is width/height.
func Build(eye, target math.Vec3, aspectRatio, fovDegrees, near, far float32) (*Camera, error) {
	const op = "camera.Build"

	if !eye.IsFinite() {
		return nil, engine.Invalid(op, "eye", eye, "must be finite")
	}
	if !target.IsFinite() {
		return nil, engine.Invalid(op, "target", target, "must be finite")
	}
	if eye == target {
		return nil, engine.Invalid(op, "eye", eye, "must differ from target")
	}
	if dir := target.Sub(eye); dir.Cross(WorldUp).Length() <= parallelEpsilon*dir.Length() {
		return nil, engine.Invalid(op, "eye", eye, "look direction is parallel to world up")
	}
	if !math.IsFinite(aspectRatio) || aspectRatio <= 0 {
		return nil, engine.Invalid(op, "aspectRatio", aspectRatio, "must be positive")
	}
	if !math.IsFinite(fovDegrees) || fovDegrees <= 0 || fovDegrees >= 180 {
		return nil, engine.Invalid(op, "fov", fovDegrees, "must be in (0, 180) degrees")
	}
	if !math.IsFinite(near) || near <= 0 {
		return nil, engine.Invalid(op, "near", near, "must be positive")
	}
	if !math.IsFinite(far) || far <= near {
		return nil, engine.Invalid(op, "far", far, "must be greater than near")
	}

	fovRadians := float32(gomath.Pi) * fovDegrees / 180
	view := math.LookAt(eye, target, WorldUp)
	projection := math.PerspectiveFov(fovRadians, aspectRatio, near, far)

	return &Camera{
		position:   eye,
		view:       view,
		projection: projection,
		viewProj:   projection.Mul(view),
	}, nil
}

// Position returns the eye point in world space.
func (c *Camera) Position() math.Vec3 { return c.position }

// View returns the look-at matrix.
func (c *Camera) View() math.Mat4 { return c.view }

// Projection returns the perspective matrix.
func (c *Camera) Projection() math.Mat4 { return c.projection }

// ViewProjection returns Projection * View, i.e. the view transform applied
// first.
func (c *Camera) ViewProjection() math.Mat4 { return c.viewProj }
