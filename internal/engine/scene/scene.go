// Package scene runs one synchronous update cycle of the sphere viewer:
// parameters in, mesh and camera rebuilt, one frame rendered.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/texsphere/internal/engine/camera"
	"github.com/Faultbox/texsphere/internal/engine/mesh"
	"github.com/Faultbox/texsphere/internal/engine/renderer"
	"github.com/Faultbox/texsphere/internal/engine/texture"
	"github.com/Faultbox/texsphere/internal/logger"
	"github.com/Faultbox/texsphere/pkg/math"
)

// Params are the user-controlled inputs of one update.
type Params struct {
	Orbit camera.Orbit

	Radius       float32
	LatDivisions int
	LonDivisions int

	FOV  float32 // vertical, degrees
	Near float32
	Far  float32
}

// DefaultParams returns a unit sphere seen from distance 5.
func DefaultParams() Params {
	return Params{
		Orbit:        camera.NewOrbit(5, 20, 30),
		Radius:       1,
		LatDivisions: 16,
		LonDivisions: 32,
		FOV:          camera.DefaultFOV,
		Near:         camera.DefaultNear,
		Far:          camera.DefaultFar,
	}
}

type sphereKey struct {
	radius   float32
	lat, lon int
}

// Scene owns a renderer and the current sphere. The mesh is rebuilt only
// when its parameters change; the camera is rebuilt every update.
// A Scene is not safe for concurrent use.
type Scene struct {
	renderer *renderer.Renderer
	texture  *texture.Texture

	mesh   *mesh.Mesh
	key    sphereKey
	camera *camera.Camera
}

// New creates a scene rendering with opts.
func New(opts renderer.Options) *Scene {
	return &Scene{renderer: renderer.New(opts)}
}

// SetTexture selects textured rendering, or wireframe when t is nil.
func (s *Scene) SetTexture(t *texture.Texture) {
	s.texture = t
}

// Texture returns the current texture, nil in wireframe mode.
func (s *Scene) Texture() *texture.Texture {
	return s.texture
}

// Renderer returns the scene's renderer.
func (s *Scene) Renderer() *renderer.Renderer {
	return s.renderer
}

// Mesh returns the sphere built by the last successful update.
func (s *Scene) Mesh() *mesh.Mesh {
	return s.mesh
}

// Camera returns the camera built by the last successful update.
func (s *Scene) Camera() *camera.Camera {
	return s.camera
}

// Update rebuilds what p requires and renders one width x height frame.
// The camera looks at the origin with aspect width/height.
//
// A non-positive viewport returns an empty output and no error. On invalid
// parameters nothing is rendered and the previous frame is left as is.
func (s *Scene) Update(p Params, width, height int) (renderer.Output, error) {
	if width <= 0 || height <= 0 {
		return renderer.Output{}, nil
	}

	key := sphereKey{radius: p.Radius, lat: p.LatDivisions, lon: p.LonDivisions}
	if s.mesh == nil || key != s.key {
		m, err := mesh.BuildSphere(p.Radius, p.LatDivisions, p.LonDivisions)
		if err != nil {
			return renderer.Output{}, fmt.Errorf("building sphere: %w", err)
		}
		s.mesh, s.key = m, key
		logger.Debug("sphere rebuilt",
			zap.Float32("radius", p.Radius),
			zap.Int("lat", p.LatDivisions),
			zap.Int("lon", p.LonDivisions),
			zap.Int("vertices", m.VertexCount()),
			zap.Int("faces", m.FaceCount()),
		)
	}

	aspect := float32(width) / float32(height)
	cam, err := camera.Build(p.Orbit.Eye(), math.Vec3{}, aspect, p.FOV, p.Near, p.Far)
	if err != nil {
		return renderer.Output{}, fmt.Errorf("building camera: %w", err)
	}
	s.camera = cam

	return s.renderer.Render(s.mesh, cam, s.texture, width, height), nil
}
