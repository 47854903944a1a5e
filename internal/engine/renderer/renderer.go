// Package renderer provides the software rasterizer: back-face culling,
// projection, and either wireframe outlines or perspective-correct
// textured fill into a frame buffer.
package renderer

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/texsphere/internal/engine/camera"
	"github.com/Faultbox/texsphere/internal/engine/framebuffer"
	"github.com/Faultbox/texsphere/internal/engine/mesh"
	"github.com/Faultbox/texsphere/internal/engine/texture"
	"github.com/Faultbox/texsphere/internal/logger"
	"github.com/Faultbox/texsphere/pkg/math"
)

// Mode tells which kind of output a render produced.
type Mode int

const (
	ModeNone      Mode = iota // zero viewport or nothing to draw
	ModeWireframe             // Outlines filled, no pixel buffer involved
	ModeTextured              // Frame filled with textured pixels
)

func (m Mode) String() string {
	switch m {
	case ModeWireframe:
		return "wireframe"
	case ModeTextured:
		return "textured"
	default:
		return "none"
	}
}

// Outline is a front-facing triangle in screen space (pixels, origin
// top-left), to be stroked by a vector sink.
type Outline struct {
	A, B, C math.Vec2
}

// Stats counts what happened to the mesh faces during one render.
type Stats struct {
	Faces      int `json:"faces"`      // faces visited
	Culled     int `json:"culled"`     // back-facing
	Degenerate int `json:"degenerate"` // zero projected depth or near-zero screen area
	Drawn      int `json:"drawn"`      // outlines emitted or triangles filled
	Pixels     int `json:"pixels"`     // pixels written (textured mode)
}

// Output is the result of one Render call. Frame is owned by the Renderer
// and is overwritten by the next textured render.
type Output struct {
	Mode          Mode
	Width, Height int

	Outlines    []Outline
	Stroke      color.RGBA
	StrokeWidth float32

	Frame *framebuffer.FrameBuffer

	Stats Stats
}

// Options configures the colors a Renderer uses.
type Options struct {
	Background  color.RGBA // textured-mode clear color
	Stroke      color.RGBA // wireframe outline color
	StrokeWidth float32
}

// DefaultOptions returns a gray 1px stroke and an opaque black background.
func DefaultOptions() Options {
	return Options{
		Background:  color.RGBA{R: 0, G: 0, B: 0, A: 255},
		Stroke:      color.RGBA{R: 128, G: 128, B: 128, A: 255},
		StrokeWidth: 1,
	}
}

// Renderer owns the frame buffer and the per-vertex scratch space reused
// between frames. It is not safe for concurrent use.
type Renderer struct {
	opts   Options
	fb     *framebuffer.FrameBuffer
	world  []math.Vec3
	screen []screenVertex
}

// New creates a renderer. The frame buffer is allocated on the first
// textured render or explicit Resize.
func New(opts Options) *Renderer {
	return &Renderer{
		opts: opts,
		fb:   framebuffer.New(0, 0),
	}
}

// Options returns the renderer's options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Resize sets the frame buffer dimensions, reallocating only on change.
func (r *Renderer) Resize(width, height int) bool {
	return r.fb.Resize(width, height)
}

// FrameBuffer returns the frame buffer written by textured renders.
func (r *Renderer) FrameBuffer() *framebuffer.FrameBuffer {
	return r.fb
}

// Render draws m as seen by cam into a width x height viewport.
//
// Without a texture it returns one Outline per surviving triangle, in face
// order. With a texture it clears the frame buffer to Options.Background and
// fills every surviving triangle. There is no depth test: where front-facing
// triangles overlap, the later face wins.
//
// A non-positive viewport, or a texture whose layout fails
// texture.Validate, returns an empty Output and leaves the frame buffer
// untouched.
func (r *Renderer) Render(m *mesh.Mesh, cam *camera.Camera, tex *texture.Texture, width, height int) Output {
	if width <= 0 || height <= 0 || m == nil || cam == nil {
		return Output{}
	}
	if tex != nil {
		if err := tex.Validate(); err != nil {
			logger.Warn("texture rejected", zap.Error(err))
			return Output{}
		}
	}

	out := Output{
		Mode:        ModeWireframe,
		Width:       width,
		Height:      height,
		Stroke:      r.opts.Stroke,
		StrokeWidth: r.opts.StrokeWidth,
	}
	if tex != nil {
		out.Mode = ModeTextured
		r.fb.Resize(width, height)
		r.fb.Clear(r.opts.Background)
		out.Frame = r.fb
	}

	r.transformVertices(m, cam, width, height)
	eye := cam.Position()

	for _, f := range m.Faces {
		out.Stats.Faces++

		w1, w2, w3 := r.world[f.A], r.world[f.B], r.world[f.C]
		normal := w2.Sub(w1).Cross(w3.Sub(w1))
		if normal.Dot(eye.Sub(w1)) <= 0 {
			out.Stats.Culled++
			continue
		}

		s1, s2, s3 := r.screen[f.A], r.screen[f.B], r.screen[f.C]
		if !s1.ok || !s2.ok || !s3.ok {
			out.Stats.Degenerate++
			continue
		}

		if out.Mode == ModeWireframe {
			out.Outlines = append(out.Outlines, Outline{A: s1.pos(), B: s2.pos(), C: s3.pos()})
			out.Stats.Drawn++
			continue
		}

		tri := triangle{
			v:  [3]screenVertex{s1, s2, s3},
			uv: [3]math.Vec2{m.TexCoords[f.A], m.TexCoords[f.B], m.TexCoords[f.C]},
		}
		pixels, ok := fillTriangle(r.fb, &tri, tex)
		if !ok {
			out.Stats.Degenerate++
			continue
		}
		out.Stats.Drawn++
		out.Stats.Pixels += pixels
	}

	logger.Debug("frame rendered",
		zap.Stringer("mode", out.Mode),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("faces", out.Stats.Faces),
		zap.Int("culled", out.Stats.Culled),
		zap.Int("degenerate", out.Stats.Degenerate),
		zap.Int("drawn", out.Stats.Drawn),
		zap.Int("pixels", out.Stats.Pixels),
	)

	return out
}

// transformVertices applies the model transform and projects every vertex
// once, so shared vertices are not re-projected per face.
func (r *Renderer) transformVertices(m *mesh.Mesh, cam *camera.Camera, width, height int) {
	n := len(m.Vertices)
	if cap(r.world) < n {
		r.world = make([]math.Vec3, n)
		r.screen = make([]screenVertex, n)
	}
	r.world = r.world[:n]
	r.screen = r.screen[:n]

	model := m.Model
	identity := model.IsIdentity() || model == (math.Mat4{})
	viewProj := cam.ViewProjection()

	for i, v := range m.Vertices {
		if !identity {
			v = model.MulPoint(v)
		}
		r.world[i] = v
		r.screen[i] = project(viewProj, v, width, height)
	}
}
