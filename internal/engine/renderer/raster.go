package renderer

import (
	gomath "math"

	"github.com/Faultbox/texsphere/internal/engine/framebuffer"
	"github.com/Faultbox/texsphere/internal/engine/texture"
	"github.com/Faultbox/texsphere/pkg/math"
)

// areaEpsilon is the smallest barycentric denominator treated as a real
// triangle. Below it the screen-space area is effectively zero.
const areaEpsilon = 1e-6

// screenVertex is a vertex after projection. X, Y are pixels; Z is the
// transformed depth before the divide, kept for perspective correction.
type screenVertex struct {
	X, Y, Z float32
	ok      bool // false when the transformed depth was zero
}

func (s screenVertex) pos() math.Vec2 {
	return math.Vec2{X: s.X, Y: s.Y}
}

// project maps a world-space point to pixel coordinates.
//
// The point goes through the 3-row affine part of viewProj and X, Y and Z
// are all divided by the resulting Z. With the zero-to-one projection this
// Z is the depth value, not w, which offsets the divisor by the near plane
// distance; the screen output relies on exactly this convention.
func project(viewProj math.Mat4, p math.Vec3, width, height int) screenVertex {
	c := viewProj.MulPoint(p)
	if c.Z == 0 {
		return screenVertex{}
	}
	ndcX := c.X / c.Z
	ndcY := c.Y / c.Z

	return screenVertex{
		X:  (ndcX + 1) * 0.5 * float32(width),
		Y:  (1 - ndcY) * 0.5 * float32(height), // screen origin is top-left
		Z:  c.Z,
		ok: true,
	}
}

// baryFrame holds the per-triangle terms of the 2x2 barycentric solve.
type baryFrame struct {
	a, v0, v1     math.Vec2
	d00, d01, d11 float32
	denom         float32
}

// newBaryFrame prepares barycentric solves against triangle (a, b, c).
// It reports false when the denominator is below areaEpsilon.
func newBaryFrame(a, b, c math.Vec2) (baryFrame, bool) {
	f := baryFrame{a: a, v0: b.Sub(a), v1: c.Sub(a)}
	f.d00 = f.v0.Dot(f.v0)
	f.d01 = f.v0.Dot(f.v1)
	f.d11 = f.v1.Dot(f.v1)
	f.denom = f.d00*f.d11 - f.d01*f.d01
	if f.denom > -areaEpsilon && f.denom < areaEpsilon {
		return f, false
	}
	return f, true
}

// weights returns the barycentric weights (u, v, w) of p for vertices
// (a, b, c). They sum to 1; any negative weight means p is outside.
func (f *baryFrame) weights(p math.Vec2) (u, v, w float32) {
	v2 := p.Sub(f.a)
	d20 := v2.Dot(f.v0)
	d21 := v2.Dot(f.v1)
	v = (f.d11*d20 - f.d01*d21) / f.denom
	w = (f.d00*d21 - f.d01*d20) / f.denom
	u = 1 - v - w
	return u, v, w
}

// triangle is a projected face with its texture coordinates.
type triangle struct {
	v  [3]screenVertex
	uv [3]math.Vec2
}

// perspective holds 1/z and uv/z per vertex. Both are affine in screen
// space, so they can be interpolated with screen barycentrics and divided
// afterwards to recover the true surface uv.
type perspective struct {
	invZ  [3]float32
	uvInv [3]math.Vec2
}

func newPerspective(t *triangle) perspective {
	var p perspective
	for i := range 3 {
		p.invZ[i] = 1 / t.v[i].Z
		p.uvInv[i] = t.uv[i].Scale(p.invZ[i])
	}
	return p
}

// uv returns the perspective-correct texture coordinate for barycentric
// weights (u, v, w). It reports false if the interpolated 1/z is zero.
func (p *perspective) uv(u, v, w float32) (math.Vec2, bool) {
	invZ := u*p.invZ[0] + v*p.invZ[1] + w*p.invZ[2]
	if invZ == 0 {
		return math.Vec2{}, false
	}
	return math.Vec2{
		X: (u*p.uvInv[0].X + v*p.uvInv[1].X + w*p.uvInv[2].X) / invZ,
		Y: (u*p.uvInv[0].Y + v*p.uvInv[1].Y + w*p.uvInv[2].Y) / invZ,
	}, true
}

// texelIndex maps a texture coordinate to a nearest texel index in
// [0, size-1]. NaN maps to 0.
func texelIndex(t float32, size int) int {
	f := t * float32(size-1)
	if !(f > 0) {
		return 0
	}
	if f >= float32(size-1) {
		return size - 1
	}
	return int(f)
}

// fillTriangle writes the textured pixels of t into fb and returns how many
// were written. It reports false for a zero-area triangle.
func fillTriangle(fb *framebuffer.FrameBuffer, t *triangle, tex *texture.Texture) (int, bool) {
	frame, ok := newBaryFrame(t.v[0].pos(), t.v[1].pos(), t.v[2].pos())
	if !ok {
		return 0, false
	}

	width, height := fb.Size()
	minX := pixelBound(gomath.Floor, t.v[0].X, t.v[1].X, t.v[2].X, width, false)
	maxX := pixelBound(gomath.Ceil, t.v[0].X, t.v[1].X, t.v[2].X, width, true)
	minY := pixelBound(gomath.Floor, t.v[0].Y, t.v[1].Y, t.v[2].Y, height, false)
	maxY := pixelBound(gomath.Ceil, t.v[0].Y, t.v[1].Y, t.v[2].Y, height, true)

	persp := newPerspective(t)
	dst := fb.Pix()
	src := tex.Pix
	written := 0

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			u, v, w := frame.weights(math.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5})
			if u < 0 || v < 0 || w < 0 {
				continue
			}

			uv, ok := persp.uv(u, v, w)
			if !ok {
				continue
			}

			si := tex.Offset(texelIndex(uv.X, tex.Width), texelIndex(uv.Y, tex.Height))
			di := fb.PixOffset(x, y)
			copy(dst[di:di+4], src[si:si+4])
			written++
		}
	}

	return written, true
}

// pixelBound rounds the min (or max) of three coordinates with round and
// clamps the result to [0, size-1].
func pixelBound(round func(float64) float64, a, b, c float32, size int, upper bool) int {
	var m float32
	if upper {
		m = max(a, b, c)
	} else {
		m = min(a, b, c)
	}
	f := round(float64(m))
	if !(f > 0) {
		return 0
	}
	if f > float64(size-1) {
		return size - 1
	}
	return int(f)
}
