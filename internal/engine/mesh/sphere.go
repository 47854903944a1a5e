package mesh

import (
	gomath "math"

	"github.com/Faultbox/texsphere/internal/engine"
	"github.com/Faultbox/texsphere/pkg/math"
)

// BuildSphere creates a UV sphere centered at the origin.
//
// Ring i (0..lat) sits at polar angle theta = pi*i/lat, column j (0..lon) at
// azimuth phi = 2*pi*j/lon. Column lon repeats column 0 so each ring's
// texture U runs continuously from 0 to 1; seam vertices are not merged.
//
// Each grid cell emits (current, next, current+1) and
// (current+1, next, next+1). The renderer's culling depends on this order.
func BuildSphere(radius float32, latSubdivisions, lonSubdivisions int) (*Mesh, error) {
	const op = "mesh.BuildSphere"
	if !math.IsFinite(radius) || radius <= 0 {
		return nil, engine.Invalid(op, "radius", radius, "must be a positive finite number")
	}
	if latSubdivisions <= 0 {
		return nil, engine.Invalid(op, "latSubdivisions", latSubdivisions, "must be >= 1")
	}
	if lonSubdivisions <= 0 {
		return nil, engine.Invalid(op, "lonSubdivisions", lonSubdivisions, "must be >= 1")
	}

	cols := lonSubdivisions + 1
	count := (latSubdivisions + 1) * cols
	vertices := make([]math.Vec3, 0, count)
	texCoords := make([]math.Vec2, 0, count)

	for i := 0; i <= latSubdivisions; i++ {
		theta := gomath.Pi * float64(i) / float64(latSubdivisions)
		y := float32(gomath.Cos(theta))
		r := float32(gomath.Sin(theta))

		for j := 0; j <= lonSubdivisions; j++ {
			phi := 2 * gomath.Pi * float64(j) / float64(lonSubdivisions)
			x := r * float32(gomath.Cos(phi))
			z := r * float32(gomath.Sin(phi))

			vertices = append(vertices, math.Vec3{X: x, Y: y, Z: z}.Scale(radius))
			texCoords = append(texCoords, math.Vec2{
				X: float32(j) / float32(lonSubdivisions),
				Y: float32(i) / float32(latSubdivisions),
			})
		}
	}

	faces := make([]Face, 0, 2*latSubdivisions*lonSubdivisions)
	for i := 0; i < latSubdivisions; i++ {
		for j := 0; j < lonSubdivisions; j++ {
			current := i*cols + j
			next := current + cols

			faces = append(faces,
				Face{current, next, current + 1},
				Face{current + 1, next, next + 1},
			)
		}
	}

	return &Mesh{
		Vertices:  vertices,
		TexCoords: texCoords,
		Faces:     faces,
		Model:     math.Identity(),
		Bounds:    computeBounds(vertices),
	}, nil
}
