package mesh

import (
	"fmt"

	"github.com/Faultbox/texsphere/internal/engine"
	"github.com/Faultbox/texsphere/pkg/math"
)

// New builds a mesh from caller-supplied geometry with an identity model
// transform. The slices are used as-is, not copied.
func New(vertices []math.Vec3, texCoords []math.Vec2, faces []Face) (*Mesh, error) {
	const op = "mesh.New"
	if len(vertices) != len(texCoords) {
		return nil, engine.Invalid(op, "texCoords", len(texCoords),
			fmt.Sprintf("length must match %d vertices", len(vertices)))
	}
	for i, v := range vertices {
		if !v.IsFinite() {
			return nil, engine.Invalid(op, fmt.Sprintf("vertices[%d]", i), v, "must be finite")
		}
	}
	for i, tc := range texCoords {
		if !tc.InUnitSquare() {
			return nil, engine.Invalid(op, fmt.Sprintf("texCoords[%d]", i), tc, "components must lie in [0,1]")
		}
	}
	n := len(vertices)
	for i, f := range faces {
		if f.A < 0 || f.A >= n || f.B < 0 || f.B >= n || f.C < 0 || f.C >= n {
			return nil, engine.Invalid(op, fmt.Sprintf("faces[%d]", i), f,
				fmt.Sprintf("indices must be in [0,%d)", n))
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
