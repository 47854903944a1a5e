// Package mesh builds the triangle meshes the software rasterizer draws.
package mesh

import "github.com/Faultbox/texsphere/pkg/math"

// Face is a triangle given as three indices into Mesh.Vertices/TexCoords.
type Face struct {
	A, B, C int
}

// Mesh holds object-space geometry ready for rasterization.
// It is not mutated after construction; a parameter change builds a new one.
type Mesh struct {
	Vertices  []math.Vec3
	TexCoords []math.Vec2 // index-aligned with Vertices
	Faces     []Face

	// Model places the mesh in world space. Identity for generated spheres;
	// the zero matrix is treated as identity.
	Model math.Mat4

	Bounds Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh in object space.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int { return len(m.Faces) }

// FaceNormal returns the unnormalized object-space normal of face i,
// cross(B-A, C-A). Its length is twice the triangle area.
func (m *Mesh) FaceNormal(i int) math.Vec3 {
	f := m.Faces[i]
	a, b, c := m.Vertices[f.A], m.Vertices[f.B], m.Vertices[f.C]
	return b.Sub(a).Cross(c.Sub(a))
}

// DegenerateFaces counts faces whose normal length is below eps.
// Sphere poles produce one such face per longitude column.
func (m *Mesh) DegenerateFaces(eps float32) int {
	n := 0
	for i := range m.Faces {
		if m.FaceNormal(i).Length() < eps {
			n++
		}
	}
	return n
}

func computeBounds(vertices []math.Vec3) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		b.Min.X = min(b.Min.X, v.X)
		b.Min.Y = min(b.Min.Y, v.Y)
		b.Min.Z = min(b.Min.Z, v.Z)
		b.Max.X = max(b.Max.X, v.X)
		b.Max.Y = max(b.Max.Y, v.Y)
		b.Max.Z = max(b.Max.Z, v.Z)
	}
	return b
}
