package mesh

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/texsphere/internal/engine"
	"github.com/Faultbox/texsphere/pkg/math"
)

func TestBuildSphereCounts(t *testing.T) {
	tests := []struct {
		lat, lon int
		vertices int
		faces    int
	}{
		{1, 1, 4, 2},
		{2, 4, 15, 16},
		{8, 16, 153, 256},
		{3, 7, 32, 42},
	}

	for _, tt := range tests {
		m, err := BuildSphere(1, tt.lat, tt.lon)
		if err != nil {
			t.Fatalf("BuildSphere(1, %d, %d) failed: %v", tt.lat, tt.lon, err)
		}
		if m.VertexCount() != tt.vertices {
			t.Errorf("lat=%d lon=%d: expected %d vertices, got %d", tt.lat, tt.lon, tt.vertices, m.VertexCount())
		}
		if len(m.TexCoords) != tt.vertices {
			t.Errorf("lat=%d lon=%d: expected %d texcoords, got %d", tt.lat, tt.lon, tt.vertices, len(m.TexCoords))
		}
		if m.FaceCount() != tt.faces {
			t.Errorf("lat=%d lon=%d: expected %d faces, got %d", tt.lat, tt.lon, tt.faces, m.FaceCount())
		}
	}
}

func TestBuildSphereIndicesInRange(t *testing.T) {
	m, err := BuildSphere(2, 5, 9)
	if err != nil {
		t.Fatalf("BuildSphere failed: %v", err)
	}
	n := m.VertexCount()
	for i, f := range m.Faces {
		for _, idx := range []int{f.A, f.B, f.C} {
			if idx < 0 || idx >= n {
				t.Fatalf("face %d index %d out of range [0,%d)", i, idx, n)
			}
		}
	}
}

func TestBuildSphereTexCoords(t *testing.T) {
	lat, lon := 6, 10
	m, err := BuildSphere(1, lat, lon)
	if err != nil {
		t.Fatalf("BuildSphere failed: %v", err)
	}

	for i, tc := range m.TexCoords {
		if !tc.InUnitSquare() {
			t.Errorf("texcoord %d = %v outside [0,1]", i, tc)
		}
	}

	// Each ring spans U from 0 to 1 and the seam columns coincide in space.
	for i := 0; i <= lat; i++ {
		first := i * (lon + 1)
		last := first + lon
		if m.TexCoords[first].X != 0 || m.TexCoords[last].X != 1 {
			t.Errorf("ring %d: U range %v..%v, want 0..1", i, m.TexCoords[first].X, m.TexCoords[last].X)
		}
		if d := m.Vertices[first].Sub(m.Vertices[last]).Length(); d > 1e-5 {
			t.Errorf("ring %d: seam vertices %v and %v differ by %v", i, m.Vertices[first], m.Vertices[last], d)
		}
	}
}

func TestBuildSphereRadius(t *testing.T) {
	radius := float32(2.5)
	m, err := BuildSphere(radius, 7, 11)
	if err != nil {
		t.Fatalf("BuildSphere failed: %v", err)
	}
	for i, v := range m.Vertices {
		if d := v.Length() - radius; d > 1e-4 || d < -1e-4 {
			t.Errorf("vertex %d length %v, want %v", i, v.Length(), radius)
		}
	}
	if m.Bounds.Max.Y != radius || m.Bounds.Min.Y > -radius+1e-4 {
		t.Errorf("bounds %+v do not span the radius", m.Bounds)
	}
	if !m.Model.IsIdentity() {
		t.Error("generated sphere should have an identity model transform")
	}
}

func TestBuildSphereFaceLayout(t *testing.T) {
	m, err := BuildSphere(1, 2, 4)
	if err != nil {
		t.Fatalf("BuildSphere failed: %v", err)
	}
	// Cell (1, 2): current = 1*5+2 = 7, next = 12
	want := []Face{{7, 12, 8}, {8, 12, 13}}
	idx := 2 * (1*4 + 2)
	for k, w := range want {
		if got := m.Faces[idx+k]; got != w {
			t.Errorf("face %d = %v, want %v", idx+k, got, w)
		}
	}
}

// With the fixed ring/column order every face's cross(B-A, C-A) points
// toward the sphere center. The only exceptions are the zero-area faces
// touching the poles.
func TestBuildSphereWindingConsistent(t *testing.T) {
	lat, lon := 8, 12
	m, err := BuildSphere(1, lat, lon)
	if err != nil {
		t.Fatalf("BuildSphere failed: %v", err)
	}

	const eps = 1e-6
	degenerate := 0
	for i, f := range m.Faces {
		n := m.FaceNormal(i)
		if n.Length() < eps {
			degenerate++
			continue
		}
		centroid := m.Vertices[f.A].Add(m.Vertices[f.B]).Add(m.Vertices[f.C]).Scale(1.0 / 3)
		if n.Dot(centroid) >= 0 {
			t.Errorf("face %d %v: normal %v not oriented toward center", i, f, n)
		}
	}

	if degenerate != 2*lon {
		t.Errorf("expected %d degenerate pole faces, got %d", 2*lon, degenerate)
	}
	if got := m.DegenerateFaces(eps); got != degenerate {
		t.Errorf("DegenerateFaces = %d, want %d", got, degenerate)
	}
}

func TestBuildSphereInvalid(t *testing.T) {
	tests := []struct {
		name     string
		radius   float32
		lat, lon int
	}{
		{"zero lat", 1, 0, 4},
		{"zero lon", 1, 4, 0},
		{"negative lat", 1, -2, 4},
		{"zero radius", 0, 4, 4},
		{"negative radius", -1, 4, 4},
		{"NaN radius", float32(gomath.NaN()), 4, 4},
		{"infinite radius", float32(gomath.Inf(1)), 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := BuildSphere(tt.radius, tt.lat, tt.lon)
			if !errors.Is(err, engine.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
			if m != nil {
				t.Error("expected no mesh on error")
			}
		})
	}
}

func TestNew(t *testing.T) {
	vertices := []math.Vec3{{X: 0}, {X: 1}, {Y: 1}}
	texCoords := []math.Vec2{{X: 0}, {X: 1}, {Y: 1}}

	m, err := New(vertices, texCoords, []Face{{0, 1, 2}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if m.FaceCount() != 1 || !m.Model.IsIdentity() {
		t.Errorf("unexpected mesh %+v", m)
	}
	if got := m.FaceNormal(0); got != (math.Vec3{Z: 1}) {
		t.Errorf("FaceNormal = %v, want (0,0,1)", got)
	}
}

func TestNewInvalid(t *testing.T) {
	vertices := []math.Vec3{{X: 0}, {X: 1}, {Y: 1}}
	texCoords := []math.Vec2{{X: 0}, {X: 1}, {Y: 1}}

	tests := []struct {
		name      string
		vertices  []math.Vec3
		texCoords []math.Vec2
		faces     []Face
	}{
		{"misaligned", vertices, texCoords[:2], []Face{{0, 1, 2}}},
		{"index too large", vertices, texCoords, []Face{{0, 1, 3}}},
		{"negative index", vertices, texCoords, []Face{{-1, 1, 2}}},
		{"texcoord out of range", vertices, []math.Vec2{{X: 0}, {X: 1.5}, {Y: 1}}, []Face{{0, 1, 2}}},
		{"non-finite vertex", []math.Vec3{{X: float32(gomath.NaN())}, {X: 1}, {Y: 1}}, texCoords, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.vertices, tt.texCoords, tt.faces); !errors.Is(err, engine.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}
