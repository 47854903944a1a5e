package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
	if !m.IsIdentity() {
		t.Error("IsIdentity should be true for Identity()")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestMulOrder(t *testing.T) {
	// Scale applied first, then translate
	scale := Mat4{
		2, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 2, 0,
		0, 0, 0, 1,
	}
	m := Translate(10, 0, 0).Mul(scale)
	got := m.MulPoint(Vec3{1, 1, 1})
	want := Vec3{12, 2, 2}
	if got != want {
		t.Errorf("Translate*Scale: got %v, want %v", got, want)
	}
}

func TestMulPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.MulPoint(Vec3{1, 2, 3})

	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("MulPoint: got %v, want %v", got, want)
	}
}

func TestMulPointIgnoresW(t *testing.T) {
	m := PerspectiveFov(float32(math.Pi/2), 1, 1, 10)
	p := Vec3{0, 0, -5}

	got := m.MulPoint(p)
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]

	// MulPoint must return the raw x, y, z rows without dividing by w.
	want := Vec3{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
	if got != want {
		t.Errorf("MulPoint = %v, want %v", got, want)
	}
	if w != 5 {
		t.Errorf("w = %f, want 5", w)
	}
}

func TestPerspectiveFov(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	aspect := float32(2.0)
	near := float32(0.1)
	far := float32(100.0)

	m := PerspectiveFov(fov, aspect, near, far)

	if m[11] != -1 {
		t.Errorf("PerspectiveFov [11] should be -1, got %f", m[11])
	}
	if m[15] != 0 {
		t.Errorf("PerspectiveFov [15] should be 0, got %f", m[15])
	}
	if abs(m[0]*aspect-m[5]) > 1e-5 {
		t.Errorf("x scale %f should be y scale %f / aspect", m[0], m[5])
	}

	// Depth maps near -> 0 and far -> far (far/w = 1).
	zNear := m.MulPoint(Vec3{0, 0, -near}).Z
	if abs(zNear) > 1e-5 {
		t.Errorf("near plane depth = %f, want 0", zNear)
	}
	zFar := m.MulPoint(Vec3{0, 0, -far}).Z
	if abs(zFar-far) > 1e-3 {
		t.Errorf("far plane depth = %f, want %f", zFar, far)
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	center := Vec3{0, 0, 0}
	up := Vec3{0, 1, 0}

	m := LookAt(eye, center, up)

	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}

	// Eye goes to the origin, center lies straight ahead on -Z.
	if got := m.MulPoint(eye); got.Length() > 1e-5 {
		t.Errorf("LookAt eye -> %v, want origin", got)
	}
	got := m.MulPoint(center)
	if abs(got.X) > 1e-5 || abs(got.Y) > 1e-5 || abs(got.Z+5) > 1e-5 {
		t.Errorf("LookAt center -> %v, want (0, 0, -5)", got)
	}
}

func TestLookAtOffAxis(t *testing.T) {
	eye := Vec3{3, 4, 0}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	got := m.MulPoint(Vec3{})
	if abs(got.X) > 1e-5 || abs(got.Y) > 1e-5 || abs(got.Z+5) > 1e-5 {
		t.Errorf("LookAt center -> %v, want (0, 0, -5)", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
