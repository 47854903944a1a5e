package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2InUnitSquare(t *testing.T) {
	tests := []struct {
		v    Vec2
		want bool
	}{
		{Vec2{0, 0}, true},
		{Vec2{1, 1}, true},
		{Vec2{0.5, 0.25}, true},
		{Vec2{-0.001, 0.5}, false},
		{Vec2{0.5, 1.001}, false},
	}
	for _, tt := range tests {
		if got := tt.v.InUnitSquare(); got != tt.want {
			t.Errorf("%v.InUnitSquare() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", got)
	}
}

func TestVec3Dot(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}
	if got := a.Dot(b); got != 12 {
		t.Errorf("Vec3.Dot() = %v, want 12", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Error("1.5 should be finite")
	}
	if IsFinite(float32(math.NaN())) {
		t.Error("NaN should not be finite")
	}
	if IsFinite(float32(math.Inf(1))) {
		t.Error("+Inf should not be finite")
	}
	if (Vec3{1, float32(math.Inf(-1)), 0}).IsFinite() {
		t.Error("vector with -Inf should not be finite")
	}
}
