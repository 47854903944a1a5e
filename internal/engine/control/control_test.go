package control

import (
	"testing"

	"github.com/Faultbox/texsphere/internal/engine/scene"
)

func TestApply(t *testing.T) {
	tests := []struct {
		action Action
		check  func(before, after scene.Params) bool
	}{
		{ActionPitchUp, func(b, a scene.Params) bool { return a.Orbit.Pitch == b.Orbit.Pitch+5 }},
		{ActionPitchDown, func(b, a scene.Params) bool { return a.Orbit.Pitch == b.Orbit.Pitch-5 }},
		{ActionYawLeft, func(b, a scene.Params) bool { return a.Orbit.Yaw == b.Orbit.Yaw-5 }},
		{ActionYawRight, func(b, a scene.Params) bool { return a.Orbit.Yaw == b.Orbit.Yaw+5 }},
		{ActionZoomIn, func(b, a scene.Params) bool { return a.Orbit.Distance == b.Orbit.Distance-0.25 }},
		{ActionZoomOut, func(b, a scene.Params) bool { return a.Orbit.Distance == b.Orbit.Distance+0.25 }},
		{ActionRadiusUp, func(b, a scene.Params) bool { return a.Radius > b.Radius }},
		{ActionRadiusDown, func(b, a scene.Params) bool { return a.Radius < b.Radius }},
		{ActionLatUp, func(b, a scene.Params) bool { return a.LatDivisions == b.LatDivisions+1 }},
		{ActionLatDown, func(b, a scene.Params) bool { return a.LatDivisions == b.LatDivisions-1 }},
		{ActionLonUp, func(b, a scene.Params) bool { return a.LonDivisions == b.LonDivisions+1 }},
		{ActionLonDown, func(b, a scene.Params) bool { return a.LonDivisions == b.LonDivisions-1 }},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			c := New(scene.DefaultParams())
			before := c.Params
			if !c.Apply(tt.action) {
				t.Fatal("expected a parameter change")
			}
			if !tt.check(before, c.Params) {
				t.Errorf("unexpected params %+v", c.Params)
			}
		})
	}
}

func TestApplyNonParameterActions(t *testing.T) {
	c := New(scene.DefaultParams())
	for _, a := range []Action{ActionNone, ActionOpenTexture, ActionToggleTexture, ActionCapture, ActionQuit} {
		if c.Apply(a) {
			t.Errorf("%v should not change parameters", a)
		}
	}
}

func TestApplyClamps(t *testing.T) {
	c := New(scene.DefaultParams())
	c.Params.LatDivisions = c.Steps.MinLat
	if c.Apply(ActionLatDown) {
		t.Error("expected no change below the minimum")
	}
	if c.Params.LatDivisions != c.Steps.MinLat {
		t.Errorf("expected lat %d, got %d", c.Steps.MinLat, c.Params.LatDivisions)
	}

	c.Params.Orbit.Pitch = 88
	c.Apply(ActionPitchUp)
	if c.Params.Orbit.Pitch != c.Params.Orbit.MaxPitch {
		t.Errorf("expected pitch clamped to %v, got %v", c.Params.Orbit.MaxPitch, c.Params.Orbit.Pitch)
	}

	c.Params.Radius = c.Steps.MaxRadius
	if c.Apply(ActionRadiusUp) {
		t.Error("expected no change above the maximum radius")
	}
}

func TestDragAndWheel(t *testing.T) {
	c := New(scene.DefaultParams())

	if !c.Drag(10, 0) {
		t.Error("horizontal drag should change yaw")
	}
	if c.Drag(0, 0) {
		t.Error("empty drag should not change anything")
	}

	before := c.Params.Orbit.Distance
	if !c.Wheel(1) {
		t.Fatal("wheel should change distance")
	}
	if c.Params.Orbit.Distance >= before {
		t.Errorf("expected wheel up to move closer, %v -> %v", before, c.Params.Orbit.Distance)
	}
}

func TestActionString(t *testing.T) {
	if ActionCapture.String() != "capture" {
		t.Errorf("unexpected name %q", ActionCapture.String())
	}
	if Action(999).String() != "unknown" {
		t.Errorf("unexpected name %q", Action(999).String())
	}
}
