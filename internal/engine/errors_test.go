package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParamErrorIs(t *testing.T) {
	err := Invalid("mesh.BuildSphere", "lat", 0, "must be >= 1")

	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatal("ParamError should match ErrInvalidParameter")
	}

	wrapped := fmt.Errorf("updating scene: %w", err)
	if !errors.Is(wrapped, ErrInvalidParameter) {
		t.Error("wrapped ParamError should still match ErrInvalidParameter")
	}

	var pe *ParamError
	if !errors.As(wrapped, &pe) {
		t.Fatal("errors.As should find *ParamError")
	}
	if pe.Param != "lat" {
		t.Errorf("Param = %q, want lat", pe.Param)
	}
}

func TestParamErrorMessage(t *testing.T) {
	err := Invalid("camera.Build", "far", float32(0.05), "must be greater than near")
	msg := err.Error()
	for _, want := range []string{"camera.Build", "invalid parameter", "far=0.05", "greater than near"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}
