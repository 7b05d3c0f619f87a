package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestNewDefaultCamera_Basis(t *testing.T) {
	camera := NewDefaultCamera()

	if camera.Origin() != core.NewVec3(0, 0, 0) {
		t.Errorf("Expected origin at zero, got %v", camera.Origin())
	}
	if camera.LowerLeftCorner() != core.NewVec3(-2, -1, -1) {
		t.Errorf("Expected lower-left (-2,-1,-1), got %v", camera.LowerLeftCorner())
	}
	if camera.Horizontal() != core.NewVec3(4, 0, 0) {
		t.Errorf("Expected horizontal (4,0,0), got %v", camera.Horizontal())
	}
	if camera.Vertical() != core.NewVec3(0, 2, 0) {
		t.Errorf("Expected vertical (0,2,0), got %v", camera.Vertical())
	}
}

func TestCamera_GetRay(t *testing.T) {
	camera := NewDefaultCamera()

	tests := []struct {
		name     string
		u, v     float64
		expected core.Vec3
	}{
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"extrapolated", 1.25, -0.5, core.NewVec3(3, -2, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.u, tt.v)
			if ray.Origin != camera.Origin() {
				t.Errorf("Expected ray origin at camera origin, got %v", ray.Origin)
			}
			if ray.Direction != tt.expected {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestNewCamera_MatchesDefaultCamera(t *testing.T) {
	camera, err := NewCamera(DefaultCameraConfig())
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	reference := NewDefaultCamera()

	const tolerance = 1e-12
	if !vecNear(camera.Origin(), reference.Origin(), tolerance) ||
		!vecNear(camera.LowerLeftCorner(), reference.LowerLeftCorner(), tolerance) ||
		!vecNear(camera.Horizontal(), reference.Horizontal(), tolerance) ||
		!vecNear(camera.Vertical(), reference.Vertical(), tolerance) {
		t.Errorf("Generalized camera %+v differs from reference %+v", camera, reference)
	}
}

func TestNewCamera_LooksAtTarget(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(3, 3, 2),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 16.0 / 9.0,
	}
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	center := camera.GetRay(0.5, 0.5)
	toTarget := config.LookAt.Subtract(config.Center).Normalize()
	if !vecNear(center.Direction.Normalize(), toTarget, 1e-9) {
		t.Errorf("Expected center ray toward %v, got %v", toTarget, center.Direction.Normalize())
	}

	// The image plane is one unit in front of the camera
	if math.Abs(center.Direction.Length()-1.0) > 1e-9 {
		t.Errorf("Expected focal distance 1, got %f", center.Direction.Length())
	}

	ratio := camera.Horizontal().Length() / camera.Vertical().Length()
	if math.Abs(ratio-config.AspectRatio) > 1e-9 {
		t.Errorf("Expected aspect %f, got %f", config.AspectRatio, ratio)
	}
	if math.Abs(camera.Horizontal().Dot(camera.Vertical())) > 1e-9 {
		t.Error("Expected orthogonal horizontal and vertical spans")
	}
}

func TestNewCamera_InvalidConfigs(t *testing.T) {
	base := DefaultCameraConfig()

	tests := []struct {
		name   string
		mutate func(c *CameraConfig)
	}{
		{"center equals look-at", func(c *CameraConfig) { c.LookAt = c.Center }},
		{"zero up", func(c *CameraConfig) { c.Up = core.Vec3{} }},
		{"up parallel to view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 3) }},
		{"zero fov", func(c *CameraConfig) { c.VFov = 0 }},
		{"straight fov", func(c *CameraConfig) { c.VFov = 180 }},
		{"negative aspect", func(c *CameraConfig) { c.AspectRatio = -1 }},
		{"NaN aspect", func(c *CameraConfig) { c.AspectRatio = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := base
			tt.mutate(&config)
			camera, err := NewCamera(config)
			if !errors.Is(err, ErrInvalidCamera) {
				t.Errorf("Expected ErrInvalidCamera, got %v", err)
			}
			if camera != nil {
				t.Errorf("Expected nil camera, got %+v", camera)
			}
		})
	}
}
