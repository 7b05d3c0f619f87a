package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// ErrInvalidCamera is returned for camera configurations that cannot produce a basis
var ErrInvalidCamera = errors.New("invalid camera configuration")

// CameraConfig contains the positioning and projection of a pinhole camera.
// The image plane sits one unit in front of Center.
type CameraConfig struct {
	Center      core.Vec3 // Camera position (look from)
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up direction
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// DefaultCameraConfig describes the fixed reference camera: origin at zero,
// looking down -Z, 90 degree vertical field of view, 2:1 aspect ratio
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 2.0,
	}
}

// Validate checks that the configuration yields a non-degenerate basis
func (c CameraConfig) Validate() error {
	view := c.LookAt.Subtract(c.Center)
	switch {
	case view.IsZero():
		return fmt.Errorf("%w: center and look-at coincide at %v", ErrInvalidCamera, c.Center)
	case view.Cross(c.Up).LengthSquared() == 0:
		return fmt.Errorf("%w: up %v is zero or parallel to the view direction", ErrInvalidCamera, c.Up)
	case !(c.VFov > 0 && c.VFov < 180):
		return fmt.Errorf("%w: vertical fov %v must be in (0, 180)", ErrInvalidCamera, c.VFov)
	case !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 1):
		return fmt.Errorf("%w: aspect ratio %v must be positive", ErrInvalidCamera, c.AspectRatio)
	}
	return nil
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewDefaultCamera creates the fixed reference camera with its exact basis vectors
func NewDefaultCamera() *Camera {
	return &Camera{
		origin:          core.NewVec3(0, 0, 0),
		lowerLeftCorner: core.NewVec3(-2, -1, -1),
		horizontal:      core.NewVec3(4, 0, 0),
		vertical:        core.NewVec3(0, 2, 0),
	}
}

// NewCamera creates a camera from a look-at configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	halfHeight := math.Tan(mgl64.DegToRad(config.VFov) / 2)
	halfWidth := config.AspectRatio * halfHeight

	// Rows of the view matrix are the camera's right, up and backward axes
	view := mgl64.LookAtV(toMgl(config.Center), toMgl(config.LookAt), toMgl(config.Up))
	u := fromMgl(view.Row(0).Vec3())
	v := fromMgl(view.Row(1).Vec3())
	w := fromMgl(view.Row(2).Vec3())

	origin := config.Center
	horizontal := u.Multiply(2 * halfWidth)
	vertical := v.Multiply(2 * halfHeight)
	lowerLeftCorner := origin.
		Subtract(u.Multiply(halfWidth)).
		Subtract(v.Multiply(halfHeight)).
		Subtract(w)

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}, nil
}

// GetRay generates a ray for image-plane coordinates (u, v), nominally in [0,1].
// Values outside that range extrapolate linearly.
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Origin returns the camera position
func (c *Camera) Origin() core.Vec3 { return c.origin }

// LowerLeftCorner returns the lower-left corner of the image plane
func (c *Camera) LowerLeftCorner() core.Vec3 { return c.lowerLeftCorner }

// Horizontal returns the horizontal span of the image plane
func (c *Camera) Horizontal() core.Vec3 { return c.horizontal }

// Vertical returns the vertical span of the image plane
func (c *Camera) Vertical() core.Vec3 { return c.vertical }

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
