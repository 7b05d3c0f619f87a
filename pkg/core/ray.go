package core

import "errors"

// ErrZeroDirection is returned when a ray is built from a zero-length direction
var ErrZeroDirection = errors.New("ray direction must be non-zero")

// Ray represents a ray with an origin and direction.
// Direction is not required to be unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray without validating the direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NewRayChecked creates a new ray, rejecting a zero direction
func NewRayChecked(origin, direction Vec3) (Ray, error) {
	if direction.IsZero() {
		return Ray{}, ErrZeroDirection
	}
	return NewRay(origin, direction), nil
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// DirectionNormalized returns the unit vector of the raw direction.
// It is only used for the sky gradient and yields NaN for a zero direction.
func (r Ray) DirectionNormalized() Vec3 {
	return r.Direction.Divide(r.Direction.Length())
}
