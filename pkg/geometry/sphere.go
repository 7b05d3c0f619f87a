package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// ErrInvalidRadius is returned for spheres whose radius is not positive
var ErrInvalidRadius = errors.New("sphere radius must be positive")

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) (*Sphere, error) {
	if !(radius > 0) || math.IsInf(radius, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	return &Sphere{
		Center: center,
		Radius: radius,
	}, nil
}

// Hit tests if a ray intersects with the sphere within [tMin, tMax].
// A tangent ray (zero discriminant) counts as a miss.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, rec *core.HitRecord) bool {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4.0*a*c
	if discriminant <= 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / (2.0 * a)
	if root < tMin || root > tMax {
		// Only the farther one remains, e.g. the ray starts inside the sphere
		root = (-b + sqrtD) / (2.0 * a)
		if root < tMin || root > tMax {
			return false
		}
	}

	rec.T = root
	rec.Point = ray.At(root)
	rec.Normal = rec.Point.Subtract(s.Center).Divide(s.Radius)
	return true
}
