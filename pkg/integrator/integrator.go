package integrator

import (
	"math"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// ShadowEpsilon is the minimum hit distance for scattered rays, keeping them
// from re-hitting the surface they leave
const ShadowEpsilon = 1e-4

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear color carried back along ray.
	// bouncesRemaining is the scatter budget; 0 still performs one hit test.
	RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler, bouncesRemaining int) core.Vec3
}

var (
	skyWhite = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue  = core.NewVec3(0.5, 0.7, 1.0)
)

// SkyGradient returns the background color for a ray that escapes the scene:
// white looking straight down, sky blue looking straight up.
func SkyGradient(ray core.Ray) core.Vec3 {
	unitDirection := ray.DirectionNormalized()
	t := 0.5 * (unitDirection.Y + 1.0)
	return skyWhite.Lerp(skyBlue, t)
}

// hitWorld runs one closest-hit query over [tMin, +Inf)
func hitWorld(world core.Hittable, ray core.Ray, tMin float64) (core.HitRecord, bool) {
	var rec core.HitRecord
	if world == nil {
		return rec, false
	}
	isHit := world.Hit(ray, tMin, math.Inf(1), &rec)
	return rec, isHit
}
