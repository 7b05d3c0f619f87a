package integrator

import (
	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// NormalIntegrator maps the surface normal at the first hit to a color.
// It never scatters and ignores the bounce budget and sampler.
type NormalIntegrator struct{}

// RayColor returns 0.5*(n+1) on a hit and the sky gradient on a miss
func (NormalIntegrator) RayColor(ray core.Ray, world core.Hittable, _ core.Sampler, _ int) core.Vec3 {
	hit, isHit := hitWorld(world, ray, 0)
	if !isHit {
		return SkyGradient(ray)
	}
	return hit.Normal.AddScalar(1.0).Multiply(0.5)
}
