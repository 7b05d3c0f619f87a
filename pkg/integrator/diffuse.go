package integrator

import (
	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// DefaultAlbedo is the fraction of light kept at every diffuse bounce
const DefaultAlbedo = 0.5

// DiffuseIntegrator shades every surface as a grey diffuse reflector lit only by the sky
type DiffuseIntegrator struct {
	Albedo float64
	TMin   float64

	// AbsorbOnExhaustion returns black for rays that still hit geometry once
	// the bounce budget is spent. When false such rays fall back to the sky.
	AbsorbOnExhaustion bool
}

// NewDiffuseIntegrator creates an integrator with 50% albedo and sky-on-exhaustion termination
func NewDiffuseIntegrator() *DiffuseIntegrator {
	return &DiffuseIntegrator{
		Albedo: DefaultAlbedo,
		TMin:   ShadowEpsilon,
	}
}

// RayColor computes the color for a single ray by recursive diffuse scattering
func (d *DiffuseIntegrator) RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler, bouncesRemaining int) core.Vec3 {
	if bouncesRemaining < 0 {
		return d.exhausted(ray, world)
	}

	hit, isHit := hitWorld(world, ray, d.TMin)
	if !isHit {
		return SkyGradient(ray)
	}

	scattered := d.scatter(hit, sampler)
	return d.RayColor(scattered, world, sampler, bouncesRemaining-1).Multiply(d.Albedo)
}

// RayColorIterative is the loop form of RayColor. It draws the same random
// numbers in the same order and returns the same color.
func (d *DiffuseIntegrator) RayColorIterative(ray core.Ray, world core.Hittable, sampler core.Sampler, bouncesRemaining int) core.Vec3 {
	attenuation := 1.0
	for ; bouncesRemaining >= 0; bouncesRemaining-- {
		hit, isHit := hitWorld(world, ray, d.TMin)
		if !isHit {
			return SkyGradient(ray).Multiply(attenuation)
		}
		ray = d.scatter(hit, sampler)
		attenuation *= d.Albedo
	}
	return d.exhausted(ray, world).Multiply(attenuation)
}

// scatter picks a new direction around the normal: toward a random point in
// the unit sphere tangent to the surface at the hit point
func (d *DiffuseIntegrator) scatter(hit core.HitRecord, sampler core.Sampler) core.Ray {
	target := hit.Point.Add(hit.Normal).Add(core.SamplePointInUnitSphere(sampler))
	return core.NewRay(hit.Point, target.Subtract(hit.Point))
}

// exhausted is the color of a ray left over once the bounce budget is spent
func (d *DiffuseIntegrator) exhausted(ray core.Ray, world core.Hittable) core.Vec3 {
	if d.AbsorbOnExhaustion {
		if _, isHit := hitWorld(world, ray, d.TMin); isHit {
			return core.Vec3{}
		}
	}
	return SkyGradient(ray)
}
