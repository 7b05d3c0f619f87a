package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

func mustSphere(t *testing.T, center core.Vec3, radius float64) *Sphere {
	t.Helper()
	s, err := NewSphere(center, radius)
	if err != nil {
		t.Fatalf("NewSphere(%v, %v): %v", center, radius, err)
	}
	return s
}

func TestNewSphere_InvalidRadius(t *testing.T) {
	for _, radius := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewSphere(core.Vec3{}, radius); !errors.Is(err, ErrInvalidRadius) {
			t.Errorf("Expected ErrInvalidRadius for radius %v, got %v", radius, err)
		}
	}
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	var rec core.HitRecord
	if sphere.Hit(ray, 0.001, 1000.0, &rec) {
		t.Errorf("Expected miss, but got hit at t=%f", rec.T)
	}
}

func TestSphere_Hit_PointingAway(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, -1), 0.5)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	rec := core.HitRecord{T: 123}
	if sphere.Hit(ray, 0, math.Inf(1), &rec) {
		t.Fatalf("Expected miss for ray pointing away, got hit at t=%f", rec.T)
	}
	if rec.T != 123 {
		t.Errorf("Record must not change on a miss, got %+v", rec)
	}
}

func TestSphere_Hit_TangentIsMiss(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0)
	// Grazes the sphere at (1,0,0), discriminant is exactly zero
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	var rec core.HitRecord
	if sphere.Hit(ray, 0.001, 1000.0, &rec) {
		t.Errorf("Expected tangent ray to miss, got hit at t=%f", rec.T)
	}
}

func TestSphere_Hit_EntryAndExit(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "through center from outside",
			rayOrigin:      core.NewVec3(0, 0, 5),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      4.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 5),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      2.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "from inside uses exit point",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			var rec core.HitRecord
			if !sphere.Hit(ray, 0.001, 1000.0, &rec) {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(rec.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, rec.T)
			}
			if rec.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, rec.Normal)
			}
			if math.Abs(rec.Normal.Length()-1.0) > 1e-9 {
				t.Errorf("Expected unit normal, got length %f", rec.Normal.Length())
			}
			if rec.Point.Subtract(ray.At(rec.T)).Length() > 1e-12 {
				t.Errorf("Hit point %v does not lie on the ray at t=%f", rec.Point, rec.T)
			}
		})
	}
}

func TestSphere_Hit_NormalPointsAwayFromCenter(t *testing.T) {
	center := core.NewVec3(1, -2, -5)
	sphere := mustSphere(t, center, 1.5)
	origins := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(10, 3, -4),
		core.NewVec3(-7, -9, 2),
	}

	for _, origin := range origins {
		ray := core.NewRay(origin, center.Subtract(origin))
		var rec core.HitRecord
		if !sphere.Hit(ray, 0, math.Inf(1), &rec) {
			t.Fatalf("Expected ray from %v through the center to hit", origin)
		}
		if rec.Normal.Dot(rec.Point.Subtract(center)) <= 0 {
			t.Errorf("Normal %v does not point away from center", rec.Normal)
		}
		if math.Abs(rec.Normal.Length()-1.0) > 1e-9 {
			t.Errorf("Expected unit normal, got length %f", rec.Normal.Length())
		}
		if rec.Normal.Dot(ray.Direction) >= 0 {
			t.Errorf("Expected entry point facing the ray origin, normal %v", rec.Normal)
		}
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	var rec core.HitRecord
	if sphere.Hit(ray, 0.001, 0.5, &rec) {
		t.Errorf("Expected miss when tMax is before the sphere, got t=%f", rec.T)
	}

	// tMin past the entry point falls back to the exit point
	if !sphere.Hit(ray, 1.5, 1000.0, &rec) {
		t.Fatal("Expected exit hit")
	}
	if math.Abs(rec.T-3.0) > 1e-9 {
		t.Errorf("Expected exit at t=3, got t=%f", rec.T)
	}

	// Both bounds are inclusive
	if !sphere.Hit(ray, 1.0, 1.0, &rec) {
		t.Error("Expected hit exactly at tMin == tMax == root")
	}
}
