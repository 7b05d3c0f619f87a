package scene

import "github.com/df07/go-diffuse-raytracer/pkg/core"

// NewReferenceScene creates the two-sphere scene: a small sphere in front of
// the camera resting on a huge sphere that acts as the ground
func NewReferenceScene() *Scene {
	s, _ := FromSpheres(nil, nil)

	// Both radii are positive so these cannot fail
	_ = s.AddSphere(core.NewVec3(0, 0, -1), 0.5)
	_ = s.AddSphere(core.NewVec3(0, -100.5, -1), 100)

	return s
}

// NewEmptyScene creates a scene with no geometry; every ray sees the sky
func NewEmptyScene() *Scene {
	s, _ := FromSpheres(nil, nil)
	return s
}
