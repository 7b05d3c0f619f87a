package scene

import (
	"fmt"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering.
// It is built once and only read while rendering.
type Scene struct {
	Camera       *renderer.Camera
	CameraConfig renderer.CameraConfig
	World        *geometry.HittableList
}

// SphereSpec describes one sphere of a scene
type SphereSpec struct {
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

// FromSpheres builds a scene from sphere descriptions.
// A nil camera config selects the fixed reference camera.
func FromSpheres(specs []SphereSpec, cameraConfig *renderer.CameraConfig) (*Scene, error) {
	s := &Scene{
		Camera:       renderer.NewDefaultCamera(),
		CameraConfig: renderer.DefaultCameraConfig(),
		World:        geometry.NewHittableList(),
	}

	if cameraConfig != nil {
		camera, err := renderer.NewCamera(*cameraConfig)
		if err != nil {
			return nil, err
		}
		s.Camera = camera
		s.CameraConfig = *cameraConfig
	}

	for i, spec := range specs {
		if err := s.AddSphere(core.NewVec3(spec.Center[0], spec.Center[1], spec.Center[2]), spec.Radius); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}
	return s, nil
}

// AddSphere adds a sphere to the scene. Scenes must be complete before rendering starts.
func (s *Scene) AddSphere(center core.Vec3, radius float64) error {
	sphere, err := geometry.NewSphere(center, radius)
	if err != nil {
		return err
	}
	s.World.Add(sphere)
	return nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
