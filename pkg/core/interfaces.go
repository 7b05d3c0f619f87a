package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about the closest ray-object intersection found so far
type HitRecord struct {
	T      float64 // Parameter t along the ray
	Point  Vec3    // Point of intersection
	Normal Vec3    // Unit outward surface normal
}

// Hittable is anything a ray can be tested against.
//
// Hit must leave rec untouched when it returns false. When it returns true,
// rec holds the closest intersection with tMin <= T <= tMax.
type Hittable interface {
	Hit(ray Ray, tMin, tMax float64, rec *HitRecord) bool
}
