package geometry

import "github.com/df07/go-diffuse-raytracer/pkg/core"

// HittableList is an ordered aggregate of hittables that is itself a hittable.
// It is filled before rendering and only read while rendering.
type HittableList struct {
	objects []core.Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...core.Hittable) *HittableList {
	list := &HittableList{}
	for _, obj := range objects {
		list.Add(obj)
	}
	return list
}

// Add appends an object to the list
func (l *HittableList) Add(obj core.Hittable) {
	l.objects = append(l.objects, obj)
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Objects returns a copy of the member slice
func (l *HittableList) Objects() []core.Hittable {
	return append([]core.Hittable(nil), l.objects...)
}

// Hit scans every member once, shrinking tMax to the closest hit so far,
// so rec ends up holding the nearest intersection across all members.
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64, rec *core.HitRecord) bool {
	var temp core.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, obj := range l.objects {
		if obj.Hit(ray, tMin, closestSoFar, &temp) {
			hitAnything = true
			closestSoFar = temp.T
			*rec = temp
		}
	}

	return hitAnything
}
