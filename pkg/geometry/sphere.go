package geometry

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Sphere represents a sphere shape. Velocity moves the center linearly over
// shutter time; a zero velocity gives a static sphere.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
	Velocity core.Vec3
}

// NewSphere creates a new static sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// NewMovingSphere creates a sphere whose center travels by velocity per unit of shutter time
func NewMovingSphere(center, velocity core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
		Velocity: velocity,
	}
}

// CenterAt returns the sphere center at the given shutter time
func (s *Sphere) CenterAt(time float64) core.Vec3 {
	return s.Center.Add(s.Velocity.Multiply(time))
}

// NormalAt returns the outward unit normal for a point on the sphere surface
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return s.normalAt(point, s.Center)
}

func (s *Sphere) normalAt(point, center core.Vec3) core.Vec3 {
	return point.Subtract(center).Divide(s.Radius)
}

// Hit tests if a ray intersects with the sphere within [tMin, tMax]
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	center := s.CenterAt(ray.Time)

	// |O + tD - C|² = r²  =>  a t² + b t + c = 0
	oc := ray.Origin.Subtract(center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / (2 * a)
	if root < tMin || root > tMax {
		// Origin inside the sphere, or the near root is behind the bias
		root = (-b + sqrtD) / (2 * a)
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hitRecord := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}
	hitRecord.SetFaceNormal(ray, s.normalAt(hitRecord.Point, center))

	return hitRecord, true
}
