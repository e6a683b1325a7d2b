package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T         float64  // Parameter t along the ray
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Unit surface normal, always facing the incoming ray
	FrontFace bool     // Whether the ray hit the outside of the surface
	Material  Material // Material of the hit object, shared with other shapes
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The outgoing ray
	Attenuation Vec3 // Color attenuation
}

// Material interface for surfaces that scatter rays.
// Implementations must be immutable so one instance can be shared by many shapes.
type Material interface {
	// Scatter returns the outgoing ray and its attenuation, or false when the ray is absorbed
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	NormalAt(point Vec3) Vec3
}

// Camera generates primary rays from normalized image coordinates
type Camera interface {
	GetRay(u, v float64, sampler Sampler) Ray
}

// Scene is the read-only view of the world used by integrators and renderers
type Scene interface {
	GetCamera() Camera
	GetBackgroundColors() (horizon, zenith Vec3)
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}
