package material

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
	Albedo          core.Vec3 // Tint applied to every bounce, white for clear glass
}

// NewDielectric creates a new tinted dielectric material
func NewDielectric(refractiveIndex float64, albedo core.Vec3) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex, Albedo: albedo}
}

// NewClearDielectric creates a dielectric that does not tint light
func NewClearDielectric(refractiveIndex float64) *Dielectric {
	return NewDielectric(refractiveIndex, core.NewVec3(1, 1, 1))
}

// Scatter implements the Material interface for dielectric scattering.
// Glass always scatters: either a reflection or a refraction.
func (d *Dielectric) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	// Determine if we're entering or exiting the material
	refractionRatio := d.RefractiveIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()

	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var direction core.Vec3
	if mustReflect(refractionRatio, sinTheta) || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = unitDirection.Reflect(hit.Normal)
	} else {
		direction = unitDirection.Refract(hit.Normal, refractionRatio)
	}

	return core.ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: d.Albedo,
	}, true
}

// mustReflect reports total internal reflection. The critical angle itself reflects.
func mustReflect(refractionRatio, sinTheta float64) bool {
	return refractionRatio*sinTheta >= 1.0
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
