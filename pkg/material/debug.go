package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// DebugColor is the default diagnostic tint
var DebugColor = core.NewVec3(1.0, 0.0, 1.0)

// Debug is a flat-colored diffuse material for visualizing geometry
type Debug struct {
	Color core.Vec3
}

// NewDebug creates a debug material with the default diagnostic color
func NewDebug() *Debug {
	return &Debug{Color: DebugColor}
}

// Scatter bounces uniformly into the hemisphere around the normal
func (d *Debug) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	direction := core.SampleHemisphere(hit.Normal, sampler.Get3D())
	if direction.NearZero() {
		direction = hit.Normal
	}

	return core.ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: d.Color,
	}, true
}
