package integrator

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// PathTracingIntegrator implements unidirectional path tracing as a bounded loop
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator. MaxDepth is
// used as given, so a zero budget renders black; zero ShadowBias and
// FarDistance take their DefaultConfig values.
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	merged := MergeConfig(DefaultConfig(), config)
	merged.MaxDepth = max(config.MaxDepth, 0)
	return &PathTracingIntegrator{config: merged}
}

// Config returns the effective integrator configuration
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor follows one path through the scene. Each bounce multiplies the
// throughput by the material attenuation; the path ends on the sky, on
// absorption, or with zero contribution once the depth budget is spent.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene core.Scene, sampler core.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for depth := pt.config.MaxDepth; depth > 0; depth-- {
		hit, isHit := scene.Hit(ray, pt.config.ShadowBias, pt.config.FarDistance)
		if !isHit {
			horizon, zenith := scene.GetBackgroundColors()
			return throughput.MultiplyVec(Sky(ray, horizon, zenith))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Depth budget exhausted: the remaining energy is dropped
	return core.Vec3{}
}

// Sky returns the vertical background gradient seen along ray
func Sky(ray core.Ray, horizon, zenith core.Vec3) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return core.Lerp(horizon, zenith, t)
}
