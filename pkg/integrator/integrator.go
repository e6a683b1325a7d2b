package integrator

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear color carried back along a camera ray
	RayColor(ray core.Ray, scene core.Scene, sampler core.Sampler) core.Vec3
}

// Config contains the light transport limits shared by integrators
type Config struct {
	MaxDepth    int     // Maximum number of scatter events per path
	ShadowBias  float64 // Minimum hit distance, avoids re-hitting the surface just left
	FarDistance float64 // Maximum hit distance
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:    50,
		ShadowBias:  0.001,
		FarDistance: 1000.0,
	}
}

// MergeConfig fills zero-valued fields of override from base
func MergeConfig(base, override Config) Config {
	result := base
	if override.MaxDepth > 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.ShadowBias > 0 {
		result.ShadowBias = override.ShadowBias
	}
	if override.FarDistance > 0 {
		result.FarDistance = override.FarDistance
	}
	return result
}
