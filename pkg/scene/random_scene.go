package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// NewRandomScene creates the classic field of small random spheres around three
// large ones. Placement and materials are drawn from a generator seeded by seed.
func NewRandomScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraPosition := core.NewVec3(7.5, 2, -3)
	cameraTarget := core.NewVec3(0, 0, 0)

	defaultCameraConfig := geometry.CameraConfig{
		Position:      cameraPosition,
		LookAt:        cameraTarget,
		VFov:          90,
		AspectRatio:   800.0 / 600.0,
		Aperture:      0.1,
		FocusDistance: cameraPosition.Subtract(cameraTarget).Length(),
		ShutterOpen:   0,
		ShutterClose:  1,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig, SamplingConfig{
		Width:           800,
		Height:          600,
		SamplesPerPixel: 64,
		MaxDepth:        50,
	})

	sampler := core.NewSeededSampler(seed)

	ground := material.NewLambertian(core.NewVec3(0.5, 0.75, 0.0))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	keepOut := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(keepOut).Length() <= 0.9 {
				continue
			}

			s.Add(geometry.NewSphere(center, 0.2, randomMaterial(sampler)))
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewClearDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}

// randomMaterial picks diffuse (80%), metal (15%) or glass (5%)
func randomMaterial(sampler core.Sampler) core.Material {
	dice := sampler.Get1D()

	switch {
	case dice < 0.8:
		albedo := randomColor(sampler, 0, 1).MultiplyVec(randomColor(sampler, 0, 1))
		return material.NewLambertian(albedo)
	case dice < 0.95:
		roughness := core.RandomRange(0, 0.5, sampler.Get1D())
		return material.NewMetal(randomColor(sampler, 0.5, 1), roughness)
	default:
		return material.NewClearDielectric(1.5)
	}
}

func randomColor(sampler core.Sampler, lo, hi float64) core.Vec3 {
	v := sampler.Get3D()
	return core.NewVec3(
		core.RandomRange(lo, hi, v.X),
		core.RandomRange(lo, hi, v.Y),
		core.RandomRange(lo, hi, v.Z),
	)
}
