package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

func applyOverrides(base geometry.CameraConfig, overrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(overrides) > 0 {
		return geometry.MergeCameraConfig(base, overrides[0])
	}
	return base
}

// NewSimpleScene creates three spheres (diffuse, glass, metal) on a large ground sphere
func NewSimpleScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := applyOverrides(geometry.CameraConfig{
		Position:    core.NewVec3(0, 1, -4),
		LookAt:      core.NewVec3(0, 0.5, 0),
		VFov:        50,
		AspectRatio: 16.0 / 9.0,
		Aperture:    0.05,
	}, cameraOverrides)

	s := NewScene(cameraConfig, SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	diffuse := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	glass := material.NewClearDielectric(1.5)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
		geometry.NewSphere(core.NewVec3(0, 0.5, 0), 0.5, diffuse),
		// Right of the camera sits at -X when looking down +Z
		geometry.NewSphere(core.NewVec3(1.1, 0.5, 0), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1.1, 0.5, 0), 0.5, gold),
	)

	return s
}

// NewSingleSphereScene creates one blue diffuse sphere of radius 0.5 at (0,0,1)
// seen from a camera at the origin
func NewSingleSphereScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := applyOverrides(geometry.CameraConfig{
		Position:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, 1),
		VFov:          90,
		AspectRatio:   1,
		FocusDistance: 1,
	}, cameraOverrides)

	s := NewScene(cameraConfig, SamplingConfig{
		Width:           200,
		Height:          200,
		SamplesPerPixel: 16,
		MaxDepth:        50,
	})

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 1), 0.5, material.NewLambertian(core.NewVec3(0, 0, 1))))
	return s
}

// NewDebugScene renders the simple layout with the flat diagnostic material everywhere
func NewDebugScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := NewSimpleScene(cameraOverrides...)

	debug := material.NewDebug()
	for i, shape := range s.Shapes {
		if sphere, ok := shape.(*geometry.Sphere); ok {
			s.Shapes[i] = geometry.NewSphere(sphere.Center, sphere.Radius, debug)
		}
	}
	s.SamplingConfig.SamplesPerPixel = 16
	return s
}

// NewMotionScene creates spheres moving sideways during an open shutter
func NewMotionScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := applyOverrides(geometry.CameraConfig{
		Position:     core.NewVec3(0, 1, -5),
		LookAt:       core.NewVec3(0, 0.5, 0),
		VFov:         45,
		AspectRatio:  16.0 / 9.0,
		ShutterOpen:  0,
		ShutterClose: 1,
	}, cameraOverrides)

	s := NewScene(cameraConfig, SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	red := material.NewLambertian(core.NewVec3(0.7, 0.1, 0.1))
	steel := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.1)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
		geometry.NewMovingSphere(core.NewVec3(-1.5, 0.5, 0), core.NewVec3(0.6, 0, 0), 0.5, red),
		geometry.NewMovingSphere(core.NewVec3(1.0, 0.5, 1), core.NewVec3(0, 0.4, 0), 0.5, steel),
		geometry.NewSphere(core.NewVec3(0, 0.35, -1), 0.35, material.NewClearDielectric(1.5)),
	)

	return s
}
