package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/loaders"
)

// NewGLTFScene creates a scene from a .gltf or .glb file
func NewGLTFScene(path string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	gltfScene, err := loaders.LoadGLTF(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load glTF file: %w", err)
	}

	return newSceneFromGLTF(gltfScene, cameraOverrides...), nil
}

func newSceneFromGLTF(gltfScene *loaders.GLTFScene, cameraOverrides ...geometry.CameraConfig) *Scene {
	var cameraConfig geometry.CameraConfig
	if gltfScene.Camera != nil {
		cameraConfig = *gltfScene.Camera
	} else {
		cameraConfig = framingCamera(gltfScene.Spheres)
	}
	cameraConfig = applyOverrides(cameraConfig, cameraOverrides)

	width := 400
	s := NewScene(cameraConfig, SamplingConfig{
		Width:           width,
		Height:          int(math.Round(float64(width) / cameraConfig.AspectRatio)),
		SamplesPerPixel: 64,
		MaxDepth:        50,
	})

	for _, sphere := range gltfScene.Spheres {
		s.Add(sphere)
	}
	return s
}

// framingCamera looks down -Z at the middle of all spheres from far enough
// away to keep them in view
func framingCamera(spheres []*geometry.Sphere) geometry.CameraConfig {
	const vfov = 45.0

	var center core.Vec3
	for _, sphere := range spheres {
		center = center.Add(sphere.Center)
	}
	if len(spheres) > 0 {
		center = center.Divide(float64(len(spheres)))
	}

	extent := 1.0
	for _, sphere := range spheres {
		extent = math.Max(extent, sphere.Center.Subtract(center).Length()+sphere.Radius)
	}

	distance := extent / math.Tan(vfov*math.Pi/360)
	return geometry.CameraConfig{
		Position:    center.Add(core.NewVec3(0, 0, distance+extent)),
		LookAt:      center,
		VFov:        vfov,
		AspectRatio: loaders.DefaultAspectRatio,
	}
}
