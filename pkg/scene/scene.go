package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// Default sky gradient: light grey at the horizon, blue overhead
var (
	DefaultHorizon = core.NewVec3(0.75, 0.75, 0.75)
	DefaultZenith  = core.NewVec3(0.0, 0.3, 1.0)
)

// Scene contains all the elements needed for rendering. Shapes are scanned
// linearly in order; materials are shared between shapes and never mutated.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         []core.Shape
	Horizon        core.Vec3 // Background color looking sideways
	Zenith         core.Vec3 // Background color looking straight up
	SamplingConfig SamplingConfig
}

// SamplingConfig contains the recommended rendering configuration for a scene
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// NewScene creates an empty scene with the given camera and the default sky
func NewScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig) *Scene {
	return &Scene{
		Camera:         geometry.NewCameraFromConfig(cameraConfig),
		CameraConfig:   cameraConfig,
		Shapes:         make([]core.Shape, 0),
		Horizon:        DefaultHorizon,
		Zenith:         DefaultZenith,
		SamplingConfig: samplingConfig,
	}
}

// ApplyCamera merges override into the scene camera settings and rebuilds the camera
func (s *Scene) ApplyCamera(override geometry.CameraConfig) {
	s.CameraConfig = geometry.MergeCameraConfig(s.CameraConfig, override)
	s.Camera = geometry.NewCameraFromConfig(s.CameraConfig)
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...core.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() core.Camera {
	return s.Camera
}

// GetBackgroundColors returns the sky gradient endpoints
func (s *Scene) GetBackgroundColors() (horizon, zenith core.Vec3) {
	return s.Horizon, s.Zenith
}

// Hit returns the nearest intersection among all shapes. On equal distances
// the shape added first wins.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, shape := range s.Shapes {
		hit, isHit := shape.Hit(ray, tMin, closestSoFar)
		if !isHit {
			continue
		}
		if closestHit == nil || hit.T < closestHit.T {
			closestHit = hit
			closestSoFar = hit.T
		}
	}

	return closestHit, closestHit != nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
