package geometry

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// worldUp is the fixed up direction used to build the camera basis
var worldUp = core.NewVec3(0, 1, 0)

// Rect is the viewport size in world units at unit focal distance
type Rect struct {
	Width  float64
	Height float64
}

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Position      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	VFov          float64   // Vertical field of view in degrees, in (0, 180)
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter, 0 for a pinhole camera
	FocusDistance float64   // Distance to the focal plane, 0 = distance to LookAt
	ShutterOpen   float64   // Shutter open time
	ShutterClose  float64   // Shutter close time
}

// Camera generates rays for rendering. The basis vectors forward, up and left
// form a right-handed orthonormal frame; the lower-left corner is derived and
// recomputed whenever the origin or orientation changes.
type Camera struct {
	focalLength     float64
	viewport        Rect
	origin          core.Vec3
	forward         core.Vec3
	up              core.Vec3
	left            core.Vec3
	lensRadius      float64
	focusDistance   float64
	shutterOpen     float64
	shutterClose    float64
	lowerLeftCorner core.Vec3
}

// NewCamera creates a camera at the origin looking along +Z
func NewCamera(vfov, aspectRatio, aperture, focusDistance, shutterOpen, shutterClose float64) *Camera {
	viewportHeight := 2.0 * math.Tan(vfov*math.Pi/180.0/2.0)
	viewportWidth := aspectRatio * viewportHeight

	c := &Camera{
		focalLength:   1.0,
		viewport:      Rect{Width: viewportWidth, Height: viewportHeight},
		origin:        core.NewVec3(0, 0, 0),
		forward:       core.NewVec3(0, 0, 1),
		up:            core.NewVec3(0, 1, 0),
		left:          core.NewVec3(1, 0, 0),
		lensRadius:    aperture / 2,
		focusDistance: focusDistance,
		shutterOpen:   shutterOpen,
		shutterClose:  shutterClose,
	}
	c.updateLowerLeftCorner()
	return c
}

// NewCameraFromConfig creates a camera placed at config.Position looking at config.LookAt
func NewCameraFromConfig(config CameraConfig) *Camera {
	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookAt.Subtract(config.Position).Length()
	}
	if focusDistance <= 0 {
		focusDistance = 1.0
	}

	c := NewCamera(config.VFov, config.AspectRatio, config.Aperture, focusDistance,
		config.ShutterOpen, config.ShutterClose)
	c.MoveTo(config.Position)
	if config.LookAt != config.Position {
		c.LookAt(config.LookAt)
	}
	return c
}

// MergeCameraConfig merges override values into a base camera config.
// Zero values in override are ignored.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Position != (core.Vec3{}) {
		result.Position = override.Position
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.ShutterOpen != 0 {
		result.ShutterOpen = override.ShutterOpen
	}
	if override.ShutterClose != 0 {
		result.ShutterClose = override.ShutterClose
	}
	return result
}

// LookAt orients the camera toward target, keeping world up as the vertical reference
func (c *Camera) LookAt(target core.Vec3) {
	forward := target.Subtract(c.origin).Normalize()
	left := worldUp.Cross(forward)
	if left.NearZero() {
		// Looking straight up or down: keep the previous horizontal axis
		left = c.left
	}
	c.forward = forward
	c.left = left.Normalize()
	c.up = c.forward.Cross(c.left)
	c.updateLowerLeftCorner()
}

// MoveTo places the camera at position without changing its orientation
func (c *Camera) MoveTo(position core.Vec3) {
	c.origin = position
	c.updateLowerLeftCorner()
}

// updateLowerLeftCorner recomputes the lower-left corner of the focal plane
func (c *Camera) updateLowerLeftCorner() {
	halfWidth := c.viewport.Width * c.focusDistance / 2
	halfHeight := c.viewport.Height * c.focusDistance / 2

	center := c.origin.Add(c.forward.Multiply(c.focusDistance * c.focalLength))
	c.lowerLeftCorner = center.
		Add(c.left.Multiply(halfWidth)).
		Subtract(c.up.Multiply(halfHeight))
}

// GetRay generates a ray for image coordinates (u, v) where (0,0) is the
// lower-left and (1,1) the upper-right corner. A zero lens radius and an
// empty shutter interval draw no samples.
func (c *Camera) GetRay(u, v float64, sampler core.Sampler) core.Ray {
	// Image u grows to the right, which is away from left
	target := c.lowerLeftCorner.
		Subtract(c.left.Multiply(c.viewport.Width * c.focusDistance * u)).
		Add(c.up.Multiply(c.viewport.Height * c.focusDistance * v))

	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.left.Multiply(rd.X)).Add(c.up.Multiply(rd.Y))
	}

	time := c.shutterOpen
	if c.shutterClose > c.shutterOpen {
		time = core.RandomRange(c.shutterOpen, c.shutterClose, sampler.Get1D())
	}

	return core.NewRayAtTime(origin, target.Subtract(origin), time)
}

// Origin returns the camera position
func (c *Camera) Origin() core.Vec3 { return c.origin }

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 { return c.forward }

// Up returns the unit up vector of the camera basis
func (c *Camera) Up() core.Vec3 { return c.up }

// Left returns the unit left vector of the camera basis
func (c *Camera) Left() core.Vec3 { return c.left }

// Viewport returns the viewport size at unit focal distance
func (c *Camera) Viewport() Rect { return c.viewport }

// LensRadius returns half the aperture diameter
func (c *Camera) LensRadius() float64 { return c.lensRadius }

// FocusDistance returns the distance to the plane in perfect focus
func (c *Camera) FocusDistance() float64 { return c.focusDistance }

// LowerLeftCorner returns the derived lower-left corner of the focal plane
func (c *Camera) LowerLeftCorner() core.Vec3 { return c.lowerLeftCorner }
