package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// countingSampler records how many random numbers were drawn
type countingSampler struct {
	draws int
	inner core.Sampler
}

func (s *countingSampler) Get1D() float64 { s.draws++; return s.inner.Get1D() }
func (s *countingSampler) Get2D() core.Vec2 { s.draws += 2; return s.inner.Get2D() }
func (s *countingSampler) Get3D() core.Vec3 { s.draws += 3; return s.inner.Get3D() }

func newCountingSampler() *countingSampler {
	return &countingSampler{inner: core.NewSeededSampler(42)}
}

func assertVecNear(t *testing.T, label string, got, expected core.Vec3) {
	t.Helper()
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("%s: expected %v, got %v", label, expected, got)
	}
}

func TestCamera_ViewportFromFov(t *testing.T) {
	camera := NewCamera(90, 2.0, 0, 1, 0, 0)

	viewport := camera.Viewport()
	if math.Abs(viewport.Height-2.0) > 1e-9 {
		t.Errorf("Expected height 2 for 90° vfov, got %f", viewport.Height)
	}
	if math.Abs(viewport.Width-4.0) > 1e-9 {
		t.Errorf("Expected width 4 for aspect 2, got %f", viewport.Width)
	}
}

func TestCamera_CenterRayPointsForward(t *testing.T) {
	camera := NewCamera(60, 16.0/9.0, 0, 1, 0, 0)

	ray := camera.GetRay(0.5, 0.5, newCountingSampler())

	assertVecNear(t, "origin", ray.Origin, core.NewVec3(0, 0, 0))
	assertVecNear(t, "direction", ray.Direction, camera.Forward())
	assertVecNear(t, "forward", camera.Forward(), core.NewVec3(0, 0, 1))
}

func TestCamera_PinholeConsumesNoRandomness(t *testing.T) {
	camera := NewCamera(60, 1.0, 0, 3, 0.5, 0.5)
	sampler := newCountingSampler()

	first := camera.GetRay(0.2, 0.7, sampler)
	second := camera.GetRay(0.2, 0.7, sampler)

	if sampler.draws != 0 {
		t.Errorf("Expected no random draws, got %d", sampler.draws)
	}
	if first != second {
		t.Errorf("Expected identical rays, got %v and %v", first, second)
	}
	if first.Time != 0.5 {
		t.Errorf("Expected time 0.5 for a closed shutter interval, got %f", first.Time)
	}
}

func TestCamera_CornersMapToImageCorners(t *testing.T) {
	camera := NewCamera(90, 1.0, 0, 1, 0, 0)
	sampler := newCountingSampler()

	lowerLeft := camera.GetRay(0, 0, sampler)
	upperRight := camera.GetRay(1, 1, sampler)

	// u = 0 is on the left side of the image, v = 0 on the bottom
	if lowerLeft.Direction.Dot(camera.Left()) <= 0 {
		t.Errorf("Expected lower-left ray to lean left, got %v", lowerLeft.Direction)
	}
	if lowerLeft.Direction.Dot(camera.Up()) >= 0 {
		t.Errorf("Expected lower-left ray to lean down, got %v", lowerLeft.Direction)
	}
	if upperRight.Direction.Dot(camera.Left()) >= 0 {
		t.Errorf("Expected upper-right ray to lean right, got %v", upperRight.Direction)
	}
	if upperRight.Direction.Dot(camera.Up()) <= 0 {
		t.Errorf("Expected upper-right ray to lean up, got %v", upperRight.Direction)
	}

	assertVecNear(t, "lower-left direction", lowerLeft.Direction, core.NewVec3(1, -1, 1).Normalize())
}

func TestCamera_LookAtBuildsOrthonormalBasis(t *testing.T) {
	camera := NewCamera(90, 4.0/3.0, 0.1, 8, 0, 1)
	camera.MoveTo(core.NewVec3(7.5, 2, -3))
	camera.LookAt(core.NewVec3(0, 0, 0))

	forward, up, left := camera.Forward(), camera.Up(), camera.Left()

	for name, v := range map[string]core.Vec3{"forward": forward, "up": up, "left": left} {
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Errorf("Expected unit %s, got length %f", name, v.Length())
		}
	}
	if math.Abs(forward.Dot(up)) > 1e-9 || math.Abs(forward.Dot(left)) > 1e-9 || math.Abs(up.Dot(left)) > 1e-9 {
		t.Errorf("Basis not orthogonal: forward=%v up=%v left=%v", forward, up, left)
	}

	// Right-handed: left × up points along forward
	assertVecNear(t, "handedness", left.Cross(up), forward)
	assertVecNear(t, "forward", forward, core.NewVec3(-7.5, -2, 3).Normalize())

	if up.Y <= 0 {
		t.Errorf("Expected up to keep a positive world Y component, got %v", up)
	}
}

func TestCamera_MoveToRecomputesCorner(t *testing.T) {
	camera := NewCamera(60, 1.0, 0, 1, 0, 0)
	before := camera.LowerLeftCorner()

	offset := core.NewVec3(1, 2, 3)
	camera.MoveTo(offset)

	assertVecNear(t, "corner", camera.LowerLeftCorner(), before.Add(offset))

	ray := camera.GetRay(0.5, 0.5, newCountingSampler())
	assertVecNear(t, "origin", ray.Origin, offset)
	assertVecNear(t, "direction", ray.Direction, core.NewVec3(0, 0, 1))
}

func TestCamera_ApertureJittersOriginInLensPlane(t *testing.T) {
	camera := NewCamera(60, 1.0, 0.5, 4, 0, 0)
	sampler := core.NewSeededSampler(42)

	focusPoint := camera.Origin().Add(camera.Forward().Multiply(4))
	moved := false

	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		offset := ray.Origin.Subtract(camera.Origin())
		if offset.Length() > camera.LensRadius()+1e-12 {
			t.Fatalf("Origin offset %v outside lens radius %f", offset, camera.LensRadius())
		}
		if math.Abs(offset.Dot(camera.Forward())) > 1e-12 {
			t.Fatalf("Origin offset %v leaves the lens plane", offset)
		}
		if offset.Length() > 1e-6 {
			moved = true
		}

		// Every lens sample converges on the same point of the focal plane
		distance := focusPoint.Subtract(ray.Origin).Length()
		assertVecNear(t, "focus", ray.At(distance), focusPoint)
	}

	if !moved {
		t.Error("Expected at least one jittered origin")
	}
}

func TestCamera_ShutterTimeInInterval(t *testing.T) {
	camera := NewCamera(60, 1.0, 0, 1, 0.25, 0.75)
	sampler := core.NewSeededSampler(42)

	for i := 0; i < 200; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)
		if ray.Time < 0.25 || ray.Time > 0.75 {
			t.Fatalf("Ray time %f outside shutter interval", ray.Time)
		}
	}
}

func TestNewCameraFromConfig_AutoFocus(t *testing.T) {
	camera := NewCameraFromConfig(CameraConfig{
		Position:    core.NewVec3(0, 0, -4),
		LookAt:      core.NewVec3(0, 0, 0),
		VFov:        45,
		AspectRatio: 1,
	})

	if math.Abs(camera.FocusDistance()-4) > 1e-9 {
		t.Errorf("Expected focus distance 4, got %f", camera.FocusDistance())
	}
	assertVecNear(t, "forward", camera.Forward(), core.NewVec3(0, 0, 1))
}

func TestMergeCameraConfig(t *testing.T) {
	base := CameraConfig{VFov: 90, AspectRatio: 4.0 / 3.0, Aperture: 0.1}
	merged := MergeCameraConfig(base, CameraConfig{AspectRatio: 2})

	if merged.AspectRatio != 2 {
		t.Errorf("Expected aspect override 2, got %f", merged.AspectRatio)
	}
	if merged.VFov != 90 || merged.Aperture != 0.1 {
		t.Errorf("Expected untouched fields to keep base values, got %+v", merged)
	}
}
