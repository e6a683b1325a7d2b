package material

import (
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestLambertian_AlwaysScattersAboveSurface(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.3, 0.3)
	lambertian := NewLambertian(albedo)
	sampler := newTestSampler()

	rayIn := core.NewRayAtTime(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), 0.4)
	hit := upHit(lambertian)

	for i := 0; i < 500; i++ {
		result, scattered := lambertian.Scatter(rayIn, hit, sampler)
		if !scattered {
			t.Fatal("Lambertian should always scatter")
		}
		if result.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, result.Attenuation)
		}
		if result.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Fatalf("Scattered direction %v points into the surface", result.Scattered.Direction)
		}
		if result.Scattered.Origin != hit.Point {
			t.Fatalf("Expected scattered origin %v, got %v", hit.Point, result.Scattered.Origin)
		}
		if result.Scattered.Time != rayIn.Time {
			t.Fatalf("Expected scattered ray to keep time %f, got %f", rayIn.Time, result.Scattered.Time)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	// (0, 0) on the unit sphere maps to z = +1, so pick a normal of (0, 0, -1)
	sampler := &fixedSampler{value: 0}
	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, -1),
		FrontFace: true,
	}

	result, scattered := lambertian.Scatter(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)), hit, sampler)
	if !scattered {
		t.Fatal("Lambertian should always scatter")
	}
	if result.Scattered.Direction != hit.Normal {
		t.Errorf("Expected fallback to normal %v, got %v", hit.Normal, result.Scattered.Direction)
	}
}
