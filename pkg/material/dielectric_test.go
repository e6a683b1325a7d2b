package material

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestDielectricBasicBehavior(t *testing.T) {
	tint := core.NewVec3(0.9, 1.0, 0.9)
	glass := NewDielectric(1.5, tint)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.NewRayAtTime(core.NewVec3(-1, 1, 0), rayDirection, 0.3)
	hit := upHit(glass)

	result, scattered := glass.Scatter(ray, hit, newTestSampler())
	if !scattered {
		t.Error("Dielectric should always scatter")
	}
	if result.Attenuation != tint {
		t.Errorf("Expected attenuation %v, got %v", tint, result.Attenuation)
	}
	if result.Scattered.Time != 0.3 {
		t.Errorf("Expected scattered time 0.3, got %f", result.Scattered.Time)
	}

	// Both reflection and refraction occur across seeds
	hasReflection := false
	hasRefraction := false
	sampler := newTestSampler()
	for i := 0; i < 2000 && (!hasReflection || !hasRefraction); i++ {
		result, _ := glass.Scatter(ray, hit, sampler)
		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	if !hasRefraction {
		t.Error("Expected to see refraction in at least some cases")
	}
	if !hasReflection {
		t.Error("Expected to see Fresnel reflection in at least some cases")
	}
}

func TestDielectric_RefractionFollowsSnell(t *testing.T) {
	glass := NewClearDielectric(1.5)
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	// A draw of 0.99 is above the Schlick reflectance so the ray refracts
	result, _ := glass.Scatter(ray, upHit(glass), &fixedSampler{value: 0.99})

	out := result.Scattered.Direction
	if out.Y >= 0 {
		t.Fatalf("Expected refracted ray to continue downward, got %v", out)
	}

	sinIn := math.Sqrt(0.5)
	sinOut := math.Sqrt(1 - out.Y*out.Y)
	if math.Abs(sinOut-sinIn/1.5) > 1e-9 {
		t.Errorf("Expected sinOut=%f, got %f", sinIn/1.5, sinOut)
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass := NewClearDielectric(1.5)

	// Ray going from glass to air at a shallow angle
	rayDirection := core.NewVec3(1, -0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)

	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: false, // Exiting the material
		Material:  glass,
	}

	cosTheta := -rayDirection.Dot(hit.Normal)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	if 1.5*sinTheta <= 1.0 {
		t.Fatalf("Test setup error: this angle should cause total internal reflection")
	}

	for i := 0; i < 10; i++ {
		sampler := &fixedSampler{value: float64(i) / 10}
		result, scattered := glass.Scatter(ray, hit, sampler)

		if !scattered {
			t.Error("Dielectric should always scatter")
		}
		if result.Scattered.Direction.Y <= 0 {
			t.Errorf("Expected total internal reflection (ray going up), got %v", result.Scattered.Direction)
		}
		if sampler.draws != 0 {
			t.Errorf("Total internal reflection should not draw samples, got %d", sampler.draws)
		}
	}
}

func TestDielectric_CriticalAngleReflects(t *testing.T) {
	if !mustReflect(2.0, 0.5) {
		t.Error("Expected eta*sinTheta == 1 to force reflection")
	}
	if mustReflect(2.0, 0.49) {
		t.Error("Expected eta*sinTheta < 1 to allow refraction")
	}

	// Grazing ray with matched indices sits exactly on the boundary: sinTheta = 1, eta = 1
	glass := NewClearDielectric(1.0)
	ray := core.NewRay(core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0))
	sampler := &fixedSampler{value: 0.999}

	result, scattered := glass.Scatter(ray, upHit(glass), sampler)
	if !scattered {
		t.Fatal("Dielectric should always scatter")
	}
	if sampler.draws != 0 {
		t.Errorf("Boundary case must reflect without a random draw, got %d draws", sampler.draws)
	}

	expected := ray.Direction.Reflect(core.NewVec3(0, 1, 0))
	if result.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected reflected direction %v, got %v", expected, result.Scattered.Direction)
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence air to glass", 1.0, 1.0 / 1.5, 0.04},
		{"grazing incidence", 0.0, 1.0 / 1.5, 1.0},
		{"matched indices at normal incidence", 1.0, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.ratio)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected reflectance %f, got %f", tt.expected, got)
			}
		})
	}
}
