package material

import (
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestNewMetal_RoughnessClamp(t *testing.T) {
	tests := []struct {
		name              string
		inputRoughness    float64
		expectedRoughness float64
	}{
		{"Valid roughness 0.0", 0.0, 0.0},
		{"Valid roughness 0.5", 0.5, 0.5},
		{"Valid roughness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputRoughness)
			if metal.Roughness != tt.expectedRoughness {
				t.Errorf("Expected roughness %f, got %f", tt.expectedRoughness, metal.Roughness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := &fixedSampler{value: 0.5}

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	scatter, didScatter := metal.Scatter(rayIn, upHit(metal), sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(1, 1, 0).Normalize()
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
	if sampler.draws != 0 {
		t.Errorf("A perfect mirror should not draw samples, got %d", sampler.draws)
	}
}

func TestMetal_NormalIncidenceReflectsBack(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 0)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	scatter, didScatter := metal.Scatter(rayIn, upHit(metal), newTestSampler())
	if !didScatter {
		t.Fatal("Metal should scatter at normal incidence")
	}
	if scatter.Scattered.Direction != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected (0,1,0), got %v", scatter.Scattered.Direction)
	}
}

func TestMetal_FuzzyReflectionStaysNearMirror(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3)
	sampler := newTestSampler()

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	mirror := core.NewVec3(0, 1, 0)

	for i := 0; i < 200; i++ {
		scatter, didScatter := metal.Scatter(rayIn, upHit(metal), sampler)
		if !didScatter {
			t.Fatal("Near-normal fuzzy reflection should never be absorbed at roughness 0.3")
		}
		// Fuzz radius 0.3 keeps the direction within asin(0.3) of the mirror direction
		if scatter.Scattered.Direction.Dot(mirror) < 0.95 {
			t.Fatalf("Fuzzy reflection %v strays too far from mirror direction", scatter.Scattered.Direction)
		}
	}
}

func TestMetal_GrazingFuzzIsAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)

	// A grazing ray reflects to roughly (1, 0.001, 0)
	rayIn := core.NewRay(core.NewVec3(-1, 0.001, 0), core.NewVec3(1, -0.001, 0))

	// r = 1, phi = 3π/2, cosTheta = 0 maps to the sphere point (0, -1, 0)
	down := &vecSampler{v: core.NewVec3(1, 0.75, 0.5)}
	if p := core.SamplePointInUnitSphere(down.v); p.Y > -0.99 {
		t.Fatalf("Test setup error: expected a downward sphere sample, got %v", p)
	}

	_, didScatter := metal.Scatter(rayIn, upHit(metal), down)
	if didScatter {
		t.Error("Expected fuzzed reflection below the surface to be absorbed")
	}
}

// vecSampler returns v for 3D draws
type vecSampler struct {
	v core.Vec3
}

func (s *vecSampler) Get1D() float64   { return s.v.X }
func (s *vecSampler) Get2D() core.Vec2 { return core.NewVec2(s.v.X, s.v.Y) }
func (s *vecSampler) Get3D() core.Vec3 { return s.v }
