package material

import (
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestDebug_ScattersIntoHemisphereWithFixedColor(t *testing.T) {
	debug := NewDebug()
	sampler := newTestSampler()
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := upHit(debug)

	for i := 0; i < 500; i++ {
		result, scattered := debug.Scatter(rayIn, hit, sampler)
		if !scattered {
			t.Fatal("Debug material should always scatter")
		}
		if result.Attenuation != DebugColor {
			t.Fatalf("Expected diagnostic color %v, got %v", DebugColor, result.Attenuation)
		}
		if result.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Fatalf("Scattered direction %v leaves the hemisphere", result.Scattered.Direction)
		}
	}
}
