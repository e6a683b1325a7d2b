package material

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// fixedSampler returns the same value for every draw and counts the draws
type fixedSampler struct {
	value float64
	draws int
}

func (s *fixedSampler) Get1D() float64 {
	s.draws++
	return s.value
}

func (s *fixedSampler) Get2D() core.Vec2 {
	s.draws += 2
	return core.NewVec2(s.value, s.value)
}

func (s *fixedSampler) Get3D() core.Vec3 {
	s.draws += 3
	return core.NewVec3(s.value, s.value, s.value)
}

func newTestSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

// upHit is a front-face hit on a horizontal surface at the origin
func upHit(m core.Material) core.HitRecord {
	return core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  m,
	}
}
