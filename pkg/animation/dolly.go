package animation

import (
	"github.com/charmbracelet/harmonica"
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// Dolly moves the camera from From to To over a number of frames while it
// keeps looking at Target. Each axis follows a damped spring, so the motion
// eases in and settles at the destination.
type Dolly struct {
	From      core.Vec3
	To        core.Vec3
	Target    core.Vec3
	Frames    int
	FPS       int
	Frequency float64 // Spring angular frequency, higher is faster
	Damping   float64 // 1 is critically damped, below 1 overshoots
}

// DefaultDolly returns a critically damped dolly at 24 frames per second
func DefaultDolly(from, to, target core.Vec3, frames int) Dolly {
	return Dolly{
		From:      from,
		To:        to,
		Target:    target,
		Frames:    frames,
		FPS:       24,
		Frequency: 4.0,
		Damping:   1.0,
	}
}

// axis tracks position and velocity for one coordinate
type axis struct {
	position float64
	velocity float64
}

// Positions returns the camera position for every frame. The first frame is
// From; the last frame lands on To.
func (d Dolly) Positions() []core.Vec3 {
	if d.Frames <= 0 {
		return nil
	}

	fps := d.FPS
	if fps <= 0 {
		fps = 24
	}
	spring := harmonica.NewSpring(harmonica.FPS(fps), d.Frequency, d.Damping)

	x := axis{position: d.From.X}
	y := axis{position: d.From.Y}
	z := axis{position: d.From.Z}

	positions := make([]core.Vec3, d.Frames)
	positions[0] = d.From
	for i := 1; i < d.Frames; i++ {
		x.position, x.velocity = spring.Update(x.position, x.velocity, d.To.X)
		y.position, y.velocity = spring.Update(y.position, y.velocity, d.To.Y)
		z.position, z.velocity = spring.Update(z.position, z.velocity, d.To.Z)
		positions[i] = core.NewVec3(x.position, y.position, z.position)
	}

	if d.Frames > 1 {
		positions[d.Frames-1] = d.To
	}
	return positions
}

// CameraConfigs returns base with Position and LookAt replaced for every frame.
// The focus distance follows the target unless base fixes one.
func (d Dolly) CameraConfigs(base geometry.CameraConfig) []geometry.CameraConfig {
	positions := d.Positions()
	configs := make([]geometry.CameraConfig, len(positions))
	for i, position := range positions {
		config := base
		config.Position = position
		config.LookAt = d.Target
		configs[i] = config
	}
	return configs
}
