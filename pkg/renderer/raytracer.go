package renderer

import (
	"context"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/imageio"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// SamplingConfig contains the settings shared by every render call.
// Sample count and depth are passed per call to Render.
type SamplingConfig struct {
	Seed    int64 // Base seed; row y uses Seed+y
	Workers int   // Parallel row workers, <= 1 renders on the calling goroutine
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Seed:    42,
		Workers: 1,
	}
}

// Raytracer turns a scene into a pixel buffer. The scene and its materials
// are only read, so rows can be rendered concurrently.
type Raytracer struct {
	scene  core.Scene
	config SamplingConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(scene core.Scene, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = discardLogger{}
	}
	return &Raytracer{
		scene:  scene,
		config: config,
		logger: logger,
	}
}

// Render renders the scene with the given sample count and bounce budget.
// A maxDepth of zero or less gives a black image.
func (rt *Raytracer) Render(width, height, samples, maxDepth int) (*imageio.Buffer, RenderStats) {
	buf, stats, _ := rt.RenderContext(context.Background(), width, height, samples, maxDepth)
	return buf, stats
}

// RenderContext renders like Render and stops early when ctx is cancelled.
// On cancellation the partial buffer is returned together with ctx.Err().
func (rt *Raytracer) RenderContext(ctx context.Context, width, height, samples, maxDepth int) (*imageio.Buffer, RenderStats, error) {
	start := time.Now()
	buf := imageio.NewBuffer(width, height)

	ptConfig := integrator.DefaultConfig()
	ptConfig.MaxDepth = max(maxDepth, 0)
	pt := integrator.NewPathTracingIntegrator(ptConfig)

	renderRow := func(y int) RenderStats {
		if ctx.Err() != nil {
			return RenderStats{}
		}
		return rt.renderRow(buf, pt, y, samples)
	}

	workers := rt.config.Workers
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}

	stats := RenderStats{SamplesPerPixel: samples, Workers: workers}
	if workers == 1 {
		rt.logRenderStart(width, height, samples, pt, workers)
		for y := 0; y < height; y++ {
			stats.add(renderRow(y))
		}
	} else {
		pool := NewWorkerPool(renderRow, height, workers)
		stats.Workers = pool.GetNumWorkers()
		rt.logRenderStart(width, height, samples, pt, stats.Workers)

		pool.Start()
		for y := 0; y < height; y++ {
			pool.SubmitTask(RowTask{Row: y})
		}
		pool.Stop()
		for result, ok := pool.GetResult(); ok; result, ok = pool.GetResult() {
			stats.add(result.Stats)
		}
	}

	stats.finish()
	stats.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		rt.logger.Printf("Render cancelled after %d of %d pixels\n", stats.TotalPixels, width*height)
		return buf, stats, err
	}

	rt.logger.Printf("Render finished in %v (%.0f samples/s)\n", stats.Duration, stats.SamplesPerSecond())
	return buf, stats, nil
}

func (rt *Raytracer) logRenderStart(width, height, samples int, pt *integrator.PathTracingIntegrator, workers int) {
	rt.logger.Printf("Rendering %dx%d, %d samples per pixel, max depth %d, %d worker(s)\n",
		width, height, samples, pt.Config().MaxDepth, workers)
}

// renderRow renders row y (0 = top) with its own deterministic sampler so the
// result does not depend on which worker picks the row up
func (rt *Raytracer) renderRow(buf *imageio.Buffer, pt integrator.Integrator, y, samples int) RenderStats {
	width, height := buf.Width, buf.Height
	sampler := core.NewSeededSampler(rt.config.Seed + int64(y))
	camera := rt.scene.GetCamera()

	// Row 0 is the top of the image, where v approaches 1
	row := float64(height - 1 - y)

	var stats RenderStats
	for x := 0; x < width; x++ {
		var pixel PixelStats

		for s := 0; s < samples; s++ {
			// One offset for both axes; a single sample goes through the pixel center
			offset := 0.5
			if samples > 1 {
				offset = sampler.Get1D()
			}
			u := (float64(x) + offset) / float64(width)
			v := (row + offset) / float64(height)

			ray := camera.GetRay(u, v, sampler)
			pixel.AddSample(pt.RayColor(ray, rt.scene, sampler))
		}

		// Gamma 2
		buf.Set(x, y, pixel.GetColor().Sqrt())

		stats.TotalPixels++
		stats.TotalSamples += pixel.SampleCount
		stats.MeanVariance += pixel.Variance()
	}

	return stats
}
