package renderer

import (
	"image"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken for every pixel
	MeanVariance    float64       // Per-sample luminance variance averaged over pixels
	Workers         int           // Number of goroutines that rendered rows
	Duration        time.Duration // Wall clock time of the render
}

// add merges row statistics into the totals. MeanVariance is accumulated as a
// sum and divided by the pixel count in finish.
func (rs *RenderStats) add(row RenderStats) {
	rs.TotalPixels += row.TotalPixels
	rs.TotalSamples += row.TotalSamples
	rs.MeanVariance += row.MeanVariance
}

func (rs *RenderStats) finish() {
	if rs.TotalPixels > 0 {
		rs.MeanVariance /= float64(rs.TotalPixels)
	}
}

// SamplesPerSecond returns the sampling throughput of the render
func (rs RenderStats) SamplesPerSecond() float64 {
	if rs.Duration <= 0 {
		return 0
	}
	return float64(rs.TotalSamples) / rs.Duration.Seconds()
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator for convergence
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Variance returns the luminance variance of the samples taken so far
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	variance := ps.LuminanceSqAccum/n - mean*mean
	if variance < 0 {
		// Rounding on near-constant pixels
		return 0
	}
	return variance
}

// CalculateAverageLuminance returns the mean perceptual luminance of img with
// channels mapped to [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	count := bounds.Dx() * bounds.Dy()
	if count == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += core.NewVec3(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff).Luminance()
		}
	}
	return total / float64(count)
}
