package imageio

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Pixel is a display-ready color with channels nominally in [0,1]
type Pixel struct {
	R, G, B float32
}

// Buffer is a float pixel grid stored row-major with row 0 at the top.
// It implements image.Image so any standard encoder can consume it.
type Buffer struct {
	Width  int
	Height int
	Pixels []Pixel
}

// NewBuffer creates a black buffer of the given size
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pixels: make([]Pixel, width*height),
	}
}

// Set stores a color at (x, y)
func (b *Buffer) Set(x, y int, c core.Vec3) {
	b.Pixels[y*b.Width+x] = Pixel{R: float32(c.X), G: float32(c.Y), B: float32(c.Z)}
}

// Get returns the color stored at (x, y)
func (b *Buffer) Get(x, y int) core.Vec3 {
	p := b.Pixels[y*b.Width+x]
	return core.NewVec3(float64(p.R), float64(p.G), float64(p.B))
}

// Row returns the pixels of row y, sharing the underlying storage
func (b *Buffer) Row(y int) []Pixel {
	return b.Pixels[y*b.Width : (y+1)*b.Width]
}

// Mean returns the average color over all pixels
func (b *Buffer) Mean() core.Vec3 {
	if len(b.Pixels) == 0 {
		return core.Vec3{}
	}
	var r, g, bl float32
	for _, p := range b.Pixels {
		r += p.R
		g += p.G
		bl += p.B
	}
	n := float32(len(b.Pixels))
	return core.NewVec3(float64(r/n), float64(g/n), float64(bl/n))
}

// ColorModel implements image.Image
func (b *Buffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements image.Image with 8-bit quantized channels
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return color.RGBA{}
	}
	p := b.Pixels[y*b.Width+x]
	return color.RGBA{R: Quantize(p.R), G: Quantize(p.G), B: Quantize(p.B), A: 255}
}

// ToRGBA converts the buffer to an 8-bit image
func (b *Buffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	for y := 0; y < b.Height; y++ {
		for x, p := range b.Row(y) {
			i := img.PixOffset(x, y)
			img.Pix[i] = Quantize(p.R)
			img.Pix[i+1] = Quantize(p.G)
			img.Pix[i+2] = Quantize(p.B)
			img.Pix[i+3] = 255
		}
	}
	return img
}

// Quantize maps a channel value to 8 bits as round(v*255), clamped to [0,255].
// NaN maps to 0.
func Quantize(v float32) uint8 {
	if v != v {
		return 0
	}
	return uint8(math32.Round(math32.Max(0, math32.Min(1, v)) * 255))
}
