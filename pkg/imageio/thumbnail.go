package imageio

import (
	"image"

	"golang.org/x/image/draw"
)

// Thumbnail scales img so its longer side is maxDim pixels, keeping the
// aspect ratio. Images already small enough are copied unscaled.
func Thumbnail(img image.Image, maxDim int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}

	tw, th := maxDim, maxDim
	if w >= h {
		th = max(1, h*maxDim/w)
	} else {
		tw = max(1, w*maxDim/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
