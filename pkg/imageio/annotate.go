package imageio

import (
	"image"

	"github.com/fogleman/gg"
)

const (
	captionLineHeight = 15.0
	captionPadding    = 6.0
)

// Annotate returns a copy of img with the given lines printed on a
// translucent band along the bottom edge
func Annotate(img image.Image, lines ...string) image.Image {
	if len(lines) == 0 {
		return img
	}
	if buf, ok := img.(*Buffer); ok {
		img = buf.ToRGBA()
	}

	dc := gg.NewContextForImage(img)
	width := float64(dc.Width())
	height := float64(dc.Height())

	bandHeight := captionPadding*2 + captionLineHeight*float64(len(lines))
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, height-bandHeight, width, bandHeight)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	for i, line := range lines {
		y := height - bandHeight + captionPadding + captionLineHeight*float64(i+1) - 3
		dc.DrawString(line, captionPadding, y)
	}

	return dc.Image()
}
