package imageio

import (
	"bufio"
	"fmt"
	"image"
	"io"
)

// WritePPM writes img as a binary PPM (P6) with rows from top to bottom
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}

	row := make([]byte, 3*bounds.Dx())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		fillRow(row, img, y)
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("write ppm row %d: %w", y-bounds.Min.Y, err)
		}
	}

	return bw.Flush()
}

func fillRow(row []byte, img image.Image, y int) {
	if buf, ok := img.(*Buffer); ok {
		for x, p := range buf.Row(y) {
			row[3*x] = Quantize(p.R)
			row[3*x+1] = Quantize(p.G)
			row[3*x+2] = Quantize(p.B)
		}
		return
	}

	bounds := img.Bounds()
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		r, g, b, _ := img.At(x, y).RGBA()
		i := 3 * (x - bounds.Min.X)
		row[i] = uint8(r >> 8)
		row[i+1] = uint8(g >> 8)
		row[i+2] = uint8(b >> 8)
	}
}
