package preview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/image/draw"
)

// ErrNoScreen is returned when the terminal cannot be drawn on
var ErrNoScreen = errors.New("terminal does not expose a drawable screen")

// Canvas is the part of uv.Screen the preview draws on
type Canvas interface {
	SetCell(x, y int, c *uv.Cell)
}

// FitSize returns the pixel size that fits an imgW x imgH image into a grid
// of cols x rows terminal cells, keeping the aspect ratio. Each cell shows
// two vertically stacked pixels.
func FitSize(imgW, imgH, cols, rows int) (int, int) {
	if imgW <= 0 || imgH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}

	maxW, maxH := cols, rows*2
	w := maxW
	h := imgH * maxW / imgW
	if h > maxH {
		h = maxH
		w = imgW * maxH / imgH
	}
	return max(w, 1), max(h, 1)
}

// Draw paints img into area using upper half block cells: the foreground is
// the top pixel and the background the bottom pixel. img is expected to be
// at most area.Dx() pixels wide and 2*area.Dy() pixels tall.
func Draw(scr Canvas, area uv.Rectangle, img image.Image) {
	b := img.Bounds()

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := b.Min.Y + (row-area.Min.Y)*2
		botY := topY + 1
		if topY >= b.Max.Y {
			break
		}

		for col := area.Min.X; col < area.Max.X; col++ {
			x := b.Min.X + col - area.Min.X
			if x >= b.Max.X {
				break
			}

			var bottom color.Color
			if botY < b.Max.Y {
				bottom = toRGBA(img.At(x, botY))
			}

			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: toRGBA(img.At(x, topY)),
					Bg: bottom,
				},
			})
		}
	}
}

func toRGBA(c color.Color) color.RGBA {
	r, g, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
}

// Scale resizes img to fit cols x rows cells
func Scale(img image.Image, cols, rows int) *image.RGBA {
	w, h := FitSize(img.Bounds().Dx(), img.Bounds().Dy(), cols, rows)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Show displays img in the terminal's alternate screen until a key is
// pressed or ctx is cancelled
func Show(ctx context.Context, img image.Image) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	scr, ok := any(term).(Canvas)
	if !ok {
		return ErrNoScreen
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	scaled := Scale(img, width, height)
	Draw(scr, uv.Rectangle(image.Rect(0, 0, width, height)), scaled)
	if err := display(term); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, isKey := ev.(uv.KeyPressEvent); isKey {
				return nil
			}
		}
	}
}

// display pushes pending cells to the terminal
func display(term any) error {
	switch t := term.(type) {
	case interface{ Display() error }:
		return t.Display()
	case interface{ Flush() error }:
		return t.Flush()
	default:
		return nil
	}
}
