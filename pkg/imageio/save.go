package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for output paths with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported image format")

type encodeFunc func(w io.Writer, img image.Image) error

var encoders = map[string]encodeFunc{
	".ppm": WritePPM,
	".png": png.Encode,
	".webp": func(w io.Writer, img image.Image) error {
		return nativewebp.Encode(w, img, nil)
	},
	".tga":  tga.Encode,
	".bmp":  bmp.Encode,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// Formats returns the supported file extensions in sorted order
func Formats() []string {
	formats := make([]string, 0, len(encoders))
	for ext := range encoders {
		formats = append(formats, ext)
	}
	sort.Strings(formats)
	return formats
}

// Encode writes img in the format named by ext (e.g. ".png")
func Encode(w io.Writer, img image.Image, ext string) error {
	encode, ok := encoders[strings.ToLower(ext)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return encode(w, toEncodable(img, ext))
}

// Save writes img to path, choosing the format from the file extension and
// creating parent directories as needed
func Save(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := encoders[ext]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Encode(f, img, ext); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// toEncodable converts float buffers to *image.RGBA for encoders that are
// much faster on concrete image types. PPM reads buffers directly.
func toEncodable(img image.Image, ext string) image.Image {
	if buf, ok := img.(*Buffer); ok && ext != ".ppm" {
		return buf.ToRGBA()
	}
	return img
}
