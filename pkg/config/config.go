package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/imageio"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Fallbacks used when neither the config file, the flags nor the scene set a value
const (
	DefaultScene   = "random"
	DefaultWidth   = 400
	DefaultHeight  = 225
	DefaultSamples = 50
	DefaultDepth   = 50
	DefaultSeed    = 42
	DefaultFormat  = ".png"
)

// Config holds the render settings for one run.
type Config struct {
	Scene     string `json:"scene"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Samples   int    `json:"samples"`
	MaxDepth  int    `json:"max_depth"`
	Seed      *int64 `json:"seed,omitempty"`
	Workers   int    `json:"workers"`
	Output    string `json:"output"`
	Annotate  bool   `json:"annotate"`
	Thumbnail int    `json:"thumbnail"`
	Preview   bool   `json:"preview"`
	Frames    int    `json:"frames"`

	Camera *Camera `json:"camera,omitempty"`
}

// Camera overrides the scene camera. Unset fields keep the scene's values.
type Camera struct {
	Position      *[3]float64 `json:"position,omitempty"`
	LookAt        *[3]float64 `json:"look_at,omitempty"`
	VFov          float64     `json:"vfov"`
	Aperture      float64     `json:"aperture"`
	FocusDistance float64     `json:"focus_distance"`
	DollyTo       *[3]float64 `json:"dolly_to,omitempty"` // End position for frame sequences
}

// Flags holds CLI flag values that override config file settings.
// Zero values mean "not set"; Seed is a pointer because 0 is a valid seed.
type Flags struct {
	Scene     string
	Width     int
	Height    int
	Samples   int
	MaxDepth  int
	Seed      *int64
	Workers   int
	Output    string
	Annotate  bool
	Thumbnail int
	Preview   bool
	Frames    int
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Apply merges CLI flags into the config. Flags take priority when set.
func (c *Config) Apply(flags Flags) {
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Samples > 0 {
		c.Samples = flags.Samples
	}
	if flags.MaxDepth > 0 {
		c.MaxDepth = flags.MaxDepth
	}
	if flags.Seed != nil {
		seed := *flags.Seed
		c.Seed = &seed
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Annotate {
		c.Annotate = true
	}
	if flags.Thumbnail > 0 {
		c.Thumbnail = flags.Thumbnail
	}
	if flags.Preview {
		c.Preview = true
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}

	if c.Scene == "" {
		c.Scene = DefaultScene
	}
}

// Resolve fills any empty fields, first from the scene's recommended
// settings and then from the package defaults. When only one of width and
// height is set the other follows the recommended aspect ratio.
func (c *Config) Resolve(recommended scene.SamplingConfig, now time.Time) {
	if c.Scene == "" {
		c.Scene = DefaultScene
	}

	recWidth, recHeight := recommended.Width, recommended.Height
	if recWidth <= 0 || recHeight <= 0 {
		recWidth, recHeight = DefaultWidth, DefaultHeight
	}
	switch {
	case c.Width <= 0 && c.Height <= 0:
		c.Width, c.Height = recWidth, recHeight
	case c.Height <= 0:
		c.Height = max(1, c.Width*recHeight/recWidth)
	case c.Width <= 0:
		c.Width = max(1, c.Height*recWidth/recHeight)
	}

	if c.Samples <= 0 {
		c.Samples = recommended.SamplesPerPixel
	}
	if c.Samples <= 0 {
		c.Samples = DefaultSamples
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = recommended.MaxDepth
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultDepth
	}
	if c.Seed == nil {
		seed := int64(DefaultSeed)
		c.Seed = &seed
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Output == "" {
		c.Output = DefaultOutputPath(c.Scene, now)
	}
}

// Validate reports the first setting that cannot be rendered
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	case c.Samples <= 0:
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalid, c.Samples)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalid, c.MaxDepth)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames must not be negative, got %d", ErrInvalid, c.Frames)
	case c.Thumbnail < 0:
		return fmt.Errorf("%w: thumbnail size must not be negative, got %d", ErrInvalid, c.Thumbnail)
	}

	if c.Camera != nil {
		if c.Camera.VFov < 0 || c.Camera.VFov >= 180 {
			return fmt.Errorf("%w: vfov must be in (0, 180), got %g", ErrInvalid, c.Camera.VFov)
		}
		if c.Camera.Aperture < 0 || c.Camera.FocusDistance < 0 {
			return fmt.Errorf("%w: aperture and focus distance must not be negative", ErrInvalid)
		}
	}

	ext := strings.ToLower(filepath.Ext(c.Output))
	for _, format := range imageio.Formats() {
		if ext == format {
			return nil
		}
	}
	return fmt.Errorf("%w: output %q: %w", ErrInvalid, c.Output, imageio.ErrUnsupportedFormat)
}

// CameraOverride converts the camera section into a scene camera override.
// The aspect ratio always follows the output image size.
func (c *Config) CameraOverride() geometry.CameraConfig {
	override := geometry.CameraConfig{}
	if c.Width > 0 && c.Height > 0 {
		override.AspectRatio = float64(c.Width) / float64(c.Height)
	}
	if c.Camera == nil {
		return override
	}

	if c.Camera.Position != nil {
		override.Position = vec(*c.Camera.Position)
	}
	if c.Camera.LookAt != nil {
		override.LookAt = vec(*c.Camera.LookAt)
	}
	override.VFov = c.Camera.VFov
	override.Aperture = c.Camera.Aperture
	override.FocusDistance = c.Camera.FocusDistance
	return override
}

// SeedValue returns the resolved seed
func (c *Config) SeedValue() int64 {
	if c.Seed == nil {
		return DefaultSeed
	}
	return *c.Seed
}

// DefaultOutputPath returns output/<scene>/render_<timestamp>.png. File
// paths used as scene names contribute their base name only.
func DefaultOutputPath(sceneName string, now time.Time) string {
	name := strings.TrimPrefix(sceneName, "gltf:")
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if name == "" || name == "." {
		name = DefaultScene
	}
	return filepath.Join("output", name, fmt.Sprintf("render_%s%s", now.Format("20060102_150405"), DefaultFormat))
}

// FramePath inserts a zero padded frame number before the extension of path
func FramePath(path string, frame int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(path, ext), frame, ext)
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
