package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/animation"
	"github.com/df07/go-sphere-pathtracer/pkg/config"
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/imageio"
	"github.com/df07/go-sphere-pathtracer/pkg/preview"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "JSON config file; flags override its values")
	sceneName := flag.String("scene", "", "Scene name or path to a .gltf/.glb file (default \"random\")")
	width := flag.Int("width", 0, "Image width (default: scene recommendation)")
	height := flag.Int("height", 0, "Image height (default: scene recommendation)")
	samples := flag.Int("samples", 0, "Samples per pixel (default: scene recommendation)")
	depth := flag.Int("depth", 0, "Maximum bounces per path (default: scene recommendation)")
	seed := flag.Int64("seed", config.DefaultSeed, "Random seed for scene layout and sampling")
	workers := flag.Int("workers", 0, "Parallel row workers (default 1)")
	output := flag.String("output", "", "Output file; the extension picks the format")
	annotate := flag.Bool("annotate", false, "Print render statistics onto the image")
	thumbnail := flag.Int("thumbnail", 0, "Also save a thumbnail with this longest side")
	showPreview := flag.Bool("preview", false, "Show the result in the terminal")
	frames := flag.Int("frames", 0, "Render a camera dolly sequence with this many frames")
	list := flag.Bool("list", false, "List available scenes")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if *list {
		if err := printScenes(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	flags := config.Flags{
		Scene:     *sceneName,
		Width:     *width,
		Height:    *height,
		Samples:   *samples,
		MaxDepth:  *depth,
		Workers:   *workers,
		Output:    *output,
		Annotate:  *annotate,
		Thumbnail: *thumbnail,
		Preview:   *showPreview,
		Frames:    *frames,
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			flags.Seed = seed
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *configPath, flags, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Sphere Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Printf("Output formats: %s\n", strings.Join(imageio.Formats(), " "))
	fmt.Println("Output defaults to output/<scene>/render_<timestamp>.png")
	fmt.Println("Use -list to see the available scenes.")
}

func printScenes() error {
	scenes, err := scene.List()
	if err != nil {
		return err
	}

	fmt.Println("Available scenes:")
	for _, info := range scenes {
		if info.Description != "" {
			fmt.Printf("  %-16s %s\n", info.ID, info.Description)
		} else {
			fmt.Printf("  %-16s %s\n", info.ID, info.FilePath)
		}
	}
	return nil
}

// loadConfig reads the optional config file, applies flags and resolves
// defaults against the scene's recommended settings
func loadConfig(configPath string, flags config.Flags) (config.Config, *scene.Scene, error) {
	var cfg config.Config
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, nil, err
		}
	}
	cfg.Apply(flags)

	sc, err := scene.Create(cfg.Scene, cfg.SeedValue())
	if err != nil {
		return cfg, nil, err
	}

	cfg.Resolve(sc.SamplingConfig, time.Now())
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	sc.ApplyCamera(cfg.CameraOverride())
	return cfg, sc, nil
}

func run(ctx context.Context, configPath string, flags config.Flags, logger core.Logger) error {
	cfg, sc, err := loadConfig(configPath, flags)
	if err != nil {
		return err
	}

	logger.Printf("Scene %q: %d spheres\n", cfg.Scene, sc.GetPrimitiveCount())

	raytracer := renderer.NewRaytracer(sc, renderer.SamplingConfig{
		Seed:    cfg.SeedValue(),
		Workers: cfg.Workers,
	}, logger)

	if cfg.Frames > 1 {
		return renderSequence(ctx, cfg, sc, raytracer, logger)
	}

	img, err := renderFrame(ctx, cfg, raytracer, cfg.Output, logger)
	if err != nil {
		return err
	}

	if cfg.Preview {
		return preview.Show(ctx, img)
	}
	return nil
}

// renderSequence renders a dolly shot from the scene camera toward its
// target, or to the configured end position
func renderSequence(ctx context.Context, cfg config.Config, sc *scene.Scene, raytracer *renderer.Raytracer, logger core.Logger) error {
	base := sc.CameraConfig
	to := base.Position.Add(base.LookAt.Subtract(base.Position).Multiply(0.5))
	if cfg.Camera != nil && cfg.Camera.DollyTo != nil {
		to = core.NewVec3(cfg.Camera.DollyTo[0], cfg.Camera.DollyTo[1], cfg.Camera.DollyTo[2])
	}

	dolly := animation.DefaultDolly(base.Position, to, base.LookAt, cfg.Frames)
	for i, cameraConfig := range dolly.CameraConfigs(base) {
		sc.ApplyCamera(cameraConfig)

		logger.Printf("Frame %d/%d at %v\n", i+1, cfg.Frames, cameraConfig.Position)
		if _, err := renderFrame(ctx, cfg, raytracer, config.FramePath(cfg.Output, i), logger); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

// renderFrame renders the current camera view and writes it, plus an
// optional thumbnail, to output
func renderFrame(ctx context.Context, cfg config.Config, raytracer *renderer.Raytracer, output string, logger core.Logger) (image.Image, error) {
	buf, stats, err := raytracer.RenderContext(ctx, cfg.Width, cfg.Height, cfg.Samples, cfg.MaxDepth)
	if err != nil {
		return nil, err
	}

	mean := buf.Mean()
	logger.Printf("Rendered %d samples in %v, mean color (%.3f, %.3f, %.3f), average luminance %.3f, mean variance %.4f\n",
		stats.TotalSamples, stats.Duration.Round(time.Millisecond),
		mean.X, mean.Y, mean.Z, renderer.CalculateAverageLuminance(buf), stats.MeanVariance)

	var img image.Image = buf
	if cfg.Annotate {
		img = imageio.Annotate(buf,
			fmt.Sprintf("%s  %dx%d  %d spp  depth %d", cfg.Scene, cfg.Width, cfg.Height, cfg.Samples, cfg.MaxDepth),
			fmt.Sprintf("%v  %.0f samples/s  %d worker(s)", stats.Duration.Round(time.Millisecond), stats.SamplesPerSecond(), stats.Workers),
		)
	}

	if err := imageio.Save(output, img); err != nil {
		return nil, err
	}
	logger.Printf("Render saved as %s\n", output)

	if cfg.Thumbnail > 0 {
		thumbPath := thumbnailPath(output)
		if err := imageio.Save(thumbPath, imageio.Thumbnail(img, cfg.Thumbnail)); err != nil {
			return nil, err
		}
		logger.Printf("Thumbnail saved as %s\n", thumbPath)
	}

	return img, nil
}

// thumbnailPath returns path with a _thumb suffix before the extension
func thumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}
