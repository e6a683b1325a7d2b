package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// ErrUnknownScene is returned when a scene name matches neither a built-in nor a file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a scene that can be created by name
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to Create
	DisplayName string `json:"displayName"` // Human readable name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "gltf"
	FilePath    string `json:"filePath"`    // Path to the glTF file (gltf type only)
}

type builtinScene struct {
	info   SceneInfo
	create func(seed int64, overrides ...geometry.CameraConfig) *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{ID: "random", DisplayName: "Random Spheres",
			Description: "Hundreds of small random spheres around three large ones"},
		create: NewRandomScene,
	},
	{
		info: SceneInfo{ID: "simple", DisplayName: "Simple",
			Description: "Diffuse, glass and metal spheres on a ground sphere"},
		create: func(_ int64, overrides ...geometry.CameraConfig) *Scene { return NewSimpleScene(overrides...) },
	},
	{
		info: SceneInfo{ID: "single-sphere", DisplayName: "Single Sphere",
			Description: "One blue diffuse sphere in front of the camera"},
		create: func(_ int64, overrides ...geometry.CameraConfig) *Scene { return NewSingleSphereScene(overrides...) },
	},
	{
		info: SceneInfo{ID: "debug", DisplayName: "Debug",
			Description: "Simple layout rendered with the diagnostic material"},
		create: func(_ int64, overrides ...geometry.CameraConfig) *Scene { return NewDebugScene(overrides...) },
	},
	{
		info: SceneInfo{ID: "motion", DisplayName: "Motion Blur",
			Description: "Spheres moving while the shutter is open"},
		create: func(_ int64, overrides ...geometry.CameraConfig) *Scene { return NewMotionScene(overrides...) },
	},
}

// Create builds a scene by built-in name or by glTF file path. The seed only
// affects scenes with randomized layout.
func Create(name string, seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.create(seed, cameraOverrides...), nil
		}
	}

	if isGLTFPath(name) {
		return NewGLTFScene(name, cameraOverrides...)
	}

	if strings.HasPrefix(name, "gltf:") {
		files, err := ListGLTFScenes()
		if err != nil {
			return nil, err
		}
		for _, info := range files {
			if info.ID == name {
				return NewGLTFScene(info.FilePath, cameraOverrides...)
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// List returns the built-in scenes followed by glTF scenes found on disk
func List() ([]SceneInfo, error) {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.Type = "builtin"
		scenes = append(scenes, info)
	}

	gltfScenes, err := ListGLTFScenes()
	if err != nil {
		return nil, fmt.Errorf("failed to list glTF scenes: %w", err)
	}

	return append(scenes, gltfScenes...), nil
}

// ListGLTFScenes scans the scenes directory for .gltf and .glb files
func ListGLTFScenes() ([]SceneInfo, error) {
	possiblePaths := []string{"scenes", "../scenes"}
	var scenesDir string

	for _, path := range possiblePaths {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			scenesDir = path
			break
		}
	}

	if scenesDir == "" {
		return []SceneInfo{}, nil
	}

	return scanGLTFDir(scenesDir)
}

func scanGLTFDir(dir string) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !isGLTFPath(entry.Name()) {
			continue
		}
		nameWithoutExt := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		scenes = append(scenes, SceneInfo{
			ID:          "gltf:" + nameWithoutExt,
			DisplayName: titleCase(nameWithoutExt),
			Type:        "gltf",
			FilePath:    filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

func isGLTFPath(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".gltf" || ext == ".glb"
}

// titleCase converts a filename-style string to title case
// e.g., "glass-trio" -> "Glass Trio"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
