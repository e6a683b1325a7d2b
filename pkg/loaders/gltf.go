package loaders

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/qmuntal/gltf"
)

// DefaultAspectRatio is used when a glTF camera does not declare one
const DefaultAspectRatio = 16.0 / 9.0

// GLTFScene is the sphere scene extracted from a glTF document. Every mesh
// node becomes the bounding sphere of its vertex positions.
type GLTFScene struct {
	Camera  *geometry.CameraConfig // nil when the document has no perspective camera
	Spheres []*geometry.Sphere
}

// LoadGLTF loads a .gltf or .glb file
func LoadGLTF(path string) (*GLTFScene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	result, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	return result, nil
}

// FromDocument converts an already decoded glTF document
func FromDocument(doc *gltf.Document) (*GLTFScene, error) {
	c := &converter{
		doc:       doc,
		result:    &GLTFScene{},
		materials: make(map[int]core.Material),
	}

	for _, nodeIdx := range rootNodes(doc) {
		if err := c.visit(nodeIdx, nil, 0); err != nil {
			return nil, err
		}
	}

	if len(c.result.Spheres) == 0 {
		return nil, fmt.Errorf("document contains no mesh nodes")
	}

	return c.result, nil
}

// maxNodeDepth guards against cyclic node hierarchies in malformed files
const maxNodeDepth = 64

type converter struct {
	doc       *gltf.Document
	result    *GLTFScene
	materials map[int]core.Material
	fallback  core.Material
}

// rootNodes returns the nodes of the default scene, or every node when the
// document declares no scenes
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		sceneIdx := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			sceneIdx = *doc.Scene
		}
		return doc.Scenes[sceneIdx].Nodes
	}

	nodes := make([]int, len(doc.Nodes))
	for i := range doc.Nodes {
		nodes[i] = i
	}
	return nodes
}

func (c *converter) visit(nodeIdx int, parents transformChain, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
	}
	if nodeIdx < 0 || nodeIdx >= len(c.doc.Nodes) {
		return fmt.Errorf("node index %d out of range", nodeIdx)
	}

	node := c.doc.Nodes[nodeIdx]
	chain := parents.with(nodeTransform(node))

	if node.Camera != nil && c.result.Camera == nil {
		cameraConfig, err := c.convertCamera(*node.Camera, chain)
		if err != nil {
			return fmt.Errorf("camera on node %d: %w", nodeIdx, err)
		}
		c.result.Camera = cameraConfig
	}

	if node.Mesh != nil {
		if err := c.convertMesh(*node.Mesh, chain); err != nil {
			return fmt.Errorf("mesh on node %d: %w", nodeIdx, err)
		}
	}

	for _, child := range node.Children {
		if err := c.visit(child, chain, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// convertCamera reads a perspective camera. glTF cameras look along -Z of
// their node; roll around the view axis is not preserved.
func (c *converter) convertCamera(cameraIdx int, chain transformChain) (*geometry.CameraConfig, error) {
	if cameraIdx < 0 || cameraIdx >= len(c.doc.Cameras) {
		return nil, fmt.Errorf("camera index %d out of range", cameraIdx)
	}
	cam := c.doc.Cameras[cameraIdx]
	if cam.Perspective == nil {
		return nil, fmt.Errorf("only perspective cameras are supported")
	}

	aspect := DefaultAspectRatio
	if cam.Perspective.AspectRatio != nil && *cam.Perspective.AspectRatio > 0 {
		aspect = *cam.Perspective.AspectRatio
	}

	position := chain.apply(core.Vec3{})
	target := chain.apply(core.NewVec3(0, 0, -1))
	if target.Subtract(position).NearZero() {
		return nil, fmt.Errorf("degenerate camera transform")
	}

	return &geometry.CameraConfig{
		Position:    position,
		LookAt:      target,
		VFov:        cam.Perspective.Yfov * 180 / math.Pi,
		AspectRatio: aspect,
	}, nil
}

// convertMesh adds one bounding sphere per primitive with a POSITION accessor
func (c *converter) convertMesh(meshIdx int, chain transformChain) error {
	if meshIdx < 0 || meshIdx >= len(c.doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", meshIdx)
	}

	for _, prim := range c.doc.Meshes[meshIdx].Primitives {
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posIdx < 0 || posIdx >= len(c.doc.Accessors) {
			return fmt.Errorf("accessor index %d out of range", posIdx)
		}

		accessor := c.doc.Accessors[posIdx]
		if len(accessor.Min) < 3 || len(accessor.Max) < 3 {
			return fmt.Errorf("POSITION accessor %d has no min/max bounds", posIdx)
		}

		lo := core.NewVec3(accessor.Min[0], accessor.Min[1], accessor.Min[2])
		hi := core.NewVec3(accessor.Max[0], accessor.Max[1], accessor.Max[2])
		center, radius := boundingSphere(lo, hi, chain)
		if radius <= 0 {
			continue
		}

		mat, err := c.material(prim.Material)
		if err != nil {
			return err
		}
		c.result.Spheres = append(c.result.Spheres, geometry.NewSphere(center, radius, mat))
	}
	return nil
}

// boundingSphere maps the local bounding box through the transform chain.
// The radius is the largest transformed half extent, which is exact for
// sphere meshes under uniform scale.
func boundingSphere(lo, hi core.Vec3, chain transformChain) (core.Vec3, float64) {
	localCenter := lo.Add(hi).Multiply(0.5)
	half := hi.Subtract(lo).Multiply(0.5)

	center := chain.apply(localCenter)
	radius := 0.0
	for _, axis := range []core.Vec3{
		core.NewVec3(half.X, 0, 0),
		core.NewVec3(0, half.Y, 0),
		core.NewVec3(0, 0, half.Z),
	} {
		r := chain.apply(localCenter.Add(axis)).Subtract(center).Length()
		radius = math.Max(radius, r)
	}
	return center, radius
}

// material converts and caches glTF materials so spheres share instances
func (c *converter) material(idx *int) (core.Material, error) {
	if idx == nil {
		if c.fallback == nil {
			c.fallback = material.NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
		}
		return c.fallback, nil
	}
	if *idx < 0 || *idx >= len(c.doc.Materials) {
		return nil, fmt.Errorf("material index %d out of range", *idx)
	}
	if mat, ok := c.materials[*idx]; ok {
		return mat, nil
	}

	mat := convertMaterial(c.doc.Materials[*idx])
	c.materials[*idx] = mat
	return mat, nil
}

// convertMaterial maps metallic-roughness parameters onto the sphere materials:
// blended alpha is glass, mostly metallic is metal, everything else diffuse
func convertMaterial(m *gltf.Material) core.Material {
	baseColor := [4]float64{1, 1, 1, 1}
	metallic, roughness := 1.0, 1.0
	if pbr := m.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			baseColor = *pbr.BaseColorFactor
		}
		if pbr.MetallicFactor != nil {
			metallic = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			roughness = *pbr.RoughnessFactor
		}
	}
	albedo := core.NewVec3(baseColor[0], baseColor[1], baseColor[2])

	switch {
	case m.AlphaMode == gltf.AlphaBlend:
		return material.NewDielectric(1.5, albedo)
	case metallic >= 0.5:
		return material.NewMetal(albedo, roughness)
	default:
		return material.NewLambertian(albedo)
	}
}

// trs is a node's local translation, rotation (x, y, z, w) and scale
type trs struct {
	translation core.Vec3
	rotation    [4]float64
	scale       core.Vec3
}

func nodeTransform(node *gltf.Node) trs {
	t := trs{
		translation: core.NewVec3(node.Translation[0], node.Translation[1], node.Translation[2]),
		rotation:    [4]float64{0, 0, 0, 1},
		scale:       core.NewVec3(1, 1, 1),
	}
	if node.Rotation != ([4]float64{}) {
		t.rotation = node.Rotation
	}
	if node.Scale != ([3]float64{}) {
		t.scale = core.NewVec3(node.Scale[0], node.Scale[1], node.Scale[2])
	}
	return t
}

func (t trs) apply(p core.Vec3) core.Vec3 {
	return rotate(t.rotation, p.MultiplyVec(t.scale)).Add(t.translation)
}

// rotate applies a unit quaternion to v
func rotate(q [4]float64, v core.Vec3) core.Vec3 {
	u := core.NewVec3(q[0], q[1], q[2])
	w := q[3]
	uv := u.Cross(v)
	return v.Add(uv.Multiply(2 * w)).Add(u.Cross(uv).Multiply(2))
}

// transformChain holds node transforms from the root down; points are
// mapped innermost first
type transformChain []trs

func (c transformChain) with(t trs) transformChain {
	next := make(transformChain, len(c)+1)
	copy(next, c)
	next[len(c)] = t
	return next
}

func (c transformChain) apply(p core.Vec3) core.Vec3 {
	for i := len(c) - 1; i >= 0; i-- {
		p = c[i].apply(p)
	}
	return p
}
