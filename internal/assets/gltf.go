package assets

import (
	"bytes"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/stageviewer/internal/engine/model"
)

var glbMagic = []byte("glTF")

// isGLTF reports whether data looks like a binary or JSON glTF asset.
func isGLTF(data []byte) bool {
	if bytes.HasPrefix(data, glbMagic) {
		return true
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n\xef\xbb\xbf")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// DecodeGLTF decodes a self-contained glTF or GLB asset. External buffer
// files are not resolved; use OpenGLTF for assets on disk.
func DecodeGLTF(name string, data []byte) (*model.Scene, error) {
	if !isGLTF(data) {
		return nil, fmt.Errorf("decoding %s: %w", name, ErrUnsupported)
	}
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return BuildScene(name, doc)
}

// OpenGLTF decodes a glTF file from disk, resolving buffers next to it.
func OpenGLTF(name, path string) (*model.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return BuildScene(name, doc)
}

// BuildScene converts a glTF document into a model scene. Node transforms
// are baked into the vertices and every mesh takes the name of its node, so
// stage layer names match authored node names.
func BuildScene(name string, doc *gltf.Document) (*model.Scene, error) {
	b := &sceneBuilder{doc: doc, visiting: make(map[int]bool)}
	root := model.NewNode(name)

	for _, idx := range b.rootNodes() {
		if err := b.addNode(root, idx, mgl32.Ident4()); err != nil {
			return nil, fmt.Errorf("building %s: %w", name, err)
		}
	}

	s := model.NewScene(name, root)
	if len(s.Meshes()) == 0 {
		return nil, fmt.Errorf("building %s: no triangle meshes", name)
	}
	return s, nil
}

type sceneBuilder struct {
	doc      *gltf.Document
	visiting map[int]bool
}

func (b *sceneBuilder) rootNodes() []int {
	var out []int
	if len(b.doc.Scenes) > 0 {
		idx := 0
		if b.doc.Scene != nil && int(*b.doc.Scene) < len(b.doc.Scenes) {
			idx = int(*b.doc.Scene)
		}
		for _, n := range b.doc.Scenes[idx].Nodes {
			out = append(out, int(n))
		}
		return out
	}

	// No scenes: every node nobody references is a root.
	child := make(map[int]bool)
	for _, n := range b.doc.Nodes {
		for _, c := range n.Children {
			child[int(c)] = true
		}
	}
	for i := range b.doc.Nodes {
		if !child[i] {
			out = append(out, i)
		}
	}
	return out
}

func (b *sceneBuilder) addNode(parent *model.Node, idx int, parentWorld mgl32.Mat4) error {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return fmt.Errorf("node %d out of range", idx)
	}
	if b.visiting[idx] {
		return fmt.Errorf("node %d is part of a cycle", idx)
	}
	b.visiting[idx] = true
	defer delete(b.visiting, idx)

	n := b.doc.Nodes[idx]
	world := parentWorld.Mul4(nodeMatrix(n))
	node := parent.AddChild(model.NewNode(n.Name))

	if n.Mesh != nil {
		meshName := n.Name
		mi := int(*n.Mesh)
		if mi < 0 || mi >= len(b.doc.Meshes) {
			return fmt.Errorf("node %d: mesh %d out of range", idx, mi)
		}
		if meshName == "" {
			meshName = b.doc.Meshes[mi].Name
		}
		if meshName == "" {
			meshName = fmt.Sprintf("mesh%d", mi)
		}
		for pi, p := range b.doc.Meshes[mi].Primitives {
			m, err := b.buildPrimitive(meshName, p, world)
			if err != nil {
				return fmt.Errorf("mesh %q primitive %d: %w", meshName, pi, err)
			}
			if m != nil {
				node.AddMesh(m)
			}
		}
	}

	for _, c := range n.Children {
		if err := b.addNode(node, int(c), world); err != nil {
			return err
		}
	}
	return nil
}

func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	for i, v := range n.MatrixOrDefault() {
		m[i] = float32(v)
	}
	if !model.IsIdentity(m) {
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return model.LocalMatrix(
		mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])},
		mgl32.Vec4{float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3])},
		mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])},
	)
}

// buildPrimitive returns nil for primitives that are not triangle lists.
func (b *sceneBuilder) buildPrimitive(name string, p *gltf.Primitive, world mgl32.Mat4) (*model.Mesh, error) {
	if p.Mode != gltf.PrimitiveTriangles {
		return nil, nil
	}
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	if int(posIdx) >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", posIdx)
	}
	raw, err := modeler.ReadPosition(b.doc, b.doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}
	positions := make([]mgl32.Vec3, len(raw))
	for i, v := range raw {
		positions[i] = model.TransformPoint(world, mgl32.Vec3(v))
	}

	var normals []mgl32.Vec3
	if nIdx, ok := p.Attributes[gltf.NORMAL]; ok && int(nIdx) < len(b.doc.Accessors) {
		rawN, err := modeler.ReadNormal(b.doc, b.doc.Accessors[nIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
		normalMat := world.Mat3().Inv().Transpose()
		normals = make([]mgl32.Vec3, len(rawN))
		for i, v := range rawN {
			normals[i] = model.Normalize(normalMat.Mul3x1(mgl32.Vec3(v)))
		}
	}

	var indices []uint32
	if p.Indices != nil {
		ai := int(*p.Indices)
		if ai >= len(b.doc.Accessors) {
			return nil, fmt.Errorf("accessor %d out of range", ai)
		}
		indices, err = modeler.ReadIndices(b.doc, b.doc.Accessors[ai], nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	}
	if model.ReversesWinding(world) {
		if indices == nil {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}
		for i := 0; i+2 < len(indices); i += 3 {
			indices[i+1], indices[i+2] = indices[i+2], indices[i+1]
		}
	}

	return model.NewMesh(name, positions, normals, indices, b.material(p)), nil
}

// material converts the primitive's glTF material. Blended materials are
// transparent and skip depth writes; their alpha becomes the authored
// opacity the layer applier restores.
func (b *sceneBuilder) material(p *gltf.Primitive) *model.Material {
	if p.Material == nil || int(*p.Material) >= len(b.doc.Materials) {
		return nil
	}
	src := b.doc.Materials[*p.Material]

	rgba := mgl32.Vec4{1, 1, 1, 1}
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		c := pbr.BaseColorFactorOrDefault()
		rgba = mgl32.Vec4{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
	}
	mat := model.NewMaterial(src.Name, rgba.Vec3())
	mat.Opacity = rgba.W()
	if src.AlphaMode == gltf.AlphaBlend {
		mat.Transparent = true
		mat.DepthWrite = false
	}
	return mat
}
