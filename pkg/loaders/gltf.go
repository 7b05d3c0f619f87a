package loaders

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
)

// ErrNoMeshes is returned when a glTF document has no mesh with positions
var ErrNoMeshes = errors.New("gltf document contains no mesh positions")

// identityMatrix is the column-major 4x4 identity, the glTF default node matrix
var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// maxNodeDepth guards against cyclic node hierarchies in malformed files
const maxNodeDepth = 64

// LoadGLTF loads a .gltf or .glb file and approximates every mesh node by
// the bounding sphere of its vertex positions
func LoadGLTF(path string) ([]*geometry.Sphere, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	spheres, err := SpheresFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spheres, nil
}

// SpheresFromDocument walks the node hierarchy of the active scene and
// returns one sphere per mesh node, transformed into world space
func SpheresFromDocument(doc *gltf.Document) ([]*geometry.Sphere, error) {
	var spheres []*geometry.Sphere
	for _, root := range rootNodes(doc) {
		if err := collectSpheres(doc, root, mgl64.Ident4(), 0, &spheres); err != nil {
			return nil, err
		}
	}
	if len(spheres) == 0 {
		return nil, ErrNoMeshes
	}
	return spheres, nil
}

// rootNodes returns the nodes of the default scene, or every node that is
// nobody's child when the document has no scenes
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		sceneIdx := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			sceneIdx = *doc.Scene
		}
		return doc.Scenes[sceneIdx].Nodes
	}

	isChild := make(map[int]bool)
	for _, node := range doc.Nodes {
		for _, child := range node.Children {
			isChild[child] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func collectSpheres(doc *gltf.Document, nodeIdx int, parent mgl64.Mat4, depth int, out *[]*geometry.Sphere) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
	}
	if nodeIdx < 0 || nodeIdx >= len(doc.Nodes) {
		return fmt.Errorf("node index %d out of range", nodeIdx)
	}
	node := doc.Nodes[nodeIdx]
	world := parent.Mul4(localTransform(node))

	if node.Mesh != nil {
		if *node.Mesh < 0 || *node.Mesh >= len(doc.Meshes) {
			return fmt.Errorf("node %q: mesh index %d out of range", node.Name, *node.Mesh)
		}
		lo, hi, ok, err := meshBounds(doc, doc.Meshes[*node.Mesh])
		if err != nil {
			return fmt.Errorf("mesh %q: %w", doc.Meshes[*node.Mesh].Name, err)
		}
		if ok {
			sphere, err := boundingSphere(lo, hi, world)
			if err != nil {
				return fmt.Errorf("node %q: %w", node.Name, err)
			}
			*out = append(*out, sphere)
		}
	}

	for _, child := range node.Children {
		if err := collectSpheres(doc, child, world, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

// localTransform returns the node matrix, or T*R*S when no matrix is set.
// Unset scale and rotation components default to identity.
func localTransform(node *gltf.Node) mgl64.Mat4 {
	if node.Matrix != ([16]float64{}) && node.Matrix != identityMatrix {
		return mgl64.Mat4(node.Matrix)
	}

	t := node.Translation
	r := node.Rotation
	s := node.Scale
	if s == ([3]float64{}) {
		s = [3]float64{1, 1, 1}
	}

	rotation := mgl64.QuatIdent()
	if r != ([4]float64{}) {
		rotation = mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize()
	}

	return mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(rotation.Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

// boundingSphere transforms the sphere around an axis-aligned box into world space
func boundingSphere(lo, hi mgl64.Vec3, world mgl64.Mat4) (*geometry.Sphere, error) {
	localCenter := lo.Add(hi).Mul(0.5)
	localRadius := hi.Sub(lo).Len() / 2

	center := mgl64.TransformCoordinate(localCenter, world)
	scale := math.Max(world.Col(0).Vec3().Len(), math.Max(world.Col(1).Vec3().Len(), world.Col(2).Vec3().Len()))

	return geometry.NewSphere(core.NewVec3(center[0], center[1], center[2]), localRadius*scale)
}

// meshBounds returns the axis-aligned bounds of every POSITION attribute in the mesh
func meshBounds(doc *gltf.Document, mesh *gltf.Mesh) (mgl64.Vec3, mgl64.Vec3, bool, error) {
	lo := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	found := false

	for _, prim := range mesh.Primitives {
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posIdx < 0 || posIdx >= len(doc.Accessors) {
			return lo, hi, false, fmt.Errorf("position accessor %d out of range", posIdx)
		}

		pMin, pMax, err := accessorBounds(doc, doc.Accessors[posIdx])
		if err != nil {
			return lo, hi, false, err
		}
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], pMin[i])
			hi[i] = math.Max(hi[i], pMax[i])
		}
		found = true
	}
	return lo, hi, found, nil
}

// accessorBounds prefers the min/max the file declares and otherwise scans the data
func accessorBounds(doc *gltf.Document, accessor *gltf.Accessor) (mgl64.Vec3, mgl64.Vec3, error) {
	if accessor.Type != gltf.AccessorVec3 {
		return mgl64.Vec3{}, mgl64.Vec3{}, fmt.Errorf("expected VEC3 positions, got %v", accessor.Type)
	}
	if len(accessor.Min) >= 3 && len(accessor.Max) >= 3 {
		return mgl64.Vec3{accessor.Min[0], accessor.Min[1], accessor.Min[2]},
			mgl64.Vec3{accessor.Max[0], accessor.Max[1], accessor.Max[2]}, nil
	}

	positions, err := readPositions(doc, accessor)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, err
	}
	if len(positions) == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, fmt.Errorf("accessor has no positions")
	}

	lo, hi := positions[0], positions[0]
	for _, p := range positions[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], p[i])
			hi[i] = math.Max(hi[i], p[i])
		}
	}
	return lo, hi, nil
}

// readPositions decodes float VEC3 data from a loaded buffer
func readPositions(doc *gltf.Document, accessor *gltf.Accessor) ([]mgl64.Vec3, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float positions, got %v", accessor.ComponentType)
	}

	viewIdx := *accessor.BufferView
	if viewIdx < 0 || viewIdx >= len(doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", viewIdx)
	}
	bufferView := doc.BufferViews[viewIdx]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	if bufferView.ByteOffset < 0 || accessor.ByteOffset < 0 || bufferView.ByteStride < 0 || accessor.Count < 0 {
		return nil, fmt.Errorf("negative offset, stride or count")
	}
	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = 12 // 3 floats * 4 bytes
	}

	// Whole accessor must fit in the buffer before allocating
	if accessor.Count > 0 {
		end := int64(start) + int64(accessor.Count-1)*int64(stride) + 12
		if end > int64(len(buffer.Data)) {
			return nil, fmt.Errorf("%d positions need %d bytes, buffer has %d", accessor.Count, end, len(buffer.Data))
		}
	}

	result := make([]mgl64.Vec3, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		for j := range 3 {
			bits := binary.LittleEndian.Uint32(buffer.Data[offset+j*4:])
			result[i][j] = float64(math.Float32frombits(bits))
		}
	}
	return result, nil
}
