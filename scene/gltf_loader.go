package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"softrender/core"
	"softrender/materials"
	"softrender/math"
)

// LoadGLTF opens a .glb or .gltf file and returns its triangle meshes,
// one per primitive, with base-color materials applied. Node transforms
// and textures are not resolved; meshes come back in local space.
func LoadGLTF(path string) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	// Base-color factor per material index.
	matCache := make([]*materials.Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		name := gm.Name
		if name == "" {
			name = fmt.Sprintf("material_%d", i)
		}
		mat := materials.NewMaterial(name)
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			bc := pbr.BaseColorFactorOrDefault()
			mat.DiffuseColor = core.Color{
				R: float32(bc[0]), G: float32(bc[1]),
				B: float32(bc[2]), A: float32(bc[3]),
			}
		}
		matCache[i] = mat
	}

	var meshes []*Mesh
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, err := loadGLTFPrimitive(doc, gm.Name, pi, *prim)
			if err != nil {
				return nil, fmt.Errorf("gltf mesh %d prim %d: %w", mi, pi, err)
			}
			if prim.Material != nil && *prim.Material < len(matCache) {
				m.Material = matCache[*prim.Material]
			}
			meshes = append(meshes, m)
		}
	}

	if len(meshes) == 0 {
		return nil, fmt.Errorf("gltf %q: no mesh primitives", path)
	}
	return meshes, nil
}

func loadGLTFPrimitive(doc *gltf.Document, meshName string, primIdx int, prim gltf.Primitive) (*Mesh, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	vertices := make([]core.Vertex, len(positions))
	for i, p := range positions {
		v := core.Vertex{
			Position: math.Vec3{X: p[0], Y: p[1], Z: p[2]},
			Color:    core.ColorWhite,
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = math.Vec3{X: n[0], Y: n[1], Z: n[2]}
		}
		if i < len(uvs) {
			v.UV = math.Vec2{X: uvs[i][0], Y: uvs[i][1]}
		}
		vertices[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	// Files without normals get smooth area-weighted ones.
	if len(normals) == 0 {
		pos := make([]math.Vec3, len(vertices))
		for i, v := range vertices {
			pos[i] = v.Position
		}
		for i, n := range WeightedVertexNormals(pos, indices) {
			vertices[i].Normal = n
		}
	}

	name := meshName
	if name == "" {
		name = "mesh"
	}
	if primIdx > 0 {
		name = fmt.Sprintf("%s_prim%d", name, primIdx)
	}
	return CreateMeshFromData(name, vertices, indices), nil
}
