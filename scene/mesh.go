package scene

import (
	"softrender/core"
	"softrender/materials"
	"softrender/math"
	"softrender/shading"
)

// AABB is an axis-aligned bounding box in local space.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// Mesh holds CPU-side vertex/index data ready for the shading pipeline.
type Mesh struct {
	Name       string
	Vertices   []core.Vertex
	Indices    []uint32
	IndexCount uint32

	// Cached local-space AABB (computed by CreateMeshFromData).
	LocalAABB    AABB
	HasLocalAABB bool

	// Material holds surface shading properties. If nil, DefaultMaterial() is used.
	Material *materials.Material

	// Lean position/normal stream handed to the vertex stage,
	// built lazily from Vertices.
	shadingVerts []shading.Vertex
}

func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]core.Vertex, 0),
		Indices:  make([]uint32, 0),
	}
}

// CreateMeshFromData builds a Mesh and pre-computes its local-space AABB.
func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:       name,
		Vertices:   vertices,
		Indices:    indices,
		IndexCount: uint32(len(indices)),
	}
	if len(vertices) > 0 {
		m.LocalAABB = computeLocalAABB(vertices)
		m.HasLocalAABB = true
	}
	return m
}

// SurfaceMaterial returns the dispatch-time material, falling back to
// the default when none is assigned.
func (m *Mesh) SurfaceMaterial() shading.Material {
	if m.Material != nil {
		return m.Material.Surface()
	}
	return materials.DefaultMaterial().Surface()
}

// ShadingVertices returns the position/normal stream the vertex stage
// consumes. The slice is cached; callers must not mutate it.
func (m *Mesh) ShadingVertices() []shading.Vertex {
	if len(m.shadingVerts) != len(m.Vertices) {
		m.shadingVerts = make([]shading.Vertex, len(m.Vertices))
		for i, v := range m.Vertices {
			m.shadingVerts[i] = shading.Vertex{Position: v.Position, Normal: v.Normal}
		}
	}
	return m.shadingVerts
}

// computeLocalAABB returns the tight AABB of the given vertex positions.
func computeLocalAABB(vertices []core.Vertex) AABB {
	min := vertices[0].Position
	max := vertices[0].Position
	for i := 1; i < len(vertices); i++ {
		p := vertices[i].Position
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return AABB{Min: min, Max: max}
}
