package io

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"softrender/core"
	"softrender/materials"
	"softrender/math"
	"softrender/scene"
)

// OBJData holds parsed OBJ file data.
type OBJData struct {
	Name      string
	Meshes    []OBJMesh
	Materials map[string]*materials.Material
}

// OBJMesh is a single mesh group from an OBJ file.
type OBJMesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32
	Material string // material name reference
}

// ToMesh converts the group into a scene mesh, attaching the named
// material when data carries one.
func (m OBJMesh) ToMesh(data *OBJData) *scene.Mesh {
	out := scene.CreateMeshFromData(m.Name, m.Vertices, m.Indices)
	if data != nil {
		if mat, ok := data.Materials[m.Material]; ok {
			out.Material = mat
		}
	}
	return out
}

// LoadOBJ parses a Wavefront .obj file and returns mesh data. Groups
// without normals get smooth area-weighted vertex normals.
func LoadOBJ(path string) (*OBJData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer f.Close()

	data := &OBJData{
		Name:      filepath.Base(path),
		Materials: make(map[string]*materials.Material),
	}

	var positions []math.Vec3
	var normals []math.Vec3
	var uvs []math.Vec2

	// Current mesh state
	currentMesh := OBJMesh{Name: "default"}
	currentMaterial := ""
	hasNormals := false
	vertexMap := make(map[string]uint32) // "v/vt/vn" -> vertex index

	flush := func() {
		if len(currentMesh.Vertices) == 0 {
			return
		}
		if !hasNormals {
			computeMeshNormals(&currentMesh)
		}
		data.Meshes = append(data.Meshes, currentMesh)
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			if len(parts) >= 4 {
				x, _ := strconv.ParseFloat(parts[1], 32)
				y, _ := strconv.ParseFloat(parts[2], 32)
				z, _ := strconv.ParseFloat(parts[3], 32)
				positions = append(positions, math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})
			}
		case "vn":
			if len(parts) >= 4 {
				x, _ := strconv.ParseFloat(parts[1], 32)
				y, _ := strconv.ParseFloat(parts[2], 32)
				z, _ := strconv.ParseFloat(parts[3], 32)
				normals = append(normals, math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})
			}
		case "vt":
			if len(parts) >= 3 {
				u, _ := strconv.ParseFloat(parts[1], 32)
				v, _ := strconv.ParseFloat(parts[2], 32)
				uvs = append(uvs, math.Vec2{X: float32(u), Y: float32(v)})
			}
		case "f":
			faceVerts := make([]uint32, 0, len(parts)-1)
			for _, faceStr := range parts[1:] {
				if idx, ok := vertexMap[faceStr]; ok {
					faceVerts = append(faceVerts, idx)
					continue
				}

				vertex, hadNormal := parseFaceVertex(faceStr, positions, normals, uvs)
				hasNormals = hasNormals || hadNormal
				newIdx := uint32(len(currentMesh.Vertices))
				currentMesh.Vertices = append(currentMesh.Vertices, vertex)
				vertexMap[faceStr] = newIdx
				faceVerts = append(faceVerts, newIdx)
			}

			// Fan triangulation for n-gons
			for i := 2; i < len(faceVerts); i++ {
				currentMesh.Indices = append(currentMesh.Indices,
					faceVerts[0], faceVerts[i-1], faceVerts[i])
			}

		case "o", "g":
			flush()
			name := "unnamed"
			if len(parts) > 1 {
				name = parts[1]
			}
			currentMesh = OBJMesh{Name: name, Material: currentMaterial}
			hasNormals = false
			vertexMap = make(map[string]uint32)

		case "usemtl":
			if len(parts) > 1 {
				currentMaterial = parts[1]
				currentMesh.Material = currentMaterial
			}

		case "mtllib":
			if len(parts) > 1 {
				mtlPath := filepath.Join(filepath.Dir(path), parts[1])
				mtls, err := LoadMTL(mtlPath)
				if err != nil {
					fmt.Printf("Warning: failed to load MTL file %s: %v\n", mtlPath, err)
				} else {
					for k, v := range mtls {
						data.Materials[k] = v
					}
				}
			}
		}
	}

	flush()

	if len(data.Meshes) == 0 {
		return nil, fmt.Errorf("no mesh data found in OBJ file")
	}

	return data, scanner.Err()
}

// LoadMTL parses a Wavefront .mtl material file. Only the diffuse color
// is kept; the lighting model has no per-material specular or opacity.
func LoadMTL(path string) (map[string]*materials.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result := make(map[string]*materials.Material)
	var current *materials.Material

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "newmtl":
			if len(parts) > 1 {
				current = materials.NewMaterial(parts[1])
				result[parts[1]] = current
			}
		case "Kd":
			if current != nil && len(parts) >= 4 {
				r, _ := strconv.ParseFloat(parts[1], 32)
				g, _ := strconv.ParseFloat(parts[2], 32)
				b, _ := strconv.ParseFloat(parts[3], 32)
				current.DiffuseColor = core.Color{R: float32(r), G: float32(g), B: float32(b), A: 1}
			}
		}
	}

	return result, scanner.Err()
}

// ExportOBJ writes mesh data to a .obj file.
func ExportOBJ(path string, meshes []OBJMesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create OBJ file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintln(w, "# Exported by softrender")
	fmt.Fprintln(w)

	offset := 0
	for _, mesh := range meshes {
		fmt.Fprintf(w, "o %s\n", mesh.Name)

		for _, v := range mesh.Vertices {
			fmt.Fprintf(w, "v %f %f %f\n", v.Position.X, v.Position.Y, v.Position.Z)
		}
		for _, v := range mesh.Vertices {
			fmt.Fprintf(w, "vn %f %f %f\n", v.Normal.X, v.Normal.Y, v.Normal.Z)
		}
		for _, v := range mesh.Vertices {
			fmt.Fprintf(w, "vt %f %f\n", v.UV.X, v.UV.Y)
		}

		if mesh.Material != "" {
			fmt.Fprintf(w, "usemtl %s\n", mesh.Material)
		}
		// OBJ indices are 1-based; position, uv and normal share indices here
		for i := 0; i+2 < len(mesh.Indices); i += 3 {
			i0 := mesh.Indices[i] + 1 + uint32(offset)
			i1 := mesh.Indices[i+1] + 1 + uint32(offset)
			i2 := mesh.Indices[i+2] + 1 + uint32(offset)
			fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", i0, i0, i0, i1, i1, i1, i2, i2, i2)
		}

		offset += len(mesh.Vertices)
		fmt.Fprintln(w)
	}

	return nil
}

func computeMeshNormals(m *OBJMesh) {
	positions := make([]math.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = v.Position
	}
	for i, n := range scene.WeightedVertexNormals(positions, m.Indices) {
		m.Vertices[i].Normal = n
	}
}

// parseFaceVertex parses an OBJ face vertex spec like "v/vt/vn". The
// second result reports whether the spec referenced a normal.
func parseFaceVertex(spec string, positions []math.Vec3, normals []math.Vec3, uvs []math.Vec2) (core.Vertex, bool) {
	v := core.Vertex{Color: core.ColorWhite}
	hadNormal := false

	parts := strings.Split(spec, "/")

	// Position (required)
	if len(parts) >= 1 && parts[0] != "" {
		idx, _ := strconv.Atoi(parts[0])
		if idx < 0 {
			idx = len(positions) + idx + 1
		}
		if idx > 0 && idx <= len(positions) {
			v.Position = positions[idx-1]
		}
	}

	// UV (optional)
	if len(parts) >= 2 && parts[1] != "" {
		idx, _ := strconv.Atoi(parts[1])
		if idx < 0 {
			idx = len(uvs) + idx + 1
		}
		if idx > 0 && idx <= len(uvs) {
			v.UV = uvs[idx-1]
		}
	}

	// Normal (optional)
	if len(parts) >= 3 && parts[2] != "" {
		idx, _ := strconv.Atoi(parts[2])
		if idx < 0 {
			idx = len(normals) + idx + 1
		}
		if idx > 0 && idx <= len(normals) {
			v.Normal = normals[idx-1]
			hadNormal = true
		}
	}

	return v, hadNormal
}
