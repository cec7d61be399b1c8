package materials

import (
	"softrender/core"
	"softrender/shading"
)

// Material is the named, host-facing description of a surface. The
// lighting stage consumes the lean value from Surface.
type Material struct {
	Name         string
	DiffuseColor core.Color
}

// NewMaterial creates a material with the default grey diffuse color.
func NewMaterial(name string) *Material {
	return &Material{
		Name:         name,
		DiffuseColor: core.Color{R: 0.8, G: 0.8, B: 0.8, A: 1.0},
	}
}

// Surface converts the material to its dispatch-time representation.
func (m *Material) Surface() shading.Material {
	return shading.Material{DiffuseColor: m.DiffuseColor.RGB()}
}

// Clone creates a copy of the material under a new name.
func (m *Material) Clone(newName string) *Material {
	clone := *m
	clone.Name = newName
	return &clone
}

// --- Default Material Library ---

// DefaultMaterial creates a standard grey material.
func DefaultMaterial() *Material {
	return NewMaterial("Default")
}

// RedMaterial creates a red diffuse material.
func RedMaterial() *Material {
	m := NewMaterial("Red")
	m.DiffuseColor = core.ColorRed
	return m
}

// GreenMaterial creates a green diffuse material.
func GreenMaterial() *Material {
	m := NewMaterial("Green")
	m.DiffuseColor = core.ColorGreen
	return m
}

// BlueMaterial creates a blue diffuse material.
func BlueMaterial() *Material {
	m := NewMaterial("Blue")
	m.DiffuseColor = core.ColorBlue
	return m
}

// WhiteMaterial creates a pure white diffuse material.
func WhiteMaterial() *Material {
	m := NewMaterial("White")
	m.DiffuseColor = core.ColorWhite
	return m
}
