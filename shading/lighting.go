package shading

import (
	"github.com/chewxy/math32"

	"softrender/core"
	"softrender/math"
)

// DirectionalLight is an infinitely distant light. Direction points from
// the surface toward the light source; the evaluator normalizes it but
// never negates it, so hosts holding a light-to-surface vector must flip
// it before dispatch.
type DirectionalLight struct {
	Direction math.Vec3
}

// Material holds the per-surface shading inputs.
type Material struct {
	DiffuseColor math.Vec3
}

// LightingConfig carries the intensity weights and specular exponent.
// It is passed by value into Shade so future per-material variation does
// not change the function's shape.
type LightingConfig struct {
	AmbientIntensity  math.Vec3
	DiffuseIntensity  math.Vec3
	SpecularIntensity math.Vec3
	Shininess         float32
}

// DefaultLightingConfig returns the engine-wide lighting constants.
func DefaultLightingConfig() LightingConfig {
	return LightingConfig{
		AmbientIntensity:  math.Vec3{X: 0.05, Y: 0.05, Z: 0.05},
		DiffuseIntensity:  math.Vec3{X: 0.6, Y: 0.6, Z: 0.6},
		SpecularIntensity: math.Vec3{X: 0.90, Y: 0.90, Z: 0.90},
		Shininess:         32.0,
	}
}

// Shade evaluates Blinn-Phong lighting for one fragment. normal and
// position are the interpolated view-space outputs of the vertex stage;
// the viewer sits at the view-space origin looking down -Z.
//
// The result is not clamped to [0,1] — tone mapping and clamping belong
// to the output stage. Zero-length normals or light directions propagate
// NaN; preconditions, not handled failures.
func Shade(normal, position math.Vec3, light DirectionalLight, m Material, cfg LightingConfig) core.Color {
	n := normal.Normalize()
	l := light.Direction.Normalize()
	v := position.Negate().Normalize()

	ambient := cfg.AmbientIntensity.MulVec(cfg.DiffuseIntensity).MulVec(m.DiffuseColor)

	nDotL := n.Dot(l)
	diffuseWeight := math32.Max(nDotL, 0)
	diffuse := cfg.DiffuseIntensity.MulVec(m.DiffuseColor).Mul(diffuseWeight)

	// The half-vector form alone still produces a highlight on surfaces
	// facing away from the light; the n·l gate removes it.
	var specular math.Vec3
	if nDotL > 0 {
		h := math.HalfVector(l, v)
		specularWeight := math32.Pow(math32.Max(h.Dot(n), 0), cfg.Shininess)
		specular = cfg.SpecularIntensity.Mul(specularWeight)
	}

	return core.ColorFromRGB(ambient.Add(diffuse).Add(specular))
}
