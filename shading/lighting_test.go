package shading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"softrender/math"
)

func white() Material {
	return Material{DiffuseColor: math.Vec3One}
}

func TestShadeHeadOn(t *testing.T) {
	// Surface, light and viewer all aligned on +Z: full diffuse, full
	// specular, constant ambient.
	n := math.Vec3{Z: 1}
	p := math.Vec3{Z: -1} // fragment in front of the camera, view dir = +Z
	light := DirectionalLight{Direction: math.Vec3{Z: 1}}

	c := Shade(n, p, light, white(), DefaultLightingConfig())

	// ambient 0.05*0.6 + diffuse 0.6 + specular 0.9
	assert.InDelta(t, 1.53, c.R, 1e-4)
	assert.InDelta(t, 1.53, c.G, 1e-4)
	assert.InDelta(t, 1.53, c.B, 1e-4)
	assert.Equal(t, float32(1.0), c.A)
}

func TestShadeLightBehindSurface(t *testing.T) {
	n := math.Vec3{Z: 1}
	p := math.Vec3{Z: -1}
	light := DirectionalLight{Direction: math.Vec3{Z: -1}}

	c := Shade(n, p, light, white(), DefaultLightingConfig())

	// Ambient only: 0.05 * 0.6
	assert.InDelta(t, 0.03, c.R, 1e-4)
	assert.InDelta(t, 0.03, c.G, 1e-4)
	assert.InDelta(t, 0.03, c.B, 1e-4)
}

func TestSpecularGateAtGrazing(t *testing.T) {
	// n·l == 0 exactly: no diffuse and, critically, no specular even
	// though the half-vector term alone would be positive.
	n := math.Vec3{Z: 1}
	p := math.Vec3{X: 0.3, Z: -1}
	light := DirectionalLight{Direction: math.Vec3{X: 1}}

	cfg := DefaultLightingConfig()
	c := Shade(n, p, light, white(), cfg)

	ambient := cfg.AmbientIntensity.MulVec(cfg.DiffuseIntensity)
	assert.InDelta(t, ambient.X, c.R, 1e-5)
	assert.InDelta(t, ambient.Y, c.G, 1e-5)
	assert.InDelta(t, ambient.Z, c.B, 1e-5)
}

func TestAmbientIndependentOfGeometry(t *testing.T) {
	// With diffuse and specular weights forced to zero by a backfacing
	// light, the output equals the ambient floor for any normal and any
	// fragment position.
	light := DirectionalLight{Direction: math.Vec3{Y: -1}}
	cfg := DefaultLightingConfig()

	normals := []math.Vec3{
		{Y: 1},
		{X: 0.6, Y: 0.8},
		{X: -0.2, Y: 0.5, Z: 0.9},
	}
	positions := []math.Vec3{
		{Z: -1},
		{X: 4, Y: 2, Z: -10},
		{X: -1, Y: -1, Z: -0.5},
	}

	var first *float32
	for _, n := range normals {
		// keep n facing away from the light
		if n.Dot(light.Direction) > 0 {
			continue
		}
		for _, p := range positions {
			c := Shade(n, p, light, white(), cfg)
			if first == nil {
				v := c.R
				first = &v
				continue
			}
			assert.InDelta(t, *first, c.R, 1e-5)
		}
	}
}

func TestDiffuseMonotonicInIncidence(t *testing.T) {
	// Sweep the light from grazing to head-on; output must never decrease.
	p := math.Vec3{Z: -1}
	n := math.Vec3{Z: 1}
	cfg := DefaultLightingConfig()
	// Specular off so the sweep isolates the diffuse term
	cfg.SpecularIntensity = math.Vec3Zero

	prev := float32(-1)
	for i := 0; i <= 16; i++ {
		t01 := float32(i) / 16
		// interpolate direction from tangent (X) to normal (Z)
		dir := math.Vec3{X: 1 - t01, Z: t01}.Normalize()
		c := Shade(n, p, DirectionalLight{Direction: dir}, white(), cfg)
		assert.GreaterOrEqual(t, c.R, prev, "diffuse decreased at step %d", i)
		prev = c.R
	}
}

func TestShadeRotationInvariance(t *testing.T) {
	// The model is defined purely by relative angles: rotating N, L and
	// the fragment position together leaves the color unchanged.
	n := math.Vec3{X: 0.2, Y: 0.3, Z: 1}.Normalize()
	p := math.Vec3{X: 0.5, Y: -0.25, Z: -2}
	l := math.Vec3{X: -0.4, Y: 0.8, Z: 0.45}.Normalize()
	cfg := DefaultLightingConfig()
	m := Material{DiffuseColor: math.Vec3{X: 0.8, Y: 0.4, Z: 0.2}}

	base := Shade(n, p, DirectionalLight{Direction: l}, m, cfg)

	q := math.QuaternionFromAxisAngle(math.Vec3{X: 1, Y: 2, Z: -1}, 1.234)
	rotated := Shade(q.RotateVector(n), q.RotateVector(p), DirectionalLight{Direction: q.RotateVector(l)}, m, cfg)

	assert.InDelta(t, base.R, rotated.R, 1e-4)
	assert.InDelta(t, base.G, rotated.G, 1e-4)
	assert.InDelta(t, base.B, rotated.B, 1e-4)
}

func TestShadeUnnormalizedInputs(t *testing.T) {
	// Shade renormalizes: scaling the incoming normal and light must not
	// change the result.
	n := math.Vec3{X: 0.1, Y: 0.2, Z: 1}
	p := math.Vec3{Z: -3}
	l := math.Vec3{X: 0.3, Z: 0.9}
	cfg := DefaultLightingConfig()

	a := Shade(n, p, DirectionalLight{Direction: l}, white(), cfg)
	b := Shade(n.Mul(7), p, DirectionalLight{Direction: l.Mul(0.01)}, white(), cfg)

	assert.InDelta(t, a.R, b.R, 1e-4)
	assert.InDelta(t, a.G, b.G, 1e-4)
	assert.InDelta(t, a.B, b.B, 1e-4)
}

func TestShadeMaterialColorScalesDiffuse(t *testing.T) {
	n := math.Vec3{Z: 1}
	p := math.Vec3{Z: -1}
	light := DirectionalLight{Direction: math.Vec3{Z: 1}}
	cfg := DefaultLightingConfig()
	cfg.SpecularIntensity = math.Vec3Zero
	cfg.AmbientIntensity = math.Vec3Zero

	m := Material{DiffuseColor: math.Vec3{X: 1, Y: 0.5, Z: 0}}
	c := Shade(n, p, light, m, cfg)

	assert.InDelta(t, 0.6, c.R, 1e-4)
	assert.InDelta(t, 0.3, c.G, 1e-4)
	assert.InDelta(t, 0.0, c.B, 1e-4)
}
