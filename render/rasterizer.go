package render

import (
	"softrender/core"
	"softrender/scene"
	"softrender/shading"
)

// Rasterizer draws meshes into a framebuffer. Each draw runs the two
// shading stages around a scanline fill: vertices are transformed in
// parallel, surviving fragments are depth tested serially, then lit in
// parallel before the pixel writes.
type Rasterizer struct {
	FB     *Framebuffer
	Light  shading.DirectionalLight
	Config shading.LightingConfig
}

func NewRasterizer(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{
		FB:     fb,
		Config: shading.DefaultLightingConfig(),
	}
}

// screenVertex is a transformed vertex mapped to pixel coordinates.
type screenVertex struct {
	x, y   float32
	depth  float32 // NDC z
	invW   float32 // 1/clip.W, for perspective-correct interpolation
	out    shading.VertexOutput
	behind bool // clip.W too small to project
}

// fragment is a depth-test survivor waiting for the lighting stage.
type fragment struct {
	x, y int
	frag shading.Fragment
}

// DrawMesh transforms, culls, rasterizes and shades one mesh.
func (r *Rasterizer) DrawMesh(mesh *scene.Mesh, t shading.TransformSet) {
	src := mesh.ShadingVertices()
	if len(src) == 0 {
		return
	}

	outs := make([]shading.VertexOutput, len(src))
	shading.TransformVertices(outs, src, t)

	screen := make([]screenVertex, len(outs))
	w := float32(r.FB.Width)
	h := float32(r.FB.Height)
	for i, out := range outs {
		sv := screenVertex{out: out}
		if out.ClipPosition.W < 1e-6 {
			sv.behind = true
		} else {
			invW := 1 / out.ClipPosition.W
			ndcX := out.ClipPosition.X * invW
			ndcY := out.ClipPosition.Y * invW
			sv.x = (ndcX + 1) * 0.5 * w
			sv.y = (1 - ndcY) * 0.5 * h // NDC y is up, pixel y is down
			sv.depth = out.ClipPosition.Z * invW
			sv.invW = invW
		}
		screen[i] = sv
	}

	var frags []fragment
	for k := 0; k+2 < len(mesh.Indices); k += 3 {
		v0 := screen[mesh.Indices[k]]
		v1 := screen[mesh.Indices[k+1]]
		v2 := screen[mesh.Indices[k+2]]
		if v0.behind || v1.behind || v2.behind {
			continue
		}
		frags = r.rasterizeTriangle(frags, v0, v1, v2)
	}
	if len(frags) == 0 {
		return
	}

	shadeIn := make([]shading.Fragment, len(frags))
	for i, f := range frags {
		shadeIn[i] = f.frag
	}
	shaded := make([]core.Color, len(frags))
	shading.ShadeFragments(shaded, shadeIn, r.Light, mesh.SurfaceMaterial(), r.Config)

	for i, f := range frags {
		r.FB.SetPixel(f.x, f.y, shaded[i])
	}
}

// rasterizeTriangle appends depth-test survivors for one triangle.
// Fragments overwrite the depth buffer as they pass, so later fragments
// of this or following triangles test against the nearest so far.
func (r *Rasterizer) rasterizeTriangle(frags []fragment, v0, v1, v2 screenVertex) []fragment {
	// Signed area in pixel space. The y flip mirrors winding, so
	// counter-clockwise geometry comes out negative here; non-negative
	// area means a back face (or a degenerate triangle).
	area := (v1.x-v0.x)*(v2.y-v0.y) - (v2.x-v0.x)*(v1.y-v0.y)
	if area >= 0 {
		return frags
	}

	minX := clampInt(int(min3(v0.x, v1.x, v2.x)), 0, r.FB.Width-1)
	maxX := clampInt(int(max3(v0.x, v1.x, v2.x))+1, 0, r.FB.Width-1)
	minY := clampInt(int(min3(v0.y, v1.y, v2.y)), 0, r.FB.Height-1)
	maxY := clampInt(int(max3(v0.y, v1.y, v2.y))+1, 0, r.FB.Height-1)

	invArea := 1 / area
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5

			// Barycentric weights from edge functions.
			w0 := ((v1.x-px)*(v2.y-py) - (v2.x-px)*(v1.y-py)) * invArea
			w1 := ((v2.x-px)*(v0.y-py) - (v0.x-px)*(v2.y-py)) * invArea
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			depth := w0*v0.depth + w1*v1.depth + w2*v2.depth
			if depth < -1 || depth > 1 {
				continue
			}
			di := y*r.FB.Width + x
			if depth >= r.FB.Depth[di] {
				continue
			}
			r.FB.Depth[di] = depth

			// Perspective-correct view-space attributes.
			iw := w0*v0.invW + w1*v1.invW + w2*v2.invW
			c0 := w0 * v0.invW / iw
			c1 := w1 * v1.invW / iw
			c2 := w2 * v2.invW / iw

			pos := v0.out.Position.Mul(c0).
				Add(v1.out.Position.Mul(c1)).
				Add(v2.out.Position.Mul(c2))
			normal := v0.out.Normal.Mul(c0).
				Add(v1.out.Normal.Mul(c1)).
				Add(v2.out.Normal.Mul(c2))

			frags = append(frags, fragment{
				x: x, y: y,
				frag: shading.Fragment{Position: pos, Normal: normal},
			})
		}
	}
	return frags
}

func min3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
