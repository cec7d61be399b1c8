package render

import (
	"softrender/core"
)

// Framebuffer is a CPU-side color and depth target. Pix is tightly
// packed RGBA, row major, ready for display upload.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint8
	Depth  []float32
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
		Depth:  make([]float32, width*height),
	}
}

// Clear fills the color buffer and resets depth to the far plane.
func (fb *Framebuffer) Clear(c core.Color) {
	r, g, b, a := quantize(c)
	for i := 0; i < len(fb.Pix); i += 4 {
		fb.Pix[i] = r
		fb.Pix[i+1] = g
		fb.Pix[i+2] = b
		fb.Pix[i+3] = a
	}
	for i := range fb.Depth {
		fb.Depth[i] = 1
	}
}

// SetPixel stores a color at (x, y). Out-of-range channel values are
// clamped at store time; lighting results above 1 are expected.
func (fb *Framebuffer) SetPixel(x, y int, c core.Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	i := (y*fb.Width + x) * 4
	fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3] = quantize(c)
}

// At returns the stored color at (x, y).
func (fb *Framebuffer) At(x, y int) core.Color {
	i := (y*fb.Width + x) * 4
	return core.Color{
		R: float32(fb.Pix[i]) / 255,
		G: float32(fb.Pix[i+1]) / 255,
		B: float32(fb.Pix[i+2]) / 255,
		A: float32(fb.Pix[i+3]) / 255,
	}
}

// DepthAt returns the stored depth at (x, y).
func (fb *Framebuffer) DepthAt(x, y int) float32 {
	return fb.Depth[y*fb.Width+x]
}

func quantize(c core.Color) (r, g, b, a uint8) {
	return channel(c.R), channel(c.G), channel(c.B), channel(c.A)
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
