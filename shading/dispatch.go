package shading

import (
	"runtime"
	"sync"

	"softrender/core"
	"softrender/math"
)

// Dispatch runs fn(i) for every i in [0, n) across worker goroutines.
// fn must be safe to call concurrently and must not assume any ordering
// between indices. Small batches run inline.
func Dispatch(n int, fn func(i int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// TransformVertices runs the vertex stage over src, writing into dst.
// dst and src must have equal length.
func TransformVertices(dst []VertexOutput, src []Vertex, t TransformSet) {
	d := NewDrawTransforms(t)
	Dispatch(len(src), func(i int) {
		dst[i] = d.TransformVertex(src[i])
	})
}

// Fragment is one interpolated position/normal pair awaiting lighting.
type Fragment struct {
	Position math.Vec3
	Normal   math.Vec3
}

// ShadeFragments evaluates lighting over src, writing into dst.
// dst and src must have equal length.
func ShadeFragments(dst []core.Color, src []Fragment, light DirectionalLight, m Material, cfg LightingConfig) {
	Dispatch(len(src), func(i int) {
		dst[i] = Shade(src[i].Normal, src[i].Position, light, m, cfg)
	})
}
