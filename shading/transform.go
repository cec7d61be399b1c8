// Package shading implements the per-vertex and per-fragment stages of
// the forward pipeline: object space to clip space with the correct
// normal transform, and a single-light Blinn-Phong evaluator.
//
// Both stages are pure functions over value types. They carry no state,
// report no errors, and may be invoked in any order across any number of
// goroutines; the host writes all per-draw-call configuration before a
// dispatch starts and leaves it untouched until the dispatch ends.
package shading

import (
	"softrender/math"
)

// Vertex is one mesh vertex in object space.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// TransformSet carries the per-draw-call matrices. The model-view
// product must be invertible; feeding a singular model-view produces
// undefined normals, which is a host configuration error rather than a
// condition this package detects.
type TransformSet struct {
	Model      math.Mat4
	View       math.Mat4
	Projection math.Mat4
}

// ModelView maps object space directly to view space.
func (t TransformSet) ModelView() math.Mat4 {
	return t.Model.Mul(t.View)
}

// ModelViewProjection maps object space to clip space.
func (t TransformSet) ModelViewProjection() math.Mat4 {
	return t.Model.Mul(t.View).Mul(t.Projection)
}

// NormalMatrix is the inverse-transpose of the model-view's 3x3 linear
// part. Applying the model-view directly to normals is only correct
// under uniform scaling; the inverse-transpose is correct in general and
// reduces to the same matrix in the uniform case, so it is used
// unconditionally.
func (t TransformSet) NormalMatrix() math.Mat3 {
	return t.ModelView().UpperLeft3x3().Inverse().Transpose()
}

// VertexOutput is the vertex stage result. ClipPosition goes to the
// rasterizer; Position and Normal are in view space and are interpolated
// before reaching Shade. Normal is not unit length — downstream must
// renormalize.
type VertexOutput struct {
	ClipPosition math.Vec4
	Position     math.Vec3
	Normal       math.Vec3
}

// DrawTransforms caches the matrices derived from a TransformSet so a
// dispatch over many vertices pays for the inverse once.
type DrawTransforms struct {
	mvp       math.Mat4
	modelView math.Mat4
	normal    math.Mat3
}

func NewDrawTransforms(t TransformSet) DrawTransforms {
	return DrawTransforms{
		mvp:       t.ModelViewProjection(),
		modelView: t.ModelView(),
		normal:    t.NormalMatrix(),
	}
}

// TransformVertex runs the vertex stage for a single vertex.
func (d DrawTransforms) TransformVertex(v Vertex) VertexOutput {
	p := v.Position.ToVec4(1)
	return VertexOutput{
		ClipPosition: p.MulMat(d.mvp),
		Position:     p.MulMat(d.modelView).ToVec3(),
		Normal:       d.normal.MulVec(v.Normal),
	}
}

// TransformVertex is the single-shot form: it derives the matrices from
// t on every call. Batched callers should build a DrawTransforms once.
func TransformVertex(v Vertex, t TransformSet) VertexOutput {
	return NewDrawTransforms(t).TransformVertex(v)
}
