package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	// Addition
	result := v1.Add(v2)
	expected := NewVec3(5, 7, 9)
	if result != expected {
		t.Errorf("Add: expected %v, got %v", expected, result)
	}

	// Subtraction
	result = v2.Sub(v1)
	expected = NewVec3(3, 3, 3)
	if result != expected {
		t.Errorf("Sub: expected %v, got %v", expected, result)
	}

	// Scalar multiplication
	result = v1.Mul(2)
	expected = NewVec3(2, 4, 6)
	if result != expected {
		t.Errorf("Mul: expected %v, got %v", expected, result)
	}

	// Component-wise multiplication
	result = v1.MulVec(v2)
	expected = NewVec3(4, 10, 18)
	if result != expected {
		t.Errorf("MulVec: expected %v, got %v", expected, result)
	}

	// Dot product
	dot := v1.Dot(v2)
	expectedDot := float32(32) // 1*4 + 2*5 + 3*6
	if dot != expectedDot {
		t.Errorf("Dot: expected %v, got %v", expectedDot, dot)
	}

	// Cross product (Right x Up = Front in right-handed system)
	cross := Vec3Right.Cross(Vec3Up)
	if cross != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 0)
	normalized := v.Normalize()
	expected := NewVec3(1, 0, 0)

	if normalized != expected {
		t.Errorf("Normalize: expected %v, got %v", expected, normalized)
	}

	// Check length is 1
	length := normalized.Length()
	if math32.Abs(length-1) > 0.0001 {
		t.Errorf("Normalize: expected length 1, got %v", length)
	}
}

func TestVec3Reflect(t *testing.T) {
	// A vector going down-right reflected off a floor goes up-right
	v := NewVec3(1, -1, 0)
	reflected := v.Reflect(Vec3Up)
	expected := NewVec3(1, 1, 0)
	if reflected != expected {
		t.Errorf("Reflect: expected %v, got %v", expected, reflected)
	}
}

func TestHalfVector(t *testing.T) {
	l := NewVec3(1, 0, 0)
	v := NewVec3(0, 1, 0)
	h := HalfVector(l, v)

	if math32.Abs(h.Length()-1) > 0.0001 {
		t.Errorf("HalfVector: expected unit length, got %v", h.Length())
	}
	// Half vector bisects the angle: equal dot with both inputs
	if math32.Abs(h.Dot(l)-h.Dot(v)) > 0.0001 {
		t.Errorf("HalfVector: expected equal angles, got %v vs %v", h.Dot(l), h.Dot(v))
	}
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := float32(0)
			if i == j {
				expected = 1
			}
			if m[i][j] != expected {
				t.Errorf("Identity: expected [%d][%d] = %v, got %v", i, j, expected, m[i][j])
			}
		}
	}
}

func TestMat4Multiplication(t *testing.T) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	result := m1.Mul(m2)

	// Identity * Identity = Identity
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := float32(0)
			if i == j {
				expected = 1
			}
			if result[i][j] != expected {
				t.Errorf("Mul: expected [%d][%d] = %v, got %v", i, j, expected, result[i][j])
			}
		}
	}
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	if m[3][0] != 1 || m[3][1] != 2 || m[3][2] != 3 {
		t.Errorf("Translation: expected (1,2,3), got (%v,%v,%v)", m[3][0], m[3][1], m[3][2])
	}

	point := NewVec4(0, 0, 0, 1)
	result := point.MulMat(m)

	if result.ToVec3() != translation {
		t.Errorf("Translation: expected %v, got %v", translation, result.ToVec3())
	}
}

func mat4ApproxEqual(a, b Mat4, tolerance float32) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math32.Abs(a[i][j]-b[i][j]) > tolerance {
				return false
			}
		}
	}
	return true
}

func TestMat4Inverse(t *testing.T) {
	// A full TRS matrix with non-uniform scale
	m := Mat4TRS(NewVec3(1, -2, 3), NewVec3(0.4, 1.1, -0.3), NewVec3(2, 1, 0.5))

	inv := m.Inverse()
	product := m.Mul(inv)

	if !mat4ApproxEqual(product, Mat4Identity(), 0.0001) {
		t.Errorf("Inverse: m * m^-1 != identity, got %v", product)
	}

	// Round-trip a point through the transform and back
	p := NewVec3(5, -7, 2)
	back := inv.MulVec3(m.MulVec3(p))
	if p.Distance(back) > 0.001 {
		t.Errorf("Inverse: round-trip expected %v, got %v", p, back)
	}
}

func TestMat4InverseSingular(t *testing.T) {
	// Zero scale on one axis is singular; Inverse falls back to identity
	m := Mat4Scale(NewVec3(1, 0, 1))
	if m.Inverse() != Mat4Identity() {
		t.Error("Inverse: expected identity for singular matrix")
	}
}

func TestMat3Inverse(t *testing.T) {
	m3 := Mat4RotationY(0.7).Mul(Mat4Scale(NewVec3(2, 3, 4))).UpperLeft3x3()
	inv := m3.Inverse()
	product := m3.Mul(inv)

	identity := Mat3Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math32.Abs(product[i][j]-identity[i][j]) > 0.0001 {
				t.Errorf("Mat3 Inverse: m * m^-1 != identity, got %v", product)
			}
		}
	}
}

func TestMat3InverseTransposeScalesNormals(t *testing.T) {
	// Under diag(2,1,1) the inverse-transpose must scale the X normal by
	// 0.5, not 2 — the discriminator between correct and naive normal
	// transforms.
	m3 := Mat4Scale(NewVec3(2, 1, 1)).UpperLeft3x3()
	normalMatrix := m3.Inverse().Transpose()

	n := normalMatrix.MulVec(NewVec3(1, 0, 0))
	expected := NewVec3(0.5, 0, 0)
	if n.Distance(expected) > 0.0001 {
		t.Errorf("expected %v, got %v", expected, n)
	}
}

func TestQuaternionIdentity(t *testing.T) {
	q := QuaternionIdentity()

	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("QuaternionIdentity: expected (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuaternionRotation(t *testing.T) {
	// 90 degree rotation around Y axis
	q := QuaternionFromAxisAngle(Vec3Up, math32.Pi/2)

	result := q.RotateVector(Vec3Right)

	tolerance := float32(0.001)
	if math32.Abs(result.X) > tolerance ||
		math32.Abs(result.Y) > tolerance ||
		math32.Abs(result.Z+1) > tolerance {
		t.Errorf("Quaternion rotation: expected approximately (0,0,-1), got (%v,%v,%v)", result.X, result.Y, result.Z)
	}
}

func TestQuaternionMatMatchesRotateVector(t *testing.T) {
	q := QuaternionFromAxisAngle(NewVec3(1, 2, 3), 1.3)

	v := NewVec3(-2, 5, 0.5)
	byQuat := q.RotateVector(v)
	byMat := v.ToVec4(0).MulMat(q.ToMat4()).ToVec3()

	if byQuat.Distance(byMat) > 0.001 {
		t.Errorf("expected %v, got %v", byQuat, byMat)
	}
}

func TestMat4Perspective(t *testing.T) {
	fov := math32.Pi / 4 // 45 degrees
	aspect := float32(16.0 / 9.0)
	near := float32(0.1)
	far := float32(100.0)

	m := Mat4Perspective(fov, aspect, near, far)

	if m[0][0] == 0 {
		t.Error("Perspective: expected non-zero X scale")
	}
	if m[1][1] == 0 {
		t.Error("Perspective: expected non-zero Y scale")
	}

	// A point in front of the camera lands in front of the near plane
	// with positive W after the row-vector multiply
	p := NewVec4(0, 0, -10, 1).MulMat(m)
	if p.W <= 0 {
		t.Errorf("Perspective: expected positive W for point in front, got %v", p.W)
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	target := NewVec3(0, 0, 0)
	up := Vec3Up

	m := Mat4LookAt(eye, target, up)

	// The view matrix should transform the eye position to origin
	result := m.MulVec(eye.ToVec4(1))

	tolerance := float32(0.001)
	if math32.Abs(result.X) > tolerance ||
		math32.Abs(result.Y) > tolerance ||
		math32.Abs(result.Z) > tolerance {
		t.Errorf("LookAt: expected eye to transform to origin, got (%v,%v,%v)", result.X, result.Y, result.Z)
	}

	// The target should land on the negative Z axis
	tr := m.MulVec(target.ToVec4(1))
	if tr.Z >= 0 {
		t.Errorf("LookAt: expected target in front of camera (negative Z), got %v", tr.Z)
	}
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4Inverse(b *testing.B) {
	m := Mat4TRS(NewVec3(1, 2, 3), NewVec3(0.1, 0.2, 0.3), NewVec3(2, 1, 0.5))

	for i := 0; i < b.N; i++ {
		_ = m.Inverse()
	}
}
