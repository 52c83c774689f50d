// Package meshmap implements bidirectional index mappings between a derived
// mesh and its base mesh, each correspondence carrying a local affine
// transform, plus the compile (composition) operator that fuses two
// adjacent mappings into one.
package meshmap

import "math"

// Vec3 is a plain 3D vector: three named float64 fields, no backing
// array.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v minus o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns v scaled to unit length, or the zero vector if v is
// too close to zero to normalize safely.
func (v Vec3) Normalized() (Vec3, bool) {
	l := v.Length()
	if l < 1e-12 {
		return Vec3{}, false
	}
	return v.Scale(1 / l), true
}

// Mat4 is a row-major 4x4 affine matrix: rows 0-2 hold the 3x3 rotation
// (columns are the basis vectors) plus translation in column 3, row 3 is
// the homogeneous (0,0,0,1) row. Sixteen floats, the wire shape carried
// alongside every mapping correspondence.
type Mat4 [16]float64

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c (0-indexed).
func (m Mat4) At(r, c int) float64 { return m[r*4+c] }

// Mul returns the matrix product m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m.At(r, k) * o.At(k, c)
			}
			out[r*4+c] = sum
		}
	}
	return out
}

// Translation returns the affine translation of m.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// Basis returns the three column basis vectors (the rotation part) of m.
func (m Mat4) Basis() (x, y, z Vec3) {
	x = Vec3{m[0], m[4], m[8]}
	y = Vec3{m[1], m[5], m[9]}
	z = Vec3{m[2], m[6], m[10]}
	return
}

// Inverse returns the inverse of m, assuming m is a rigid (rotation +
// translation) affine transform: the rotation block is transposed and the
// translation is negated and re-expressed in the rotated frame.
func (m Mat4) Inverse() Mat4 {
	// Transpose the 3x3 rotation block.
	rt := Mat4{
		m.At(0, 0), m.At(1, 0), m.At(2, 0), 0,
		m.At(0, 1), m.At(1, 1), m.At(2, 1), 0,
		m.At(0, 2), m.At(1, 2), m.At(2, 2), 0,
		0, 0, 0, 1,
	}
	t := m.Translation()
	// Rotate -t by the transposed (inverse) rotation.
	nt := Vec3{
		rt.At(0, 0)*-t.X + rt.At(0, 1)*-t.Y + rt.At(0, 2)*-t.Z,
		rt.At(1, 0)*-t.X + rt.At(1, 1)*-t.Y + rt.At(1, 2)*-t.Z,
		rt.At(2, 0)*-t.X + rt.At(2, 1)*-t.Y + rt.At(2, 2)*-t.Z,
	}
	rt[3] = nt.X
	rt[7] = nt.Y
	rt[11] = nt.Z
	return rt
}

// Frame is an orthonormal basis (t, b, n) attached to an origin, used to
// express the rigid change in orientation/position between a parent
// element and one of its children.
type Frame struct {
	Origin Vec3
	T, B, N Vec3
}

// fallbackNormal and fallbackTangent are the directions NewFrame uses when
// a normal or tangent cannot be computed (zero-length after projection).
var (
	fallbackNormal  = Vec3{0, 0, 1}
	fallbackTangent = Vec3{1, 0, 0}
)

// NewFrame builds an orthonormal frame from an origin, a candidate normal
// and a candidate tangent, falling back to a fixed normal/tangent when
// either degenerates, and re-orthogonalizing t against n before deriving
// b = n x t.
func NewFrame(origin, normal, tangent Vec3) Frame {
	n, ok := normal.Normalized()
	if !ok {
		n = fallbackNormal
	}
	// Project tangent onto the plane orthogonal to n, then normalize.
	proj := tangent.Sub(n.Scale(tangent.Dot(n)))
	t, ok := proj.Normalized()
	if !ok {
		t = fallbackTangent
		// Re-project the fallback too, in case it is parallel to n.
		proj = t.Sub(n.Scale(t.Dot(n)))
		if reproj, ok2 := proj.Normalized(); ok2 {
			t = reproj
		}
	}
	b := n.Cross(t)
	return Frame{Origin: origin, T: t, B: b, N: n}
}

// FromFrame returns the rigid transform that carries the `from` frame's
// basis and origin onto this frame ("to"): rotation R = Bto *
// BfromTranspose, translation carries from.Origin to to.Origin.
func (to Frame) FromFrame(from Frame) Mat4 {
	// rot has to's basis vectors as columns (R * from_basis_k = to_basis_k
	// requires R = ToBasis * FromBasis^-1 = ToBasis * FromBasis^T).
	rot := Mat4{
		to.T.X, to.B.X, to.N.X, 0,
		to.T.Y, to.B.Y, to.N.Y, 0,
		to.T.Z, to.B.Z, to.N.Z, 0,
		0, 0, 0, 1,
	}
	// fromT is from's basis transposed (basis vectors as rows).
	fromT := Mat4{
		from.T.X, from.T.Y, from.T.Z, 0,
		from.B.X, from.B.Y, from.B.Z, 0,
		from.N.X, from.N.Y, from.N.Z, 0,
		0, 0, 0, 1,
	}
	r := rot.Mul(fromT)
	r[3] = to.Origin.X - (r.At(0, 0)*from.Origin.X + r.At(0, 1)*from.Origin.Y + r.At(0, 2)*from.Origin.Z)
	r[7] = to.Origin.Y - (r.At(1, 0)*from.Origin.X + r.At(1, 1)*from.Origin.Y + r.At(1, 2)*from.Origin.Z)
	r[11] = to.Origin.Z - (r.At(2, 0)*from.Origin.X + r.At(2, 1)*from.Origin.Y + r.At(2, 2)*from.Origin.Z)
	return r
}
