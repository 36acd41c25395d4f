// Package splat defines the logical, uncompressed splat type and the small
// vector/quaternion math shared by the bucket builder, writer, reader and SH
// transform engine.
package splat

import "math"

// Vec3 is a 3-component float32 vector, used for centers, scales and bucket
// centers.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns a*s.
func (a Vec3) Scale(s float32) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

// Quaternion is a unit rotation quaternion. The struct field order is the
// user-facing order (x, y, z, w); on-disk storage order is (w, x, y, z) and
// is handled exclusively by the section/writer/reader packages.
type Quaternion struct {
	X, Y, Z, W float32
}

// Normalize returns q scaled to unit length. The identity quaternion is
// returned if q has zero length (degenerate input).
func (q Quaternion) Normalize() Quaternion {
	n := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if n == 0 {
		return Quaternion{0, 0, 0, 1}
	}
	return Quaternion{q.X / n, q.Y / n, q.Z / n, q.W / n}
}

// RotationMatrix returns the 3x3 row-major rotation matrix equivalent to q.
// q is assumed to already be normalized.
func (q Quaternion) RotationMatrix() [3][3]float32 {
	x, y, z, w := q.X, q.Y, q.Z, q.W

	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	return [3][3]float32{
		{1 - (yy + zz), xy - wz, xz + wy},
		{xy + wz, 1 - (xx + zz), yz - wx},
		{xz - wy, yz + wx, 1 - (xx + yy)},
	}
}

// DefaultScale is the scale assigned to a splat whose input had no geometry:
// identity rotation and a scale of 0.01 in each axis.
const DefaultScale float32 = 0.01

// DefaultQuaternion is the identity rotation assigned when a splat's input
// has no geometry.
var DefaultQuaternion = Quaternion{0, 0, 0, 1}

// Splat is the logical, uncompressed representation of one Gaussian
// primitive: the in-memory form produced by external parsers (PLY and
// similar, explicitly out of scope for this module) and consumed by
// writer.Writer.
type Splat struct {
	Center   Vec3
	Scale    Vec3
	Rotation Quaternion
	// Color is RGBA, 0-255 per channel.
	Color [4]uint8
	// SH holds up to 24 spherical-harmonic coefficients in channel-major
	// order: all R, then all G, then all B.
	SH []float32
}
