package reader

import "github.com/GianlucaZoni/GaussianSplats3D/splat"

// Transform is the optional affine transform accepted by the bulk fill
// operations. Covariance and SH rotation use only Linear, the upper-left
// 3x3; centers use both Linear and Translation.
type Transform struct {
	Linear      [3][3]float32
	Translation splat.Vec3
}

// apply applies the full affine transform to v.
func (t *Transform) apply(v splat.Vec3) splat.Vec3 {
	m := t.Linear
	return splat.Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + t.Translation.X,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + t.Translation.Y,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + t.Translation.Z,
	}
}
