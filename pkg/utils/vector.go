package utils

import "math"

// Vec3 三维向量（世界坐标，单位与场景一致）
type Vec3 struct {
	X, Y, Z float64
}

// Add 向量相加
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量相减
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 数乘
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len 向量长度
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dist 两点距离
func (v Vec3) Dist(o Vec3) float64 {
	return v.Sub(o).Len()
}

// Normalize 归一化，零向量原样返回
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Box 轴对齐包围盒（竞技场边界）
type Box struct {
	Center  Vec3
	Extents Vec3 // 半尺寸
}

// Contains 点是否在包围盒内（含边界）
func (b Box) Contains(p Vec3) bool {
	d := p.Sub(b.Center)
	return math.Abs(d.X) <= b.Extents.X &&
		math.Abs(d.Y) <= b.Extents.Y &&
		math.Abs(d.Z) <= b.Extents.Z
}

// Min 包围盒最小角
func (b Box) Min() Vec3 {
	return b.Center.Sub(b.Extents)
}

// Max 包围盒最大角
func (b Box) Max() Vec3 {
	return b.Center.Add(b.Extents)
}

// ClampF 将 v 限制在 [lo, hi]
func ClampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
