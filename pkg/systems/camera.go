package systems

import (
	"github.com/decker502/duckhunt/pkg/config"
	"github.com/decker502/duckhunt/pkg/utils"
)

// nearPlane 近裁剪面深度，更近的点不投影
const nearPlane = 0.1

// Camera 固定机位针孔相机
//
// 相机位于 Position，沿 -Z 方向观察，Y 轴向上；屏幕坐标原点在左上角。
// ShakeOffset 是震屏序列给出的临时偏移，只影响投影，不影响相机位置本身。
type Camera struct {
	Position    utils.Vec3
	FocalLength float64
	Width       int
	Height      int

	ShakeOffset utils.Vec3
}

// NewCamera 按配置创建相机
func NewCamera(cfg config.CameraConfig) *Camera {
	return &Camera{
		Position:    cfg.Position,
		FocalLength: cfg.FocalLength,
		Width:       cfg.ScreenWidth,
		Height:      cfg.ScreenHeight,
	}
}

// Project 把世界坐标投影到屏幕
//
// 返回：
//   - x, y: 屏幕像素坐标
//   - scale: 该深度下 1 个世界单位对应的像素数
//   - ok: 点在相机前方时为 true
func (c *Camera) Project(world utils.Vec3) (x, y, scale float64, ok bool) {
	rel := world.Sub(c.Position.Add(c.ShakeOffset))
	depth := -rel.Z
	if depth <= nearPlane {
		return 0, 0, 0, false
	}
	scale = c.FocalLength / depth
	x = float64(c.Width)/2 + rel.X*scale
	y = float64(c.Height)/2 - rel.Y*scale
	return x, y, scale, true
}

// Depth 世界坐标到相机平面的深度
func (c *Camera) Depth(world utils.Vec3) float64 {
	return c.Position.Z - world.Z
}
