package systems

import (
	"math"

	"github.com/decker502/duckhunt/pkg/components"
	"github.com/decker502/duckhunt/pkg/ecs"
	"github.com/decker502/duckhunt/pkg/utils"
)

// HitResult 一次命中检测的结果
type HitResult struct {
	Hit      bool
	Target   ecs.EntityID
	Zone     components.HitZone
	Position utils.Vec3 // 被命中目标的世界坐标
}

// HitTester 屏幕坐标命中检测
type HitTester interface {
	HitTest(x, y float64) HitResult
}

// ProjectionHitTester 把存活目标投影到屏幕做圆形命中检测
//
// 每个目标有三个命中区：鸭嘴、头部、身体，重叠时按 鸭嘴 > 头部 > 身体 判定；
// 多个目标重叠时离相机最近的目标获胜。
type ProjectionHitTester struct {
	entityManager *ecs.EntityManager
	camera        *Camera
	query         *SpatialQuery
}

// NewProjectionHitTester 创建投影命中检测
func NewProjectionHitTester(em *ecs.EntityManager, camera *Camera) *ProjectionHitTester {
	return &ProjectionHitTester{
		entityManager: em,
		camera:        camera,
		query:         NewSpatialQuery(em),
	}
}

// HitTest 检测屏幕坐标 (x, y) 命中的目标
func (h *ProjectionHitTester) HitTest(x, y float64) HitResult {
	best := HitResult{}
	bestDepth := math.Inf(1)

	for _, id := range h.query.LiveTargets() {
		target, _ := ecs.GetComponent[*components.TargetComponent](h.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](h.entityManager, id)

		zone := h.zoneAt(x, y, target, transform.Position)
		if zone == components.HitZoneNone {
			continue
		}

		depth := h.camera.Depth(transform.Position)
		if depth < bestDepth {
			bestDepth = depth
			best = HitResult{Hit: true, Target: id, Zone: zone, Position: transform.Position}
		}
	}

	return best
}

// zoneAt 返回屏幕点落在目标的哪个命中区
func (h *ProjectionHitTester) zoneAt(x, y float64, target *components.TargetComponent, pos utils.Vec3) components.HitZone {
	beak := pos.Add(utils.Vec3{X: target.BeakOffsetX, Y: target.BeakOffsetY})
	if h.inside(x, y, beak, target.BeakRadius) {
		return components.HitZoneBeak
	}
	head := pos.Add(utils.Vec3{Y: target.HeadOffsetY})
	if h.inside(x, y, head, target.HeadRadius) {
		return components.HitZoneHead
	}
	if h.inside(x, y, pos, target.Radius) {
		return components.HitZoneBody
	}
	return components.HitZoneNone
}

func (h *ProjectionHitTester) inside(x, y float64, center utils.Vec3, radius float64) bool {
	if radius <= 0 {
		return false
	}
	sx, sy, scale, ok := h.camera.Project(center)
	if !ok {
		return false
	}
	dx, dy := x-sx, y-sy
	r := radius * scale
	return dx*dx+dy*dy <= r*r
}
