package systems

import (
	"github.com/decker502/duckhunt/pkg/components"
	"github.com/decker502/duckhunt/pkg/ecs"
	"github.com/decker502/duckhunt/pkg/utils"
)

// boundsClampRatio 越界后把目标拉回到边界内的比例
const boundsClampRatio = 0.95

// MovementSystem 目标移动：按速度和速度倍率积分，碰到竞技场边界反弹
type MovementSystem struct {
	entityManager *ecs.EntityManager
	arena         utils.Box
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, arena utils.Box) *MovementSystem {
	return &MovementSystem{entityManager: em, arena: arena}
}

// Update 移动所有存活目标（冻结时由调用方跳过）
func (s *MovementSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.TargetComponent, *components.TransformComponent](s.entityManager)

	for _, id := range entities {
		target, _ := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
		if target.Removed {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		factor := target.SpeedFactor
		if factor <= 0 {
			factor = 1
		}
		transform.Position = transform.Position.Add(transform.Velocity.Scale(factor * deltaTime))

		if !s.arena.Contains(transform.Position) {
			s.bounce(transform)
		}
	}
}

// bounce 越界轴的速度取反，位置拉回边界内
func (s *MovementSystem) bounce(transform *components.TransformComponent) {
	c, e := s.arena.Center, s.arena.Extents
	rel := transform.Position.Sub(c)

	if rel.X < -e.X || rel.X > e.X {
		transform.Velocity.X = -transform.Velocity.X
	}
	if rel.Y < -e.Y || rel.Y > e.Y {
		transform.Velocity.Y = -transform.Velocity.Y
	}
	if rel.Z < -e.Z || rel.Z > e.Z {
		transform.Velocity.Z = -transform.Velocity.Z
	}

	transform.Position = utils.Vec3{
		X: c.X + utils.ClampF(rel.X, -e.X*boundsClampRatio, e.X*boundsClampRatio),
		Y: c.Y + utils.ClampF(rel.Y, -e.Y*boundsClampRatio, e.Y*boundsClampRatio),
		Z: c.Z + utils.ClampF(rel.Z, -e.Z*boundsClampRatio, e.Z*boundsClampRatio),
	}
}
