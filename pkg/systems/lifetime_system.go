package systems

import (
	"github.com/decker502/duckhunt/pkg/components"
	"github.com/decker502/duckhunt/pkg/ecs"
)

// LifetimeSystem 推进目标存活时间，到期的目标交给 TargetSystem 自爆
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	targets       *TargetSystem
}

// NewLifetimeSystem 创建生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager, targets *TargetSystem) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
		targets:       targets,
	}
}

// Update 更新所有目标的生命周期（冻结时由调用方跳过）
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.LifetimeComponent, *components.TargetComponent](s.entityManager)

	for _, id := range entities {
		target, _ := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
		if target.Removed {
			continue
		}
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		if lifetime.IsExpired {
			s.targets.Expire(id)
		}
	}
}
