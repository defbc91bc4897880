package systems

import (
	"log"
	"math"

	"github.com/decker502/duckhunt/pkg/components"
	"github.com/decker502/duckhunt/pkg/ecs"
	"github.com/decker502/duckhunt/pkg/fx"
	"github.com/decker502/duckhunt/pkg/game"
	"github.com/decker502/duckhunt/pkg/utils"
)

// DeathNotifier 接收击杀事件（道具死亡效果）
type DeathNotifier interface {
	OnTargetKilled(id ecs.EntityID, pos utils.Vec3)
}

// LiveCounter 存活目标计数，每个目标移除时恰好递减一次
type LiveCounter interface {
	TargetRemoved()
}

// TargetSystem 目标的两条移除路径：被击杀、存活到期
//
// 两条路径都先检查并设置 TargetComponent.Removed，重复调用直接返回 false，
// 保证计分/扣命和存活计数递减对同一目标只发生一次。
type TargetSystem struct {
	entityManager *ecs.EntityManager
	run           *game.RunState
	counter       LiveCounter
	deaths        DeathNotifier
	feedback      fx.Feedback

	kills    int
	expiries int
}

// NewTargetSystem 创建目标系统
//
// 参数：
//   - em: 实体管理器
//   - run: 本局状态（计分、扣命）
//   - counter: 存活计数（SpawnSystem）
func NewTargetSystem(em *ecs.EntityManager, run *game.RunState, counter LiveCounter) *TargetSystem {
	return &TargetSystem{
		entityManager: em,
		run:           run,
		counter:       counter,
	}
}

// SetDeathNotifier 设置击杀事件接收方（可为 nil）
func (s *TargetSystem) SetDeathNotifier(n DeathNotifier) {
	s.deaths = n
}

// SetFeedback 设置表现层出口（可为 nil）
func (s *TargetSystem) SetFeedback(fb fx.Feedback) {
	s.feedback = fb
}

// Kill 以倍率 multiplier 击杀目标
//
// 计分 round(BasePoints × multiplier)（再乘以连击倍率），随后分发死亡效果，最后销毁实体。
// 返回 false 表示目标不存在或已在移除流程中。
func (s *TargetSystem) Kill(id ecs.EntityID, multiplier float64) bool {
	target, ok := s.claim(id)
	if !ok {
		return false
	}
	pos := s.position(id)

	points := int(math.Round(float64(target.BasePoints) * multiplier))
	awarded := s.run.AddPoints(points)
	s.kills++
	log.Printf("[TargetSystem] Target %d killed x%.1f: +%d", id, multiplier, awarded)

	if s.feedback != nil {
		s.feedback.PlayEffect(fx.EffectHit, pos, 0)
		s.feedback.PlaySound(fx.SoundHit)
	}

	if s.deaths != nil {
		s.deaths.OnTargetKilled(id, pos)
	}

	s.release(id)
	return true
}

// Expire 目标存活到期自爆：扣一条生命并销毁
func (s *TargetSystem) Expire(id ecs.EntityID) bool {
	if _, ok := s.claim(id); !ok {
		return false
	}
	pos := s.position(id)

	s.expiries++
	log.Printf("[TargetSystem] Target %d expired", id)
	s.run.RemoveLife()

	if s.feedback != nil {
		s.feedback.PlayEffect(fx.EffectExpire, pos, 0)
		s.feedback.PlaySound(fx.SoundExpire)
	}

	s.release(id)
	return true
}

// claim 检查并设置 Removed 标志
func (s *TargetSystem) claim(id ecs.EntityID) (*components.TargetComponent, bool) {
	target, ok := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
	if !ok || target.Removed {
		return nil, false
	}
	target.Removed = true
	return target, true
}

func (s *TargetSystem) position(id ecs.EntityID) utils.Vec3 {
	if transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id); ok {
		return transform.Position
	}
	return utils.Vec3{}
}

func (s *TargetSystem) release(id ecs.EntityID) {
	s.entityManager.DestroyEntity(id)
	if s.counter != nil {
		s.counter.TargetRemoved()
	}
}

// Kills 本局击杀数
func (s *TargetSystem) Kills() int { return s.kills }

// Expiries 本局到期数
func (s *TargetSystem) Expiries() int { return s.expiries }

// ResetStats 清空统计（重开一局）
func (s *TargetSystem) ResetStats() {
	s.kills = 0
	s.expiries = 0
}
