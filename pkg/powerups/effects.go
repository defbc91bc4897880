package powerups

import (
	"log"

	"github.com/decker502/duckhunt/pkg/components"
	"github.com/decker502/duckhunt/pkg/ecs"
	"github.com/decker502/duckhunt/pkg/fx"
	"github.com/decker502/duckhunt/pkg/utils"
)

// ComboEffect 关心连击变化的效果（每次成功命中后调用）
type ComboEffect interface {
	OnComboChanged(pos utils.Vec3, combo int)
}

// MissForgivenessEffect 可以宽恕脱靶的效果，返回 true 表示本次脱靶不重置连击
type MissForgivenessEffect interface {
	OnMiss() bool
}

// DeathEffect 关心目标被击杀的效果（计分之后、实体销毁之前调用）
type DeathEffect interface {
	OnTargetKilled(id ecs.EntityID, pos utils.Vec3)
}

// SpawnEffect 在新目标生效之前修改它的效果
type SpawnEffect interface {
	OnTargetSpawned(target *components.TargetComponent)
}

// TimedEffect 带内部计时器的效果
type TimedEffect interface {
	Update(dt float64)
}

// AcquisitionEffect 获得时立即生效的效果
type AcquisitionEffect interface {
	Apply()
}

// World 效果可以触碰的游戏世界
//
// 由组合根（GameScene）实现；效果只通过这组窄接口读写玩法状态。
type World interface {
	// TargetsInRadius 返回 center 半径 radius 内所有存活目标（快照，按距离排序）
	TargetsInRadius(center utils.Vec3, radius float64) []ecs.EntityID
	// HitTarget 以给定倍率击杀目标，目标已移除时返回 false
	HitTarget(id ecs.EntityID, multiplier float64) bool
	// AddLife 增加生命
	AddLife(n int)
	// Freeze 冻结目标运动和生成 seconds 秒（真实时间）
	Freeze(seconds float64)
	// Feedback 表现层命令出口
	Feedback() fx.Feedback
}

// Tuning 效果引擎的全局参数（来自 data/gameplay.yaml）
type Tuning struct {
	ChainMultiplier float64 // 死亡爆炸连锁击杀倍率
	FreezeDuration  float64 // Carnival Quake 冻结时长（秒）
}

// DefaultTuning 默认参数
func DefaultTuning() Tuning {
	return Tuning{ChainMultiplier: 0.5, FreezeDuration: 10}
}

// 爆炸震屏参数
const (
	explosionShakeDuration  = 0.15
	explosionShakeMagnitude = 0.1
)

// newEffect 种类→效果 分发表
//
// 返回的效果对象实现一个或多个能力接口；level 已被限制在 1~MaxLevel。
func newEffect(kind Kind, level int, world World, rng *utils.Random, tuning Tuning) interface{} {
	switch kind {
	case ComboExplosion:
		return newComboExplosion(level, world)
	case MissForgiveness:
		return newMissForgiveness(level)
	case TargetDeathExplosion:
		return newDeathExplosion(level, world, rng, tuning.ChainMultiplier)
	case TargetSpawnSlow:
		return newSpawnSlow(level, rng)
	case Acquisition:
		return newExtraLife(world)
	case InstantFreeze:
		return newFreeze(world, tuning.FreezeDuration)
	default:
		log.Printf("[PowerUpManager] No effect logic mapped for %s", kind)
		return nil
	}
}

// feedbackOf 取得表现层出口，缺失时返回只记录日志的替身
func feedbackOf(w World) fx.Feedback {
	if w != nil {
		if fb := w.Feedback(); fb != nil {
			return fb
		}
	}
	return missingFeedback{}
}

// missingFeedback 缺失表现层时使用：记录日志并跳过
type missingFeedback struct{}

func (missingFeedback) PlayEffect(kind fx.EffectKind, pos utils.Vec3, radius float64) {
	log.Printf("[PowerUps] No feedback, skip effect %s", kind)
}

func (missingFeedback) PlaySound(soundID string) {
	log.Printf("[PowerUps] No feedback, skip sound %s", soundID)
}

func (missingFeedback) Shake(duration, magnitude float64) {}

func (missingFeedback) Flash() {}

func (missingFeedback) Tint(duration float64) {}

func (missingFeedback) SetCursor(visible, locked bool) {}

// missingWorld 未注入 World 时使用：所有操作记录日志后跳过
type missingWorld struct{}

func (missingWorld) TargetsInRadius(center utils.Vec3, radius float64) []ecs.EntityID {
	log.Printf("[PowerUps] No world, skip radius query")
	return nil
}

func (missingWorld) HitTarget(id ecs.EntityID, multiplier float64) bool {
	log.Printf("[PowerUps] No world, skip hit on target %d", id)
	return false
}

func (missingWorld) AddLife(n int) {
	log.Printf("[PowerUps] No world, skip +%d life", n)
}

func (missingWorld) Freeze(seconds float64) {
	log.Printf("[PowerUps] No world, skip %.1fs freeze", seconds)
}

func (missingWorld) Feedback() fx.Feedback {
	return nil
}
