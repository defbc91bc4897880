package systems

import (
	"log"

	"github.com/decker502/duckhunt/pkg/components"
	"github.com/decker502/duckhunt/pkg/config"
	"github.com/decker502/duckhunt/pkg/fx"
	"github.com/decker502/duckhunt/pkg/game"
	"github.com/decker502/duckhunt/pkg/utils"
)

// ShotEffects 射击结果分发给道具效果
type ShotEffects interface {
	OnComboChanged(pos utils.Vec3, combo int)
	OnMiss() bool
}

// ShotStats 本局射击统计
type ShotStats struct {
	Shots      int
	Hits       int
	Misses     int
	Forgiven   int // 被宽恕、没有重置连击的脱靶
	HeadShots  int
	BeakShots  int
	LongestRun int // 最长连击
}

// Accuracy 命中率
func (s ShotStats) Accuracy() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Shots)
}

// ShootingSystem 处理一次射击
//
// 命中：连击 +1 → 以命中区倍率击杀目标（计分、死亡效果） → 在命中位置分发连击效果。
// 先击杀再分发连击，连击爆炸就不会再次命中刚被击杀的目标。
// 脱靶：按获得顺序询问宽恕效果，无人宽恕时重置连击。
type ShootingSystem struct {
	hitTester HitTester
	run       *game.RunState
	targets   *TargetSystem
	effects   ShotEffects
	feedback  fx.Feedback
	zones     config.ZoneMultiplier

	stats ShotStats
}

// NewShootingSystem 创建射击系统
func NewShootingSystem(hitTester HitTester, run *game.RunState, targets *TargetSystem, zones config.ZoneMultiplier) *ShootingSystem {
	return &ShootingSystem{
		hitTester: hitTester,
		run:       run,
		targets:   targets,
		zones:     zones,
	}
}

// SetShotEffects 设置道具效果分发（可为 nil）
func (s *ShootingSystem) SetShotEffects(e ShotEffects) {
	s.effects = e
}

// SetFeedback 设置表现层出口（可为 nil）
func (s *ShootingSystem) SetFeedback(fb fx.Feedback) {
	s.feedback = fb
}

// Shoot 在屏幕坐标 (x, y) 开枪，仅 Play 阶段有效
func (s *ShootingSystem) Shoot(x, y float64) HitResult {
	if s.run.Phase() != game.PhasePlay {
		return HitResult{}
	}
	if s.hitTester == nil {
		log.Printf("[ShootingSystem] No hit tester, shot ignored")
		return HitResult{}
	}

	s.stats.Shots++
	s.playSound(fx.SoundShot)

	result := s.hitTester.HitTest(x, y)
	if result.Hit {
		s.onHit(result)
	} else {
		s.onMiss()
	}
	return result
}

func (s *ShootingSystem) onHit(result HitResult) {
	s.stats.Hits++
	switch result.Zone {
	case components.HitZoneHead:
		s.stats.HeadShots++
	case components.HitZoneBeak:
		s.stats.BeakShots++
	}

	combo := s.run.AddCombo()
	if combo > s.stats.LongestRun {
		s.stats.LongestRun = combo
	}

	s.targets.Kill(result.Target, s.ZoneMultiplier(result.Zone))

	if s.effects != nil {
		s.effects.OnComboChanged(result.Position, combo)
	}
}

func (s *ShootingSystem) onMiss() {
	s.stats.Misses++
	if s.effects != nil && s.effects.OnMiss() {
		s.stats.Forgiven++
		return
	}
	s.run.ResetCombo()
	s.playSound(fx.SoundMiss)
}

// ZoneMultiplier 命中区对应的计分倍率
func (s *ShootingSystem) ZoneMultiplier(zone components.HitZone) float64 {
	switch zone {
	case components.HitZoneBeak:
		return s.zones.Beak
	case components.HitZoneHead:
		return s.zones.Head
	case components.HitZoneBody:
		return s.zones.Body
	default:
		return 0
	}
}

func (s *ShootingSystem) playSound(id string) {
	if s.feedback != nil {
		s.feedback.PlaySound(id)
	}
}

// Stats 本局射击统计
func (s *ShootingSystem) Stats() ShotStats {
	return s.stats
}

// ResetStats 清空统计（重开一局）
func (s *ShootingSystem) ResetStats() {
	s.stats = ShotStats{}
}
