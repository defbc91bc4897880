package powerups

import (
	"log"

	"github.com/decker502/duckhunt/pkg/ecs"
	"github.com/decker502/duckhunt/pkg/fx"
	"github.com/decker502/duckhunt/pkg/utils"
)

// deathExplosion Quacksplosive Tendencies
//
// 每次击杀按概率在死亡位置爆炸，半径内其他存活目标以连锁倍率被击杀。
// 连锁击杀同样会触发死亡效果；TargetSystem 的幂等移除保证连锁必然终止。
type deathExplosion struct {
	level           int
	chance          float64
	radius          float64
	chainMultiplier float64

	world World
	rng   *utils.Random
}

// deathExplosionParams 各等级的爆炸概率和半径
func deathExplosionParams(level int) (chance, radius float64) {
	switch level {
	case 2:
		return 0.20, 3.5
	case 3:
		return 0.30, 4.5
	default:
		return 0.10, 2
	}
}

func newDeathExplosion(level int, world World, rng *utils.Random, chainMultiplier float64) *deathExplosion {
	chance, radius := deathExplosionParams(level)
	return &deathExplosion{
		level:           level,
		chance:          chance,
		radius:          radius,
		chainMultiplier: chainMultiplier,
		world:           world,
		rng:             rng,
	}
}

// OnTargetKilled 目标被击杀
func (e *deathExplosion) OnTargetKilled(id ecs.EntityID, pos utils.Vec3) {
	if !e.rng.Chance(e.chance) {
		return
	}

	fb := feedbackOf(e.world)
	fb.PlayEffect(fx.EffectQuacksplosion, pos, e.radius)
	fb.PlaySound(fx.SoundExplosion)
	fb.Shake(explosionShakeDuration, explosionShakeMagnitude)

	chained := 0
	for _, other := range e.world.TargetsInRadius(pos, e.radius) {
		if other == id {
			continue
		}
		if e.world.HitTarget(other, e.chainMultiplier) {
			chained++
		}
	}
	log.Printf("[Quacksplosion] Target %d exploded r=%.1f, chained %d", id, e.radius, chained)
}
