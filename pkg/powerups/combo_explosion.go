package powerups

import (
	"log"

	"github.com/decker502/duckhunt/pkg/fx"
	"github.com/decker502/duckhunt/pkg/utils"
)

// comboExplosion Ducktonium Detonator
//
// 连击达到阈值时上膛（不爆炸），之后每多 interval 连击爆炸一次；
// 连击低于阈值时解除上膛。
type comboExplosion struct {
	level     int
	threshold int
	radius    float64
	interval  int

	armed    bool
	nextFire int

	world World
}

// comboExplosionParams 各等级的上膛阈值、爆炸半径、再次爆炸间隔
func comboExplosionParams(level int) (threshold int, radius float64, interval int) {
	switch level {
	case 2:
		return 8, 5, 4
	case 3:
		return 5, 8, 3
	default:
		return 10, 5, 5
	}
}

func newComboExplosion(level int, world World) *comboExplosion {
	threshold, radius, interval := comboExplosionParams(level)
	return &comboExplosion{
		level:     level,
		threshold: threshold,
		radius:    radius,
		interval:  interval,
		world:     world,
	}
}

// OnComboChanged 连击变化
func (e *comboExplosion) OnComboChanged(pos utils.Vec3, combo int) {
	if combo < e.threshold {
		if e.armed {
			log.Printf("[ComboExplosion] Disarmed at combo %d", combo)
		}
		e.armed = false
		return
	}

	if !e.armed {
		e.armed = true
		e.nextFire = combo + e.interval
		log.Printf("[ComboExplosion] Armed at combo %d, next blast at %d", combo, e.nextFire)
		return
	}

	if combo >= e.nextFire {
		e.explode(pos)
		e.nextFire = combo + e.interval
	}
}

func (e *comboExplosion) explode(pos utils.Vec3) {
	fb := feedbackOf(e.world)
	fb.PlayEffect(fx.EffectComboExplosion, pos, e.radius)
	fb.PlaySound(fx.SoundExplosion)
	fb.Shake(explosionShakeDuration, explosionShakeMagnitude)

	hits := 0
	for _, id := range e.world.TargetsInRadius(pos, e.radius) {
		if e.world.HitTarget(id, 1) {
			hits++
		}
	}
	log.Printf("[ComboExplosion] Blast r=%.1f hit %d targets", e.radius, hits)
}

// Armed 是否已上膛
func (e *comboExplosion) Armed() bool {
	return e.armed
}
