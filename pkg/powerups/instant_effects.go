package powerups

import (
	"log"

	"github.com/decker502/duckhunt/pkg/fx"
)

// extraLife One More Quack：获得时 +1 生命，可重复收集
type extraLife struct {
	world World
}

func newExtraLife(world World) *extraLife {
	return &extraLife{world: world}
}

// Apply 立即生效
func (e *extraLife) Apply() {
	e.world.AddLife(1)
	feedbackOf(e.world).PlaySound(fx.SoundPowerUp)
	log.Printf("[OneMoreQuack] +1 life")
}

// Carnival Quake 表现参数
const (
	quakeTintFade      = 2.0
	quakeShakeDuration = 1.0
	quakeShakeStrength = 0.3
)

// freeze Carnival Quake：全场冻结固定的真实时间，可重复收集
type freeze struct {
	world    World
	duration float64
}

func newFreeze(world World, duration float64) *freeze {
	return &freeze{world: world, duration: duration}
}

// Apply 立即生效
func (e *freeze) Apply() {
	e.world.Freeze(e.duration)

	fb := feedbackOf(e.world)
	fb.Flash()
	fb.Tint(quakeTintFade)
	fb.Shake(quakeShakeDuration, quakeShakeStrength)
	fb.PlaySound(fx.SoundFreeze)
	log.Printf("[CarnivalQuake] Frozen for %.1fs", e.duration)
}
