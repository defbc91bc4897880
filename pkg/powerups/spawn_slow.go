package powerups

import (
	"log"

	"github.com/decker502/duckhunt/pkg/components"
	"github.com/decker502/duckhunt/pkg/utils"
)

// slowFactor Duck Dilation 减速后的速度倍率
const slowFactor = 0.6

// spawnSlow Duck Dilation：新鸭子按概率减速，L3 附带拖尾外观标志
type spawnSlow struct {
	level  int
	chance float64
	rng    *utils.Random
}

// spawnSlowChance 各等级的减速概率
func spawnSlowChance(level int) float64 {
	switch level {
	case 2:
		return 0.50
	case 3:
		return 0.75
	default:
		return 0.25
	}
}

func newSpawnSlow(level int, rng *utils.Random) *spawnSlow {
	return &spawnSlow{level: level, chance: spawnSlowChance(level), rng: rng}
}

// OnTargetSpawned 新目标生成
func (e *spawnSlow) OnTargetSpawned(target *components.TargetComponent) {
	if target == nil || target.Slowed {
		return
	}
	if !e.rng.Chance(e.chance) {
		return
	}

	target.SpeedFactor = slowFactor
	target.Slowed = true
	if e.level >= MaxLevel {
		target.Trail = true
	}
	log.Printf("[DuckDilation] Slowed new target to %.1fx (trail=%v)", slowFactor, target.Trail)
}
