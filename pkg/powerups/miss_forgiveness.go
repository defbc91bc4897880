package powerups

import "log"

// forgivenessWindow Oopsie Shield L3 的宽恕窗口（秒）
const forgivenessWindow = 1.0

// missForgiveness Oopsie Shield
//
// L1/L2 本次获得内共宽恕 1/2 次脱靶。
// L3 为滚动窗口：空闲时的第一次脱靶被宽恕并打开 1 秒窗口，
// 窗口内的脱靶同样被宽恕并把窗口重置为 1 秒；窗口只会被新的被宽恕脱靶打开。
type missForgiveness struct {
	level      int
	missesLeft int
	windowLeft float64
}

func newMissForgiveness(level int) *missForgiveness {
	e := &missForgiveness{level: level}
	if level < MaxLevel {
		e.missesLeft = level
	}
	return e
}

// OnMiss 处理一次脱靶，返回是否宽恕
func (e *missForgiveness) OnMiss() bool {
	if e.level < MaxLevel {
		if e.missesLeft > 0 {
			e.missesLeft--
			log.Printf("[OopsieShield] Forgave a miss, %d left", e.missesLeft)
			return true
		}
		return false
	}

	if e.windowLeft > 0 {
		log.Printf("[OopsieShield] Miss forgiven within window")
	} else {
		log.Printf("[OopsieShield] Forgiveness window opened")
	}
	e.windowLeft = forgivenessWindow
	return true
}

// Update 推进宽恕窗口
func (e *missForgiveness) Update(dt float64) {
	if e.windowLeft <= 0 {
		return
	}
	e.windowLeft -= dt
	if e.windowLeft <= 0 {
		e.windowLeft = 0
		log.Printf("[OopsieShield] Forgiveness window expired")
	}
}

// WindowActive 宽恕窗口是否打开
func (e *missForgiveness) WindowActive() bool {
	return e.windowLeft > 0
}
