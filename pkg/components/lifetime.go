package components

// LifetimeComponent 管理目标的存活时间
// 到期的目标会自爆并扣除一条生命
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	WarningTime     float64 // 剩余时间低于此值进入警告状态(秒)
	IsExpired       bool    // 是否已过期
}

// TimeLeft 剩余存活时间（不小于 0）
func (c *LifetimeComponent) TimeLeft() float64 {
	left := c.MaxLifetime - c.CurrentLifetime
	if left < 0 {
		return 0
	}
	return left
}

// WarningProgress 警告进度 0~1
// 剩余时间高于 WarningTime 时为 0，到期时为 1，供 HUD 做颜色渐变
func (c *LifetimeComponent) WarningProgress() float64 {
	if c.WarningTime <= 0 {
		return 0
	}
	left := c.TimeLeft()
	if left >= c.WarningTime {
		return 0
	}
	return 1 - left/c.WarningTime
}
