// Package fx 提供可逐帧推进的定时视觉序列（震屏、闪屏、色调淡出、爆炸光环）
//
// 每个序列都是显式状态机：宿主循环每帧调用 Step(dt)，返回 true 表示仍在进行；
// Stop() 立即把序列打回静止状态。序列本身不渲染任何东西，宿主按需读取当前值。
package fx

import (
	"github.com/decker502/duckhunt/pkg/utils"
)

// Sequence 可推进、可中止的定时序列
type Sequence interface {
	// Step 推进 dt 秒，返回序列是否仍在进行
	Step(dt float64) bool
	// Stop 中止序列并回到静止状态
	Stop()
}

// CameraShake 相机震动
//
// 剩余时间按 dt*Damping 递减，期间每步在单位球内随机取一个偏移。
type CameraShake struct {
	Duration  float64
	Magnitude float64
	Damping   float64

	remaining float64
	offset    utils.Vec3
	rng       *utils.Random
}

// NewCameraShake 创建震动序列（立即开始）
func NewCameraShake(duration, magnitude, damping float64, rng *utils.Random) *CameraShake {
	if damping <= 0 {
		damping = 1
	}
	return &CameraShake{
		Duration:  duration,
		Magnitude: magnitude,
		Damping:   damping,
		remaining: duration,
		rng:       rng,
	}
}

// Step 推进震动
func (s *CameraShake) Step(dt float64) bool {
	if s.remaining <= 0 {
		s.remaining = 0
		s.offset = utils.Vec3{}
		return false
	}
	s.offset = s.randomInUnitSphere().Scale(s.Magnitude)
	s.remaining -= dt * s.Damping
	return true
}

// Stop 停止震动，偏移归零
func (s *CameraShake) Stop() {
	s.remaining = 0
	s.offset = utils.Vec3{}
}

// Offset 当前相机偏移
func (s *CameraShake) Offset() utils.Vec3 {
	return s.offset
}

// Active 是否仍在震动
func (s *CameraShake) Active() bool {
	return s.remaining > 0
}

func (s *CameraShake) randomInUnitSphere() utils.Vec3 {
	if s.rng == nil {
		return utils.Vec3{}
	}
	for i := 0; i < 16; i++ {
		p := utils.Vec3{
			X: s.rng.Range(-1, 1),
			Y: s.rng.Range(-1, 1),
			Z: s.rng.Range(-1, 1),
		}
		if p.Len() <= 1 {
			return p
		}
	}
	return utils.Vec3{}
}

// Fade 数值渐变（闪屏透明度、色调透明度）
type Fade struct {
	From     float64
	To       float64
	Duration float64
	Easing   utils.EasingFunc

	elapsed float64
	value   float64
}

// NewFade 创建渐变序列，Easing 为 nil 时使用线性
func NewFade(from, to, duration float64, easing utils.EasingFunc) *Fade {
	if easing == nil {
		easing = utils.EaseLinear
	}
	return &Fade{From: from, To: to, Duration: duration, Easing: easing, value: from}
}

// Step 推进渐变
func (f *Fade) Step(dt float64) bool {
	if f.Duration <= 0 {
		f.value = f.To
		return false
	}
	f.elapsed += dt
	t := utils.Clamp01(f.elapsed / f.Duration)
	f.value = utils.Lerp(f.From, f.To, f.Easing(t))
	return f.elapsed < f.Duration
}

// Stop 跳到终点值
func (f *Fade) Stop() {
	f.elapsed = f.Duration
	f.value = f.To
}

// Value 当前值
func (f *Fade) Value() float64 {
	return f.value
}

// Progress 进度 0~1
func (f *Fade) Progress() float64 {
	if f.Duration <= 0 {
		return 1
	}
	return utils.Clamp01(f.elapsed / f.Duration)
}

// Pulse 爆炸光环：在世界坐标某点从 0 扩张到 Radius
type Pulse struct {
	Kind     EffectKind
	Position utils.Vec3
	Radius   float64
	fade     *Fade
}

// NewPulse 创建爆炸光环
func NewPulse(kind EffectKind, pos utils.Vec3, radius, duration float64) *Pulse {
	return &Pulse{
		Kind:     kind,
		Position: pos,
		Radius:   radius,
		fade:     NewFade(0, 1, duration, utils.EaseOutQuad),
	}
}

// Step 推进光环
func (p *Pulse) Step(dt float64) bool {
	return p.fade.Step(dt)
}

// Stop 结束光环
func (p *Pulse) Stop() {
	p.fade.Stop()
}

// CurrentRadius 当前光环半径
func (p *Pulse) CurrentRadius() float64 {
	return p.Radius * p.fade.Value()
}

// Alpha 当前透明度（随扩张逐渐消失）
func (p *Pulse) Alpha() float64 {
	return 1 - p.fade.Progress()
}
