package fx

import (
	"log"

	"github.com/decker502/duckhunt/pkg/utils"
)

// EffectKind 特效种类
type EffectKind int

const (
	// EffectHit 命中
	EffectHit EffectKind = iota
	// EffectExpire 鸭子到期自爆
	EffectExpire
	// EffectComboExplosion 连击爆炸（Ducktonium Detonator）
	EffectComboExplosion
	// EffectQuacksplosion 死亡爆炸（Quacksplosive Tendencies）
	EffectQuacksplosion
)

// String 返回特效名称
func (k EffectKind) String() string {
	switch k {
	case EffectHit:
		return "hit"
	case EffectExpire:
		return "expire"
	case EffectComboExplosion:
		return "combo_explosion"
	case EffectQuacksplosion:
		return "quacksplosion"
	default:
		return "unknown"
	}
}

// 音效ID
const (
	SoundShot      = "SOUND_SHOT"
	SoundHit       = "SOUND_HIT"
	SoundMiss      = "SOUND_MISS"
	SoundExplosion = "SOUND_EXPLOSION"
	SoundExpire    = "SOUND_QUACK_EXPIRE"
	SoundLevelUp   = "SOUND_LEVEL_UP"
	SoundPowerUp   = "SOUND_POWER_UP"
	SoundFreeze    = "SOUND_FREEZE"
	SoundGameOver  = "SOUND_GAME_OVER"
)

// Feedback 玩法核心发出的单向表现命令
//
// 所有方法都是"发出即忘"：核心从不读取返回值，缺失的协作者只记录日志。
type Feedback interface {
	PlayEffect(kind EffectKind, pos utils.Vec3, radius float64)
	PlaySound(soundID string)
	Shake(duration, magnitude float64)
	Flash()
	Tint(duration float64)
	SetCursor(visible, locked bool)
}

// SoundPlayer 宿主提供的音效播放器
type SoundPlayer interface {
	PlaySound(soundID string)
}

// CursorController 宿主提供的鼠标指针控制
type CursorController interface {
	SetCursor(visible, locked bool)
}

// 序列默认参数
const (
	defaultShakeDamping = 1.0
	flashDuration       = 0.25
	pulseDuration       = 0.4
)

// Director 管理所有正在播放的序列，并实现 Feedback
type Director struct {
	rng    *utils.Random
	sound  SoundPlayer
	cursor CursorController

	shake  *CameraShake
	flash  *Fade
	tint   *Fade
	pulses []*Pulse

	cursorVisible bool
	cursorLocked  bool
}

// NewDirector 创建特效调度器
//
// 参数：
//   - rng: 震屏偏移使用的随机源（可为 nil，此时偏移恒为 0）
func NewDirector(rng *utils.Random) *Director {
	return &Director{
		rng:           rng,
		pulses:        make([]*Pulse, 0),
		cursorVisible: true,
	}
}

// SetSoundPlayer 设置音效播放器（可为 nil）
func (d *Director) SetSoundPlayer(p SoundPlayer) {
	d.sound = p
}

// SetCursorController 设置鼠标指针控制器（可为 nil）
func (d *Director) SetCursorController(c CursorController) {
	d.cursor = c
	if c != nil {
		c.SetCursor(d.cursorVisible, d.cursorLocked)
	}
}

// PlayEffect 在世界坐标播放特效
func (d *Director) PlayEffect(kind EffectKind, pos utils.Vec3, radius float64) {
	log.Printf("[FX] %s at (%.2f, %.2f, %.2f) r=%.2f", kind, pos.X, pos.Y, pos.Z, radius)
	if radius <= 0 {
		return
	}
	d.pulses = append(d.pulses, NewPulse(kind, pos, radius, pulseDuration))
}

// PlaySound 播放音效
func (d *Director) PlaySound(soundID string) {
	if d.sound == nil {
		log.Printf("[FX] No sound player, skip %s", soundID)
		return
	}
	d.sound.PlaySound(soundID)
}

// Shake 触发震屏，新的震动会覆盖旧的
func (d *Director) Shake(duration, magnitude float64) {
	d.shake = NewCameraShake(duration, magnitude, defaultShakeDamping, d.rng)
}

// Flash 触发一次白色闪屏
func (d *Director) Flash() {
	d.flash = NewFade(1, 0, flashDuration, utils.EaseOutCubic)
}

// Tint 触发冻结色调，duration 秒内淡出
func (d *Director) Tint(duration float64) {
	d.tint = NewFade(1, 0, duration, utils.EaseLinear)
}

// SetCursor 设置鼠标指针可见性和锁定
func (d *Director) SetCursor(visible, locked bool) {
	d.cursorVisible = visible
	d.cursorLocked = locked
	if d.cursor == nil {
		log.Printf("[FX] No cursor controller, skip cursor visible=%v locked=%v", visible, locked)
		return
	}
	d.cursor.SetCursor(visible, locked)
}

// Update 推进所有序列
func (d *Director) Update(dt float64) {
	if d.shake != nil && !d.shake.Step(dt) {
		d.shake = nil
	}
	if d.flash != nil && !d.flash.Step(dt) {
		d.flash = nil
	}
	if d.tint != nil && !d.tint.Step(dt) {
		d.tint = nil
	}

	alive := d.pulses[:0]
	for _, p := range d.pulses {
		if p.Step(dt) {
			alive = append(alive, p)
		}
	}
	d.pulses = alive
}

// StopAll 中止所有序列并回到静止状态（重开一局时调用）
func (d *Director) StopAll() {
	if d.shake != nil {
		d.shake.Stop()
		d.shake = nil
	}
	if d.flash != nil {
		d.flash.Stop()
		d.flash = nil
	}
	if d.tint != nil {
		d.tint.Stop()
		d.tint = nil
	}
	for _, p := range d.pulses {
		p.Stop()
	}
	d.pulses = d.pulses[:0]
}

// ShakeOffset 当前相机偏移
func (d *Director) ShakeOffset() utils.Vec3 {
	if d.shake == nil {
		return utils.Vec3{}
	}
	return d.shake.Offset()
}

// FlashAlpha 当前闪屏透明度
func (d *Director) FlashAlpha() float64 {
	if d.flash == nil {
		return 0
	}
	return d.flash.Value()
}

// TintAlpha 当前冻结色调透明度
func (d *Director) TintAlpha() float64 {
	if d.tint == nil {
		return 0
	}
	return d.tint.Value()
}

// Pulses 当前播放中的爆炸光环
func (d *Director) Pulses() []*Pulse {
	return d.pulses
}

// Cursor 当前指针状态
func (d *Director) Cursor() (visible, locked bool) {
	return d.cursorVisible, d.cursorLocked
}

// Active 是否有任何序列在播放
func (d *Director) Active() bool {
	return d.shake != nil || d.flash != nil || d.tint != nil || len(d.pulses) > 0
}
