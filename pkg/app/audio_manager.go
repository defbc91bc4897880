package app

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/decker502/duckhunt/pkg/fx"
	"github.com/decker502/duckhunt/pkg/game"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// 16-bit 立体声，每帧 4 字节
const bytesPerFrame = 4

// Tone 一段合成音效：频率从 From 线性滑到 To，振幅按 Decay 指数衰减
type Tone struct {
	From     float64 // 起始频率（Hz）
	To       float64 // 结束频率（Hz）
	Duration float64 // 时长（秒）
	Decay    float64 // 衰减速度，0 表示不衰减
	Square   bool    // 方波（更"街机"的音色）
}

// soundTones 音效ID → 合成参数
var soundTones = map[string]Tone{
	fx.SoundShot:      {From: 1200, To: 180, Duration: 0.09, Decay: 35, Square: true},
	fx.SoundHit:       {From: 520, To: 880, Duration: 0.12, Decay: 18},
	fx.SoundMiss:      {From: 220, To: 160, Duration: 0.10, Decay: 20},
	fx.SoundExplosion: {From: 140, To: 40, Duration: 0.45, Decay: 6, Square: true},
	fx.SoundExpire:    {From: 700, To: 300, Duration: 0.25, Decay: 8, Square: true},
	fx.SoundLevelUp:   {From: 440, To: 1320, Duration: 0.40, Decay: 3},
	fx.SoundPowerUp:   {From: 660, To: 990, Duration: 0.25, Decay: 5},
	fx.SoundFreeze:    {From: 1800, To: 600, Duration: 0.80, Decay: 2},
	fx.SoundGameOver:  {From: 330, To: 110, Duration: 1.00, Decay: 1.5, Square: true},
}

// AudioManager 音频管理器
// 职责：
//   - 实现 fx.SoundPlayer，统一播放玩法发出的音效
//   - 音效在首次播放时合成并缓存播放器
//   - 与 SettingsManager 联动：音效开关和音量
type AudioManager struct {
	context         *audio.Context
	settingsManager *game.SettingsManager
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（音效ID -> 播放器）
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 音频上下文（可为 nil，此时所有音效只记录日志）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *audio.Context, sm *game.SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
	}
}

// PlaySound 实现 fx.SoundPlayer
func (am *AudioManager) PlaySound(soundID string) {
	am.Play(soundID)
}

// Play 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) Play(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false // 音效已禁用
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量，影响后续播放的所有音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, player := range am.soundPlayers {
		player.SetVolume(am.GetSoundVolume())
	}
}

// GetSoundVolume 当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager == nil {
		return game.DefaultSettings().SoundVolume
	}
	return am.settingsManager.GetSettings().SoundVolume
}

// PreloadSounds 预先合成音效，避免第一次开枪时卡顿
func (am *AudioManager) PreloadSounds(soundIDs []string) {
	for _, id := range soundIDs {
		am.getSoundPlayer(id)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(am.soundPlayers))
}

func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, ok := am.soundPlayers[soundID]; ok {
		return player
	}
	if am.context == nil {
		log.Printf("[AudioManager] No audio context, skip %s", soundID)
		return nil
	}

	tone, ok := soundTones[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: Unknown sound %s", soundID)
		return nil
	}

	player := am.context.NewPlayerFromBytes(SynthesizeTone(tone, SampleRate))
	am.soundPlayers[soundID] = player
	return player
}

// SynthesizeTone 把 Tone 合成为 16-bit 小端立体声 PCM
func SynthesizeTone(t Tone, sampleRate int) []byte {
	frames := int(t.Duration * float64(sampleRate))
	if frames <= 0 {
		return nil
	}

	buf := make([]byte, frames*bytesPerFrame)
	phase := 0.0
	for i := 0; i < frames; i++ {
		progress := float64(i) / float64(frames)
		freq := t.From + (t.To-t.From)*progress
		phase += 2 * math.Pi * freq / float64(sampleRate)

		v := math.Sin(phase)
		if t.Square {
			v = math.Copysign(0.6, v)
		}
		secs := float64(i) / float64(sampleRate)
		v *= math.Exp(-t.Decay * secs)

		// 末尾 5ms 淡出，避免爆音
		if tail := float64(frames-i) / float64(sampleRate); tail < 0.005 {
			v *= tail / 0.005
		}

		sample := int16(v * 0.5 * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*bytesPerFrame:], uint16(sample))
		binary.LittleEndian.PutUint16(buf[i*bytesPerFrame+2:], uint16(sample))
	}
	return buf
}

// SoundIDs 所有可合成的音效ID
func SoundIDs() []string {
	return []string{
		fx.SoundShot, fx.SoundHit, fx.SoundMiss, fx.SoundExplosion, fx.SoundExpire,
		fx.SoundLevelUp, fx.SoundPowerUp, fx.SoundFreeze, fx.SoundGameOver,
	}
}
