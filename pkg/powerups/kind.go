// Package powerups 实现道具效果引擎
//
// Manager 持有玩家本局已获得的道具，并把玩法事件（命中连击、脱靶、击杀、生成、逐帧 tick）
// 分发给关心该类事件的效果对象。每种效果只声明自己具备的能力接口（见 effects.go），
// newEffect 是唯一的 种类→效果 分发表。
package powerups

import "fmt"

// Kind 道具效果种类
type Kind int

const (
	// ComboExplosion 连击爆炸（Ducktonium Detonator）
	ComboExplosion Kind = iota
	// MissForgiveness 脱靶宽恕（Oopsie Shield）
	MissForgiveness
	// TargetDeathExplosion 击杀时概率爆炸（Quacksplosive Tendencies）
	TargetDeathExplosion
	// TargetSpawnSlow 新鸭子概率减速（Duck Dilation）
	TargetSpawnSlow
	// Acquisition 获得即生效：+1 生命（One More Quack）
	Acquisition
	// InstantFreeze 获得即生效：全场冻结（Carnival Quake）
	InstantFreeze
)

// kindNames YAML 中使用的种类名
var kindNames = map[Kind]string{
	ComboExplosion:       "comboExplosion",
	MissForgiveness:      "missForgiveness",
	TargetDeathExplosion: "targetDeathExplosion",
	TargetSpawnSlow:      "targetSpawnSlow",
	Acquisition:          "acquisition",
	InstantFreeze:        "instantFreeze",
}

// String 返回 YAML 种类名
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind 把 YAML 种类名解析为 Kind
func ParseKind(name string) (Kind, error) {
	for kind, n := range kindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown power-up kind %q", name)
}

// IsOneShot 是否为获得即生效、可重复收集的一次性种类
func (k Kind) IsOneShot() bool {
	return k == Acquisition || k == InstantFreeze
}
