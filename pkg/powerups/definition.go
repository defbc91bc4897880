package powerups

import (
	"fmt"

	"github.com/decker502/duckhunt/pkg/config"
)

// MaxLevel 道具最高等级
const MaxLevel = 3

// Definition 道具模板
//
// 模板不可变：获得或升级时总是通过 WithLevel 产生一份运行时副本，
// 重开一局时这些副本随 Manager.Reset 一起丢弃。
type Definition struct {
	ID          string
	Name        string
	Kind        Kind
	Level       int
	Upgradeable bool
	Description string
}

// WithLevel 返回指定等级的副本（等级被限制在 1~MaxLevel）
func (d Definition) WithLevel(level int) Definition {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	d.Level = level
	return d
}

// CanUpgrade 是否还能继续升级
func (d Definition) CanUpgrade() bool {
	return d.Upgradeable && !d.Kind.IsOneShot() && d.Level < MaxLevel
}

// Library 按配置顺序排列的道具模板，每种效果至多一个模板
type Library struct {
	defs []Definition
}

// NewLibrary 从 YAML 配置构建模板库
//
// 参数：
//   - cfg: data/powerups.yaml 解析结果
//
// 返回：
//   - *Library: 模板库
//   - error: 种类名未知、种类重复、一次性种类标记为可升级时返回错误
func NewLibrary(cfg *config.PowerUpsConfig) (*Library, error) {
	if cfg == nil {
		return nil, fmt.Errorf("power-ups config is nil")
	}

	defs := make([]Definition, 0, len(cfg.PowerUps))
	for _, entry := range cfg.PowerUps {
		kind, err := ParseKind(entry.Kind)
		if err != nil {
			return nil, fmt.Errorf("power-up %s: %w", entry.ID, err)
		}
		defs = append(defs, Definition{
			ID:          entry.ID,
			Name:        entry.Name,
			Kind:        kind,
			Level:       entry.Level,
			Upgradeable: entry.Upgradeable,
			Description: entry.Description,
		})
	}
	return NewLibraryFromDefinitions(defs)
}

// NewLibraryFromDefinitions 直接用模板列表构建模板库（测试和模拟器使用）
func NewLibraryFromDefinitions(defs []Definition) (*Library, error) {
	seen := make(map[Kind]string, len(defs))
	for _, def := range defs {
		if def.Level < 1 || def.Level > MaxLevel {
			return nil, fmt.Errorf("power-up %s: level must be between 1 and %d, got %d", def.ID, MaxLevel, def.Level)
		}
		if other, dup := seen[def.Kind]; dup {
			return nil, fmt.Errorf("power-up %s: kind %s already used by %s", def.ID, def.Kind, other)
		}
		if def.Kind.IsOneShot() && def.Upgradeable {
			return nil, fmt.Errorf("power-up %s: one-shot kind %s cannot be upgradeable", def.ID, def.Kind)
		}
		seen[def.Kind] = def.ID
	}

	copied := make([]Definition, len(defs))
	copy(copied, defs)
	return &Library{defs: copied}, nil
}

// Definitions 返回模板副本（配置顺序）
func (l *Library) Definitions() []Definition {
	out := make([]Definition, len(l.defs))
	copy(out, l.defs)
	return out
}

// Get 按种类查找模板
func (l *Library) Get(kind Kind) (Definition, bool) {
	for _, def := range l.defs {
		if def.Kind == kind {
			return def, true
		}
	}
	return Definition{}, false
}

// ByID 按 ID 查找模板
func (l *Library) ByID(id string) (Definition, bool) {
	for _, def := range l.defs {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// Len 模板数量
func (l *Library) Len() int {
	return len(l.defs)
}
