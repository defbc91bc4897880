package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PowerUpEntry 单个道具模板（data/powerups.yaml）
//
// Kind 使用 YAML 名（如 "comboExplosion"），由 powerups 包解析为枚举。
type PowerUpEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	Level       int    `yaml:"level"`
	Upgradeable bool   `yaml:"upgradeable"`
	Description string `yaml:"description"`
}

// PowerUpsConfig 道具模板列表
type PowerUpsConfig struct {
	PowerUps []PowerUpEntry `yaml:"powerUps"`
}

// LoadPowerUpsConfig 从 YAML 文件加载道具模板
func LoadPowerUpsConfig(filePath string) (*PowerUpsConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read power-ups file: %w", err)
	}
	return ParsePowerUpsConfig(data)
}

// ParsePowerUpsConfig 解析道具模板
func ParsePowerUpsConfig(data []byte) (*PowerUpsConfig, error) {
	var cfg PowerUpsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse power-ups YAML: %w", err)
	}

	if err := validatePowerUpsConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid power-ups config: %w", err)
	}

	return &cfg, nil
}

// validatePowerUpsConfig 验证模板字段（种类名的合法性由 powerups 包检查）
func validatePowerUpsConfig(cfg *PowerUpsConfig) error {
	if len(cfg.PowerUps) == 0 {
		return fmt.Errorf("powerUps cannot be empty")
	}

	seen := make(map[string]bool, len(cfg.PowerUps))
	for i, entry := range cfg.PowerUps {
		if entry.ID == "" {
			return fmt.Errorf("powerUps[%d]: id cannot be empty", i)
		}
		if seen[entry.ID] {
			return fmt.Errorf("duplicate power-up id %q", entry.ID)
		}
		seen[entry.ID] = true

		if entry.Name == "" {
			return fmt.Errorf("power-up %s: name cannot be empty", entry.ID)
		}
		if entry.Kind == "" {
			return fmt.Errorf("power-up %s: kind cannot be empty", entry.ID)
		}
		if entry.Level < 1 || entry.Level > 3 {
			return fmt.Errorf("power-up %s: level must be between 1 and 3, got %d", entry.ID, entry.Level)
		}
	}

	return nil
}
