package config

import (
	"fmt"
	"os"

	"github.com/decker502/duckhunt/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Ramp 前期/后期两个端点，中间按局内进度平滑插值
type Ramp struct {
	Early float64 `yaml:"early"`
	Late  float64 `yaml:"late"`
}

// At 按进度 p ∈ [0, 1] 做 SmoothStep 插值
func (r Ramp) At(p float64) float64 {
	return utils.SmoothStep(r.Early, r.Late, p)
}

// IntervalRange 随机间隔区间
type IntervalRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// SpawnConfig 自适应生成参数（data/spawn.yaml）
type SpawnConfig struct {
	Arena             utils.Box     `yaml:"arena"`             // 生成和活动的竞技场
	EmergencyInterval IntervalRange `yaml:"emergencyInterval"` // 低于最少数量时的紧急间隔
	MinTargets        Ramp          `yaml:"minTargets"`        // 期望的最少存活数量
	MaxTargets        Ramp          `yaml:"maxTargets"`        // 允许的最多存活数量
	BaseInterval      Ramp          `yaml:"baseInterval"`      // 正常生成间隔
	FastFillRatio     float64       `yaml:"fastFillRatio"`     // 低于此占比加速生成
	FastFactor        float64       `yaml:"fastFactor"`        // 加速时的间隔系数（<1）
	SlowFillRatio     float64       `yaml:"slowFillRatio"`     // 达到此占比减速生成
	SlowMultiplier    float64       `yaml:"slowMultiplier"`    // 减速时的间隔系数（>1）
}

// DefaultSpawnConfig 返回内置默认值（与 data/spawn.yaml 一致）
func DefaultSpawnConfig() *SpawnConfig {
	return &SpawnConfig{
		Arena: utils.Box{
			Center:  utils.Vec3{X: 0, Y: 2, Z: 12},
			Extents: utils.Vec3{X: 8, Y: 3, Z: 4},
		},
		EmergencyInterval: IntervalRange{Min: 0.1, Max: 0.3},
		MinTargets:        Ramp{Early: 3, Late: 5},
		MaxTargets:        Ramp{Early: 8, Late: 15},
		BaseInterval:      Ramp{Early: 1.5, Late: 0.7},
		FastFillRatio:     0.4,
		FastFactor:        0.7,
		SlowFillRatio:     0.7,
		SlowMultiplier:    2.0,
	}
}

// LoadSpawnConfig 从 YAML 文件加载生成配置
func LoadSpawnConfig(filePath string) (*SpawnConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read spawn config file: %w", err)
	}
	return ParseSpawnConfig(data)
}

// ParseSpawnConfig 解析生成配置
func ParseSpawnConfig(data []byte) (*SpawnConfig, error) {
	cfg := DefaultSpawnConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse spawn config YAML: %w", err)
	}

	if err := validateSpawnConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid spawn config: %w", err)
	}

	return cfg, nil
}

// validateSpawnConfig 验证配置的有效性
func validateSpawnConfig(cfg *SpawnConfig) error {
	ext := cfg.Arena.Extents
	if ext.X <= 0 || ext.Y <= 0 || ext.Z <= 0 {
		return fmt.Errorf("arena.extents must be positive on every axis, got %+v", ext)
	}

	if cfg.EmergencyInterval.Min <= 0 || cfg.EmergencyInterval.Max < cfg.EmergencyInterval.Min {
		return fmt.Errorf("emergencyInterval must satisfy 0 < min <= max, got %+v", cfg.EmergencyInterval)
	}

	if cfg.MinTargets.Early < 0 || cfg.MinTargets.Late < 0 {
		return fmt.Errorf("minTargets cannot be negative, got %+v", cfg.MinTargets)
	}
	if cfg.MaxTargets.Early < 1 || cfg.MaxTargets.Late < 1 {
		return fmt.Errorf("maxTargets must be >= 1, got %+v", cfg.MaxTargets)
	}
	if cfg.MinTargets.Early > cfg.MaxTargets.Early || cfg.MinTargets.Late > cfg.MaxTargets.Late {
		return fmt.Errorf("minTargets %+v exceeds maxTargets %+v", cfg.MinTargets, cfg.MaxTargets)
	}

	if cfg.BaseInterval.Early <= 0 || cfg.BaseInterval.Late <= 0 {
		return fmt.Errorf("baseInterval must be > 0, got %+v", cfg.BaseInterval)
	}

	if cfg.FastFillRatio < 0 || cfg.SlowFillRatio > 1 || cfg.FastFillRatio > cfg.SlowFillRatio {
		return fmt.Errorf("fill ratios must satisfy 0 <= fast <= slow <= 1, got fast=%v slow=%v",
			cfg.FastFillRatio, cfg.SlowFillRatio)
	}
	if cfg.FastFactor <= 0 || cfg.FastFactor > 1 {
		return fmt.Errorf("fastFactor must be in (0, 1], got %v", cfg.FastFactor)
	}
	if cfg.SlowMultiplier < 1 {
		return fmt.Errorf("slowMultiplier must be >= 1, got %v", cfg.SlowMultiplier)
	}

	return nil
}
