package config

import (
	"fmt"
	"os"

	"github.com/decker502/duckhunt/pkg/utils"
	"gopkg.in/yaml.v3"
)

// GameplayConfig 单局玩法参数（data/gameplay.yaml）
type GameplayConfig struct {
	Run     RunConfig     `yaml:"run"`
	Scoring ScoringConfig `yaml:"scoring"`
	Levels  LevelConfig   `yaml:"levels"`
	Freeze  FreezeConfig  `yaml:"freeze"`
	Targets TargetConfig  `yaml:"targets"`
	Camera  CameraConfig  `yaml:"camera"`
}

// RunConfig 一局的时长和生命
type RunConfig struct {
	Duration float64 `yaml:"duration"` // 一局时长（秒），到时即胜利结束
	MaxLives int     `yaml:"maxLives"` // 初始生命（也是初始上限）
}

// ScoringConfig 计分参数
type ScoringConfig struct {
	BasePoints      int            `yaml:"basePoints"`      // 单只鸭子基础分
	ZoneMultipliers ZoneMultiplier `yaml:"zoneMultipliers"` // 命中部位倍率
	ChainMultiplier float64        `yaml:"chainMultiplier"` // 死亡爆炸连锁击杀倍率
}

// ZoneMultiplier 命中部位倍率
type ZoneMultiplier struct {
	Body float64 `yaml:"body"`
	Head float64 `yaml:"head"`
	Beak float64 `yaml:"beak"`
}

// LevelConfig 升级阈值
type LevelConfig struct {
	BaseThreshold   int     `yaml:"baseThreshold"`   // 第一次升级所需分数
	ThresholdFactor float64 `yaml:"thresholdFactor"` // 每次升级后阈值的乘数（>1）
	OfferCount      int     `yaml:"offerCount"`      // 每次升级提供的道具候选数
}

// FreezeConfig Carnival Quake 冻结参数
type FreezeConfig struct {
	Duration float64 `yaml:"duration"` // 冻结时长（真实时间，秒）
}

// TargetConfig 鸭子参数
type TargetConfig struct {
	Lifetime    float64 `yaml:"lifetime"`    // 存活时间（秒），到期自爆扣命
	WarningTime float64 `yaml:"warningTime"` // 进入警告状态的剩余时间
	MoveSpeed   float64 `yaml:"moveSpeed"`   // 后期最大移动速度，前期从 1 线性爬升
	Radius      float64 `yaml:"radius"`      // 身体半径
	HeadRadius  float64 `yaml:"headRadius"`
	BeakRadius  float64 `yaml:"beakRadius"`
}

// CameraConfig 固定机位的针孔相机
// 相机沿 -Z 方向观察，竞技场中心在相机前方
type CameraConfig struct {
	Position     utils.Vec3 `yaml:"position"`
	FocalLength  float64    `yaml:"focalLength"` // 像素
	ScreenWidth  int        `yaml:"screenWidth"`
	ScreenHeight int        `yaml:"screenHeight"`
}

// DefaultGameplayConfig 返回内置默认值（与 data/gameplay.yaml 一致）
func DefaultGameplayConfig() *GameplayConfig {
	return &GameplayConfig{
		Run: RunConfig{Duration: 60, MaxLives: 3},
		Scoring: ScoringConfig{
			BasePoints:      100,
			ZoneMultipliers: ZoneMultiplier{Body: 1, Head: 2, Beak: 3},
			ChainMultiplier: 0.5,
		},
		Levels: LevelConfig{BaseThreshold: 1000, ThresholdFactor: 1.5, OfferCount: 3},
		Freeze: FreezeConfig{Duration: 10},
		Targets: TargetConfig{
			Lifetime:    5,
			WarningTime: 1.5,
			MoveSpeed:   3,
			Radius:      0.5,
			HeadRadius:  0.25,
			BeakRadius:  0.12,
		},
		Camera: CameraConfig{
			Position:     utils.Vec3{X: 0, Y: 2, Z: 24},
			FocalLength:  640,
			ScreenWidth:  1280,
			ScreenHeight: 720,
		},
	}
}

// LoadGameplayConfig 从 YAML 文件加载玩法配置
func LoadGameplayConfig(filePath string) (*GameplayConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read gameplay config file: %w", err)
	}
	return ParseGameplayConfig(data)
}

// ParseGameplayConfig 解析玩法配置
// 未出现在 YAML 中的字段保留默认值
func ParseGameplayConfig(data []byte) (*GameplayConfig, error) {
	cfg := DefaultGameplayConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gameplay config YAML: %w", err)
	}

	if err := validateGameplayConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid gameplay config: %w", err)
	}

	return cfg, nil
}

// validateGameplayConfig 验证配置的有效性
func validateGameplayConfig(cfg *GameplayConfig) error {
	if cfg.Run.Duration <= 0 {
		return fmt.Errorf("run.duration must be > 0, got %v", cfg.Run.Duration)
	}
	if cfg.Run.MaxLives < 1 {
		return fmt.Errorf("run.maxLives must be >= 1, got %d", cfg.Run.MaxLives)
	}
	if cfg.Scoring.BasePoints <= 0 {
		return fmt.Errorf("scoring.basePoints must be > 0, got %d", cfg.Scoring.BasePoints)
	}
	zm := cfg.Scoring.ZoneMultipliers
	if zm.Body <= 0 || zm.Head <= 0 || zm.Beak <= 0 {
		return fmt.Errorf("scoring.zoneMultipliers must all be > 0, got %+v", zm)
	}
	if cfg.Scoring.ChainMultiplier < 0 {
		return fmt.Errorf("scoring.chainMultiplier cannot be negative, got %v", cfg.Scoring.ChainMultiplier)
	}
	if cfg.Levels.BaseThreshold < 1 {
		return fmt.Errorf("levels.baseThreshold must be >= 1, got %d", cfg.Levels.BaseThreshold)
	}
	if cfg.Levels.ThresholdFactor <= 1 {
		return fmt.Errorf("levels.thresholdFactor must be > 1, got %v", cfg.Levels.ThresholdFactor)
	}
	if cfg.Levels.OfferCount < 1 {
		return fmt.Errorf("levels.offerCount must be >= 1, got %d", cfg.Levels.OfferCount)
	}
	if cfg.Freeze.Duration < 0 {
		return fmt.Errorf("freeze.duration cannot be negative, got %v", cfg.Freeze.Duration)
	}
	if cfg.Targets.Lifetime <= 0 {
		return fmt.Errorf("targets.lifetime must be > 0, got %v", cfg.Targets.Lifetime)
	}
	if cfg.Targets.Radius <= 0 {
		return fmt.Errorf("targets.radius must be > 0, got %v", cfg.Targets.Radius)
	}
	if cfg.Targets.MoveSpeed < 0 {
		return fmt.Errorf("targets.moveSpeed cannot be negative, got %v", cfg.Targets.MoveSpeed)
	}
	if cfg.Camera.FocalLength <= 0 {
		return fmt.Errorf("camera.focalLength must be > 0, got %v", cfg.Camera.FocalLength)
	}
	if cfg.Camera.ScreenWidth <= 0 || cfg.Camera.ScreenHeight <= 0 {
		return fmt.Errorf("camera screen size must be positive, got %dx%d", cfg.Camera.ScreenWidth, cfg.Camera.ScreenHeight)
	}
	return nil
}
