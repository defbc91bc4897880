// Package embedded 提供嵌入数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的数据文件。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/decker502/duckhunt/pkg/config"
	"github.com/decker502/duckhunt/pkg/powerups"
)

// 数据文件路径
const (
	GameplayPath = "data/gameplay.yaml"
	SpawnPath    = "data/spawn.yaml"
	PowerUpsPath = "data/powerups.yaml"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径并检查前缀
// 路径必须以 "data/" 开头
func normalize(path string) (string, error) {
	if !initialized {
		return "", fmt.Errorf("embedded package not initialized, call Init() first")
	}

	// 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠）
	path = filepath.ToSlash(path)

	// 移除可能的 "./" 前缀
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// ReadFile 读取数据文件内容
func ReadFile(path string) ([]byte, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查数据文件是否存在
func Exists(path string) bool {
	path, err := normalize(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, path)
	return err == nil
}

// Glob 匹配数据文件
func Glob(pattern string) ([]string, error) {
	pattern, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, pattern)
}

// Bundle 一局游戏需要的全部配置
type Bundle struct {
	Gameplay *config.GameplayConfig
	Spawn    *config.SpawnConfig
	PowerUps *powerups.Library
}

// LoadBundle 从嵌入数据加载玩法、生成和道具配置
//
// 返回：
//   - *Bundle: 解析并校验后的配置
//   - error: 任一文件缺失或无效时返回错误
func LoadBundle() (*Bundle, error) {
	gameplayData, err := ReadFile(GameplayPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", GameplayPath, err)
	}
	gameplay, err := config.ParseGameplayConfig(gameplayData)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", GameplayPath, err)
	}

	spawnData, err := ReadFile(SpawnPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", SpawnPath, err)
	}
	spawn, err := config.ParseSpawnConfig(spawnData)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", SpawnPath, err)
	}

	powerUpsData, err := ReadFile(PowerUpsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", PowerUpsPath, err)
	}
	powerUpsCfg, err := config.ParsePowerUpsConfig(powerUpsData)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", PowerUpsPath, err)
	}
	library, err := powerups.NewLibrary(powerUpsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build power-up library: %w", err)
	}

	return &Bundle{Gameplay: gameplay, Spawn: spawn, PowerUps: library}, nil
}
