package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// RunRecord 跨会话保存的战绩
type RunRecord struct {
	BestScore   int    `yaml:"bestScore"`   // 历史最高分（硬重开时清零）
	BestLevel   int    `yaml:"bestLevel"`   // 历史最高等级
	BestCombo   int    `yaml:"bestCombo"`   // 历史最高连击
	RunsPlayed  int    `yaml:"runsPlayed"`  // 已完成的局数
	LastScore   int    `yaml:"lastScore"`   // 上一局分数
	LastOutcome string `yaml:"lastOutcome"` // 上一局结果 success/failure
}

// RunResult 一局结束时的汇总
type RunResult struct {
	Score    int
	Level    int
	MaxCombo int
	Outcome  Outcome
}

// SaveManager 战绩存档
//
// 使用 gdata 跨平台存储，数据以 YAML 序列化（与配置文件格式一致）。
// gdataManager 为 nil 时进入降级模式：战绩只保存在内存中。
type SaveManager struct {
	gdataManager *gdata.Manager
	record       *RunRecord
}

// 存储路径常量
const (
	recordObject   = "records"
	recordProperty = "best"
)

// OpenStorage 打开 gdata 存储
//
// 参数：
//   - appName: 应用名（决定存储目录）
//
// 返回：
//   - *gdata.Manager: 存储管理器；打开失败时返回 nil（调用方进入降级模式）
func OpenStorage(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SaveManager] Warning: Failed to open storage %q: %v (records will not persist)", appName, err)
		return nil
	}
	return manager
}

// NewSaveManager 创建战绩存档管理器并尝试加载已有战绩
//
// 参数：
//   - gdataManager: gdata 存储，可为 nil（降级模式）
func NewSaveManager(gdataManager *gdata.Manager) *SaveManager {
	sm := &SaveManager{
		gdataManager: gdataManager,
		record:       &RunRecord{},
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SaveManager] Warning: Failed to load records: %v (starting fresh)", err)
	}
	return sm
}

// Load 从存储加载战绩
func (sm *SaveManager) Load() error {
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(recordObject, recordProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(recordObject, recordProperty)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	var loaded RunRecord
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal records: %w", err)
	}

	sm.record = &loaded
	log.Printf("[SaveManager] Records loaded: best score %d, %d runs", loaded.BestScore, loaded.RunsPlayed)
	return nil
}

// Save 把战绩写入存储；降级模式下直接返回 nil
func (sm *SaveManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.record)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(recordObject, recordProperty, data); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// RecordRun 记录一局的结果并保存
//
// 返回：
//   - bool: 是否刷新了最高分
//   - error: 保存失败时返回错误（内存中的战绩已更新）
func (sm *SaveManager) RecordRun(result RunResult) (bool, error) {
	r := sm.record
	r.RunsPlayed++
	r.LastScore = result.Score
	r.LastOutcome = result.Outcome.String()

	newBest := result.Score > r.BestScore
	if newBest {
		r.BestScore = result.Score
	}
	if result.Level > r.BestLevel {
		r.BestLevel = result.Level
	}
	if result.MaxCombo > r.BestCombo {
		r.BestCombo = result.MaxCombo
	}

	log.Printf("[SaveManager] Run #%d recorded: score %d (%s)", r.RunsPlayed, result.Score, r.LastOutcome)
	return newBest, sm.Save()
}

// ClearBestScore 清除历史最高分（硬重开时调用）
func (sm *SaveManager) ClearBestScore() error {
	sm.record.BestScore = 0
	return sm.Save()
}

// Record 返回当前战绩副本
func (sm *SaveManager) Record() RunRecord {
	return *sm.record
}
