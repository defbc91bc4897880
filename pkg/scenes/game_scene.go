package scenes

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/duckhunt/pkg/components"
	"github.com/decker502/duckhunt/pkg/config"
	"github.com/decker502/duckhunt/pkg/ecs"
	"github.com/decker502/duckhunt/pkg/fx"
	"github.com/decker502/duckhunt/pkg/game"
	"github.com/decker502/duckhunt/pkg/powerups"
	"github.com/decker502/duckhunt/pkg/systems"
	"github.com/decker502/duckhunt/pkg/utils"
)

// 道具选择的误用
var (
	// ErrNoOffer 当前不在道具选择阶段，或没有候选
	ErrNoOffer = errors.New("no power-up offer pending")
	// ErrInvalidChoice 候选下标越界
	ErrInvalidChoice = errors.New("invalid power-up choice")
)

var (
	_ game.Scene     = (*GameScene)(nil)
	_ game.Saveable  = (*GameScene)(nil)
	_ powerups.World = (*GameScene)(nil)
)

// Options 游戏场景的构建参数
type Options struct {
	Gameplay *config.GameplayConfig // 为 nil 时使用默认配置
	Spawn    *config.SpawnConfig    // 为 nil 时使用默认配置
	PowerUps *powerups.Library      // 道具模板库
	Saves    *game.SaveManager      // 战绩存档，可为 nil
	Seed     int64                  // 随机种子，0 表示使用当前时间
}

// GameScene 一局游戏的组合根
//
// 每个子系统各创建一份，不使用全局单例。GameScene 同时实现 powerups.World，
// 是道具效果触碰游戏世界的唯一入口。
//
// 每帧顺序：
//  1. 真实时间（冻结计时、表现层序列、相机震动）
//  2. 阶段门：只有 Play 阶段继续
//  3. 本局计时（可能以胜利结束）
//  4. 道具计时
//  5. 未冻结时：移动 → 存活 → 生成
//  6. 清理被标记删除的实体
type GameScene struct {
	cfg *config.GameplayConfig

	entityManager *ecs.EntityManager
	rng           *utils.Random

	run      *game.RunState
	saves    *game.SaveManager
	director *fx.Director
	camera   *systems.Camera

	spatial  *systems.SpatialQuery
	targets  *systems.TargetSystem
	spawn    *systems.SpawnSystem
	movement *systems.MovementSystem
	lifetime *systems.LifetimeSystem
	shooting *systems.ShootingSystem
	powerUps *powerups.Manager

	offer   []powerups.Definition
	newBest bool // 上一局是否刷新了最高分
}

// NewGameScene 创建游戏场景，初始处于开始界面
func NewGameScene(opts Options) *GameScene {
	cfg := opts.Gameplay
	if cfg == nil {
		cfg = config.DefaultGameplayConfig()
	}
	spawnCfg := opts.Spawn
	if spawnCfg == nil {
		spawnCfg = config.DefaultSpawnConfig()
	}
	library := opts.PowerUps
	if library == nil {
		log.Printf("[GameScene] Warning: No power-up library, level-ups will offer nothing")
	}

	s := &GameScene{
		cfg:           cfg,
		entityManager: ecs.NewEntityManager(),
		rng:           utils.NewRandom(opts.Seed),
		saves:         opts.Saves,
	}

	s.run = game.NewRunState(cfg)
	// 表现层使用独立随机流，震屏不会改变同种子下的生成和道具结果
	s.director = fx.NewDirector(utils.NewRandom(fxSeed(opts.Seed)))
	s.camera = systems.NewCamera(cfg.Camera)

	s.spatial = systems.NewSpatialQuery(s.entityManager)
	s.spawn = systems.NewSpawnSystem(s.entityManager, spawnCfg, cfg.Targets, cfg.Scoring.BasePoints, s.rng)
	s.targets = systems.NewTargetSystem(s.entityManager, s.run, s.spawn)
	s.movement = systems.NewMovementSystem(s.entityManager, spawnCfg.Arena)
	s.lifetime = systems.NewLifetimeSystem(s.entityManager, s.targets)
	s.shooting = systems.NewShootingSystem(
		systems.NewProjectionHitTester(s.entityManager, s.camera),
		s.run, s.targets, cfg.Scoring.ZoneMultipliers,
	)

	s.powerUps = powerups.NewManager(library, s, s.rng, powerups.Tuning{
		ChainMultiplier: cfg.Scoring.ChainMultiplier,
		FreezeDuration:  cfg.Freeze.Duration,
	})

	// 击杀、生成和射击结果分发给道具效果
	s.targets.SetDeathNotifier(s.powerUps)
	s.spawn.SetSpawnNotifier(s.powerUps)
	s.shooting.SetShotEffects(s.powerUps)
	s.targets.SetFeedback(s.director)
	s.shooting.SetFeedback(s.director)

	s.run.SetLevelUpHandler(s.onLevelUp)
	s.run.SetPhaseListener(s.onPhaseChange)
	s.run.SetEndHandler(s.onRunEnd)

	if s.saves != nil {
		s.run.SetHighScore(s.saves.Record().BestScore)
	}

	log.Printf("[GameScene] Created (seed %d, %d power-up templates)", opts.Seed, s.powerUps.Library().Len())
	return s
}

// fxSeed 表现层随机流的种子，0 仍表示使用当前时间
func fxSeed(seed int64) int64 {
	if seed == 0 {
		return 0
	}
	return seed + 1
}

// Update 推进一帧
func (s *GameScene) Update(deltaTime float64) {
	s.run.UpdateRealtime(deltaTime)
	s.director.Update(deltaTime)
	s.camera.ShakeOffset = s.director.ShakeOffset()

	// 候选池耗尽时不停留在选择界面
	if s.run.Phase() == game.PhasePowerUpSelection && len(s.offer) == 0 {
		s.SkipPowerUp()
	}

	if s.run.Phase() != game.PhasePlay {
		return
	}

	s.run.Update(deltaTime)
	if s.run.Phase() != game.PhasePlay {
		s.entityManager.RemoveMarkedEntities()
		return
	}

	s.powerUps.Tick(deltaTime)

	if !s.run.Frozen() {
		s.movement.Update(deltaTime)
		s.lifetime.Update(deltaTime)
		// 到期扣命可能已经结束本局
		if s.run.Phase() == game.PhasePlay {
			s.spawn.Update(deltaTime, s.run.Progress())
		}
	}

	s.entityManager.RemoveMarkedEntities()
}

// Shoot 在屏幕坐标开枪（仅 Play 阶段有效）
func (s *GameScene) Shoot(x, y float64) systems.HitResult {
	return s.shooting.Shoot(x, y)
}

// Start 从开始界面或结束界面开始新的一局
func (s *GameScene) Start() bool {
	if !s.run.Start() {
		return false
	}
	s.resetWorld()
	s.spawn.InitialSpawn(s.run.Progress())
	return true
}

// TogglePause 在 Play 和 Pause 之间切换
func (s *GameScene) TogglePause() bool {
	return s.run.TogglePause()
}

// ReturnToStartScreen 结束界面回到开始界面
func (s *GameScene) ReturnToStartScreen() bool {
	if !s.run.ReturnToStartScreen() {
		return false
	}
	s.resetWorld()
	return true
}

// Offer 当前展示的道具候选
func (s *GameScene) Offer() []powerups.Definition {
	out := make([]powerups.Definition, len(s.offer))
	copy(out, s.offer)
	return out
}

// ChoosePowerUp 选择第 index 个候选
//
// 返回：
//   - powerups.Acquired: 获得后的道具
//   - error: 不在选择阶段时返回 ErrNoOffer，下标越界时返回 ErrInvalidChoice
func (s *GameScene) ChoosePowerUp(index int) (powerups.Acquired, error) {
	if s.run.Phase() != game.PhasePowerUpSelection || len(s.offer) == 0 {
		return powerups.Acquired{}, ErrNoOffer
	}
	if index < 0 || index >= len(s.offer) {
		return powerups.Acquired{}, fmt.Errorf("%w: %d of %d", ErrInvalidChoice, index, len(s.offer))
	}

	chosen := s.offer[index]
	s.offer = nil

	acquired := s.powerUps.Acquire(chosen)
	s.director.PlaySound(fx.SoundPowerUp)

	// 还有排队的升级时会再次触发 onLevelUp 生成新的候选
	s.run.CompleteSelection()
	return acquired, nil
}

// SkipPowerUp 放弃本次选择
func (s *GameScene) SkipPowerUp() error {
	if s.run.Phase() != game.PhasePowerUpSelection {
		return ErrNoOffer
	}
	log.Printf("[GameScene] Power-up selection skipped (%d offers)", len(s.offer))
	s.offer = nil
	s.run.CompleteSelection()
	return nil
}

// SoftRestart 重开一局，保留最高分
func (s *GameScene) SoftRestart() {
	s.run.SoftRestart()
	s.resetWorld()
	s.spawn.InitialSpawn(s.run.Progress())
}

// HardRestart 重开一局，并清除最高分（包括存档中的）
func (s *GameScene) HardRestart() {
	s.run.HardRestart()
	if s.saves != nil {
		if err := s.saves.ClearBestScore(); err != nil {
			log.Printf("[GameScene] Warning: Failed to clear stored best score: %v", err)
		}
	}
	s.resetWorld()
	s.spawn.InitialSpawn(s.run.Progress())
}

// resetWorld 清空目标、道具、表现层序列和统计
func (s *GameScene) resetWorld() {
	s.entityManager.Clear()
	s.spawn.Reset()
	s.powerUps.Reset()
	s.director.StopAll()
	s.camera.ShakeOffset = utils.Vec3{}
	s.targets.ResetStats()
	s.shooting.ResetStats()
	s.offer = nil
	s.newBest = false
}

// SaveOnExit 窗口关闭时保存战绩
func (s *GameScene) SaveOnExit() bool {
	if s.saves == nil {
		return true
	}
	if err := s.saves.Save(); err != nil {
		log.Printf("[GameScene] Warning: Failed to save on exit: %v", err)
		return false
	}
	return true
}

func (s *GameScene) onLevelUp(level int) {
	s.offer = s.powerUps.OfferRandomChoices(s.cfg.Levels.OfferCount)
	s.director.PlaySound(fx.SoundLevelUp)
	log.Printf("[GameScene] Level %d reached, offering %d power-ups", level, len(s.offer))
}

func (s *GameScene) onPhaseChange(from, to game.Phase) {
	log.Printf("[GameScene] Phase %s -> %s", from, to)
	// 只有 Play 阶段捕获并隐藏指针
	s.director.SetCursor(to != game.PhasePlay, to == game.PhasePlay)
}

func (s *GameScene) onRunEnd(outcome game.Outcome) {
	s.offer = nil
	if outcome == game.OutcomeFailure {
		s.director.PlaySound(fx.SoundGameOver)
	}
	if s.saves == nil {
		return
	}

	newBest, err := s.saves.RecordRun(game.RunResult{
		Score:    s.run.Score(),
		Level:    s.run.Level(),
		MaxCombo: s.run.MaxCombo(),
		Outcome:  outcome,
	})
	if err != nil {
		log.Printf("[GameScene] Warning: Failed to record run: %v", err)
	}
	s.newBest = newBest
}

// TargetsInRadius 实现 powerups.World
func (s *GameScene) TargetsInRadius(center utils.Vec3, radius float64) []ecs.EntityID {
	return s.spatial.TargetsInRadius(center, radius)
}

// HitTarget 实现 powerups.World：以给定倍率击杀目标
func (s *GameScene) HitTarget(id ecs.EntityID, multiplier float64) bool {
	return s.targets.Kill(id, multiplier)
}

// AddLife 实现 powerups.World
func (s *GameScene) AddLife(n int) {
	s.run.AddLife(n)
}

// Freeze 实现 powerups.World：冻结目标运动、存活计时和生成
func (s *GameScene) Freeze(seconds float64) {
	s.run.Freeze(seconds)
	log.Printf("[GameScene] Frozen for %.1fs", seconds)
}

// Feedback 实现 powerups.World
func (s *GameScene) Feedback() fx.Feedback {
	return s.director
}

// Camera 投影相机（渲染和瞄准使用）
func (s *GameScene) Camera() *systems.Camera {
	return s.camera
}

// Director 表现层序列（闪屏、色调、爆炸波纹）
func (s *GameScene) Director() *fx.Director {
	return s.director
}

// Phase 当前阶段
func (s *GameScene) Phase() game.Phase {
	return s.run.Phase()
}

// TargetView 渲染和瞄准需要的目标信息
type TargetView struct {
	ID          ecs.EntityID
	Position    utils.Vec3
	Radius      float64
	HeadOffsetY float64
	HeadRadius  float64
	BeakOffsetX float64
	BeakOffsetY float64
	BeakRadius  float64
	Warning     float64 // 到期警告进度 0~1
	Slowed      bool
	Trail       bool
}

// Snapshot HUD 视图模型
type Snapshot struct {
	Phase   game.Phase
	Outcome game.Outcome

	Score     int
	HighScore int
	NewBest   bool
	Combo     int
	MaxCombo  int
	Lives     int
	MaxLives  int
	Level     int

	LevelProgress float64
	TimeLeft      float64
	Frozen        bool
	FreezeLeft    float64

	PowerUps []powerups.Acquired
	Offer    []powerups.Definition
	Targets  []TargetView
	Stats    systems.ShotStats
}

// Snapshot 返回当前帧的视图模型
func (s *GameScene) Snapshot() Snapshot {
	return Snapshot{
		Phase:         s.run.Phase(),
		Outcome:       s.run.Outcome(),
		Score:         s.run.Score(),
		HighScore:     s.run.HighScore(),
		NewBest:       s.newBest,
		Combo:         s.run.Combo(),
		MaxCombo:      s.run.MaxCombo(),
		Lives:         s.run.Lives(),
		MaxLives:      s.run.MaxLives(),
		Level:         s.run.Level(),
		LevelProgress: s.run.LevelProgress(),
		TimeLeft:      s.run.TimeLeft(),
		Frozen:        s.run.Frozen(),
		FreezeLeft:    s.run.FreezeLeft(),
		PowerUps:      s.powerUps.Acquired(),
		Offer:         s.Offer(),
		Targets:       s.targetViews(),
		Stats:         s.shooting.Stats(),
	}
}

func (s *GameScene) targetViews() []TargetView {
	ids := s.spatial.LiveTargets()
	views := make([]TargetView, 0, len(ids))
	for _, id := range ids {
		target, _ := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		view := TargetView{
			ID:          id,
			Position:    transform.Position,
			Radius:      target.Radius,
			HeadOffsetY: target.HeadOffsetY,
			HeadRadius:  target.HeadRadius,
			BeakOffsetX: target.BeakOffsetX,
			BeakOffsetY: target.BeakOffsetY,
			BeakRadius:  target.BeakRadius,
			Slowed:      target.Slowed,
			Trail:       target.Trail,
		}
		if lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id); ok {
			view.Warning = lifetime.WarningProgress()
		}
		views = append(views, view)
	}
	return views
}
