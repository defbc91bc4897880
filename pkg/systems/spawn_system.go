package systems

import (
	"log"
	"math"

	"github.com/decker502/duckhunt/pkg/components"
	"github.com/decker502/duckhunt/pkg/config"
	"github.com/decker502/duckhunt/pkg/ecs"
	"github.com/decker502/duckhunt/pkg/utils"
)

// SpawnNotifier 在新目标生效之前修改它（道具生成效果）
type SpawnNotifier interface {
	OnTargetSpawned(target *components.TargetComponent)
}

// 命中区相对身体的几何比例
const (
	headOffsetRatio = 0.8 // 头部中心高出身体中心 Radius×0.8
	beakOffsetRatio = 0.5 // 鸭嘴中心在头部前方 BeakRadius×0.5 处
)

// SpawnSystem 自适应生成：闭环控制存活目标数量
//
// 根据局内进度 p 得到最少/最多存活数量（SmoothStep 插值后四舍五入）：
//   - 存活数低于最少值时进入紧急模式，间隔从紧急区间随机抽取，正在等待的长间隔会被截断
//   - 否则间隔为基础间隔乘以占比系数：不到 40% 加速，40%~70% 不变，超过 70% 减速
//   - 只有存活数低于最多值时才真正生成
type SpawnSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.SpawnConfig
	targetCfg     config.TargetConfig
	basePoints    int
	rng           *utils.Random
	notifier      SpawnNotifier

	active  int     // 存活目标数
	timer   float64 // 距离下一次生成决策的时间
	spawned int     // 本局累计生成数
}

// NewSpawnSystem 创建生成系统
//
// 参数：
//   - em: 实体管理器
//   - cfg: 生成配置（竞技场、数量和间隔曲线）
//   - targetCfg: 目标参数（存活时间、速度、命中区半径）
//   - basePoints: 单只目标的基础分
//   - rng: 随机源
func NewSpawnSystem(em *ecs.EntityManager, cfg *config.SpawnConfig, targetCfg config.TargetConfig, basePoints int, rng *utils.Random) *SpawnSystem {
	if cfg == nil {
		cfg = config.DefaultSpawnConfig()
	}
	if rng == nil {
		rng = utils.NewRandom(0)
	}
	return &SpawnSystem{
		entityManager: em,
		cfg:           cfg,
		targetCfg:     targetCfg,
		basePoints:    basePoints,
		rng:           rng,
	}
}

// SetSpawnNotifier 设置生成效果接收方（可为 nil）
func (s *SpawnSystem) SetSpawnNotifier(n SpawnNotifier) {
	s.notifier = n
}

// ActiveCount 当前存活目标数
func (s *SpawnSystem) ActiveCount() int {
	return s.active
}

// Spawned 本局累计生成数
func (s *SpawnSystem) Spawned() int {
	return s.spawned
}

// Timer 距离下一次生成决策的剩余时间
func (s *SpawnSystem) Timer() float64 {
	return s.timer
}

// Arena 竞技场范围
func (s *SpawnSystem) Arena() utils.Box {
	return s.cfg.Arena
}

// TargetRemoved 目标移除时调用（TargetSystem 保证每个目标只调用一次）
func (s *SpawnSystem) TargetRemoved() {
	if s.active > 0 {
		s.active--
	}
}

// MinTargets 进度 p 时期望的最少存活数
func (s *SpawnSystem) MinTargets(p float64) int {
	return int(math.Round(s.cfg.MinTargets.At(p)))
}

// MaxTargets 进度 p 时允许的最多存活数
func (s *SpawnSystem) MaxTargets(p float64) int {
	return int(math.Round(s.cfg.MaxTargets.At(p)))
}

// Emergency 当前是否处于紧急模式
func (s *SpawnSystem) Emergency(p float64) bool {
	return s.active < s.MinTargets(p)
}

// NextInterval 按当前存活数和进度计算下一次生成间隔
func (s *SpawnSystem) NextInterval(p float64) float64 {
	if s.Emergency(p) {
		return s.rng.Range(s.cfg.EmergencyInterval.Min, s.cfg.EmergencyInterval.Max)
	}

	base := s.cfg.BaseInterval.At(p)
	maxTargets := s.MaxTargets(p)
	if maxTargets <= 0 {
		return base * s.cfg.SlowMultiplier
	}

	fill := float64(s.active) / float64(maxTargets)
	switch {
	case fill < s.cfg.FastFillRatio:
		return base * s.cfg.FastFactor
	case fill >= s.cfg.SlowFillRatio:
		return base * s.cfg.SlowMultiplier
	default:
		return base
	}
}

// Update 推进生成计时（冻结时由调用方跳过）
//
// 参数：
//   - deltaTime: 帧间隔
//   - p: 局内进度 0~1
func (s *SpawnSystem) Update(deltaTime, p float64) {
	s.timer -= deltaTime

	if s.Emergency(p) && s.timer > s.cfg.EmergencyInterval.Max {
		s.timer = s.rng.Range(s.cfg.EmergencyInterval.Min, s.cfg.EmergencyInterval.Max)
	}
	if s.timer > 0 {
		return
	}

	if s.active < s.MaxTargets(p) {
		s.Spawn(p)
	}
	s.timer = s.NextInterval(p)
}

// Spawn 在竞技场内生成一个目标
//
// 位置在 X/Y 上均匀分布，Z 只取中心到面向相机一侧的半个竞技场。
// 生成效果在目标加入实体管理器之前应用。
func (s *SpawnSystem) Spawn(p float64) ecs.EntityID {
	c, e := s.cfg.Arena.Center, s.cfg.Arena.Extents
	pos := utils.Vec3{
		X: c.X + s.rng.Range(-e.X, e.X),
		Y: c.Y + s.rng.Range(-e.Y, e.Y),
		Z: c.Z + s.rng.Range(0, e.Z),
	}

	// 水平方向为主，少量上下和纵深移动
	dir := utils.Vec3{
		X: s.rng.Range(-1, 1),
		Y: s.rng.Range(-0.5, 0.5),
		Z: s.rng.Range(-0.2, 0.2),
	}.Normalize()
	speed := utils.Lerp(1, s.targetCfg.MoveSpeed, utils.Clamp01(p))

	tc := s.targetCfg
	target := &components.TargetComponent{
		Radius:      tc.Radius,
		BasePoints:  s.basePoints,
		HeadOffsetY: tc.Radius * headOffsetRatio,
		HeadRadius:  tc.HeadRadius,
		BeakOffsetX: tc.HeadRadius + tc.BeakRadius*beakOffsetRatio,
		BeakOffsetY: tc.Radius * headOffsetRatio,
		BeakRadius:  tc.BeakRadius,
		SpeedFactor: 1,
	}
	if s.notifier != nil {
		s.notifier.OnTargetSpawned(target)
	}

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, target)
	ecs.AddComponent(s.entityManager, id, &components.TransformComponent{
		Position: pos,
		Velocity: dir.Scale(speed),
	})
	ecs.AddComponent(s.entityManager, id, &components.LifetimeComponent{
		MaxLifetime: tc.Lifetime,
		WarningTime: tc.WarningTime,
	})

	s.active++
	s.spawned++
	return id
}

// Reset 清零计数（调用方负责清空实体）
func (s *SpawnSystem) Reset() {
	s.active = 0
	s.timer = 0
	s.spawned = 0
}

// InitialSpawn 生成开局的最少数量目标，并抽取第一次生成间隔
func (s *SpawnSystem) InitialSpawn(p float64) int {
	count := s.MinTargets(p)
	for i := 0; i < count; i++ {
		s.Spawn(p)
	}
	s.timer = s.NextInterval(p)
	log.Printf("[SpawnSystem] Initial spawn: %d targets (max %d)", count, s.MaxTargets(p))
	return count
}
