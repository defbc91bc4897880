package powerups

import (
	"log"

	"github.com/decker502/duckhunt/pkg/components"
	"github.com/decker502/duckhunt/pkg/ecs"
	"github.com/decker502/duckhunt/pkg/utils"
)

// Acquired 本局已获得的道具（运行时副本）
type Acquired struct {
	Definition Definition
	Stacks     int // 一次性种类被重复收集的次数
}

// entry 已获得道具及其效果实例
type entry struct {
	Acquired
	effect interface{}
}

// Manager 道具效果引擎
//
// 每种效果至多一个实例：升级时整体替换（旧实例的上膛、剩余宽恕次数、窗口等瞬态状态
// 随之丢弃），一次性种类重复收集时只增加 Stacks 并再次生效。
// 分发列表按获得顺序排列，每次 Acquire 后重建。
// 非并发安全：只在单一更新线程中使用。
type Manager struct {
	library *Library
	world   World
	rng     *utils.Random
	tuning  Tuning

	entries []*entry

	comboEffects []ComboEffect
	missEffects  []MissForgivenessEffect
	deathEffects []DeathEffect
	spawnEffects []SpawnEffect
	timedEffects []TimedEffect
}

// NewManager 创建道具管理器
//
// 参数：
//   - library: 道具模板库（决定候选池）
//   - world: 效果可以触碰的游戏世界；为 nil 时效果只记录日志
//   - rng: 随机源（候选抽取和概率效果共用）；为 nil 时使用时间种子
//   - tuning: 连锁倍率和冻结时长
func NewManager(library *Library, world World, rng *utils.Random, tuning Tuning) *Manager {
	if world == nil {
		log.Printf("[PowerUpManager] No world provided, effects will be skipped")
		world = missingWorld{}
	}
	if rng == nil {
		rng = utils.NewRandom(0)
	}
	if library == nil {
		library = &Library{}
	}
	return &Manager{
		library: library,
		world:   world,
		rng:     rng,
		tuning:  tuning,
	}
}

// Library 模板库
func (m *Manager) Library() *Library {
	return m.library
}

// Acquire 获得（或升级、再次收集）一个道具
//
// 返回获得后的运行时副本。
func (m *Manager) Acquire(def Definition) Acquired {
	def = def.WithLevel(def.Level)

	existing := m.find(def.Kind)
	switch {
	case existing != nil && def.Kind.IsOneShot():
		existing.Stacks++
		existing.effect = newEffect(def.Kind, existing.Definition.Level, m.world, m.rng, m.tuning)
		log.Printf("[PowerUpManager] Re-collected %s (x%d)", existing.Definition.Name, existing.Stacks)

	case existing != nil && existing.Definition.Upgradeable:
		upgraded := existing.Definition.WithLevel(existing.Definition.Level + 1)
		existing.Definition = upgraded
		existing.effect = newEffect(upgraded.Kind, upgraded.Level, m.world, m.rng, m.tuning)
		log.Printf("[PowerUpManager] Upgraded %s to level %d", upgraded.Name, upgraded.Level)

	case existing != nil:
		log.Printf("[PowerUpManager] %s already owned and not upgradeable, ignored", existing.Definition.Name)
		return existing.Acquired

	default:
		existing = &entry{
			Acquired: Acquired{Definition: def, Stacks: 1},
			effect:   newEffect(def.Kind, def.Level, m.world, m.rng, m.tuning),
		}
		m.entries = append(m.entries, existing)
		log.Printf("[PowerUpManager] Acquired %s (level %d)", def.Name, def.Level)
	}

	m.rebuildDispatch()

	if eff, ok := existing.effect.(AcquisitionEffect); ok {
		eff.Apply()
	}
	return existing.Acquired
}

// OfferRandomChoices 抽取最多 n 个种类互不相同的候选
//
// 候选池：已拥有且可升级的种类以 等级+1 的副本放入两次，未拥有的种类放入一次，
// 一次性种类总是放入一次，已满级的种类不放入。从池中无放回均匀抽取，
// 每抽中一个就移除池中该种类的全部条目。池耗尽时返回的结果可能少于 n（甚至为空）。
func (m *Manager) OfferRandomChoices(n int) []Definition {
	if n <= 0 {
		return nil
	}

	pool := make([]Definition, 0, m.library.Len()*2)
	for _, tmpl := range m.library.defs {
		owned := m.find(tmpl.Kind)
		switch {
		case tmpl.Kind.IsOneShot():
			pool = append(pool, tmpl)
		case owned == nil:
			pool = append(pool, tmpl)
		case owned.Definition.CanUpgrade():
			candidate := owned.Definition.WithLevel(owned.Definition.Level + 1)
			pool = append(pool, candidate, candidate)
		}
	}

	offers := make([]Definition, 0, n)
	for len(offers) < n && len(pool) > 0 {
		picked := pool[m.rng.Intn(len(pool))]
		offers = append(offers, picked)

		remaining := pool[:0]
		for _, def := range pool {
			if def.Kind != picked.Kind {
				remaining = append(remaining, def)
			}
		}
		pool = remaining
	}

	if len(offers) < n {
		log.Printf("[PowerUpManager] Candidate pool exhausted: %d of %d offers", len(offers), n)
	}
	return offers
}

// OnComboChanged 每次成功命中后分发给连击效果
func (m *Manager) OnComboChanged(pos utils.Vec3, combo int) {
	for _, eff := range m.comboEffects {
		eff.OnComboChanged(pos, combo)
	}
}

// OnMiss 脱靶时按获得顺序询问宽恕效果，第一个宽恕的效果终止分发
//
// 返回 true 表示本次脱靶被宽恕，调用方不应重置连击。
func (m *Manager) OnMiss() bool {
	for _, eff := range m.missEffects {
		if eff.OnMiss() {
			return true
		}
	}
	return false
}

// OnTargetKilled 目标计分之后、销毁之前调用
func (m *Manager) OnTargetKilled(id ecs.EntityID, pos utils.Vec3) {
	for _, eff := range m.deathEffects {
		eff.OnTargetKilled(id, pos)
	}
}

// OnTargetSpawned 目标创建后、生效之前调用
func (m *Manager) OnTargetSpawned(target *components.TargetComponent) {
	for _, eff := range m.spawnEffects {
		eff.OnTargetSpawned(target)
	}
}

// Tick 推进带计时器的效果
func (m *Manager) Tick(dt float64) {
	for _, eff := range m.timedEffects {
		eff.Update(dt)
	}
}

// Reset 丢弃本局获得的全部道具（重开一局时调用）
func (m *Manager) Reset() {
	m.entries = nil
	m.rebuildDispatch()
	log.Printf("[PowerUpManager] Reset")
}

// Owned 查询是否已拥有某种效果，返回其运行时副本
func (m *Manager) Owned(kind Kind) (Acquired, bool) {
	if e := m.find(kind); e != nil {
		return e.Acquired, true
	}
	return Acquired{}, false
}

// Acquired 按获得顺序返回已获得道具的快照（HUD 使用）
func (m *Manager) Acquired() []Acquired {
	out := make([]Acquired, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Acquired)
	}
	return out
}

func (m *Manager) find(kind Kind) *entry {
	for _, e := range m.entries {
		if e.Definition.Kind == kind {
			return e
		}
	}
	return nil
}

// rebuildDispatch 按获得顺序重建各能力分发列表
func (m *Manager) rebuildDispatch() {
	m.comboEffects = m.comboEffects[:0]
	m.missEffects = m.missEffects[:0]
	m.deathEffects = m.deathEffects[:0]
	m.spawnEffects = m.spawnEffects[:0]
	m.timedEffects = m.timedEffects[:0]

	for _, e := range m.entries {
		if eff, ok := e.effect.(ComboEffect); ok {
			m.comboEffects = append(m.comboEffects, eff)
		}
		if eff, ok := e.effect.(MissForgivenessEffect); ok {
			m.missEffects = append(m.missEffects, eff)
		}
		if eff, ok := e.effect.(DeathEffect); ok {
			m.deathEffects = append(m.deathEffects, eff)
		}
		if eff, ok := e.effect.(SpawnEffect); ok {
			m.spawnEffects = append(m.spawnEffects, eff)
		}
		if eff, ok := e.effect.(TimedEffect); ok {
			m.timedEffects = append(m.timedEffects, eff)
		}
	}
}
