package game

import (
	"log"
	"math"

	"github.com/decker502/duckhunt/pkg/config"
)

// RunState 一局的分数、连击、生命、等级和阶段
//
// 所有修改都发生在单一更新线程中。阶段转换通过 setPhase 进行，
// 监听器（指针捕获、HUD）在转换完成后同步收到通知。
type RunState struct {
	// 配置
	duration        float64
	baseMaxLives    int
	baseThreshold   int
	thresholdFactor float64

	phase Phase

	score     int
	highScore int
	combo     int
	maxCombo  int

	lives    int
	maxLives int

	level         int
	prevThreshold int // 当前等级的起点分数（经验条使用）
	nextThreshold int

	elapsed    float64
	freezeLeft float64

	outcome         Outcome
	pendingLevelUps int // 尚未完成选择的升级次数（包括正在展示的这一次）

	onLevelUp     func(level int)
	onPhaseChange func(from, to Phase)
	onEnd         func(outcome Outcome)
}

// NewRunState 创建一局的状态，初始阶段为开始界面
//
// 参数：
//   - cfg: 玩法配置，为 nil 时使用默认配置
func NewRunState(cfg *config.GameplayConfig) *RunState {
	if cfg == nil {
		cfg = config.DefaultGameplayConfig()
	}
	rs := &RunState{
		duration:        cfg.Run.Duration,
		baseMaxLives:    cfg.Run.MaxLives,
		baseThreshold:   cfg.Levels.BaseThreshold,
		thresholdFactor: cfg.Levels.ThresholdFactor,
		phase:           PhaseStartScreen,
	}
	rs.resetRun()
	return rs
}

// SetLevelUpHandler 设置升级回调：进入道具选择阶段时调用（每个待选升级一次）
func (rs *RunState) SetLevelUpHandler(fn func(level int)) {
	rs.onLevelUp = fn
}

// SetPhaseListener 设置阶段转换监听器
func (rs *RunState) SetPhaseListener(fn func(from, to Phase)) {
	rs.onPhaseChange = fn
}

// SetEndHandler 设置本局结束回调（每局恰好一次）
func (rs *RunState) SetEndHandler(fn func(outcome Outcome)) {
	rs.onEnd = fn
}

// AddPoints 按当前连击倍率加分，并检查升级
//
// 实际得分 = base × max(combo, 1)。单次加分跨过多个阈值时逐级升级，
// 每跨过一个阈值等级 +1、阈值乘以 thresholdFactor、排队一次道具选择；
// 在 Play 阶段第一次跨过阈值时同步进入 PowerUpSelection。
// 开始界面和结束阶段不计分。
//
// 返回：
//   - int: 实际得分
func (rs *RunState) AddPoints(base int) int {
	if rs.phase == PhaseStartScreen || rs.phase == PhaseEnd {
		return 0
	}
	if base <= 0 {
		return 0
	}

	multiplier := rs.combo
	if multiplier < 1 {
		multiplier = 1
	}
	awarded := base * multiplier
	rs.score += awarded
	if rs.score > rs.highScore {
		rs.highScore = rs.score
	}

	crossed := 0
	for rs.score >= rs.nextThreshold {
		rs.level++
		rs.prevThreshold = rs.nextThreshold
		rs.nextThreshold = rs.growThreshold(rs.nextThreshold)
		crossed++
	}

	if crossed > 0 {
		rs.pendingLevelUps += crossed
		log.Printf("[RunState] Level up x%d -> level %d (next threshold %d)", crossed, rs.level, rs.nextThreshold)
		if rs.phase == PhasePlay {
			rs.enterSelection()
		}
	}

	return awarded
}

// growThreshold 计算下一阈值，保证严格递增
func (rs *RunState) growThreshold(current int) int {
	next := int(math.Ceil(float64(current) * rs.thresholdFactor))
	if next <= current {
		next = current + 1
	}
	return next
}

// RemoveLife 扣除一条生命，耗尽时以失败结束本局；仅在 Play 阶段生效
func (rs *RunState) RemoveLife() {
	if rs.phase != PhasePlay {
		return
	}
	if rs.lives > 0 {
		rs.lives--
	}
	log.Printf("[RunState] Life lost, %d/%d left", rs.lives, rs.maxLives)
	if rs.lives <= 0 {
		rs.End(false)
	}
}

// AddLife 增加生命；超过上限时上限随之提高
func (rs *RunState) AddLife(n int) {
	if n <= 0 {
		return
	}
	rs.lives += n
	if rs.lives > rs.maxLives {
		rs.maxLives = rs.lives
	}
}

// AddCombo 连击 +1，返回新的连击数
func (rs *RunState) AddCombo() int {
	rs.combo++
	if rs.combo > rs.maxCombo {
		rs.maxCombo = rs.combo
	}
	return rs.combo
}

// ResetCombo 连击归零
func (rs *RunState) ResetCombo() {
	if rs.combo > 0 {
		log.Printf("[RunState] Combo %d lost", rs.combo)
	}
	rs.combo = 0
}

// Start 从开始界面（或结束界面）开始新的一局
func (rs *RunState) Start() bool {
	if rs.phase != PhaseStartScreen && rs.phase != PhaseEnd {
		return false
	}
	rs.resetRun()
	return rs.setPhase(PhasePlay)
}

// Pause 暂停
func (rs *RunState) Pause() bool {
	if rs.phase != PhasePlay {
		return false
	}
	return rs.setPhase(PhasePause)
}

// Resume 从暂停恢复；暂停期间排队的升级会先进入道具选择
func (rs *RunState) Resume() bool {
	if rs.phase != PhasePause {
		return false
	}
	if !rs.setPhase(PhasePlay) {
		return false
	}
	if rs.pendingLevelUps > 0 {
		rs.enterSelection()
	}
	return true
}

// TogglePause 在 Play 和 Pause 之间切换
func (rs *RunState) TogglePause() bool {
	switch rs.phase {
	case PhasePlay:
		return rs.Pause()
	case PhasePause:
		return rs.Resume()
	default:
		return false
	}
}

// CompleteSelection 完成（或跳过）一次道具选择
//
// 还有排队的升级时停留在选择阶段并再次触发升级回调，否则回到 Play。
func (rs *RunState) CompleteSelection() bool {
	if rs.phase != PhasePowerUpSelection {
		return false
	}
	if rs.pendingLevelUps > 0 {
		rs.pendingLevelUps--
	}
	if rs.pendingLevelUps > 0 {
		rs.notifyLevelUp()
		return true
	}
	return rs.setPhase(PhasePlay)
}

// End 结束本局；已结束时不再重复触发
func (rs *RunState) End(success bool) bool {
	if rs.phase == PhaseEnd {
		return false
	}
	if !rs.setPhase(PhaseEnd) {
		return false
	}
	if success {
		rs.outcome = OutcomeSuccess
	} else {
		rs.outcome = OutcomeFailure
	}
	rs.pendingLevelUps = 0
	log.Printf("[RunState] Run ended: %s, score %d, level %d", rs.outcome, rs.score, rs.level)
	if rs.onEnd != nil {
		rs.onEnd(rs.outcome)
	}
	return true
}

// SoftRestart 重开一局，保留最高分
func (rs *RunState) SoftRestart() {
	rs.restart()
	log.Printf("[RunState] Soft restart (high score %d kept)", rs.highScore)
}

// HardRestart 重开一局，并清零最高分
func (rs *RunState) HardRestart() {
	rs.highScore = 0
	rs.restart()
	log.Printf("[RunState] Hard restart")
}

// ReturnToStartScreen 结束界面回到开始界面
func (rs *RunState) ReturnToStartScreen() bool {
	if rs.phase != PhaseEnd {
		return false
	}
	rs.resetRun()
	return rs.setPhase(PhaseStartScreen)
}

func (rs *RunState) restart() {
	from := rs.phase
	rs.resetRun()
	rs.phase = PhasePlay
	if rs.onPhaseChange != nil && from != PhasePlay {
		rs.onPhaseChange(from, PhasePlay)
	}
}

// resetRun 把一局的状态恢复为初始值（不动最高分和阶段）
func (rs *RunState) resetRun() {
	rs.score = 0
	rs.combo = 0
	rs.maxCombo = 0
	rs.lives = rs.baseMaxLives
	rs.maxLives = rs.baseMaxLives
	rs.level = 1
	rs.prevThreshold = 0
	rs.nextThreshold = rs.baseThreshold
	rs.elapsed = 0
	rs.freezeLeft = 0
	rs.outcome = OutcomeNone
	rs.pendingLevelUps = 0
}

// Update 推进本局计时（仅 Play 阶段），到时以胜利结束
func (rs *RunState) Update(dt float64) {
	if rs.phase != PhasePlay {
		return
	}
	rs.elapsed += dt
	if rs.elapsed >= rs.duration {
		rs.elapsed = rs.duration
		rs.End(true)
	}
}

// UpdateRealtime 推进真实时间计时器（冻结），任何阶段都调用
func (rs *RunState) UpdateRealtime(dt float64) {
	if rs.freezeLeft <= 0 {
		return
	}
	rs.freezeLeft -= dt
	if rs.freezeLeft <= 0 {
		rs.freezeLeft = 0
		log.Printf("[RunState] Freeze ended")
	}
}

// Freeze 冻结目标运动和生成 seconds 秒（重复冻结时重置剩余时间）
func (rs *RunState) Freeze(seconds float64) {
	if seconds <= 0 {
		return
	}
	rs.freezeLeft = seconds
}

func (rs *RunState) enterSelection() {
	if rs.setPhase(PhasePowerUpSelection) {
		rs.notifyLevelUp()
	}
}

func (rs *RunState) notifyLevelUp() {
	if rs.onLevelUp != nil {
		rs.onLevelUp(rs.level)
	}
}

func (rs *RunState) setPhase(next Phase) bool {
	if !rs.phase.CanTransitionTo(next) {
		log.Printf("[RunState] Illegal phase transition %s -> %s", rs.phase, next)
		return false
	}
	from := rs.phase
	rs.phase = next
	if rs.onPhaseChange != nil {
		rs.onPhaseChange(from, next)
	}
	return true
}

// Phase 当前阶段
func (rs *RunState) Phase() Phase { return rs.phase }

// Score 当前分数
func (rs *RunState) Score() int { return rs.score }

// HighScore 本次会话最高分
func (rs *RunState) HighScore() int { return rs.highScore }

// SetHighScore 用存档中的最高分初始化（只会提高）
func (rs *RunState) SetHighScore(score int) {
	if score > rs.highScore {
		rs.highScore = score
	}
}

// Combo 当前连击
func (rs *RunState) Combo() int { return rs.combo }

// MaxCombo 本局最高连击
func (rs *RunState) MaxCombo() int { return rs.maxCombo }

// Lives 当前生命
func (rs *RunState) Lives() int { return rs.lives }

// MaxLives 生命上限
func (rs *RunState) MaxLives() int { return rs.maxLives }

// Level 当前等级
func (rs *RunState) Level() int { return rs.level }

// NextThreshold 下一次升级所需分数
func (rs *RunState) NextThreshold() int { return rs.nextThreshold }

// PendingLevelUps 尚未完成的道具选择次数
func (rs *RunState) PendingLevelUps() int { return rs.pendingLevelUps }

// Outcome 本局结果
func (rs *RunState) Outcome() Outcome { return rs.outcome }

// Elapsed 本局已进行时间
func (rs *RunState) Elapsed() float64 { return rs.elapsed }

// Duration 本局总时长
func (rs *RunState) Duration() float64 { return rs.duration }

// TimeLeft 剩余时间
func (rs *RunState) TimeLeft() float64 {
	return math.Max(0, rs.duration-rs.elapsed)
}

// Progress 本局进度 0~1
func (rs *RunState) Progress() float64 {
	if rs.duration <= 0 {
		return 1
	}
	return math.Min(1, math.Max(0, rs.elapsed/rs.duration))
}

// LevelProgress 当前等级经验条进度 0~1
func (rs *RunState) LevelProgress() float64 {
	span := rs.nextThreshold - rs.prevThreshold
	if span <= 0 {
		return 0
	}
	p := float64(rs.score-rs.prevThreshold) / float64(span)
	return math.Min(1, math.Max(0, p))
}

// Frozen 是否处于冻结中
func (rs *RunState) Frozen() bool { return rs.freezeLeft > 0 }

// FreezeLeft 冻结剩余时间
func (rs *RunState) FreezeLeft() float64 { return rs.freezeLeft }
