package game

// Phase 一局游戏所处的阶段
type Phase int

const (
	// PhaseStartScreen 开始界面
	PhaseStartScreen Phase = iota
	// PhasePlay 游戏中
	PhasePlay
	// PhasePause 暂停
	PhasePause
	// PhasePowerUpSelection 升级后选择道具
	PhasePowerUpSelection
	// PhaseEnd 本局结束（时间到或生命耗尽）
	PhaseEnd
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseStartScreen:
		return "StartScreen"
	case PhasePlay:
		return "Play"
	case PhasePause:
		return "Pause"
	case PhasePowerUpSelection:
		return "PowerUpSelection"
	case PhaseEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// phaseTransitions 合法的阶段转换
// 重开一局（SoftRestart/HardRestart）不走这张表，可以从任意阶段直接回到 Play
var phaseTransitions = map[Phase][]Phase{
	PhaseStartScreen:      {PhasePlay},
	PhasePlay:             {PhasePause, PhasePowerUpSelection, PhaseEnd},
	PhasePause:            {PhasePlay, PhaseEnd},
	PhasePowerUpSelection: {PhasePlay, PhaseEnd},
	PhaseEnd:              {PhaseStartScreen, PhasePlay},
}

// CanTransitionTo 检查能否从当前阶段转换到 next
func (p Phase) CanTransitionTo(next Phase) bool {
	for _, allowed := range phaseTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Outcome 一局的结果
type Outcome int

const (
	// OutcomeNone 尚未结束
	OutcomeNone Outcome = iota
	// OutcomeSuccess 坚持到时间结束
	OutcomeSuccess
	// OutcomeFailure 生命耗尽
	OutcomeFailure
)

// String 返回结果名称（同时用于存档）
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "none"
	}
}
