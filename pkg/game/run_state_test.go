package game

import (
	"testing"

	"github.com/decker502/duckhunt/pkg/config"
)

func newTestRun(t *testing.T, mutate func(cfg *config.GameplayConfig)) *RunState {
	t.Helper()
	cfg := config.DefaultGameplayConfig()
	if mutate != nil {
		mutate(cfg)
	}
	rs := NewRunState(cfg)
	if !rs.Start() {
		t.Fatal("Start() failed")
	}
	return rs
}

// 连续三次命中，每次 100 基础分，倍率为命中后的连击数：100、300、600
func TestComboMultiplierExample(t *testing.T) {
	rs := newTestRun(t, nil)

	wantScores := []int{100, 300, 600}
	for i, want := range wantScores {
		combo := rs.AddCombo()
		if combo != i+1 {
			t.Errorf("hit %d: combo %d, want %d", i+1, combo, i+1)
		}
		rs.AddPoints(100)
		if rs.Score() != want {
			t.Errorf("hit %d: score %d, want %d", i+1, rs.Score(), want)
		}
	}
	if rs.HighScore() != 600 {
		t.Errorf("high score %d, want 600", rs.HighScore())
	}
}

func TestAddPointsWithoutCombo(t *testing.T) {
	rs := newTestRun(t, nil)
	if got := rs.AddPoints(50); got != 50 {
		t.Errorf("zero combo should score at x1, got %d", got)
	}
	if got := rs.AddPoints(0); got != 0 || rs.Score() != 50 {
		t.Error("non-positive base should be ignored")
	}
}

func TestScoreMonotoneAndHighScore(t *testing.T) {
	rs := newTestRun(t, func(cfg *config.GameplayConfig) {
		cfg.Levels.BaseThreshold = 1 << 30
	})

	bases := []int{100, 50, 200, 10, 300, 70}
	maxSeen := 0
	prev := 0
	for i, base := range bases {
		if i%2 == 0 {
			rs.AddCombo()
		} else {
			rs.ResetCombo()
		}
		rs.AddPoints(base)
		if rs.Score() < prev {
			t.Fatalf("score decreased from %d to %d", prev, rs.Score())
		}
		prev = rs.Score()
		if rs.Score() > maxSeen {
			maxSeen = rs.Score()
		}
		if rs.HighScore() != maxSeen {
			t.Fatalf("high score %d, want %d", rs.HighScore(), maxSeen)
		}
	}
}

func TestLevelUpSingleCrossing(t *testing.T) {
	rs := newTestRun(t, nil)

	var levels []int
	rs.SetLevelUpHandler(func(level int) { levels = append(levels, level) })

	rs.AddPoints(999)
	if rs.Level() != 1 || rs.Phase() != PhasePlay {
		t.Fatal("no level-up expected below threshold")
	}

	rs.AddPoints(1)
	if rs.Level() != 2 {
		t.Errorf("level %d, want 2", rs.Level())
	}
	if rs.NextThreshold() != 1500 {
		t.Errorf("next threshold %d, want 1500", rs.NextThreshold())
	}
	if rs.Phase() != PhasePowerUpSelection {
		t.Errorf("phase %s, want PowerUpSelection", rs.Phase())
	}
	if len(levels) != 1 || levels[0] != 2 {
		t.Errorf("level-up handler calls %v", levels)
	}

	if !rs.CompleteSelection() || rs.Phase() != PhasePlay {
		t.Error("completing selection should return to Play")
	}
}

// 单次加分跨过多个阈值：每个阈值升一级、排队一次选择
func TestLevelUpMultipleCrossings(t *testing.T) {
	rs := newTestRun(t, func(cfg *config.GameplayConfig) {
		cfg.Levels.BaseThreshold = 100
		cfg.Levels.ThresholdFactor = 2
	})

	calls := 0
	rs.SetLevelUpHandler(func(level int) { calls++ })

	rs.AddPoints(500) // 跨过 100、200、400
	if rs.Level() != 4 {
		t.Errorf("level %d, want 4", rs.Level())
	}
	if rs.NextThreshold() != 800 {
		t.Errorf("next threshold %d, want 800", rs.NextThreshold())
	}
	if rs.PendingLevelUps() != 3 {
		t.Errorf("pending %d, want 3", rs.PendingLevelUps())
	}
	if calls != 1 {
		t.Errorf("handler should fire once on entering selection, got %d", calls)
	}

	for i := 0; i < 2; i++ {
		rs.CompleteSelection()
		if rs.Phase() != PhasePowerUpSelection {
			t.Fatalf("selection %d: should stay in selection while offers are queued", i+1)
		}
	}
	if calls != 3 {
		t.Errorf("handler should fire once per queued offer, got %d", calls)
	}

	rs.CompleteSelection()
	if rs.Phase() != PhasePlay || rs.PendingLevelUps() != 0 {
		t.Errorf("expected Play with no pending offers, got %s/%d", rs.Phase(), rs.PendingLevelUps())
	}
}

func TestThresholdStrictlyIncreases(t *testing.T) {
	rs := newTestRun(t, func(cfg *config.GameplayConfig) {
		cfg.Levels.BaseThreshold = 1
		cfg.Levels.ThresholdFactor = 1.01
	})

	prevLevel := rs.Level()
	prevThreshold := rs.NextThreshold()
	for i := 0; i < 20; i++ {
		rs.AddPoints(1)
		for rs.Phase() == PhasePowerUpSelection {
			rs.CompleteSelection()
		}
		if rs.Level() < prevLevel {
			t.Fatal("level decreased")
		}
		if rs.Level() > prevLevel && rs.NextThreshold() <= prevThreshold {
			t.Fatalf("threshold did not increase: %d -> %d", prevThreshold, rs.NextThreshold())
		}
		prevLevel, prevThreshold = rs.Level(), rs.NextThreshold()
	}
}

func TestLevelUpDuringSelectionIsQueued(t *testing.T) {
	rs := newTestRun(t, func(cfg *config.GameplayConfig) {
		cfg.Levels.BaseThreshold = 100
		cfg.Levels.ThresholdFactor = 2
	})

	rs.AddPoints(100)
	rs.AddPoints(100) // 连锁爆炸在选择阶段继续计分
	if rs.Score() != 200 || rs.PendingLevelUps() != 2 {
		t.Errorf("score %d pending %d, want 200/2", rs.Score(), rs.PendingLevelUps())
	}
}

func TestRemoveLifeEndsOnce(t *testing.T) {
	rs := newTestRun(t, nil)

	ends := 0
	rs.SetEndHandler(func(outcome Outcome) {
		ends++
		if outcome != OutcomeFailure {
			t.Errorf("outcome %s, want failure", outcome)
		}
	})

	for i := 0; i < 10; i++ {
		rs.RemoveLife()
		if rs.Lives() < 0 {
			t.Fatal("lives went negative")
		}
	}

	if rs.Phase() != PhaseEnd {
		t.Errorf("phase %s, want End", rs.Phase())
	}
	if ends != 1 {
		t.Errorf("End reached %d times, want 1", ends)
	}
	if rs.Lives() != 0 {
		t.Errorf("lives %d, want 0", rs.Lives())
	}
}

func TestRemoveLifeOnlyInPlay(t *testing.T) {
	rs := NewRunState(nil)
	rs.RemoveLife()
	if rs.Lives() != 3 {
		t.Error("RemoveLife should be a no-op on the start screen")
	}

	rs.Start()
	rs.Pause()
	rs.RemoveLife()
	if rs.Lives() != 3 {
		t.Error("RemoveLife should be a no-op while paused")
	}
}

func TestAddLifeRaisesMax(t *testing.T) {
	rs := newTestRun(t, nil)
	rs.RemoveLife()
	rs.AddLife(1)
	if rs.Lives() != 3 || rs.MaxLives() != 3 {
		t.Errorf("lives %d/%d, want 3/3", rs.Lives(), rs.MaxLives())
	}
	rs.AddLife(2)
	if rs.Lives() != 5 || rs.MaxLives() != 5 {
		t.Errorf("lives %d/%d, want 5/5", rs.Lives(), rs.MaxLives())
	}
}

func TestAddPointsIgnoredOutsideRun(t *testing.T) {
	rs := NewRunState(nil)
	rs.AddPoints(100)
	if rs.Score() != 0 {
		t.Error("no scoring on start screen")
	}

	rs.Start()
	rs.End(true)
	rs.AddPoints(100)
	if rs.Score() != 0 {
		t.Error("no scoring after End")
	}
}

func TestRunTimerEndsWithSuccess(t *testing.T) {
	rs := newTestRun(t, func(cfg *config.GameplayConfig) {
		cfg.Run.Duration = 2
	})

	var outcome Outcome
	rs.SetEndHandler(func(o Outcome) { outcome = o })

	rs.Update(1)
	if rs.Progress() != 0.5 {
		t.Errorf("progress %v, want 0.5", rs.Progress())
	}

	rs.Pause()
	rs.Update(5)
	if rs.Phase() != PhasePause || rs.Elapsed() != 1 {
		t.Error("timer must not run while paused")
	}
	rs.Resume()

	rs.Update(1.5)
	if rs.Phase() != PhaseEnd || outcome != OutcomeSuccess {
		t.Errorf("expected End(success), got %s/%s", rs.Phase(), outcome)
	}
	if rs.TimeLeft() != 0 {
		t.Errorf("time left %v, want 0", rs.TimeLeft())
	}
}

func TestFreezeRunsInRealtime(t *testing.T) {
	rs := newTestRun(t, nil)
	rs.Freeze(10)

	rs.Pause()
	rs.UpdateRealtime(4)
	if !rs.Frozen() || rs.FreezeLeft() != 6 {
		t.Errorf("freeze should tick in every phase, left %v", rs.FreezeLeft())
	}

	rs.Freeze(10)
	if rs.FreezeLeft() != 10 {
		t.Error("re-freezing should reset the remaining time")
	}

	rs.UpdateRealtime(10)
	if rs.Frozen() {
		t.Error("freeze should be over")
	}
}

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		from, to Phase
		want     bool
	}{
		{PhaseStartScreen, PhasePlay, true},
		{PhaseStartScreen, PhasePause, false},
		{PhasePlay, PhasePause, true},
		{PhasePause, PhasePlay, true},
		{PhasePlay, PhasePowerUpSelection, true},
		{PhasePause, PhasePowerUpSelection, false},
		{PhasePowerUpSelection, PhasePlay, true},
		{PhasePlay, PhaseEnd, true},
		{PhaseEnd, PhasePlay, true},
		{PhaseEnd, PhaseStartScreen, true},
		{PhaseEnd, PhasePause, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTogglePause(t *testing.T) {
	rs := NewRunState(nil)
	if rs.TogglePause() {
		t.Error("cannot pause on start screen")
	}

	var changes []Phase
	rs.SetPhaseListener(func(from, to Phase) { changes = append(changes, to) })

	rs.Start()
	rs.TogglePause()
	rs.TogglePause()

	want := []Phase{PhasePlay, PhasePause, PhasePlay}
	if len(changes) != len(want) {
		t.Fatalf("phase changes %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d: %s, want %s", i, changes[i], want[i])
		}
	}
}

func TestRestarts(t *testing.T) {
	rs := newTestRun(t, func(cfg *config.GameplayConfig) {
		cfg.Levels.BaseThreshold = 100
	})
	rs.AddCombo()
	rs.AddPoints(120)
	rs.CompleteSelection()
	rs.RemoveLife()
	rs.AddLife(4)
	rs.Freeze(10)
	if rs.Lives() != 6 || rs.MaxLives() != 6 {
		t.Fatalf("setup: lives %d/%d, want 6/6", rs.Lives(), rs.MaxLives())
	}

	rs.SoftRestart()
	if rs.Phase() != PhasePlay {
		t.Errorf("phase %s, want Play", rs.Phase())
	}
	if rs.Score() != 0 || rs.Combo() != 0 || rs.Level() != 1 || rs.NextThreshold() != 100 {
		t.Errorf("run not reset: score %d combo %d level %d threshold %d",
			rs.Score(), rs.Combo(), rs.Level(), rs.NextThreshold())
	}
	if rs.Lives() != 3 || rs.MaxLives() != 3 || rs.Frozen() {
		t.Errorf("lives %d/%d frozen %v", rs.Lives(), rs.MaxLives(), rs.Frozen())
	}
	if rs.HighScore() != 120 {
		t.Errorf("soft restart should keep high score, got %d", rs.HighScore())
	}

	rs.HardRestart()
	if rs.HighScore() != 0 {
		t.Errorf("hard restart should zero high score, got %d", rs.HighScore())
	}
}

func TestLevelProgress(t *testing.T) {
	rs := newTestRun(t, func(cfg *config.GameplayConfig) {
		cfg.Levels.BaseThreshold = 100
		cfg.Levels.ThresholdFactor = 2
	})
	rs.AddPoints(50)
	if rs.LevelProgress() != 0.5 {
		t.Errorf("progress %v, want 0.5", rs.LevelProgress())
	}
	rs.AddPoints(100) // 150：等级 2，区间 [100, 200)
	if rs.LevelProgress() != 0.5 {
		t.Errorf("progress %v, want 0.5", rs.LevelProgress())
	}
}
