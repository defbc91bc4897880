package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestStorage 在临时 HOME 下打开 gdata 存储，无法打开时跳过测试
func openTestStorage(t *testing.T) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")

	manager, err := gdata.Open(gdata.Config{AppName: "duckhunt_test"})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

func TestSaveManagerDegradedMode(t *testing.T) {
	sm := NewSaveManager(nil)

	newBest, err := sm.RecordRun(RunResult{Score: 500, Level: 2, MaxCombo: 7, Outcome: OutcomeFailure})
	if err != nil {
		t.Fatalf("degraded mode should not fail: %v", err)
	}
	if !newBest {
		t.Error("first run should set a new best")
	}

	newBest, _ = sm.RecordRun(RunResult{Score: 300, Level: 3, Outcome: OutcomeSuccess})
	if newBest {
		t.Error("lower score should not set a new best")
	}

	rec := sm.Record()
	if rec.BestScore != 500 || rec.BestLevel != 3 || rec.BestCombo != 7 {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.RunsPlayed != 2 || rec.LastScore != 300 || rec.LastOutcome != "success" {
		t.Errorf("unexpected last-run fields %+v", rec)
	}

	if err := sm.ClearBestScore(); err != nil {
		t.Fatal(err)
	}
	if got := sm.Record(); got.BestScore != 0 || got.BestLevel != 3 {
		t.Errorf("ClearBestScore should only zero the best score, got %+v", got)
	}
}

func TestSaveManagerPersists(t *testing.T) {
	storage := openTestStorage(t)

	sm := NewSaveManager(storage)
	if _, err := sm.RecordRun(RunResult{Score: 1200, Level: 4, MaxCombo: 15, Outcome: OutcomeSuccess}); err != nil {
		t.Fatalf("RecordRun() error: %v", err)
	}

	reloaded := NewSaveManager(storage)
	rec := reloaded.Record()
	if rec.BestScore != 1200 || rec.BestLevel != 4 || rec.RunsPlayed != 1 {
		t.Errorf("record not persisted: %+v", rec)
	}
}

func TestSettingsManager(t *testing.T) {
	sm := NewSettingsManager(nil)
	if *sm.GetSettings() != *DefaultSettings() {
		t.Errorf("expected defaults, got %+v", sm.GetSettings())
	}

	sm.SetSoundVolume(1.5)
	if sm.GetSettings().SoundVolume != 1 {
		t.Errorf("volume should clamp to 1, got %v", sm.GetSettings().SoundVolume)
	}
	sm.SetSoundVolume(-1)
	if sm.GetSettings().SoundVolume != 0 {
		t.Errorf("volume should clamp to 0, got %v", sm.GetSettings().SoundVolume)
	}
	if sm.ToggleOverlay() {
		t.Error("overlay should toggle off")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("degraded Save() should not fail: %v", err)
	}
}

func TestSettingsManagerPersists(t *testing.T) {
	storage := openTestStorage(t)

	sm := NewSettingsManager(storage)
	sm.SetFullscreen(true)
	sm.SetSoundEnabled(false)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(storage)
	got := reloaded.GetSettings()
	if !got.Fullscreen || got.SoundEnabled {
		t.Errorf("settings not persisted: %+v", got)
	}
}
