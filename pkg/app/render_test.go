package app

import (
	"strings"
	"testing"

	"github.com/decker502/duckhunt/pkg/config"
	"github.com/decker502/duckhunt/pkg/game"
	"github.com/decker502/duckhunt/pkg/powerups"
	"github.com/decker502/duckhunt/pkg/scenes"
	"github.com/decker502/duckhunt/pkg/systems"
	"github.com/decker502/duckhunt/pkg/utils"
)

func TestWarningColor(t *testing.T) {
	if c := warningColor(0); c != duckColor {
		t.Errorf("no warning should be the plain duck color, got %v", c)
	}
	if c := warningColor(1); c != duckAlarmColor {
		t.Errorf("full warning should be the alarm color, got %v", c)
	}
	if c := warningColor(2); c != duckAlarmColor {
		t.Errorf("progress should be clamped, got %v", c)
	}
}

func TestDepthOrder(t *testing.T) {
	cam := systems.NewCamera(config.DefaultGameplayConfig().Camera)
	views := []scenes.TargetView{
		{ID: 1, Position: utils.Vec3{Z: 14}},
		{ID: 2, Position: utils.Vec3{Z: 9}},
		{ID: 3, Position: utils.Vec3{Z: 12}},
	}

	ordered := depthOrder(views, cam)
	want := []int{2, 3, 1}
	for i, v := range ordered {
		if int(v.ID) != want[i] {
			t.Fatalf("draw order %v, want far to near %v", ordered, want)
		}
	}
	if views[0].ID != 1 {
		t.Error("depthOrder must not reorder its input")
	}
}

func TestHUDLines(t *testing.T) {
	snap := scenes.Snapshot{Score: 1200, HighScore: 3000, Combo: 4, Lives: 2, MaxLives: 4, Level: 3, TimeLeft: 41.6}
	lines := hudLines(snap)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "1200") || !strings.Contains(lines[0], "3000") {
		t.Errorf("score line %q", lines[0])
	}
	if !strings.Contains(lines[1], "x4") || !strings.Contains(lines[1], "OO--") {
		t.Errorf("combo line %q", lines[1])
	}
	if !strings.Contains(lines[2], "TIME 42") {
		t.Errorf("time line %q", lines[2])
	}

	snap.Frozen = true
	snap.FreezeLeft = 7.3
	if lines := hudLines(snap); len(lines) != 4 || !strings.Contains(lines[3], "7.3") {
		t.Errorf("frozen HUD %v", lines)
	}
}

func TestLifeBar(t *testing.T) {
	tests := []struct {
		lives, max int
		want       string
	}{
		{3, 3, "OOO"},
		{1, 3, "O--"},
		{0, 3, "---"},
		{5, 3, "OOOOO"},
		{-1, 2, "--"},
	}
	for _, tt := range tests {
		if got := lifeBar(tt.lives, tt.max); got != tt.want {
			t.Errorf("lifeBar(%d, %d) = %q, want %q", tt.lives, tt.max, got, tt.want)
		}
	}
}

func TestOfferLines(t *testing.T) {
	offer := []powerups.Definition{
		{Name: "Oopsie Shield", Kind: powerups.MissForgiveness, Level: 2, Description: "forgives"},
		{Name: "Carnival Quake", Kind: powerups.InstantFreeze, Level: 1},
	}
	text := strings.Join(offerLines(5, offer), "\n")

	for _, want := range []string{"LEVEL 5", "1) Oopsie Shield  Lv2", "   forgives", "2) Carnival Quake  Lv1", "S  skip"} {
		if !strings.Contains(text, want) {
			t.Errorf("offer panel missing %q:\n%s", want, text)
		}
	}
}

func TestPowerUpLabel(t *testing.T) {
	upgradeable := powerups.Acquired{Definition: powerups.Definition{Name: "Duck Dilation", Kind: powerups.TargetSpawnSlow, Level: 2}, Stacks: 1}
	if got := powerUpLabel(upgradeable); got != "Duck Dilation Lv2" {
		t.Errorf("got %q", got)
	}
	oneShot := powerups.Acquired{Definition: powerups.Definition{Name: "One More Quack", Kind: powerups.Acquisition, Level: 1}, Stacks: 3}
	if got := powerUpLabel(oneShot); got != "One More Quack x3" {
		t.Errorf("got %q", got)
	}
}

func TestEndLines(t *testing.T) {
	snap := scenes.Snapshot{Outcome: game.OutcomeSuccess, Score: 4200, NewBest: true}
	text := strings.Join(endLines(snap), "\n")
	if !strings.Contains(text, "TIME UP") || !strings.Contains(text, "NEW BEST!") {
		t.Errorf("unexpected end panel:\n%s", text)
	}

	snap.Outcome = game.OutcomeFailure
	snap.NewBest = false
	text = strings.Join(endLines(snap), "\n")
	if !strings.Contains(text, "GAME OVER") || strings.Contains(text, "NEW BEST!") {
		t.Errorf("unexpected end panel:\n%s", text)
	}
}

func TestOfferTap(t *testing.T) {
	offer := []powerups.Definition{
		{ID: "a", Name: "Alpha", Level: 1, Description: "first"},
		{ID: "b", Name: "Beta", Level: 1},
	}
	// 7 行：标题、空行、Alpha、描述、Beta、空行、跳过
	panel := panelRect(1280, 720, offerLines(2, offer))
	rowY := func(row int) int {
		return int(panelLineY(panel, row)) + lineHeight/2
	}

	tests := []struct {
		name       string
		x, y       int
		wantChoice int
		wantSkip   bool
	}{
		{"名称行", 640, rowY(2), 0, false},
		{"描述行归属同一候选", 640, rowY(3), 0, false},
		{"没有描述的候选", 640, rowY(4), 1, false},
		{"空行", 640, rowY(5), -1, false},
		{"跳过行", 640, rowY(6), -1, true},
		{"面板外", 5, 5, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			choice, skip := offerTap(2, offer, 1280, 720, tt.x, tt.y)
			if choice != tt.wantChoice || skip != tt.wantSkip {
				t.Errorf("offerTap(%d, %d) = (%d, %v), want (%d, %v)", tt.x, tt.y, choice, skip, tt.wantChoice, tt.wantSkip)
			}
		})
	}
}

func TestPauseButton(t *testing.T) {
	b := pauseButton(1280)
	if !b.contains(1240, 30) {
		t.Error("top-right corner should hit the pause button")
	}
	if b.contains(640, 360) {
		t.Error("screen center should not hit the pause button")
	}
}
