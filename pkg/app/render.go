package app

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/decker502/duckhunt/pkg/fx"
	"github.com/decker502/duckhunt/pkg/game"
	"github.com/decker502/duckhunt/pkg/powerups"
	"github.com/decker502/duckhunt/pkg/scenes"
	"github.com/decker502/duckhunt/pkg/systems"
	"github.com/decker502/duckhunt/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 调色板
var (
	skyColor       = color.RGBA{R: 120, G: 180, B: 230, A: 255}
	groundColor    = color.RGBA{R: 70, G: 130, B: 60, A: 255}
	duckColor      = color.RGBA{R: 240, G: 220, B: 60, A: 255}
	duckAlarmColor = color.RGBA{R: 230, G: 50, B: 40, A: 255}
	headColor      = color.RGBA{R: 30, G: 120, B: 60, A: 255}
	beakColor      = color.RGBA{R: 250, G: 140, B: 30, A: 255}
	slowRingColor  = color.RGBA{R: 80, G: 160, B: 255, A: 255}
	panelColor     = color.RGBA{A: 170}
	barBackColor   = color.RGBA{R: 40, G: 40, B: 40, A: 200}
	barFillColor   = color.RGBA{R: 120, G: 220, B: 90, A: 255}
	crosshairColor = color.RGBA{R: 255, G: 255, B: 255, A: 230}
)

// HUD 布局常量
const (
	hudX          = 12
	hudY          = 10
	lineHeight    = 16
	xpBarWidth    = 220
	xpBarHeight   = 8
	crosshairSize = 10
)

// drawScene 绘制一帧：背景 → 目标（由远到近）→ 爆炸光环 → 准星 → 屏幕色调 → HUD → 阶段面板
func drawScene(screen *ebiten.Image, scene *scenes.GameScene, showOverlay bool) {
	snap := scene.Snapshot()
	cam := scene.Camera()
	director := scene.Director()

	drawBackground(screen, cam)

	for _, view := range depthOrder(snap.Targets, cam) {
		drawTarget(screen, cam, view)
	}
	for _, pulse := range director.Pulses() {
		drawPulse(screen, cam, pulse)
	}

	if snap.Phase == game.PhasePlay && !utils.IsMobile() {
		x, y := pointerPosition()
		drawCrosshair(screen, float32(x), float32(y))
	}

	w, h := float32(cam.Width), float32(cam.Height)
	if a := director.TintAlpha(); a > 0 || snap.Frozen {
		// 冻结期间保留一层淡蓝，色调动画叠加在上面
		alpha := 0.12 + 0.35*a
		vector.DrawFilledRect(screen, 0, 0, w, h, color.RGBA{R: 90, G: 200, B: 255, A: uint8(alpha * 255)}, false)
	}
	if a := director.FlashAlpha(); a > 0 {
		vector.DrawFilledRect(screen, 0, 0, w, h, color.RGBA{R: 255, G: 255, B: 255, A: uint8(a * 255)}, false)
	}

	drawHUD(screen, snap)
	if snap.Phase == game.PhasePlay || snap.Phase == game.PhasePause {
		drawPauseButton(screen, cam.Width)
	}

	switch snap.Phase {
	case game.PhaseStartScreen:
		drawPanel(screen, cam, startLines(snap))
	case game.PhasePause:
		drawPanel(screen, cam, pauseLines)
	case game.PhasePowerUpSelection:
		drawPanel(screen, cam, offerLines(snap.Level, snap.Offer))
	case game.PhaseEnd:
		drawPanel(screen, cam, endLines(snap))
	}

	if showOverlay {
		drawOverlay(screen, cam, snap)
	}
}

func drawBackground(screen *ebiten.Image, cam *systems.Camera) {
	screen.Fill(skyColor)
	horizon := float32(cam.Height) * 0.72
	vector.DrawFilledRect(screen, 0, horizon, float32(cam.Width), float32(cam.Height)-horizon, groundColor, false)
}

var pauseLines = []string{"PAUSED", "", "P / Esc / tap  resume", "R  restart"}

// depthOrder 按深度由远到近排序，近处的目标后画
func depthOrder(views []scenes.TargetView, cam *systems.Camera) []scenes.TargetView {
	ordered := make([]scenes.TargetView, len(views))
	copy(ordered, views)
	sort.SliceStable(ordered, func(i, j int) bool {
		return cam.Depth(ordered[i].Position) > cam.Depth(ordered[j].Position)
	})
	return ordered
}

func drawTarget(screen *ebiten.Image, cam *systems.Camera, view scenes.TargetView) {
	x, y, scale, ok := cam.Project(view.Position)
	if !ok {
		return
	}

	if view.Trail {
		// 减速拖尾：身后两个渐隐的残影
		for i := 1; i <= 2; i++ {
			alpha := uint8(90 / i)
			vector.DrawFilledCircle(screen, float32(x)-float32(i)*float32(view.Radius*scale)*0.6, float32(y),
				float32(view.Radius*scale), color.RGBA{R: 80, G: 160, B: 255, A: alpha}, true)
		}
	}

	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(view.Radius*scale), warningColor(view.Warning), true)

	hx, hy, _, _ := cam.Project(view.Position.Add(utils.Vec3{Y: view.HeadOffsetY}))
	vector.DrawFilledCircle(screen, float32(hx), float32(hy), float32(view.HeadRadius*scale), headColor, true)

	bx, by, _, _ := cam.Project(view.Position.Add(utils.Vec3{X: view.BeakOffsetX, Y: view.BeakOffsetY}))
	vector.DrawFilledCircle(screen, float32(bx), float32(by), float32(view.BeakRadius*scale), beakColor, true)

	if view.Slowed {
		vector.StrokeCircle(screen, float32(x), float32(y), float32(view.Radius*scale)+3, 2, slowRingColor, true)
	}
}

// warningColor 身体颜色随到期警告进度从黄渐变到红
func warningColor(progress float64) color.RGBA {
	p := utils.Clamp01(progress)
	mix := func(a, b uint8) uint8 {
		return uint8(utils.Lerp(float64(a), float64(b), p))
	}
	return color.RGBA{
		R: mix(duckColor.R, duckAlarmColor.R),
		G: mix(duckColor.G, duckAlarmColor.G),
		B: mix(duckColor.B, duckAlarmColor.B),
		A: 255,
	}
}

func drawPulse(screen *ebiten.Image, cam *systems.Camera, pulse *fx.Pulse) {
	x, y, scale, ok := cam.Project(pulse.Position)
	if !ok {
		return
	}
	clr := color.RGBA{R: 255, G: 150, B: 40, A: uint8(pulse.Alpha() * 255)}
	if pulse.Kind == fx.EffectQuacksplosion {
		clr = color.RGBA{R: 255, G: 60, B: 200, A: uint8(pulse.Alpha() * 255)}
	}
	vector.StrokeCircle(screen, float32(x), float32(y), float32(pulse.CurrentRadius()*scale), 4, clr, true)
}

func drawCrosshair(screen *ebiten.Image, x, y float32) {
	vector.StrokeLine(screen, x-crosshairSize, y, x+crosshairSize, y, 2, crosshairColor, true)
	vector.StrokeLine(screen, x, y-crosshairSize, x, y+crosshairSize, 2, crosshairColor, true)
	vector.StrokeCircle(screen, x, y, crosshairSize*0.6, 1, crosshairColor, true)
}

func drawHUD(screen *ebiten.Image, snap scenes.Snapshot) {
	for i, line := range hudLines(snap) {
		ebitenutil.DebugPrintAt(screen, line, hudX, hudY+i*lineHeight)
	}

	// 经验条
	barY := float32(hudY + len(hudLines(snap))*lineHeight + 4)
	vector.DrawFilledRect(screen, hudX, barY, xpBarWidth, xpBarHeight, barBackColor, false)
	vector.DrawFilledRect(screen, hudX, barY, float32(xpBarWidth*utils.Clamp01(snap.LevelProgress)), xpBarHeight, barFillColor, false)

	for i, acquired := range snap.PowerUps {
		ebitenutil.DebugPrintAt(screen, powerUpLabel(acquired), hudX, int(barY)+xpBarHeight+8+i*lineHeight)
	}
}

// hudLines 左上角 HUD 文本
func hudLines(snap scenes.Snapshot) []string {
	lines := []string{
		fmt.Sprintf("SCORE %d   BEST %d", snap.Score, snap.HighScore),
		fmt.Sprintf("COMBO x%d   LIVES %s", snap.Combo, lifeBar(snap.Lives, snap.MaxLives)),
		fmt.Sprintf("LEVEL %d   TIME %.0f", snap.Level, snap.TimeLeft),
	}
	if snap.Frozen {
		lines = append(lines, fmt.Sprintf("FROZEN %.1fs", snap.FreezeLeft))
	}
	return lines
}

func lifeBar(lives, maxLives int) string {
	if lives < 0 {
		lives = 0
	}
	if maxLives < lives {
		maxLives = lives
	}
	return strings.Repeat("O", lives) + strings.Repeat("-", maxLives-lives)
}

func powerUpLabel(a powerups.Acquired) string {
	if a.Definition.Kind.IsOneShot() {
		return fmt.Sprintf("%s x%d", a.Definition.Name, a.Stacks)
	}
	return fmt.Sprintf("%s Lv%d", a.Definition.Name, a.Definition.Level)
}

func startLines(snap scenes.Snapshot) []string {
	return []string{
		"DUCK HUNT",
		"",
		fmt.Sprintf("Best score: %d", snap.HighScore),
		"",
		"Enter / click  start",
		"Aim for the head (x2) or the beak (x3)",
	}
}

// offerLines 道具选择面板文本
func offerLines(level int, offer []powerups.Definition) []string {
	lines := []string{fmt.Sprintf("LEVEL %d - choose a power-up", level), ""}
	for i, def := range offer {
		lines = append(lines, fmt.Sprintf("%d) %s  Lv%d", i+1, def.Name, def.Level))
		if def.Description != "" {
			lines = append(lines, "   "+def.Description)
		}
	}
	return append(lines, "", "S  skip")
}

func endLines(snap scenes.Snapshot) []string {
	title := "GAME OVER"
	if snap.Outcome == game.OutcomeSuccess {
		title = "TIME UP"
	}
	lines := []string{
		title,
		"",
		fmt.Sprintf("Score %d   Level %d   Max combo %d", snap.Score, snap.Level, snap.MaxCombo),
		fmt.Sprintf("Accuracy %.0f%%", snap.Stats.Accuracy()*100),
	}
	if snap.NewBest {
		lines = append(lines, "NEW BEST!")
	}
	return append(lines, "", "Enter  play again", "Esc  title", "Shift+R  reset best score")
}

func drawPanel(screen *ebiten.Image, cam *systems.Camera, lines []string) {
	panel := panelRect(cam.Width, cam.Height, lines)
	vector.DrawFilledRect(screen, panel.X, panel.Y, panel.W, panel.H, panelColor, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, int(panel.X)+20, int(panelLineY(panel, i)))
	}
}

// panelRect 居中面板的区域，宽度按最长一行计算
func panelRect(screenWidth, screenHeight int, lines []string) rect {
	width := float32(0)
	for _, l := range lines {
		// DebugPrint 字符宽 6 像素
		if w := float32(len([]rune(l)) * 6); w > width {
			width = w
		}
	}
	width += 40
	height := float32(len(lines)*lineHeight + 30)
	return rect{
		X: (float32(screenWidth) - width) / 2,
		Y: (float32(screenHeight) - height) / 2,
		W: width,
		H: height,
	}
}

func panelLineY(panel rect, line int) float32 {
	return panel.Y + 15 + float32(line*lineHeight)
}

// offerTap 把面板上的点击翻译为道具选择
//
// 返回：
//   - choice: 被点中的候选下标，未点中候选时为 -1
//   - skip: 点中了最后一行的跳过提示
func offerTap(level int, offer []powerups.Definition, screenWidth, screenHeight, x, y int) (choice int, skip bool) {
	lines := offerLines(level, offer)
	panel := panelRect(screenWidth, screenHeight, lines)
	if !panel.contains(x, y) {
		return -1, false
	}

	row := int((float32(y) - panel.Y - 15) / lineHeight)
	if row == len(lines)-1 {
		return -1, true
	}

	// 与 offerLines 的排版一致：标题、空行，然后每个候选一行名称加可选的一行描述
	line := 2
	for i, def := range offer {
		span := 1
		if def.Description != "" {
			span = 2
		}
		if row >= line && row < line+span {
			return i, false
		}
		line += span
	}
	return -1, false
}

func drawPauseButton(screen *ebiten.Image, screenWidth int) {
	b := pauseButton(screenWidth)
	vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, panelColor, false)
	bar := b.W / 6
	vector.DrawFilledRect(screen, b.X+bar*1.5, b.Y+bar, bar, b.H-2*bar, crosshairColor, false)
	vector.DrawFilledRect(screen, b.X+bar*3.5, b.Y+bar, bar, b.H-2*bar, crosshairColor, false)
}

// drawOverlay 右上角调试信息（F3 切换）
func drawOverlay(screen *ebiten.Image, cam *systems.Camera, snap scenes.Snapshot) {
	s := snap.Stats
	text := fmt.Sprintf("TPS %.0f  FPS %.0f\nphase %s\ntargets %d\nshots %d hits %d (%.0f%%)\nforgiven %d head %d beak %d\nbest run %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(), snap.Phase, len(snap.Targets),
		s.Shots, s.Hits, s.Accuracy()*100, s.Forgiven, s.HeadShots, s.BeakShots, s.LongestRun)
	ebitenutil.DebugPrintAt(screen, text, cam.Width-pauseButtonSize-240, hudY)
}
