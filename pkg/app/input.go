package app

import (
	"errors"
	"log"

	"github.com/decker502/duckhunt/pkg/game"
	"github.com/decker502/duckhunt/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// choiceKeys 道具选择的数字键
var choiceKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}

// handleInput 把键鼠输入翻译为场景操作
//
// 全局：R 软重开，Shift+R 硬重开，F3 切换调试叠加层。
// 其余按阶段：
//   - 开始界面：Enter / 点击开始
//   - Play：点击开枪，P / Esc / 暂停按钮暂停
//   - Pause：P / Esc / 点击继续
//   - 道具选择：1~3 或点击候选行选择，S 或点击跳过行跳过
//   - 结束界面：Enter / 点击再来一局，Esc 回到开始界面
//
// 鼠标和触摸走同一条路径，移动端因此不需要单独的输入层。
func (a *App) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.settings.ToggleOverlay()
		a.saveSettings()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) && a.scene.Phase() != game.PhaseStartScreen {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			a.scene.HardRestart()
		} else {
			a.scene.SoftRestart()
		}
		return
	}

	pausePressed := inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	tapped, tx, ty := justPressed()

	switch a.scene.Phase() {
	case game.PhaseStartScreen:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || tapped {
			a.scene.Start()
		}

	case game.PhasePlay:
		if pausePressed || (tapped && pauseButton(a.screenWidth).contains(tx, ty)) {
			a.scene.TogglePause()
			return
		}
		if tapped {
			a.scene.Shoot(float64(tx), float64(ty))
		}

	case game.PhasePause:
		if pausePressed || tapped {
			a.scene.TogglePause()
		}

	case game.PhasePowerUpSelection:
		for i, key := range choiceKeys {
			if inpututil.IsKeyJustPressed(key) {
				a.choose(i)
				return
			}
		}
		skip := inpututil.IsKeyJustPressed(ebiten.KeyS)
		if tapped {
			snap := a.scene.Snapshot()
			choice, tapSkip := offerTap(snap.Level, snap.Offer, a.screenWidth, a.screenHeight, tx, ty)
			if choice >= 0 {
				a.choose(choice)
				return
			}
			skip = skip || tapSkip
		}
		if skip {
			if err := a.scene.SkipPowerUp(); err != nil {
				log.Printf("[App] Skip rejected: %v", err)
			}
		}

	case game.PhaseEnd:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || tapped {
			a.scene.Start()
		} else if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			a.scene.ReturnToStartScreen()
		}
	}
}

func (a *App) choose(index int) {
	acquired, err := a.scene.ChoosePowerUp(index)
	switch {
	case errors.Is(err, scenes.ErrInvalidChoice):
		// 候选不足 3 个时按到了空位
		return
	case err != nil:
		log.Printf("[App] Choice rejected: %v", err)
		return
	}
	log.Printf("[App] Picked %s (level %d)", acquired.Definition.Name, acquired.Definition.Level)
}

// cursorController 用 ebiten 实现 fx.CursorController
//
// Play 阶段隐藏系统指针并绘制准星；固定机位下瞄准使用绝对坐标，
// 所以锁定对应 CursorModeHidden 而不是 CursorModeCaptured。
type cursorController struct{}

func (cursorController) SetCursor(visible, locked bool) {
	if visible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeHidden)
}
