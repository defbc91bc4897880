package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pauseButtonSize 右上角暂停按钮边长（触屏没有 P / Esc）
const pauseButtonSize = 48

// justPressed 检查本帧是否刚发生点击或触摸
// 优先检测触摸，返回按下位置
func justPressed() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// pointerPosition 当前指针位置（触摸或鼠标）
func pointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// rect 屏幕上的矩形区域
type rect struct {
	X, Y, W, H float32
}

// contains 点是否落在矩形内
func (r rect) contains(x, y int) bool {
	fx, fy := float32(x), float32(y)
	return fx >= r.X && fx < r.X+r.W && fy >= r.Y && fy < r.Y+r.H
}

// pauseButton 右上角暂停按钮区域
func pauseButton(screenWidth int) rect {
	return rect{X: float32(screenWidth - pauseButtonSize - 8), Y: 8, W: pauseButtonSize, H: pauseButtonSize}
}
