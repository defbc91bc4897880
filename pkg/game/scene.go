package game

// Scene 宿主逐帧驱动的场景
//
// 渲染由宿主负责（桌面端用 ebiten 绘制快照，headless 模拟器不渲染），
// 场景本身只推进逻辑。
type Scene interface {
	// Update 推进一帧，deltaTime 为帧间隔（秒）
	Update(deltaTime float64)
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 模拟器跑完所有局
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
