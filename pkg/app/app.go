// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/duckhunt/pkg/embedded"
	"github.com/decker502/duckhunt/pkg/game"
	"github.com/decker502/duckhunt/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName 存储目录名
const AppName = "duckhunt"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	scene    *scenes.GameScene
	settings *game.SettingsManager
	audio    *AudioManager

	screenWidth  int
	screenHeight int

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	bundle, err := embedded.LoadBundle()
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	// 存储打开失败时存档和设置进入降级模式
	storage := game.OpenStorage(AppName)
	settings := game.NewSettingsManager(storage)
	saves := game.NewSaveManager(storage)

	audioManager := NewAudioManager(audio.NewContext(SampleRate), settings)
	audioManager.PreloadSounds(SoundIDs())
	log.Printf("[App] AudioManager initialized")

	scene := scenes.NewGameScene(scenes.Options{
		Gameplay: bundle.Gameplay,
		Spawn:    bundle.Spawn,
		PowerUps: bundle.PowerUps,
		Saves:    saves,
		Seed:     cfg.Seed,
	})
	scene.Director().SetSoundPlayer(audioManager)
	scene.Director().SetCursorController(cursorController{})

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	ebiten.SetWindowClosingHandled(true)

	return &App{
		scene:        scene,
		settings:     settings,
		audio:        audioManager,
		screenWidth:  bundle.Gameplay.Camera.ScreenWidth,
		screenHeight: bundle.Gameplay.Camera.ScreenHeight,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.SaveOnExit()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.screenWidth, a.screenHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.screenWidth, a.screenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.handleInput()

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.scene.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
		a.settings.SetFullscreen(true)
	}
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// SaveOnExit 保存战绩和设置，窗口关闭时调用
func (a *App) SaveOnExit() bool {
	a.saveSettings()
	return a.scene.SaveOnExit()
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	drawScene(screen, a.scene, a.settings.GetSettings().ShowOverlay)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸与相机的投影尺寸一致，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.screenWidth, a.screenHeight
}

// ScreenSize 逻辑屏幕尺寸（窗口初始大小）
func (a *App) ScreenSize() (int, int) {
	return a.screenWidth, a.screenHeight
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
