// Package app 提供护盾演示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、打开设置存储、
// 创建资源和音频管理器，并把演示场景交给场景管理器。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/tcgame/pkg/config"
	"github.com/decker502/tcgame/pkg/embedded"
	"github.com/decker502/tcgame/pkg/game"
	"github.com/decker502/tcgame/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// DefaultConfigPath 嵌入的默认护盾配置路径
const DefaultConfigPath = "data/shield.yaml"

// settingsAppName gdata 存储目录名
const settingsAppName = "tcgame_shield_demo"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 护盾配置文件路径，为空则使用嵌入的默认配置
	ConfigPath string
	// AssetRoot 资源目录（默认 "assets"）
	AssetRoot string
}

// App 是演示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 使用嵌入配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	shieldConfig, err := loadShieldConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("护盾配置加载失败: %w", err)
	}
	log.Printf("[Config] Shield: loading=%.2fs loaded=%.2fs unloading=%.2fs scale=[%.2f, %.2f]",
		shieldConfig.LoadingTime, shieldConfig.LoadedTime, shieldConfig.UnloadingTime,
		shieldConfig.MinScale, shieldConfig.MaxScale)

	// 打开设置存储，失败时降级为仅内存设置
	gdataManager, err := gdata.Open(gdata.Config{
		AppName: settingsAppName,
	})
	if err != nil {
		log.Printf("[App] Warning: Failed to open settings storage: %v (settings will not persist)", err)
		gdataManager = nil
	}

	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(48000)

	// 创建资源管理器
	resourceManager := game.NewResourceManager(audioContext)
	if cfg.AssetRoot != "" {
		resourceManager.SetAssetRoot(cfg.AssetRoot)
	}

	audioManager := game.NewAudioManager(resourceManager, settingsManager)
	log.Printf("[App] AudioManager initialized")

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func() game.Scene {
		scene, err := scenes.NewShieldDemoScene(resourceManager, sceneManager, settingsManager, audioManager, shieldConfig)
		if err != nil {
			log.Printf("[App] 错误: 无法创建演示场景: %v", err)
			return nil
		}
		return scene
	})

	if !sceneManager.Reload() {
		return nil, fmt.Errorf("演示场景创建失败")
	}

	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}, nil
}

// loadShieldConfig 从磁盘或嵌入资源加载护盾配置
func loadShieldConfig(path string) (*config.ShieldConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载护盾配置: %s", path)
		return config.LoadShieldConfig(path)
	}

	if !embedded.Exists(DefaultConfigPath) {
		log.Printf("[Config] 未找到嵌入配置，使用默认值")
		return config.DefaultShieldConfig(), nil
	}

	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded shield config: %w", err)
	}
	return config.ParseShieldConfig(data)
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(config.FixedDeltaTime)
	return nil
}

// toggleFullscreen 切换全屏并记录到设置中
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
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		a.settingsManager.SetFullscreen(false)
	} else {
		ebiten.SetFullscreen(true)
		a.settingsManager.SetFullscreen(true)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
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

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在窗口关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
