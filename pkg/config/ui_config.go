package config

// 窗口与演示场景布局常量

const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 800

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600

	// GameWindowTitle 窗口标题
	GameWindowTitle = "Shield Demo"

	// FixedDeltaTime 固定帧时长（秒），与 ebiten 默认 60 TPS 一致
	FixedDeltaTime = 1.0 / 60.0
)

const (
	// BearerSpawnX 初始持盾者X坐标
	BearerSpawnX = 400.0

	// BearerSpawnY 初始持盾者Y坐标
	BearerSpawnY = 300.0

	// BearerCloneSpacing 克隆持盾者之间的水平间距（像素）
	BearerCloneSpacing = 120.0

	// BearerSize 持盾者占位图尺寸（像素）
	BearerSize = 48

	// MaxBearers 场景中持盾者数量上限
	MaxBearers = 6
)

const (
	// HUDMarginX HUD 文本左边距
	HUDMarginX = 10.0

	// HUDMarginY HUD 文本上边距
	HUDMarginY = 10.0

	// HUDLineHeight HUD 行高
	HUDLineHeight = 16.0
)
