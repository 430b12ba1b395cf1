package components

// AnimatedSpriteComponent 网格精灵表动画组件
// 精灵表按 Columns × Rows 均分，帧序号按行优先排列：
//
//	0 1 2
//	3 4 5
//
// 例如护盾贴图 "Textures/Shield" 为 3 列 2 行共 6 帧，循环播放
type AnimatedSpriteComponent struct {
	// TexturePath 精灵表资源路径（仅用于日志和调试）
	TexturePath string

	// Columns 精灵表列数（>= 1）
	Columns int

	// Rows 精灵表行数（>= 1）
	Rows int

	// FPS 播放速度（帧/秒）
	FPS float64

	// CurrentFrame 当前帧序号（0 到 Columns*Rows-1）
	CurrentFrame int

	// FrameAccumulator 帧时间累积器（秒）
	FrameAccumulator float64

	// IsPaused 是否暂停播放
	IsPaused bool
}

// FrameCount 返回精灵表总帧数
func (a *AnimatedSpriteComponent) FrameCount() int {
	if a.Columns <= 0 || a.Rows <= 0 {
		return 0
	}
	return a.Columns * a.Rows
}
