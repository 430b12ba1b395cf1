package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体的视觉表现(当前绘制的图像)
// 带有 AnimatedSpriteComponent 的实体，Image 是整张精灵表，实际绘制当前帧的子图
type SpriteComponent struct {
	Image *ebiten.Image
}
