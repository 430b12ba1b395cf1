package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 同时支持鼠标左键和触摸输入，优先检测触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// PointInCenteredRect 检查点 (px, py) 是否落在以 (cx, cy) 为中心、边长为 size 的正方形内
// 与 RenderSystem 居中绘制精灵的方式一致
func PointInCenteredRect(px, py, cx, cy, size float64) bool {
	half := size / 2
	return px >= cx-half && px <= cx+half && py >= cy-half && py <= cy+half
}
