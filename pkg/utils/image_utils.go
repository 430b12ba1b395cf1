package utils

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// FrameRect 计算网格精灵表中第 frame 帧的矩形区域
//
// 精灵表按 columns × rows 均分，帧序号按行优先排列。
// frame 超出范围时按帧数取模；columns 或 rows 非法时返回整张图。
//
// Parameters:
//   - bounds: 精灵表的边界（通常为 img.Bounds()）
//   - columns, rows: 网格列数和行数
//   - frame: 帧序号
//
// Returns:
//   - 该帧在精灵表中的矩形
func FrameRect(bounds image.Rectangle, columns, rows, frame int) image.Rectangle {
	if columns <= 0 || rows <= 0 {
		return bounds
	}

	frameCount := columns * rows
	frame %= frameCount
	if frame < 0 {
		frame += frameCount
	}

	frameW := bounds.Dx() / columns
	frameH := bounds.Dy() / rows
	col := frame % columns
	row := frame / columns

	minX := bounds.Min.X + col*frameW
	minY := bounds.Min.Y + row*frameH
	return image.Rect(minX, minY, minX+frameW, minY+frameH)
}

// CropImage extracts a rectangular region from an image.
//
// Parameters:
//   - src: The source image
//   - rect: The rectangle region to extract
//
// Returns:
//   - A new ebiten.Image containing only the cropped region
func CropImage(src *ebiten.Image, rect image.Rectangle) *ebiten.Image {
	if src == nil {
		return nil
	}

	// Ensure rect is within bounds
	bounds := src.Bounds()
	if rect.Min.X < bounds.Min.X {
		rect.Min.X = bounds.Min.X
	}
	if rect.Min.Y < bounds.Min.Y {
		rect.Min.Y = bounds.Min.Y
	}
	if rect.Max.X > bounds.Max.X {
		rect.Max.X = bounds.Max.X
	}
	if rect.Max.Y > bounds.Max.Y {
		rect.Max.Y = bounds.Max.Y
	}

	return src.SubImage(rect).(*ebiten.Image)
}

// GenerateShieldSheet 生成程序化的护盾精灵表
//
// 资源文件缺失时作为兜底贴图：每帧是一个半透明能量球，外环亮度随帧序号脉动。
//
// Parameters:
//   - columns, rows: 网格列数和行数（>= 1）
//   - frameSize: 单帧边长（像素）
//
// Returns:
//   - 尺寸为 (columns*frameSize) × (rows*frameSize) 的精灵表
func GenerateShieldSheet(columns, rows, frameSize int) *ebiten.Image {
	if columns < 1 {
		columns = 1
	}
	if rows < 1 {
		rows = 1
	}

	sheet := ebiten.NewImage(columns*frameSize, rows*frameSize)
	frameCount := columns * rows
	radius := float32(frameSize)/2 - 2

	for frame := 0; frame < frameCount; frame++ {
		rect := FrameRect(sheet.Bounds(), columns, rows, frame)
		cx := float32(rect.Min.X) + float32(frameSize)/2
		cy := float32(rect.Min.Y) + float32(frameSize)/2

		// 外环亮度：前半程变亮，后半程变暗，循环播放时形成脉动
		phase := float64(frame) / float64(frameCount)
		if phase > 0.5 {
			phase = 1 - phase
		}
		glow := uint8(Lerp(140, 255, EaseOutQuad(phase*2)))

		vector.DrawFilledCircle(sheet, cx, cy, radius, color.RGBA{R: 40, G: 120, B: 200, A: 90}, true)
		vector.StrokeCircle(sheet, cx, cy, radius-1, 3, color.RGBA{R: 120, G: glow, B: 255, A: 220}, true)
	}

	return sheet
}

// GenerateBearerImage 生成持盾者的占位图（实心方块）
func GenerateBearerImage(size int, clr color.Color) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	vector.DrawFilledRect(img, 0, 0, float32(size), float32(size), clr, false)
	return img
}
