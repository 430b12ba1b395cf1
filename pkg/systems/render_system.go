package systems

import (
	"log"
	"sort"

	"github.com/decker502/tcgame/pkg/components"
	"github.com/decker502/tcgame/pkg/ecs"
	"github.com/decker502/tcgame/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderSystem 渲染带 SpriteComponent 的实体
//
// 职责范围：
//   - 普通精灵：整张图片居中绘制在 PositionComponent 处
//   - 精灵表动画：只绘制 AnimatedSpriteComponent 当前帧对应的子图
//   - 缩放：ScaleComponent 以图片中心为原点缩放，缩放为 0 的实体跳过
//
// 绘制顺序：
//   - 没有父实体的实体先绘制（持盾者）
//   - 带 ParentOffsetComponent 的子实体后绘制（护盾覆盖在持盾者上方）
//   - 同一层内按实体ID升序，保证每帧顺序稳定
type RenderSystem struct {
	entityManager *ecs.EntityManager
	debugPrinted  map[ecs.EntityID]bool // 记录已打印警告的实体
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		debugPrinted:  make(map[ecs.EntityID]bool),
	}
}

// Draw 绘制所有可见实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range s.drawOrder() {
		s.drawEntity(screen, id)
	}
}

// drawOrder 返回本帧的绘制顺序
func (s *RenderSystem) drawOrder() []ecs.EntityID {
	entities := ecs.GetEntitiesWith2[
		*components.PositionComponent,
		*components.SpriteComponent,
	](s.entityManager)

	layer := func(id ecs.EntityID) int {
		if ecs.HasComponent[*components.ParentOffsetComponent](s.entityManager, id) {
			return 1
		}
		return 0
	}

	sort.Slice(entities, func(i, j int) bool {
		li, lj := layer(entities[i]), layer(entities[j])
		if li != lj {
			return li < lj
		}
		return entities[i] < entities[j]
	})

	return entities
}

// drawEntity 绘制单个实体
func (s *RenderSystem) drawEntity(screen *ebiten.Image, id ecs.EntityID) {
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

	if sprite == nil || sprite.Image == nil {
		if !s.debugPrinted[id] {
			log.Printf("[RenderSystem] 警告: 实体 %d (%s) 没有图像", id, s.entityManager.EntityName(id))
			s.debugPrinted[id] = true
		}
		return
	}

	scaleX, scaleY := 1.0, 1.0
	if scale, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id); ok {
		scaleX, scaleY = scale.ScaleX, scale.ScaleY
	}
	if scaleX == 0 || scaleY == 0 {
		return
	}

	img := s.currentFrame(id, sprite.Image)
	bounds := img.Bounds()

	op := &ebiten.DrawImageOptions{}

	// 以图片中心为原点缩放
	op.GeoM.Translate(-float64(bounds.Dx())/2, -float64(bounds.Dy())/2)
	op.GeoM.Scale(scaleX, scaleY)

	// 移动到目标位置
	op.GeoM.Translate(pos.X, pos.Y)

	screen.DrawImage(img, op)
}

// currentFrame 返回需要绘制的图像：精灵表实体取当前帧子图，否则返回整张图
func (s *RenderSystem) currentFrame(id ecs.EntityID, sheet *ebiten.Image) *ebiten.Image {
	anim, ok := ecs.GetComponent[*components.AnimatedSpriteComponent](s.entityManager, id)
	if !ok {
		return sheet
	}

	rect := utils.FrameRect(sheet.Bounds(), anim.Columns, anim.Rows, anim.CurrentFrame)
	return utils.CropImage(sheet, rect)
}
