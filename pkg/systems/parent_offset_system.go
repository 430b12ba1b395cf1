package systems

import (
	"log"

	"github.com/decker502/tcgame/pkg/components"
	"github.com/decker502/tcgame/pkg/ecs"
)

// ParentOffsetSystem 让子实体跟随父实体移动
// 子实体位置 = 父实体位置 + 偏移量
type ParentOffsetSystem struct {
	entityManager *ecs.EntityManager
}

// NewParentOffsetSystem 创建父实体跟随系统
func NewParentOffsetSystem(em *ecs.EntityManager) *ParentOffsetSystem {
	return &ParentOffsetSystem{
		entityManager: em,
	}
}

// Update 更新所有带 ParentOffsetComponent 的实体位置
// 父实体不存在（或已标记删除）且 DestroyWithParent 为 true 时，子实体一并标记删除
func (s *ParentOffsetSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[
		*components.ParentOffsetComponent,
		*components.PositionComponent,
	](s.entityManager)

	for _, id := range entities {
		offset, _ := ecs.GetComponent[*components.ParentOffsetComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		parentPos, ok := s.parentPosition(offset.Parent)
		if !ok {
			if offset.DestroyWithParent && !s.entityManager.IsMarkedForDestroy(id) {
				log.Printf("[ParentOffsetSystem] 父实体 %d 已不存在，销毁子实体 %d", offset.Parent, id)
				s.entityManager.DestroyEntity(id)
			}
			continue
		}

		pos.X = parentPos.X + offset.OffsetX
		pos.Y = parentPos.Y + offset.OffsetY
	}
}

// parentPosition 获取父实体位置，父实体已删除或即将删除时返回 false
func (s *ParentOffsetSystem) parentPosition(parent ecs.EntityID) (*components.PositionComponent, bool) {
	if parent == 0 || s.entityManager.IsMarkedForDestroy(parent) {
		return nil, false
	}
	return ecs.GetComponent[*components.PositionComponent](s.entityManager, parent)
}
