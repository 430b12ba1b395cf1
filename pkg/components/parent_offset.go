package components

import "github.com/decker502/tcgame/pkg/ecs"

// ParentOffsetComponent 父实体跟随组件
// 每帧由 ParentOffsetSystem 把子实体位置设置为 父实体位置 + 偏移量
//
// 这里不实现完整的变换层级（旋转、缩放继承），只继承位置
type ParentOffsetComponent struct {
	// Parent 父实体ID
	Parent ecs.EntityID

	// OffsetX 相对父实体的X偏移（像素）
	OffsetX float64

	// OffsetY 相对父实体的Y偏移（像素，正值向下）
	OffsetY float64

	// DestroyWithParent 父实体不存在时是否一并销毁子实体
	DestroyWithParent bool
}
