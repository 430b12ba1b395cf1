package components

// PositionComponent 存储实体的世界坐标
// 对于精灵实体，坐标表示精灵中心点
type PositionComponent struct {
	X float64
	Y float64
}
