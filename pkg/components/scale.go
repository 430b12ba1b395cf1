package components

// ScaleComponent 存储实体级别的缩放因子
// 用于在渲染时对整个实体进行缩放（如护盾展开/收起动画）
//
// ScaleX 或 ScaleY 为 0 时实体不可见，渲染系统会跳过它
type ScaleComponent struct {
	// ScaleX X轴缩放因子（1.0 = 原始大小，0.5 = 50%，2.0 = 200%）
	ScaleX float64

	// ScaleY Y轴缩放因子（1.0 = 原始大小，0.5 = 50%，2.0 = 200%）
	ScaleY float64
}
