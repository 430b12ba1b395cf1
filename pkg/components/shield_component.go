package components

import (
	"github.com/decker502/tcgame/pkg/config"
	"github.com/decker502/tcgame/pkg/ecs"
)

// ShieldState 护盾状态枚举
//
// 状态循环：Inactive → Loading → Loaded → Unloading → Inactive
type ShieldState int

const (
	// ShieldStateInactive 护盾未激活（初始状态，无护盾实体）
	ShieldStateInactive ShieldState = iota

	// ShieldStateLoading 护盾展开中（缩放 MinScale → MaxScale）
	ShieldStateLoading

	// ShieldStateLoaded 护盾完全展开（缩放保持不变）
	ShieldStateLoaded

	// ShieldStateUnloading 护盾收起中（缩放 MaxScale → MinScale）
	ShieldStateUnloading
)

// String 返回 ShieldState 的字符串表示
func (s ShieldState) String() string {
	switch s {
	case ShieldStateInactive:
		return "Inactive"
	case ShieldStateLoading:
		return "Loading"
	case ShieldStateLoaded:
		return "Loaded"
	case ShieldStateUnloading:
		return "Unloading"
	default:
		return "Unknown"
	}
}

// ShieldComponent 护盾计时器组件
// 挂载在持盾实体上，由 ShieldSystem 驱动状态机
//
// 护盾实体（VisualEntity）只在 State != Inactive 时存在：
// 进入 Loading 时创建，离开 Unloading 时销毁，其他系统不得修改它的生命周期
type ShieldComponent struct {
	// State 当前状态
	State ShieldState

	// StateTime 当前状态已持续时间（秒），每次状态切换重置为 0
	StateTime float64

	// VisualEntity 护盾视觉实体ID，0 表示没有
	VisualEntity ecs.EntityID

	// LoadingTime 展开时长（秒）
	LoadingTime float64

	// LoadedTime 保持时长（秒）
	LoadedTime float64

	// UnloadingTime 收起时长（秒）
	UnloadingTime float64

	// MinScale 展开起点/收起终点的缩放
	MinScale float64

	// MaxScale 完全展开时的缩放
	MaxScale float64
}

// NewShieldComponent 根据护盾配置创建 Inactive 的护盾组件
// cfg 为 nil 时使用默认配置
func NewShieldComponent(cfg *config.ShieldConfig) *ShieldComponent {
	if cfg == nil {
		cfg = config.DefaultShieldConfig()
	}
	c := &ShieldComponent{
		State:         ShieldStateInactive,
		LoadingTime:   cfg.LoadingTime,
		LoadedTime:    cfg.LoadedTime,
		UnloadingTime: cfg.UnloadingTime,
		MinScale:      cfg.MinScale,
		MaxScale:      cfg.MaxScale,
	}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults 用默认值补全未设置的参数
//
// 时长 <= 0 时使用对应的默认时长；缩放区间无效（MaxScale <= 0、MinScale < 0
// 或 MinScale > MaxScale）时两端都使用默认值。
func (c *ShieldComponent) ApplyDefaults() {
	if c.LoadingTime <= 0 {
		c.LoadingTime = config.DefaultShieldLoadingTime
	}
	if c.LoadedTime <= 0 {
		c.LoadedTime = config.DefaultShieldLoadedTime
	}
	if c.UnloadingTime <= 0 {
		c.UnloadingTime = config.DefaultShieldUnloadingTime
	}
	if c.MaxScale <= 0 || c.MinScale < 0 || c.MinScale > c.MaxScale {
		c.MinScale = config.DefaultShieldMinScale
		c.MaxScale = config.DefaultShieldMaxScale
	}
}

// IsActive 护盾是否处于激活周期中（Loading / Loaded / Unloading）
func (c *ShieldComponent) IsActive() bool {
	return c.State != ShieldStateInactive
}

// Clone 以当前组件为原型创建新组件
// 只复制时长和缩放参数，新组件总是 Inactive 且不持有护盾实体
func (c *ShieldComponent) Clone() *ShieldComponent {
	return &ShieldComponent{
		State:         ShieldStateInactive,
		LoadingTime:   c.LoadingTime,
		LoadedTime:    c.LoadedTime,
		UnloadingTime: c.UnloadingTime,
		MinScale:      c.MinScale,
		MaxScale:      c.MaxScale,
	}
}

// ShieldBearerComponent 持盾者标记组件
// 用于场景查询"可以被激活护盾的实体"以及调试显示
type ShieldBearerComponent struct {
	// Name 持盾者名称（调试显示用）
	Name string
}
