package entities

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/tcgame/pkg/components"
	"github.com/decker502/tcgame/pkg/config"
	"github.com/decker502/tcgame/pkg/ecs"
	"github.com/decker502/tcgame/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// ShieldVisualName 护盾视觉实体的名称
const ShieldVisualName = "Shield Actor"

// BearerTexture 持盾者贴图路径，缺失时使用生成的占位图
const BearerTexture = "Textures/Bearer"

// ResourceLoader 实体工厂需要的资源加载能力
// 由 game.ResourceManager 实现，测试中用 mock 替代以避免文件 I/O
type ResourceLoader interface {
	LoadImage(path string) (*ebiten.Image, error)
	LoadShieldSheet(cfg *config.ShieldConfig) *ebiten.Image
}

// ShieldVisualFactory 在 ECS 中创建和管理护盾视觉实体
//
// 护盾实体组成：
//   - PositionComponent: 由 ParentOffsetSystem 每帧同步到持盾者位置 + 偏移
//   - ScaleComponent: 由 ShieldSystem 驱动，初始为 0（不可见）
//   - SpriteComponent + AnimatedSpriteComponent: 循环播放的护盾精灵表
//   - ParentOffsetComponent: 持盾者被删除时护盾一并删除
type ShieldVisualFactory struct {
	entityManager *ecs.EntityManager
	resources     ResourceLoader
	config        *config.ShieldConfig
}

// NewShieldVisualFactory 创建护盾视觉实体工厂
//
// 参数:
//   - em: 实体管理器
//   - rm: 资源加载器（加载护盾精灵表）
//   - cfg: 护盾配置
//
// 返回:
//   - *ShieldVisualFactory: 工厂实例
//   - error: 参数为 nil 时返回错误
func NewShieldVisualFactory(em *ecs.EntityManager, rm ResourceLoader, cfg *config.ShieldConfig) (*ShieldVisualFactory, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if rm == nil {
		return nil, fmt.Errorf("resource manager cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("shield config cannot be nil")
	}

	return &ShieldVisualFactory{
		entityManager: em,
		resources:     rm,
		config:        cfg,
	}, nil
}

// CreateShieldVisual 为 owner 创建护盾视觉实体
// 护盾以缩放 0 创建，由 ShieldSystem 在展开阶段放大
func (f *ShieldVisualFactory) CreateShieldVisual(owner ecs.EntityID) ecs.EntityID {
	cfg := f.config
	sheet := f.resources.LoadShieldSheet(cfg)

	id := f.entityManager.CreateNamedEntity(ShieldVisualName)

	// 初始位置直接对齐持盾者，避免第一帧出现在原点
	x, y := cfg.OffsetX, cfg.OffsetY
	if ownerPos, ok := ecs.GetComponent[*components.PositionComponent](f.entityManager, owner); ok {
		x += ownerPos.X
		y += ownerPos.Y
	}

	ecs.AddComponent(f.entityManager, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(f.entityManager, id, &components.ScaleComponent{ScaleX: 0, ScaleY: 0})
	ecs.AddComponent(f.entityManager, id, &components.SpriteComponent{Image: sheet})
	ecs.AddComponent(f.entityManager, id, &components.AnimatedSpriteComponent{
		TexturePath: cfg.Texture,
		Columns:     cfg.FrameColumns,
		Rows:        cfg.FrameRows,
		FPS:         cfg.FrameFPS,
	})
	ecs.AddComponent(f.entityManager, id, &components.ParentOffsetComponent{
		Parent:            owner,
		OffsetX:           cfg.OffsetX,
		OffsetY:           cfg.OffsetY,
		DestroyWithParent: true,
	})

	log.Printf("[ShieldVisualFactory] Created %s %d for entity %d", ShieldVisualName, id, owner)
	return id
}

// DestroyShieldVisual 标记护盾实体待删除
func (f *ShieldVisualFactory) DestroyShieldVisual(visual ecs.EntityID) {
	if visual == 0 {
		return
	}
	f.entityManager.DestroyEntity(visual)
}

// SetShieldVisualScale 设置护盾实体的等比缩放
func (f *ShieldVisualFactory) SetShieldVisualScale(visual ecs.EntityID, scale float64) {
	scaleComp, ok := ecs.GetComponent[*components.ScaleComponent](f.entityManager, visual)
	if !ok {
		return
	}
	scaleComp.ScaleX = scale
	scaleComp.ScaleY = scale
}

// NewShieldBearer 创建持盾者实体
//
// 参数:
//   - em: 实体管理器
//   - rm: 资源加载器（加载持盾者贴图）
//   - cfg: 护盾配置（提供护盾时长和缩放范围）
//   - x, y: 持盾者位置
//
// 返回:
//   - ecs.EntityID: 持盾者实体ID，失败返回 0
//   - error: 参数为 nil 时返回错误
func NewShieldBearer(em *ecs.EntityManager, rm ResourceLoader, cfg *config.ShieldConfig, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if rm == nil {
		return 0, fmt.Errorf("resource manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("shield config cannot be nil")
	}

	img, err := rm.LoadImage(BearerTexture)
	if err != nil {
		img = utils.GenerateBearerImage(config.BearerSize, color.RGBA{R: 200, G: 160, B: 60, A: 255})
	}

	id := em.CreateNamedEntity("Shield Bearer")
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.SpriteComponent{Image: img})
	ecs.AddComponent(em, id, &components.ShieldBearerComponent{Name: fmt.Sprintf("Bearer %d", id)})
	ecs.AddComponent(em, id, components.NewShieldComponent(cfg))

	return id, nil
}

// CloneShieldBearer 以已有持盾者为原型创建新的持盾者
//
// 克隆体共享原型的图像，护盾组件通过 ShieldComponent.Clone() 复制：
// 无论原型的护盾处于什么状态，克隆体总是 Inactive 且没有护盾实体。
//
// 参数:
//   - em: 实体管理器
//   - src: 原型持盾者
//   - x, y: 克隆体位置
//
// 返回:
//   - ecs.EntityID: 克隆体实体ID，失败返回 0
//   - error: 原型不存在或不是持盾者时返回错误
func CloneShieldBearer(em *ecs.EntityManager, src ecs.EntityID, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	shield, ok := ecs.GetComponent[*components.ShieldComponent](em, src)
	if !ok {
		return 0, fmt.Errorf("entity %d has no shield component", src)
	}

	id := em.CreateNamedEntity(em.EntityName(src))
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})

	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, src); ok {
		ecs.AddComponent(em, id, &components.SpriteComponent{Image: sprite.Image})
	}

	ecs.AddComponent(em, id, &components.ShieldBearerComponent{Name: fmt.Sprintf("Bearer %d", id)})
	ecs.AddComponent(em, id, shield.Clone())

	log.Printf("[ShieldVisualFactory] Cloned bearer %d from %d (source state: %s)", id, src, shield.State)
	return id, nil
}
