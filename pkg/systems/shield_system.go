package systems

import (
	"fmt"
	"log"

	"github.com/decker502/tcgame/pkg/components"
	"github.com/decker502/tcgame/pkg/ecs"
	"github.com/decker502/tcgame/pkg/game"
	"github.com/decker502/tcgame/pkg/utils"
)

// ShieldVisualScene 护盾视觉实体的场景能力
// ShieldSystem 只通过该接口创建、销毁和缩放护盾实体，不直接依赖具体的实体工厂
type ShieldVisualScene interface {
	// CreateShieldVisual 为 owner 创建护盾实体（初始缩放为 0），返回实体ID
	CreateShieldVisual(owner ecs.EntityID) ecs.EntityID

	// DestroyShieldVisual 销毁护盾实体
	DestroyShieldVisual(visual ecs.EntityID)

	// SetShieldVisualScale 设置护盾实体的等比缩放
	SetShieldVisualScale(visual ecs.EntityID, scale float64)
}

// ShieldSoundPlayer 护盾音效播放能力（可选）
type ShieldSoundPlayer interface {
	PlaySound(soundID string) bool
}

// ShieldSystem 护盾系统
// 驱动所有 ShieldComponent 的状态机：Inactive → Loading → Loaded → Unloading → Inactive
//
// 职责：
//   - 处理激活请求（仅 Inactive 状态响应）
//   - 每帧按当前状态分派一次处理函数，累积状态时间并插值缩放
//   - 状态切换时先执行旧状态的离开钩子，再执行新状态的进入钩子，最后更新状态字段
//   - 进入 Loading 时创建护盾实体，离开 Unloading 时销毁护盾实体
type ShieldSystem struct {
	entityManager *ecs.EntityManager
	scene         ShieldVisualScene
	sound         ShieldSoundPlayer
}

// NewShieldSystem 创建护盾系统
// 参数：
//   - em: EntityManager 实例
//   - scene: 护盾视觉实体的场景能力
//   - sound: 音效播放器，可为 nil（静音）
//
// 返回：
//   - *ShieldSystem: 系统实例
//   - error: em 或 scene 为 nil 时返回错误
func NewShieldSystem(em *ecs.EntityManager, scene ShieldVisualScene, sound ShieldSoundPlayer) (*ShieldSystem, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if scene == nil {
		return nil, fmt.Errorf("shield visual scene cannot be nil")
	}

	return &ShieldSystem{
		entityManager: em,
		scene:         scene,
		sound:         sound,
	}, nil
}

// Activate 激活 owner 的护盾
// 只有 Inactive 状态会响应；护盾已激活或实体没有护盾组件时静默忽略
func (s *ShieldSystem) Activate(owner ecs.EntityID) {
	shield, ok := ecs.GetComponent[*components.ShieldComponent](s.entityManager, owner)
	if !ok {
		return
	}

	if shield.State != components.ShieldStateInactive {
		return
	}

	// 时长必须为正数，否则插值进度无意义
	shield.ApplyDefaults()
	s.changeState(owner, shield, components.ShieldStateLoading)
}

// IsActive 查询 owner 的护盾是否处于激活周期中
// 没有护盾组件的实体返回 false
func (s *ShieldSystem) IsActive(owner ecs.EntityID) bool {
	shield, ok := ecs.GetComponent[*components.ShieldComponent](s.entityManager, owner)
	if !ok {
		return false
	}
	return shield.IsActive()
}

// Update 更新所有护盾
// 参数：
//   - dt: 时间增量（秒），非负
func (s *ShieldSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.ShieldComponent](s.entityManager)

	for _, owner := range entities {
		shield, ok := ecs.GetComponent[*components.ShieldComponent](s.entityManager, owner)
		if !ok {
			continue
		}

		switch shield.State {
		case components.ShieldStateInactive:
			// 未激活：等待 Activate

		case components.ShieldStateLoading:
			s.updateLoadingState(owner, shield, dt)

		case components.ShieldStateLoaded:
			s.updateLoadedState(owner, shield, dt)

		case components.ShieldStateUnloading:
			s.updateUnloadingState(owner, shield, dt)
		}
	}
}

// updateLoadingState 展开：缩放从 MinScale 插值到 MaxScale
func (s *ShieldSystem) updateLoadingState(owner ecs.EntityID, shield *components.ShieldComponent, dt float64) {
	shield.StateTime += dt

	s.scene.SetShieldVisualScale(shield.VisualEntity, loadingScale(shield))

	if shield.StateTime >= shield.LoadingTime {
		s.changeState(owner, shield, components.ShieldStateLoaded)
	}
}

// updateLoadedState 保持：只计时，不改变缩放
func (s *ShieldSystem) updateLoadedState(owner ecs.EntityID, shield *components.ShieldComponent, dt float64) {
	shield.StateTime += dt

	if shield.StateTime >= shield.LoadedTime {
		s.changeState(owner, shield, components.ShieldStateUnloading)
	}
}

// updateUnloadingState 收起：缩放从 MaxScale 插值回 MinScale
func (s *ShieldSystem) updateUnloadingState(owner ecs.EntityID, shield *components.ShieldComponent, dt float64) {
	shield.StateTime += dt

	s.scene.SetShieldVisualScale(shield.VisualEntity, unloadingScale(shield))

	if shield.StateTime >= shield.UnloadingTime {
		s.changeState(owner, shield, components.ShieldStateInactive)
	}
}

// changeState 切换状态
// 顺序：离开旧状态 → 进入新状态 → 更新状态字段并重置状态时间
func (s *ShieldSystem) changeState(owner ecs.EntityID, shield *components.ShieldComponent, next components.ShieldState) {
	previous := shield.State

	s.onLeaveState(owner, shield, previous)
	s.onEnterState(owner, shield, next)

	shield.State = next
	shield.StateTime = 0

	log.Printf("[ShieldSystem] Entity %d: %s → %s", owner, previous, next)
}

// onEnterState 进入状态钩子：只有 Loading 创建护盾实体
func (s *ShieldSystem) onEnterState(owner ecs.EntityID, shield *components.ShieldComponent, state components.ShieldState) {
	switch state {
	case components.ShieldStateLoading:
		shield.VisualEntity = s.scene.CreateShieldVisual(owner)
		s.scene.SetShieldVisualScale(shield.VisualEntity, 0)
		s.playSound(game.SoundShieldUp)

	case components.ShieldStateUnloading:
		s.playSound(game.SoundShieldDown)
	}
}

// onLeaveState 离开状态钩子：只有 Unloading 销毁护盾实体
func (s *ShieldSystem) onLeaveState(owner ecs.EntityID, shield *components.ShieldComponent, state components.ShieldState) {
	switch state {
	case components.ShieldStateUnloading:
		s.scene.DestroyShieldVisual(shield.VisualEntity)
		shield.VisualEntity = 0
	}
}

func (s *ShieldSystem) playSound(soundID string) {
	if s.sound != nil {
		s.sound.PlaySound(soundID)
	}
}

// loadingScale 展开阶段的缩放
// 插值进度限制在 [0, 1]，越界帧不会超过 MaxScale
func loadingScale(shield *components.ShieldComponent) float64 {
	return utils.LerpClamped(shield.MinScale, shield.MaxScale, shield.StateTime/shield.LoadingTime)
}

// unloadingScale 收起阶段的缩放
func unloadingScale(shield *components.ShieldComponent) float64 {
	remaining := shield.UnloadingTime - shield.StateTime
	return utils.LerpClamped(shield.MinScale, shield.MaxScale, remaining/shield.UnloadingTime)
}
