package systems

import (
	"github.com/decker502/tcgame/pkg/components"
	"github.com/decker502/tcgame/pkg/ecs"
)

// SpriteAnimationSystem 播放网格精灵表动画
// 按 FPS 推进 AnimatedSpriteComponent.CurrentFrame，到达最后一帧后回到第 0 帧
type SpriteAnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewSpriteAnimationSystem 创建精灵表动画系统
func NewSpriteAnimationSystem(em *ecs.EntityManager) *SpriteAnimationSystem {
	return &SpriteAnimationSystem{
		entityManager: em,
	}
}

// Update 推进所有精灵表动画
func (s *SpriteAnimationSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.AnimatedSpriteComponent](s.entityManager)

	for _, id := range entities {
		anim, ok := ecs.GetComponent[*components.AnimatedSpriteComponent](s.entityManager, id)
		if !ok {
			continue
		}

		frameCount := anim.FrameCount()
		if anim.IsPaused || anim.FPS <= 0 || frameCount == 0 {
			continue
		}

		anim.FrameAccumulator += deltaTime
		frameDuration := 1.0 / anim.FPS

		// 一帧时间过长时可能跨越多帧
		for anim.FrameAccumulator >= frameDuration {
			anim.FrameAccumulator -= frameDuration
			anim.CurrentFrame = (anim.CurrentFrame + 1) % frameCount
		}
	}
}
