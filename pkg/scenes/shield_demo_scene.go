package scenes

import (
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/decker502/tcgame/pkg/components"
	"github.com/decker502/tcgame/pkg/config"
	"github.com/decker502/tcgame/pkg/ecs"
	"github.com/decker502/tcgame/pkg/entities"
	"github.com/decker502/tcgame/pkg/game"
	"github.com/decker502/tcgame/pkg/systems"
	"github.com/decker502/tcgame/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 编译期检查：ECS 工厂实现护盾系统需要的场景能力
var _ systems.ShieldVisualScene = (*entities.ShieldVisualFactory)(nil)

var backgroundColor = color.RGBA{R: 24, G: 28, B: 40, A: 255}

// ShieldDemoScene 护盾演示场景
//
// 操作：
//   - Space: 激活所有持盾者的护盾
//   - 点击/触摸持盾者: 只激活该持盾者的护盾
//   - C: 以第一个持盾者为原型克隆一个新的持盾者
//   - S: 开关音效（立即保存设置）
//   - H: 开关调试信息
//   - R: 重置场景
type ShieldDemoScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	config          *config.ShieldConfig

	entityManager *ecs.EntityManager
	shieldFactory *entities.ShieldVisualFactory

	// 系统
	shieldSystem          *systems.ShieldSystem
	parentOffsetSystem    *systems.ParentOffsetSystem
	spriteAnimationSystem *systems.SpriteAnimationSystem
	renderSystem          *systems.RenderSystem

	// bearers 持盾者实体，第一个是克隆原型
	bearers []ecs.EntityID
}

// NewShieldDemoScene 创建护盾演示场景
//
// 参数:
//   - rm: 资源管理器
//   - sm: 场景管理器（R 键重置场景）
//   - settings: 设置管理器，可为 nil
//   - audio: 音频管理器，可为 nil（静音）
//   - cfg: 护盾配置
//
// 返回:
//   - *ShieldDemoScene: 场景实例
//   - error: 初始持盾者创建失败时返回错误
func NewShieldDemoScene(rm *game.ResourceManager, sm *game.SceneManager, settings *game.SettingsManager, audio *game.AudioManager, cfg *config.ShieldConfig) (*ShieldDemoScene, error) {
	if rm == nil {
		return nil, fmt.Errorf("resource manager cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("shield config cannot be nil")
	}

	em := ecs.NewEntityManager()

	factory, err := entities.NewShieldVisualFactory(em, rm, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create shield factory: %w", err)
	}

	// audio 为 nil 时不能直接赋给接口，否则接口非 nil 但方法调用会崩溃
	var sound systems.ShieldSoundPlayer
	if audio != nil {
		audio.PreloadShieldSounds()
		sound = audio
	}

	shieldSystem, err := systems.NewShieldSystem(em, factory, sound)
	if err != nil {
		return nil, fmt.Errorf("failed to create shield system: %w", err)
	}

	scene := &ShieldDemoScene{
		resourceManager:       rm,
		sceneManager:          sm,
		settingsManager:       settings,
		config:                cfg,
		entityManager:         em,
		shieldFactory:         factory,
		shieldSystem:          shieldSystem,
		parentOffsetSystem:    systems.NewParentOffsetSystem(em),
		spriteAnimationSystem: systems.NewSpriteAnimationSystem(em),
		renderSystem:          systems.NewRenderSystem(em),
	}

	bearer, err := entities.NewShieldBearer(em, rm, cfg, config.BearerSpawnX, config.BearerSpawnY)
	if err != nil {
		return nil, fmt.Errorf("failed to create shield bearer: %w", err)
	}
	scene.bearers = append(scene.bearers, bearer)

	log.Printf("[ShieldDemoScene] Scene created (cycle %.1fs)", cfg.TotalDuration())
	return scene, nil
}

// Update 更新场景
// 顺序：输入 → 护盾状态机 → 跟随父实体 → 精灵表动画 → 清理删除的实体
func (s *ShieldDemoScene) Update(deltaTime float64) {
	s.handleInput()

	s.shieldSystem.Update(deltaTime)
	s.parentOffsetSystem.Update(deltaTime)
	s.spriteAnimationSystem.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
}

// handleInput 处理键盘输入
func (s *ShieldDemoScene) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.ActivateAll()
	}
	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked {
		if bearer, ok := s.BearerAt(float64(x), float64(y)); ok {
			s.shieldSystem.Activate(bearer)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if _, err := s.CloneBearer(); err != nil {
			log.Printf("[ShieldDemoScene] Clone failed: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.ToggleSound()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.ToggleHUD()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && s.sceneManager != nil {
		s.sceneManager.Reload()
	}
}

// ActivateAll 激活所有持盾者的护盾
// 已激活的护盾忽略本次请求
func (s *ShieldDemoScene) ActivateAll() {
	for _, bearer := range s.bearers {
		s.shieldSystem.Activate(bearer)
	}
}

// BearerAt 返回位于屏幕坐标 (x, y) 的持盾者
func (s *ShieldDemoScene) BearerAt(x, y float64) (ecs.EntityID, bool) {
	for _, bearer := range s.bearers {
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, bearer)
		if !ok {
			continue
		}
		if utils.PointInCenteredRect(x, y, pos.X, pos.Y, config.BearerSize) {
			return bearer, true
		}
	}
	return 0, false
}

// CloneBearer 以第一个持盾者为原型克隆新的持盾者
// 克隆体的护盾总是 Inactive，与原型当前状态无关
func (s *ShieldDemoScene) CloneBearer() (ecs.EntityID, error) {
	if len(s.bearers) >= config.MaxBearers {
		return 0, fmt.Errorf("bearer limit reached (%d)", config.MaxBearers)
	}

	prototype := s.bearers[0]
	x := config.BearerSpawnX + cloneOffset(len(s.bearers))

	clone, err := entities.CloneShieldBearer(s.entityManager, prototype, x, config.BearerSpawnY)
	if err != nil {
		return 0, err
	}

	s.bearers = append(s.bearers, clone)
	return clone, nil
}

// cloneOffset 第 n 个持盾者相对初始位置的水平偏移：+1, -1, +2, -2, +3 个间距
func cloneOffset(n int) float64 {
	step := float64((n + 1) / 2)
	if n%2 == 0 {
		step = -step
	}
	return step * config.BearerCloneSpacing
}

// ToggleSound 开关音效并立即保存设置
func (s *ShieldDemoScene) ToggleSound() {
	if s.settingsManager == nil {
		return
	}

	enabled := !s.settingsManager.GetSettings().SoundEnabled
	s.settingsManager.SetSoundEnabled(enabled)
	if err := s.settingsManager.Save(); err != nil {
		log.Printf("[ShieldDemoScene] Warning: Failed to save settings: %v", err)
	}
	log.Printf("[ShieldDemoScene] Sound enabled: %v", enabled)
}

// ToggleHUD 开关调试信息
func (s *ShieldDemoScene) ToggleHUD() {
	if s.settingsManager == nil {
		return
	}
	settings := s.settingsManager.GetSettings()
	s.settingsManager.SetShowHUD(!settings.ShowHUD)
}

// showHUD 没有设置管理器时默认显示
func (s *ShieldDemoScene) showHUD() bool {
	if s.settingsManager == nil {
		return true
	}
	return s.settingsManager.GetSettings().ShowHUD
}

// Draw 绘制场景
func (s *ShieldDemoScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.renderSystem.Draw(screen)

	if s.showHUD() {
		s.drawHUD(screen)
	}
}

// drawHUD 绘制操作提示和每个持盾者的护盾状态
func (s *ShieldDemoScene) drawHUD(screen *ebiten.Image) {
	face := s.resourceManager.DebugFontFace()

	for i, line := range s.HUDLines() {
		op := &text.DrawOptions{}
		op.GeoM.Translate(config.HUDMarginX, config.HUDMarginY+float64(i)*config.HUDLineHeight)
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, line, face, op)
	}
}

// HUDLines 返回调试信息文本（每行一条）
func (s *ShieldDemoScene) HUDLines() []string {
	lines := []string{
		"Space: shield  C: clone  S: sound  H: HUD  R: reset  F11: fullscreen",
	}

	soundState := "on"
	if s.settingsManager != nil && !s.settingsManager.GetSettings().SoundEnabled {
		soundState = "off"
	}
	lines = append(lines, fmt.Sprintf("Bearers: %d/%d  Entities: %d  Sound: %s",
		len(s.bearers), config.MaxBearers, s.entityManager.EntityCount(), soundState))

	bearers := append([]ecs.EntityID(nil), s.bearers...)
	sort.Slice(bearers, func(i, j int) bool { return bearers[i] < bearers[j] })

	for _, bearer := range bearers {
		shield, ok := ecs.GetComponent[*components.ShieldComponent](s.entityManager, bearer)
		if !ok {
			continue
		}

		name := fmt.Sprintf("Bearer %d", bearer)
		if marker, ok := ecs.GetComponent[*components.ShieldBearerComponent](s.entityManager, bearer); ok {
			name = marker.Name
		}

		line := fmt.Sprintf("%-10s %-9s %5.2fs", name, shield.State, shield.StateTime)
		if scale, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, shield.VisualEntity); ok {
			line += fmt.Sprintf("  scale %.2f", scale.ScaleX)
		}
		lines = append(lines, line)
	}

	return lines
}

// Bearers 返回持盾者实体列表
func (s *ShieldDemoScene) Bearers() []ecs.EntityID {
	return s.bearers
}

// SaveOnExit 退出时保存设置
func (s *ShieldDemoScene) SaveOnExit() bool {
	if s.settingsManager == nil {
		return true
	}
	if err := s.settingsManager.Save(); err != nil {
		log.Printf("[ShieldDemoScene] Warning: Failed to save settings on exit: %v", err)
		return false
	}
	return true
}
