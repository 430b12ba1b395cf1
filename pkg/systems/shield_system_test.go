package systems

import (
	"math"
	"testing"

	"github.com/decker502/tcgame/pkg/components"
	"github.com/decker502/tcgame/pkg/config"
	"github.com/decker502/tcgame/pkg/ecs"
	"github.com/decker502/tcgame/pkg/game"
)

// fakeShieldScene 记录 ShieldSystem 对场景的所有调用
type fakeShieldScene struct {
	em *ecs.EntityManager

	created   []ecs.EntityID
	destroyed []ecs.EntityID
	scales    map[ecs.EntityID]float64
	events    []string

	// 回调用于在钩子执行的瞬间检查组件状态
	onCreate  func(owner ecs.EntityID)
	onDestroy func(visual ecs.EntityID)
}

func newFakeShieldScene(em *ecs.EntityManager) *fakeShieldScene {
	return &fakeShieldScene{
		em:     em,
		scales: make(map[ecs.EntityID]float64),
	}
}

func (f *fakeShieldScene) CreateShieldVisual(owner ecs.EntityID) ecs.EntityID {
	if f.onCreate != nil {
		f.onCreate(owner)
	}
	id := f.em.CreateNamedEntity("Shield Actor")
	f.created = append(f.created, id)
	f.events = append(f.events, "create")
	return id
}

func (f *fakeShieldScene) DestroyShieldVisual(visual ecs.EntityID) {
	if f.onDestroy != nil {
		f.onDestroy(visual)
	}
	f.em.DestroyEntity(visual)
	f.destroyed = append(f.destroyed, visual)
	f.events = append(f.events, "destroy")
}

func (f *fakeShieldScene) SetShieldVisualScale(visual ecs.EntityID, scale float64) {
	f.scales[visual] = scale
}

// fakeSoundPlayer 记录播放的音效
type fakeSoundPlayer struct {
	played []string
}

func (f *fakeSoundPlayer) PlaySound(soundID string) bool {
	f.played = append(f.played, soundID)
	return true
}

// newTestShieldComponent 使用默认配置创建护盾组件
func newTestShieldComponent() *components.ShieldComponent {
	return components.NewShieldComponent(config.DefaultShieldConfig())
}

// newTestShieldSystem 创建护盾系统，失败时终止测试
func newTestShieldSystem(t *testing.T, em *ecs.EntityManager, scene ShieldVisualScene, sound ShieldSoundPlayer) *ShieldSystem {
	t.Helper()
	system, err := NewShieldSystem(em, scene, sound)
	if err != nil {
		t.Fatalf("NewShieldSystem() error = %v", err)
	}
	return system
}

// setupShieldTest 创建系统、场景和一个持盾实体
func setupShieldTest(t *testing.T) (*ecs.EntityManager, *ShieldSystem, *fakeShieldScene, ecs.EntityID, *components.ShieldComponent) {
	em := ecs.NewEntityManager()
	scene := newFakeShieldScene(em)
	system := newTestShieldSystem(t, em, scene, nil)

	owner := em.CreateEntity()
	shield := newTestShieldComponent()
	ecs.AddComponent(em, owner, shield)

	return em, system, scene, owner, shield
}

func assertScale(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 0.001 {
		t.Errorf("scale = %v, want %v", got, want)
	}
}

func TestShieldStartsInactive(t *testing.T) {
	_, system, scene, owner, shield := setupShieldTest(t)

	if system.IsActive(owner) {
		t.Error("Shield should start inactive")
	}

	// 未激活时 Update 不产生任何效果
	system.Update(1.0)

	if shield.State != components.ShieldStateInactive {
		t.Errorf("State = %v, want Inactive", shield.State)
	}
	if shield.StateTime != 0 {
		t.Errorf("Inactive StateTime should not accumulate, got %v", shield.StateTime)
	}
	if len(scene.created) != 0 {
		t.Error("Update before Activate should not create a visual")
	}
}

func TestShieldActivateCreatesOneVisual(t *testing.T) {
	_, system, scene, owner, shield := setupShieldTest(t)

	system.Activate(owner)

	if shield.State != components.ShieldStateLoading {
		t.Fatalf("State = %v, want Loading", shield.State)
	}
	if !system.IsActive(owner) {
		t.Error("IsActive() should be true after Activate")
	}
	if len(scene.created) != 1 {
		t.Fatalf("created %d visuals, want 1", len(scene.created))
	}
	if shield.VisualEntity != scene.created[0] {
		t.Errorf("VisualEntity = %d, want %d", shield.VisualEntity, scene.created[0])
	}
	assertScale(t, scene.scales[shield.VisualEntity], 0)
}

func TestShieldActivateWhileActiveIsIgnored(t *testing.T) {
	states := []struct {
		name    string
		advance []float64
		want    components.ShieldState
	}{
		{"Loading", nil, components.ShieldStateLoading},
		{"Loaded", []float64{0.25}, components.ShieldStateLoaded},
		{"Unloading", []float64{0.25, 5.0}, components.ShieldStateUnloading},
	}

	for _, tt := range states {
		t.Run(tt.name, func(t *testing.T) {
			_, system, scene, owner, shield := setupShieldTest(t)
			system.Activate(owner)
			for _, dt := range tt.advance {
				system.Update(dt)
			}
			if shield.State != tt.want {
				t.Fatalf("setup reached %v, want %v", shield.State, tt.want)
			}

			visual := shield.VisualEntity
			stateTime := shield.StateTime

			system.Activate(owner)

			if shield.State != tt.want {
				t.Errorf("State changed to %v after repeated Activate", shield.State)
			}
			if shield.StateTime != stateTime {
				t.Errorf("StateTime changed from %v to %v", stateTime, shield.StateTime)
			}
			if shield.VisualEntity != visual {
				t.Error("VisualEntity changed after repeated Activate")
			}
			if len(scene.created) != 1 {
				t.Errorf("created %d visuals, want 1", len(scene.created))
			}
		})
	}
}

func TestShieldActivateWithoutComponent(t *testing.T) {
	em := ecs.NewEntityManager()
	scene := newFakeShieldScene(em)
	system := newTestShieldSystem(t, em, scene, nil)

	plain := em.CreateEntity()
	system.Activate(plain)

	if system.IsActive(plain) {
		t.Error("Entity without shield should never be active")
	}
	if len(scene.created) != 0 {
		t.Error("Activate on entity without shield should not create a visual")
	}
}

func TestShieldUpdateDispatchesOncePerCall(t *testing.T) {
	_, system, _, owner, shield := setupShieldTest(t)
	system.Activate(owner)

	system.Update(0.05)
	if math.Abs(shield.StateTime-0.05) > 1e-9 {
		t.Errorf("StateTime = %v after one Update(0.05), want 0.05", shield.StateTime)
	}

	system.Update(0.05)
	if math.Abs(shield.StateTime-0.1) > 1e-9 {
		t.Errorf("StateTime = %v after two Update(0.05), want 0.1", shield.StateTime)
	}

	// 状态切换发生的那一帧不会继续执行新状态的处理函数
	system.Update(0.15)
	if shield.State != components.ShieldStateLoaded {
		t.Fatalf("State = %v, want Loaded", shield.State)
	}
	if shield.StateTime != 0 {
		t.Errorf("StateTime should reset to 0 on transition, got %v", shield.StateTime)
	}
}

func TestShieldLoadingScale(t *testing.T) {
	_, system, scene, owner, shield := setupShieldTest(t)
	system.Activate(owner)
	visual := shield.VisualEntity

	// elapsed = 0
	system.Update(0)
	assertScale(t, scene.scales[visual], 0.1)
	if shield.State != components.ShieldStateLoading {
		t.Fatalf("State = %v, want Loading", shield.State)
	}

	// elapsed = 0.1（中点）
	system.Update(0.1)
	assertScale(t, scene.scales[visual], 0.55)

	// elapsed = 0.2：缩放到 1.0 并进入 Loaded
	system.Update(0.1)
	assertScale(t, scene.scales[visual], 1.0)
	if shield.State != components.ShieldStateLoaded {
		t.Errorf("State = %v, want Loaded", shield.State)
	}
}

func TestShieldLoadingScaleClampedOnOvershoot(t *testing.T) {
	_, system, scene, owner, shield := setupShieldTest(t)
	system.Activate(owner)
	visual := shield.VisualEntity

	// 一帧跨过整个展开时长
	system.Update(0.5)

	assertScale(t, scene.scales[visual], 1.0)
	if shield.State != components.ShieldStateLoaded {
		t.Errorf("State = %v, want Loaded", shield.State)
	}
}

func TestShieldLoadedKeepsScale(t *testing.T) {
	_, system, scene, owner, shield := setupShieldTest(t)
	system.Activate(owner)
	system.Update(0.2)
	visual := shield.VisualEntity

	scene.scales[visual] = -1 // 哨兵值：Loaded 阶段不应写入缩放
	system.Update(2.0)
	system.Update(2.0)

	if scene.scales[visual] != -1 {
		t.Errorf("Loaded state should not change scale, got %v", scene.scales[visual])
	}
	if shield.State != components.ShieldStateLoaded {
		t.Errorf("State = %v, want Loaded", shield.State)
	}

	system.Update(1.0)
	if shield.State != components.ShieldStateUnloading {
		t.Errorf("State = %v after 5s, want Unloading", shield.State)
	}
}

func TestShieldUnloadingScaleAndDestroy(t *testing.T) {
	em, system, scene, owner, shield := setupShieldTest(t)
	system.Activate(owner)
	system.Update(0.2) // → Loaded
	system.Update(5.0) // → Unloading
	if shield.State != components.ShieldStateUnloading {
		t.Fatalf("State = %v, want Unloading", shield.State)
	}
	visual := shield.VisualEntity

	// elapsed = 0
	system.Update(0)
	assertScale(t, scene.scales[visual], 1.0)

	// elapsed = 0.1
	system.Update(0.1)
	assertScale(t, scene.scales[visual], 0.55)

	// elapsed = 0.2：缩放到 0.1，回到 Inactive 并销毁护盾实体
	system.Update(0.1)
	assertScale(t, scene.scales[visual], 0.1)

	if shield.State != components.ShieldStateInactive {
		t.Errorf("State = %v, want Inactive", shield.State)
	}
	if shield.VisualEntity != 0 {
		t.Errorf("VisualEntity = %d, want 0", shield.VisualEntity)
	}
	if len(scene.destroyed) != 1 || scene.destroyed[0] != visual {
		t.Errorf("destroyed = %v, want [%d]", scene.destroyed, visual)
	}

	em.RemoveMarkedEntities()
	if em.EntityExists(visual) {
		t.Error("Shield visual should be removed from the entity manager")
	}
}

func TestShieldFullCycle(t *testing.T) {
	_, system, scene, owner, shield := setupShieldTest(t)
	cfg := config.DefaultShieldConfig()

	system.Activate(owner)

	const dt = 1.0 / 60.0
	elapsed := 0.0
	for i := 0; i < 1000 && system.IsActive(owner); i++ {
		system.Update(dt)
		elapsed += dt
	}

	if system.IsActive(owner) {
		t.Fatal("Shield should be inactive after a full cycle")
	}
	if elapsed < cfg.TotalDuration()-0.001 {
		t.Errorf("cycle finished after %.3fs, want >= %.3fs", elapsed, cfg.TotalDuration())
	}
	if shield.VisualEntity != 0 {
		t.Error("No visual should remain after a full cycle")
	}
	if len(scene.created) != 1 || len(scene.destroyed) != 1 {
		t.Errorf("created=%d destroyed=%d, want 1 and 1", len(scene.created), len(scene.destroyed))
	}

	// 护盾可以再次激活
	system.Activate(owner)
	if !system.IsActive(owner) {
		t.Error("Shield should be reusable after returning to Inactive")
	}
	if len(scene.created) != 2 {
		t.Errorf("created %d visuals after reactivation, want 2", len(scene.created))
	}
}

func TestShieldHookOrdering(t *testing.T) {
	_, system, scene, owner, shield := setupShieldTest(t)

	// 进入钩子执行时状态字段仍是旧状态
	scene.onCreate = func(ecs.EntityID) {
		if shield.State != components.ShieldStateInactive {
			t.Errorf("enter hook ran after state update: State = %v", shield.State)
		}
	}
	// 离开钩子执行时状态字段仍是 Unloading
	scene.onDestroy = func(ecs.EntityID) {
		if shield.State != components.ShieldStateUnloading {
			t.Errorf("leave hook ran after state update: State = %v", shield.State)
		}
	}

	system.Activate(owner)
	system.Update(0.2)
	system.Update(5.0)
	system.Update(0.2)

	want := []string{"create", "destroy"}
	if len(scene.events) != len(want) {
		t.Fatalf("events = %v, want %v", scene.events, want)
	}
	for i := range want {
		if scene.events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, scene.events[i], want[i])
		}
	}
}

func TestShieldVisualInvariant(t *testing.T) {
	_, system, _, owner, shield := setupShieldTest(t)

	check := func(step string) {
		t.Helper()
		hasVisual := shield.VisualEntity != 0
		if hasVisual != shield.IsActive() {
			t.Errorf("%s: VisualEntity=%d but State=%v", step, shield.VisualEntity, shield.State)
		}
	}

	check("initial")
	system.Activate(owner)
	check("after Activate")
	for i := 0; i < 400; i++ {
		system.Update(1.0 / 60.0)
		check(shield.State.String())
	}
}

func TestShieldMultipleOwnersAreIndependent(t *testing.T) {
	em, system, scene, first, firstShield := setupShieldTest(t)

	second := em.CreateEntity()
	secondShield := newTestShieldComponent()
	ecs.AddComponent(em, second, secondShield)

	system.Activate(first)
	system.Update(0.2)

	if firstShield.State != components.ShieldStateLoaded {
		t.Errorf("first shield State = %v, want Loaded", firstShield.State)
	}
	if secondShield.State != components.ShieldStateInactive {
		t.Errorf("second shield State = %v, want Inactive", secondShield.State)
	}

	system.Activate(second)
	if len(scene.created) != 2 {
		t.Fatalf("created %d visuals, want 2", len(scene.created))
	}
	if firstShield.VisualEntity == secondShield.VisualEntity {
		t.Error("each owner should own its own visual")
	}
}

func TestShieldCloneIsInactive(t *testing.T) {
	_, system, _, owner, shield := setupShieldTest(t)
	system.Activate(owner)
	system.Update(0.2)
	system.Update(1.0)

	clone := shield.Clone()
	if clone.IsActive() {
		t.Errorf("clone State = %v, want Inactive", clone.State)
	}
	if clone.VisualEntity != 0 {
		t.Error("clone should not share the source visual")
	}
	if shield.State != components.ShieldStateLoaded {
		t.Error("cloning should not affect the source shield")
	}
}

func TestShieldPlaysSounds(t *testing.T) {
	em := ecs.NewEntityManager()
	scene := newFakeShieldScene(em)
	sound := &fakeSoundPlayer{}
	system := newTestShieldSystem(t, em, scene, sound)

	owner := em.CreateEntity()
	ecs.AddComponent(em, owner, newTestShieldComponent())

	system.Activate(owner)
	system.Update(0.2)
	system.Update(5.0)

	want := []string{game.SoundShieldUp, game.SoundShieldDown}
	if len(sound.played) != len(want) {
		t.Fatalf("played = %v, want %v", sound.played, want)
	}
	for i := range want {
		if sound.played[i] != want[i] {
			t.Errorf("played[%d] = %q, want %q", i, sound.played[i], want[i])
		}
	}
}

func TestNewShieldSystemNilArgs(t *testing.T) {
	em := ecs.NewEntityManager()

	if _, err := NewShieldSystem(nil, newFakeShieldScene(em), nil); err == nil {
		t.Error("expected error for nil entity manager")
	}
	if _, err := NewShieldSystem(em, nil, nil); err == nil {
		t.Error("expected error for nil scene")
	}
	if _, err := NewShieldSystem(em, newFakeShieldScene(em), nil); err != nil {
		t.Errorf("nil sound player should be allowed, got %v", err)
	}
}

// TestShieldZeroValueComponentUsesDefaults 零值组件激活后使用默认时长，缩放始终有限且在区间内
func TestShieldZeroValueComponentUsesDefaults(t *testing.T) {
	em := ecs.NewEntityManager()
	scene := newFakeShieldScene(em)
	system := newTestShieldSystem(t, em, scene, nil)

	owner := em.CreateEntity()
	shield := &components.ShieldComponent{}
	ecs.AddComponent(em, owner, shield)

	system.Activate(owner)
	if shield.LoadingTime != config.DefaultShieldLoadingTime || shield.UnloadingTime != config.DefaultShieldUnloadingTime {
		t.Fatalf("durations = %v/%v, want defaults", shield.LoadingTime, shield.UnloadingTime)
	}

	visual := shield.VisualEntity
	checkScale := func() {
		t.Helper()
		got := scene.scales[visual]
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("scale = %v in %s, want finite", got, shield.State)
		}
		if got < config.DefaultShieldMinScale-1e-9 || got > config.DefaultShieldMaxScale+1e-9 {
			t.Errorf("scale = %v in %s, want within [%v, %v]", got, shield.State,
				config.DefaultShieldMinScale, config.DefaultShieldMaxScale)
		}
	}

	// 第一帧 dt=0 也不能产生 NaN
	system.Update(0)
	if shield.State != components.ShieldStateLoading {
		t.Errorf("Update(0) should stay in Loading, got %v", shield.State)
	}
	checkScale()

	for i := 0; i < 1000 && shield.IsActive(); i++ {
		system.Update(config.FixedDeltaTime)
		if shield.State == components.ShieldStateLoading || shield.State == components.ShieldStateUnloading {
			checkScale()
		}
	}

	if shield.IsActive() {
		t.Fatal("zero-value shield should finish its cycle")
	}
	if len(scene.destroyed) != 1 || scene.destroyed[0] != visual {
		t.Errorf("destroyed = %v, want [%d]", scene.destroyed, visual)
	}
}
