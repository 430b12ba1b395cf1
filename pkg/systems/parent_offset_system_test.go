package systems

import (
	"testing"

	"github.com/decker502/tcgame/pkg/components"
	"github.com/decker502/tcgame/pkg/ecs"
)

func TestParentOffsetFollowsParent(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewParentOffsetSystem(em)

	parent := em.CreateEntity()
	parentPos := &components.PositionComponent{X: 100, Y: 200}
	ecs.AddComponent(em, parent, parentPos)

	child := em.CreateEntity()
	childPos := &components.PositionComponent{}
	ecs.AddComponent(em, child, childPos)
	ecs.AddComponent(em, child, &components.ParentOffsetComponent{
		Parent:  parent,
		OffsetX: -5,
		OffsetY: 20,
	})

	system.Update(1.0 / 60.0)

	if childPos.X != 95 || childPos.Y != 220 {
		t.Errorf("child position = (%v, %v), want (95, 220)", childPos.X, childPos.Y)
	}

	// 父实体移动后子实体跟随
	parentPos.X = 300
	system.Update(1.0 / 60.0)

	if childPos.X != 295 {
		t.Errorf("child X = %v after parent moved, want 295", childPos.X)
	}
}

func TestParentOffsetDestroyWithParent(t *testing.T) {
	tests := []struct {
		name              string
		destroyWithParent bool
		wantDestroyed     bool
	}{
		{"随父实体销毁", true, true},
		{"父实体销毁后保留", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			system := NewParentOffsetSystem(em)

			parent := em.CreateEntity()
			ecs.AddComponent(em, parent, &components.PositionComponent{X: 10, Y: 10})

			child := em.CreateEntity()
			ecs.AddComponent(em, child, &components.PositionComponent{X: 10, Y: 30})
			ecs.AddComponent(em, child, &components.ParentOffsetComponent{
				Parent:            parent,
				OffsetY:           20,
				DestroyWithParent: tt.destroyWithParent,
			})

			em.DestroyEntity(parent)
			system.Update(1.0 / 60.0)

			if got := em.IsMarkedForDestroy(child); got != tt.wantDestroyed {
				t.Errorf("child marked for destroy = %v, want %v", got, tt.wantDestroyed)
			}

			// 重复 Update 不会重复标记
			system.Update(1.0 / 60.0)
			em.RemoveMarkedEntities()

			if em.EntityExists(child) == tt.wantDestroyed {
				t.Errorf("child exists = %v after cleanup", em.EntityExists(child))
			}
		})
	}
}
