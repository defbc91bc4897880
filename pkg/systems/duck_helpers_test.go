package systems

import (
	"testing"

	"github.com/decker502/duckhunt/pkg/components"
	"github.com/decker502/duckhunt/pkg/config"
	"github.com/decker502/duckhunt/pkg/ecs"
	"github.com/decker502/duckhunt/pkg/game"
	"github.com/decker502/duckhunt/pkg/utils"
)

type countingCounter struct {
	removed int
}

func (c *countingCounter) TargetRemoved() {
	c.removed++
}

type recordingDeaths struct {
	killed []ecs.EntityID
	at     []utils.Vec3
}

func (r *recordingDeaths) OnTargetKilled(id ecs.EntityID, pos utils.Vec3) {
	r.killed = append(r.killed, id)
	r.at = append(r.at, pos)
}

// addDuck 直接放置一个默认尺寸的目标
func addDuck(em *ecs.EntityManager, pos utils.Vec3) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TargetComponent{
		Radius:      0.5,
		BasePoints:  100,
		HeadOffsetY: 0.4,
		HeadRadius:  0.25,
		BeakOffsetX: 0.31,
		BeakOffsetY: 0.4,
		BeakRadius:  0.12,
		SpeedFactor: 1,
	})
	ecs.AddComponent(em, id, &components.TransformComponent{Position: pos})
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: 5, WarningTime: 1.5})
	return id
}

func startedRun(t *testing.T) *game.RunState {
	t.Helper()
	rs := game.NewRunState(config.DefaultGameplayConfig())
	if !rs.Start() {
		t.Fatal("failed to start run")
	}
	return rs
}

func getTarget(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.TargetComponent {
	t.Helper()
	target, ok := ecs.GetComponent[*components.TargetComponent](em, id)
	if !ok {
		t.Fatalf("entity %d has no TargetComponent", id)
	}
	return target
}

func getTargetOK(em *ecs.EntityManager, id ecs.EntityID) (*components.TargetComponent, bool) {
	return ecs.GetComponent[*components.TargetComponent](em, id)
}
