package systems

import (
	"math"
	"testing"

	"github.com/decker502/duckhunt/pkg/components"
	"github.com/decker502/duckhunt/pkg/config"
	"github.com/decker502/duckhunt/pkg/ecs"
	"github.com/decker502/duckhunt/pkg/utils"
)

func testCamera() *Camera {
	return NewCamera(config.DefaultGameplayConfig().Camera)
}

func TestCameraProject(t *testing.T) {
	cam := testCamera()

	x, y, scale, ok := cam.Project(utils.Vec3{X: 0, Y: 2, Z: 12})
	if !ok {
		t.Fatal("arena centre should be in front of the camera")
	}
	if x != 640 || y != 360 {
		t.Errorf("centre projected to (%v, %v), want (640, 360)", x, y)
	}
	if math.Abs(scale-640.0/12) > 1e-9 {
		t.Errorf("scale %v, want %v", scale, 640.0/12)
	}

	x, y, _, _ = cam.Project(utils.Vec3{X: 1, Y: 3, Z: 12})
	if x <= 640 || y >= 360 {
		t.Errorf("right/up should map to right/up on screen, got (%v, %v)", x, y)
	}

	if _, _, _, ok := cam.Project(utils.Vec3{Z: 30}); ok {
		t.Error("point behind the camera should not project")
	}

	cam.ShakeOffset = utils.Vec3{X: 0.1}
	x, _, _, _ = cam.Project(utils.Vec3{X: 0, Y: 2, Z: 12})
	if x >= 640 {
		t.Errorf("shaking the camera right should move the image left, got x=%v", x)
	}
}

func screenOf(t *testing.T, cam *Camera, p utils.Vec3) (float64, float64) {
	t.Helper()
	x, y, _, ok := cam.Project(p)
	if !ok {
		t.Fatalf("point %v not visible", p)
	}
	return x, y
}

func TestProjectionHitTesterZones(t *testing.T) {
	em := ecs.NewEntityManager()
	cam := testCamera()
	hits := NewProjectionHitTester(em, cam)

	pos := utils.Vec3{X: 0, Y: 2, Z: 12}
	id := addDuck(em, pos)

	tests := []struct {
		name  string
		aim   utils.Vec3
		want  components.HitZone
		isHit bool
	}{
		{"身体", pos, components.HitZoneBody, true},
		{"头部", pos.Add(utils.Vec3{Y: 0.4}), components.HitZoneHead, true},
		{"鸭嘴", pos.Add(utils.Vec3{X: 0.31, Y: 0.4}), components.HitZoneBeak, true},
		{"脱靶", pos.Add(utils.Vec3{X: 3}), components.HitZoneNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := screenOf(t, cam, tt.aim)
			res := hits.HitTest(x, y)
			if res.Hit != tt.isHit || res.Zone != tt.want {
				t.Fatalf("HitTest = %+v, want hit=%v zone=%s", res, tt.isHit, tt.want)
			}
			if res.Hit && (res.Target != id || res.Position != pos) {
				t.Errorf("unexpected target %d at %v", res.Target, res.Position)
			}
		})
	}
}

func TestProjectionHitTesterNearestWins(t *testing.T) {
	em := ecs.NewEntityManager()
	cam := testCamera()
	hits := NewProjectionHitTester(em, cam)

	far := addDuck(em, utils.Vec3{X: 0, Y: 2, Z: 12})
	near := addDuck(em, utils.Vec3{X: 0, Y: 2, Z: 14})

	res := hits.HitTest(640, 360)
	if !res.Hit || res.Target != near {
		t.Errorf("expected nearest target %d, got %+v", near, res)
	}

	getTarget(t, em, near).Removed = true
	res = hits.HitTest(640, 360)
	if !res.Hit || res.Target != far {
		t.Errorf("removed target must be ignored, got %+v", res)
	}
}

func TestTargetsInRadius(t *testing.T) {
	em := ecs.NewEntityManager()
	query := NewSpatialQuery(em)

	a := addDuck(em, utils.Vec3{X: 2})
	b := addDuck(em, utils.Vec3{X: 1})
	c := addDuck(em, utils.Vec3{X: 2.4}) // 球心在 2 之外，但身体与球相交
	d := addDuck(em, utils.Vec3{X: 5})
	removed := addDuck(em, utils.Vec3{})
	getTarget(t, em, removed).Removed = true

	got := query.TargetsInRadius(utils.Vec3{}, 2)
	want := []ecs.EntityID{b, a, c}
	if len(got) != len(want) {
		t.Fatalf("TargetsInRadius = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %d, want %d", i, got[i], want[i])
		}
	}
	for _, id := range got {
		if id == d || id == removed {
			t.Errorf("unexpected target %d in result", id)
		}
	}
}
