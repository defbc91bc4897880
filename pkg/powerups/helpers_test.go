package powerups

import (
	"sort"

	"github.com/decker502/duckhunt/pkg/ecs"
	"github.com/decker502/duckhunt/pkg/fx"
	"github.com/decker502/duckhunt/pkg/utils"
)

type hitCall struct {
	id         ecs.EntityID
	multiplier float64
}

// fakeWorld 记录效果对世界的所有调用
type fakeWorld struct {
	targets map[ecs.EntityID]utils.Vec3
	hits    []hitCall
	lives   int
	frozen  float64
	fb      *recordingFeedback
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		targets: make(map[ecs.EntityID]utils.Vec3),
		fb:      &recordingFeedback{},
	}
}

func (w *fakeWorld) TargetsInRadius(center utils.Vec3, radius float64) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0)
	for id, pos := range w.targets {
		if pos.Dist(center) <= radius {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (w *fakeWorld) HitTarget(id ecs.EntityID, multiplier float64) bool {
	if _, ok := w.targets[id]; !ok {
		return false
	}
	delete(w.targets, id)
	w.hits = append(w.hits, hitCall{id: id, multiplier: multiplier})
	return true
}

func (w *fakeWorld) AddLife(n int) {
	w.lives += n
}

func (w *fakeWorld) Freeze(seconds float64) {
	w.frozen = seconds
}

func (w *fakeWorld) Feedback() fx.Feedback {
	return w.fb
}

type recordingFeedback struct {
	effects []fx.EffectKind
	sounds  []string
	shakes  int
	flashes int
	tints   []float64
}

func (r *recordingFeedback) PlayEffect(kind fx.EffectKind, pos utils.Vec3, radius float64) {
	r.effects = append(r.effects, kind)
}

func (r *recordingFeedback) PlaySound(soundID string) {
	r.sounds = append(r.sounds, soundID)
}

func (r *recordingFeedback) Shake(duration, magnitude float64) {
	r.shakes++
}

func (r *recordingFeedback) Flash() {
	r.flashes++
}

func (r *recordingFeedback) Tint(duration float64) {
	r.tints = append(r.tints, duration)
}

func (r *recordingFeedback) SetCursor(visible, locked bool) {}

// testDefinitions 与 data/powerups.yaml 一致的六个模板
func testDefinitions() []Definition {
	return []Definition{
		{ID: "ducktonium_detonator", Name: "Ducktonium Detonator", Kind: ComboExplosion, Level: 1, Upgradeable: true},
		{ID: "oopsie_shield", Name: "Oopsie Shield", Kind: MissForgiveness, Level: 1, Upgradeable: true},
		{ID: "quacksplosive_tendencies", Name: "Quacksplosive Tendencies", Kind: TargetDeathExplosion, Level: 1, Upgradeable: true},
		{ID: "duck_dilation", Name: "Duck Dilation", Kind: TargetSpawnSlow, Level: 1, Upgradeable: true},
		{ID: "one_more_quack", Name: "One More Quack", Kind: Acquisition, Level: 1},
		{ID: "carnival_quake", Name: "Carnival Quake", Kind: InstantFreeze, Level: 1},
	}
}

func newTestManager(seed int64) (*Manager, *fakeWorld) {
	lib, err := NewLibraryFromDefinitions(testDefinitions())
	if err != nil {
		panic(err)
	}
	world := newFakeWorld()
	return NewManager(lib, world, utils.NewRandom(seed), DefaultTuning()), world
}

func mustGet(m *Manager, kind Kind) Definition {
	def, ok := m.Library().Get(kind)
	if !ok {
		panic("missing definition " + kind.String())
	}
	return def
}
