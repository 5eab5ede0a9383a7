// Package worldtest is a small black-box helper for driving a world via
// its exported API, so behavior tests can live outside the world package.
package worldtest

import (
	"testing"

	"voxelquest.ai/internal/protocol"
	"voxelquest.ai/internal/sim/catalogs"
	"voxelquest.ai/internal/sim/tuning"
	"voxelquest.ai/internal/sim/world"
)

type Harness struct {
	T *testing.T
	W *world.World

	PlayerID string

	// Events accumulates everything emitted since the last ClearEvents.
	Events []protocol.Event
}

// New builds a world with default tuning/catalogs and a standard player
// (100 hp, speed 5, power 10, defense 5, one basic skill).
func New(t *testing.T, seed int64) *Harness {
	t.Helper()
	h := NewEmpty(t, seed)
	p, err := h.W.SpawnPlayer(protocol.PlayerDescriptor{
		Name: "hero",
		Pos:  [3]float64{0, 0, 0},
		Stats: protocol.StatBlock{
			MaxHP: 100, Speed: 5, Power: 10, Defense: 5,
		},
		Skills: []protocol.SkillSpec{
			{Name: "bolt", Kind: "basic", Damage: 20, Color: "#88ddff"},
		},
	})
	if err != nil {
		t.Fatalf("spawn player: %v", err)
	}
	h.PlayerID = p.ID
	h.ClearEvents()
	return h
}

// NewEmpty builds a world with no entities at all.
func NewEmpty(t *testing.T, seed int64) *Harness {
	t.Helper()
	w, err := world.New(world.Config{ID: "test", Seed: seed}, tuning.Default(), catalogs.Default())
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	return &Harness{T: t, W: w}
}

// SpawnEnemy registers a melee enemy at pos with the given core stats.
func (h *Harness) SpawnEnemy(name string, pos [3]float64, maxHP, speed, power, defense float64) *world.Entity {
	h.T.Helper()
	e, err := h.W.SpawnEntity(protocol.EntityDescriptor{
		Name: name,
		Kind: "ENEMY",
		Pos:  pos,
		Stats: protocol.StatBlock{
			MaxHP: maxHP, Speed: speed, Power: power, Defense: defense,
		},
	})
	if err != nil {
		h.T.Fatalf("spawn enemy %s: %v", name, err)
	}
	return e
}

// SpawnRangedEnemy is SpawnEnemy with the ranged flag set.
func (h *Harness) SpawnRangedEnemy(name string, pos [3]float64, maxHP, speed, power, defense float64) *world.Entity {
	h.T.Helper()
	e, err := h.W.SpawnEntity(protocol.EntityDescriptor{
		Name: name,
		Kind: "ENEMY",
		Pos:  pos,
		Stats: protocol.StatBlock{
			MaxHP: maxHP, Speed: speed, Power: power, Defense: defense,
			Class: "frost mage", IsRanged: true,
		},
	})
	if err != nil {
		h.T.Fatalf("spawn enemy %s: %v", name, err)
	}
	return e
}

func (h *Harness) Player() *world.Entity {
	p := h.W.Player()
	if p == nil {
		h.T.Fatalf("no player")
	}
	return p
}

// Step advances one tick and collects its events.
func (h *Harness) Step(delta float64) {
	h.Events = append(h.Events, h.W.Tick(delta)...)
}

// StepFor advances in fixed dt increments until seconds have elapsed.
func (h *Harness) StepFor(seconds, dt float64) {
	for t := 0.0; t < seconds; t += dt {
		h.Step(dt)
	}
}

func (h *Harness) ClearEvents() { h.Events = nil }

// EventsOf filters collected events by type.
func (h *Harness) EventsOf(typ string) []protocol.Event {
	var out []protocol.Event
	for _, ev := range h.Events {
		if ev["type"] == typ {
			out = append(out, ev)
		}
	}
	return out
}
