package world

import (
	"testing"

	"voxelquest.ai/internal/protocol"
	"voxelquest.ai/internal/sim/catalogs"
	"voxelquest.ai/internal/sim/tuning"
)

func newTestWorld(t *testing.T, seed int64) *World {
	t.Helper()
	w, err := New(Config{ID: "test", Seed: seed}, tuning.Default(), catalogs.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func spawnTestPlayer(t *testing.T, w *World, pos [3]float64) *Entity {
	t.Helper()
	p, err := w.SpawnPlayer(protocol.PlayerDescriptor{
		Name: "hero",
		Pos:  pos,
		Stats: protocol.StatBlock{
			MaxHP: 100, Speed: 5, Power: 10, Defense: 5,
		},
		Skills: []protocol.SkillSpec{
			{Name: "bolt", Kind: "basic", Damage: 20, Color: "#88ddff"},
		},
	})
	if err != nil {
		t.Fatalf("SpawnPlayer: %v", err)
	}
	return p
}

func spawnTestEnemy(t *testing.T, w *World, name string, pos [3]float64, maxHP, speed, power, defense float64) *Entity {
	t.Helper()
	e, err := w.SpawnEntity(protocol.EntityDescriptor{
		Name: name,
		Kind: "ENEMY",
		Pos:  pos,
		Stats: protocol.StatBlock{
			MaxHP: maxHP, Speed: speed, Power: power, Defense: defense,
		},
	})
	if err != nil {
		t.Fatalf("SpawnEntity %s: %v", name, err)
	}
	return e
}

func eventsOf(evs []protocol.Event, typ string) []protocol.Event {
	var out []protocol.Event
	for _, ev := range evs {
		if ev["type"] == typ {
			out = append(out, ev)
		}
	}
	return out
}

// takeEvents grabs events emitted outside a tick (ops between frames).
func takeEvents(w *World) []protocol.Event {
	evs := w.events
	w.events = nil
	return evs
}
