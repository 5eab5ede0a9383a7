package world

import (
	"math"
	"testing"
)

func TestCastSkillHitsNearestHostile(t *testing.T) {
	w := newTestWorld(t, 1)
	spawnTestPlayer(t, w, [3]float64{0, 0, 0})
	near := spawnTestEnemy(t, w, "near", [3]float64{8, 0, 0}, 100, 3, 8, 5)
	far := spawnTestEnemy(t, w, "far", [3]float64{15, 0, 0}, 100, 3, 8, 5)
	takeEvents(w)

	if !w.CastSkill(0) {
		t.Fatalf("cast should succeed with a hostile in range")
	}
	// bolt 20 - defense 5*0.2 = 19.
	if math.Abs(near.Stats.HP-81) > 1e-9 {
		t.Fatalf("near hp = %v, want 81", near.Stats.HP)
	}
	if far.Stats.HP != 100 {
		t.Fatalf("far enemy was hit")
	}
	if got := len(eventsOf(takeEvents(w), "SKILL_CAST")); got != 1 {
		t.Fatalf("want 1 cast event, got %d", got)
	}
}

func TestCastSkillGlobalCooldown(t *testing.T) {
	w := newTestWorld(t, 1)
	spawnTestPlayer(t, w, [3]float64{0, 0, 0})
	spawnTestEnemy(t, w, "grunt", [3]float64{8, 0, 0}, 1000, 3, 8, 5)

	if !w.CastSkill(0) {
		t.Fatalf("first cast should succeed")
	}
	if w.CastSkill(0) {
		t.Fatalf("second cast inside the global cooldown should fail")
	}
	// 0.9s of ticks clears the 0.8s cooldown.
	for i := 0; i < 9; i++ {
		w.Tick(0.1)
	}
	if !w.CastSkill(0) {
		t.Fatalf("cast after cooldown should succeed")
	}
}

func TestCastSkillNoTargetInRange(t *testing.T) {
	w := newTestWorld(t, 1)
	spawnTestPlayer(t, w, [3]float64{0, 0, 0})
	spawnTestEnemy(t, w, "grunt", [3]float64{25, 0, 0}, 100, 3, 8, 5)
	if w.CastSkill(0) {
		t.Fatalf("enemy at exactly skill range should not be targetable")
	}
}

func TestCastSkillBadIndex(t *testing.T) {
	w := newTestWorld(t, 1)
	spawnTestPlayer(t, w, [3]float64{0, 0, 0})
	spawnTestEnemy(t, w, "grunt", [3]float64{8, 0, 0}, 100, 3, 8, 5)
	if w.CastSkill(-1) || w.CastSkill(1) {
		t.Fatalf("out-of-range skill index must be a no-op")
	}
}

func TestCastSkillAppliesPowerBuff(t *testing.T) {
	w := newTestWorld(t, 1)
	p := spawnTestPlayer(t, w, [3]float64{0, 0, 0})
	p.Stats.Buffs = []Buff{{Kind: BuffPower, Amount: 5, EndsAt: 1e9}}
	e := spawnTestEnemy(t, w, "grunt", [3]float64{8, 0, 0}, 100, 3, 8, 5)

	w.CastSkill(0)
	// (20 + 5) - 1 mitigation.
	if math.Abs(e.Stats.HP-76) > 1e-9 {
		t.Fatalf("hp = %v, want 76", e.Stats.HP)
	}
}
