package world

import "testing"

func TestRegistry_InsertionOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"a", "b", "c"} {
		r.Spawn(&Entity{ID: id, Kind: KindEnemy})
	}
	r.Remove("b")
	r.Spawn(&Entity{ID: "d", Kind: KindEnemy})

	var got []string
	for _, e := range r.All() {
		got = append(got, e.ID)
	}
	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNearestHostile_NoPlayer(t *testing.T) {
	r := NewRegistry()
	r.Spawn(&Entity{ID: "e1", Kind: KindEnemy})
	if r.NearestHostile(100) != nil {
		t.Fatalf("no player: want nil")
	}
}

func TestNearestHostile_RangeAndOrder(t *testing.T) {
	r := NewRegistry()
	r.Spawn(&Entity{ID: "p", Kind: KindPlayer})

	// Both at distance 5: first inserted wins the tie.
	r.Spawn(&Entity{ID: "tie1", Kind: KindEnemy, Pos: Vec3{X: 5}})
	r.Spawn(&Entity{ID: "tie2", Kind: KindEnemy, Pos: Vec3{Z: 5}})
	// Closer but dead.
	r.Spawn(&Entity{ID: "dead", Kind: KindEnemy, Pos: Vec3{X: 1}, Dead: true})
	// NPCs are never hostile.
	r.Spawn(&Entity{ID: "npc", Kind: KindNPC, Pos: Vec3{X: 0.5}})

	got := r.NearestHostile(20)
	if got == nil || got.ID != "tie1" {
		t.Fatalf("got %v, want tie1", got)
	}

	// Strictly-below-range check: an enemy at exactly maxRange is out.
	r2 := NewRegistry()
	r2.Spawn(&Entity{ID: "p", Kind: KindPlayer})
	r2.Spawn(&Entity{ID: "edge", Kind: KindEnemy, Pos: Vec3{X: 20}})
	if r2.NearestHostile(20) != nil {
		t.Fatalf("enemy at exactly maxRange should not qualify")
	}
	if e := r2.NearestHostile(20.001); e == nil || e.ID != "edge" {
		t.Fatalf("enemy just inside range should qualify")
	}
}

func TestNearestHostile_AllOutOfRange(t *testing.T) {
	r := NewRegistry()
	r.Spawn(&Entity{ID: "p", Kind: KindPlayer})
	r.Spawn(&Entity{ID: "far1", Kind: KindEnemy, Pos: Vec3{X: 25}})
	r.Spawn(&Entity{ID: "far2", Kind: KindEnemy, Pos: Vec3{Z: -30}})
	if r.NearestHostile(20) != nil {
		t.Fatalf("all enemies >= 20 away: want nil")
	}
}

func TestRegistry_ClearDropsPlayer(t *testing.T) {
	r := NewRegistry()
	r.Spawn(&Entity{ID: "p", Kind: KindPlayer})
	r.Clear()
	if r.Player() != nil || r.Len() != 0 {
		t.Fatalf("clear should drop everything including the player ref")
	}
}
