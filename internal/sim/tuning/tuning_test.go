package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	d := Default()
	if d.TickRateHz != 30 || d.MaxDelta != 0.1 {
		t.Fatalf("loop defaults: hz=%d max_delta=%v", d.TickRateHz, d.MaxDelta)
	}
	if d.Combat.StaggeredTakenMult != 1.5 || d.Combat.DefenseMitigation != 0.2 {
		t.Fatalf("combat defaults: %+v", d.Combat)
	}
	if d.Loot.DropChance != 0.6 || d.Loot.PickupRange != 4 || d.Loot.BuffDuration != 30 {
		t.Fatalf("loot defaults: %+v", d.Loot)
	}
	if d.AI.ChaseMinRange != 10 || d.AI.ChaseMaxRange != 45 || d.AI.FleeHPFrac != 0.3 {
		t.Fatalf("ai defaults: %+v", d.AI)
	}
	if d.Move.PlayerSpeedScale != 2.0 || d.Move.Acceleration != 40 {
		t.Fatalf("move defaults: %+v", d.Move)
	}
}

func TestLoadOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	raw := []byte("tick_rate_hz: 60\nloot:\n  drop_chance: 0.9\nai:\n  patrol_radius: 50\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tun, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tun.TickRateHz != 60 || tun.Loot.DropChance != 0.9 || tun.AI.PatrolRadius != 50 {
		t.Fatalf("overrides not applied: %+v", tun)
	}
	// Untouched fields keep their defaults.
	if tun.Loot.PickupRange != 4 || tun.AI.AttackCooldown != 1.5 {
		t.Fatalf("defaults clobbered: %+v", tun)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); !os.IsNotExist(err) {
		t.Fatalf("want not-exist error, got %v", err)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("loot: [not-a-map"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("want parse error")
	}
}
