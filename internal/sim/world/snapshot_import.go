package world

import (
	"fmt"

	"voxelquest.ai/internal/persistence/snapshot"
	"voxelquest.ai/internal/protocol"
	"voxelquest.ai/internal/sim/catalogs"
)

// ImportSnapshot replaces the in-memory state with the snapshot contents.
// Everything is validated and built into locals first; on any error the
// current state is left untouched.
//
// Must be called from the loop goroutine or before the loop starts.
func (w *World) ImportSnapshot(s snapshot.SnapshotV1) error {
	if s.Header.Version != 1 {
		return fmt.Errorf("unsupported snapshot version: %d", s.Header.Version)
	}
	if s.Seed != w.cfg.Seed {
		return fmt.Errorf("snapshot seed mismatch: cfg=%d snap=%d", w.cfg.Seed, s.Seed)
	}

	reg := NewRegistry()
	if s.Player != nil {
		p, err := importEntity(*s.Player)
		if err != nil {
			return fmt.Errorf("snapshot player: %w", err)
		}
		if p.Kind != KindPlayer {
			return fmt.Errorf("snapshot player record has kind %s", p.Kind)
		}
		reg.Spawn(p)
	}
	for i, v := range s.Entities {
		e, err := importEntity(v)
		if err != nil {
			return fmt.Errorf("snapshot entity %d (%s): %w", i, v.ID, err)
		}
		if e.Kind == KindPlayer {
			return fmt.Errorf("snapshot entity %d (%s): second player record", i, v.ID)
		}
		reg.Spawn(e)
	}

	loot := make([]*LootEntity, 0, len(s.Loot))
	for i, lv := range s.Loot {
		item, ok := w.lootDef(lv.Item)
		if !ok {
			return fmt.Errorf("snapshot loot %d: unknown item %q", i, lv.Item)
		}
		loot = append(loot, &LootEntity{
			ID:        lv.ID,
			Item:      item,
			Pos:       vec3FromArray(lv.Pos),
			Phase:     lv.Phase,
			DroppedAt: lv.DroppedAt,
		})
	}

	chunks := make([]protocol.ChunkSpec, 0, len(s.Chunks))
	for _, c := range s.Chunks {
		chunks = append(chunks, protocol.ChunkSpec{
			CX: c.CX, CZ: c.CZ, Biome: c.Biome, Palette: c.Palette,
		})
	}

	// Commit.
	w.reg = reg
	w.loot = loot
	w.effects = nil
	w.theme = s.Theme
	w.chunks = chunks
	w.now = s.SimTime
	w.tick = s.Header.Tick
	w.nextEntity = s.Counters.NextEntity
	w.nextLoot = s.Counters.NextLoot
	w.nextEffect = s.Counters.NextEffect
	w.events = nil
	return nil
}

func (w *World) lootDef(id string) (catalogs.LootDef, bool) {
	for _, e := range w.cats.Loot.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return catalogs.LootDef{}, false
}

func importEntity(v snapshot.EntityV1) (*Entity, error) {
	kind, ok := ParseKind(v.Kind)
	if !ok {
		return nil, fmt.Errorf("bad kind %q", v.Kind)
	}
	if v.MaxHP <= 0 {
		return nil, fmt.Errorf("max_hp must be positive, got %v", v.MaxHP)
	}
	hp := v.HP
	if hp < 0 {
		hp = 0
	}
	if hp > v.MaxHP {
		hp = v.MaxHP
	}

	weapon := WeaponMelee
	if v.Ranged {
		weapon = WeaponRanged
	}
	e := &Entity{
		ID:   v.ID,
		Name: v.Name,
		Kind: kind,

		Pos:      vec3FromArray(v.Pos),
		Vel:      vec3FromArray(v.Vel),
		SpawnPos: vec3FromArray(v.SpawnPos),
		Yaw:      v.Yaw,

		Behavior: BehaviorState{
			Kind:      ParseBehaviorKind(v.Behavior.Kind),
			Target:    vec3FromArray(v.Behavior.Target),
			HasTarget: v.Behavior.HasTarget,
			Wait:      v.Behavior.Wait,
		},
		LastAttackAt:  v.LastAttackAt,
		StaggerPoints: v.StaggerPoints,
		StaggerEndsAt: v.StaggerEndsAt,
		Dead:          v.Dead || hp <= 0,

		Stats: Stats{
			HP:      hp,
			MaxHP:   v.MaxHP,
			Speed:   v.Speed,
			Power:   v.Power,
			Defense: v.Defense,
			Class:   v.Class,
			Weapon:  weapon,
		},
		Voxels: v.Voxels,
	}
	for _, sk := range v.Skills {
		e.Stats.Skills = append(e.Stats.Skills, Skill{
			Name: sk.Name, Kind: sk.Kind, Damage: sk.Damage, Color: sk.Color,
		})
	}
	for _, b := range v.Buffs {
		kind, ok := ParseBuffKind(b.Kind)
		if !ok {
			return nil, fmt.Errorf("bad buff kind %q", b.Kind)
		}
		e.Stats.Buffs = append(e.Stats.Buffs, Buff{
			Kind: kind, Amount: b.Amount, EndsAt: b.EndsAt,
		})
	}
	return e, nil
}
