package world

import (
	"time"

	"voxelquest.ai/internal/persistence/snapshot"
)

// ExportSnapshot captures the full simulation state. Render handles never
// existed here, so nothing needs stripping.
func (w *World) ExportSnapshot() snapshot.SnapshotV1 {
	s := snapshot.SnapshotV1{
		Header: snapshot.Header{
			Version: 1,
			WorldID: w.cfg.ID,
			Tick:    w.tick,
		},
		Seed:        w.cfg.Seed,
		SavedAtUnix: time.Now().Unix(),
		SimTime:     w.now,
		Theme:       w.theme,
		Counters: snapshot.CountersV1{
			NextEntity: w.nextEntity,
			NextLoot:   w.nextLoot,
			NextEffect: w.nextEffect,
		},
	}

	for _, c := range w.chunks {
		s.Chunks = append(s.Chunks, snapshot.ChunkV1{
			CX: c.CX, CZ: c.CZ, Biome: c.Biome, Palette: c.Palette,
		})
	}

	for _, e := range w.reg.All() {
		v := exportEntity(e)
		if e.Kind == KindPlayer {
			s.Player = &v
			continue
		}
		s.Entities = append(s.Entities, v)
	}

	for _, li := range w.loot {
		s.Loot = append(s.Loot, snapshot.LootV1{
			ID:        li.ID,
			Item:      li.Item.ID,
			Pos:       li.Pos.ToArray(),
			Phase:     li.Phase,
			DroppedAt: li.DroppedAt,
		})
	}
	return s
}

func exportEntity(e *Entity) snapshot.EntityV1 {
	v := snapshot.EntityV1{
		ID:    e.ID,
		Name:  e.Name,
		Kind:  e.Kind.String(),
		Class: e.Stats.Class,

		Pos:      e.Pos.ToArray(),
		Vel:      e.Vel.ToArray(),
		SpawnPos: e.SpawnPos.ToArray(),
		Yaw:      e.Yaw,

		HP:      e.Stats.HP,
		MaxHP:   e.Stats.MaxHP,
		Speed:   e.Stats.Speed,
		Power:   e.Stats.Power,
		Defense: e.Stats.Defense,
		Ranged:  e.Stats.Weapon == WeaponRanged,

		Behavior: snapshot.BehaviorV1{
			Kind:      e.Behavior.Kind.String(),
			Target:    e.Behavior.Target.ToArray(),
			HasTarget: e.Behavior.HasTarget,
			Wait:      e.Behavior.Wait,
		},
		LastAttackAt:  e.LastAttackAt,
		StaggerPoints: e.StaggerPoints,
		StaggerEndsAt: e.StaggerEndsAt,
		Dead:          e.Dead,

		Voxels: e.Voxels,
	}
	for _, sk := range e.Stats.Skills {
		v.Skills = append(v.Skills, snapshot.SkillV1{
			Name: sk.Name, Kind: sk.Kind, Damage: sk.Damage, Color: sk.Color,
		})
	}
	for _, b := range e.Stats.Buffs {
		v.Buffs = append(v.Buffs, snapshot.BuffV1{
			Kind: b.Kind.String(), Amount: b.Amount, EndsAt: b.EndsAt,
		})
	}
	return v
}
