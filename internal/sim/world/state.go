package world

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"

	"voxelquest.ai/internal/protocol"
)

// BuildState renders the per-tick frame for transport sinks. Pure read.
func (w *World) BuildState() protocol.StateMsg {
	st := protocol.StateMsg{
		Type: protocol.TypeState,
		Tick: w.tick,
		Time: w.now,
	}
	for _, e := range w.reg.All() {
		st.Entities = append(st.Entities, protocol.EntityState{
			ID:        e.ID,
			Name:      e.Name,
			Kind:      e.Kind.String(),
			Pos:       e.Pos.ToArray(),
			Yaw:       e.Yaw,
			HP:        e.Stats.HP,
			MaxHP:     e.Stats.MaxHP,
			Dead:      e.Dead,
			Staggered: e.Staggered(w.now),
			Behavior:  e.Behavior.Kind.String(),
		})
	}
	for _, li := range w.loot {
		pos := li.Pos
		pos.Y += math.Sin(li.Phase*w.tun.Loot.BobRate) * 0.2
		st.Loot = append(st.Loot, protocol.LootState{
			ID:    li.ID,
			Item:  li.Item.ID,
			Kind:  li.Item.Kind,
			Color: li.Item.Color,
			Pos:   pos.ToArray(),
			Phase: li.Phase,
		})
	}
	for _, fx := range w.effects {
		st.Effects = append(st.Effects, protocol.EffectState{
			ID:       fx.ID,
			Kind:     string(fx.Kind),
			Pos:      fx.Pos.ToArray(),
			Color:    fx.Color,
			Progress: fx.Progress(w.now),
		})
	}
	return st
}

type digestEntity struct {
	ID            string     `json:"id"`
	Kind          string     `json:"kind"`
	Pos           [3]float64 `json:"pos"`
	Vel           [3]float64 `json:"vel"`
	Yaw           float64    `json:"yaw"`
	HP            float64    `json:"hp"`
	StaggerPoints float64    `json:"sp"`
	StaggerEndsAt float64    `json:"se"`
	Dead          bool       `json:"dead"`
	Behavior      string     `json:"b"`
	Buffs         int        `json:"buffs"`
}

type digestState struct {
	Tick     uint64         `json:"tick"`
	Time     float64        `json:"time"`
	Entities []digestEntity `json:"entities"`
	Loot     []string       `json:"loot"`
}

// StateDigest hashes the canonical mutable state. Two identically seeded
// worlds fed the same ops must produce equal digests every tick.
func (w *World) StateDigest() string {
	ds := digestState{Tick: w.tick, Time: w.now}
	for _, e := range w.reg.All() {
		ds.Entities = append(ds.Entities, digestEntity{
			ID:            e.ID,
			Kind:          e.Kind.String(),
			Pos:           e.Pos.ToArray(),
			Vel:           e.Vel.ToArray(),
			Yaw:           e.Yaw,
			HP:            e.Stats.HP,
			StaggerPoints: e.StaggerPoints,
			StaggerEndsAt: e.StaggerEndsAt,
			Dead:          e.Dead,
			Behavior:      e.Behavior.Kind.String(),
			Buffs:         len(e.Stats.Buffs),
		})
	}
	for _, li := range w.loot {
		ds.Loot = append(ds.Loot, li.ID+":"+li.Item.ID)
	}
	b, _ := json.Marshal(ds)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
