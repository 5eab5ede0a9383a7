package world

import (
	"fmt"

	"voxelquest.ai/internal/protocol"
	"voxelquest.ai/internal/sim/catalogs"
)

// LootEntity is a dropped item waiting on the ground. It persists until
// collected; Phase drives the renderer's float/spin animation.
type LootEntity struct {
	ID        string
	Item      catalogs.LootDef
	Pos       Vec3
	Phase     float64
	DroppedAt float64
}

// rollLoot runs on enemy death: a drop-chance roll, then a uniform pick
// from the catalog, spawned raised above the corpse.
func (w *World) rollLoot(e *Entity) {
	if w.rng.Float64() >= w.tun.Loot.DropChance {
		return
	}
	item := w.cats.Loot.Entries[w.rng.Intn(len(w.cats.Loot.Entries))]

	w.nextLoot++
	li := &LootEntity{
		ID:        fmt.Sprintf("loot_%d", w.nextLoot),
		Item:      item,
		Pos:       Vec3{e.Pos.X, e.Pos.Y + w.tun.Loot.DropRaise, e.Pos.Z},
		DroppedAt: w.now,
	}
	w.loot = append(w.loot, li)
	w.emit(protocol.EventLootDrop, protocol.Event{
		"loot_id": li.ID,
		"item":    item.ID,
		"kind":    item.Kind,
		"pos":     li.Pos.ToArray(),
	})
}

func (w *World) updateLoot(delta float64) {
	p := w.reg.Player()
	kept := w.loot[:0]
	for _, li := range w.loot {
		li.Phase += delta
		if p != nil && !p.Dead && dist(li.Pos, p.Pos) < w.tun.Loot.PickupRange {
			w.applyPickup(p, li)
			continue
		}
		kept = append(kept, li)
	}
	w.loot = kept
}

// applyPickup applies the item to the player and emits the pickup event.
// The loot entity is removed by the caller for every item kind.
func (w *World) applyPickup(p *Entity, li *LootEntity) {
	switch li.Item.Kind {
	case catalogs.LootHealth:
		p.Stats.HP += li.Item.Value
		if p.Stats.HP > p.Stats.MaxHP {
			p.Stats.HP = p.Stats.MaxHP
		}
	case catalogs.LootBuff:
		kind, ok := ParseBuffKind(li.Item.Buff)
		if ok {
			p.Stats.Buffs = append(p.Stats.Buffs, Buff{
				Kind:   kind,
				Amount: li.Item.Value,
				EndsAt: w.now + w.tun.Loot.BuffDuration,
			})
		}
	case catalogs.LootMaterial:
		// No direct stat effect; the pickup event is the progression hook.
	}
	w.emit(protocol.EventLootPickup, protocol.Event{
		"loot_id": li.ID,
		"item":    li.Item.ID,
		"kind":    li.Item.Kind,
		"value":   li.Item.Value,
	})
}

// LootEntities returns the live drops in spawn order.
func (w *World) LootEntities() []*LootEntity {
	out := make([]*LootEntity, len(w.loot))
	copy(out, w.loot)
	return out
}
