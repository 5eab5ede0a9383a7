package world

import "voxelquest.ai/internal/protocol"

// DamageEntity applies raw damage to an entity. Unknown or already dead
// targets are a no-op, never an error.
func (w *World) DamageEntity(id string, raw float64) {
	e, ok := w.reg.Get(id)
	if !ok || e.Dead {
		return
	}
	w.applyDamage(e, raw)
}

func (w *World) applyDamage(e *Entity, raw float64) {
	if e.Dead {
		return
	}
	ct := w.tun.Combat

	wasStaggered := e.Staggered(w.now)
	mult := 1.0
	if wasStaggered {
		mult = ct.StaggeredTakenMult
	}
	eff := raw*mult - e.Stats.EffectiveDefense()*ct.DefenseMitigation
	if eff < ct.MinDamage {
		eff = ct.MinDamage
	}

	e.Stats.HP -= eff
	w.emit(protocol.EventDamage, protocol.Event{
		"entity_id": e.ID,
		"amount":    eff,
		"staggered": wasStaggered,
	})

	// Stagger accumulates only on enemies and only outside a stagger window.
	if e.Kind == KindEnemy && !wasStaggered {
		e.StaggerPoints += eff
		threshold := e.Stats.MaxHP*ct.StaggerThresholdHPFrac +
			e.Stats.EffectiveDefense()*ct.StaggerThresholdDefMult
		if e.StaggerPoints >= threshold {
			e.StaggerPoints = 0
			e.StaggerEndsAt = w.now + ct.StaggerDuration
			e.Behavior = BehaviorState{Kind: BehaviorStaggered}
			w.spawnEffect(EffectStaggerBurst, e.ID, e.Pos, ct.StaggerDuration, "")
			w.emit(protocol.EventStagger, protocol.Event{
				"entity_id": e.ID,
				"duration":  ct.StaggerDuration,
			})
		}
	}

	if e.Stats.HP <= 0 {
		e.Stats.HP = 0
		w.kill(e)
	}
}

// kill marks the entity dead (terminal, no resurrection) and triggers the
// death side effects. Removal from the registry happens at end of tick.
func (w *World) kill(e *Entity) {
	if e.Dead {
		return
	}
	e.Dead = true
	e.StaggerPoints = 0
	e.StaggerEndsAt = 0
	w.emit(protocol.EventDeath, protocol.Event{
		"entity_id": e.ID,
		"pos":       e.Pos.ToArray(),
	})
	if e.Kind == KindEnemy {
		w.rollLoot(e)
	}
}

// decayStagger runs every tick for enemies outside a stagger window.
func (w *World) decayStagger(e *Entity, delta float64) {
	if e.StaggerPoints <= 0 || e.Staggered(w.now) {
		return
	}
	e.StaggerPoints -= w.tun.Combat.StaggerDecayPerSec * delta
	if e.StaggerPoints < 0 {
		e.StaggerPoints = 0
	}
}
