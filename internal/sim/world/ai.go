package world

import (
	"math"

	"voxelquest.ai/internal/protocol"
)

// runEnemy evaluates one enemy for one tick: stagger bookkeeping, then the
// behavior selector in strict priority order (stagger > flee > chase >
// attack > patrol, first match wins), then movement.
func (w *World) runEnemy(e *Entity, delta float64) {
	// Close an expired stagger window.
	if e.StaggerEndsAt != 0 && e.StaggerEndsAt <= w.now {
		e.StaggerEndsAt = 0
		if e.Behavior.Kind == BehaviorStaggered {
			e.Behavior = BehaviorState{Kind: BehaviorIdle}
		}
	}
	w.decayStagger(e, delta)

	if e.Staggered(w.now) {
		// Decision-making suppressed; only the disorientation sway runs.
		e.Behavior = BehaviorState{Kind: BehaviorStaggered}
		e.Yaw += math.Sin(w.now*w.tun.AI.StaggerSwayRate) * w.tun.AI.StaggerSwayWidth * delta
		return
	}

	at := w.tun.AI
	p := w.reg.Player()
	d := math.Inf(1)
	if p != nil && !p.Dead {
		d = dist(e.Pos, p.Pos)
	}
	hpFrac := e.Stats.HP / e.Stats.MaxHP

	switch {
	case hpFrac < at.FleeHPFrac && d < at.FleeRange:
		e.Behavior = BehaviorState{Kind: BehaviorFleeing}
		dir := e.Pos.Sub(p.Pos)
		dir.Y = 0
		w.moveEnemy(e, dir.Normalized(), at.FleeSpeedMult, delta)

	case d > at.ChaseMinRange && d < at.ChaseMaxRange:
		e.Behavior = BehaviorState{Kind: BehaviorChasing}
		dir := p.Pos.Sub(e.Pos)
		dir.Y = 0
		w.moveEnemy(e, dir.Normalized(), at.ChaseSpeedMult, delta)

	case d <= at.AttackRange:
		e.Behavior = BehaviorState{Kind: BehaviorAttacking}
		if w.now-e.LastAttackAt > at.AttackCooldown {
			w.resolveAttack(e, p, d)
		}
		dir := p.Pos.Sub(e.Pos)
		dir.Y = 0
		w.moveEnemy(e, dir.Normalized(), at.AttackSpeedMult, delta)

	default:
		w.patrol(e, delta)
	}
}

// resolveAttack fires one attack. The cooldown timestamp updates even when
// a melee swing whiffs on reach.
func (w *World) resolveAttack(e, p *Entity, d float64) {
	at := w.tun.AI
	e.LastAttackAt = w.now

	switch e.Stats.Weapon {
	case WeaponRanged:
		dmg := e.Stats.EffectivePower() * at.RangedPowerMult
		w.spawnProjectile(e, p)
		w.emit(protocol.EventSkillCast, protocol.Event{
			"entity_id": e.ID,
			"skill":     e.primarySkillName(),
			"target_id": p.ID,
			"damage":    dmg,
		})
		w.applyDamage(p, dmg)
	default:
		if d <= at.MeleeReach {
			dmg := e.Stats.EffectivePower() * at.MeleePowerMult
			w.spawnEffect(EffectImpact, p.ID, p.Pos, 0.3, "")
			w.applyDamage(p, dmg)
		}
	}
}

func (e *Entity) primarySkillName() string {
	if len(e.Stats.Skills) > 0 {
		return e.Stats.Skills[0].Name
	}
	return ""
}

// patrol is the default band: count down a wait timer, otherwise pick a new
// wander point near spawn (or decide to wait), and walk toward the target.
func (w *World) patrol(e *Entity, delta float64) {
	at := w.tun.AI
	b := &e.Behavior

	if b.Kind == BehaviorWaiting && b.Wait > 0 {
		b.Wait -= delta
		if b.Wait < 0 {
			b.Wait = 0
		}
		// Idle look-around while waiting.
		e.Yaw += math.Sin(w.now*0.7) * 0.2 * delta
		return
	}

	arrived := !b.HasTarget || dist(e.Pos, b.Target) < at.PatrolArrive
	if b.Kind != BehaviorPatrolling || arrived {
		if w.rng.Float64() < at.PatrolMoveChance {
			ang := w.rng.Float64() * 2 * math.Pi
			rad := w.rng.Float64() * at.PatrolRadius
			t := Vec3{
				X: e.SpawnPos.X + math.Cos(ang)*rad,
				Z: e.SpawnPos.Z + math.Sin(ang)*rad,
			}
			t.Y = HeightAt(t.X, t.Z, BiomeHostile)
			*b = BehaviorState{Kind: BehaviorPatrolling, Target: t, HasTarget: true}
		} else {
			wait := at.PatrolWaitMin + w.rng.Float64()*(at.PatrolWaitMax-at.PatrolWaitMin)
			*b = BehaviorState{Kind: BehaviorWaiting, Wait: wait}
			return
		}
	}

	dir := b.Target.Sub(e.Pos)
	dir.Y = 0
	w.moveEnemy(e, dir.Normalized(), at.PatrolSpeedMult, delta)
}
