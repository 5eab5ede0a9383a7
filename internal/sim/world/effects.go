package world

import "fmt"

// Effect kinds. All effects are cosmetic; damage never waits on one.
type EffectKind string

const (
	EffectSkillTravel  EffectKind = "skill_travel"
	EffectImpact       EffectKind = "impact"
	EffectStaggerBurst EffectKind = "stagger_burst"
)

// Effect is a short-lived timed visual advanced by the owning tick loop.
// It references its target by id only: if the entity vanishes mid-flight
// the effect freezes on the last known destination and completes on
// schedule.
type Effect struct {
	ID       string
	Kind     EffectKind
	TargetID string
	From     Vec3
	To       Vec3
	Pos      Vec3
	Start    float64
	Duration float64
	Color    string
}

func (fx *Effect) Progress(now float64) float64 {
	if fx.Duration <= 0 {
		return 1
	}
	return clamp01((now - fx.Start) / fx.Duration)
}

func (fx *Effect) Complete(now float64) bool {
	return now >= fx.Start+fx.Duration
}

func (w *World) spawnEffect(kind EffectKind, targetID string, at Vec3, duration float64, color string) *Effect {
	w.nextEffect++
	fx := &Effect{
		ID:       fmt.Sprintf("fx_%d", w.nextEffect),
		Kind:     kind,
		TargetID: targetID,
		From:     at,
		To:       at,
		Pos:      at,
		Start:    w.now,
		Duration: duration,
		Color:    color,
	}
	w.effects = append(w.effects, fx)
	return fx
}

// spawnProjectile adds a travel-time visual from attacker to target, sized
// by distance and the projectile speed.
func (w *World) spawnProjectile(from, to *Entity) *Effect {
	d := dist(from.Pos, to.Pos)
	dur := d / w.tun.AI.ProjectileSpeed
	if dur < 0.05 {
		dur = 0.05
	}
	color := ""
	if len(from.Stats.Skills) > 0 {
		color = from.Stats.Skills[0].Color
	}
	fx := w.spawnEffect(EffectSkillTravel, to.ID, from.Pos, dur, color)
	fx.To = to.Pos
	return fx
}

// updateEffects advances every active effect and drops the completed ones.
func (w *World) updateEffects() {
	kept := w.effects[:0]
	for _, fx := range w.effects {
		switch fx.Kind {
		case EffectSkillTravel:
			if t, ok := w.reg.Get(fx.TargetID); ok && !t.Dead {
				fx.To = t.Pos
			}
			prog := fx.Progress(w.now)
			fx.Pos = Vec3{
				X: lerp(fx.From.X, fx.To.X, prog),
				Y: lerp(fx.From.Y, fx.To.Y, prog),
				Z: lerp(fx.From.Z, fx.To.Z, prog),
			}
		default:
			if t, ok := w.reg.Get(fx.TargetID); ok && !t.Dead {
				fx.Pos = t.Pos
			}
		}
		if !fx.Complete(w.now) {
			kept = append(kept, fx)
		}
	}
	w.effects = kept
}

// Effects returns the active timed visuals.
func (w *World) Effects() []*Effect {
	out := make([]*Effect, len(w.effects))
	copy(out, w.effects)
	return out
}
