package world

import "voxelquest.ai/internal/protocol"

// CastSkill resolves the player's generated skill against the nearest
// hostile in range. Returns false (no-op) when there is no player, the
// index is out of range, the global cooldown is running, or nothing is in
// range.
func (w *World) CastSkill(index int) bool {
	p := w.reg.Player()
	if p == nil || p.Dead {
		return false
	}
	if index < 0 || index >= len(p.Stats.Skills) {
		return false
	}
	if w.now-w.lastSkillAt < w.tun.Move.SkillCooldown {
		return false
	}
	target := w.reg.NearestHostile(w.tun.Move.SkillRange)
	if target == nil {
		return false
	}

	w.lastSkillAt = w.now
	sk := p.Stats.Skills[index]
	dmg := sk.Damage + p.Stats.BuffTotal(BuffPower)

	fx := w.spawnProjectile(p, target)
	fx.Color = sk.Color

	w.emit(protocol.EventSkillCast, protocol.Event{
		"entity_id": p.ID,
		"skill":     sk.Name,
		"target_id": target.ID,
		"damage":    dmg,
	})
	w.applyDamage(target, dmg)
	return true
}
