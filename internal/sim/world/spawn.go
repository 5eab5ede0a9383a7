package world

import (
	"fmt"
	"strings"

	"voxelquest.ai/internal/protocol"
)

// weaponClassFor resolves the ranged/melee split once, at spawn. The class
// name fallback covers generator output that omits the is_ranged flag.
func weaponClassFor(st protocol.StatBlock) WeaponClass {
	if st.IsRanged {
		return WeaponRanged
	}
	c := strings.ToLower(st.Class)
	if strings.Contains(c, "mage") || strings.Contains(c, "archer") {
		return WeaponRanged
	}
	return WeaponMelee
}

func statsFrom(st protocol.StatBlock, skills []protocol.SkillSpec) (Stats, error) {
	if st.MaxHP <= 0 {
		return Stats{}, fmt.Errorf("max_hp must be positive, got %v", st.MaxHP)
	}
	s := Stats{
		HP:      st.MaxHP,
		MaxHP:   st.MaxHP,
		Speed:   st.Speed,
		Power:   st.Power,
		Defense: st.Defense,
		Class:   st.Class,
		Weapon:  weaponClassFor(st),
	}
	for _, sk := range skills {
		s.Skills = append(s.Skills, Skill{
			Name:   sk.Name,
			Kind:   sk.Kind,
			Damage: sk.Damage,
			Color:  sk.Color,
		})
	}
	return s, nil
}

// SpawnEntity registers an NPC or enemy from a generator descriptor.
func (w *World) SpawnEntity(d protocol.EntityDescriptor) (*Entity, error) {
	kind, ok := ParseKind(d.Kind)
	if !ok || kind == KindPlayer {
		return nil, fmt.Errorf("spawn %q: bad kind %q", d.Name, d.Kind)
	}
	stats, err := statsFrom(d.Stats, d.Skills)
	if err != nil {
		return nil, fmt.Errorf("spawn %q: %w", d.Name, err)
	}

	w.nextEntity++
	pos := vec3FromArray(d.Pos)
	e := &Entity{
		ID:           fmt.Sprintf("e_%d", w.nextEntity),
		Name:         d.Name,
		Kind:         kind,
		Pos:          pos,
		SpawnPos:     pos,
		LastAttackAt: -w.tun.AI.AttackCooldown,
		Stats:        stats,
		Voxels:       d.Voxels,
	}
	w.reg.Spawn(e)
	w.emit(protocol.EventSpawn, protocol.Event{"entity_id": e.ID, "kind": kind.String()})
	return e, nil
}

// SpawnPlayer registers the singleton player entity.
func (w *World) SpawnPlayer(d protocol.PlayerDescriptor) (*Entity, error) {
	if w.reg.Player() != nil {
		return nil, fmt.Errorf("spawn player: player already exists")
	}
	stats, err := statsFrom(d.Stats, d.Skills)
	if err != nil {
		return nil, fmt.Errorf("spawn player: %w", err)
	}

	w.nextEntity++
	pos := vec3FromArray(d.Pos)
	name := d.Name
	if name == "" {
		name = "player"
	}
	e := &Entity{
		ID:       fmt.Sprintf("e_%d", w.nextEntity),
		Name:     name,
		Kind:     KindPlayer,
		Pos:      pos,
		SpawnPos: pos,
		Stats:    stats,
		Voxels:   d.Voxels,
	}
	w.reg.Spawn(e)
	w.emit(protocol.EventSpawn, protocol.Event{"entity_id": e.ID, "kind": "PLAYER"})
	return e, nil
}

// LoadContent applies a (pre-validated) generator bundle. Spawns that still
// fail basic checks are skipped and reported; the rest of the batch lands.
func (w *World) LoadContent(b protocol.ContentBundle) []error {
	var errs []error
	w.theme = b.Theme
	w.chunks = b.Chunks

	if b.Player != nil {
		if _, err := w.SpawnPlayer(*b.Player); err != nil {
			errs = append(errs, err)
		}
	}
	for _, d := range b.Entities {
		if _, err := w.SpawnEntity(d); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
