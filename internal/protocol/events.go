package protocol

// Event types carried in EVENT frames. Payload keys are documented next to
// each constant; all events carry "t" (tick) and "type".
const (
	// entity_id, amount, staggered (bool)
	EventDamage = "DAMAGE"
	// entity_id, duration
	EventStagger = "STAGGER"
	// entity_id, pos
	EventDeath = "DEATH"
	// loot_id, item, kind, pos
	EventLootDrop = "LOOT_DROP"
	// loot_id, item, kind, value
	EventLootPickup = "LOOT_PICKUP"
	// entity_id, skill, target_id, damage
	EventSkillCast = "SKILL_CAST"
	// entity_id (spawn side effects, e.g. poof-in)
	EventSpawn = "SPAWN"
)
