package world

import "encoding/json"

type Kind int

const (
	KindPlayer Kind = iota
	KindNPC
	KindEnemy
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "PLAYER"
	case KindNPC:
		return "NPC"
	default:
		return "ENEMY"
	}
}

func ParseKind(s string) (Kind, bool) {
	switch s {
	case "PLAYER":
		return KindPlayer, true
	case "NPC":
		return KindNPC, true
	case "ENEMY":
		return KindEnemy, true
	}
	return 0, false
}

// WeaponClass is resolved once at spawn time (from the is_ranged flag or
// the class name); the combat path never matches strings.
type WeaponClass int

const (
	WeaponMelee WeaponClass = iota
	WeaponRanged
)

type BuffKind int

const (
	BuffPower BuffKind = iota
	BuffSpeed
	BuffDefense
)

func (k BuffKind) String() string {
	switch k {
	case BuffPower:
		return "POWER"
	case BuffSpeed:
		return "SPEED"
	default:
		return "DEFENSE"
	}
}

func ParseBuffKind(s string) (BuffKind, bool) {
	switch s {
	case "POWER":
		return BuffPower, true
	case "SPEED":
		return BuffSpeed, true
	case "DEFENSE":
		return BuffDefense, true
	}
	return 0, false
}

// Buff is a timed additive stat modifier. Expired buffs are pruned by the
// buff pass every tick.
type Buff struct {
	Kind   BuffKind
	Amount float64
	EndsAt float64 // absolute sim time
}

type Skill struct {
	Name   string
	Kind   string // "basic","special","ultimate"
	Damage float64
	Color  string
}

type Stats struct {
	HP      float64
	MaxHP   float64
	Speed   float64
	Power   float64
	Defense float64
	Class   string
	Weapon  WeaponClass
	Skills  []Skill
	Buffs   []Buff
}

// BuffTotal sums active buff amounts of one kind. Callers run after the
// expiry pass, so no per-call time check is needed.
func (s *Stats) BuffTotal(k BuffKind) float64 {
	var sum float64
	for _, b := range s.Buffs {
		if b.Kind == k {
			sum += b.Amount
		}
	}
	return sum
}

func (s *Stats) EffectivePower() float64   { return s.Power + s.BuffTotal(BuffPower) }
func (s *Stats) EffectiveSpeed() float64   { return s.Speed + s.BuffTotal(BuffSpeed) }
func (s *Stats) EffectiveDefense() float64 { return s.Defense + s.BuffTotal(BuffDefense) }

// BehaviorKind is the explicit per-enemy AI sub-state.
type BehaviorKind int

const (
	BehaviorIdle BehaviorKind = iota
	BehaviorPatrolling
	BehaviorWaiting
	BehaviorChasing
	BehaviorFleeing
	BehaviorAttacking
	BehaviorStaggered
)

func (k BehaviorKind) String() string {
	switch k {
	case BehaviorIdle:
		return "IDLE"
	case BehaviorPatrolling:
		return "PATROLLING"
	case BehaviorWaiting:
		return "WAITING"
	case BehaviorChasing:
		return "CHASING"
	case BehaviorFleeing:
		return "FLEEING"
	case BehaviorAttacking:
		return "ATTACKING"
	default:
		return "STAGGERED"
	}
}

func ParseBehaviorKind(s string) BehaviorKind {
	switch s {
	case "PATROLLING":
		return BehaviorPatrolling
	case "WAITING":
		return BehaviorWaiting
	case "CHASING":
		return BehaviorChasing
	case "FLEEING":
		return BehaviorFleeing
	case "ATTACKING":
		return BehaviorAttacking
	case "STAGGERED":
		return BehaviorStaggered
	}
	return BehaviorIdle
}

// BehaviorState is a tagged variant: Target is meaningful only while
// Patrolling, Wait only while Waiting.
type BehaviorState struct {
	Kind      BehaviorKind
	Target    Vec3
	HasTarget bool
	Wait      float64 // seconds remaining
}

// Entity is pure simulation data. The renderer keeps its own id-indexed
// side table of visuals; nothing here points back at it.
type Entity struct {
	ID   string
	Name string
	Kind Kind

	Pos      Vec3
	Vel      Vec3
	Yaw      float64
	SpawnPos Vec3

	Behavior      BehaviorState
	LastAttackAt  float64
	StaggerPoints float64
	StaggerEndsAt float64 // 0 = no active stagger window
	Dead          bool

	Stats Stats

	// Opaque voxel shape from the content generator; used only at spawn.
	Voxels json.RawMessage
}

func (e *Entity) Staggered(now float64) bool {
	return e.StaggerEndsAt != 0 && e.StaggerEndsAt > now
}
