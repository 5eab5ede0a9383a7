package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay constant. Defaults match shipped behavior;
// a tuning.yaml overrides individual fields.
type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	TickRateHz         int     `yaml:"tick_rate_hz"`
	MaxDelta           float64 `yaml:"max_delta"`
	SnapshotEveryTicks int     `yaml:"snapshot_every_ticks"`

	Combat CombatTuning `yaml:"combat"`
	Loot   LootTuning   `yaml:"loot"`
	AI     AITuning     `yaml:"ai"`
	Move   MoveTuning   `yaml:"move"`
}

type CombatTuning struct {
	MinDamage          float64 `yaml:"min_damage"`
	DefenseMitigation  float64 `yaml:"defense_mitigation"`
	StaggeredTakenMult float64 `yaml:"staggered_taken_mult"`

	StaggerThresholdHPFrac  float64 `yaml:"stagger_threshold_hp_frac"`
	StaggerThresholdDefMult float64 `yaml:"stagger_threshold_def_mult"`
	StaggerDuration         float64 `yaml:"stagger_duration"`
	StaggerDecayPerSec      float64 `yaml:"stagger_decay_per_sec"`
}

type LootTuning struct {
	DropChance   float64 `yaml:"drop_chance"`
	DropRaise    float64 `yaml:"drop_raise"`
	PickupRange  float64 `yaml:"pickup_range"`
	BuffDuration float64 `yaml:"buff_duration"`
	SpinRate     float64 `yaml:"spin_rate"`
	BobRate      float64 `yaml:"bob_rate"`
}

type AITuning struct {
	FleeHPFrac    float64 `yaml:"flee_hp_frac"`
	FleeRange     float64 `yaml:"flee_range"`
	FleeSpeedMult float64 `yaml:"flee_speed_mult"`

	ChaseMinRange  float64 `yaml:"chase_min_range"`
	ChaseMaxRange  float64 `yaml:"chase_max_range"`
	ChaseSpeedMult float64 `yaml:"chase_speed_mult"`

	AttackRange      float64 `yaml:"attack_range"`
	AttackCooldown   float64 `yaml:"attack_cooldown"`
	AttackSpeedMult  float64 `yaml:"attack_speed_mult"`
	RangedPowerMult  float64 `yaml:"ranged_power_mult"`
	MeleePowerMult   float64 `yaml:"melee_power_mult"`
	MeleeReach       float64 `yaml:"melee_reach"`
	ProjectileSpeed  float64 `yaml:"projectile_speed"`
	StaggerSwayRate  float64 `yaml:"stagger_sway_rate"`
	StaggerSwayWidth float64 `yaml:"stagger_sway_width"`

	PatrolRadius     float64 `yaml:"patrol_radius"`
	PatrolArrive     float64 `yaml:"patrol_arrive"`
	PatrolMoveChance float64 `yaml:"patrol_move_chance"`
	PatrolWaitMin    float64 `yaml:"patrol_wait_min"`
	PatrolWaitMax    float64 `yaml:"patrol_wait_max"`
	PatrolSpeedMult  float64 `yaml:"patrol_speed_mult"`
}

type MoveTuning struct {
	PlayerSpeedScale float64 `yaml:"player_speed_scale"`
	Acceleration     float64 `yaml:"acceleration"`
	Friction         float64 `yaml:"friction"`
	GroundEase       float64 `yaml:"ground_ease"`
	PlayerYawEase    float64 `yaml:"player_yaw_ease"`
	EnemyYawEase     float64 `yaml:"enemy_yaw_ease"`
	YawSpeedGate     float64 `yaml:"yaw_speed_gate"`

	SkillRange    float64 `yaml:"skill_range"`
	SkillCooldown float64 `yaml:"skill_cooldown"`
}

func Default() Tuning {
	return Tuning{
		ProtocolVersion:    "1.0",
		TickRateHz:         30,
		MaxDelta:           0.1,
		SnapshotEveryTicks: 1800,
		Combat: CombatTuning{
			MinDamage:               1,
			DefenseMitigation:       0.2,
			StaggeredTakenMult:      1.5,
			StaggerThresholdHPFrac:  0.25,
			StaggerThresholdDefMult: 0.5,
			StaggerDuration:         2.0,
			StaggerDecayPerSec:      15,
		},
		Loot: LootTuning{
			DropChance:   0.6,
			DropRaise:    1.0,
			PickupRange:  4,
			BuffDuration: 30,
			SpinRate:     2.0,
			BobRate:      3.0,
		},
		AI: AITuning{
			FleeHPFrac:    0.3,
			FleeRange:     20,
			FleeSpeedMult: 1.4,

			ChaseMinRange:  10,
			ChaseMaxRange:  45,
			ChaseSpeedMult: 1.1,

			AttackRange:      10,
			AttackCooldown:   1.5,
			AttackSpeedMult:  0.3,
			RangedPowerMult:  0.5,
			MeleePowerMult:   0.8,
			MeleeReach:       6,
			ProjectileSpeed:  18,
			StaggerSwayRate:  8,
			StaggerSwayWidth: 0.3,

			PatrolRadius:     25,
			PatrolArrive:     1.5,
			PatrolMoveChance: 0.7,
			PatrolWaitMin:    2,
			PatrolWaitMax:    5,
			PatrolSpeedMult:  0.5,
		},
		Move: MoveTuning{
			PlayerSpeedScale: 2.0,
			Acceleration:     40,
			Friction:         12,
			GroundEase:       0.2,
			PlayerYawEase:    0.15,
			EnemyYawEase:     0.1,
			YawSpeedGate:     0.5,

			SkillRange:    25,
			SkillCooldown: 0.8,
		},
	}
}

// Load reads a tuning.yaml over the defaults. Missing file is an error;
// callers that want defaults only should use Default directly.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}
