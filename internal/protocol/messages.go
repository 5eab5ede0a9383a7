package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name,omitempty"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	WorldID         string `json:"world_id"`
	Seed            int64  `json:"seed"`
	TickRateHz      int    `json:"tick_rate_hz"`
	PlayerID        string `json:"player_id,omitempty"`
	LootDigest      string `json:"loot_digest,omitempty"`
}

// ACT kinds.
const (
	ActSetInput  = "SET_INPUT"
	ActSetCamera = "SET_CAMERA"
	ActCastSkill = "CAST_SKILL"
	ActDamage    = "DAMAGE"
)

// ACT (client -> server). One op per message.
type ActMsg struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	Kind            string     `json:"kind"`
	Dir             [2]float64 `json:"dir,omitempty"`
	Yaw             float64    `json:"yaw,omitempty"`
	Skill           int        `json:"skill,omitempty"`
	TargetID        string     `json:"target_id,omitempty"`
	Amount          float64    `json:"amount,omitempty"`
}

// STATE (server -> client), one per tick.
type StateMsg struct {
	Type     string        `json:"type"`
	Tick     uint64        `json:"tick"`
	Time     float64       `json:"time"`
	Entities []EntityState `json:"entities"`
	Loot     []LootState   `json:"loot,omitempty"`
	Effects  []EffectState `json:"effects,omitempty"`
}

type EntityState struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	Kind      string     `json:"kind"`
	Pos       [3]float64 `json:"pos"`
	Yaw       float64    `json:"yaw"`
	HP        float64    `json:"hp"`
	MaxHP     float64    `json:"max_hp"`
	Dead      bool       `json:"dead,omitempty"`
	Staggered bool       `json:"staggered,omitempty"`
	Behavior  string     `json:"behavior,omitempty"`
}

type LootState struct {
	ID    string     `json:"id"`
	Item  string     `json:"item"`
	Kind  string     `json:"kind"`
	Color string     `json:"color,omitempty"`
	Pos   [3]float64 `json:"pos"`
	Phase float64    `json:"phase"`
}

type EffectState struct {
	ID       string     `json:"id"`
	Kind     string     `json:"kind"`
	Pos      [3]float64 `json:"pos"`
	Color    string     `json:"color,omitempty"`
	Progress float64    `json:"progress"`
}

// EVENT (server -> client), side effects emitted during a tick.
type EventMsg struct {
	Type   string  `json:"type"`
	Tick   uint64  `json:"tick"`
	Events []Event `json:"events"`
}

// Event is a loose side-effect record for renderer/audio/UI consumers.
type Event map[string]interface{}

// ERROR (server -> client)
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
