package protocol

import "encoding/json"

// Content descriptors produced by the generative pipeline. The simulation
// consumes these at spawn time; voxel shape data stays opaque to the core.

type ContentBundle struct {
	Theme    string             `json:"theme,omitempty"`
	Chunks   []ChunkSpec        `json:"chunks,omitempty"`
	Player   *PlayerDescriptor  `json:"player,omitempty"`
	Entities []EntityDescriptor `json:"entities,omitempty"`
}

type ChunkSpec struct {
	CX      int      `json:"cx"`
	CZ      int      `json:"cz"`
	Biome   string   `json:"biome"` // "SAFE" or "HOSTILE"
	Palette []string `json:"palette,omitempty"`
}

type StatBlock struct {
	MaxHP    float64 `json:"max_hp"`
	Speed    float64 `json:"speed"`
	Power    float64 `json:"power"`
	Defense  float64 `json:"defense"`
	Class    string  `json:"class,omitempty"`
	IsRanged bool    `json:"is_ranged,omitempty"`
}

type SkillSpec struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"` // "basic","special","ultimate"
	Damage float64 `json:"damage"`
	Color  string  `json:"color,omitempty"`
}

type EntityDescriptor struct {
	Name   string          `json:"name"`
	Kind   string          `json:"kind"` // "NPC" or "ENEMY"
	Pos    [3]float64      `json:"pos"`
	Stats  StatBlock       `json:"stats"`
	Skills []SkillSpec     `json:"skills,omitempty"`
	Voxels json.RawMessage `json:"voxels,omitempty"`
}

type PlayerDescriptor struct {
	Name   string          `json:"name,omitempty"`
	Pos    [3]float64      `json:"pos"`
	Stats  StatBlock       `json:"stats"`
	Skills []SkillSpec     `json:"skills,omitempty"`
	Voxels json.RawMessage `json:"voxels,omitempty"`
}
