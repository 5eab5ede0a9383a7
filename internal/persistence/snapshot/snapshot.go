package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
)

type Header struct {
	Version int    `json:"version"`
	WorldID string `json:"world_id"`
	Tick    uint64 `json:"tick"`
}

// SnapshotV1 is the full persisted simulation state. Render handles are
// never part of it; the renderer rebuilds its side table from entity ids.
type SnapshotV1 struct {
	Header Header `json:"header"`

	Seed        int64   `json:"seed"`
	SavedAtUnix int64   `json:"saved_at_unix"`
	SimTime     float64 `json:"sim_time"`

	Theme  string    `json:"theme,omitempty"`
	Chunks []ChunkV1 `json:"chunks,omitempty"`

	Player   *EntityV1  `json:"player,omitempty"`
	Entities []EntityV1 `json:"entities"`
	Loot     []LootV1   `json:"loot,omitempty"`

	Counters CountersV1 `json:"counters"`
}

type ChunkV1 struct {
	CX      int      `json:"cx"`
	CZ      int      `json:"cz"`
	Biome   string   `json:"biome"`
	Palette []string `json:"palette,omitempty"`
}

type EntityV1 struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Kind  string `json:"kind"`
	Class string `json:"class,omitempty"`

	Pos      [3]float64 `json:"pos"`
	Vel      [3]float64 `json:"vel"`
	SpawnPos [3]float64 `json:"spawn_pos"`
	Yaw      float64    `json:"yaw"`

	HP      float64 `json:"hp"`
	MaxHP   float64 `json:"max_hp"`
	Speed   float64 `json:"speed"`
	Power   float64 `json:"power"`
	Defense float64 `json:"defense"`
	Ranged  bool    `json:"ranged,omitempty"`

	Skills []SkillV1 `json:"skills,omitempty"`
	Buffs  []BuffV1  `json:"buffs,omitempty"`

	Behavior      BehaviorV1 `json:"behavior"`
	LastAttackAt  float64    `json:"last_attack_at"`
	StaggerPoints float64    `json:"stagger_points"`
	StaggerEndsAt float64    `json:"stagger_ends_at"`
	Dead          bool       `json:"dead,omitempty"`

	Voxels []byte `json:"voxels,omitempty"`
}

type SkillV1 struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Damage float64 `json:"damage"`
	Color  string  `json:"color,omitempty"`
}

type BuffV1 struct {
	Kind   string  `json:"kind"`
	Amount float64 `json:"amount"`
	EndsAt float64 `json:"ends_at"`
}

type BehaviorV1 struct {
	Kind      string     `json:"kind"`
	Target    [3]float64 `json:"target,omitempty"`
	HasTarget bool       `json:"has_target,omitempty"`
	Wait      float64    `json:"wait,omitempty"`
}

type LootV1 struct {
	ID        string     `json:"id"`
	Item      string     `json:"item"`
	Pos       [3]float64 `json:"pos"`
	Phase     float64    `json:"phase"`
	DroppedAt float64    `json:"dropped_at"`
}

type CountersV1 struct {
	NextEntity uint64 `json:"next_entity"`
	NextLoot   uint64 `json:"next_loot"`
	NextEffect uint64 `json:"next_effect"`
}

func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Header line is informational; gob carries the authoritative copy.
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}

// LatestPath returns the newest snapshot file in dir by tick number
// embedded in the filename (snap_<tick>.zst). Empty string when none.
func LatestPath(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasPrefix(n, "snap_") && strings.HasSuffix(n, ".zst") {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Slice(names, func(i, j int) bool {
		return tickFromName(names[i]) < tickFromName(names[j])
	})
	return filepath.Join(dir, names[len(names)-1])
}

func tickFromName(name string) uint64 {
	s := strings.TrimSuffix(strings.TrimPrefix(name, "snap_"), ".zst")
	var t uint64
	_, _ = fmt.Sscanf(s, "%d", &t)
	return t
}

// PathFor builds the canonical snapshot path for a tick.
func PathFor(dir string, tick uint64) string {
	return filepath.Join(dir, fmt.Sprintf("snap_%012d.zst", tick))
}
