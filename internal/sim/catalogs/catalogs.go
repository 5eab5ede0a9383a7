package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type Catalogs struct {
	Loot LootCatalog
}

type LootCatalog struct {
	Entries []LootDef
	Digest  string
}

// Loot item kinds.
const (
	LootHealth   = "HEALTH"
	LootBuff     = "BUFF"
	LootMaterial = "MATERIAL"
)

// Buff sub-kinds for LootBuff entries.
const (
	BuffPower   = "POWER"
	BuffSpeed   = "SPEED"
	BuffDefense = "DEFENSE"
)

type LootDef struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Buff  string  `json:"buff,omitempty"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Default is the shipped five-entry drop table.
func Default() *Catalogs {
	c := &Catalogs{
		Loot: LootCatalog{
			Entries: []LootDef{
				{ID: "heart_shard", Kind: LootHealth, Value: 25, Color: "#ff5566"},
				{ID: "power_crystal", Kind: LootBuff, Buff: BuffPower, Value: 5, Color: "#ffaa22"},
				{ID: "swift_feather", Kind: LootBuff, Buff: BuffSpeed, Value: 2, Color: "#55ddff"},
				{ID: "iron_ward", Kind: LootBuff, Buff: BuffDefense, Value: 5, Color: "#99aabb"},
				{ID: "ancient_relic", Kind: LootMaterial, Value: 1, Color: "#cc88ff"},
			},
		},
	}
	c.Loot.Digest = digestEntries(c.Loot.Entries)
	return c
}

// Load reads loot.json from the config dir. A missing file falls back to
// the default table; a malformed file is an error.
func Load(dir string) (*Catalogs, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "loot.json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var entries []LootDef
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("loot.json: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("loot.json: empty drop table")
	}
	for i, e := range entries {
		if err := validateEntry(e); err != nil {
			return nil, fmt.Errorf("loot.json entry %d (%s): %w", i, e.ID, err)
		}
	}
	c := &Catalogs{Loot: LootCatalog{Entries: entries}}
	c.Loot.Digest = digestEntries(entries)
	return c, nil
}

func validateEntry(e LootDef) error {
	if e.ID == "" {
		return fmt.Errorf("missing id")
	}
	switch e.Kind {
	case LootHealth, LootMaterial:
	case LootBuff:
		switch e.Buff {
		case BuffPower, BuffSpeed, BuffDefense:
		default:
			return fmt.Errorf("unknown buff %q", e.Buff)
		}
	default:
		return fmt.Errorf("unknown kind %q", e.Kind)
	}
	return nil
}

func digestEntries(entries []LootDef) string {
	b, _ := json.Marshal(entries)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
