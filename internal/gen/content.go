// Package gen decodes output from the generative content pipeline into
// simulation descriptors. The pipeline is external and fallible, so every
// entry is validated individually: a malformed descriptor is skipped and
// reported, never fatal to the batch.
package gen

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"voxelquest.ai/internal/protocol"
)

//go:embed schemas/entity.schema.json
var entitySchemaJSON string

//go:embed schemas/player.schema.json
var playerSchemaJSON string

var (
	entitySchema = jsonschema.MustCompileString("entity.schema.json", entitySchemaJSON)
	playerSchema = jsonschema.MustCompileString("player.schema.json", playerSchemaJSON)
)

// ContentError reports one skipped descriptor.
type ContentError struct {
	Section string // "player", "entities", "chunks"
	Index   int    // position within the section, -1 for player
	Err     error
}

func (e *ContentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("content %s: %v", e.Section, e.Err)
	}
	return fmt.Sprintf("content %s[%d]: %v", e.Section, e.Index, e.Err)
}

func (e *ContentError) Unwrap() error { return e.Err }

type rawBundle struct {
	Theme    string               `json:"theme"`
	Chunks   []protocol.ChunkSpec `json:"chunks"`
	Player   json.RawMessage      `json:"player"`
	Entities []json.RawMessage    `json:"entities"`
}

// DecodeBundle parses a generator bundle. Malformed sections are dropped
// and reported via the returned error slice; the bundle itself is always
// usable (possibly empty). Only an unparseable top level fails outright.
func DecodeBundle(raw []byte) (protocol.ContentBundle, []error) {
	var rb rawBundle
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&rb); err != nil {
		return protocol.ContentBundle{}, []error{fmt.Errorf("content bundle: %w", err)}
	}

	var errs []error
	out := protocol.ContentBundle{Theme: rb.Theme}

	for i, c := range rb.Chunks {
		if c.Biome != "SAFE" && c.Biome != "HOSTILE" {
			errs = append(errs, &ContentError{Section: "chunks", Index: i,
				Err: fmt.Errorf("unknown biome %q", c.Biome)})
			continue
		}
		out.Chunks = append(out.Chunks, c)
	}

	if len(rb.Player) > 0 && !bytes.Equal(rb.Player, []byte("null")) {
		var pd protocol.PlayerDescriptor
		if err := validateInto(playerSchema, rb.Player, &pd); err != nil {
			errs = append(errs, &ContentError{Section: "player", Index: -1, Err: err})
		} else {
			out.Player = &pd
		}
	}

	for i, re := range rb.Entities {
		var ed protocol.EntityDescriptor
		if err := validateInto(entitySchema, re, &ed); err != nil {
			errs = append(errs, &ContentError{Section: "entities", Index: i, Err: err})
			continue
		}
		out.Entities = append(out.Entities, ed)
	}

	return out, errs
}

func validateInto(s *jsonschema.Schema, raw json.RawMessage, dst any) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	if err := s.Validate(v); err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
