// Package indexdb maintains a small sqlite read-model next to the world
// data: snapshot metadata and aggregate event stats. It never feeds back
// into the simulation, so losing it cannot affect determinism.
package indexdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"voxelquest.ai/internal/protocol"
)

type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type reqKind int

const (
	reqSnapshot reqKind = iota + 1
	reqEvents
)

type req struct {
	kind reqKind

	snapshot SnapshotMeta
	tick     uint64
	counts   map[string]int
}

type SnapshotMeta struct {
	Tick     uint64
	Path     string
	Seed     int64
	Entities int
	Loot     int
}

func Open(dir, worldID string) (*SQLiteIndex, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, fmt.Sprintf("index_%s.db", worldID))
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS snapshots (
	tick INTEGER PRIMARY KEY,
	path TEXT NOT NULL,
	seed INTEGER NOT NULL,
	entities INTEGER NOT NULL,
	loot INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS event_stats (
	type TEXT PRIMARY KEY,
	count INTEGER NOT NULL,
	last_tick INTEGER NOT NULL
);`); err != nil {
		_ = db.Close()
		return nil, err
	}

	x := &SQLiteIndex{
		db: db,
		ch: make(chan req, 1024),
	}
	x.wg.Add(1)
	go x.writer()
	return x, nil
}

// RecordSnapshot enqueues snapshot metadata. Non-blocking: when the writer
// falls behind, entries are dropped rather than stalling the caller.
func (x *SQLiteIndex) RecordSnapshot(m SnapshotMeta) {
	if x.closed.Load() {
		return
	}
	select {
	case x.ch <- req{kind: reqSnapshot, snapshot: m}:
	default:
	}
}

// OnTick implements world.TickSink; only the event type counts are kept.
func (x *SQLiteIndex) OnTick(state protocol.StateMsg, events []protocol.Event) {
	if x.closed.Load() || len(events) == 0 {
		return
	}
	counts := make(map[string]int, 4)
	for _, ev := range events {
		if t, ok := ev["type"].(string); ok {
			counts[t]++
		}
	}
	select {
	case x.ch <- req{kind: reqEvents, tick: state.Tick, counts: counts}:
	default:
	}
}

// LatestSnapshot returns the newest indexed snapshot, ok=false when none.
func (x *SQLiteIndex) LatestSnapshot() (SnapshotMeta, bool, error) {
	var m SnapshotMeta
	row := x.db.QueryRow(`SELECT tick, path, seed, entities, loot FROM snapshots ORDER BY tick DESC LIMIT 1`)
	err := row.Scan(&m.Tick, &m.Path, &m.Seed, &m.Entities, &m.Loot)
	if err == sql.ErrNoRows {
		return m, false, nil
	}
	if err != nil {
		return m, false, err
	}
	return m, true, nil
}

// EventCount returns the running total for one event type.
func (x *SQLiteIndex) EventCount(typ string) (int64, error) {
	var n int64
	row := x.db.QueryRow(`SELECT count FROM event_stats WHERE type = ?`, typ)
	err := row.Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return n, err
}

func (x *SQLiteIndex) Close() error {
	var err error
	x.once.Do(func() {
		x.closed.Store(true)
		close(x.ch)
		x.wg.Wait()
		err = x.db.Close()
	})
	return err
}

func (x *SQLiteIndex) writer() {
	defer x.wg.Done()
	for r := range x.ch {
		switch r.kind {
		case reqSnapshot:
			_, _ = x.db.Exec(
				`INSERT OR REPLACE INTO snapshots (tick, path, seed, entities, loot, created_at) VALUES (?,?,?,?,?,?)`,
				r.snapshot.Tick, r.snapshot.Path, r.snapshot.Seed,
				r.snapshot.Entities, r.snapshot.Loot, time.Now().Unix(),
			)
		case reqEvents:
			for typ, n := range r.counts {
				_, _ = x.db.Exec(
					`INSERT INTO event_stats (type, count, last_tick) VALUES (?,?,?)
					 ON CONFLICT(type) DO UPDATE SET count = count + excluded.count, last_tick = excluded.last_tick`,
					typ, n, r.tick,
				)
			}
		}
	}
}
