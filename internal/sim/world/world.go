package world

import (
	"fmt"
	"math/rand"

	"voxelquest.ai/internal/persistence/snapshot"
	"voxelquest.ai/internal/protocol"
	"voxelquest.ai/internal/sim/catalogs"
	"voxelquest.ai/internal/sim/tuning"
)

type Config struct {
	ID   string
	Seed int64
}

// TickSink receives the per-tick state frame plus the side-effect events
// emitted during that tick. Renderer transport, event logs and the stats
// index all attach through this.
type TickSink interface {
	OnTick(state protocol.StateMsg, events []protocol.Event)
}

// World is the single-threaded authoritative simulation. All state must be
// accessed only from the loop goroutine (or, in tests, from one goroutine
// driving Tick directly).
type World struct {
	cfg  Config
	tun  tuning.Tuning
	cats *catalogs.Catalogs
	rng  *rand.Rand

	now  float64 // sim seconds
	tick uint64

	reg     *Registry
	loot    []*LootEntity
	effects []*Effect

	theme  string
	chunks []protocol.ChunkSpec

	// Player control state, set by ops between ticks.
	inputX, inputZ float64
	cameraYaw      float64
	lastSkillAt    float64

	events []protocol.Event

	nextEntity uint64
	nextLoot   uint64
	nextEffect uint64

	inbox chan protocol.ActMsg
	sinks []TickSink

	// Optional snapshot sink; writing happens off-thread.
	snapshotSink chan<- snapshot.SnapshotV1
}

func New(cfg Config, tun tuning.Tuning, cats *catalogs.Catalogs) (*World, error) {
	if cfg.ID == "" {
		return nil, fmt.Errorf("world: empty id")
	}
	if cats == nil || len(cats.Loot.Entries) == 0 {
		return nil, fmt.Errorf("world: empty loot catalog")
	}
	if tun.MaxDelta <= 0 {
		return nil, fmt.Errorf("world: max_delta must be positive")
	}
	w := &World{
		cfg:         cfg,
		tun:         tun,
		cats:        cats,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		reg:         NewRegistry(),
		lastSkillAt: -tun.Move.SkillCooldown,
		inbox:       make(chan protocol.ActMsg, 256),
	}
	return w, nil
}

func (w *World) ID() string            { return w.cfg.ID }
func (w *World) Seed() int64           { return w.cfg.Seed }
func (w *World) Now() float64          { return w.now }
func (w *World) TickCount() uint64     { return w.tick }
func (w *World) Theme() string         { return w.theme }
func (w *World) LootDigest() string    { return w.cats.Loot.Digest }
func (w *World) Tuning() tuning.Tuning { return w.tun }

func (w *World) AddSink(s TickSink) {
	if s != nil {
		w.sinks = append(w.sinks, s)
	}
}

func (w *World) SetSnapshotSink(ch chan<- snapshot.SnapshotV1) { w.snapshotSink = ch }

// SeedRNG replaces the random stream. Tests use it to pin sequences.
func (w *World) SeedRNG(seed int64) { w.rng = rand.New(rand.NewSource(seed)) }

// Exposed registry ops.

func (w *World) AllEntities() []*Entity { return w.reg.All() }

func (w *World) Entity(id string) (*Entity, bool) { return w.reg.Get(id) }

func (w *World) Player() *Entity { return w.reg.Player() }

// NearestHostile returns the closest living enemy to the player within
// maxRange, nil when no player exists or nothing qualifies.
func (w *World) NearestHostile(maxRange float64) *Entity {
	return w.reg.NearestHostile(maxRange)
}

// ClearEntities resets the live entity set. In-flight effects are orphaned
// and complete on their own schedule.
func (w *World) ClearEntities() {
	w.reg.Clear()
}

// Player control ops.

func (w *World) SetInputDirection(x, z float64) {
	w.inputX, w.inputZ = x, z
}

func (w *World) SetCameraYaw(yaw float64) { w.cameraYaw = yaw }

// Tick advances the simulation by delta seconds (clamped to the tuning
// maximum to bound integration error). Order is fixed: player movement,
// per-enemy AI+combat+movement in registry order, loot, buffs, effects.
// The events emitted during the tick are returned and cleared.
func (w *World) Tick(delta float64) []protocol.Event {
	if delta < 0 {
		delta = 0
	}
	if delta > w.tun.MaxDelta {
		delta = w.tun.MaxDelta
	}
	w.now += delta
	w.tick++

	w.integratePlayer(delta)

	for _, e := range w.reg.All() {
		if e.Kind != KindEnemy || e.Dead {
			continue
		}
		w.runEnemy(e, delta)
	}
	w.reapDead()

	w.updateLoot(delta)
	w.expireBuffs()
	w.updateEffects()

	evs := w.events
	w.events = nil
	return evs
}

// reapDead removes dead enemies once their death tick has fully processed.
// The player stays registered so the UI can show the game-over state.
func (w *World) reapDead() {
	for _, e := range w.reg.All() {
		if e.Dead && e.Kind == KindEnemy {
			w.reg.Remove(e.ID)
		}
	}
}
