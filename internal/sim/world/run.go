package world

import (
	"context"
	"time"

	"voxelquest.ai/internal/protocol"
)

// Inbox accepts ACT ops from transports. Ops are drained at the top of the
// next tick on the loop goroutine, so no other locking exists.
func (w *World) Inbox() chan<- protocol.ActMsg { return w.inbox }

func (w *World) applyAct(act protocol.ActMsg) {
	switch act.Kind {
	case protocol.ActSetInput:
		w.SetInputDirection(act.Dir[0], act.Dir[1])
	case protocol.ActSetCamera:
		w.SetCameraYaw(act.Yaw)
	case protocol.ActCastSkill:
		w.CastSkill(act.Skill)
	case protocol.ActDamage:
		// Debug/tooling path.
		w.DamageEntity(act.TargetID, act.Amount)
	}
}

// Run drives the tick loop at the configured rate until ctx is cancelled.
// Wall-clock delta feeds Tick, which clamps it; a stalled host therefore
// slows the sim instead of exploding integration.
func (w *World) Run(ctx context.Context) {
	hz := w.tun.TickRateHz
	if hz <= 0 {
		hz = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			delta := now.Sub(last).Seconds()
			last = now
			w.StepOnce(delta)
		}
	}
}

// StepOnce drains pending ops, advances one tick and fans the frame out to
// sinks. Exposed so tests and embedders can drive the loop directly.
func (w *World) StepOnce(delta float64) (protocol.StateMsg, []protocol.Event) {
	for {
		select {
		case act := <-w.inbox:
			w.applyAct(act)
			continue
		default:
		}
		break
	}

	events := w.Tick(delta)
	state := w.BuildState()
	for _, s := range w.sinks {
		s.OnTick(state, events)
	}

	if w.snapshotSink != nil && w.tun.SnapshotEveryTicks > 0 &&
		w.tick%uint64(w.tun.SnapshotEveryTicks) == 0 {
		select {
		case w.snapshotSink <- w.ExportSnapshot():
		default:
			// Writer is behind; skip rather than stall the sim.
		}
	}
	return state, events
}
