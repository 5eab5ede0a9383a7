package world

import "voxelquest.ai/internal/protocol"

func (w *World) emit(typ string, fields protocol.Event) {
	ev := protocol.Event{"t": w.tick, "type": typ}
	for k, v := range fields {
		ev[k] = v
	}
	w.events = append(w.events, ev)
}
