package world

// expireBuffs drops every buff whose end time has passed. After this pass
// the aggregation helpers on Stats see only active buffs.
func (w *World) expireBuffs() {
	for _, e := range w.reg.All() {
		buffs := e.Stats.Buffs
		kept := buffs[:0]
		for _, b := range buffs {
			if b.EndsAt > w.now {
				kept = append(kept, b)
			}
		}
		e.Stats.Buffs = kept
	}
}
