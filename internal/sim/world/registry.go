package world

// Registry owns the live entity set. Iteration order is insertion order,
// which the tick loop and tie-breaks depend on.
type Registry struct {
	byID   map[string]*Entity
	order  []string
	player *Entity
}

func NewRegistry() *Registry {
	return &Registry{byID: map[string]*Entity{}}
}

func (r *Registry) Spawn(e *Entity) {
	if _, ok := r.byID[e.ID]; !ok {
		r.order = append(r.order, e.ID)
	}
	r.byID[e.ID] = e
	if e.Kind == KindPlayer {
		r.player = e
	}
}

func (r *Registry) Remove(id string) {
	e, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			copy(r.order[i:], r.order[i+1:])
			r.order = r.order[:len(r.order)-1]
			break
		}
	}
	if r.player == e {
		r.player = nil
	}
}

func (r *Registry) Get(id string) (*Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

func (r *Registry) Player() *Entity { return r.player }

func (r *Registry) Len() int { return len(r.order) }

// All returns entities in insertion order. The returned slice is fresh;
// the entities are the live ones.
func (r *Registry) All() []*Entity {
	out := make([]*Entity, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

func (r *Registry) Clear() {
	r.byID = map[string]*Entity{}
	r.order = nil
	r.player = nil
}

// NearestHostile scans non-dead enemies and returns the strictly closest
// one to the player within maxRange. Ties keep the first encountered.
// Nil when there is no player or nothing qualifies.
func (r *Registry) NearestHostile(maxRange float64) *Entity {
	p := r.player
	if p == nil {
		return nil
	}
	var best *Entity
	bestD := maxRange
	for _, id := range r.order {
		e := r.byID[id]
		if e.Kind != KindEnemy || e.Dead {
			continue
		}
		d := dist(e.Pos, p.Pos)
		if d < bestD {
			best = e
			bestD = d
		}
	}
	return best
}
