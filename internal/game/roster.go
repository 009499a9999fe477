package game

// Roster is the authoritative player set for one session. Insertion order is
// kept so playerList broadcasts are stable for display. Operations on unknown
// ids are silent no-ops: disconnect races are expected and must not crash the
// session.
type Roster struct {
	byID  map[string]*Player
	order []string
}

func NewRoster() *Roster {
	return &Roster{byID: make(map[string]*Player)}
}

// Join inserts a real player with full health and no team. A re-join under
// the same connection id replaces the old entry in place, keeping its roster
// position.
func (r *Roster) Join(connID, username string) *Player {
	p := &Player{
		ID:       connID,
		Username: username,
		Health:   MaxHealth,
	}
	if _, ok := r.byID[connID]; !ok {
		r.order = append(r.order, connID)
	}
	r.byID[connID] = p
	return p
}

func (r *Roster) Leave(connID string) {
	if _, ok := r.byID[connID]; !ok {
		return
	}
	delete(r.byID, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Roster) Get(connID string) *Player {
	return r.byID[connID]
}

// Players returns the roster in insertion order.
func (r *Roster) Players() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

func (r *Roster) Len() int {
	return len(r.order)
}

// RealCount counts non-filler players. When it drops to zero mid-game the
// session declares a no-winner game over.
func (r *Roster) RealCount() int {
	n := 0
	for _, p := range r.byID {
		if !p.IsFiller {
			n++
		}
	}
	return n
}

// Replace swaps the whole roster for the given players, preserving the slice
// order as the new display order. Used by team assignment.
func (r *Roster) Replace(players []*Player) {
	r.byID = make(map[string]*Player, len(players))
	r.order = r.order[:0]
	for _, p := range players {
		if _, ok := r.byID[p.ID]; ok {
			continue
		}
		r.byID[p.ID] = p
		r.order = append(r.order, p.ID)
	}
}

func (r *Roster) Reset() {
	r.byID = make(map[string]*Player)
	r.order = nil
}
