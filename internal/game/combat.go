package game

// Castle is one team's destructible health pool. Active latches false the
// first time health reaches zero and never comes back within a battle.
type Castle struct {
	Health int  `json:"health"`
	Active bool `json:"active"`
}

// Combat owns the four castles. Invalid attack and repair calls are silent
// no-ops so stale or late client events never disturb the session.
type Combat struct {
	castles [NumTeams]Castle
}

func NewCombat() *Combat {
	c := &Combat{}
	c.Reset()
	return c
}

func (c *Combat) Reset() {
	for i := range c.castles {
		c.castles[i] = Castle{Health: MaxHealth, Active: true}
	}
}

// Attack decrements the target castle if the attacker fights for a different
// slot and the target is still active. Returns the new health and whether
// anything changed.
func (c *Combat) Attack(attacker *Player, target Team) (int, bool) {
	if attacker == nil || !target.Valid() {
		return 0, false
	}
	side, ok := attacker.Side()
	if !ok || side == target {
		return c.castles[target].Health, false
	}
	castle := &c.castles[target]
	if !castle.Active {
		return castle.Health, false
	}
	castle.Health--
	if castle.Health <= 0 {
		castle.Health = 0
		castle.Active = false
	}
	return castle.Health, true
}

// Repair heals the player's own castle by one, clamped at full. A dead castle
// stays dead.
func (c *Combat) Repair(p *Player, target Team) (int, bool) {
	if p == nil || !target.Valid() {
		return 0, false
	}
	side, ok := p.Side()
	if !ok || side != target {
		return c.castles[target].Health, false
	}
	castle := &c.castles[target]
	if !castle.Active || castle.Health >= MaxHealth {
		return castle.Health, false
	}
	castle.Health++
	return castle.Health, true
}

func (c *Combat) Health(t Team) int {
	if !t.Valid() {
		return 0
	}
	return c.castles[t].Health
}

func (c *Combat) Active(t Team) bool {
	return t.Valid() && c.castles[t].Active
}

func (c *Combat) ActiveTeams() []Team {
	var out []Team
	for t := Team(0); t < NumTeams; t++ {
		if c.castles[t].Active {
			out = append(out, t)
		}
	}
	return out
}

// Winner reports the sole surviving team, if exactly one remains.
func (c *Combat) Winner() (Team, bool) {
	active := c.ActiveTeams()
	if len(active) == 1 {
		return active[0], true
	}
	return 0, false
}

// HealthSnapshot is the castle health by slot, as broadcast to clients.
func (c *Combat) HealthSnapshot() []int {
	out := make([]int, NumTeams)
	for i := range c.castles {
		out[i] = c.castles[i].Health
	}
	return out
}
