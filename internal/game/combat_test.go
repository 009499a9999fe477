package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamPlayer(team Team) *Player {
	t := team
	return &Player{ID: "p-" + team.String(), Username: team.String(), Team: &t, Health: MaxHealth}
}

func slotPlayer(slot int) *Player {
	s := slot
	return &Player{ID: "s1", Username: "Solo", CastleSlot: &s, Health: MaxHealth}
}

func TestAttackValidation(t *testing.T) {
	cases := []struct {
		name       string
		attacker   *Player
		target     Team
		wantChange bool
	}{
		{name: "enemy castle", attacker: teamPlayer(TeamRed), target: TeamBlue, wantChange: true},
		{name: "own castle", attacker: teamPlayer(TeamBlue), target: TeamBlue, wantChange: false},
		{name: "no side yet", attacker: &Player{ID: "x", Health: MaxHealth}, target: TeamBlue, wantChange: false},
		{name: "nil attacker", attacker: nil, target: TeamBlue, wantChange: false},
		{name: "bad slot", attacker: teamPlayer(TeamRed), target: Team(9), wantChange: false},
		{name: "solo mode own slot", attacker: slotPlayer(2), target: TeamGreen, wantChange: false},
		{name: "solo mode enemy slot", attacker: slotPlayer(2), target: TeamRed, wantChange: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCombat()
			before := c.Health(tc.target)
			health, changed := c.Attack(tc.attacker, tc.target)
			assert.Equal(t, tc.wantChange, changed)
			if tc.wantChange {
				assert.Equal(t, before-1, health)
			} else if tc.target.Valid() {
				assert.Equal(t, before, c.Health(tc.target))
			}
		})
	}
}

func TestHealthStaysInBounds(t *testing.T) {
	c := NewCombat()
	red := teamPlayer(TeamRed)
	blue := teamPlayer(TeamBlue)

	for i := 0; i < 30; i++ {
		c.Attack(red, TeamBlue)
	}
	assert.Equal(t, 0, c.Health(TeamBlue))

	for i := 0; i < 30; i++ {
		c.Repair(blue, TeamBlue)
	}
	assert.Equal(t, 0, c.Health(TeamBlue), "repair never revives a dead castle")

	for i := 0; i < 30; i++ {
		c.Repair(red, TeamRed)
	}
	assert.Equal(t, MaxHealth, c.Health(TeamRed), "repair clamps at full health")
}

func TestDefeatIsIrreversible(t *testing.T) {
	c := NewCombat()
	red := teamPlayer(TeamRed)
	green := teamPlayer(TeamGreen)

	for i := 0; i < MaxHealth; i++ {
		_, changed := c.Attack(red, TeamGreen)
		require.True(t, changed)
	}
	assert.False(t, c.Active(TeamGreen))

	_, changed := c.Repair(green, TeamGreen)
	assert.False(t, changed)
	assert.False(t, c.Active(TeamGreen))

	_, changed = c.Attack(red, TeamGreen)
	assert.False(t, changed, "attacking a dead castle is a no-op")
}

func TestRepairRequiresOwnCastle(t *testing.T) {
	c := NewCombat()
	red := teamPlayer(TeamRed)
	c.Attack(teamPlayer(TeamBlue), TeamRed)

	_, changed := c.Repair(red, TeamBlue)
	assert.False(t, changed, "cannot repair an enemy castle")

	health, changed := c.Repair(red, TeamRed)
	assert.True(t, changed)
	assert.Equal(t, MaxHealth, health)
}

func TestWinnerDetection(t *testing.T) {
	c := NewCombat()
	yellow := teamPlayer(TeamYellow)

	_, ok := c.Winner()
	assert.False(t, ok, "no winner while all castles stand")

	for _, target := range []Team{TeamRed, TeamBlue, TeamGreen} {
		for i := 0; i < MaxHealth; i++ {
			c.Attack(yellow, target)
		}
	}

	w, ok := c.Winner()
	require.True(t, ok)
	assert.Equal(t, TeamYellow, w)
	assert.Equal(t, []Team{TeamYellow}, c.ActiveTeams())
}

func TestResetRestoresAllCastles(t *testing.T) {
	c := NewCombat()
	red := teamPlayer(TeamRed)
	for i := 0; i < MaxHealth; i++ {
		c.Attack(red, TeamBlue)
	}
	c.Reset()

	assert.Equal(t, []int{10, 10, 10, 10}, c.HealthSnapshot())
	assert.Len(t, c.ActiveTeams(), NumTeams)
}
