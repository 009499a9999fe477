package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterJoinDefaults(t *testing.T) {
	r := NewRoster()
	p := r.Join("c1", "Alice")

	require.NotNil(t, p)
	assert.Equal(t, "c1", p.ID)
	assert.Equal(t, "Alice", p.Username)
	assert.Equal(t, MaxHealth, p.Health)
	assert.Nil(t, p.Team)
	assert.False(t, p.IsFiller)
}

func TestRosterRejoinReplacesInPlace(t *testing.T) {
	r := NewRoster()
	r.Join("c1", "Alice")
	r.Join("c2", "Bob")
	r.Join("c1", "Alicia")

	players := r.Players()
	require.Len(t, players, 2)
	assert.Equal(t, "Alicia", players[0].Username, "re-join keeps roster position")
	assert.Equal(t, "Bob", players[1].Username)
}

func TestRosterLeaveUnknownIsNoop(t *testing.T) {
	r := NewRoster()
	r.Join("c1", "Alice")
	r.Leave("nope")
	assert.Equal(t, 1, r.Len())
}

func TestRosterOrderPreserved(t *testing.T) {
	r := NewRoster()
	r.Join("c1", "Alice")
	r.Join("c2", "Bob")
	r.Join("c3", "Cleo")
	r.Leave("c2")

	players := r.Players()
	require.Len(t, players, 2)
	assert.Equal(t, "Alice", players[0].Username)
	assert.Equal(t, "Cleo", players[1].Username)
}

func TestRosterRealCountIgnoresFillers(t *testing.T) {
	r := NewRoster()
	r.Join("c1", "Alice")
	r.Replace([]*Player{
		r.Get("c1"),
		{ID: "f1", Username: "Aldric", IsFiller: true, Health: MaxHealth},
		{ID: "f2", Username: "Berta", IsFiller: true, Health: MaxHealth},
	})

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 1, r.RealCount())

	r.Leave("c1")
	assert.Equal(t, 0, r.RealCount())
}
