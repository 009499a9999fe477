package game

import (
	"errors"
	"math/rand"
)

var ErrPlayerNotFound = errors.New("player not found")

// Assignment is the result handed back to the initiating player only.
type Assignment struct {
	Team    Team
	Members []*Player
	Color   string
}

// AssignTeams partitions a fresh roster into four teams of about teamSize
// around the initiating player: the initiator lands on a random team, that
// team gets teamSize-1 fillers, the other three get teamSize each. The roster
// is replaced with the shuffled union; the shuffle is display-only and never
// changes membership.
func AssignTeams(r *Roster, f *FillerFactory, connID string, teamSize int, rng *rand.Rand) (Assignment, error) {
	initiator := r.Get(connID)
	if initiator == nil || initiator.IsFiller {
		return Assignment{}, ErrPlayerNotFound
	}

	team := Team(rng.Intn(NumTeams))
	initiator.Team = &team
	initiator.Health = MaxHealth

	all := []*Player{initiator}
	for t := Team(0); t < NumTeams; t++ {
		n := teamSize
		if t == team {
			n--
		}
		tc := t
		all = append(all, f.Generate(n, &tc)...)
	}

	// Membership is fixed before the display shuffle.
	members := make([]*Player, 0, teamSize)
	for _, p := range all {
		if p.Team != nil && *p.Team == team {
			members = append(members, p)
		}
	}

	rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	r.Replace(all)

	return Assignment{Team: team, Members: members, Color: team.Color()}, nil
}
