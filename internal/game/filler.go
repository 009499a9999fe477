package game

import (
	"math/rand"

	"github.com/google/uuid"
)

// DefaultFillerNames is the display-name pool for synthetic players.
var DefaultFillerNames = []string{
	"Aldric", "Berta", "Cedric", "Dagny", "Edmund", "Freya",
	"Gareth", "Hilda", "Ivor", "Jorunn", "Kendric", "Leif",
	"Maren", "Osric", "Runa", "Sigrid", "Torvald", "Wren",
}

// recentWindow bounds the recently-used name set so a small pool still
// rotates instead of locking up.
const recentWindow = 4

// FillerFactory bulk-generates synthetic roster entries. Names are drawn
// uniformly from the pool minus a rolling recently-used window, so two
// consecutively generated fillers never share a name while an alternative
// exists.
type FillerFactory struct {
	names  []string
	recent []string
	rng    *rand.Rand
}

func NewFillerFactory(names []string, rng *rand.Rand) *FillerFactory {
	if len(names) == 0 {
		names = DefaultFillerNames
	}
	return &FillerFactory{names: names, rng: rng}
}

// Generate returns n fillers assigned to team (nil for unassigned). The
// output order is shuffled independently of generation order.
func (f *FillerFactory) Generate(n int, team *Team) []*Player {
	out := make([]*Player, 0, n)
	for i := 0; i < n; i++ {
		var t *Team
		if team != nil {
			cp := *team
			t = &cp
		}
		out = append(out, &Player{
			ID:       uuid.NewString(),
			Username: f.pickName(),
			IsFiller: true,
			Team:     t,
			Health:   MaxHealth,
		})
	}
	f.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func (f *FillerFactory) pickName() string {
	pool := make([]string, 0, len(f.names))
	for _, name := range f.names {
		if !f.recentlyUsed(name) {
			pool = append(pool, name)
		}
	}
	if len(pool) == 0 {
		// Every name was recently used; start the window over.
		f.recent = f.recent[:0]
		pool = f.names
	}
	name := pool[f.rng.Intn(len(pool))]
	f.remember(name)
	return name
}

func (f *FillerFactory) recentlyUsed(name string) bool {
	for _, r := range f.recent {
		if r == name {
			return true
		}
	}
	return false
}

func (f *FillerFactory) remember(name string) {
	f.recent = append(f.recent, name)
	limit := recentWindow
	if limit > len(f.names)-1 {
		limit = len(f.names) - 1
	}
	if limit < 0 {
		limit = 0
	}
	if len(f.recent) > limit {
		f.recent = f.recent[len(f.recent)-limit:]
	}
}
