package game

// Team identifies one of the four fixed sides. The index doubles as the
// castle slot index on the wire, so the values must stay 0..3.
type Team int

const (
	TeamRed Team = iota
	TeamBlue
	TeamGreen
	TeamYellow
)

const NumTeams = 4

// MaxHealth is the full health of every castle and player.
const MaxHealth = 10

func (t Team) Valid() bool {
	return t >= 0 && t < NumTeams
}

func (t Team) String() string {
	switch t {
	case TeamRed:
		return "Red"
	case TeamBlue:
		return "Blue"
	case TeamGreen:
		return "Green"
	case TeamYellow:
		return "Yellow"
	default:
		return "Unknown"
	}
}

// teamColors matches the client palette: the four castles render with these
// colors in slot order (top, right, left, bottom).
var teamColors = [NumTeams]string{"#e74c3c", "#3498db", "#2ecc71", "#f1c40f"}

// teamAngles is the placement angle in degrees for each slot in the client's
// square formation around the arena center.
var teamAngles = [NumTeams]int{90, 0, 180, 270}

func (t Team) Color() string {
	if !t.Valid() {
		return ""
	}
	return teamColors[t]
}

func (t Team) Angle() int {
	if !t.Valid() {
		return 0
	}
	return teamAngles[t]
}

// CastleAngles is the placement table by slot, sent with gameStart so clients
// lay the castles out the same way.
func CastleAngles() []int {
	out := make([]int, NumTeams)
	for t := Team(0); t < NumTeams; t++ {
		out[t] = t.Angle()
	}
	return out
}

// Mode selects how castle slots are bound to players.
type Mode string

const (
	// ModeTeams: four large teams, each sharing one castle; rosters are
	// padded with fillers via team assignment.
	ModeTeams Mode = "teams"
	// ModeSolo: up to four players, each owning one fixed castle slot.
	ModeSolo Mode = "solo"
)

// Player is one roster entry. Fillers are synthetic rows with no connection
// behind them; they never emit events.
type Player struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	IsFiller   bool   `json:"isFiller"`
	Team       *Team  `json:"team"`
	Health     int    `json:"health"`
	CastleSlot *int   `json:"castle,omitempty"`
	Color      string `json:"color,omitempty"`
}

// Side reports which castle slot the player fights for, in either mode.
func (p *Player) Side() (Team, bool) {
	if p.Team != nil {
		return *p.Team, true
	}
	if p.CastleSlot != nil {
		return Team(*p.CastleSlot), true
	}
	return 0, false
}
