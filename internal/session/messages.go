package session

import (
	"github.com/mwhitten/castle-siege-backend/internal/game"
	"github.com/mwhitten/castle-siege-backend/internal/protocol"
)

type Msg interface{ isSessionMsg() }

// Join registers a connection's outbox. The player only enters the roster
// once a "join" client message arrives with a username.
type Join struct {
	ConnID string
	Outbox chan protocol.ServerMessage
}

func (Join) isSessionMsg() {}

// Leave is the implicit disconnect event.
type Leave struct{ ConnID string }

func (Leave) isSessionMsg() {}

// FromClient carries one decoded inbound envelope.
type FromClient struct {
	ConnID string
	Msg    protocol.ClientMessage
}

func (FromClient) isSessionMsg() {}

// GetState reflects internal state without data races; test and admin use
// only.
type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type View struct {
	Phase        Phase
	NumClients   int
	Players      []game.Player
	CastleHealth []int
	ActiveTeams  []game.Team
}
