package protocol

import (
	"errors"

	"github.com/mwhitten/castle-siege-backend/internal/game"
)

// Client -> Server message types.
const (
	ClientJoin       = "join"
	ClientStrategize = "strategize"
	ClientStartGame  = "startGame"
	ClientAttack     = "attack"
	ClientRepair     = "repair"
)

// Server -> Client message types.
const (
	ServerPlayerList     = "playerList"
	ServerTeamAssigned   = "teamAssigned"
	ServerGameStart      = "gameStart"
	ServerCastleUpdate   = "castleUpdate"
	ServerGameOver       = "gameOver"
	ServerGameInProgress = "gameInProgress"
	ServerError          = "error"
)

// NoWinner is the gameOver sentinel when every real player disconnected
// before a team won.
const NoWinner = "none"

var (
	ErrUnknownType     = errors.New("unknown message type")
	ErrMissingUsername = errors.New("join requires a username")
	ErrBadCastleID     = errors.New("castleId must be 0..3")
)

// ClientMessage is the tagged inbound envelope. Fields beyond Type are
// required per type and checked by Validate before dispatch.
type ClientMessage struct {
	Type     string `json:"type"`
	Username string `json:"username,omitempty"`
	CastleID *int   `json:"castleId,omitempty"`
}

func (m ClientMessage) Validate() error {
	switch m.Type {
	case ClientJoin:
		if m.Username == "" {
			return ErrMissingUsername
		}
	case ClientAttack, ClientRepair:
		if m.CastleID == nil || *m.CastleID < 0 || *m.CastleID >= game.NumTeams {
			return ErrBadCastleID
		}
	case ClientStrategize, ClientStartGame:
	default:
		return ErrUnknownType
	}
	return nil
}

// ServerMessage is the tagged outbound envelope. Castle and Health are
// pointers so a broadcast of health zero survives omitempty, and Players uses
// omitzero so an empty roster still goes out as "players":[] while messages
// that carry no roster omit the field.
type ServerMessage struct {
	Type         string        `json:"type"`
	Players      []game.Player `json:"players,omitzero"`
	Team         *int          `json:"team,omitempty"`
	TeamMembers  []game.Player `json:"teamMembers,omitempty"`
	TeamColor    string        `json:"teamColor,omitempty"`
	CastleHealth []int         `json:"castleHealth,omitempty"`
	CastleAngles []int         `json:"castleAngles,omitempty"`
	Castle       *int          `json:"castle,omitempty"`
	Health       *int          `json:"health,omitempty"`
	Winner       string        `json:"winner,omitempty"`
	Error        string        `json:"error,omitempty"`
}

func PlayerList(players []game.Player) ServerMessage {
	if players == nil {
		players = []game.Player{}
	}
	return ServerMessage{Type: ServerPlayerList, Players: players}
}

func TeamAssigned(team game.Team, members []game.Player, color string) ServerMessage {
	t := int(team)
	return ServerMessage{Type: ServerTeamAssigned, Team: &t, TeamMembers: members, TeamColor: color}
}

func GameStart(players []game.Player, castleHealth []int) ServerMessage {
	if players == nil {
		players = []game.Player{}
	}
	return ServerMessage{
		Type:         ServerGameStart,
		Players:      players,
		CastleHealth: castleHealth,
		CastleAngles: game.CastleAngles(),
	}
}

func CastleUpdate(castle, health int) ServerMessage {
	c, h := castle, health
	return ServerMessage{Type: ServerCastleUpdate, Castle: &c, Health: &h}
}

func GameOver(winner string, team *game.Team) ServerMessage {
	msg := ServerMessage{Type: ServerGameOver, Winner: winner}
	if team != nil {
		t := int(*team)
		msg.Team = &t
	}
	return msg
}

func GameInProgress() ServerMessage {
	return ServerMessage{Type: ServerGameInProgress}
}

func Error(text string) ServerMessage {
	return ServerMessage{Type: ServerError, Error: text}
}
