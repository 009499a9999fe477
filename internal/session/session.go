package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/mwhitten/castle-siege-backend/internal/game"
	"github.com/mwhitten/castle-siege-backend/internal/protocol"
)

// Phase is the session-wide stage gating which events are valid.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseWaiting      Phase = "waiting"
	PhaseStrategizing Phase = "strategizing"
	PhaseBattle       Phase = "battle"
	PhaseOver         Phase = "over"
)

type Config struct {
	Mode       game.Mode
	TeamSize   int
	MinPlayers int
	// FillerNames overrides the default display-name pool; tests use it.
	FillerNames []string
	// Seed fixes the RNG for deterministic tests; 0 means time-seeded.
	Seed int64
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = game.ModeTeams
	}
	if c.TeamSize <= 0 {
		c.TeamSize = 25
	}
	if c.MinPlayers <= 0 {
		c.MinPlayers = 2
	}
}

// Session owns one game's entire state: phase, roster, castles, connected
// clients. All mutation happens on the loop goroutine, one inbox message at a
// time, so no locking is needed anywhere in here.
type Session struct {
	inbox   chan Msg
	cfg     Config
	phase   Phase
	roster  *game.Roster
	combat  *game.Combat
	fillers *game.FillerFactory
	rng     *rand.Rand
	clients map[string]chan protocol.ServerMessage
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context, cfg Config, log *zap.Logger) *Session {
	cfg.applyDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		inbox:   make(chan Msg, 64),
		cfg:     cfg,
		phase:   PhaseIdle,
		roster:  game.NewRoster(),
		combat:  game.NewCombat(),
		fillers: game.NewFillerFactory(cfg.FillerNames, rng),
		rng:     rng,
		clients: make(map[string]chan protocol.ServerMessage),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
	go s.loop()
	return s
}

// Inbox exposes the event queue to the transport layer and tests.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				s.clients[msg.ConnID] = msg.Outbox
				// New connections see the waiting room immediately.
				s.sendTo(msg.ConnID, protocol.PlayerList(s.playersSnapshot()))
				s.log.Info("client connected", zap.String("conn", msg.ConnID))

			case Leave:
				s.handleLeave(msg.ConnID)

			case FromClient:
				s.handleClient(msg.ConnID, msg.Msg)

			case GetState:
				msg.Reply <- View{
					Phase:        s.phase,
					NumClients:   len(s.clients),
					Players:      s.playersSnapshot(),
					CastleHealth: s.combat.HealthSnapshot(),
					ActiveTeams:  s.combat.ActiveTeams(),
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) handleClient(connID string, msg protocol.ClientMessage) {
	if err := msg.Validate(); err != nil {
		s.sendTo(connID, protocol.Error(err.Error()))
		return
	}

	switch msg.Type {
	case protocol.ClientJoin:
		s.handleJoin(connID, msg.Username)
	case protocol.ClientStrategize:
		s.handleStrategize(connID)
	case protocol.ClientStartGame:
		s.handleStartGame(connID)
	case protocol.ClientAttack:
		s.handleAttack(connID, game.Team(*msg.CastleID))
	case protocol.ClientRepair:
		s.handleRepair(connID, game.Team(*msg.CastleID))
	}
}

func (s *Session) handleJoin(connID, username string) {
	s.roster.Join(connID, username)
	if s.phase != PhaseBattle {
		// Defensive reset: castles come back to full while the room refills,
		// even if a strategize never happened.
		s.combat.Reset()
		if s.phase == PhaseIdle || s.phase == PhaseOver {
			s.phase = PhaseWaiting
		}
	}
	s.log.Info("player joined",
		zap.String("conn", connID),
		zap.String("username", username),
		zap.Int("roster", s.roster.Len()))
	s.broadcast(protocol.PlayerList(s.playersSnapshot()))
}

func (s *Session) handleStrategize(connID string) {
	if s.phase == PhaseBattle {
		// Stale request from before the battle started; ignore.
		return
	}
	a, err := game.AssignTeams(s.roster, s.fillers, connID, s.cfg.TeamSize, s.rng)
	if err != nil {
		// Precondition failure leaves session state untouched.
		s.sendTo(connID, protocol.Error("player not found"))
		return
	}
	s.combat.Reset()
	s.phase = PhaseStrategizing

	members := make([]game.Player, 0, len(a.Members))
	for _, m := range a.Members {
		members = append(members, *m)
	}
	s.sendTo(connID, protocol.TeamAssigned(a.Team, members, a.Color))
	s.broadcast(protocol.PlayerList(s.playersSnapshot()))
	s.log.Info("teams assigned",
		zap.String("conn", connID),
		zap.Stringer("team", a.Team),
		zap.Int("roster", s.roster.Len()))
}

func (s *Session) handleStartGame(connID string) {
	if s.phase == PhaseBattle {
		s.sendTo(connID, protocol.GameInProgress())
		return
	}
	if s.roster.Len() < s.cfg.MinPlayers {
		s.sendTo(connID, protocol.Error(
			fmt.Sprintf("need at least %d players to start", s.cfg.MinPlayers)))
		return
	}

	if s.cfg.Mode == game.ModeSolo {
		s.bindCastleSlots()
	} else {
		for _, p := range s.roster.Players() {
			if p.Team != nil {
				p.Color = p.Team.Color()
			}
		}
	}

	s.combat.Reset()
	s.phase = PhaseBattle
	s.broadcast(protocol.GameStart(s.playersSnapshot(), s.combat.HealthSnapshot()))
	s.log.Info("battle started",
		zap.Int("roster", s.roster.Len()),
		zap.String("mode", string(s.cfg.Mode)))
}

// bindCastleSlots gives each of the first four players their own fixed castle.
// Later joiners spectate.
func (s *Session) bindCastleSlots() {
	for i, p := range s.roster.Players() {
		if i >= game.NumTeams {
			break
		}
		slot := i
		p.CastleSlot = &slot
		p.Team = nil
		p.Color = game.Team(slot).Color()
	}
}

func (s *Session) handleAttack(connID string, target game.Team) {
	if s.phase != PhaseBattle {
		return
	}
	health, changed := s.combat.Attack(s.roster.Get(connID), target)
	if !changed {
		return
	}
	s.broadcast(protocol.CastleUpdate(int(target), health))
	s.checkWinner()
}

func (s *Session) handleRepair(connID string, target game.Team) {
	if s.phase != PhaseBattle {
		return
	}
	health, changed := s.combat.Repair(s.roster.Get(connID), target)
	if !changed {
		return
	}
	s.broadcast(protocol.CastleUpdate(int(target), health))
}

func (s *Session) checkWinner() {
	w, ok := s.combat.Winner()
	if !ok {
		return
	}
	s.broadcast(protocol.GameOver(s.winnerName(w), &w))
	s.phase = PhaseOver
	s.log.Info("game over", zap.Stringer("winner", w))
}

// winnerName is what the client shows in its "X wins!" banner: the team name,
// or in solo mode the username of the surviving castle's owner.
func (s *Session) winnerName(w game.Team) string {
	if s.cfg.Mode == game.ModeSolo {
		for _, p := range s.roster.Players() {
			if p.CastleSlot != nil && *p.CastleSlot == int(w) {
				return p.Username
			}
		}
	}
	return w.String()
}

func (s *Session) handleLeave(connID string) {
	if ch, ok := s.clients[connID]; ok {
		close(ch)
		delete(s.clients, connID)
	}
	if s.roster.Get(connID) == nil {
		return
	}
	s.roster.Leave(connID)
	s.log.Info("player left", zap.String("conn", connID), zap.Int("roster", s.roster.Len()))
	s.broadcast(protocol.PlayerList(s.playersSnapshot()))

	if s.roster.RealCount() == 0 && s.phase != PhaseIdle {
		// Only fillers (or nobody) remain; nothing left to fight for.
		s.broadcast(protocol.GameOver(protocol.NoWinner, nil))
		s.roster.Reset()
		s.combat.Reset()
		s.phase = PhaseIdle
		s.log.Info("all real players gone, session reset")
	}
}

func (s *Session) playersSnapshot() []game.Player {
	players := s.roster.Players()
	out := make([]game.Player, 0, len(players))
	for _, p := range players {
		out = append(out, *p)
	}
	return out
}

func (s *Session) broadcast(msg protocol.ServerMessage) {
	for id, ch := range s.clients {
		select {
		case ch <- msg:
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(s.clients, id)
			s.log.Warn("dropped slow client", zap.String("conn", id))
		}
	}
}

func (s *Session) sendTo(connID string, msg protocol.ServerMessage) {
	ch, ok := s.clients[connID]
	if !ok {
		return
	}
	select {
	case ch <- msg:
	default:
		close(ch)
		delete(s.clients, connID)
		s.log.Warn("dropped slow client", zap.String("conn", connID))
	}
}

func (s *Session) shutdown() {
	for id, ch := range s.clients {
		close(ch)
		delete(s.clients, id)
	}
	s.cancel()
}
