package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/mwhitten/castle-siege-backend/internal/session"
)

// DefaultRoom is the room every client lands in unless they ask for another.
const DefaultRoom = "KEEP"

type HubMsg interface{ isHubMsg() }

type EnsureSession struct {
	Code  string
	Reply chan *session.Session
}

type GetSession struct {
	Code  string
	Reply chan *session.Session
}

type RemoveSession struct {
	Code string
}

type ListSessions struct {
	Reply chan []RoomInfo
}

type ShutdownHub struct{}

func (EnsureSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (RemoveSession) isHubMsg() {}
func (ListSessions) isHubMsg()  {}
func (ShutdownHub) isHubMsg()   {}

// RoomInfo is returned by the API for the room list.
type RoomInfo struct {
	Code    string `json:"code"`
	Players int    `json:"players"`
	Phase   string `json:"phase"`
}

// Hub owns the session map. Like the sessions themselves it is an actor: all
// access goes through the inbox, so the map needs no lock.
type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	cfg      session.Config
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, cfg session.Config, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		cfg:      cfg,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case EnsureSession:
				msg.Reply <- h.ensure(msg.Code)

			case GetSession:
				msg.Reply <- h.sessions[msg.Code] // May be nil

			case RemoveSession:
				if s, ok := h.sessions[msg.Code]; ok {
					s.Inbox() <- session.Shutdown{}
					delete(h.sessions, msg.Code)
					h.log.Info("room removed", zap.String("code", msg.Code))
				}

			case ListSessions:
				msg.Reply <- h.list()

			case ShutdownHub:
				for _, s := range h.sessions {
					s.Inbox() <- session.Shutdown{}
				}
				clear(h.sessions)
				h.cancel()
			}
		}
	}
}

func (h *Hub) ensure(code string) *session.Session {
	if s := h.sessions[code]; s != nil {
		return s
	}
	s := session.New(h.ctx, h.cfg, h.log.With(zap.String("room", code)))
	h.sessions[code] = s
	h.log.Info("room created", zap.String("code", code))
	return s
}

func (h *Hub) list() []RoomInfo {
	out := make([]RoomInfo, 0, len(h.sessions))
	for code, s := range h.sessions {
		reply := make(chan session.View, 1)
		s.Inbox() <- session.GetState{Reply: reply}
		v := <-reply
		out = append(out, RoomInfo{Code: code, Players: len(v.Players), Phase: string(v.Phase)})
	}
	return out
}
