package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mwhitten/castle-siege-backend/internal/hub"
	"github.com/mwhitten/castle-siege-backend/internal/protocol"
	"github.com/mwhitten/castle-siege-backend/internal/session"
)

const (
	writeTimeout = 3 * time.Second
	// Players sit in the waiting room for a while; only a truly dead
	// connection should trip this.
	readTimeout = 10 * time.Minute
)

func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		room := r.URL.Query().Get("room")
		if room == "" {
			room = hub.DefaultRoom
		}

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.EnsureSession{Code: room, Reply: reply}
		sess := <-reply

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan protocol.ServerMessage, 32)
		connID := uuid.NewString()

		sess.Inbox() <- session.Join{ConnID: connID, Outbox: out}
		defer func() { sess.Inbox() <- session.Leave{ConnID: connID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for msg := range out {
				payload, err := json.Marshal(msg)
				if err != nil {
					log.Error("marshal server message", zap.Error(err))
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// A username in the query joins the roster right away; otherwise the
		// client sends an explicit join message once the player picks a name.
		if username := r.URL.Query().Get("username"); username != "" {
			sess.Inbox() <- session.FromClient{ConnID: connID, Msg: protocol.ClientMessage{
				Type: protocol.ClientJoin, Username: username,
			}}
		}

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Otherwise, just exit (session.Leave in defer):
				return
			}

			var cm protocol.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"error","error":"bad json"}`))
				continue
			}
			if err := cm.Validate(); err != nil {
				msg, _ := json.Marshal(protocol.Error(err.Error()))
				_ = conn.Write(r.Context(), websocket.MessageText, msg)
				continue
			}

			sess.Inbox() <- session.FromClient{ConnID: connID, Msg: cm}
		}
	}
}
