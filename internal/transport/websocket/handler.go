package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
	"github.com/iamasit07/hotseat-connect4/internal/logger"
	"github.com/iamasit07/hotseat-connect4/internal/service/game"
	"github.com/iamasit07/hotseat-connect4/pkg/auth"
	"github.com/iamasit07/hotseat-connect4/pkg/uid"
	"github.com/iamasit07/hotseat-connect4/pkg/useragent"
)

const (
	pingInterval = 30 * time.Second
	readTimeout  = 60 * time.Second
)

// ConnRecorder receives connection level metrics.
type ConnRecorder interface {
	ConnectionOpened()
	ConnectionClosed()
	MessageReceived()
}

type noopConnRecorder struct{}

func (noopConnRecorder) ConnectionOpened() {}
func (noopConnRecorder) ConnectionClosed() {}
func (noopConnRecorder) MessageReceived()  {}

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager *ConnectionManager
	Tables      *game.TableManager
	Tokens      *auth.TableTokens
	Metrics     ConnRecorder
	Upgrader    websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. An empty allowedOrigins accepts any origin.
func NewHandler(cm *ConnectionManager, tm *game.TableManager, tokens *auth.TableTokens, metrics ConnRecorder, allowedOrigins []string) *Handler {
	if metrics == nil {
		metrics = noopConnRecorder{}
	}
	return &Handler{
		ConnManager: cm,
		Tables:      tm,
		Tokens:      tokens,
		Metrics:     metrics,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if len(allowed) == 0 || origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == origin || o == "*" {
				return true
			}
		}
		return false
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warnf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn, useragent.Describe(r)+" from "+useragent.ClientIP(r))
}

// session is the per-socket state; only the read loop touches it.
type session struct {
	connID string
	// tables this socket may move on, learned from create_table or a valid token
	controls map[string]bool
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn, client string) {
	s := &session{connID: uid.GenerateConnectionID(), controls: make(map[string]bool)}
	h.ConnManager.AddConnection(s.connID, conn)
	h.Metrics.ConnectionOpened()
	logger.Log.Infof("[WS] Connection %s opened by %s", s.connID, client)

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	done := make(chan struct{})
	go h.keepAlive(s.connID, done)

	defer func() {
		close(done)
		h.ConnManager.RemoveConnection(s.connID)
		h.Metrics.ConnectionClosed()
		logger.Log.Infof("[WS] Connection %s closed", s.connID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warnf("[WS] Connection %s dropped: %v", s.connID, err)
			}
			return
		}
		h.Metrics.MessageReceived()

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendError(s.connID, "Invalid message format")
			continue
		}

		h.processMessage(s, msg)
	}
}

func (h *Handler) keepAlive(connID string, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := h.ConnManager.Ping(connID); err != nil {
				return
			}
		}
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(s *session, msg domain.ClientMessage) {
	switch msg.Type {
	case domain.MsgCreateTable:
		view, err := h.Tables.CreateTable(newGameRequest(msg))
		if err != nil {
			h.sendError(s.connID, err.Error())
			return
		}
		token, err := h.Tokens.Generate(view.TableID)
		if err != nil {
			logger.Log.Errorf("[WS] Failed to sign token for table %s: %v", view.TableID, err)
			h.sendError(s.connID, "Failed to create table")
			return
		}
		s.controls[view.TableID] = true
		h.ConnManager.Watch(s.connID, view.TableID)

		reply := view.Message(domain.MsgTableCreated)
		reply.Token = token
		h.ConnManager.SendMessage(s.connID, reply)

	case domain.MsgJoinTable:
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		view, err := h.Tables.View(ctx, msg.TableID)
		cancel()
		if err != nil || view.Stale {
			h.sendError(s.connID, game.ErrTableNotFound.Error())
			return
		}
		if msg.Token != "" {
			if err := h.Tokens.Authorize(msg.Token, msg.TableID); err != nil {
				h.sendError(s.connID, "Invalid table token")
				return
			}
			s.controls[msg.TableID] = true
		}
		h.ConnManager.Watch(s.connID, msg.TableID)
		h.ConnManager.SendMessage(s.connID, view.Message(domain.MsgTableState))

	case domain.MsgMakeMove:
		tableID, ok := h.authorize(s, msg)
		if !ok {
			return
		}
		outcome, view, err := h.Tables.HandleMove(tableID, msg.Column)
		if err != nil {
			h.sendError(s.connID, err.Error())
			return
		}
		if !outcome.Accepted() {
			reply := view.Message(domain.MsgMoveRejected)
			reply.Outcome = &outcome
			reply.Message = outcome.Err().Error()
			h.ConnManager.SendMessage(s.connID, reply)
		}

	case domain.MsgNewGame:
		tableID, ok := h.authorize(s, msg)
		if !ok {
			return
		}
		if _, err := h.Tables.NewGame(tableID, newGameRequest(msg)); err != nil {
			h.sendError(s.connID, err.Error())
		}

	case domain.MsgLeaveTable:
		h.ConnManager.Unwatch(s.connID)

	default:
		h.sendError(s.connID, "Unknown message type")
	}
}

// authorize resolves the table a control message targets and checks the socket may drive it.
func (h *Handler) authorize(s *session, msg domain.ClientMessage) (string, bool) {
	tableID := msg.TableID
	if tableID == "" {
		tableID = h.ConnManager.WatchedTable(s.connID)
	}
	if tableID == "" {
		h.sendError(s.connID, "Not at a table")
		return "", false
	}

	if !s.controls[tableID] {
		if msg.Token == "" || h.Tokens.Authorize(msg.Token, tableID) != nil {
			h.sendError(s.connID, "Not allowed to play at this table")
			return "", false
		}
		s.controls[tableID] = true
	}

	if h.ConnManager.WatchedTable(s.connID) != tableID {
		h.ConnManager.Watch(s.connID, tableID)
	}
	return tableID, true
}

func (h *Handler) sendError(connID, message string) {
	h.ConnManager.SendMessage(connID, domain.ServerMessage{Type: domain.MsgError, Message: message})
}

func newGameRequest(msg domain.ClientMessage) game.NewGameRequest {
	return game.NewGameRequest{
		Width:  msg.Width,
		Height: msg.Height,
		Color1: msg.Color1,
		Color2: msg.Color2,
	}
}
