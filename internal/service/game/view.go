package game

import (
	"time"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

// TableView is a read-only copy of a table, safe to hand to other goroutines.
type TableView struct {
	TableID       string            `json:"tableId"`
	GameID        string            `json:"gameId"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	Players       []domain.Player   `json:"players"`
	CurrentPlayer domain.PlayerID   `json:"currentPlayer"`
	Status        domain.GameStatus `json:"status"`
	GameOver      bool              `json:"gameOver"`
	Winner        domain.PlayerID   `json:"winner,omitempty"`
	WinningRun    []domain.Cell     `json:"winningRun,omitempty"`
	LastMove      *domain.Cell      `json:"lastMove,omitempty"`
	MoveCount     int               `json:"moveCount"`
	ValidMoves    []int             `json:"validMoves"`
	Board         [][]int           `json:"board"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	Stale         bool              `json:"stale,omitempty"`
}

// TableSummary is the spectator list entry.
type TableSummary struct {
	TableID   string            `json:"tableId"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Status    domain.GameStatus `json:"status"`
	MoveCount int               `json:"moveCount"`
	Watchers  int               `json:"watchers"`
	StartedAt time.Time         `json:"startedAt"`
}

// caller must hold t.mu
func (t *Table) viewLocked() TableView {
	g := t.Game
	p1, p2 := g.Players()

	view := TableView{
		TableID:       t.ID,
		GameID:        t.GameID,
		Width:         g.Width(),
		Height:        g.Height(),
		Players:       []domain.Player{p1, p2},
		CurrentPlayer: g.CurrentPlayer().ID,
		Status:        g.Status(),
		GameOver:      g.GameOver(),
		Winner:        g.Winner(),
		WinningRun:    g.WinningRun(),
		MoveCount:     g.MoveCount(),
		ValidMoves:    g.ValidMoves(),
		Board:         g.Snapshot(),
		CreatedAt:     t.GameStartedAt,
		UpdatedAt:     t.LastActivity,
	}
	if last, ok := g.LastMove(); ok {
		view.LastMove = &last
	}
	return view
}

// Message turns the view into a socket message of the given type.
func (v TableView) Message(msgType string) domain.ServerMessage {
	return domain.ServerMessage{
		Type:          msgType,
		TableID:       v.TableID,
		Width:         v.Width,
		Height:        v.Height,
		Players:       v.Players,
		CurrentPlayer: int(v.CurrentPlayer),
		Status:        v.Status,
		Board:         v.Board,
		Winner:        int(v.Winner),
		WinningRun:    v.WinningRun,
		MoveCount:     v.MoveCount,
	}
}
