package domain

import "time"

// GameRecord is the archived form of a finished game.
type GameRecord struct {
	GameID          string    `json:"gameId"`
	TableID         string    `json:"tableId"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	Player1Color    string    `json:"player1Color"`
	Player2Color    string    `json:"player2Color"`
	Winner          PlayerID  `json:"winner"`
	Reason          string    `json:"reason"`
	TotalMoves      int       `json:"totalMoves"`
	DurationSeconds int       `json:"durationSeconds"`
	CreatedAt       time.Time `json:"createdAt"`
	FinishedAt      time.Time `json:"finishedAt"`
	BoardState      [][]int   `json:"board,omitempty"`
	WinningRun      []Cell    `json:"winningRun,omitempty"`
}

// NewGameRecord captures a finished game. It returns false while the game is still running.
func NewGameRecord(gameID, tableID string, g *GameState, createdAt, finishedAt time.Time) (GameRecord, bool) {
	if !g.GameOver() {
		return GameRecord{}, false
	}

	p1, p2 := g.Players()
	reason := ReasonDraw
	if g.Winner() != Empty {
		reason = ReasonConnectFour
	}

	return GameRecord{
		GameID:          gameID,
		TableID:         tableID,
		Width:           g.Width(),
		Height:          g.Height(),
		Player1Color:    p1.Color,
		Player2Color:    p2.Color,
		Winner:          g.Winner(),
		Reason:          reason,
		TotalMoves:      g.MoveCount(),
		DurationSeconds: int(finishedAt.Sub(createdAt).Seconds()),
		CreatedAt:       createdAt,
		FinishedAt:      finishedAt,
		BoardState:      g.Snapshot(),
		WinningRun:      g.WinningRun(),
	}, true
}
