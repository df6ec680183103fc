package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryReader is the read side of the game archive.
type HistoryReader interface {
	GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error)
	ListRecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error)
}

type HistoryHandler struct {
	Games HistoryReader
}

func NewHistoryHandler(games HistoryReader) *HistoryHandler {
	return &HistoryHandler{Games: games}
}

type historyItem struct {
	ID              string          `json:"id"`
	Width           int             `json:"width"`
	Height          int             `json:"height"`
	Winner          domain.PlayerID `json:"winner"`
	WinnerColor     string          `json:"winnerColor,omitempty"`
	EndReason       string          `json:"endReason"`
	MovesCount      int             `json:"movesCount"`
	DurationSeconds int             `json:"durationSeconds"`
	FinishedAt      string          `json:"finishedAt"`
}

func (h *HistoryHandler) GetHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := h.Games.ListRecentGames(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	history := make([]historyItem, 0, len(records))
	for _, rec := range records {
		item := historyItem{
			ID:              rec.GameID,
			Width:           rec.Width,
			Height:          rec.Height,
			Winner:          rec.Winner,
			EndReason:       rec.Reason,
			MovesCount:      rec.TotalMoves,
			DurationSeconds: rec.DurationSeconds,
			FinishedAt:      rec.FinishedAt.UTC().Format(time.RFC3339),
		}
		switch rec.Winner {
		case domain.Player1:
			item.WinnerColor = rec.Player1Color
		case domain.Player2:
			item.WinnerColor = rec.Player2Color
		}
		history = append(history, item)
	}

	c.JSON(http.StatusOK, history)
}

// GetGameDetails returns one archived game including its final board.
func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	rec, err := h.Games.GetGameByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
