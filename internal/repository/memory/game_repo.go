// Package memory archives finished games in process memory. The server falls
// back to it when no DATABASE_URL is configured; history is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

type GameRepo struct {
	mu    sync.RWMutex
	games map[string]domain.GameRecord
}

func NewGameRepo() *GameRepo {
	return &GameRepo{games: make(map[string]domain.GameRecord)}
}

func (m *GameRepo) SaveGame(ctx context.Context, rec domain.GameRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[rec.GameID] = rec
	return nil
}

func (m *GameRepo) GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.games[gameID]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return &rec, nil
}

// ListRecentGames mirrors the SQL repo: newest first, boards stripped.
func (m *GameRepo) ListRecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	m.mu.RLock()
	games := make([]domain.GameRecord, 0, len(m.games))
	for _, rec := range m.games {
		rec.BoardState = nil
		rec.WinningRun = nil
		games = append(games, rec)
	}
	m.mu.RUnlock()

	sort.Slice(games, func(i, j int) bool {
		return games[i].FinishedAt.After(games[j].FinishedAt)
	})
	if len(games) > limit {
		games = games[:limit]
	}
	return games, nil
}

func (m *GameRepo) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, rec := range m.games {
		if rec.FinishedAt.Before(cutoff) {
			delete(m.games, id)
			deleted++
		}
	}
	return deleted, nil
}
