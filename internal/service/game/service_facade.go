package game

import (
	"context"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

// Notifier fans a message out to everyone watching a table.
type Notifier interface {
	Broadcast(tableID string, message domain.ServerMessage)
}

// GameRepository archives finished games.
type GameRepository interface {
	SaveGame(ctx context.Context, rec domain.GameRecord) error
}

// SnapshotStore keeps the last known view of each live table outside the process.
type SnapshotStore interface {
	Put(ctx context.Context, tableID string, view TableView) error
	Get(ctx context.Context, tableID string) (TableView, error)
	Delete(ctx context.Context, tableID string) error
}

// Recorder receives table and move metrics.
type Recorder interface {
	TableOpened()
	TableClosed()
	MoveApplied(kind domain.OutcomeKind, seconds float64)
	GameFinished(reason string)
}

type noopRecorder struct{}

func (noopRecorder) TableOpened()                            {}
func (noopRecorder) TableClosed()                            {}
func (noopRecorder) MoveApplied(domain.OutcomeKind, float64) {}
func (noopRecorder) GameFinished(string)                     {}

type noopNotifier struct{}

func (noopNotifier) Broadcast(string, domain.ServerMessage) {}
