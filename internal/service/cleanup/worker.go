package cleanup

import (
	"context"
	"time"

	"github.com/iamasit07/hotseat-connect4/internal/logger"
)

type TableSweeper interface {
	CleanupOldTables() int
}

type HistoryPruner interface {
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type Worker struct {
	Tables        TableSweeper
	History       HistoryPruner // nil disables history pruning
	Interval      time.Duration
	RetentionDays int
}

func NewWorker(tables TableSweeper, history HistoryPruner, interval time.Duration, retentionDays int) *Worker {
	return &Worker{Tables: tables, History: history, Interval: interval, RetentionDays: retentionDays}
}

// Start runs one cleanup immediately and then every Interval until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	logger.Log.Info("[CLEANUP] Background worker started")
	w.RunOnce(ctx)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.RunOnce(ctx)
		case <-ctx.Done():
			logger.Log.Info("[CLEANUP] Background worker stopped")
			return
		}
	}
}

// RunOnce executes the actual cleanup logic
func (w *Worker) RunOnce(ctx context.Context) {
	logger.Log.Debug("[CLEANUP] Starting scheduled cleanup task...")

	w.Tables.CleanupOldTables()

	if w.History == nil || w.RetentionDays <= 0 {
		return
	}
	deletedCount, err := w.History.DeleteOlderThan(ctx, w.RetentionDays)
	if err != nil {
		logger.Log.Errorf("[CLEANUP] Error pruning game history: %v", err)
	} else if deletedCount > 0 {
		logger.Log.Infof("[CLEANUP] Removed %d archived games older than %d days", deletedCount, w.RetentionDays)
	}
}
