package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
	"github.com/iamasit07/hotseat-connect4/internal/logger"
	"github.com/iamasit07/hotseat-connect4/pkg/uid"
)

var ErrTableNotFound = errors.New("table not found")

// Table owns at most one live GameState. A new game replaces it wholesale.
type Table struct {
	ID            string
	GameID        string
	Game          *domain.GameState
	CreatedAt     time.Time
	GameStartedAt time.Time
	FinishedAt    time.Time
	LastActivity  time.Time
	closed        bool
	mu            sync.Mutex
}

type Options struct {
	Width        int
	Height       int
	MaxDimension int
	FinishedTTL  time.Duration
	IdleTTL      time.Duration
}

func DefaultOptions() Options {
	return Options{
		Width:        domain.DefaultColumns,
		Height:       domain.DefaultRows,
		MaxDimension: 32,
		FinishedTTL:  time.Hour,
		IdleTTL:      24 * time.Hour,
	}
}

// NewGameRequest describes a game to start. Zero values fall back to the defaults.
type NewGameRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color1 string  `json:"color1"`
	Color2 string  `json:"color2"`
}

// TableManager manages live tables
type TableManager struct {
	tables   map[string]*Table // tableID → Table
	mu       sync.RWMutex
	opts     Options
	repo     GameRepository
	cache    SnapshotStore
	notifier Notifier
	metrics  Recorder
	pending  sync.WaitGroup
	now      func() time.Time
}

type Option func(*TableManager)

func WithRepository(repo GameRepository) Option {
	return func(tm *TableManager) { tm.repo = repo }
}

func WithSnapshots(cache SnapshotStore) Option {
	return func(tm *TableManager) { tm.cache = cache }
}

func WithRecorder(r Recorder) Option {
	return func(tm *TableManager) { tm.metrics = r }
}

func NewTableManager(opts Options, options ...Option) *TableManager {
	tm := &TableManager{
		tables:   make(map[string]*Table),
		opts:     opts,
		notifier: noopNotifier{},
		metrics:  noopRecorder{},
		now:      time.Now,
	}
	for _, o := range options {
		o(tm)
	}
	return tm
}

// SetNotifier is separate from the options because the socket layer is built after the manager.
func (tm *TableManager) SetNotifier(n Notifier) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if n == nil {
		n = noopNotifier{}
	}
	tm.notifier = n
}

func (tm *TableManager) getNotifier() Notifier {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.notifier
}

// newGameState validates the request against the adapter limits and builds the game.
func (tm *TableManager) newGameState(req NewGameRequest) (*domain.GameState, error) {
	width, height := req.Width, req.Height
	if width == 0 {
		width = float64(tm.opts.Width)
	}
	if height == 0 {
		height = float64(tm.opts.Height)
	}

	if limit := float64(tm.opts.MaxDimension); limit > 0 && (width > limit || height > limit) {
		return nil, fmt.Errorf("%w: at most %d", domain.ErrInvalidDimension, tm.opts.MaxDimension)
	}

	p1, p2 := domain.NewPlayers(req.Color1, req.Color2)
	return domain.NewGameStateFromFloat(width, height, p1, p2)
}

func (tm *TableManager) CreateTable(req NewGameRequest) (TableView, error) {
	g, err := tm.newGameState(req)
	if err != nil {
		return TableView{}, err
	}

	now := tm.now()
	table := &Table{
		ID:            uid.GenerateTableID(),
		GameID:        uid.GenerateTableID(),
		Game:          g,
		CreatedAt:     now,
		GameStartedAt: now,
		LastActivity:  now,
	}

	tm.mu.Lock()
	tm.tables[table.ID] = table
	tm.mu.Unlock()
	tm.metrics.TableOpened()

	table.mu.Lock()
	view := table.viewLocked()
	tm.storeSnapshot(view)
	table.mu.Unlock()

	logger.Log.Infof("[TABLE] Created table %s (%dx%d)", table.ID, g.Width(), g.Height())
	return view, nil
}

func (tm *TableManager) GetTable(tableID string) (*Table, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	table, exists := tm.tables[tableID]
	return table, exists
}

// View returns the live table, or the cached snapshot marked stale when this
// process does not hold the table.
func (tm *TableManager) View(ctx context.Context, tableID string) (TableView, error) {
	if table, ok := tm.GetTable(tableID); ok {
		table.mu.Lock()
		closed := table.closed
		view := table.viewLocked()
		table.mu.Unlock()
		if !closed {
			return view, nil
		}
	}

	if tm.cache != nil {
		view, err := tm.cache.Get(ctx, tableID)
		if err == nil {
			view.Stale = true
			return view, nil
		}
	}
	return TableView{}, ErrTableNotFound
}

// HandleMove applies a column selection to the table's game. Rejected moves are
// returned as outcomes and only the caller hears about them.
func (tm *TableManager) HandleMove(tableID string, column int) (domain.Outcome, TableView, error) {
	table, exists := tm.GetTable(tableID)
	if !exists {
		return domain.Outcome{}, TableView{}, ErrTableNotFound
	}

	started := time.Now()
	notifier := tm.getNotifier()
	table.mu.Lock()
	if table.closed {
		table.mu.Unlock()
		return domain.Outcome{}, TableView{}, ErrTableNotFound
	}

	outcome := table.Game.ApplyMove(column)
	if !outcome.Accepted() {
		view := table.viewLocked()
		table.mu.Unlock()
		tm.metrics.MoveApplied(outcome.Kind, time.Since(started).Seconds())
		return outcome, view, nil
	}

	now := tm.now()
	table.LastActivity = now
	if outcome.Terminal() {
		table.FinishedAt = now
	}
	view := table.viewLocked()

	var record domain.GameRecord
	var finished bool
	if outcome.Terminal() {
		record, finished = domain.NewGameRecord(table.GameID, table.ID, table.Game, table.GameStartedAt, now)
	}
	tm.storeSnapshot(view)

	// broadcast while holding the table lock so watchers see moves in order
	moveMsg := view.Message(domain.MsgMoveMade)
	moveMsg.Outcome = &outcome
	notifier.Broadcast(tableID, moveMsg)
	if finished {
		gameOverMsg := view.Message(domain.MsgGameOver)
		gameOverMsg.Outcome = &outcome
		gameOverMsg.Reason = record.Reason
		notifier.Broadcast(tableID, gameOverMsg)
	}
	table.mu.Unlock()

	if finished {
		tm.metrics.GameFinished(record.Reason)
		tm.saveGameAsync(record)
		logger.Log.Infof("[TABLE] Game %s on table %s finished: %s after %d moves", record.GameID, tableID, outcome, record.TotalMoves)
	}

	tm.metrics.MoveApplied(outcome.Kind, time.Since(started).Seconds())
	return outcome, view, nil
}

// NewGame discards the table's current game, finished or not, and starts a fresh one.
func (tm *TableManager) NewGame(tableID string, req NewGameRequest) (TableView, error) {
	table, exists := tm.GetTable(tableID)
	if !exists {
		return TableView{}, ErrTableNotFound
	}

	g, err := tm.newGameState(req)
	if err != nil {
		return TableView{}, err
	}

	notifier := tm.getNotifier()
	table.mu.Lock()
	if table.closed {
		table.mu.Unlock()
		return TableView{}, ErrTableNotFound
	}
	if !table.Game.GameOver() && table.Game.MoveCount() > 0 {
		logger.Log.Infof("[TABLE] Table %s abandoned game %s after %d moves", table.ID, table.GameID, table.Game.MoveCount())
	}
	now := tm.now()
	table.Game = g
	table.GameID = uid.GenerateTableID()
	table.GameStartedAt = now
	table.FinishedAt = time.Time{}
	table.LastActivity = now
	view := table.viewLocked()
	tm.storeSnapshot(view)
	notifier.Broadcast(tableID, view.Message(domain.MsgGameStart))
	table.mu.Unlock()

	return view, nil
}

func (tm *TableManager) CloseTable(tableID string) error {
	tm.mu.Lock()
	table, exists := tm.tables[tableID]
	if !exists {
		tm.mu.Unlock()
		return ErrTableNotFound
	}
	delete(tm.tables, tableID)
	tm.mu.Unlock()

	tm.finishClose(table)
	return nil
}

// finishClose closes a table already removed from the map.
func (tm *TableManager) finishClose(table *Table) {
	table.mu.Lock()
	table.closed = true
	tm.deleteSnapshot(table.ID)
	table.mu.Unlock()

	tm.metrics.TableClosed()
	tm.getNotifier().Broadcast(table.ID, domain.ServerMessage{Type: domain.MsgTableClosed, TableID: table.ID})
	logger.Log.Infof("[TABLE] Removed table %s", table.ID)
}

// ActiveTables lists live tables, most recently started first.
func (tm *TableManager) ActiveTables() []TableSummary {
	tm.mu.RLock()
	tables := make([]*Table, 0, len(tm.tables))
	for _, t := range tm.tables {
		tables = append(tables, t)
	}
	notifier := tm.notifier
	tm.mu.RUnlock()

	counter, _ := notifier.(interface{ Watchers(tableID string) int })

	summaries := make([]TableSummary, 0, len(tables))
	for _, t := range tables {
		t.mu.Lock()
		s := TableSummary{
			TableID:   t.ID,
			Width:     t.Game.Width(),
			Height:    t.Game.Height(),
			Status:    t.Game.Status(),
			MoveCount: t.Game.MoveCount(),
			StartedAt: t.GameStartedAt,
		}
		t.mu.Unlock()
		if counter != nil {
			s.Watchers = counter.Watchers(t.ID)
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].StartedAt.After(summaries[j].StartedAt)
	})
	return summaries
}

// CleanupOldTables drops finished tables after FinishedTTL and untouched ones after IdleTTL.
func (tm *TableManager) CleanupOldTables() int {
	now := tm.now()

	tm.mu.RLock()
	tables := make([]*Table, 0, len(tm.tables))
	for _, t := range tm.tables {
		tables = append(tables, t)
	}
	tm.mu.RUnlock()

	var stale []*Table
	for _, t := range tables {
		t.mu.Lock()
		expired := (t.Game.GameOver() && now.Sub(t.FinishedAt) > tm.opts.FinishedTTL) ||
			now.Sub(t.LastActivity) > tm.opts.IdleTTL
		t.mu.Unlock()
		if expired {
			stale = append(stale, t)
		}
	}

	removed := 0
	for _, t := range stale {
		tm.mu.Lock()
		current, ok := tm.tables[t.ID]
		if ok && current == t {
			delete(tm.tables, t.ID)
		}
		tm.mu.Unlock()
		if ok && current == t {
			tm.finishClose(t)
			removed++
		}
	}

	if removed > 0 {
		logger.Log.Infof("[TABLE] Memory cleanup: Removed %d stale tables", removed)
	}
	return removed
}

// Wait blocks until background archive writes are done.
func (tm *TableManager) Wait() {
	tm.pending.Wait()
}

// Saves game data in background to avoid blocking game_over messages
func (tm *TableManager) saveGameAsync(rec domain.GameRecord) {
	if tm.repo == nil {
		return
	}

	tm.pending.Add(1)
	go func() {
		defer tm.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := tm.repo.SaveGame(ctx, rec); err != nil {
			logger.Log.Errorf("[GAME] Error saving game %s: %v", rec.GameID, err)
		} else {
			logger.Log.Infof("[GAME] Game %s saved successfully", rec.GameID)
		}
	}()
}

// snapshot writes happen under the table lock so they land in move order
func (tm *TableManager) storeSnapshot(view TableView) {
	if tm.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := tm.cache.Put(ctx, view.TableID, view); err != nil {
		logger.Log.Warnf("[REDIS] Failed to cache table %s: %v", view.TableID, err)
	}
}

func (tm *TableManager) deleteSnapshot(tableID string) {
	if tm.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := tm.cache.Delete(ctx, tableID); err != nil {
		logger.Log.Warnf("[REDIS] Failed to drop table %s: %v", tableID, err)
	}
}
