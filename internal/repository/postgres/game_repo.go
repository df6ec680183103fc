package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// SaveGame archives a finished game. Saving the same game twice keeps the latest result.
func (r *GameRepo) SaveGame(ctx context.Context, rec domain.GameRecord) error {
	boardJSON, runJSON, err := encodeBoard(rec)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO game (game_id, table_id, width, height, player1_color, player2_color, winner, reason, total_moves, duration_seconds, created_at, finished_at, board_state, winning_run)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (game_id) DO UPDATE SET
		winner = EXCLUDED.winner,
		reason = EXCLUDED.reason,
		total_moves = EXCLUDED.total_moves,
		duration_seconds = EXCLUDED.duration_seconds,
		finished_at = EXCLUDED.finished_at,
		board_state = EXCLUDED.board_state,
		winning_run = EXCLUDED.winning_run;
	`

	_, err = r.DB.ExecContext(ctx, query,
		rec.GameID, rec.TableID, rec.Width, rec.Height, rec.Player1Color, rec.Player2Color,
		int(rec.Winner), rec.Reason, rec.TotalMoves, rec.DurationSeconds,
		rec.CreatedAt, rec.FinishedAt, boardJSON, runJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %w", err)
	}
	return nil
}

// GetGameByID retrieves one archived game including its final board
func (r *GameRepo) GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	query := `
	SELECT game_id, table_id, width, height, player1_color, player2_color, winner, reason,
	       total_moves, duration_seconds, created_at, finished_at, board_state, winning_run
	FROM game
	WHERE game_id = $1;
	`

	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, gameID), true)
	if err == sql.ErrNoRows {
		return nil, domain.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return rec, nil
}

// ListRecentGames returns the latest finished games, newest first, without boards.
func (r *GameRepo) ListRecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `
	SELECT game_id, table_id, width, height, player1_color, player2_color, winner, reason,
	       total_moves, duration_seconds, created_at, finished_at
	FROM game
	ORDER BY finished_at DESC
	LIMIT $1;
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	games := []domain.GameRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, *rec)
	}
	return games, rows.Err()
}

// DeleteOlderThan removes archived games finished more than days ago
func (r *GameRepo) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	res, err := r.DB.ExecContext(ctx, `DELETE FROM game WHERE finished_at < $1;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old games: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner, withBoard bool) (*domain.GameRecord, error) {
	var rec domain.GameRecord
	var winner int
	dest := []any{
		&rec.GameID,
		&rec.TableID,
		&rec.Width,
		&rec.Height,
		&rec.Player1Color,
		&rec.Player2Color,
		&winner,
		&rec.Reason,
		&rec.TotalMoves,
		&rec.DurationSeconds,
		&rec.CreatedAt,
		&rec.FinishedAt,
	}

	var boardJSON, runJSON []byte
	if withBoard {
		dest = append(dest, &boardJSON, &runJSON)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	rec.Winner = domain.PlayerID(winner)

	if err := decodeBoard(&rec, boardJSON, runJSON); err != nil {
		return nil, err
	}
	return &rec, nil
}

func encodeBoard(rec domain.GameRecord) ([]byte, []byte, error) {
	boardJSON, err := json.Marshal(rec.BoardState)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal board state: %w", err)
	}
	var runJSON []byte
	if len(rec.WinningRun) > 0 {
		if runJSON, err = json.Marshal(rec.WinningRun); err != nil {
			return nil, nil, fmt.Errorf("failed to marshal winning run: %w", err)
		}
	}
	return boardJSON, runJSON, nil
}

func decodeBoard(rec *domain.GameRecord, boardJSON, runJSON []byte) error {
	if len(boardJSON) > 0 {
		if err := json.Unmarshal(boardJSON, &rec.BoardState); err != nil {
			return fmt.Errorf("failed to unmarshal board state: %w", err)
		}
	}
	if len(runJSON) > 0 {
		if err := json.Unmarshal(runJSON, &rec.WinningRun); err != nil {
			return fmt.Errorf("failed to unmarshal winning run: %w", err)
		}
	}
	return nil
}
