package domain

import "fmt"

type OutcomeKind string

const (
	OutcomePlaced           OutcomeKind = "placed"
	OutcomeWin              OutcomeKind = "win"
	OutcomeTie              OutcomeKind = "tie"
	OutcomeColumnFull       OutcomeKind = "column_full"
	OutcomeGameAlreadyOver  OutcomeKind = "game_already_over"
	OutcomeOutOfRangeColumn OutcomeKind = "out_of_range_column"
)

// Outcome is what ApplyMove reports. Rejections are ordinary values, not errors.
//
// Row is -1 for rejected moves. Player is the mover for Placed, Win and Tie;
// Next is only set for Placed. Run holds the four winning cells for Win.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Row    int         `json:"row"`
	Column int         `json:"column"`
	Player PlayerID    `json:"player,omitempty"`
	Next   PlayerID    `json:"next,omitempty"`
	Run    []Cell      `json:"run,omitempty"`
}

func placed(row, column int, mover, next PlayerID) Outcome {
	return Outcome{Kind: OutcomePlaced, Row: row, Column: column, Player: mover, Next: next}
}

func win(player PlayerID, row, column int, run []Cell) Outcome {
	return Outcome{Kind: OutcomeWin, Row: row, Column: column, Player: player, Run: run}
}

func tie(row, column int, mover PlayerID) Outcome {
	return Outcome{Kind: OutcomeTie, Row: row, Column: column, Player: mover}
}

func rejected(kind OutcomeKind, column int) Outcome {
	return Outcome{Kind: kind, Row: -1, Column: column}
}

// Accepted reports whether the move changed the board.
func (o Outcome) Accepted() bool {
	switch o.Kind {
	case OutcomePlaced, OutcomeWin, OutcomeTie:
		return true
	}
	return false
}

// Terminal reports whether the move ended the game.
func (o Outcome) Terminal() bool {
	return o.Kind == OutcomeWin || o.Kind == OutcomeTie
}

// Err maps a rejected outcome to its sentinel error, nil for accepted moves.
func (o Outcome) Err() error {
	switch o.Kind {
	case OutcomeColumnFull:
		return ErrColumnFull
	case OutcomeGameAlreadyOver:
		return ErrGameOver
	case OutcomeOutOfRangeColumn:
		return ErrColumnOutOfRange
	}
	return nil
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomePlaced:
		return fmt.Sprintf("Placed(row=%d, column=%d, next=player %d)", o.Row, o.Column, o.Next)
	case OutcomeWin:
		return fmt.Sprintf("Win(player %d, row=%d, column=%d)", o.Player, o.Row, o.Column)
	case OutcomeTie:
		return "Tie"
	case OutcomeColumnFull:
		return fmt.Sprintf("ColumnFull(column=%d)", o.Column)
	case OutcomeGameAlreadyOver:
		return "GameAlreadyOver"
	case OutcomeOutOfRangeColumn:
		return fmt.Sprintf("OutOfRangeColumn(column=%d)", o.Column)
	}
	return string(o.Kind)
}
