package domain

import "math"

// GameState owns one game from the first move to a win or a tie.
// It is not safe for concurrent use; callers serialise moves.
type GameState struct {
	board     *Board
	players   [2]Player
	current   int // index into players
	gameOver  bool
	winner    PlayerID
	winRun    []Cell
	moveCount int
	lastMove  *Cell
}

func NewGameState(width, height int, player1, player2 Player) (*GameState, error) {
	if player1.ID == Empty || player2.ID == Empty || player1.ID == player2.ID {
		return nil, ErrInvalidPlayers
	}

	board, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}

	return &GameState{
		board:   board,
		players: [2]Player{player1, player2},
		current: 0,
	}, nil
}

// NewGameStateFromFloat is the entry point for untyped numeric input.
// NaN, infinities, fractions and values <= 0 fail with ErrInvalidDimension.
func NewGameStateFromFloat(width, height float64, player1, player2 Player) (*GameState, error) {
	w, err := dimension(width)
	if err != nil {
		return nil, err
	}
	h, err := dimension(height)
	if err != nil {
		return nil, err
	}
	return NewGameState(w, h, player1, player2)
}

func dimension(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, ErrInvalidDimension
	}
	return int(v), nil
}

// ApplyMove drops a disk for the current player into column.
func (g *GameState) ApplyMove(column int) Outcome {
	if g.gameOver {
		return rejected(OutcomeGameAlreadyOver, column)
	}
	if column < 0 || column >= g.board.width {
		return rejected(OutcomeOutOfRangeColumn, column)
	}

	mover := g.players[g.current].ID
	row, err := g.board.DropDisk(column, mover)
	if err != nil {
		return rejected(OutcomeColumnFull, column)
	}

	g.moveCount++
	g.lastMove = &Cell{Row: row, Column: column}

	if g.board.CheckWinAt(row, column, mover) {
		g.gameOver = true
		g.winner = mover
		g.winRun, _ = g.board.WinningRun(mover)
		return win(mover, row, column, g.winRun)
	}

	if g.board.IsFull() {
		g.gameOver = true
		return tie(row, column, mover)
	}

	g.current = 1 - g.current
	return placed(row, column, mover, g.players[g.current].ID)
}

// CheckForWin is the brute-force scan over the whole grid.
func (g *GameState) CheckForWin(player Player) bool {
	return g.board.CheckForWin(player.ID)
}

func (g *GameState) FindSpotForColumn(column int) (int, bool) {
	return g.board.FindSpotForColumn(column)
}

func (g *GameState) CurrentPlayer() Player { return g.players[g.current] }
func (g *GameState) GameOver() bool        { return g.gameOver }
func (g *GameState) Width() int            { return g.board.width }
func (g *GameState) Height() int           { return g.board.height }
func (g *GameState) MoveCount() int        { return g.moveCount }
func (g *GameState) Winner() PlayerID      { return g.winner }

func (g *GameState) Players() (Player, Player) {
	return g.players[0], g.players[1]
}

// Player looks up a configured player by id.
func (g *GameState) Player(id PlayerID) (Player, bool) {
	for _, p := range g.players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func (g *GameState) At(row, column int) PlayerID {
	return g.board.At(row, column)
}

// WinningRun returns a copy of the cells that won the game, nil otherwise.
func (g *GameState) WinningRun() []Cell {
	if g.winRun == nil {
		return nil
	}
	run := make([]Cell, len(g.winRun))
	copy(run, g.winRun)
	return run
}

func (g *GameState) LastMove() (Cell, bool) {
	if g.lastMove == nil {
		return Cell{}, false
	}
	return *g.lastMove, true
}

func (g *GameState) Status() GameStatus {
	switch {
	case !g.gameOver:
		return StatusActive
	case g.winner != Empty:
		return StatusWon
	default:
		return StatusDraw
	}
}

func (g *GameState) Snapshot() [][]int {
	return g.board.Snapshot()
}

func (g *GameState) ValidMoves() []int {
	if g.gameOver {
		return []int{}
	}
	return g.board.ValidMoves()
}
