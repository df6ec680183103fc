package domain

// Board is a fixed height x width grid. cells[0] is the top row, cells[height-1] the bottom.
type Board struct {
	width  int
	height int
	cells  [][]PlayerID
}

// Cell is a (row, column) position on the board.
type Cell struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimension
	}

	cells := make([][]PlayerID, height)
	for i := range cells {
		cells[i] = make([]PlayerID, width)
	}
	return &Board{width: width, height: height, cells: cells}, nil
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

func (b *Board) InBounds(row, column int) bool {
	return row >= 0 && row < b.height && column >= 0 && column < b.width
}

// At returns the occupant of a cell, Empty when the cell is free or off the board.
func (b *Board) At(row, column int) PlayerID {
	if !b.InBounds(row, column) {
		return Empty
	}
	return b.cells[row][column]
}

// FindSpotForColumn scans from the bottom row up and returns the first empty row.
// ok is false when the column is full or does not exist.
func (b *Board) FindSpotForColumn(column int) (row int, ok bool) {
	if column < 0 || column >= b.width {
		return -1, false
	}
	for row := b.height - 1; row >= 0; row-- {
		if b.cells[row][column] == Empty {
			return row, true
		}
	}
	return -1, false
}

// DropDisk lets the disk fall to the lowest empty cell of the column.
func (b *Board) DropDisk(column int, player PlayerID) (int, error) {
	if column < 0 || column >= b.width {
		return -1, ErrColumnOutOfRange
	}
	row, ok := b.FindSpotForColumn(column)
	if !ok {
		return -1, ErrColumnFull
	}
	b.cells[row][column] = player
	return row, nil
}

// pieces only stack from the bottom, so a full top row means a full board
func (b *Board) IsFull() bool {
	for c := 0; c < b.width; c++ {
		if b.cells[0][c] == Empty {
			return false
		}
	}
	return true
}

func (b *Board) ValidMoves() []int {
	moves := []int{}
	for c := 0; c < b.width; c++ {
		if b.cells[0][c] == Empty {
			moves = append(moves, c)
		}
	}
	return moves
}

// Snapshot converts the grid to plain ints for storage and the wire.
func (b *Board) Snapshot() [][]int {
	out := make([][]int, len(b.cells))
	for i := range b.cells {
		out[i] = make([]int, len(b.cells[i]))
		for j := range b.cells[i] {
			out[i][j] = int(b.cells[i][j])
		}
	}
	return out
}
