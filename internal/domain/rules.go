package domain

// run directions in scan order: horizontal, vertical, diagonal down-right, diagonal down-left
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// CheckForWin looks at every cell and asks "does a win start here?".
func (b *Board) CheckForWin(player PlayerID) bool {
	_, ok := b.WinningRun(player)
	return ok
}

// WinningRun returns the first run of four owned by player, anchors scanned
// row-major and directions in horiz, vert, diagDR, diagDL order.
func (b *Board) WinningRun(player PlayerID) ([]Cell, bool) {
	if player == Empty {
		return nil, false
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			for _, d := range directions {
				if b.isRun(y, x, d[0], d[1], player) {
					run := make([]Cell, ToWin)
					for i := 0; i < ToWin; i++ {
						run[i] = Cell{Row: y + i*d[0], Column: x + i*d[1]}
					}
					return run, true
				}
			}
		}
	}
	return nil, false
}

func (b *Board) isRun(y, x, dy, dx int, player PlayerID) bool {
	for i := 0; i < ToWin; i++ {
		r, c := y+i*dy, x+i*dx
		if !b.InBounds(r, c) || b.cells[r][c] != player {
			return false
		}
	}
	return true
}

// CheckWinAt only checks lines passing through (row, column).
// On any board reachable through play it agrees with CheckForWin.
func (b *Board) CheckWinAt(row, column int, player PlayerID) bool {
	if player == Empty || !b.InBounds(row, column) || b.cells[row][column] != player {
		return false
	}
	for _, d := range directions {
		count := 1 + b.countDiskInDirection(row, column, d[0], d[1], player) +
			b.countDiskInDirection(row, column, -d[0], -d[1], player)
		if count >= ToWin {
			return true
		}
	}
	return false
}

// this counts the number of disks in a specific direction, excluding the start cell
func (b *Board) countDiskInDirection(row, column, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for b.InBounds(r, c) && b.cells[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
