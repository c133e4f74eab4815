package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

// WinCombos - every line of the grid: 3 rows, 3 columns, 2 diagonals.
var WinCombos = [8][3]entity.Move{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// Winner - returns the owner of a completed line, or entity.Empty when there is none.
// The board is received by value so the caller's grid is never touched.
func Winner(board entity.Board) entity.Owner {
	for _, combo := range WinCombos {
		a, b, c := board.At(combo[0]), board.At(combo[1]), board.At(combo[2])
		if a != entity.Empty && a == b && b == c {
			return a
		}
	}

	return entity.Empty
}

// Simulate returns a copy of board with owner's mark on move. Occupied cells are
// overwritten on the copy; the live board is validated on commit, not here.
func Simulate(board entity.Board, move entity.Move, owner entity.Owner) entity.Board {
	board[move.Row][move.Col] = owner
	return board
}

// Completes reports whether owner playing move finishes a line.
func Completes(board entity.Board, move entity.Move, owner entity.Owner) bool {
	if !move.OnBoard() {
		return false
	}

	return Winner(Simulate(board, move, owner)) == owner
}
