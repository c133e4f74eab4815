package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
)

// Owner - who holds a cell.
type Owner int

const (
	Empty Owner = iota
	Self
	Opponent
)

const (
	BoardSize = 3

	// NoMove is the column sent by the transport when there is no prior opponent move.
	NoMove = -1
)

func (that Owner) String() string {
	switch that {
	case Self:
		return "self"
	case Opponent:
		return "opponent"
	default:
		return "empty"
	}
}

// Move is a (row, col) cell coordinate.
type Move struct {
	Row int `json:"row" validate:"min=0,max=2"`
	Col int `json:"col" validate:"min=0,max=2"`
}

func (that Move) String() string {
	return fmt.Sprintf("%d %d", that.Row, that.Col)
}

// OnBoard reports whether both coordinates are inside the grid.
func (that Move) OnBoard() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// Corners in the order the fallback prefers them.
var Corners = [4]Move{
	{Row: 0, Col: 0},
	{Row: 2, Col: 0},
	{Row: 0, Col: 2},
	{Row: 2, Col: 2},
}

// Board is a 3x3 grid of owners. It is a value type: assigning it copies every cell.
type Board [BoardSize][BoardSize]Owner

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// At returns the owner of the cell.
func (that Board) At(move Move) Owner {
	return that[move.Row][move.Col]
}

// Place - marks an empty cell for owner.
func (that *Board) Place(move Move, owner Owner) error {
	if !move.OnBoard() {
		return fmt.Errorf("%w: %d %d", apperror.ErrInvalidCell, move.Row, move.Col)
	}

	if that[move.Row][move.Col] != Empty {
		return fmt.Errorf("%w: %d %d held by %s", apperror.ErrCellOccupied, move.Row, move.Col, that[move.Row][move.Col])
	}

	that[move.Row][move.Col] = owner

	return nil
}

// EmptyCells lists the unoccupied cells in row-major order.
func (that Board) EmptyCells() []Move {
	cells := make([]Move, 0, BoardSize*BoardSize)
	for row := range BoardSize {
		for col := range BoardSize {
			if that[row][col] == Empty {
				cells = append(cells, Move{Row: row, Col: col})
			}
		}
	}

	return cells
}
