package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
)

func TestBoard_Place(t *testing.T) {
	t.Run("Place on empty cell", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: self marks the center
		err := board.Place(Move{Row: 1, Col: 1}, Self)

		// Then: the cell is owned by self and nothing else changed
		require.NoError(t, err)
		expected := Board{}
		expected[1][1] = Self
		require.Equal(t, expected, *board)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a board where the opponent holds (0,0)
		board := NewBoard()
		require.NoError(t, board.Place(Move{Row: 0, Col: 0}, Opponent))

		// When: self tries the same cell
		err := board.Place(Move{Row: 0, Col: 0}, Self)

		// Then: ErrCellOccupied is returned and the cell keeps its owner
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, Opponent, board.At(Move{Row: 0, Col: 0}))
	})

	t.Run("Invalid Cell", func(t *testing.T) {
		board := NewBoard()

		for _, move := range []Move{{Row: 3, Col: 0}, {Row: 0, Col: -1}, {Row: -1, Col: 2}} {
			err := board.Place(move, Self)
			require.ErrorIs(t, err, apperror.ErrInvalidCell, "move %v", move)
		}

		assert.Equal(t, Board{}, *board)
	})
}

func TestBoard_EmptyCells(t *testing.T) {
	// Given: a board with two marks
	board := NewBoard()
	require.NoError(t, board.Place(Move{Row: 0, Col: 0}, Self))
	require.NoError(t, board.Place(Move{Row: 1, Col: 1}, Opponent))

	// When: listing empty cells
	cells := board.EmptyCells()

	// Then: the other seven cells come back in row-major order
	expected := []Move{
		{Row: 0, Col: 1}, {Row: 0, Col: 2},
		{Row: 1, Col: 0}, {Row: 1, Col: 2},
		{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2},
	}
	assert.Equal(t, expected, cells)
}

func TestOwner_String(t *testing.T) {
	assert.Equal(t, "self", Self.String())
	assert.Equal(t, "opponent", Opponent.String())
	assert.Equal(t, "empty", Empty.String())
}
