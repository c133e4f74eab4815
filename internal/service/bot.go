package service

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/config"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/internal/tictactoe"
)

const (
	ReasonOpening = "opening"
	ReasonWin     = "win"
	ReasonBlock   = "block"
	ReasonCorner  = "corner"
)

const openingSize = entity.BoardSize * entity.BoardSize

var openingMove = entity.Move{Row: 0, Col: 0}

// Decision is the move the bot committed and the cascade step that produced it.
type Decision struct {
	Move   entity.Move
	Reason string
}

type BotService interface {
	MakeTurn(board *entity.Board, legalMoves []entity.Move) (Decision, error)
}

type botService struct {
	blockSelection string
}

// NewBotService - blockSelection is one of config.BlockSelectionLast or
// config.BlockSelectionFirst; anything else plays the last block.
func NewBotService(blockSelection string) BotService {
	if blockSelection != config.BlockSelectionFirst {
		blockSelection = config.BlockSelectionLast
	}

	return &botService{blockSelection: blockSelection}
}

// MakeTurn - picks a move with the opening -> win -> block -> corner cascade and marks it
// as Self on the board.
func (that *botService) MakeTurn(board *entity.Board, legalMoves []entity.Move) (Decision, error) {
	decision, err := that.choose(*board, legalMoves)
	if err != nil {
		return Decision{}, err
	}

	if err = board.Place(decision.Move, entity.Self); err != nil {
		return Decision{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return decision, nil
}

func (that *botService) choose(board entity.Board, legalMoves []entity.Move) (Decision, error) {
	if len(legalMoves) == 0 {
		return Decision{}, fmt.Errorf("%w: legal move list is empty", apperror.ErrNoMove)
	}

	if len(legalMoves) == openingSize {
		return Decision{Move: openingMove, Reason: ReasonOpening}, nil
	}

	if move, ok := WinningMove(board, legalMoves); ok {
		return Decision{Move: move, Reason: ReasonWin}, nil
	}

	if move, ok := BlockingMove(board, legalMoves, that.blockSelection == config.BlockSelectionFirst); ok {
		return Decision{Move: move, Reason: ReasonBlock}, nil
	}

	if move, ok := CornerMove(legalMoves); ok {
		return Decision{Move: move, Reason: ReasonCorner}, nil
	}

	return Decision{}, fmt.Errorf("%w: no win, block or corner among %d legal moves", apperror.ErrNoMove, len(legalMoves))
}

// WinningMove returns the first legal move that completes a line for Self.
func WinningMove(board entity.Board, legalMoves []entity.Move) (entity.Move, bool) {
	for _, move := range legalMoves {
		if tictactoe.Completes(board, move, entity.Self) {
			return move, true
		}
	}

	return entity.Move{}, false
}

// BlockingMove returns a legal move that would complete a line for the opponent.
// Every candidate is evaluated and the last match is kept unless stopAtFirst is set.
func BlockingMove(board entity.Board, legalMoves []entity.Move, stopAtFirst bool) (entity.Move, bool) {
	var (
		block entity.Move
		found bool
	)

	for _, move := range legalMoves {
		if !tictactoe.Completes(board, move, entity.Opponent) {
			continue
		}

		block, found = move, true
		if stopAtFirst {
			break
		}
	}

	return block, found
}

// CornerMove returns the first preferred corner that is in the legal list.
func CornerMove(legalMoves []entity.Move) (entity.Move, bool) {
	for _, corner := range entity.Corners {
		if slices.Contains(legalMoves, corner) {
			return corner, true
		}
	}

	return entity.Move{}, false
}
