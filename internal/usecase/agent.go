package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/internal/service"
	"github.com/rocketscienceinc/tictactoe-agent/internal/validator"
)

// TurnTransport delivers turns and carries moves back.
type TurnTransport interface {
	ReadTurn(ctx context.Context) (*entity.Turn, error)
	WriteMove(ctx context.Context, move entity.Move) error
}

type snapshotWriter interface {
	Write(board entity.Board) error
}

// Agent owns the live board of one game and answers turns until the input ends.
type Agent struct {
	logger    *slog.Logger
	bot       service.BotService
	transport TurnTransport
	snapshot  snapshotWriter

	board *entity.Board
	turns int
}

// NewAgent - snapshot may be nil to disable board snapshots.
func NewAgent(logger *slog.Logger, bot service.BotService, transport TurnTransport, snapshot snapshotWriter) *Agent {
	return &Agent{
		logger:    logger.With("component", "agent", "game_id", uuid.NewString()),
		bot:       bot,
		transport: transport,
		snapshot:  snapshot,
		board:     entity.NewBoard(),
	}
}

// Run - reads turns and writes moves until the input ends or ctx is cancelled. Both are
// a normal stop; every other error is fatal for the game and returned.
func (that *Agent) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	for {
		turn, err := that.transport.ReadTurn(ctx)
		switch {
		case errors.Is(err, io.EOF):
			log.Info("input closed, stopping", "turns", that.turns)
			return nil
		case err != nil && ctx.Err() != nil:
			log.Info("context done, stopping", "turns", that.turns)
			return nil
		case err != nil:
			return fmt.Errorf("failed to read turn: %w", err)
		}

		move, err := that.PlayTurn(ctx, turn)
		if err != nil {
			return err
		}

		if err = that.transport.WriteMove(ctx, move); err != nil {
			return fmt.Errorf("failed to write move: %w", err)
		}
	}
}

// PlayTurn - records the opponent move, lets the bot choose and commit its move, and
// returns it.
func (that *Agent) PlayTurn(ctx context.Context, turn *entity.Turn) (entity.Move, error) {
	that.turns++
	log := that.logger.With("method", "PlayTurn", "turn", that.turns)

	if err := validator.Struct(turn); err != nil {
		return entity.Move{}, fmt.Errorf("%w: %w", apperror.ErrMalformedInput, err)
	}

	if turn.HasOpponentMove() {
		if err := that.board.Place(*turn.Opponent, entity.Opponent); err != nil {
			return entity.Move{}, fmt.Errorf("failed to record opponent move: %w", err)
		}
		log.DebugContext(ctx, "opponent moved", "move", turn.Opponent.String())
	}

	if that.snapshot != nil {
		if err := that.snapshot.Write(*that.board); err != nil {
			log.WarnContext(ctx, "board snapshot failed", "error", err)
		}
	}

	decision, err := that.bot.MakeTurn(that.board, turn.LegalMoves)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to choose move: %w", err)
	}

	log.InfoContext(ctx, "move chosen",
		"move", decision.Move.String(),
		"reason", decision.Reason,
		"legal_moves", len(turn.LegalMoves),
	)

	return decision.Move, nil
}

// Board returns a copy of the live board.
func (that *Agent) Board() entity.Board {
	return *that.board
}
