// Package stdio implements the line protocol spoken over stdin/stdout:
//
//	opponent_row opponent_col   (col -1: no prior opponent move)
//	N
//	row col                     (N times)
//
// and answers each turn with a single "row col" line.
package stdio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

const maxLegalMoves = entity.BoardSize * entity.BoardSize

type Transport struct {
	scanner *bufio.Scanner
	writer  *bufio.Writer
	line    int
}

func New(r io.Reader, w io.Writer) *Transport {
	return &Transport{
		scanner: bufio.NewScanner(r),
		writer:  bufio.NewWriter(w),
	}
}

// ReadTurn - reads one turn. io.EOF is returned only when the input ends cleanly
// between two turns; any other short or garbled read is apperror.ErrMalformedInput.
// The read blocks on the underlying reader and does not observe ctx.
func (that *Transport) ReadTurn(_ context.Context) (*entity.Turn, error) {
	opponent, err := that.readInts(2)
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("opponent move: %w", err)
	}

	count, err := that.readCount()
	if err != nil {
		return nil, err
	}

	turn := &entity.Turn{LegalMoves: make([]entity.Move, 0, count)}
	if opponent[1] != entity.NoMove {
		turn.Opponent = &entity.Move{Row: opponent[0], Col: opponent[1]}
	}

	for i := range count {
		cell, err := that.readInts(2)
		if err != nil {
			return nil, fmt.Errorf("legal move %d of %d: %w", i+1, count, unexpectedEOF(err))
		}

		turn.LegalMoves = append(turn.LegalMoves, entity.Move{Row: cell[0], Col: cell[1]})
	}

	return turn, nil
}

// WriteMove - writes "row col" and flushes.
func (that *Transport) WriteMove(_ context.Context, move entity.Move) error {
	if _, err := fmt.Fprintf(that.writer, "%d %d\n", move.Row, move.Col); err != nil {
		return fmt.Errorf("failed to write move: %w", err)
	}

	if err := that.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush move: %w", err)
	}

	return nil
}

func (that *Transport) Close() error {
	return that.writer.Flush()
}

func (that *Transport) readCount() (int, error) {
	fields, err := that.readInts(1)
	if err != nil {
		return 0, fmt.Errorf("legal move count: %w", unexpectedEOF(err))
	}

	count := fields[0]
	if count < 0 || count > maxLegalMoves {
		return 0, fmt.Errorf("%w: line %d: legal move count %d out of range", apperror.ErrMalformedInput, that.line, count)
	}

	return count, nil
}

func (that *Transport) readInts(want int) ([]int, error) {
	if !that.scanner.Scan() {
		if err := that.scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return nil, io.EOF
	}
	that.line++

	fields := strings.Fields(that.scanner.Text())
	if len(fields) != want {
		return nil, fmt.Errorf("%w: line %d: want %d integers, got %q", apperror.ErrMalformedInput, that.line, want, that.scanner.Text())
	}

	values := make([]int, 0, want)
	for _, field := range fields {
		value, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", apperror.ErrMalformedInput, that.line, err)
		}
		values = append(values, value)
	}

	return values, nil
}

// unexpectedEOF marks an end of input in the middle of a turn as malformed.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", apperror.ErrMalformedInput, io.ErrUnexpectedEOF)
	}

	return err
}
