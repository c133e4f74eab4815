// Package boardview renders a board snapshot for the diagnostic channel.
package boardview

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

const (
	selfColor     = "2" // green
	opponentColor = "1" // red
)

type Renderer struct {
	output *termenv.Output
}

// New returns a renderer writing to w. Colours follow the terminal profile detected on w
// unless opts override it.
func New(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{output: termenv.NewOutput(w, opts...)}
}

// Render returns the grid as three lines: X for Self, O for Opponent, . for empty.
func (that *Renderer) Render(board entity.Board) string {
	var sb strings.Builder

	for row := range entity.BoardSize {
		cells := make([]string, 0, entity.BoardSize)
		for col := range entity.BoardSize {
			cells = append(cells, that.cell(board[row][col]))
		}

		sb.WriteString(strings.Join(cells, " "))
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Write renders board to the underlying writer.
func (that *Renderer) Write(board entity.Board) error {
	if _, err := fmt.Fprint(that.output, that.Render(board)); err != nil {
		return fmt.Errorf("failed to write board snapshot: %w", err)
	}

	return nil
}

func (that *Renderer) cell(owner entity.Owner) string {
	switch owner {
	case entity.Self:
		return that.output.String("X").Foreground(that.output.Color(selfColor)).String()
	case entity.Opponent:
		return that.output.String("O").Foreground(that.output.Color(opponentColor)).String()
	default:
		return "."
	}
}
