package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/testing/suite"
)

const (
	turnsKey = "test:turns"
	movesKey = "test:moves"
)

func TestClient_TurnRoundTrip(t *testing.T) {
	ctx, st := suite.New(t)

	client := New(st.Storage, turnsKey, movesKey)

	// Given: a queued turn with an opponent move
	turn := &entity.Turn{
		Opponent:   &entity.Move{Row: 1, Col: 1},
		LegalMoves: []entity.Move{{Row: 0, Col: 0}, {Row: 2, Col: 2}},
	}
	require.NoError(t, client.PushTurn(ctx, turn))

	// When: the agent side reads it
	got, err := client.ReadTurn(ctx)

	// Then: the turn arrives unchanged
	require.NoError(t, err)
	assert.Equal(t, turn, got)
}

func TestClient_ReadTurn(t *testing.T) {
	t.Run("Missing opponent means first move", func(t *testing.T) {
		ctx, st := suite.New(t)
		client := New(st.Storage, turnsKey, movesKey)

		require.NoError(t, st.Storage.RPush(ctx, turnsKey, `{"legal_moves":[{"row":0,"col":0}]}`).Err())

		turn, err := client.ReadTurn(ctx)

		require.NoError(t, err)
		assert.False(t, turn.HasOpponentMove())
		assert.Len(t, turn.LegalMoves, 1)
	})

	t.Run("Sentinel column means first move", func(t *testing.T) {
		ctx, st := suite.New(t)
		client := New(st.Storage, turnsKey, movesKey)

		require.NoError(t, st.Storage.RPush(ctx, turnsKey, `{"opponent":{"row":-1,"col":-1},"legal_moves":[]}`).Err())

		turn, err := client.ReadTurn(ctx)

		require.NoError(t, err)
		assert.False(t, turn.HasOpponentMove())
	})

	t.Run("Cancelled context unblocks an empty queue", func(t *testing.T) {
		// Given: nothing is queued and the read is already waiting
		ctx, st := suite.New(t)
		client := New(st.Storage, turnsKey, movesKey)

		readCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		errCh := make(chan error, 1)
		go func() {
			_, err := client.ReadTurn(readCtx)
			errCh <- err
		}()
		time.Sleep(200 * time.Millisecond)

		// When: the context is cancelled
		cancel()

		// Then: the read gives up within one poll
		select {
		case err := <-errCh:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(3 * pollTimeout):
			t.Fatal("ReadTurn still blocked after cancel")
		}
	})

	t.Run("Garbage payload is malformed", func(t *testing.T) {
		ctx, st := suite.New(t)
		client := New(st.Storage, turnsKey, movesKey)

		require.NoError(t, st.Storage.RPush(ctx, turnsKey, "0 0").Err())

		_, err := client.ReadTurn(ctx)

		require.ErrorIs(t, err, apperror.ErrMalformedInput)
	})
}

func TestClient_Moves(t *testing.T) {
	t.Run("Written move can be popped", func(t *testing.T) {
		ctx, st := suite.New(t)
		client := New(st.Storage, turnsKey, movesKey)

		require.NoError(t, client.WriteMove(ctx, entity.Move{Row: 2, Col: 0}))

		move, err := client.PopMove(ctx, time.Second)

		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 2, Col: 0}, move)
	})

	t.Run("Nothing queued", func(t *testing.T) {
		ctx, st := suite.New(t)
		client := New(st.Storage, turnsKey, movesKey)

		_, err := client.PopMove(ctx, time.Second)

		require.ErrorIs(t, err, ErrNoMoveQueued)
	})
}
