// Package redis carries turns and moves over two redis lists: turns are popped from one
// key with BLPOP and moves are appended to another with RPUSH, both JSON encoded.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

var ErrNoMoveQueued = errors.New("no move queued")

// blocking reads give up after pollTimeout so a cancelled ctx is noticed between polls
const pollTimeout = time.Second

type Client struct {
	client   *redis.Client
	turnsKey string
	movesKey string
}

func New(client *redis.Client, turnsKey, movesKey string) *Client {
	return &Client{
		client:   client,
		turnsKey: turnsKey,
		movesKey: movesKey,
	}
}

// ReadTurn - blocks until a turn is queued or ctx is done.
func (that *Client) ReadTurn(ctx context.Context) (*entity.Turn, error) {
	var (
		result []string
		err    error
	)

	for {
		if err = ctx.Err(); err != nil {
			return nil, fmt.Errorf("failed to pop turn: %w", err)
		}

		result, err = that.client.BLPop(ctx, pollTimeout, that.turnsKey).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to pop turn: %w", err)
		}

		break
	}

	// BLPOP replies with [key, value]
	if len(result) != 2 {
		return nil, fmt.Errorf("%w: unexpected BLPOP reply of %d elements", apperror.ErrMalformedInput, len(result))
	}

	var turn entity.Turn
	if err = json.Unmarshal([]byte(result[1]), &turn); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal turn: %w", apperror.ErrMalformedInput, err)
	}

	if turn.Opponent != nil && turn.Opponent.Col == entity.NoMove {
		turn.Opponent = nil
	}

	return &turn, nil
}

// WriteMove - appends the chosen move to the moves list.
func (that *Client) WriteMove(ctx context.Context, move entity.Move) error {
	moveJSON, err := json.Marshal(move)
	if err != nil {
		return fmt.Errorf("failed to marshal move: %w", err)
	}

	if err = that.client.RPush(ctx, that.movesKey, moveJSON).Err(); err != nil {
		return fmt.Errorf("failed to push move: %w", err)
	}

	return nil
}

// PushTurn - queues a turn for the agent. This is the referee side of the channel.
func (that *Client) PushTurn(ctx context.Context, turn *entity.Turn) error {
	turnJSON, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	if err = that.client.RPush(ctx, that.turnsKey, turnJSON).Err(); err != nil {
		return fmt.Errorf("failed to push turn: %w", err)
	}

	return nil
}

// PopMove - waits up to timeout for the agent's answer.
func (that *Client) PopMove(ctx context.Context, timeout time.Duration) (entity.Move, error) {
	result, err := that.client.BLPop(ctx, timeout, that.movesKey).Result()
	if errors.Is(err, redis.Nil) {
		return entity.Move{}, ErrNoMoveQueued
	}
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to pop move: %w", err)
	}

	var move entity.Move
	if err = json.Unmarshal([]byte(result[1]), &move); err != nil {
		return entity.Move{}, fmt.Errorf("failed to unmarshal move: %w", err)
	}

	return move, nil
}
