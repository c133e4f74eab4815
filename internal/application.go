package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-agent/internal/config"
	"github.com/rocketscienceinc/tictactoe-agent/internal/pkg/boardview"
	"github.com/rocketscienceinc/tictactoe-agent/internal/service"
	"github.com/rocketscienceinc/tictactoe-agent/internal/storage"
	"github.com/rocketscienceinc/tictactoe-agent/internal/transport/redis"
	"github.com/rocketscienceinc/tictactoe-agent/internal/transport/stdio"
	"github.com/rocketscienceinc/tictactoe-agent/internal/usecase"
)

// RunApp - runs the agent until the input ends or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	var snapshot *boardview.Renderer
	if conf.BoardSnapshot {
		snapshot = boardview.New(os.Stderr)
	}

	switch conf.Transport {
	case config.TransportRedis:
		return runRedis(ctx, logger, conf, snapshot)
	default:
		return runStdio(ctx, logger, conf, os.Stdin, os.Stdout, snapshot)
	}
}

func runStdio(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer, snapshot *boardview.Renderer) error {
	log := logger.With("component", "app")

	transport := stdio.New(in, out)
	agent := newAgent(logger, conf, transport, snapshot)

	// stdin reads cannot be interrupted, so the loop runs aside and a signal wins the race
	agentErrCh := make(chan error, 1)
	go func() {
		agentErrCh <- agent.Run(ctx)
	}()

	select {
	case err := <-agentErrCh:
		if closeErr := transport.Close(); closeErr != nil {
			log.Error("could not flush output", "error", closeErr)
		}
		if err != nil {
			return fmt.Errorf("agent stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func runRedis(ctx context.Context, logger *slog.Logger, conf *config.Config, snapshot *boardview.Renderer) error {
	log := logger.With("component", "app")

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	transport := redis.New(redisStorage.Connection, conf.Redis.TurnsKey, conf.Redis.MovesKey)
	log.Info("Waiting for turns", "key", conf.Redis.TurnsKey)

	agent := newAgent(logger, conf, transport, snapshot)

	agentErrCh := make(chan error, 1)
	go func() {
		agentErrCh <- agent.Run(ctx)
	}()

	select {
	case err = <-agentErrCh:
		if err != nil {
			return fmt.Errorf("agent stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newAgent(logger *slog.Logger, conf *config.Config, transport usecase.TurnTransport, snapshot *boardview.Renderer) *usecase.Agent {
	bot := service.NewBotService(conf.BlockSelection)

	// a nil *Renderer must not reach the agent as a non-nil interface
	if snapshot == nil {
		return usecase.NewAgent(logger, bot, transport, nil)
	}

	return usecase.NewAgent(logger, bot, transport, snapshot)
}
