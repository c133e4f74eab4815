package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	TransportStdio = "stdio"
	TransportRedis = "redis"
)

// Block selection modes. With BlockSelectionLast every blocking move overwrites the
// previous pick, so the last one in legal order is played.
const (
	BlockSelectionLast  = "last"
	BlockSelectionFirst = "first"
)

var (
	ErrUnknownTransport      = errors.New("unknown transport")
	ErrUnknownBlockSelection = errors.New("unknown block selection")
	ErrUnknownLogLevel       = errors.New("unknown log level")
)

type Config struct {
	LogLevel       string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Transport      string `yaml:"transport" env:"TRANSPORT" env-default:"stdio"`
	BoardSnapshot  bool   `yaml:"board-snapshot" env:"BOARD_SNAPSHOT" env-default:"false"`
	BlockSelection string `yaml:"block-selection" env:"BLOCK_SELECTION" env-default:"last"`
	Redis          Redis  `yaml:"redis"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	TurnsKey string `yaml:"turns-key" env:"REDIS_TURNS_KEY" env-default:"agent:turns"`
	MovesKey string `yaml:"moves-key" env:"REDIS_MOVES_KEY" env-default:"agent:moves"`
}

// MustLoad - loads config.yml at path, or only the environment when the file is missing.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read config from env: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if !slices.Contains([]string{TransportStdio, TransportRedis}, that.Transport) {
		return fmt.Errorf("%w: %q", ErrUnknownTransport, that.Transport)
	}

	if !slices.Contains([]string{BlockSelectionLast, BlockSelectionFirst}, that.BlockSelection) {
		return fmt.Errorf("%w: %q", ErrUnknownBlockSelection, that.BlockSelection)
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, that.LogLevel) {
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, that.LogLevel)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
