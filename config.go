package tecs

import (
	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const defaultTickRate = 20

// WorldConfig is the world's runtime configuration, loaded from the
// environment at construction. Fallback values are used for anything unset.
type WorldConfig struct {
	LogLevel      string `config:"TECS_LOG_LEVEL"`
	TickRate      int    `config:"TECS_TICK_RATE"`
	RedisAddress  string `config:"TECS_REDIS_ADDRESS"`
	RedisPassword string `config:"TECS_REDIS_PASSWORD"`
}

func defaultWorldConfig() WorldConfig {
	return WorldConfig{
		LogLevel:     "info",
		TickRate:     defaultTickRate,
		RedisAddress: "localhost:6379",
	}
}

func loadWorldConfig() (*WorldConfig, error) {
	cfg := defaultWorldConfig()
	if err := config.FromEnv().To(&cfg); err != nil {
		return nil, eris.Wrap(err, "failed to load world config")
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, eris.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	if cfg.TickRate <= 0 {
		return nil, eris.Errorf("tick rate must be positive, got %d", cfg.TickRate)
	}
	return &cfg, nil
}

func (c WorldConfig) logLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Config returns the world's loaded configuration.
func (w *World[E]) Config() WorldConfig { return w.cfg }
