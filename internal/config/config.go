// Package config loads server configuration from the environment.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/lss-foundry/internal/errors"
)

// Server holds the settings of the server command
type Server struct {
	GRPCPort    int           `env:"LSS_GRPC_PORT" envDefault:"50051"`
	MetricsPort int           `env:"LSS_METRICS_PORT" envDefault:"9090"`
	RedisAddr   string        `env:"LSS_REDIS_ADDR"`
	SessionTTL  time.Duration `env:"LSS_SESSION_TTL" envDefault:"1h"`
	LogLevel    string        `env:"LSS_LOG_LEVEL" envDefault:"info"`
}

// Load reads the server configuration from the process environment
func Load() (*Server, error) {
	return parse(env.Options{})
}

// LoadFrom reads the server configuration from the given variables only
func LoadFrom(vars map[string]string) (*Server, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Server, error) {
	cfg, err := env.ParseAsWithOptions[Server](opts)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ports, TTL and log level
func (s *Server) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("LSS_GRPC_PORT", s.GRPCPort, 1, 65535, vb)
	errors.ValidateRange("LSS_METRICS_PORT", s.MetricsPort, 0, 65535, vb)
	if s.SessionTTL <= 0 {
		vb.Field("LSS_SESSION_TTL", "must be positive")
	}
	if _, ok := parseLevel(s.LogLevel); !ok {
		vb.Fieldf("LSS_LOG_LEVEL", "unknown level %q", s.LogLevel)
	}
	return vb.Build()
}

// UseRedis reports whether sessions should be kept in Redis
func (s *Server) UseRedis() bool {
	return strings.TrimSpace(s.RedisAddr) != ""
}

// SlogLevel returns the configured log level
func (s *Server) SlogLevel() slog.Level {
	level, _ := parseLevel(s.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}
