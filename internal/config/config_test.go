package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lss-foundry/internal/config"
	"github.com/KirkDiggler/lss-foundry/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.LoadFrom(map[string]string{})
	s.Require().NoError(err)

	s.Equal(50051, cfg.GRPCPort)
	s.Equal(9090, cfg.MetricsPort)
	s.Equal(time.Hour, cfg.SessionTTL)
	s.False(cfg.UseRedis())
	s.Equal(slog.LevelInfo, cfg.SlogLevel())
}

func (s *ConfigTestSuite) TestOverrides() {
	cfg, err := config.LoadFrom(map[string]string{
		"LSS_GRPC_PORT":    "6000",
		"LSS_METRICS_PORT": "0",
		"LSS_REDIS_ADDR":   "localhost:6379",
		"LSS_SESSION_TTL":  "15m",
		"LSS_LOG_LEVEL":    "debug",
	})
	s.Require().NoError(err)

	s.Equal(6000, cfg.GRPCPort)
	s.Equal(0, cfg.MetricsPort)
	s.True(cfg.UseRedis())
	s.Equal(15*time.Minute, cfg.SessionTTL)
	s.Equal(slog.LevelDebug, cfg.SlogLevel())
}

func (s *ConfigTestSuite) TestInvalid() {
	testCases := []struct {
		name string
		vars map[string]string
	}{
		{name: "port not a number", vars: map[string]string{"LSS_GRPC_PORT": "abc"}},
		{name: "port out of range", vars: map[string]string{"LSS_GRPC_PORT": "70000"}},
		{name: "bad ttl", vars: map[string]string{"LSS_SESSION_TTL": "soon"}},
		{name: "zero ttl", vars: map[string]string{"LSS_SESSION_TTL": "0s"}},
		{name: "unknown level", vars: map[string]string{"LSS_LOG_LEVEL": "chatty"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := config.LoadFrom(tc.vars)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}
