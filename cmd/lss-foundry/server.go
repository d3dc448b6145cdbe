package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/lss-foundry/internal/config"
	"github.com/KirkDiggler/lss-foundry/internal/errors"
	"github.com/KirkDiggler/lss-foundry/internal/handlers/converter/v1alpha1"
	"github.com/KirkDiggler/lss-foundry/internal/orchestrators/conversion"
	"github.com/KirkDiggler/lss-foundry/internal/orchestrators/session"
	"github.com/KirkDiggler/lss-foundry/internal/pkg/clock"
	"github.com/KirkDiggler/lss-foundry/internal/pkg/idgen"
	"github.com/KirkDiggler/lss-foundry/internal/pkg/metrics"
	"github.com/KirkDiggler/lss-foundry/internal/redis"
	conversionsession "github.com/KirkDiggler/lss-foundry/internal/repositories/conversion_session"
	"github.com/KirkDiggler/lss-foundry/internal/services/extraction"
	"github.com/KirkDiggler/lss-foundry/internal/services/vision"
)

var (
	grpcPort    int
	metricsPort int
	redisAddr   string
	sessionTTL  time.Duration
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the converter gRPC server. Settings come from LSS_* environment
variables; flags override them. Without a Redis address sessions are kept in
memory.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (env LSS_GRPC_PORT)")
	serverCmd.Flags().IntVar(&metricsPort, "metrics-port", 0, "Prometheus metrics port, 0 disables (env LSS_METRICS_PORT)")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for sessions (env LSS_REDIS_ADDR)")
	serverCmd.Flags().DurationVar(&sessionTTL, "session-ttl", 0, "Session lifetime (env LSS_SESSION_TTL)")
}

func loadServerConfig(cmd *cobra.Command) (*config.Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.GRPCPort = grpcPort
	}
	if flags.Changed("metrics-port") {
		cfg.MetricsPort = metricsPort
	}
	if flags.Changed("redis-addr") {
		cfg.RedisAddr = redisAddr
	}
	if flags.Changed("session-ttl") {
		cfg.SessionTTL = sessionTTL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServerConfig(cmd)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	metricsManager := metrics.NewManager()

	repo, closeRepo, err := newSessionRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	converter, err := conversion.NewOrchestrator(&conversion.Config{
		Extractor: extraction.New(),
		Resolver:  vision.NewResolver(),
		Metrics:   metricsManager,
	})
	if err != nil {
		return fmt.Errorf("failed to create conversion orchestrator: %w", err)
	}

	sessions, err := session.NewOrchestrator(&session.Config{
		Repository:  repo,
		Converter:   converter,
		Resolver:    vision.NewResolver(),
		IDGenerator: idgen.NewUUID(idgen.SessionPrefix),
		TTL:         cfg.SessionTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create session orchestrator: %w", err)
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		ConversionService: converter,
		SessionService:    sessions,
	})
	if err != nil {
		return fmt.Errorf("failed to create converter handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := newGRPCServer()
	v1alpha1.RegisterConverterServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	errChan := make(chan error, 2)
	go func() {
		log.Printf("gRPC server starting on port %d...", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	var metricsServer *http.Server
	if cfg.MetricsPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsManager.Handler())
		metricsServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Printf("Metrics server starting on port %d...", cfg.MetricsPort)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- fmt.Errorf("failed to serve metrics: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Println("Shutting down gRPC server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		healthServer.Shutdown()
		if metricsServer != nil {
			_ = metricsServer.Shutdown(shutdownCtx)
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			log.Println("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			log.Println("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		srv.Stop()
		return err
	}
}

func newGRPCServer() *grpc.Server {
	return grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandlerContext(recoverPanic)),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(grpc_recovery.WithRecoveryHandlerContext(recoverPanic)),
		),
	)
}

// newSessionRepository picks Redis when an address is configured
func newSessionRepository(ctx context.Context, cfg *config.Server) (conversionsession.Repository, func(), error) {
	if !cfg.UseRedis() {
		log.Println("Using in-memory session storage")
		return conversionsession.NewInMemory(clock.New()), func() {}, nil
	}

	client, err := redis.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return nil, nil, err
	}
	closeClient := func() {
		_ = client.Close()
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redis.Ping(pingCtx, client); err != nil {
		closeClient()
		return nil, nil, err
	}

	repo, err := conversionsession.NewRedisRepository(&conversionsession.Config{
		Client: client,
		Clock:  clock.New(),
	})
	if err != nil {
		closeClient()
		return nil, nil, err
	}

	log.Printf("Using Redis session storage at %s", cfg.RedisAddr)
	return repo, closeClient, nil
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}

func recoverPanic(ctx context.Context, p any) error {
	slog.ErrorContext(ctx, "recovered from panic in handler", "panic", p)
	return errors.ToGRPCError(errors.Internal("conversion failed"))
}
