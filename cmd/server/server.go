package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
	"github.com/KirkDiggler/rpg-dice/internal/config"
	"github.com/KirkDiggler/rpg-dice/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/rpg-dice/internal/handlers/slack"
	"github.com/KirkDiggler/rpg-dice/internal/pkg/idgen"
)

const shutdownTimeout = 30 * time.Second

var (
	grpcPort  int
	httpPort  int
	debug     bool
	logFormat string
	seed      uint64
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC and Slack webhook servers",
	Long: `Start the rpg-dice gRPC DiceService and the Slack slash-command webhook.
Flags override the RPG_DICE_* environment variables.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().IntVar(&httpPort, "http-port", 8080, "Slack webhook port, 0 disables it")
	serverCmd.Flags().BoolVar(&debug, "debug", false, "Log parsed specs and raw dice")
	serverCmd.Flags().StringVar(&logFormat, "log-format", config.LogFormatText, "Log format: text or json")
	serverCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible rolls, 0 uses the crypto source")
}

// loadServerConfig layers changed flags over the environment
func loadServerConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.GRPCPort = grpcPort
	}
	if flags.Changed("http-port") {
		cfg.HTTPPort = httpPort
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServerConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	diceService, err := newDiceService(cfg)
	if err != nil {
		return fmt.Errorf("failed to create dice service: %w", err)
	}

	diceHandler, err := v1alpha1.NewDiceHandler(&v1alpha1.DiceHandlerConfig{
		DiceService: diceService,
		IDGenerator: idgen.NewUUID("roll"),
	})
	if err != nil {
		return fmt.Errorf("failed to create dice handler: %w", err)
	}

	slackHandler, err := slack.NewHandler(&slack.HandlerConfig{DiceService: diceService})
	if err != nil {
		return fmt.Errorf("failed to create slack handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandlerContext(recoverPanic)),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.StreamServerInterceptor(grpc_recovery.WithRecoveryHandlerContext(recoverPanic)),
		),
	)

	apiv1alpha1.RegisterDiceServiceServer(srv, diceHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("api.v1alpha1.DiceService", grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	var httpSrv *http.Server
	if cfg.HTTPPort != 0 {
		httpSrv = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:           slackHandler.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			return fmt.Errorf("failed to serve grpc: %w", err)
		}
		return nil
	})

	if httpSrv != nil {
		g.Go(func() error {
			slog.Info("Slack webhook server starting", "port", cfg.HTTPPort)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("failed to serve http: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down servers")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if httpSrv != nil {
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("Slack webhook server shutdown failed", "error", err)
			}
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Servers stopped gracefully")
		}
		return nil
	})

	return g.Wait()
}

// interceptorLogger adapts slog to the go-grpc-middleware logging interface
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

func recoverPanic(ctx context.Context, p any) error {
	slog.ErrorContext(ctx, "Recovered from panic in grpc handler", "panic", p)
	return status.Error(codes.Internal, "Sorry, the dice got stuck. Please try again.")
}
