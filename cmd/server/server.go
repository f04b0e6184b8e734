package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/build-api/internal/document"
	"github.com/KirkDiggler/build-api/internal/handlers/build/v1alpha1"
	"github.com/KirkDiggler/build-api/internal/orchestrators/build"
	"github.com/KirkDiggler/build-api/internal/pkg/clock"
	"github.com/KirkDiggler/build-api/internal/pkg/idgen"
	"github.com/KirkDiggler/build-api/internal/redis"
	buildrepo "github.com/KirkDiggler/build-api/internal/repositories/build"
	documentrepo "github.com/KirkDiggler/build-api/internal/repositories/document"
)

var (
	grpcPort     int
	redisAddr    string
	documentsDir string
	buildTTL     time.Duration
	logLevel     string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the Build API gRPC server. Documents found in --documents are loaded
at startup under their file name without the extension.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", envInt("BUILD_API_PORT", 50051), "gRPC server port")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", envString("BUILD_API_REDIS_ADDR", "localhost:6379"), "Redis address")
	serverCmd.Flags().StringVar(&documentsDir, "documents", envString("BUILD_API_DOCUMENTS", ""), "Directory of documents to load at startup")
	serverCmd.Flags().DurationVar(&buildTTL, "build-ttl", envDuration("BUILD_API_BUILD_TTL", buildrepo.DefaultTTL), "How long an untouched build is kept")
	serverCmd.Flags().StringVar(&logLevel, "log-level", envString("BUILD_API_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
}

func runServer(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(logLevel)})))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	redisClient, err := redis.NewClient(redisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		_ = redisClient.Close()
	}()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", redisAddr, err)
	}

	buildService, err := newBuildService(redisClient, buildTTL)
	if err != nil {
		return err
	}

	if documentsDir != "" {
		loaded, err := loadDocuments(ctx, buildService, documentsDir)
		if err != nil {
			return err
		}
		slog.Info("loaded documents", "dir", documentsDir, "count", loaded)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	buildHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		BuildService: buildService,
	})
	if err != nil {
		return fmt.Errorf("failed to create build handler: %w", err)
	}

	v1alpha1.RegisterBuildServiceServer(srv, buildHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", grpcPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func newBuildService(redisClient redis.Client, ttl time.Duration) (build.Service, error) {
	documentRepo, err := documentrepo.NewRedisRepository(&documentrepo.Config{
		Client: redisClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create document repository: %w", err)
	}

	buildRepo, err := buildrepo.NewRedisRepository(&buildrepo.Config{
		Client: redisClient,
		Clock:  clock.New(),
		TTL:    ttl,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create build repository: %w", err)
	}

	eventBus := events.NewBus()
	subscribeEventLogger(eventBus)

	buildService, err := build.NewOrchestrator(&build.Config{
		DocumentRepo:        documentRepo,
		BuildRepo:           buildRepo,
		DocumentIDGenerator: idgen.NewUUID("doc"),
		BuildIDGenerator:    idgen.NewUUID("build"),
		EventBus:            eventBus,
		DiceRoller:          dice.DefaultRoller,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create build orchestrator: %w", err)
	}
	return buildService, nil
}

// subscribeEventLogger logs every build event at info level
func subscribeEventLogger(bus events.EventBus) {
	for _, eventType := range []string{
		build.EventOptionSelected,
		build.EventOptionDeselected,
		build.EventBuildImported,
	} {
		bus.SubscribeFunc(eventType, 0, func(ctx context.Context, evt events.Event) error {
			attrs := []any{"event", evt.Type()}
			if evt.Source() != nil {
				attrs = append(attrs, "build_id", evt.Source().GetID())
			}
			if evt.Target() != nil {
				attrs = append(attrs, "option_id", evt.Target().GetID())
			}
			slog.InfoContext(ctx, "build event", attrs...)
			return nil
		})
	}
}

// loadDocuments loads every .json, .yaml and .yml file in dir. The file name
// without its extension becomes the document ID.
func loadDocuments(ctx context.Context, svc build.Service, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read documents dir: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path) // nolint:gosec // path comes from operator config
		if err != nil {
			return loaded, fmt.Errorf("failed to read %s: %w", path, err)
		}

		output, err := svc.LoadDocument(ctx, &build.LoadDocumentInput{
			ID:     strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Data:   data,
			Format: document.FormatFromPath(path),
		})
		if err != nil {
			return loaded, fmt.Errorf("failed to load %s: %w", path, err)
		}

		for field, messages := range output.Warnings {
			slog.WarnContext(ctx, "document lint warning",
				"document_id", output.Document.ID,
				"field", field,
				"messages", messages)
		}
		loaded++
	}
	return loaded, nil
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}

func parseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
