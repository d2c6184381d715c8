package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/hexgame-api/internal/cards"
	"github.com/KirkDiggler/hexgame-api/internal/engine"
	"github.com/KirkDiggler/hexgame-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/hexgame-api/internal/handlers/hexgame/v1alpha1"
	"github.com/KirkDiggler/hexgame-api/internal/orchestrators/game"
	"github.com/KirkDiggler/hexgame-api/internal/pkg/clock"
	"github.com/KirkDiggler/hexgame-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/hexgame-api/internal/redis"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/battles"
	cardrepo "github.com/KirkDiggler/hexgame-api/internal/repositories/cards"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/characters"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/games"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/hexes"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/players"
)

var (
	grpcPort  int
	redisAddr string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the hexgame gRPC server. Without a redis address the server runs
an embedded in-memory redis, and games are lost on exit.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port (env HEXGAME_PORT)")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", "", "redis address, empty for embedded (env HEXGAME_REDIS_ADDR)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = grpcPort
	}
	if cmd.Flags().Changed("redis-addr") {
		cfg.RedisAddr = redisAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	client, closeRedis, err := openRedis(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer closeRedis()

	service, err := buildGameService(client, logger)
	if err != nil {
		return err
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		GameService: service,
	})
	if err != nil {
		return fmt.Errorf("failed to create game handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterGameServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.Port)
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

// openRedis connects to addr, or starts an embedded miniredis when addr is
// empty. The returned func releases whichever was opened.
func openRedis(ctx context.Context, addr string) (redisclient.Client, func(), error) {
	var embedded *miniredis.Miniredis
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start embedded redis: %w", err)
		}
		embedded = mr
		addr = mr.Addr()
		slog.Warn("no redis address configured, using embedded in-memory redis", "addr", addr)
	}

	client, err := redisclient.NewClient(addr, &redisclient.Options{
		PoolSize:   10,
		MaxRetries: 3,
	})
	if err != nil {
		if embedded != nil {
			embedded.Close()
		}
		return nil, nil, err
	}

	closeAll := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
		if embedded != nil {
			embedded.Close()
		}
	}

	if err := redisclient.Ping(ctx, client); err != nil {
		closeAll()
		return nil, nil, err
	}

	return client, closeAll, nil
}

// buildGameService wires the repositories, engine and event bus into the
// game orchestrator
func buildGameService(client redisclient.Client, logger *slog.Logger) (game.Service, error) {
	clk := clock.New()

	gameRepo, err := games.NewRedis(&games.RedisConfig{Client: client, Clock: clk})
	if err != nil {
		return nil, fmt.Errorf("failed to create game repository: %w", err)
	}
	playerRepo, err := players.NewRedis(&players.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create player repository: %w", err)
	}
	characterRepo, err := characters.NewRedis(&characters.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create character repository: %w", err)
	}
	hexRepo, err := hexes.NewRedis(&hexes.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create hex repository: %w", err)
	}
	cardRepo, err := cardrepo.NewRedis(&cardrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create card repository: %w", err)
	}
	battleRepo, err := battles.NewRedis(&battles.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create battle repository: %w", err)
	}

	pool, err := cards.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load card pool: %w", err)
	}

	eng, err := engine.New(&engine.Config{
		Roller: dice.DefaultRoller,
		Pool:   pool,
		IDs:    idgen.NewUUID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	bus := events.NewBus()
	rpgtoolkit.SubscribeLogger(bus, logger)

	service, err := game.NewOrchestrator(&game.Config{
		Engine:        eng,
		GameRepo:      gameRepo,
		PlayerRepo:    playerRepo,
		CharacterRepo: characterRepo,
		HexRepo:       hexRepo,
		CardRepo:      cardRepo,
		BattleRepo:    battleRepo,
		EventBus:      bus,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game orchestrator: %w", err)
	}

	return service, nil
}

func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}
