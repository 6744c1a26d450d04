package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	// OpenTelemetry
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	// PostgreSQL Driver
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"

	// Interne
	"github.com/jupiterclapton/filmotek/config"
	"github.com/jupiterclapton/filmotek/internal/adapters/primary/rest"
	"github.com/jupiterclapton/filmotek/internal/adapters/secondary/cache"
	"github.com/jupiterclapton/filmotek/internal/adapters/secondary/eventbroker"
	"github.com/jupiterclapton/filmotek/internal/adapters/secondary/repository/memory"
	"github.com/jupiterclapton/filmotek/internal/adapters/secondary/repository/neo4jgraph"
	"github.com/jupiterclapton/filmotek/internal/adapters/secondary/repository/postgres"
	"github.com/jupiterclapton/filmotek/internal/core/ports"
	"github.com/jupiterclapton/filmotek/internal/core/services"
)

func main() {
	// 1. Charger la Config
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. Initialiser le Logger (slog JSON pour la prod, Text pour le dev)
	initLogger(cfg)
	slog.Info("🚀 Starting Filmotek", "env", cfg.Env, "port", cfg.HTTPPort, "storage", cfg.Storage)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Initialiser le Tracing (OpenTelemetry)
	tp, err := initTracer(ctx, cfg)
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				slog.Error("Error shutting down tracer", "error", err)
			}
		}()
	}

	mode, err := services.ParseFriendshipMode(cfg.FriendshipMode)
	if err != nil {
		slog.Error("Invalid friendship mode", "error", err)
		os.Exit(1)
	}

	// 4. Persistance : mémoire ou Postgres selon la config
	var (
		filmRepo ports.FilmRepository
		userRepo ports.UserRepository
		refRepo  ports.ReferenceRepository
		graph    ports.FriendGraph
	)

	switch cfg.Storage {
	case "postgres":
		dbConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
		if err != nil {
			slog.Error("Unable to parse DB config", "error", err)
			os.Exit(1)
		}
		// Injection du tracer OpenTelemetry dans le pool
		dbConfig.ConnConfig.Tracer = otelpgx.NewTracer()

		dbPool, err := pgxpool.NewWithConfig(ctx, dbConfig)
		if err != nil {
			slog.Error("Unable to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		// Vérification connectivité immédiate (Fail Fast)
		if err := dbPool.Ping(ctx); err != nil {
			slog.Error("Database ping failed", "error", err)
			os.Exit(1)
		}
		if err := postgres.EnsureSchema(ctx, dbPool); err != nil {
			slog.Error("Schema migration failed", "error", err)
			os.Exit(1)
		}
		slog.Info("✅ Database connected")

		filmRepo = postgres.NewFilmRepo(dbPool)
		userRepo = postgres.NewUserRepo(dbPool)
		refRepo = postgres.NewReferenceRepo(dbPool)
		graph = postgres.NewFriendGraph(dbPool)

	default: // memory
		filmRepo = memory.NewFilmRepo()
		userRepo = memory.NewUserRepo()
		refRepo = memory.NewReferenceRepo()
		graph = memory.NewFriendGraph()
	}

	// 5. Graphe d'amitié sur Neo4j (optionnel, remplace le backend ci-dessus)
	if cfg.GraphBackend == "neo4j" {
		driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI,
			neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
		if err != nil {
			slog.Error("Unable to create Neo4j driver", "error", err)
			os.Exit(1)
		}
		defer driver.Close(ctx)

		neoGraph := neo4jgraph.NewFriendGraph(driver)
		if err := neoGraph.EnsureSchema(ctx); err != nil {
			slog.Error("Neo4j schema setup failed", "error", err)
			os.Exit(1)
		}
		slog.Info("✅ Neo4j connected")
		graph = neoGraph
	}

	// 6. Event Broker (NATS, best effort — désactivé si non configuré)
	var broker ports.EventPublisher = eventbroker.NewNoop()
	if cfg.NatsUrl != "" {
		nc, err := nats.Connect(cfg.NatsUrl)
		if err != nil {
			slog.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer nc.Close()
		slog.Info("✅ NATS connected")
		broker = eventbroker.NewNatsPublisher(nc)
	}

	// 7. Cache du classement (Redis, best effort — désactivé si non configuré)
	var popCache ports.PopularCache = cache.NewNoop()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisotel.InstrumentTracing(rdb); err != nil {
			slog.Warn("Redis tracing instrumentation failed", "error", err)
		}
		defer rdb.Close()
		slog.Info("✅ Redis connected")
		popCache = cache.NewRedisPopularCache(rdb, cfg.PopularCacheTTL)
	}

	// 8. Wiring (Injection de dépendances) — Adapters -> Services
	userService := services.NewUserService(userRepo, graph, broker, mode)
	filmService := services.NewFilmService(filmRepo, userRepo, refRepo, broker, popCache)
	refService := services.NewReferenceService(refRepo)

	// 9. Adapter primaire (REST) + chaîne de middlewares
	server := rest.NewServer(filmService, userService, refService)

	var h http.Handler = server.Handler()
	h = rest.RequestID(h)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	})
	h = c.Handler(h)

	h = otelhttp.NewHandler(h, "Filmotek-REST", otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
		return fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path)
	}))

	srvHTTP := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: h,
	}

	// 10. Démarrage + Graceful Shutdown
	go func() {
		slog.Info("📡 REST server listening", "port", cfg.HTTPPort)
		if err := srvHTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("⚠️  Signal received, shutting down...", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srvHTTP.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("👋 Service stopped")
}

// --- HELPERS ---

func initLogger(cfg *config.Config) {
	var handler slog.Handler
	if cfg.Env == "local" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}

func initTracer(ctx context.Context, cfg *config.Config) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OtelEndpoint),
		otlptracegrpc.WithInsecure(), // En prod, gérez le TLS
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String("1.0.0"),
			semconv.DeploymentEnvironmentKey.String(cfg.Env),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}
