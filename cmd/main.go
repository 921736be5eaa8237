package main

import (
	"context"
	"expvar"
	"log"
	"runtime"
	"time"

	"github.com/hilthontt/rendezvous/internal/domain"
	"github.com/hilthontt/rendezvous/internal/infrastructure/configs"
	"github.com/hilthontt/rendezvous/internal/infrastructure/events"
	"github.com/hilthontt/rendezvous/internal/infrastructure/logging"
	"github.com/hilthontt/rendezvous/internal/infrastructure/messaging"
	"github.com/hilthontt/rendezvous/internal/infrastructure/metrics"
	"github.com/hilthontt/rendezvous/internal/infrastructure/repository"
	"github.com/hilthontt/rendezvous/internal/infrastructure/tracing"
	"github.com/hilthontt/rendezvous/internal/persistence/db"
	auditrepo "github.com/hilthontt/rendezvous/internal/persistence/repository"
	"github.com/hilthontt/rendezvous/internal/presentation/api"
	"github.com/hilthontt/rendezvous/internal/presentation/handler/health"
	"github.com/hilthontt/rendezvous/internal/presentation/handler/signal"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	serviceName = "rendezvous-relay"
)

func main() {
	_ = godotenv.Load()

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		FilePath: cfg.Logger.FilePath,
		Level:    cfg.Logger.Level,
		Logger:   cfg.Logger.Logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Tracing.Enabled {
		sh, err := tracing.InitTracer(tracing.Config{
			ServiceName: serviceName,
			Environment: cfg.Tracing.Environment,
			Endpoint:    cfg.Tracing.Endpoint,
		})
		if err != nil {
			logger.Fatalf("Failed to initialize the tracer: %v", err)
		}
		defer sh(ctx)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	var roomPublisher *events.RoomPublisher

	// Every sweep path reports its reclaimed rooms here, so expiry events
	// fire no matter whether a create, a health check, or the janitor
	// reclaimed the room.
	registry := repository.NewRoomRegistry(repository.Options{
		CodeLength:      cfg.Rooms.CodeLength,
		CodeAlphabet:    cfg.Rooms.CodeAlphabet,
		TTL:             cfg.Rooms.TTL,
		MaxCodeAttempts: cfg.Rooms.MaxCodeAttempts,
		OnExpired: func(room domain.Room) {
			if err := roomPublisher.PublishRoomExpired(ctx, room.Code, room.Answered()); err != nil {
				logger.Errorf("Error publishing room expired: %v", err)
			}
		},
	}, m)

	if cfg.AMQP.Enabled {
		rabbitmq, err := messaging.NewRabbitMQ(cfg.AMQP.URI)
		if err != nil {
			logger.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer rabbitmq.Close()

		logger.Info(logging.RabbitMQ, logging.Startup, "RabbitMQ connection established", nil)

		roomPublisher = events.NewRoomPublisher(rabbitmq)

		auditRepo := connectAuditStore(ctx, cfg, logger)

		roomConsumer := events.NewRoomConsumer(rabbitmq, auditRepo, logger)
		go func() {
			if err := roomConsumer.Listen(); err != nil {
				logger.Errorf("Room consumer stopped: %v", err)
			}
		}()
	}

	signalHandler := signal.NewHandler(registry, roomPublisher, logger)
	healthHandler := health.NewHandler(registry, serviceName)

	app := api.NewApplication(*cfg, *signalHandler, *healthHandler, logger, m)

	// Background janitor: bounds room lifetime even when no request
	// triggers an opportunistic sweep.
	go func() {
		ticker := time.NewTicker(cfg.Rooms.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if expired := registry.Sweep(ctx); len(expired) > 0 {
					logger.Info(logging.Registry, logging.ExpirySweep, "expired rooms reclaimed", map[logging.ExtraKey]any{
						"count": len(expired),
					})
				}
			}
		}
	}()

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
}

// connectAuditStore wires the Mongo-backed audit trail when enabled. The
// relay works without it; the consumer then only logs events.
func connectAuditStore(ctx context.Context, cfg *configs.Config, logger logging.Logger) domain.RoomAuditRepository {
	if !cfg.Audit.Enabled {
		return nil
	}

	mongoCfg := &db.MongoConfig{
		URI:      cfg.Audit.MongoURI,
		Database: cfg.Audit.Database,
	}

	client, err := db.NewMongoClient(ctx, mongoCfg)
	if err != nil {
		logger.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	logger.Info(logging.Mongo, logging.Startup, "MongoDB connection established", map[logging.ExtraKey]any{
		"database": cfg.Audit.Database,
	})

	repo := auditrepo.NewRoomAuditLogRepository(db.GetDatabase(client, mongoCfg))
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Errorf("Failed to ensure audit log indexes: %v", err)
	}

	return repo
}
