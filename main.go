package main

import (
	"context"
	"log"
	"time"

	"venue-booking/cmd"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/data/repository/memstore"
	"venue-booking/internal/data/repository/mongostore"
	"venue-booking/internal/data/repository/pgstore"
	"venue-booking/internal/events"
	"venue-booking/internal/wire"
	"venue-booking/pkg/database"
	"venue-booking/pkg/metrics"
	"venue-booking/pkg/middleware"
	"venue-booking/pkg/telemetry"
	"venue-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using zap production logger.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("store", config.Store.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()

	metrics.Register()

	shutdownTracing, err := telemetry.Setup(ctx, config.Telemetry, config.App.Name)
	if err != nil {
		logger.Fatal("Failed to set up tracing", zap.Error(err))
	}

	repos, err := openStore(ctx, config, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	logger.Info("Store ready", zap.String("driver", config.Store.Driver))

	publisher := newPublisher(config, logger)
	limiter, closeLimiter := newLimiter(ctx, config, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, publisher, limiter, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}

	cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := publisher.Close(); err != nil {
		logger.Warn("Failed to close event publisher", zap.Error(err))
	}
	closeLimiter()
	if err := repos.Store.Close(cleanupCtx); err != nil {
		logger.Warn("Failed to close store", zap.Error(err))
	}
	if err := shutdownTracing(cleanupCtx); err != nil {
		logger.Warn("Failed to shut down tracing", zap.Error(err))
	}

	logger.Info("Application stopped")
}

func openStore(ctx context.Context, config *utils.Config, logger *zap.Logger) (*repository.Repository, error) {
	switch config.Store.Driver {
	case utils.StoreDriverPostgres:
		db, err := database.InitPostgres(ctx, config.Database)
		if err != nil {
			return nil, err
		}
		store := pgstore.NewStore(db, logger)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return pgstore.NewRepository(store), nil

	case utils.StoreDriverMemory:
		logger.Warn("Using in-memory store; data is lost on restart")
		return memstore.NewRepository(memstore.NewStore(logger)), nil

	default:
		client, err := database.InitMongo(ctx, config.Mongo)
		if err != nil {
			return nil, err
		}
		transactions := config.Mongo.Transactions
		if transactions {
			supported, err := database.MongoSupportsTransactions(ctx, client)
			if err != nil {
				_ = client.Disconnect(ctx)
				return nil, err
			}
			if !supported {
				logger.Warn("MongoDB is a standalone server; transactions disabled, unique index guards booking slots")
				transactions = false
			}
		}
		store := mongostore.NewStore(client, config.Mongo.Database, transactions, logger)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return mongostore.NewRepository(store), nil
	}
}

func newPublisher(config *utils.Config, logger *zap.Logger) events.Publisher {
	if len(config.Kafka.Brokers) == 0 {
		logger.Info("No Kafka brokers configured; booking events are not published")
		return events.NopPublisher{}
	}
	logger.Info("Publishing booking events",
		zap.Strings("brokers", config.Kafka.Brokers),
		zap.String("topic", config.Kafka.BookingTopic),
	)
	return events.NewKafkaPublisher(config.Kafka.Brokers, config.Kafka.BookingTopic, logger)
}

// newLimiter prefers a Redis-backed limiter so every instance shares one
// budget, and falls back to a per-process limiter when Redis is absent.
func newLimiter(ctx context.Context, config *utils.Config, logger *zap.Logger) (middleware.Limiter, func()) {
	local := middleware.NewLocalLimiter(config.RateLimit.PerMinute, config.RateLimit.Burst)
	if config.Redis.Addr == "" {
		return local, func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unavailable; using in-process rate limiter", zap.Error(err))
		_ = rdb.Close()
		return local, func() {}
	}

	logger.Info("Using Redis rate limiter", zap.String("addr", config.Redis.Addr))
	limiter := middleware.NewRedisLimiter(rdb, config.RateLimit.PerMinute, time.Minute, config.App.Name+":rl")
	return limiter, func() { _ = rdb.Close() }
}
