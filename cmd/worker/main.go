package main

import (
	"context"
	"encoding/json"
	"errors"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/meetapp/adapters/event"
	"github.com/khoahotran/meetapp/adapters/media_storage"
	"github.com/khoahotran/meetapp/adapters/persistence"
	fileUC "github.com/khoahotran/meetapp/internal/application/usecase/file"
	"github.com/khoahotran/meetapp/internal/config"
	"github.com/khoahotran/meetapp/pkg/logger"
	"github.com/khoahotran/meetapp/pkg/tracing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting Meetapp Worker...")

	shutdownTracer, err := tracing.NewTracerProvider(ctx, cfg.Tracing.OTLPEndpoint, "meetapp-worker", appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init tracing", err)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	// Database
	dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Repositories; the cache wrapper drops stale avatar entries on update.
	fileRepo := persistence.NewCachedFileRepo(
		persistence.NewPostgresFileRepo(dbPool, appLogger),
		redisClient,
		cfg.Redis.CacheTTL,
		appLogger,
	)

	// Worker Use Case
	processFileUC := fileUC.NewProcessFileUseCase(fileRepo, uploader, appLogger)

	// Kafka Consumer
	fileConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicFileEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer fileConsumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicFileEvents))

	for {
		msg, err := fileConsumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		l := appLogger.With(zap.String("topic", msg.Topic), zap.String("key", string(msg.Key)), zap.Int64("offset", msg.Offset))

		var payload event.FileEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			l.Error("Failed to unmarshal event, skipping", err)
			commitMessage(ctx, fileConsumer, msg, l)
			continue
		}

		if err := processFileUC.Execute(ctx, payload); err != nil {
			l.Error("Failed to process file event", err, zap.Int64("file_id", payload.FileID))
			continue
		}

		commitMessage(ctx, fileConsumer, msg, l)
	}
}

func commitMessage(ctx context.Context, consumer *kafka.Reader, msg kafka.Message, l logger.Logger) {
	if err := consumer.CommitMessages(ctx, msg); err != nil {
		l.Error("Failed to commit message", err)
	}
}
