package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/meetapp/adapters/event"
	httpAdapter "github.com/khoahotran/meetapp/adapters/http"
	"github.com/khoahotran/meetapp/adapters/media_storage"
	"github.com/khoahotran/meetapp/adapters/persistence"
	"github.com/khoahotran/meetapp/internal/application/service"
	authUC "github.com/khoahotran/meetapp/internal/application/usecase/auth"
	fileUC "github.com/khoahotran/meetapp/internal/application/usecase/file"
	meetupUC "github.com/khoahotran/meetapp/internal/application/usecase/meetup"
	userUC "github.com/khoahotran/meetapp/internal/application/usecase/user"
	"github.com/khoahotran/meetapp/internal/config"
	"github.com/khoahotran/meetapp/pkg/auth"
	"github.com/khoahotran/meetapp/pkg/logger"
	"github.com/khoahotran/meetapp/pkg/tracing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", err)
	}
	appLogger.Info("Start Meetapp API Server...", zap.String("env", cfg.App.Env))

	shutdownTracer, err := tracing.NewTracerProvider(ctx, cfg.Tracing.OTLPEndpoint, "meetapp-api", appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init tracing", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			appLogger.Error("Failed to shutdown tracer", err)
		}
	}()

	// Initialize dependencies
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

	kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	fileRepo := persistence.NewCachedFileRepo(
		persistence.NewPostgresFileRepo(dbPool, appLogger),
		redisClient,
		cfg.Redis.CacheTTL,
		appLogger,
	)
	meetupRepo := persistence.NewPostgresMeetupRepo(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	avatars := service.NewAvatarResolver(fileRepo, appLogger)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, avatars, jwtSvc, appLogger)
	createUserUseCase := userUC.NewCreateUserUseCase(userRepo, appLogger)
	updateUserUseCase := userUC.NewUpdateUserUseCase(userRepo, fileRepo, avatars, appLogger)
	uploadFileUseCase := fileUC.NewUploadFileUseCase(fileRepo, uploader, kafkaClient, appLogger)
	listMeetupsUseCase := meetupUC.NewListMeetupsUseCase(meetupRepo, appLogger)
	getMeetupUseCase := meetupUC.NewGetMeetupUseCase(meetupRepo, appLogger)

	// HTTP
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Auth:           httpAdapter.NewAuthHandler(loginUseCase, appLogger),
		Users:          httpAdapter.NewUserHandler(createUserUseCase, updateUserUseCase, appLogger),
		Files:          httpAdapter.NewFileHandler(uploadFileUseCase, appLogger),
		Meetups:        httpAdapter.NewMeetupHandler(listMeetupsUseCase, getMeetupUseCase, appLogger),
		AuthMiddleware: httpAdapter.AuthMiddleware(jwtSvc, appLogger),
		Logger:         appLogger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
