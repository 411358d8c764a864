package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/api"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/api/handler"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/api/middleware"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/api/router"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/application"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/config"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/infrastructure/postgres"
	redisinfra "github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/infrastructure/redis"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/pkg/logger"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/pkg/metrics"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/worker"
)

func main() {
	cfg := config.Load()

	logger.Set(logger.NewLogger(cfg.App.Env, cfg.App.LogLevel))
	defer logger.Sync()

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal("JWT_SECRET が設定されていません")
	}

	// DB接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続エラー", zap.Error(err))
	}
	defer db.Close()

	version, err := postgres.RunMigrations(db.DB, cfg.App.MigrationsPath)
	if err != nil {
		logger.Fatal("マイグレーションエラー", zap.Error(err))
	}
	logger.Info("マイグレーション完了", zap.Uint("version", version))

	// Redis は任意。接続できない場合はロックとキャッシュなしで動作する
	var (
		lockManager       redisinfra.LockManagerInterface
		availabilityCache redisinfra.AvailabilityCacheInterface
		redisClient       *goredis.Client
	)
	redisClient, err = redisinfra.NewClient(&redisinfra.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("Redisに接続できません。分散ロックとキャッシュを無効にします", zap.Error(err))
	} else {
		defer redisClient.Close()
		lockManager = redisinfra.NewLockManager(redisClient)
		availabilityCache = redisinfra.NewAvailabilityCache(redisClient)
	}

	m := metrics.Init()

	// リポジトリとサービス
	txManager := postgres.NewTxManager(db)
	eventRepo := postgres.NewEventRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)

	eventService := application.NewEventService(txManager, eventRepo, registrationRepo)
	ticketService := application.NewTicketService(ticketRepo, eventRepo, availabilityCache)
	registrationService := application.NewRegistrationService(
		txManager, registrationRepo, eventRepo, ticketRepo, lockManager, availabilityCache, m,
	)
	reviewService := application.NewReviewService(reviewRepo, eventRepo, registrationRepo)
	favoriteService := application.NewFavoriteService(favoriteRepo, eventRepo)
	userService := application.NewUserService(userRepo)
	postService := application.NewPostService(postRepo)

	checks := map[string]handler.Pinger{
		"database": func(ctx context.Context) error { return postgres.Ping(ctx, db) },
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisinfra.Ping(ctx, redisClient) }
	}

	// Echo セットアップ
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(cfg.App.IsDevelopment())
	middleware.SetupMiddleware(e, cfg.App.FrontendURL)
	e.Use(middleware.PrometheusMiddleware(m))

	router.Register(e, router.Handlers{
		Health:       handler.NewHealthHandler(checks),
		Event:        handler.NewEventHandler(eventService),
		Ticket:       handler.NewTicketHandler(ticketService),
		Registration: handler.NewRegistrationHandler(registrationService),
		Review:       handler.NewReviewHandler(reviewService),
		Favorite:     handler.NewFavoriteHandler(favoriteService),
		User:         handler.NewUserHandler(userService),
		Post:         handler.NewPostHandler(postService),
	}, middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer), router.Options{
		MetricsHandler:  promhttp.Handler(),
		MetricsUser:     cfg.Metrics.User,
		MetricsPassword: cfg.Metrics.Password,
	})

	// バックグラウンドワーカー
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	completer := worker.NewEventCompletionWorker(eventService, m, cfg.Worker.EventCompletionInterval)
	go completer.Start(workerCtx)

	go func() {
		logger.Info("サーバー起動", zap.String("port", cfg.Server.Port), zap.String("env", cfg.App.Env))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")
	completer.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
		return
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
