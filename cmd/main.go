package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/moodwatch/config"
	"github.com/oksasatya/moodwatch/internal/container"
	"github.com/oksasatya/moodwatch/internal/domain/repository"
	sig "github.com/oksasatya/moodwatch/internal/domain/signal"
	"github.com/oksasatya/moodwatch/internal/infrastructure/gemini"
	"github.com/oksasatya/moodwatch/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/moodwatch/internal/infrastructure/postgres"
	"github.com/oksasatya/moodwatch/internal/interface/middleware"
	"github.com/oksasatya/moodwatch/internal/router"
	"github.com/oksasatya/moodwatch/pkg/helpers"
	"github.com/oksasatya/moodwatch/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Record store and users
	switch cfg.StoreBackend {
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to postgres")
		}
		defer pool.Close()
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			logger.WithError(err).Fatal("migration failed")
		}
		container.SetPGPool(pool)
		container.SetRecordStore(pginfra.NewRecordStore(pool))
		container.SetUserRepo(pginfra.NewUserRepository(pool))
	default:
		logger.Warn("using in-memory store; data is lost on restart")
		container.SetRecordStore(memory.NewRecordStore())
		container.SetUserRepo(memory.NewUserRepository())
	}

	// Redis: sessions and rate limits
	if cfg.RedisEnabled {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			logger.WithError(err).Fatal("redis unreachable")
		}
		defer func() { _ = rdb.Close() }()
		container.SetRedis(rdb)
	}

	// RabbitMQ: urgent alert queue
	if cfg.RabbitMQEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQAlertQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; urgent alerts will not be queued")
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	// Elasticsearch: post search
	if cfg.ElasticsearchEnabled {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err == nil {
			err = helpers.PingES(ctx, es)
		}
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable; search falls back to a store scan")
		} else {
			container.SetES(es)
		}
	}

	// GCS: analysis archive
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("gcs unavailable; analyses will not be archived")
		} else {
			defer func() { _ = gcsClient.Close() }()
			container.SetGCS(gcsClient)
		}
	}

	gw, err := newGateway(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to init completion gateway")
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetGateway(gw)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL))

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) > 0 {
		r.Use(cors.New(corsCfg))
	}
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()
	logger.WithField("routes", len(reg.Routes())).Debug("routes registered")

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// let in-flight chat turns finish their gateway call
	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.GatewayTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

func newGateway(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repository.CompletionGateway, error) {
	if cfg.GeminiUseMock {
		logger.Warn("GEMINI_USE_MOCK=true; replies are canned")
		return gemini.NewMockGateway(sig.NewScorer(cfg.UrgencyThreshold)), nil
	}
	return gemini.NewGateway(ctx, gemini.Config{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		APIVersion: cfg.GeminiAPIVersion,
		Model:      cfg.GeminiModel,
	})
}
