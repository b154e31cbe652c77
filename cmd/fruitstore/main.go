package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fruitstore/fruit-api/handlers"
	"github.com/fruitstore/fruit-api/internal/config"
	"github.com/fruitstore/fruit-api/internal/database"
	"github.com/fruitstore/fruit-api/internal/fruit"
	fruithandler "github.com/fruitstore/fruit-api/internal/fruit/handler"
	"github.com/fruitstore/fruit-api/internal/fruit/service"
	"github.com/fruitstore/fruit-api/internal/fruit/store"
	"github.com/fruitstore/fruit-api/internal/storage"
	"github.com/fruitstore/fruit-api/pkg/logger"
	"github.com/fruitstore/fruit-api/pkg/metrics"
	"github.com/fruitstore/fruit-api/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL is read again from config below; this covers config errors
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: backend=%s rate_limit=%v log_level=%s", cfg.Store.Backend, cfg.RateLimit.Enabled, logger.LevelString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to reach Redis at %s: %v", cfg.RedisAddr(), err)
		} else {
			logger.Infof("connected to Redis at %s", cfg.RedisAddr())
		}
	}

	st, closeStore, err := openStore(ctx, cfg, redisClient)
	if err != nil {
		logger.Fatalf("failed to open %s store: %v", cfg.Store.Backend, err)
	}
	defer closeStore()
	st = store.Instrument(st)

	if cfg.Store.SeedOnStart {
		seeded, err := store.Seed(ctx, st)
		if err != nil {
			logger.Fatalf("failed to seed store: %v", err)
		}
		if seeded {
			logger.Infof("created initial %s document with %d starter categories", st.Backend(), len(fruit.StarterCategories))
		}
	}

	svc := service.NewService(st)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(), middleware.RequestLogger())

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
			logger.Infof("rate limiter: redis (rps=%.2f burst=%d window=%s)", cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
			logger.Infof("rate limiter: memory (rps=%.2f burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	handlers.RegisterHealth(r, svc, st.Backend(), startTime)
	handlers.RegisterSwagger(r)
	fruithandler.RegisterRoutes(r, svc)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("Starting Fruit Store API on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

// openStore builds the configured backend. The returned func releases its connections.
func openStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (store.Store, func(), error) {
	noop := func() {}
	switch cfg.Store.Backend {
	case config.BackendMemory:
		logger.Warnf("using in-memory store; data is lost on restart")
		return store.NewMemoryStore(), noop, nil
	case config.BackendRedis:
		return store.NewRedisStore(redisClient, cfg.Redis.Key), noop, nil
	case config.BackendMongo:
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, func(attempt int, err error) {
			logger.Warnf("attempt %d/5: failed to connect to MongoDB: %v", attempt, err)
		})
		if err != nil {
			return nil, noop, err
		}
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		logger.Infof("using MongoDB collection %s.%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
		return store.NewMongoStore(col), func() { _ = client.Disconnect(context.Background()) }, nil
	case config.BackendMinIO:
		objects, err := storage.NewMinIOStorage(ctx, storage.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Bucket:    cfg.MinIO.Bucket,
		})
		if err != nil {
			return nil, noop, err
		}
		logger.Infof("using MinIO object %s/%s", cfg.MinIO.Bucket, cfg.MinIO.Object)
		return store.NewObjectStore(objects, cfg.MinIO.Object), noop, nil
	default:
		logger.Infof("using data file %s", cfg.Store.DataFile)
		return store.NewFileStore(cfg.Store.DataFile), noop, nil
	}
}
