package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidtube-go/internal/api/handler"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/router"
	"vidtube-go/internal/config"
	"vidtube-go/internal/infra/database"
	infraES "vidtube-go/internal/infra/elasticsearch"
	infraKafka "vidtube-go/internal/infra/kafka"
	infraMinio "vidtube-go/internal/infra/minio"
	infraRedis "vidtube-go/internal/infra/redis"
	"vidtube-go/internal/media"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/repository/memory"
	"vidtube-go/internal/service"
	"vidtube-go/pkg/logger"

	_ "vidtube-go/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// @title VidTube-Go API
// @version 1.0
// @description 视频分享平台社交互动 API 服务

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

const shutdownTimeout = 10 * time.Second

func configPath() string {
	if p := os.Getenv("VIDTUBE_CONFIG"); p != "" {
		return p
	}
	return "configs/config.yaml"
}

func main() {
	// 加载配置文件
	cfg, err := config.Load(configPath())
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	store, closeStore := openStore(&cfg.Database)
	defer closeStore()

	// Redis 只用于统计缓存，不可用时直接查库
	var cache service.Cache
	if cfg.Redis.Enabled {
		client, err := infraRedis.Open(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis init failed, channel stats will not be cached", zap.Error(err))
		} else {
			redisCache := infraRedis.NewCache(client)
			defer redisCache.Close()
			cache = redisCache
		}
	}

	blobs, err := infraMinio.Open(&cfg.MinIO)
	if err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	// Elasticsearch 可选，失败则搜索降级到 DB
	var (
		searcher service.VideoSearcher
		indexer  service.VideoIndexer
	)
	if cfg.Elasticsearch.Enabled {
		esClient, err := infraES.Open(&cfg.Elasticsearch)
		if err != nil {
			logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
		} else {
			if err := esClient.InitIndexes(); err != nil {
				logger.Warn("Elasticsearch index init failed", zap.Error(err))
			}
			searcher = esClient
			indexer = esClient
		}
	}
	// 开启 Kafka 时索引变更走消息队列，由 worker 写入 ES
	if cfg.Kafka.Enabled {
		producer := infraKafka.NewProducer(&cfg.Kafka)
		defer producer.Close()
		indexer = producer
	}

	counter := service.NewViewCounter(store)

	userService := service.NewUserService(store)
	videoService := service.NewVideoService(store, counter, blobs, searcher, indexer, media.NewProber(0))

	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(service.NewAuthService(store, cfg.JWT), userService),
		User:         handler.NewUserHandler(userService),
		Video:        handler.NewVideoHandler(videoService, cfg.Upload),
		Like:         handler.NewLikeHandler(service.NewLikeService(store)),
		Subscription: handler.NewSubscriptionHandler(service.NewSubscriptionService(store)),
		Comment:      handler.NewCommentHandler(service.NewCommentService(store)),
		Tweet:        handler.NewTweetHandler(service.NewTweetService(store)),
		Playlist:     handler.NewPlaylistHandler(service.NewPlaylistService(store)),
		Dashboard:    handler.NewDashboardHandler(service.NewDashboardService(store, cache, cfg.Redis.StatsTTLDuration())),
	}

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	r.GET("/healthz", healthCheckHandler(cfg))
	r.GET("/", rootHandler(cfg))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Setup(r, &cfg.JWT, handlers)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
		zap.String("database", cfg.Database.Driver),
		zap.Bool("search", searcher != nil),
		zap.Bool("kafka", cfg.Kafka.Enabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}

	// 等待进行中的播放量累加落库
	counter.Wait()
	logger.Info("Server exited")
}

// openStore 按 database.driver 选择存储实现
func openStore(cfg *config.DatabaseConfig) (repository.Store, func()) {
	if cfg.Driver == "memory" {
		logger.Warn("Using in-memory store, data will be lost on restart")
		return memory.NewStore(), func() {}
	}

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	if err := database.AutoMigrate(db, repository.Models()...); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}
	return repository.NewStore(db), func() {
		if err := database.Close(db); err != nil {
			logger.Error("Failed to close database", zap.Error(err))
		}
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.Debug("Health check requested", zap.String("ip", c.ClientIP()))

		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"message":   "Service is healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"mode":      cfg.App.Mode,
		})
	}
}

// rootHandler 根路径处理器
func rootHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s API", cfg.App.Name),
			"project": cfg.App.Name,
			"version": cfg.App.Version,
			"mode":    cfg.App.Mode,
			"docs":    fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.App.Port),
		})
	}
}
