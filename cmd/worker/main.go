package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vidtube-go/internal/config"
	"vidtube-go/internal/infra/database"
	infraES "vidtube-go/internal/infra/elasticsearch"
	infraKafka "vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

const (
	groupID          = "vidtube-go-video-indexer"
	reindexBatchSize = 500
)

func configPath() string {
	if p := os.Getenv("VIDTUBE_CONFIG"); p != "" {
		return p
	}
	return "configs/config.yaml"
}

// 默认消费索引事件，参数 reindex 时从数据库全量重建索引
func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	esClient, err := infraES.Open(&cfg.Elasticsearch)
	if err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	if err := esClient.InitIndexes(); err != nil {
		logger.Fatal("Failed to init elasticsearch indexes", zap.Error(err))
	}

	// 监听系统信号，优雅退出
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 && os.Args[1] == "reindex" {
		if err := reindex(ctx, &cfg.Database, esClient); err != nil {
			logger.Fatal("Reindex failed", zap.Error(err))
		}
		return
	}

	topic := cfg.Kafka.Topic("video_index", infraKafka.DefaultIndexTopic)
	logger.Info("Video index worker started",
		zap.String("topic", topic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	infraKafka.ConsumeIndexEvents(ctx, cfg.Kafka.Brokers, topic, groupID, esClient)
	logger.Info("Video index worker stopped")
}

// reindex 按创建时间分批把所有视频写入 ES
func reindex(ctx context.Context, dbCfg *config.DatabaseConfig, esClient *infraES.Client) error {
	db, err := database.Open(dbCfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	videos := repository.NewStore(db).Videos()
	filter := repository.VideoFilter{SortBy: repository.SortByCreatedAt, Ascending: true}

	var success, failed int
	for offset := 0; ; offset += reindexBatchSize {
		batch, total, err := videos.List(ctx, filter, offset, reindexBatchSize)
		if err != nil {
			return fmt.Errorf("list videos at offset %d: %w", offset, err)
		}
		if len(batch) == 0 {
			break
		}

		ok, bad, err := esClient.BulkIndex(ctx, batch)
		if err != nil {
			return fmt.Errorf("bulk index at offset %d: %w", offset, err)
		}
		success += ok
		failed += bad

		logger.Info("Reindex progress",
			zap.Int("offset", offset+len(batch)),
			zap.Int64("total", total),
		)
	}

	logger.Info("Reindex completed", zap.Int("success", success), zap.Int("failed", failed))
	return nil
}
