package elasticsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

// videosIndexMapping videos 索引的 mapping
const videosIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"id": {"type": "keyword"},
			"owner_id": {"type": "keyword"},
			"title": {
				"type": "text",
				"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
			},
			"description": {"type": "text"},
			"is_published": {"type": "boolean"},
			"views": {"type": "long"},
			"duration": {"type": "float"},
			"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
			"updated_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
		}
	}
}`

// EnsureVideosIndex 确保 videos 索引存在，不存在则创建
func (c *Client) EnsureVideosIndex(ctx context.Context) error {
	resp, err := c.es.Indices.Exists([]string{c.index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == 200 {
		logger.Info("Elasticsearch videos index already exists", zap.String("index", c.index))
		return nil
	}

	resp, err = c.es.Indices.Create(
		c.index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(strings.NewReader(videosIndexMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch videos index created", zap.String("index", c.index))
	return nil
}

// InitIndexes 初始化所有索引（启动时调用）
func (c *Client) InitIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return c.EnsureVideosIndex(ctx)
}
