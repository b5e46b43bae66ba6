package service

import (
	"context"
	"time"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
)

// BlobKind 媒体文件类型，决定存储位置
type BlobKind string

const (
	BlobVideo BlobKind = "video"
	BlobImage BlobKind = "image"
)

// BlobStore 媒体文件存储
type BlobStore interface {
	Store(ctx context.Context, localPath string, kind BlobKind) (model.Asset, error)
	Delete(ctx context.Context, assetID string, kind BlobKind) error
}

// VideoSearcher 视频全文检索
type VideoSearcher interface {
	SearchVideoIDs(ctx context.Context, query string, limit int) ([]uuid.UUID, error)
}

// VideoIndexer 视频索引同步（直写或经消息队列）
type VideoIndexer interface {
	IndexVideo(ctx context.Context, video *model.Video) error
	RemoveVideo(ctx context.Context, videoID uuid.UUID) error
}

// Cache 键值缓存
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// DurationProber 读取本地视频文件时长（秒）
type DurationProber interface {
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

type nopIndexer struct{}

func (nopIndexer) IndexVideo(context.Context, *model.Video) error { return nil }
func (nopIndexer) RemoveVideo(context.Context, uuid.UUID) error   { return nil }

type nopCache struct{}

func (nopCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (nopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nopCache) Delete(context.Context, ...string) error                  { return nil }

type nopProber struct{}

func (nopProber) ProbeDuration(context.Context, string) (float64, error) { return 0, nil }
