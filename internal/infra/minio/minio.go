package minio

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vidtube-go/internal/config"
	"vidtube-go/internal/model"
	"vidtube-go/internal/service"
	"vidtube-go/pkg/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

// Storage 媒体文件存储，视频和封面分桶保存
type Storage struct {
	client   *minio.Client
	endpoint string
	useSSL   bool
	buckets  map[service.BlobKind]string
}

var _ service.BlobStore = (*Storage)(nil)

// Open 创建 MinIO 客户端并确保所有 Bucket 存在且公开可读
func Open(cfg *config.MinIOConfig) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	s := &Storage{
		client:   client,
		endpoint: cfg.Endpoint,
		useSSL:   cfg.UseSSL,
		buckets: map[service.BlobKind]string{
			service.BlobVideo: cfg.VideoBucket,
			service.BlobImage: cfg.ThumbnailBucket,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, bucket := range s.buckets {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
			logger.Info("MinIO bucket created", zap.String("bucket", bucket))
		}
		// 前端直接播放视频、展示封面
		if err := client.SetBucketPolicy(ctx, bucket, fmt.Sprintf(publicReadPolicy, bucket)); err != nil {
			return nil, fmt.Errorf("failed to set public policy for %s: %w", bucket, err)
		}
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("video_bucket", cfg.VideoBucket),
		zap.String("thumbnail_bucket", cfg.ThumbnailBucket),
	)

	return s, nil
}

// Store 上传本地文件，返回公开 URL 和 "bucket/object" 形式的资源标识
func (s *Storage) Store(ctx context.Context, localPath string, kind service.BlobKind) (model.Asset, error) {
	bucket, ok := s.buckets[kind]
	if !ok {
		return model.Asset{}, fmt.Errorf("unknown blob kind %q", kind)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return model.Asset{}, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return model.Asset{}, fmt.Errorf("stat %s: %w", localPath, err)
	}

	objectName := newObjectName(kind, localPath, time.Now())
	_, err = s.client.PutObject(ctx, bucket, objectName, f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType(localPath),
	})
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to upload to minio: %w", err)
	}

	logger.Debug("Blob stored",
		zap.String("bucket", bucket),
		zap.String("object", objectName),
		zap.Int64("size", info.Size()),
	)

	return model.Asset{
		URL:     PublicURL(s.endpoint, s.useSSL, bucket, objectName),
		AssetID: bucket + "/" + objectName,
	}, nil
}

// Delete 删除对象，不存在的对象视为已删除
func (s *Storage) Delete(ctx context.Context, assetID string, kind service.BlobKind) error {
	bucket, objectName := splitAssetID(assetID, s.buckets[kind])
	if bucket == "" || objectName == "" {
		return fmt.Errorf("invalid asset id %q", assetID)
	}
	if err := s.client.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s from minio: %w", assetID, err)
	}
	return nil
}

// PublicURL 生成公开访问 URL（需要 Bucket 设置为 public-read）
func PublicURL(endpoint string, useSSL bool, bucket, objectName string) string {
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, bucket, objectName)
}

// newObjectName 形如 video/2026/10/<uuid>.mp4
func newObjectName(kind service.BlobKind, localPath string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	return fmt.Sprintf("%s/%s/%s%s", kind, now.UTC().Format("2006/01"), uuid.NewString(), ext)
}

// splitAssetID 不带 bucket 前缀时使用 fallback
func splitAssetID(assetID, fallback string) (bucket, objectName string) {
	assetID = strings.TrimPrefix(assetID, "/")
	if i := strings.Index(assetID, "/"); i > 0 {
		head := assetID[:i]
		if fallback == "" || head == fallback {
			return head, assetID[i+1:]
		}
	}
	return fallback, assetID
}

func contentType(path string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return t
	}
	return "application/octet-stream"
}
