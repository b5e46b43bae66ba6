package minio

import (
	"strings"
	"testing"
	"time"

	"vidtube-go/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:9000/videos/a/b.mp4", PublicURL("127.0.0.1:9000", false, "videos", "a/b.mp4"))
	assert.Equal(t, "https://cdn.example.com/thumbnails/x.jpg", PublicURL("cdn.example.com", true, "thumbnails", "x.jpg"))
}

func TestNewObjectName(t *testing.T) {
	now := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

	name := newObjectName(service.BlobVideo, "/tmp/upload/Clip.MP4", now)
	assert.True(t, strings.HasPrefix(name, "video/2026/10/"), name)
	assert.True(t, strings.HasSuffix(name, ".mp4"), name)

	other := newObjectName(service.BlobVideo, "/tmp/upload/Clip.MP4", now)
	assert.NotEqual(t, name, other)
}

func TestSplitAssetID(t *testing.T) {
	tests := []struct {
		name       string
		assetID    string
		fallback   string
		wantBucket string
		wantObject string
	}{
		{"bucket prefix", "videos/video/2026/10/a.mp4", "videos", "videos", "video/2026/10/a.mp4"},
		{"no fallback", "thumbnails/image/a.jpg", "", "thumbnails", "image/a.jpg"},
		{"bare object", "image/2026/10/a.jpg", "thumbnails", "thumbnails", "image/2026/10/a.jpg"},
		{"leading slash", "/videos/a.mp4", "videos", "videos", "a.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, object := splitAssetID(tt.assetID, tt.fallback)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantObject, object)
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", contentType("cover.JPG"))
	assert.Equal(t, "application/octet-stream", contentType("noext"))
}
