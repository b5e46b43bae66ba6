package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
)

// 索引事件类型
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// VideoIndexEvent 视频索引变更消息体
type VideoIndexEvent struct {
	Op      string       `json:"op"`
	VideoID uuid.UUID    `json:"videoId"`
	Video   *model.Video `json:"video,omitempty"`
}

// IndexSink 事件最终写入的索引
type IndexSink interface {
	IndexVideo(ctx context.Context, video *model.Video) error
	RemoveVideo(ctx context.Context, videoID uuid.UUID) error
}

// DecodeEvent 解析并校验消息
func DecodeEvent(value []byte) (*VideoIndexEvent, error) {
	var ev VideoIndexEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return nil, fmt.Errorf("unmarshal video index event: %w", err)
	}
	if ev.VideoID == uuid.Nil {
		return nil, fmt.Errorf("video index event without video id")
	}
	if ev.Op == OpUpsert && ev.Video == nil {
		return nil, fmt.Errorf("upsert event for %s without video", ev.VideoID)
	}
	return &ev, nil
}

// Apply 把事件写入索引
func Apply(ctx context.Context, sink IndexSink, ev *VideoIndexEvent) error {
	switch ev.Op {
	case OpUpsert:
		return sink.IndexVideo(ctx, ev.Video)
	case OpDelete:
		return sink.RemoveVideo(ctx, ev.VideoID)
	default:
		return fmt.Errorf("unknown video index op %q", ev.Op)
	}
}
