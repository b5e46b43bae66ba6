package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidtube-go/internal/config"
	"vidtube-go/internal/model"
	"vidtube-go/pkg/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const DefaultIndexTopic = "vidtube.video.index"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer 把视频变更投递到索引 topic，由 worker 异步写入 ES
type Producer struct {
	writer messageWriter
	topic  string
}

// NewProducer 初始化 Kafka 生产者
func NewProducer(cfg *config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	topic := cfg.Topic("video_index", DefaultIndexTopic)

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", topic),
	)

	return &Producer{writer: writer, topic: topic}
}

// IndexVideo 发送 upsert 事件
func (p *Producer) IndexVideo(ctx context.Context, video *model.Video) error {
	return p.send(ctx, &VideoIndexEvent{Op: OpUpsert, VideoID: video.ID, Video: video})
}

// RemoveVideo 发送 delete 事件
func (p *Producer) RemoveVideo(ctx context.Context, videoID uuid.UUID) error {
	return p.send(ctx, &VideoIndexEvent{Op: OpDelete, VideoID: videoID})
}

// 同一视频的事件使用相同 key，保证分区内有序
func (p *Producer) send(ctx context.Context, ev *VideoIndexEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal video index event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(ev.VideoID.String()),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send video index event: %w", err)
	}

	logger.Debug("Video index event sent",
		zap.String("op", ev.Op),
		zap.String("video_id", ev.VideoID.String()),
		zap.String("topic", p.topic),
	)
	return nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
