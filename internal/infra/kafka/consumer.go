package kafka

import (
	"context"
	"time"

	"vidtube-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeIndexEvents 消费索引事件写入 sink（阻塞），ctx 取消后停止
func ConsumeIndexEvents(ctx context.Context, brokers []string, topic, groupID string, sink IndexSink) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka video index consumer stopped")
	}()

	logger.Info("Kafka video index consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		ev, err := DecodeEvent(msg.Value)
		if err != nil {
			logger.Error("Failed to decode video index event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := Apply(ctx, sink, ev); err != nil {
			logger.Error("Failed to apply video index event",
				zap.String("op", ev.Op),
				zap.String("video_id", ev.VideoID.String()),
				zap.Error(err),
			)
			continue
		}

		logger.Debug("Video index event applied",
			zap.String("op", ev.Op),
			zap.String("video_id", ev.VideoID.String()),
			zap.Int64("offset", msg.Offset),
		)
	}
}
