package service

import (
	"context"
	"sync"
	"time"

	"vidtube-go/internal/repository"
	"vidtube-go/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const viewIncrementTimeout = 5 * time.Second

// ViewCounter 异步累加播放量，失败只记录日志
type ViewCounter struct {
	store repository.Store
	wg    sync.WaitGroup
}

func NewViewCounter(store repository.Store) *ViewCounter {
	return &ViewCounter{store: store}
}

// Increment 不阻塞调用方，不继承请求的 context
func (c *ViewCounter) Increment(videoID uuid.UUID) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), viewIncrementTimeout)
		defer cancel()

		if err := c.store.Videos().IncrementViews(ctx, videoID); err != nil {
			logger.Warn("Increment video views failed",
				zap.String("video_id", videoID.String()), zap.Error(err))
		}
	}()
}

// Wait 等待所有进行中的累加完成
func (c *ViewCounter) Wait() {
	c.wg.Wait()
}
