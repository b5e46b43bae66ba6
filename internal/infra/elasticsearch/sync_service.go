package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidtube-go/internal/model"
	"vidtube-go/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VideoDoc ES 视频文档结构
type VideoDoc struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	IsPublished bool    `json:"is_published"`
	Views       int64   `json:"views"`
	Duration    float64 `json:"duration"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func videoToDoc(v *model.Video) *VideoDoc {
	return &VideoDoc{
		ID:          v.ID.String(),
		OwnerID:     v.OwnerID.String(),
		Title:       v.Title,
		Description: v.Description,
		IsPublished: v.IsPublished,
		Views:       v.Views,
		Duration:    v.Duration,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// IndexVideo 同步单个视频到 ES
func (c *Client) IndexVideo(ctx context.Context, v *model.Video) error {
	body, err := json.Marshal(videoToDoc(v))
	if err != nil {
		return err
	}

	resp, err := c.es.Index(
		c.index,
		bytes.NewReader(body),
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(v.ID.String()),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video synced to ES", zap.String("video_id", v.ID.String()))
	return nil
}

// RemoveVideo 从 ES 删除视频，文档不存在不算失败
func (c *Client) RemoveVideo(ctx context.Context, videoID uuid.UUID) error {
	resp, err := c.es.Delete(c.index, videoID.String(), c.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkIndex 批量同步视频到 ES
func (c *Client) BulkIndex(ctx context.Context, videos []model.Video) (success, failed int, err error) {
	var buf bytes.Buffer
	for i := range videos {
		docBody, err := json.Marshal(videoToDoc(&videos[i]))
		if err != nil {
			return 0, len(videos), err
		}
		fmt.Fprintf(&buf, `{"index":{"_index":%q,"_id":%q}}`, c.index, videos[i].ID.String())
		buf.WriteByte('\n')
		buf.Write(docBody)
		buf.WriteByte('\n')
	}

	if buf.Len() == 0 {
		return 0, 0, nil
	}

	resp, err := c.es.Bulk(&buf, c.es.Bulk.WithContext(ctx))
	if err != nil {
		return 0, len(videos), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(videos), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, len(videos), fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}
