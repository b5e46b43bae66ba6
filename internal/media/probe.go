package media

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const defaultProbeTimeout = 30 * time.Second

// Prober 通过 ffprobe 读取视频时长
type Prober struct {
	timeout time.Duration
}

func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &Prober{timeout: timeout}
}

// ProbeDuration 返回秒数，ctx 的截止时间比 timeout 更早时以 ctx 为准
func (p *Prober) ProbeDuration(ctx context.Context, path string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	out, err := ffmpeg.ProbeWithTimeout(path, timeout, ffmpeg.KwArgs{})
	if err != nil {
		return 0, errors.WithMessagef(err, "Failed to probe %s", path)
	}
	return parseDuration([]byte(out))
}

func parseDuration(out []byte) (float64, error) {
	var data struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			Duration  string `json:"duration"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(out, &data); err != nil {
		return 0, errors.Wrap(err, "Failed to decode ffprobe output")
	}

	if d, ok := positiveSeconds(data.Format.Duration); ok {
		return d, nil
	}
	// 部分容器只在视频流上记录时长
	for _, s := range data.Streams {
		if s.CodecType != "video" {
			continue
		}
		if d, ok := positiveSeconds(s.Duration); ok {
			return d, nil
		}
	}
	return 0, errors.New("ffprobe output has no duration")
}

func positiveSeconds(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}
