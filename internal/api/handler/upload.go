package handler

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"vidtube-go/internal/config"
	"vidtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	videoFormats = map[string]bool{
		".mp4": true, ".avi": true, ".mov": true,
		".mkv": true, ".flv": true, ".webm": true,
	}
	imageFormats = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
	}
)

// uploadError 上传文件本身不合法，直接作为 400 返回
type uploadError struct{ msg string }

func (e *uploadError) Error() string { return e.msg }

type uploadRules struct {
	label   string
	formats map[string]bool
	maxMB   int64
}

// uploads 请求内暂存的上传文件，处理完成后统一删除
type uploads struct {
	dir   string
	paths []string
}

func newUploads(cfg *config.UploadConfig) *uploads {
	return &uploads{dir: cfg.TempDir}
}

// save 字段缺失时返回空路径，由业务层决定是否必填
func (u *uploads) save(c *gin.Context, field string, rules uploadRules) (string, error) {
	file, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", &uploadError{msg: "读取上传文件失败: " + err.Error()}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !rules.formats[ext] {
		return "", &uploadError{msg: fmt.Sprintf("不支持的%s格式: %s", rules.label, ext)}
	}
	if file.Size == 0 || (rules.maxMB > 0 && file.Size > rules.maxMB<<20) {
		return "", &uploadError{msg: fmt.Sprintf("%s大小无效（不能为空，最大 %dMB）", rules.label, rules.maxMB)}
	}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(u.dir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	u.paths = append(u.paths, path)
	return path, nil
}

func (u *uploads) cleanup() {
	for _, p := range u.paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.Warn("Remove temp upload failed", zap.String("path", p), zap.Error(err))
		}
	}
}
