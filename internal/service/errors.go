package service

import (
	"errors"

	"gorm.io/gorm"
)

// 错误类别，具体错误都可以通过 errors.Is 归到其中一类
var (
	ErrInvalidReference  = errors.New("invalid reference")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrValidationFailed  = errors.New("validation failed")
	ErrDependencyFailure = errors.New("dependency failure")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// dependencyError 存储或外部服务调用失败，保留原始错误
type dependencyError struct {
	op    string
	cause error
}

func (e *dependencyError) Error() string   { return e.op + ": " + e.cause.Error() }
func (e *dependencyError) Unwrap() []error { return []error{ErrDependencyFailure, e.cause} }

var (
	ErrInvalidVideoID    = newError(ErrInvalidReference, "无效的视频ID")
	ErrInvalidCommentID  = newError(ErrInvalidReference, "无效的评论ID")
	ErrInvalidTweetID    = newError(ErrInvalidReference, "无效的动态ID")
	ErrInvalidUserID     = newError(ErrInvalidReference, "无效的用户ID")
	ErrInvalidChannelID  = newError(ErrInvalidReference, "无效的频道ID")
	ErrInvalidPlaylistID = newError(ErrInvalidReference, "无效的播放列表ID")

	ErrNoFieldsToUpdate = newError(ErrValidationFailed, "没有需要更新的字段")
	ErrContentRequired  = newError(ErrValidationFailed, "内容不能为空")
)

// wrapStore 把存储层错误归为 DependencyFailure，已分类的错误原样返回
func wrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	var ke *kindError
	if errors.As(err, &ke) {
		return err
	}
	var de *dependencyError
	if errors.As(err, &de) {
		return err
	}
	return &dependencyError{op: op, cause: err}
}

// lookupErr 记录不存在时返回 notFound，其余按依赖失败处理
func lookupErr(op string, err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return wrapStore(op, err)
}

// KindOf 返回错误所属类别，未分类的错误视为 DependencyFailure
func KindOf(err error) error {
	for _, kind := range []error{ErrInvalidReference, ErrValidationFailed, ErrNotFound, ErrForbidden} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrDependencyFailure
}
