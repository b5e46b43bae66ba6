// Package pagination 页码窗口与分页元数据
package pagination

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params 归一化后的分页参数，Page 从 1 开始
type Params struct {
	Page  int
	Limit int
}

// New 非法值回退到默认值，limit 超过上限时截断
func New(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Parse 从查询字符串解析，无法解析的值按缺省处理
func Parse(page, limit string) Params {
	p, err := strconv.Atoi(page)
	if err != nil {
		p = DefaultPage
	}
	l, err := strconv.Atoi(limit)
	if err != nil {
		l = DefaultLimit
	}
	return New(p, l)
}

// Offset 当前页第一行的偏移量
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page 分页结果
type Page[T any] struct {
	Docs        []T   `json:"docs"`
	TotalDocs   int64 `json:"totalDocs"`
	TotalPages  int64 `json:"totalPages"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPage 根据当前页数据和总数构造分页结果
func NewPage[T any](docs []T, total int64, p Params) *Page[T] {
	if docs == nil {
		docs = []T{}
	}
	if p.Limit < 1 {
		p = New(p.Page, p.Limit)
	}
	totalPages := (total + int64(p.Limit) - 1) / int64(p.Limit)

	return &Page[T]{
		Docs:        docs,
		TotalDocs:   total,
		TotalPages:  totalPages,
		Page:        p.Page,
		Limit:       p.Limit,
		HasNextPage: int64(p.Page) < totalPages,
		HasPrevPage: p.Page > 1,
	}
}
