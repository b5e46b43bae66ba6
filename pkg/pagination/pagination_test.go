package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFallsBackToDefaults(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		want        Params
	}{
		{"zero values", 0, 0, Params{Page: 1, Limit: 10}},
		{"negative", -3, -1, Params{Page: 1, Limit: 10}},
		{"valid", 4, 25, Params{Page: 4, Limit: 25}},
		{"limit capped", 2, 1000, Params{Page: 2, Limit: MaxLimit}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, New(tc.page, tc.limit))
		})
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, Params{Page: 1, Limit: 10}, Parse("", ""))
	assert.Equal(t, Params{Page: 1, Limit: 10}, Parse("abc", "1.5"))
	assert.Equal(t, Params{Page: 3, Limit: 7}, Parse("3", "7"))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, New(1, 10).Offset())
	assert.Equal(t, 10, New(2, 10).Offset())
	assert.Equal(t, 40, New(5, 10).Offset())
}

func TestNewPageMetadata(t *testing.T) {
	page := NewPage([]int{11, 12, 13, 14, 15}, 15, New(2, 10))

	assert.Len(t, page.Docs, 5)
	assert.EqualValues(t, 15, page.TotalDocs)
	assert.EqualValues(t, 2, page.TotalPages)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.HasPrevPage)
}

func TestNewPageTotalPagesIsCeiling(t *testing.T) {
	for total, want := range map[int64]int64{0: 0, 1: 1, 10: 1, 11: 2, 20: 2, 21: 3} {
		page := NewPage[int](nil, total, New(1, 10))
		assert.Equal(t, want, page.TotalPages, "total=%d", total)
	}
}

func TestNewPageBeyondRange(t *testing.T) {
	page := NewPage[string](nil, 3, New(9, 10))

	require.NotNil(t, page.Docs)
	assert.Empty(t, page.Docs)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.HasPrevPage)
}
