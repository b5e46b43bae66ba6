package service

import (
	"sync"
	"testing"

	"vidtube-go/internal/model"
	"vidtube-go/pkg/pagination"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleVideoLikeTwiceRestoresState(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	actor := f.user(t, "actor")
	video := f.video(t, owner, "intro", true)

	status, err := f.likes.ToggleVideoLike(f.ctx, actor.ID, video.ID)
	require.NoError(t, err)
	assert.True(t, status.IsLiked)
	assert.EqualValues(t, 1, status.LikesCount)

	detail, err := f.videos.GetVideoByID(f.ctx, actor.ID, video.ID)
	require.NoError(t, err)
	assert.True(t, detail.IsLiked)
	assert.EqualValues(t, 1, detail.LikesCount)

	status, err = f.likes.ToggleVideoLike(f.ctx, actor.ID, video.ID)
	require.NoError(t, err)
	assert.False(t, status.IsLiked)
	assert.EqualValues(t, 0, status.LikesCount)
	assert.EqualValues(t, 0, f.likeCount(t, model.VideoTarget(video.ID)))
}

func TestConcurrentTogglesNeverDuplicateEdge(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	actor := f.user(t, "actor")
	video := f.video(t, owner, "race", true)

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.likes.ToggleVideoLike(f.ctx, actor.ID, video.ID)
			assert.NoError(t, err)
			counts, err := f.store.Likes().CountByTargets(f.ctx, model.TargetVideo, []uuid.UUID{video.ID})
			assert.NoError(t, err)
			assert.Contains(t, []int64{0, 1}, counts[video.ID])
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 0, f.likeCount(t, model.VideoTarget(video.ID)))
}

func TestToggleLikeMissingTarget(t *testing.T) {
	f := newFixture(t)
	actor := f.user(t, "actor")

	_, err := f.likes.ToggleVideoLike(f.ctx, actor.ID, uuid.New())
	assert.ErrorIs(t, err, ErrVideoNotFound)

	_, err = f.likes.ToggleCommentLike(f.ctx, actor.ID, uuid.New())
	assert.ErrorIs(t, err, ErrCommentNotFound)

	_, err = f.likes.ToggleTweetLike(f.ctx, actor.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeKindsAreIndependent(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	actor := f.user(t, "actor")
	video := f.video(t, owner, "intro", true)
	comment := f.comment(t, owner, video, "first")

	_, err := f.likes.ToggleCommentLike(f.ctx, actor.ID, comment.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, f.likeCount(t, model.CommentTarget(comment.ID)))
	assert.EqualValues(t, 0, f.likeCount(t, model.VideoTarget(video.ID)))
}

func TestGetLikedVideos(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	actor := f.user(t, "actor")
	first := f.video(t, owner, "first", true)
	second := f.video(t, owner, "second", true)
	hidden := f.video(t, owner, "hidden", false)

	for _, v := range []*model.Video{first, second, hidden} {
		_, err := f.likes.ToggleVideoLike(f.ctx, actor.ID, v.ID)
		require.NoError(t, err)
	}

	page, err := f.likes.GetLikedVideos(f.ctx, actor.ID, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Docs, 2)
	assert.Equal(t, second.ID, page.Docs[0].ID)
	assert.Equal(t, first.ID, page.Docs[1].ID)
	require.NotNil(t, page.Docs[0].Owner)
	assert.Equal(t, "owner", page.Docs[0].Owner.Username)
	assert.EqualValues(t, 1, page.Docs[0].LikesCount)

	ownPage, err := f.likes.GetLikedVideos(f.ctx, owner.ID, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Empty(t, ownPage.Docs)
}

func TestLikedVideosPageCountsVisibleRowsOnly(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	fan := f.user(t, "fan")
	a := f.video(t, owner, "a", true)
	b := f.video(t, owner, "b", true)
	c := f.video(t, owner, "c", true)
	d := f.video(t, owner, "d", true)

	for _, v := range []*model.Video{a, b, c, d} {
		_, err := f.likes.ToggleVideoLike(f.ctx, fan.ID, v.ID)
		require.NoError(t, err)
	}
	status, err := f.videos.TogglePublishStatus(f.ctx, owner.ID, c.ID)
	require.NoError(t, err)
	require.False(t, status.IsPublished)

	first, err := f.likes.GetLikedVideos(f.ctx, fan.ID, pagination.New(1, 2))
	require.NoError(t, err)
	require.Len(t, first.Docs, 2)
	assert.Equal(t, d.ID, first.Docs[0].ID)
	assert.Equal(t, b.ID, first.Docs[1].ID)
	assert.EqualValues(t, 3, first.TotalDocs)
	assert.EqualValues(t, 2, first.TotalPages)
	assert.True(t, first.HasNextPage)

	second, err := f.likes.GetLikedVideos(f.ctx, fan.ID, pagination.New(2, 2))
	require.NoError(t, err)
	require.Len(t, second.Docs, 1)
	assert.Equal(t, a.ID, second.Docs[0].ID)
	assert.False(t, second.HasNextPage)

	// 作者本人仍能看到自己点赞过的未公开视频
	_, err = f.likes.ToggleVideoLike(f.ctx, owner.ID, c.ID)
	require.NoError(t, err)
	own, err := f.likes.GetLikedVideos(f.ctx, owner.ID, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, own.Docs, 1)
	assert.EqualValues(t, 1, own.TotalDocs)
}
