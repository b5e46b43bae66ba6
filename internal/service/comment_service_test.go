package service

import (
	"fmt"
	"testing"

	"vidtube-go/internal/model"
	"vidtube-go/pkg/pagination"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVideoCommentsSecondPage(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	video := f.video(t, owner, "intro", true)
	for i := 1; i <= 15; i++ {
		f.comment(t, owner, video, fmt.Sprintf("comment %d", i))
	}

	page, err := f.comments.GetVideoComments(f.ctx, uuid.Nil, video.ID, pagination.New(2, 10))
	require.NoError(t, err)
	require.Len(t, page.Docs, 5)
	assert.EqualValues(t, 15, page.TotalDocs)
	assert.EqualValues(t, 2, page.TotalPages)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.HasPrevPage)

	// 新的在前，第二页是最早的 5 条
	assert.Equal(t, "comment 5", page.Docs[0].Content)
	assert.Equal(t, "comment 1", page.Docs[4].Content)

	beyond, err := f.comments.GetVideoComments(f.ctx, uuid.Nil, video.ID, pagination.New(3, 10))
	require.NoError(t, err)
	assert.Empty(t, beyond.Docs)
	assert.EqualValues(t, 15, beyond.TotalDocs)
}

func TestGetVideoCommentsPersonalized(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	viewer := f.user(t, "viewer")
	video := f.video(t, owner, "intro", true)
	liked := f.comment(t, owner, video, "liked")
	f.comment(t, viewer, video, "plain")

	_, err := f.likes.ToggleCommentLike(f.ctx, viewer.ID, liked.ID)
	require.NoError(t, err)

	page, err := f.comments.GetVideoComments(f.ctx, viewer.ID, video.ID, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Docs, 2)

	plain, first := page.Docs[0], page.Docs[1]
	assert.Equal(t, "plain", plain.Content)
	assert.EqualValues(t, 0, plain.LikesCount)
	assert.False(t, plain.IsLiked)
	require.NotNil(t, plain.Owner)
	assert.Equal(t, "viewer", plain.Owner.Username)

	assert.EqualValues(t, 1, first.LikesCount)
	assert.True(t, first.IsLiked)
}

func TestGetVideoCommentsMissingVideo(t *testing.T) {
	f := newFixture(t)

	_, err := f.comments.GetVideoComments(f.ctx, uuid.Nil, uuid.New(), pagination.New(1, 10))
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestAddComment(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	video := f.video(t, owner, "intro", true)

	info, err := f.comments.AddComment(f.ctx, owner.ID, video.ID, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", info.Content)
	assert.Equal(t, video.ID, info.VideoID)

	_, err = f.comments.AddComment(f.ctx, owner.ID, video.ID, "   ")
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = f.comments.AddComment(f.ctx, owner.ID, uuid.New(), "hi")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestUpdateCommentNonOwner(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	other := f.user(t, "other")
	video := f.video(t, owner, "intro", true)
	comment := f.comment(t, owner, video, "original")

	_, err := f.comments.UpdateComment(f.ctx, other.ID, comment.ID, "changed")
	assert.ErrorIs(t, err, ErrCommentNoPermission)

	stored, err := f.store.Comments().GetByID(f.ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Content)

	updated, err := f.comments.UpdateComment(f.ctx, owner.ID, comment.ID, "changed")
	require.NoError(t, err)
	assert.Equal(t, "changed", updated.Content)
}

func TestDeleteCommentCascadesLikes(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	fan := f.user(t, "fan")
	video := f.video(t, owner, "intro", true)
	comment := f.comment(t, owner, video, "bye")

	_, err := f.likes.ToggleCommentLike(f.ctx, fan.ID, comment.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.comments.DeleteComment(f.ctx, fan.ID, comment.ID), ErrForbidden)
	require.NoError(t, f.comments.DeleteComment(f.ctx, owner.ID, comment.ID))

	assert.EqualValues(t, 0, f.likeCount(t, model.CommentTarget(comment.ID)))
	assert.ErrorIs(t, f.comments.DeleteComment(f.ctx, owner.ID, comment.ID), ErrCommentNotFound)
}
