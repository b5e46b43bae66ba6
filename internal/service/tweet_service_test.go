package service

import (
	"testing"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserTweetsNewestFirst(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	fan := f.user(t, "fan")

	older, err := f.tweets.CreateTweet(f.ctx, author.ID, "first")
	require.NoError(t, err)
	newer, err := f.tweets.CreateTweet(f.ctx, author.ID, "second")
	require.NoError(t, err)

	_, err = f.likes.ToggleTweetLike(f.ctx, fan.ID, older.ID)
	require.NoError(t, err)

	tweets, err := f.tweets.GetUserTweets(f.ctx, fan.ID, author.ID)
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	assert.Equal(t, newer.ID, tweets[0].ID)
	assert.Equal(t, older.ID, tweets[1].ID)
	assert.True(t, tweets[1].IsLiked)
	assert.EqualValues(t, 1, tweets[1].LikesCount)
	assert.EqualValues(t, 0, tweets[0].LikesCount)
	require.NotNil(t, tweets[0].Owner)
	assert.Equal(t, "author", tweets[0].Owner.Username)

	_, err = f.tweets.GetUserTweets(f.ctx, fan.ID, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateTweetRequiresContent(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")

	_, err := f.tweets.CreateTweet(f.ctx, author.ID, " ")
	assert.ErrorIs(t, err, ErrContentRequired)
}

func TestUpdateAndDeleteTweetOwnership(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	other := f.user(t, "other")

	tweet, err := f.tweets.CreateTweet(f.ctx, author.ID, "hello")
	require.NoError(t, err)
	_, err = f.likes.ToggleTweetLike(f.ctx, other.ID, tweet.ID)
	require.NoError(t, err)

	_, err = f.tweets.UpdateTweet(f.ctx, other.ID, tweet.ID, "hijack")
	assert.ErrorIs(t, err, ErrTweetNoPermission)
	assert.ErrorIs(t, f.tweets.DeleteTweet(f.ctx, other.ID, tweet.ID), ErrTweetNoPermission)

	updated, err := f.tweets.UpdateTweet(f.ctx, author.ID, tweet.ID, "hello again")
	require.NoError(t, err)
	assert.Equal(t, "hello again", updated.Content)
	assert.EqualValues(t, 1, updated.LikesCount)

	require.NoError(t, f.tweets.DeleteTweet(f.ctx, author.ID, tweet.ID))
	assert.EqualValues(t, 0, f.likeCount(t, model.TweetTarget(tweet.ID)))

	_, err = f.tweets.UpdateTweet(f.ctx, author.ID, tweet.ID, "gone")
	assert.ErrorIs(t, err, ErrTweetNotFound)
}
