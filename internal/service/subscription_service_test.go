package service

import (
	"testing"

	"vidtube-go/pkg/pagination"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleSubscription(t *testing.T) {
	f := newFixture(t)
	channel := f.user(t, "channel")
	fan := f.user(t, "fan")

	status, err := f.subs.ToggleSubscription(f.ctx, fan.ID, channel.ID)
	require.NoError(t, err)
	assert.True(t, status.IsSubscribed)
	assert.EqualValues(t, 1, status.SubscribersCount)

	status, err = f.subs.ToggleSubscription(f.ctx, fan.ID, channel.ID)
	require.NoError(t, err)
	assert.False(t, status.IsSubscribed)
	assert.EqualValues(t, 0, status.SubscribersCount)
}

func TestToggleSubscriptionRejectsSelfAndMissing(t *testing.T) {
	f := newFixture(t)
	channel := f.user(t, "channel")

	_, err := f.subs.ToggleSubscription(f.ctx, channel.ID, channel.ID)
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = f.subs.ToggleSubscription(f.ctx, channel.ID, uuid.New())
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestGetChannelSubscribersMutualFlag(t *testing.T) {
	f := newFixture(t)
	channel := f.user(t, "channel")
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")

	for _, u := range []uuid.UUID{alice.ID, bob.ID} {
		_, err := f.subs.ToggleSubscription(f.ctx, u, channel.ID)
		require.NoError(t, err)
	}
	// channel 回订 alice，carol 也订阅了 alice
	_, err := f.subs.ToggleSubscription(f.ctx, channel.ID, alice.ID)
	require.NoError(t, err)
	_, err = f.subs.ToggleSubscription(f.ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	page, err := f.subs.GetChannelSubscribers(f.ctx, channel.ID, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Docs, 2)
	assert.EqualValues(t, 2, page.TotalDocs)

	byName := map[string]int{}
	for i, row := range page.Docs {
		require.NotNil(t, row.Subscriber)
		byName[row.Subscriber.Username] = i
	}
	a := page.Docs[byName["alice"]]
	assert.True(t, a.ChannelSubscribesBack)
	assert.EqualValues(t, 2, a.SubscribersCount)

	b := page.Docs[byName["bob"]]
	assert.False(t, b.ChannelSubscribesBack)
	assert.EqualValues(t, 0, b.SubscribersCount)
}

func TestGetSubscribedChannelsLatestVideo(t *testing.T) {
	f := newFixture(t)
	fan := f.user(t, "fan")
	busy := f.user(t, "busy")
	quiet := f.user(t, "quiet")

	f.video(t, busy, "old", true)
	latest := f.video(t, busy, "new", true)
	f.video(t, busy, "draft", false)

	for _, c := range []uuid.UUID{busy.ID, quiet.ID} {
		_, err := f.subs.ToggleSubscription(f.ctx, fan.ID, c)
		require.NoError(t, err)
	}

	page, err := f.subs.GetSubscribedChannels(f.ctx, fan.ID, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Docs, 2)

	for _, row := range page.Docs {
		require.NotNil(t, row.Channel)
		switch row.Channel.Username {
		case "busy":
			require.NotNil(t, row.LatestVideo)
			assert.Equal(t, latest.ID, row.LatestVideo.ID)
		case "quiet":
			assert.Nil(t, row.LatestVideo)
		}
	}
}

func TestSubscriberListPagination(t *testing.T) {
	f := newFixture(t)
	channel := f.user(t, "channel")
	for i := 0; i < 3; i++ {
		u := f.user(t, "fan"+string(rune('a'+i)))
		_, err := f.subs.ToggleSubscription(f.ctx, u.ID, channel.ID)
		require.NoError(t, err)
	}

	page, err := f.subs.GetChannelSubscribers(f.ctx, channel.ID, pagination.New(2, 2))
	require.NoError(t, err)
	assert.Len(t, page.Docs, 1)
	assert.EqualValues(t, 2, page.TotalPages)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.HasPrevPage)

	beyond, err := f.subs.GetChannelSubscribers(f.ctx, channel.ID, pagination.New(5, 2))
	require.NoError(t, err)
	assert.Empty(t, beyond.Docs)
}
