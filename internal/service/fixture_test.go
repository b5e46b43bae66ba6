package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"vidtube-go/internal/model"
	"vidtube-go/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeBlobs struct {
	mu      sync.Mutex
	stored  []string
	deleted []string
	failOn  map[string]bool
}

func (b *fakeBlobs) Store(_ context.Context, localPath string, kind BlobKind) (model.Asset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failOn[localPath] {
		return model.Asset{}, errors.New("upload refused")
	}
	assetID := fmt.Sprintf("%s/%d", kind, len(b.stored)+1)
	b.stored = append(b.stored, assetID)
	return model.Asset{URL: "http://blobs.local/" + assetID, AssetID: assetID}, nil
}

func (b *fakeBlobs) Delete(_ context.Context, assetID string, _ BlobKind) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, assetID)
	return nil
}

type fakeSearcher struct {
	ids []uuid.UUID
	err error
}

func (f *fakeSearcher) SearchVideoIDs(context.Context, string, int) ([]uuid.UUID, error) {
	return f.ids, f.err
}

type fakeIndexer struct {
	mu      sync.Mutex
	indexed []uuid.UUID
	removed []uuid.UUID
}

func (f *fakeIndexer) IndexVideo(_ context.Context, v *model.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed = append(f.indexed, v.ID)
	return nil
}

func (f *fakeIndexer) RemoveVideo(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, id)
	return nil
}

type fixture struct {
	ctx       context.Context
	store     *memory.Store
	counter   *ViewCounter
	blobs     *fakeBlobs
	searcher  *fakeSearcher
	indexer   *fakeIndexer
	videos    *VideoService
	likes     *LikeService
	subs      *SubscriptionService
	comments  *CommentService
	tweets    *TweetService
	playlists *PlaylistService
	dashboard *DashboardService
	users     *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	f := &fixture{
		ctx:      context.Background(),
		store:    store,
		counter:  NewViewCounter(store),
		blobs:    &fakeBlobs{failOn: map[string]bool{}},
		searcher: &fakeSearcher{},
		indexer:  &fakeIndexer{},
	}
	f.videos = NewVideoService(store, f.counter, f.blobs, f.searcher, f.indexer, nil)
	f.likes = NewLikeService(store)
	f.subs = NewSubscriptionService(store)
	f.comments = NewCommentService(store)
	f.tweets = NewTweetService(store)
	f.playlists = NewPlaylistService(store)
	f.dashboard = NewDashboardService(store, nil, 0)
	f.users = NewUserService(store)
	t.Cleanup(f.counter.Wait)
	return f
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, FullName: username + " name", Avatar: "http://avatars.local/" + username}
	require.NoError(t, f.store.Users().Create(f.ctx, u))
	return u
}

func (f *fixture) video(t *testing.T, owner *model.User, title string, published bool) *model.Video {
	t.Helper()
	v := &model.Video{
		OwnerID:     owner.ID,
		Title:       title,
		Description: title + " description",
		VideoFile:   model.Asset{URL: "http://blobs.local/" + title, AssetID: "video/" + title},
		Thumbnail:   model.Asset{URL: "http://blobs.local/" + title + ".jpg", AssetID: "image/" + title},
		Duration:    60,
		IsPublished: published,
	}
	require.NoError(t, f.store.Videos().Create(f.ctx, v))
	return v
}

func (f *fixture) comment(t *testing.T, owner *model.User, video *model.Video, content string) *model.Comment {
	t.Helper()
	c := &model.Comment{OwnerID: owner.ID, VideoID: video.ID, Content: content}
	require.NoError(t, f.store.Comments().Create(f.ctx, c))
	return c
}

func (f *fixture) likeCount(t *testing.T, target model.LikeTarget) int64 {
	t.Helper()
	counts, err := f.store.Likes().CountByTargets(f.ctx, target.Kind, []uuid.UUID{target.ID})
	require.NoError(t, err)
	return counts[target.ID]
}
