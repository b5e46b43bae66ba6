// Package memory 进程内的 repository.Store 实现，用于测试和本地开发
package memory

import (
	"context"
	"sync"
	"time"

	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"

	"github.com/google/uuid"
)

type likeKey struct {
	actor  uuid.UUID
	kind   model.TargetKind
	target uuid.UUID
}

type subKey struct {
	subscriber uuid.UUID
	channel    uuid.UUID
}

type state struct {
	users     map[uuid.UUID]model.User
	videos    map[uuid.UUID]model.Video
	comments  map[uuid.UUID]model.Comment
	tweets    map[uuid.UUID]model.Tweet
	likes     map[likeKey]model.Like
	subs      map[subKey]model.Subscription
	playlists map[uuid.UUID]model.Playlist
}

func newState() state {
	return state{
		users:     map[uuid.UUID]model.User{},
		videos:    map[uuid.UUID]model.Video{},
		comments:  map[uuid.UUID]model.Comment{},
		tweets:    map[uuid.UUID]model.Tweet{},
		likes:     map[likeKey]model.Like{},
		subs:      map[subKey]model.Subscription{},
		playlists: map[uuid.UUID]model.Playlist{},
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.videos {
		c.videos[k] = v
	}
	for k, v := range s.comments {
		c.comments[k] = v
	}
	for k, v := range s.tweets {
		c.tweets[k] = v
	}
	for k, v := range s.likes {
		c.likes[k] = v
	}
	for k, v := range s.subs {
		c.subs[k] = v
	}
	for k, v := range s.playlists {
		v.VideoIDs = append([]uuid.UUID(nil), v.VideoIDs...)
		c.playlists[k] = v
	}
	return c
}

type shared struct {
	mu   sync.Mutex
	data state
	last time.Time
}

// Store 所有实体共用一把锁，单条操作天然原子
type Store struct {
	*shared
	// inTx 为 true 时调用方已持有锁
	inTx bool
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{shared: &shared{data: newState()}}
}

func (s *Store) Users() repository.UserStore                 { return userStore{s} }
func (s *Store) Videos() repository.VideoStore               { return videoStore{s} }
func (s *Store) Comments() repository.CommentStore           { return commentStore{s} }
func (s *Store) Tweets() repository.TweetStore               { return tweetStore{s} }
func (s *Store) Likes() repository.LikeStore                 { return likeStore{s} }
func (s *Store) Subscriptions() repository.SubscriptionStore { return subscriptionStore{s} }
func (s *Store) Playlists() repository.PlaylistStore         { return playlistStore{s} }

// Transaction 事务期间持有锁，其它写入等待提交或回滚后再执行
func (s *Store) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	snapshot := s.data.clone()
	if err := fn(&Store{shared: s.shared, inTx: true}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// now 返回严格递增的时间，保证同一时刻创建的记录也有确定的先后顺序
func (s *Store) now() time.Time {
	t := time.Now()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func (s *Store) lock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.inTx {
		s.mu.Lock()
	}
	return nil
}

func (s *Store) unlock() {
	if !s.inTx {
		s.mu.Unlock()
	}
}

func window[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return append([]T{}, rows[offset:end]...)
}

func newerFirst(a, b time.Time, ida, idb uuid.UUID) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return ida.String() > idb.String()
}
