package memory

import (
	"context"
	"sort"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type tweetStore struct{ s *Store }

func (t tweetStore) Create(ctx context.Context, tweet *model.Tweet) error {
	if err := t.s.lock(ctx); err != nil {
		return err
	}
	defer t.s.unlock()

	if tweet.ID == uuid.Nil {
		tweet.ID = uuid.New()
	}
	tweet.CreatedAt = t.s.now()
	tweet.UpdatedAt = tweet.CreatedAt
	t.s.data.tweets[tweet.ID] = *tweet
	return nil
}

func (t tweetStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	if err := t.s.lock(ctx); err != nil {
		return nil, err
	}
	defer t.s.unlock()

	tweet, ok := t.s.data.tweets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &tweet, nil
}

func (t tweetStore) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Tweet, error) {
	if err := t.s.lock(ctx); err != nil {
		return nil, err
	}
	defer t.s.unlock()

	tweet, ok := t.s.data.tweets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	tweet.Content = content
	tweet.UpdatedAt = t.s.now()
	t.s.data.tweets[id] = tweet
	return &tweet, nil
}

func (t tweetStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := t.s.lock(ctx); err != nil {
		return false, err
	}
	defer t.s.unlock()

	_, ok := t.s.data.tweets[id]
	delete(t.s.data.tweets, id)
	return ok, nil
}

func (t tweetStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Tweet, error) {
	if err := t.s.lock(ctx); err != nil {
		return nil, err
	}
	defer t.s.unlock()

	tweets := make([]model.Tweet, 0)
	for _, tweet := range t.s.data.tweets {
		if tweet.OwnerID == ownerID {
			tweets = append(tweets, tweet)
		}
	}
	sort.Slice(tweets, func(i, j int) bool {
		return newerFirst(tweets[i].CreatedAt, tweets[j].CreatedAt, tweets[i].ID, tweets[j].ID)
	})
	return tweets, nil
}
