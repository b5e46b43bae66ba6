package memory

import (
	"context"
	"sort"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type commentStore struct{ s *Store }

func (c commentStore) Create(ctx context.Context, comment *model.Comment) error {
	if err := c.s.lock(ctx); err != nil {
		return err
	}
	defer c.s.unlock()

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = c.s.now()
	comment.UpdatedAt = comment.CreatedAt
	c.s.data.comments[comment.ID] = *comment
	return nil
}

func (c commentStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	if err := c.s.lock(ctx); err != nil {
		return nil, err
	}
	defer c.s.unlock()

	comment, ok := c.s.data.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &comment, nil
}

func (c commentStore) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error) {
	if err := c.s.lock(ctx); err != nil {
		return nil, err
	}
	defer c.s.unlock()

	comment, ok := c.s.data.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	comment.Content = content
	comment.UpdatedAt = c.s.now()
	c.s.data.comments[id] = comment
	return &comment, nil
}

func (c commentStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := c.s.lock(ctx); err != nil {
		return false, err
	}
	defer c.s.unlock()

	_, ok := c.s.data.comments[id]
	delete(c.s.data.comments, id)
	return ok, nil
}

func (c commentStore) byVideo(videoID uuid.UUID) []model.Comment {
	comments := make([]model.Comment, 0)
	for _, comment := range c.s.data.comments {
		if comment.VideoID == videoID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return newerFirst(comments[i].CreatedAt, comments[j].CreatedAt, comments[i].ID, comments[j].ID)
	})
	return comments
}

func (c commentStore) ListByVideo(ctx context.Context, videoID uuid.UUID, offset, limit int) ([]model.Comment, int64, error) {
	if err := c.s.lock(ctx); err != nil {
		return nil, 0, err
	}
	defer c.s.unlock()

	comments := c.byVideo(videoID)
	return window(comments, offset, limit), int64(len(comments)), nil
}

func (c commentStore) IDsByVideo(ctx context.Context, videoID uuid.UUID) ([]uuid.UUID, error) {
	if err := c.s.lock(ctx); err != nil {
		return nil, err
	}
	defer c.s.unlock()

	comments := c.byVideo(videoID)
	ids := make([]uuid.UUID, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}
	return ids, nil
}

func (c commentStore) DeleteByVideo(ctx context.Context, videoID uuid.UUID) (int64, error) {
	if err := c.s.lock(ctx); err != nil {
		return 0, err
	}
	defer c.s.unlock()

	var n int64
	for id, comment := range c.s.data.comments {
		if comment.VideoID == videoID {
			delete(c.s.data.comments, id)
			n++
		}
	}
	return n, nil
}
