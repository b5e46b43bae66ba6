package memory

import (
	"context"
	"math"
	"sort"
	"strings"

	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type videoStore struct{ s *Store }

func (v videoStore) Create(ctx context.Context, video *model.Video) error {
	if err := v.s.lock(ctx); err != nil {
		return err
	}
	defer v.s.unlock()

	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}
	video.CreatedAt = v.s.now()
	video.UpdatedAt = video.CreatedAt
	v.s.data.videos[video.ID] = *video
	return nil
}

func (v videoStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if err := v.s.lock(ctx); err != nil {
		return nil, err
	}
	defer v.s.unlock()

	video, ok := v.s.data.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &video, nil
}

func (v videoStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Video, error) {
	if err := v.s.lock(ctx); err != nil {
		return nil, err
	}
	defer v.s.unlock()

	videos := make([]model.Video, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if video, ok := v.s.data.videos[id]; ok && !seen[id] {
			seen[id] = true
			videos = append(videos, video)
		}
	}
	return videos, nil
}

func (v videoStore) Update(ctx context.Context, id uuid.UUID, patch repository.VideoPatch) (*model.Video, error) {
	if err := v.s.lock(ctx); err != nil {
		return nil, err
	}
	defer v.s.unlock()

	video, ok := v.s.data.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if patch.Title != nil {
		video.Title = *patch.Title
	}
	if patch.Description != nil {
		video.Description = *patch.Description
	}
	if patch.Thumbnail != nil {
		video.Thumbnail = *patch.Thumbnail
	}
	if patch.IsPublished != nil {
		video.IsPublished = *patch.IsPublished
	}
	video.UpdatedAt = v.s.now()
	v.s.data.videos[id] = video
	return &video, nil
}

func (v videoStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := v.s.lock(ctx); err != nil {
		return false, err
	}
	defer v.s.unlock()

	_, ok := v.s.data.videos[id]
	delete(v.s.data.videos, id)
	return ok, nil
}

func (v videoStore) List(ctx context.Context, filter repository.VideoFilter, offset, limit int) ([]model.Video, int64, error) {
	if err := v.s.lock(ctx); err != nil {
		return nil, 0, err
	}
	defer v.s.unlock()

	var allowed map[uuid.UUID]bool
	if filter.IDs != nil {
		allowed = make(map[uuid.UUID]bool, len(filter.IDs))
		for _, id := range filter.IDs {
			allowed[id] = true
		}
	}
	search := strings.ToLower(filter.Search)

	matched := make([]model.Video, 0)
	for _, video := range v.s.data.videos {
		if filter.OwnerID != nil && video.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.PublishedOnly && !video.IsPublished {
			continue
		}
		if allowed != nil {
			if !allowed[video.ID] {
				continue
			}
		} else if search != "" &&
			!strings.Contains(strings.ToLower(video.Title), search) &&
			!strings.Contains(strings.ToLower(video.Description), search) {
			continue
		}
		matched = append(matched, video)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less, equal bool
		switch filter.SortBy {
		case repository.SortByViews:
			less, equal = a.Views < b.Views, a.Views == b.Views
		case repository.SortByDuration:
			less, equal = a.Duration < b.Duration, a.Duration == b.Duration
		case repository.SortByTitle:
			less, equal = a.Title < b.Title, a.Title == b.Title
		default:
			less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		}
		if equal {
			less = a.ID.String() < b.ID.String()
		}
		if filter.Ascending {
			return less
		}
		return !less
	})

	return window(matched, offset, limit), int64(len(matched)), nil
}

func (v videoStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Video, error) {
	if err := v.s.lock(ctx); err != nil {
		return nil, err
	}
	defer v.s.unlock()

	videos := make([]model.Video, 0)
	for _, video := range v.s.data.videos {
		if video.OwnerID == ownerID {
			videos = append(videos, video)
		}
	}
	sort.Slice(videos, func(i, j int) bool {
		return newerFirst(videos[i].CreatedAt, videos[j].CreatedAt, videos[i].ID, videos[j].ID)
	})
	return videos, nil
}

func (v videoStore) LatestPublishedByOwners(ctx context.Context, ownerIDs []uuid.UUID) (map[uuid.UUID]model.Video, error) {
	if err := v.s.lock(ctx); err != nil {
		return nil, err
	}
	defer v.s.unlock()

	wanted := make(map[uuid.UUID]bool, len(ownerIDs))
	for _, id := range ownerIDs {
		wanted[id] = true
	}
	latest := make(map[uuid.UUID]model.Video, len(ownerIDs))
	for _, video := range v.s.data.videos {
		if !wanted[video.OwnerID] || !video.IsPublished {
			continue
		}
		current, ok := latest[video.OwnerID]
		if !ok || newerFirst(video.CreatedAt, current.CreatedAt, video.ID, current.ID) {
			latest[video.OwnerID] = video
		}
	}
	return latest, nil
}

func (v videoStore) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if err := v.s.lock(ctx); err != nil {
		return err
	}
	defer v.s.unlock()

	video, ok := v.s.data.videos[id]
	if !ok || video.Views == math.MaxInt64 {
		return nil
	}
	video.Views++
	v.s.data.videos[id] = video
	return nil
}
