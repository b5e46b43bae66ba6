package memory

import (
	"context"
	"sort"

	"vidtube-go/internal/model"

	"github.com/google/uuid"
)

type likeStore struct{ s *Store }

func (l likeStore) Toggle(ctx context.Context, actorID uuid.UUID, target model.LikeTarget) (bool, error) {
	if err := l.s.lock(ctx); err != nil {
		return false, err
	}
	defer l.s.unlock()

	key := likeKey{actor: actorID, kind: target.Kind, target: target.ID}
	if _, ok := l.s.data.likes[key]; ok {
		delete(l.s.data.likes, key)
		return false, nil
	}
	l.s.data.likes[key] = model.Like{
		ID:         uuid.New(),
		LikedBy:    actorID,
		TargetKind: target.Kind,
		TargetID:   target.ID,
		CreatedAt:  l.s.now(),
	}
	return true, nil
}

func (l likeStore) CountByTargets(ctx context.Context, kind model.TargetKind, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	if err := l.s.lock(ctx); err != nil {
		return nil, err
	}
	defer l.s.unlock()

	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	counts := make(map[uuid.UUID]int64, len(ids))
	for key := range l.s.data.likes {
		if key.kind == kind && wanted[key.target] {
			counts[key.target]++
		}
	}
	return counts, nil
}

func (l likeStore) LikedTargets(ctx context.Context, actorID uuid.UUID, kind model.TargetKind, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	if err := l.s.lock(ctx); err != nil {
		return nil, err
	}
	defer l.s.unlock()

	result := make(map[uuid.UUID]bool, len(ids))
	if actorID == uuid.Nil {
		return result, nil
	}
	for _, id := range ids {
		if _, ok := l.s.data.likes[likeKey{actor: actorID, kind: kind, target: id}]; ok {
			result[id] = true
		}
	}
	return result, nil
}

func (l likeStore) DeleteByTargets(ctx context.Context, kind model.TargetKind, ids []uuid.UUID) (int64, error) {
	if err := l.s.lock(ctx); err != nil {
		return 0, err
	}
	defer l.s.unlock()

	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var n int64
	for key := range l.s.data.likes {
		if key.kind == kind && wanted[key.target] {
			delete(l.s.data.likes, key)
			n++
		}
	}
	return n, nil
}

func (l likeStore) ListLikedVideos(ctx context.Context, actorID uuid.UUID, offset, limit int) ([]model.Like, int64, error) {
	if err := l.s.lock(ctx); err != nil {
		return nil, 0, err
	}
	defer l.s.unlock()

	likes := make([]model.Like, 0)
	for key, like := range l.s.data.likes {
		if key.actor != actorID || key.kind != model.TargetVideo {
			continue
		}
		video, ok := l.s.data.videos[key.target]
		if !ok || (!video.IsPublished && video.OwnerID != actorID) {
			continue
		}
		likes = append(likes, like)
	}
	sort.Slice(likes, func(i, j int) bool {
		return newerFirst(likes[i].CreatedAt, likes[j].CreatedAt, likes[i].ID, likes[j].ID)
	})
	return window(likes, offset, limit), int64(len(likes)), nil
}
