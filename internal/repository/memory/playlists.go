package memory

import (
	"context"
	"sort"

	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type playlistStore struct{ s *Store }

func copyPlaylist(p model.Playlist) *model.Playlist {
	p.VideoIDs = append([]uuid.UUID{}, p.VideoIDs...)
	return &p
}

func (p playlistStore) Create(ctx context.Context, playlist *model.Playlist) error {
	if err := p.s.lock(ctx); err != nil {
		return err
	}
	defer p.s.unlock()

	if playlist.ID == uuid.Nil {
		playlist.ID = uuid.New()
	}
	playlist.CreatedAt = p.s.now()
	playlist.UpdatedAt = playlist.CreatedAt
	playlist.VideoIDs = []uuid.UUID{}
	p.s.data.playlists[playlist.ID] = *copyPlaylist(*playlist)
	return nil
}

func (p playlistStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error) {
	if err := p.s.lock(ctx); err != nil {
		return nil, err
	}
	defer p.s.unlock()

	playlist, ok := p.s.data.playlists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return copyPlaylist(playlist), nil
}

func (p playlistStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Playlist, error) {
	if err := p.s.lock(ctx); err != nil {
		return nil, err
	}
	defer p.s.unlock()

	playlists := make([]model.Playlist, 0)
	for _, playlist := range p.s.data.playlists {
		if playlist.OwnerID == ownerID {
			playlists = append(playlists, *copyPlaylist(playlist))
		}
	}
	sort.Slice(playlists, func(i, j int) bool {
		return newerFirst(playlists[i].CreatedAt, playlists[j].CreatedAt, playlists[i].ID, playlists[j].ID)
	})
	return playlists, nil
}

func (p playlistStore) Update(ctx context.Context, id uuid.UUID, patch repository.PlaylistPatch) (*model.Playlist, error) {
	if err := p.s.lock(ctx); err != nil {
		return nil, err
	}
	defer p.s.unlock()

	playlist, ok := p.s.data.playlists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if patch.Name != nil {
		playlist.Name = *patch.Name
	}
	if patch.Description != nil {
		playlist.Description = *patch.Description
	}
	playlist.UpdatedAt = p.s.now()
	p.s.data.playlists[id] = playlist
	return copyPlaylist(playlist), nil
}

func (p playlistStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := p.s.lock(ctx); err != nil {
		return false, err
	}
	defer p.s.unlock()

	_, ok := p.s.data.playlists[id]
	delete(p.s.data.playlists, id)
	return ok, nil
}

func (p playlistStore) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	if err := p.s.lock(ctx); err != nil {
		return false, err
	}
	defer p.s.unlock()

	playlist, ok := p.s.data.playlists[playlistID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	for _, id := range playlist.VideoIDs {
		if id == videoID {
			return false, nil
		}
	}
	playlist.VideoIDs = append(playlist.VideoIDs, videoID)
	p.s.data.playlists[playlistID] = playlist
	return true, nil
}

func (p playlistStore) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	if err := p.s.lock(ctx); err != nil {
		return false, err
	}
	defer p.s.unlock()

	playlist, ok := p.s.data.playlists[playlistID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	removed := removeID(&playlist.VideoIDs, videoID)
	p.s.data.playlists[playlistID] = playlist
	return removed, nil
}

func (p playlistStore) RemoveVideoEverywhere(ctx context.Context, videoID uuid.UUID) (int64, error) {
	if err := p.s.lock(ctx); err != nil {
		return 0, err
	}
	defer p.s.unlock()

	var n int64
	for id, playlist := range p.s.data.playlists {
		if removeID(&playlist.VideoIDs, videoID) {
			p.s.data.playlists[id] = playlist
			n++
		}
	}
	return n, nil
}

func removeID(ids *[]uuid.UUID, target uuid.UUID) bool {
	kept := (*ids)[:0]
	removed := false
	for _, id := range *ids {
		if id == target {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	*ids = kept
	return removed
}
