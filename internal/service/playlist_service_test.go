package service

import (
	"testing"

	"vidtube-go/internal/api/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeletePlaylistNonOwnerForbidden(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	intruder := f.user(t, "intruder")

	playlist, err := f.playlists.CreatePlaylist(f.ctx, owner.ID, &dto.PlaylistRequest{Name: "faves", Description: "best"})
	require.NoError(t, err)

	err = f.playlists.DeletePlaylist(f.ctx, intruder.ID, playlist.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	detail, err := f.playlists.GetPlaylistByID(f.ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, "faves", detail.Name)

	require.NoError(t, f.playlists.DeletePlaylist(f.ctx, owner.ID, playlist.ID))
	_, err = f.playlists.GetPlaylistByID(f.ctx, playlist.ID)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)
}

func TestCreatePlaylistValidation(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")

	_, err := f.playlists.CreatePlaylist(f.ctx, owner.ID, &dto.PlaylistRequest{Name: "only name"})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestAddVideoToPlaylistIsSet(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	other := f.user(t, "other")
	video := f.video(t, owner, "intro", true)

	playlist, err := f.playlists.CreatePlaylist(f.ctx, owner.ID, &dto.PlaylistRequest{Name: "p", Description: "d"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		info, err := f.playlists.AddVideoToPlaylist(f.ctx, owner.ID, playlist.ID, video.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, info.TotalVideos)
	}

	_, err = f.playlists.AddVideoToPlaylist(f.ctx, other.ID, playlist.ID, video.ID)
	assert.ErrorIs(t, err, ErrPlaylistNoPermission)
	_, err = f.playlists.AddVideoToPlaylist(f.ctx, owner.ID, playlist.ID, uuid.New())
	assert.ErrorIs(t, err, ErrVideoNotFound)
	_, err = f.playlists.AddVideoToPlaylist(f.ctx, owner.ID, uuid.New(), video.ID)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)

	info, err := f.playlists.RemoveVideoFromPlaylist(f.ctx, owner.ID, playlist.ID, video.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, info.TotalVideos)
}

func TestPlaylistTotals(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	public := f.video(t, owner, "public", true)
	draft := f.video(t, owner, "draft", false)
	for i := 0; i < 4; i++ {
		require.NoError(t, f.store.Videos().IncrementViews(f.ctx, public.ID))
	}
	require.NoError(t, f.store.Videos().IncrementViews(f.ctx, draft.ID))

	playlist, err := f.playlists.CreatePlaylist(f.ctx, owner.ID, &dto.PlaylistRequest{Name: "p", Description: "d"})
	require.NoError(t, err)
	for _, id := range []uuid.UUID{public.ID, draft.ID} {
		_, err := f.playlists.AddVideoToPlaylist(f.ctx, owner.ID, playlist.ID, id)
		require.NoError(t, err)
	}

	list, err := f.playlists.GetUserPlaylists(f.ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.EqualValues(t, 2, list[0].TotalVideos)
	assert.EqualValues(t, 5, list[0].TotalViews)

	detail, err := f.playlists.GetPlaylistByID(f.ctx, playlist.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, detail.TotalVideos)
	assert.EqualValues(t, 4, detail.TotalViews)
	require.Len(t, detail.Videos, 1)
	assert.Equal(t, public.ID, detail.Videos[0].ID)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, owner.ID, detail.Owner.ID)
}

func TestEmptyPlaylistTotalsAreZero(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")

	playlist, err := f.playlists.CreatePlaylist(f.ctx, owner.ID, &dto.PlaylistRequest{Name: "p", Description: "d"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, playlist.TotalVideos)
	assert.EqualValues(t, 0, playlist.TotalViews)

	detail, err := f.playlists.GetPlaylistByID(f.ctx, playlist.ID)
	require.NoError(t, err)
	assert.NotNil(t, detail.Videos)
	assert.Empty(t, detail.Videos)
}

func TestUpdatePlaylist(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	other := f.user(t, "other")

	playlist, err := f.playlists.CreatePlaylist(f.ctx, owner.ID, &dto.PlaylistRequest{Name: "p", Description: "d"})
	require.NoError(t, err)

	name := "renamed"
	_, err = f.playlists.UpdatePlaylist(f.ctx, other.ID, playlist.ID, &dto.PlaylistUpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.playlists.UpdatePlaylist(f.ctx, owner.ID, playlist.ID, &dto.PlaylistUpdateRequest{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)

	info, err := f.playlists.UpdatePlaylist(f.ctx, owner.ID, playlist.ID, &dto.PlaylistUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", info.Name)
	assert.Equal(t, "d", info.Description)
}
