package repository

import (
	"context"
	"errors"
	"testing"

	"chinook/db/dbtest"
	"chinook/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	dbtest.Seed(t, gdb,
		&[]model.Genre{{Name: "Rock"}, {Name: "Pop"}, {Name: "Rap"}, {Name: "rockabilly"}},
		&[]model.Artist{{ID: 1, Name: "AC/DC"}, {ID: 2, Name: "Accept"}, {ID: 3, Name: "Nobody"}},
		&[]model.Album{
			{ID: 1, Title: "For Those About To Rock We Salute You", ArtistID: 1},
			{ID: 2, Title: "Balls to the Wall", ArtistID: 2},
			{ID: 3, Title: "Let There Be Rock", ArtistID: 1},
		},
		&[]model.Playlist{{ID: 1, Name: "Music"}, {ID: 2, Name: "Movies"}, {ID: 3, Name: "Empty"}},
		&[]model.Track{{ID: 1, Name: "Go Down"}, {ID: 2, Name: "Dog Eat Dog"}, {ID: 3, Name: "Overdose"}},
		&[]model.PlaylistTrack{
			{PlaylistID: 1, TrackID: 1},
			{PlaylistID: 1, TrackID: 2},
			{PlaylistID: 2, TrackID: 1},
		},
	)
}

func genreNames(genres []model.Genre) []string {
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	return names
}

func TestGenreRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		seedCatalog(t, gdb)
		repo := NewGormGenreRepository(gdb)

		all, err := repo.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"Rock", "Pop", "Rap", "rockabilly"}, genreNames(all))

		// case-sensitive: "rockabilly" is not a match
		ro, err := repo.List(ctx, "Ro")
		require.NoError(t, err)
		assert.Equal(t, []string{"Rock"}, genreNames(ro))

		none, err := repo.List(ctx, "Jazz")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("List treats wildcards literally", func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		seedCatalog(t, gdb)
		repo := NewGormGenreRepository(gdb)

		got, err := repo.List(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = repo.List(ctx, "R_p")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("GetByID", func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		seedCatalog(t, gdb)
		repo := NewGormGenreRepository(gdb)

		genre, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, genre)
		assert.Equal(t, "Pop", genre.Name)

		missing, err := repo.GetByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Create", func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		repo := NewGormGenreRepository(gdb)

		genre := &model.Genre{Name: "Jazz"}
		require.NoError(t, repo.Create(ctx, genre))
		assert.NotZero(t, genre.ID)

		stored, err := repo.GetByID(ctx, genre.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "Jazz", stored.Name)
	})

	t.Run("Create rejects invalid names before writing", func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		repo := NewGormGenreRepository(gdb)

		err := repo.Create(ctx, &model.Genre{Name: "J4zz"})
		var verrs model.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Len(t, verrs, 1)

		var count int64
		require.NoError(t, gdb.Model(&model.Genre{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("Update", func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		seedCatalog(t, gdb)
		repo := NewGormGenreRepository(gdb)

		require.NoError(t, repo.Update(ctx, &model.Genre{ID: 1, Name: "Metal"}))
		genre, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Metal", genre.Name)

		err = repo.Update(ctx, &model.Genre{ID: 1, Name: ""})
		var verrs model.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Len(t, verrs, 3)

		genre, err = repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Metal", genre.Name)
	})
}

func TestArtistRepositoryGetWithAlbums(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.NewSQLite(t)
	seedCatalog(t, gdb)
	repo := NewGormArtistRepository(gdb)

	artist, err := repo.GetWithAlbums(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, artist)
	assert.Equal(t, "AC/DC", artist.Name)
	require.Len(t, artist.Albums, 2)
	assert.Equal(t, "For Those About To Rock We Salute You", artist.Albums[0].Title)
	assert.Equal(t, "Let There Be Rock", artist.Albums[1].Title)
	assert.Equal(t, int64(1), artist.Albums[1].ArtistID)

	lonely, err := repo.GetWithAlbums(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, lonely)
	assert.NotNil(t, lonely.Albums)
	assert.Empty(t, lonely.Albums)

	missing, err := repo.GetWithAlbums(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAlbumRepositoryGetWithArtist(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.NewSQLite(t)
	seedCatalog(t, gdb)
	repo := NewGormAlbumRepository(gdb)

	album, err := repo.GetWithArtist(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, album)
	assert.Equal(t, "Balls to the Wall", album.Title)
	require.NotNil(t, album.Artist)
	assert.Equal(t, "Accept", album.Artist.Name)

	missing, err := repo.GetWithArtist(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTrackRepositoryGetWithPlaylists(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.NewSQLite(t)
	seedCatalog(t, gdb)
	repo := NewGormTrackRepository(gdb)

	track, err := repo.GetWithPlaylists(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, track)
	assert.Equal(t, "Go Down", track.Name)
	require.Len(t, track.Playlists, 2)
	assert.Equal(t, "Music", track.Playlists[0].Name)
	assert.Equal(t, "Movies", track.Playlists[1].Name)

	orphan, err := repo.GetWithPlaylists(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, orphan)
	assert.NotNil(t, orphan.Playlists)
	assert.Empty(t, orphan.Playlists)

	missing, err := repo.GetWithPlaylists(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPlaylistRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		seedCatalog(t, gdb)
		repo := NewGormPlaylistRepository(gdb)

		playlists, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, playlists, 3)
		assert.Equal(t, "Music", playlists[0].Name)
	})

	t.Run("GetWithTracks", func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		seedCatalog(t, gdb)
		repo := NewGormPlaylistRepository(gdb)

		playlist, err := repo.GetWithTracks(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, playlist)
		require.Len(t, playlist.Tracks, 2)
		assert.Equal(t, "Go Down", playlist.Tracks[0].Name)
		assert.Equal(t, "Dog Eat Dog", playlist.Tracks[1].Name)

		empty, err := repo.GetWithTracks(ctx, 3)
		require.NoError(t, err)
		assert.NotNil(t, empty.Tracks)
		assert.Empty(t, empty.Tracks)

		missing, err := repo.GetWithTracks(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Delete detaches tracks then removes the row", func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		seedCatalog(t, gdb)
		repo := NewGormPlaylistRepository(gdb)

		require.NoError(t, repo.Delete(ctx, 1))

		playlist, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, playlist)

		var links int64
		require.NoError(t, gdb.Model(&model.PlaylistTrack{}).Where("PlaylistId = ?", 1).Count(&links).Error)
		assert.Zero(t, links)

		// other playlists keep their links
		require.NoError(t, gdb.Model(&model.PlaylistTrack{}).Where("PlaylistId = ?", 2).Count(&links).Error)
		assert.Equal(t, int64(1), links)
	})

	t.Run("AddTrack and RemoveTrack", func(t *testing.T) {
		gdb := dbtest.NewSQLite(t)
		seedCatalog(t, gdb)
		repo := NewGormPlaylistRepository(gdb)

		require.NoError(t, repo.AddTrack(ctx, 3, 3))
		require.NoError(t, repo.AddTrack(ctx, 3, 3))

		playlist, err := repo.GetWithTracks(ctx, 3)
		require.NoError(t, err)
		require.Len(t, playlist.Tracks, 1)
		assert.Equal(t, "Overdose", playlist.Tracks[0].Name)

		require.NoError(t, repo.RemoveTrack(ctx, 3, 3))
		playlist, err = repo.GetWithTracks(ctx, 3)
		require.NoError(t, err)
		assert.Empty(t, playlist.Tracks)
	})
}

func TestRepositoriesPropagateStoreErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset by peer")

	t.Run("genre lookup", func(t *testing.T) {
		gdb, mock := dbtest.NewMock(t)
		mock.ExpectQuery("SELECT").WillReturnError(boom)

		genre, err := NewGormGenreRepository(gdb).GetByID(ctx, 1)
		assert.Nil(t, genre)
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("playlist list", func(t *testing.T) {
		gdb, mock := dbtest.NewMock(t)
		mock.ExpectQuery("SELECT").WillReturnError(boom)

		playlists, err := NewGormPlaylistRepository(gdb).List(ctx)
		assert.Nil(t, playlists)
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("playlist delete rolls back when detaching fails", func(t *testing.T) {
		gdb, mock := dbtest.NewMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `playlist_track`").WillReturnError(boom)
		mock.ExpectRollback()

		err := NewGormPlaylistRepository(gdb).Delete(ctx, 1)
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("playlist delete commits both steps", func(t *testing.T) {
		gdb, mock := dbtest.NewMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `playlist_track`").
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE FROM `playlists`").
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, NewGormPlaylistRepository(gdb).Delete(ctx, 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
