package model

// Playlist is a row of the playlists table.
type Playlist struct {
	ID   int64  `json:"id" gorm:"column:PlaylistId;primaryKey"`
	Name string `json:"name" gorm:"column:Name;size:120"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistTrack links a playlist and a track. It has no identity of its own
// and no timestamps.
type PlaylistTrack struct {
	PlaylistID int64 `json:"PlaylistId" gorm:"column:PlaylistId;primaryKey;autoIncrement:false"`
	TrackID    int64 `json:"TrackId" gorm:"column:TrackId;primaryKey;autoIncrement:false;index"`
}

func (PlaylistTrack) TableName() string {
	return "playlist_track"
}

// PlaylistWithTracks is a playlist together with its tracks.
type PlaylistWithTracks struct {
	Playlist
	Tracks []Track `json:"tracks"`
}

// PlaylistTrackRequest is the body accepted when adding a track to a playlist.
type PlaylistTrackRequest struct {
	TrackID int64 `json:"trackId"`
}
