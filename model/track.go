package model

// Track is a row of the tracks table.
type Track struct {
	ID   int64  `json:"id" gorm:"column:TrackId;primaryKey"`
	Name string `json:"name" gorm:"column:Name;size:200"`
}

func (Track) TableName() string {
	return "tracks"
}

// TrackWithPlaylists is a track together with every playlist containing it.
type TrackWithPlaylists struct {
	Track
	Playlists []Playlist `json:"playlists"`
}
