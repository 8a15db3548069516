package model

// Album is a row of the albums table. Each album belongs to one artist.
type Album struct {
	ID       int64  `json:"id" gorm:"column:AlbumId;primaryKey"`
	Title    string `json:"title" gorm:"column:Title;size:160"`
	ArtistID int64  `json:"ArtistId" gorm:"column:ArtistId;index"`
}

func (Album) TableName() string {
	return "albums"
}

// AlbumWithArtist is an album together with the artist it belongs to.
type AlbumWithArtist struct {
	Album
	Artist *Artist `json:"artist" gorm:"foreignKey:ArtistID;references:ID"`
}

func (AlbumWithArtist) TableName() string {
	return "albums"
}
