package model

// Artist is a row of the artists table.
type Artist struct {
	ID   int64  `json:"id" gorm:"column:ArtistId;primaryKey"`
	Name string `json:"name" gorm:"column:Name;size:120"`
}

func (Artist) TableName() string {
	return "artists"
}

// ArtistWithAlbums is an artist together with all albums referencing it.
type ArtistWithAlbums struct {
	Artist
	Albums []Album `json:"albums" gorm:"foreignKey:ArtistID;references:ID"`
}

func (ArtistWithAlbums) TableName() string {
	return "artists"
}
