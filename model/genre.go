package model

// Genre is a row of the genres table.
type Genre struct {
	ID   int64  `json:"id" gorm:"column:GenreId;primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"column:Name;size:120"`
}

// TableName pins the table name.
func (Genre) TableName() string {
	return "genres"
}

// GenreRequest is the body accepted by genre create and update.
type GenreRequest struct {
	Name *string `json:"name"`
}

// Validate checks the genre against genreNameRules and returns every
// failure, or nil.
func (g *Genre) Validate() error {
	return validate(g.Name, genreNameRules)
}
