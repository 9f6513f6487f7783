package schema

// RefTitleGenreTable represents the 'catalog.title_genre' join table
type RefTitleGenreTable struct {
	Table   string
	TitleID string
	GenreID string
}

// RefTitleGenre is the schema definition for catalog.title_genre
var RefTitleGenre = RefTitleGenreTable{
	Table:   "catalog.title_genre",
	TitleID: "titleid",
	GenreID: "genreid",
}

func (t RefTitleGenreTable) Columns() []string {
	return []string{t.TitleID, t.GenreID}
}
