package title

// Title is a reviewable work (a film, book, song). It never stores its
// rating: the value is derived from review scores at read time.
type Title struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Year        int          `json:"year"`
	Rating      *float64     `json:"rating"`
	Description *string      `json:"description"`
	Genres      []GenreRef   `json:"genre"`
	Category    *CategoryRef `json:"category"`
}

// CategoryRef is the embedded category representation on a title.
type CategoryRef struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// GenreRef is the embedded genre representation on a title.
type GenreRef struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Input is the write payload for creating or patching a title. Genre and
// category are referenced by slug; nil fields are left untouched on a patch.
type Input struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

// Filter holds the parameters for a paginated title search.
type Filter struct {
	// Name is matched as a case-insensitive substring.
	Name string
	// Category and Genre match by slug, exactly.
	Category string
	Genre    string
	// Year matches exactly when HasYear is set.
	Year    int
	HasYear bool
}

// Field names used in validation errors.
const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldGenre       = "genre"
	FieldCategory    = "category"
)

// Limits mirror the database column sizes.
const (
	MaxNameLen = 200
	MinYear    = 1
)
