package category

// Category groups titles by broad kind (e.g. "Movies", "Books").
//
// The slug is the public lookup key; the numeric ID never leaves the API.
type Category struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Filter holds the parameters for a paginated category search.
type Filter struct {
	// Search is matched as a case-insensitive substring of the name.
	Search string
}

// Field names used in validation errors.
const (
	FieldName = "name"
	FieldSlug = "slug"
)

// Limits mirror the database column sizes.
const (
	MaxNameLen = 256
	MaxSlugLen = 50
)
