package genre

// Genre is a many-to-many tag on titles (e.g. "drama", "sci-fi").
// The slug is the public lookup key.
type Genre struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Filter holds the parameters for a paginated genre search.
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
