package schema

// RefTitleTable represents the 'catalog.title' table
type RefTitleTable struct {
	Table       string
	ID          string
	Name        string
	Year        string
	CategoryID  string
	Description string
}

// RefTitle is the schema definition for catalog.title
var RefTitle = RefTitleTable{
	Table:       "catalog.title",
	ID:          "id",
	Name:        "name",
	Year:        "year",
	CategoryID:  "categoryid",
	Description: "description",
}

func (t RefTitleTable) Columns() []string {
	return []string{t.ID, t.Name, t.Year, t.CategoryID, t.Description}
}
