// Package schema centralizes table and column names for every relation in the
// Ratebase database. Repositories build their SQL from these refs so a rename
// happens in exactly one place.
package schema

// RefAccountTable represents the 'users.account' table
type RefAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Bio         string
	Role        string
	IsSuperuser string
	CreatedAt   string
	UpdatedAt   string
}

// RefAccount is the schema definition for users.account
var RefAccount = RefAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	FirstName:   "firstname",
	LastName:    "lastname",
	Bio:         "bio",
	Role:        "role",
	IsSuperuser: "issuperuser",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t RefAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.FirstName, t.LastName, t.Bio, t.Role, t.IsSuperuser, t.CreatedAt, t.UpdatedAt}
}
