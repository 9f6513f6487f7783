package account

import (
	"time"

	"github.com/olekker/ratebase/internal/platform/sec"
)

// Account is a registered user. Lookups are username-based: the numeric ID
// stays internal.
type Account struct {
	ID          int64        `json:"-"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Bio         string       `json:"bio"`
	Role        sec.UserRole `json:"role"`
	IsSuperuser bool         `json:"-"`
	CreatedAt   time.Time    `json:"-"`
	UpdatedAt   time.Time    `json:"-"`
}

// State snapshots the fields a confirmation code is bound to.
func (a *Account) State() sec.UserState {
	return sec.UserState{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		Role:        a.Role,
		IsSuperuser: a.IsSuperuser,
		UpdatedAt:   a.UpdatedAt,
	}
}

// Claims converts the account into the identity carried by access tokens.
func (a *Account) Claims() sec.AuthClaims {
	return sec.AuthClaims{
		UserID:      a.ID,
		Username:    a.Username,
		Role:        a.Role,
		IsSuperuser: a.IsSuperuser,
	}
}

// Input is the write payload for creating or patching an account.
type Input struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// Filter holds the parameters for a paginated account search.
type Filter struct {
	// Search is matched as a case-insensitive substring of the username.
	Search string
}

// Field names used in validation errors.
const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldRole      = "role"
)

// Limits mirror the database column sizes.
const (
	MaxUsernameLen = 150
	MaxEmailLen    = 254
	MaxNameLen     = 150
)
