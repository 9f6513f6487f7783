package auth

import (
	"context"
	"time"

	"github.com/olekker/ratebase/internal/users/account"
)

// Repository is the account access the auth flow needs. Signup matches on
// the exact (username, email) pair so a returning user can request a fresh
// code with the same payload.
type Repository interface {
	GetAccountByPair(ctx context.Context, username, email string) (*account.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*account.Account, error)
	CreateAccount(ctx context.Context, a *account.Account) error
}

// CodeLedger tracks consumed confirmation codes so each one is exchanged
// for a token at most once.
type CodeLedger interface {
	// ConsumeCode marks the code digest as used. It reports false when the
	// digest was already present.
	ConsumeCode(ctx context.Context, digest string, ttl time.Duration) (bool, error)
}
