package account

import "context"

type Repository interface {
	ListAccounts(ctx context.Context, filter Filter, limit, offset int) ([]*Account, int, error)
	GetAccountByID(ctx context.Context, id int64) (*Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*Account, error)
	CreateAccount(ctx context.Context, account *Account) error
	UpdateAccount(ctx context.Context, account *Account) error
	DeleteAccountByUsername(ctx context.Context, username string) error
}
