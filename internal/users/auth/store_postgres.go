package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olekker/ratebase/internal/platform/database/schema"
	"github.com/olekker/ratebase/internal/platform/dberr"
	"github.com/olekker/ratebase/internal/users/account"
)

// PostgresRepository reuses the account repository for the shared queries
// and adds the pair lookup used during signup.
type PostgresRepository struct {
	*account.PostgresRepository
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		PostgresRepository: account.NewPostgresRepository(db),
		db:                 db,
	}
}

func (repository *PostgresRepository) GetAccountByPair(ctx context.Context, username, email string) (*account.Account, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1 AND %s = $2`,
		schema.RefAccount.ID, schema.RefAccount.Username, schema.RefAccount.Email,
		schema.RefAccount.FirstName, schema.RefAccount.LastName, schema.RefAccount.Bio,
		schema.RefAccount.Role, schema.RefAccount.IsSuperuser,
		schema.RefAccount.CreatedAt, schema.RefAccount.UpdatedAt,
		schema.RefAccount.Table, schema.RefAccount.Username, schema.RefAccount.Email)

	a := &account.Account{}
	err := repository.db.QueryRow(ctx, query, username, email).
		Scan(&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName,
			&a.Bio, &a.Role, &a.IsSuperuser, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_account_by_pair")
	}

	return a, nil
}
