package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olekker/ratebase/internal/platform/database/schema"
	"github.com/olekker/ratebase/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func selectClause() string {
	return fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s`,
		schema.RefAccount.ID, schema.RefAccount.Username, schema.RefAccount.Email,
		schema.RefAccount.FirstName, schema.RefAccount.LastName, schema.RefAccount.Bio,
		schema.RefAccount.Role, schema.RefAccount.IsSuperuser,
		schema.RefAccount.CreatedAt, schema.RefAccount.UpdatedAt,
		schema.RefAccount.Table)
}

func (repository *PostgresRepository) ListAccounts(ctx context.Context, f Filter, limit, offset int) ([]*Account, int, error) {
	query := selectClause()
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.RefAccount.Table)

	args := []any{}
	countArgs := []any{}

	if f.Search != "" {
		searchTerm := "%" + f.Search + "%"
		condition := fmt.Sprintf(` WHERE %s ILIKE $1`, schema.RefAccount.Username)
		query += condition
		countQuery += condition
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.RefAccount.Username, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_accounts")
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_accounts")
	}
	defer rows.Close()

	accounts := make([]*Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_account")
		}
		accounts = append(accounts, a)
	}

	return accounts, total, nil
}

func (repository *PostgresRepository) GetAccountByID(ctx context.Context, id int64) (*Account, error) {
	query := selectClause() + fmt.Sprintf(` WHERE %s = $1`, schema.RefAccount.ID)

	a, err := scanAccount(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_account_by_id")
	}
	return a, nil
}

func (repository *PostgresRepository) GetAccountByUsername(ctx context.Context, username string) (*Account, error) {
	query := selectClause() + fmt.Sprintf(` WHERE %s = $1`, schema.RefAccount.Username)

	a, err := scanAccount(repository.db.QueryRow(ctx, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, "get_account_by_username")
	}
	return a, nil
}

func (repository *PostgresRepository) CreateAccount(ctx context.Context, a *Account) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6) RETURNING %s, %s, %s`,
		schema.RefAccount.Table,
		schema.RefAccount.Username, schema.RefAccount.Email,
		schema.RefAccount.FirstName, schema.RefAccount.LastName,
		schema.RefAccount.Bio, schema.RefAccount.Role,
		schema.RefAccount.ID, schema.RefAccount.CreatedAt, schema.RefAccount.UpdatedAt)

	err := repository.db.QueryRow(ctx, query,
		a.Username, a.Email, a.FirstName, a.LastName, a.Bio, a.Role).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_account")
	}
	return nil
}

// UpdateAccount writes the editable fields back and bumps updatedat, which
// invalidates every confirmation code issued against the previous row state.
func (repository *PostgresRepository) UpdateAccount(ctx context.Context, a *Account) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = now() WHERE %s = $7 RETURNING %s`,
		schema.RefAccount.Table,
		schema.RefAccount.Username, schema.RefAccount.Email,
		schema.RefAccount.FirstName, schema.RefAccount.LastName,
		schema.RefAccount.Bio, schema.RefAccount.Role,
		schema.RefAccount.UpdatedAt,
		schema.RefAccount.ID, schema.RefAccount.UpdatedAt)

	err := repository.db.QueryRow(ctx, query,
		a.Username, a.Email, a.FirstName, a.LastName, a.Bio, a.Role, a.ID).
		Scan(&a.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_account")
	}
	return nil
}

func (repository *PostgresRepository) DeleteAccountByUsername(ctx context.Context, username string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RefAccount.Table, schema.RefAccount.Username)

	cmd, err := repository.db.Exec(ctx, query, username)
	if err != nil {
		return dberr.Wrap(err, "delete_account")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (*Account, error) {
	a := &Account{}
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName,
		&a.Bio, &a.Role, &a.IsSuperuser, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}
