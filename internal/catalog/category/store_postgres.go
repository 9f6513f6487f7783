package category

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) ListCategories(ctx context.Context, f Filter, limit, offset int) ([]*Category, int, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s`,
		schema.RefCategory.ID, schema.RefCategory.Name, schema.RefCategory.Slug, schema.RefCategory.Table)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.RefCategory.Table)

	args := []any{}
	countArgs := []any{}

	if f.Search != "" {
		searchTerm := "%" + f.Search + "%"
		query += ` WHERE name ILIKE $1`
		countQuery += ` WHERE name ILIKE $1`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.RefCategory.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_categories")
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.RefCategory.ID, schema.RefCategory.Name, schema.RefCategory.Slug,
		schema.RefCategory.Table, schema.RefCategory.Slug)

	c := &Category{}
	err := repository.db.QueryRow(ctx, query, slug).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category_by_slug")
	}

	return c, nil
}

func (repository *PostgresRepository) CreateCategory(ctx context.Context, c *Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		schema.RefCategory.Table, schema.RefCategory.Name, schema.RefCategory.Slug, schema.RefCategory.ID)

	err := repository.db.QueryRow(ctx, query, c.Name, c.Slug).Scan(&c.ID)
	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) DeleteCategoryBySlug(ctx context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RefCategory.Table, schema.RefCategory.Slug)

	cmd, err := repository.db.Exec(ctx, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
