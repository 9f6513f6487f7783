package genre

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

func (repository *PostgresRepository) ListGenres(ctx context.Context, f Filter, limit, offset int) ([]*Genre, int, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s`,
		schema.RefGenre.ID, schema.RefGenre.Name, schema.RefGenre.Slug, schema.RefGenre.Table)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.RefGenre.Table)

	args := []any{}
	countArgs := []any{}

	if f.Search != "" {
		searchTerm := "%" + f.Search + "%"
		query += ` WHERE name ILIKE $1`
		countQuery += ` WHERE name ILIKE $1`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.RefGenre.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_genres")
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, total, nil
}

func (repository *PostgresRepository) GetGenreBySlug(ctx context.Context, slug string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.RefGenre.ID, schema.RefGenre.Name, schema.RefGenre.Slug,
		schema.RefGenre.Table, schema.RefGenre.Slug)

	g := &Genre{}
	err := repository.db.QueryRow(ctx, query, slug).Scan(&g.ID, &g.Name, &g.Slug)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genre_by_slug")
	}

	return g, nil
}

func (repository *PostgresRepository) CreateGenre(ctx context.Context, g *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		schema.RefGenre.Table, schema.RefGenre.Name, schema.RefGenre.Slug, schema.RefGenre.ID)

	err := repository.db.QueryRow(ctx, query, g.Name, g.Slug).Scan(&g.ID)
	return dberr.Wrap(err, "create_genre")
}

func (repository *PostgresRepository) DeleteGenreBySlug(ctx context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RefGenre.Table, schema.RefGenre.Slug)

	cmd, err := repository.db.Exec(ctx, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
