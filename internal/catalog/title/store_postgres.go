package title

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olekker/ratebase/internal/platform/apperr"
	"github.com/olekker/ratebase/internal/platform/database/schema"
	"github.com/olekker/ratebase/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectClause reads a title together with its category and the average of
// its review scores. The rating is always derived here, never stored.
func selectClause() string {
	return fmt.Sprintf(`SELECT t.%s, t.%s, t.%s, t.%s, c.%s, c.%s, AVG(r.%s)::float8
		FROM %s t
		LEFT JOIN %s c ON c.%s = t.%s
		LEFT JOIN %s r ON r.%s = t.%s`,
		schema.RefTitle.ID, schema.RefTitle.Name, schema.RefTitle.Year, schema.RefTitle.Description,
		schema.RefCategory.Name, schema.RefCategory.Slug, schema.RefReview.Score,
		schema.RefTitle.Table,
		schema.RefCategory.Table, schema.RefCategory.ID, schema.RefTitle.CategoryID,
		schema.RefReview.Table, schema.RefReview.TitleID, schema.RefTitle.ID)
}

func groupClause() string {
	return fmt.Sprintf(" GROUP BY t.%s, c.%s", schema.RefTitle.ID, schema.RefCategory.ID)
}

func (repository *PostgresRepository) ListTitles(ctx context.Context, f Filter, limit, offset int) ([]*Title, int, error) {
	conditions := []string{}
	args := []any{}

	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		conditions = append(conditions, fmt.Sprintf("t.%s ILIKE $%d", schema.RefTitle.Name, len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conditions = append(conditions, fmt.Sprintf("c.%s = $%d", schema.RefCategory.Slug, len(args)))
	}
	if f.Genre != "" {
		args = append(args, f.Genre)
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM %s tg JOIN %s g ON g.%s = tg.%s WHERE tg.%s = t.%s AND g.%s = $%d)`,
			schema.RefTitleGenre.Table, schema.RefGenre.Table, schema.RefGenre.ID, schema.RefTitleGenre.GenreID,
			schema.RefTitleGenre.TitleID, schema.RefTitle.ID, schema.RefGenre.Slug, len(args)))
	}
	if f.HasYear {
		args = append(args, f.Year)
		conditions = append(conditions, fmt.Sprintf("t.%s = $%d", schema.RefTitle.Year, len(args)))
	}

	where := ""
	for i, cond := range conditions {
		if i == 0 {
			where = " WHERE " + cond
			continue
		}
		where += " AND " + cond
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s t LEFT JOIN %s c ON c.%s = t.%s`,
		schema.RefTitle.Table, schema.RefCategory.Table, schema.RefCategory.ID, schema.RefTitle.CategoryID) + where

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_titles")
	}

	query := selectClause() + where + groupClause() +
		fmt.Sprintf(" ORDER BY t.%s ASC LIMIT $%d OFFSET $%d", schema.RefTitle.ID, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, t)
		ids = append(ids, t.ID)
	}

	if err := repository.attachGenres(ctx, titles, ids); err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

func (repository *PostgresRepository) GetTitleByID(ctx context.Context, id int64) (*Title, error) {
	query := selectClause() + fmt.Sprintf(" WHERE t.%s = $1", schema.RefTitle.ID) + groupClause()

	row := repository.db.QueryRow(ctx, query, id)
	t, err := scanTitle(row)
	if err != nil {
		return nil, dberr.Wrap(err, "get_title_by_id")
	}

	if err := repository.attachGenres(ctx, []*Title{t}, []int64{t.ID}); err != nil {
		return nil, err
	}
	return t, nil
}

func (repository *PostgresRepository) CreateTitle(ctx context.Context, input *Input) (int64, error) {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return 0, dberr.Wrap(err, "begin_create_title")
	}
	defer tx.Rollback(ctx)

	categoryID, err := resolveCategoryID(ctx, tx, *input.Category)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
		schema.RefTitle.Table, schema.RefTitle.Name, schema.RefTitle.Year,
		schema.RefTitle.CategoryID, schema.RefTitle.Description, schema.RefTitle.ID)

	var id int64
	if err := tx.QueryRow(ctx, query, *input.Name, *input.Year, categoryID, input.Description).Scan(&id); err != nil {
		return 0, dberr.Wrap(err, "create_title")
	}

	if err := replaceGenres(ctx, tx, id, input.Genre); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, dberr.Wrap(err, "commit_create_title")
	}
	return id, nil
}

func (repository *PostgresRepository) UpdateTitle(ctx context.Context, id int64, input *Input) error {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title")
	}
	defer tx.Rollback(ctx)

	sets := []string{}
	args := []any{}

	if input.Name != nil {
		args = append(args, *input.Name)
		sets = append(sets, fmt.Sprintf("%s = $%d", schema.RefTitle.Name, len(args)))
	}
	if input.Year != nil {
		args = append(args, *input.Year)
		sets = append(sets, fmt.Sprintf("%s = $%d", schema.RefTitle.Year, len(args)))
	}
	if input.Description != nil {
		args = append(args, *input.Description)
		sets = append(sets, fmt.Sprintf("%s = $%d", schema.RefTitle.Description, len(args)))
	}
	if input.Category != nil {
		categoryID, err := resolveCategoryID(ctx, tx, *input.Category)
		if err != nil {
			return err
		}
		args = append(args, categoryID)
		sets = append(sets, fmt.Sprintf("%s = $%d", schema.RefTitle.CategoryID, len(args)))
	}

	if len(sets) > 0 {
		setClause := sets[0]
		for _, s := range sets[1:] {
			setClause += ", " + s
		}
		args = append(args, id)
		query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $%d`,
			schema.RefTitle.Table, setClause, schema.RefTitle.ID, len(args))

		cmd, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return dberr.Wrap(err, "update_title")
		}
		if cmd.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
	} else {
		// Nothing to update on the row itself: still verify the title exists
		// before touching its genre set.
		var exists int64
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
			schema.RefTitle.ID, schema.RefTitle.Table, schema.RefTitle.ID)
		if err := tx.QueryRow(ctx, query, id).Scan(&exists); err != nil {
			return dberr.Wrap(err, "check_title_exists")
		}
	}

	if input.Genre != nil {
		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.RefTitleGenre.Table, schema.RefTitleGenre.TitleID)
		if _, err := tx.Exec(ctx, deleteQuery, id); err != nil {
			return dberr.Wrap(err, "clear_title_genres")
		}
		if err := replaceGenres(ctx, tx, id, input.Genre); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_update_title")
	}
	return nil
}

func (repository *PostgresRepository) DeleteTitleByID(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RefTitle.Table, schema.RefTitle.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// attachGenres loads the genre sets for the given titles in one query and
// distributes them onto the structs.
func (repository *PostgresRepository) attachGenres(ctx context.Context, titles []*Title, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`SELECT tg.%s, g.%s, g.%s, g.%s
		FROM %s tg
		JOIN %s g ON g.%s = tg.%s
		WHERE tg.%s = ANY($1)
		ORDER BY g.%s ASC`,
		schema.RefTitleGenre.TitleID, schema.RefGenre.ID, schema.RefGenre.Name, schema.RefGenre.Slug,
		schema.RefTitleGenre.Table,
		schema.RefGenre.Table, schema.RefGenre.ID, schema.RefTitleGenre.GenreID,
		schema.RefTitleGenre.TitleID,
		schema.RefGenre.Name)

	rows, err := repository.db.Query(ctx, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_title_genres")
	}
	defer rows.Close()

	byTitle := make(map[int64][]GenreRef, len(ids))
	for rows.Next() {
		var titleID int64
		var g GenreRef
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}
		byTitle[titleID] = append(byTitle[titleID], g)
	}

	for _, t := range titles {
		if genres, ok := byTitle[t.ID]; ok {
			t.Genres = genres
			continue
		}
		t.Genres = []GenreRef{}
	}
	return nil
}

// scanTitle reads one row of the shared select clause.
func scanTitle(row pgx.Row) (*Title, error) {
	t := &Title{}
	var categoryName, categorySlug *string

	err := row.Scan(&t.ID, &t.Name, &t.Year, &t.Description, &categoryName, &categorySlug, &t.Rating)
	if err != nil {
		return nil, err
	}

	if categoryName != nil && categorySlug != nil {
		t.Category = &CategoryRef{Name: *categoryName, Slug: *categorySlug}
	}
	return t, nil
}

// resolveCategoryID maps a category slug to its ID. An unknown slug is a
// client mistake in the payload, not a missing route resource.
func resolveCategoryID(ctx context.Context, tx pgx.Tx, slug string) (int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.RefCategory.ID, schema.RefCategory.Table, schema.RefCategory.Slug)

	var id int64
	err := tx.QueryRow(ctx, query, slug).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldCategory,
			Message: fmt.Sprintf("Unknown category %q", slug),
		})
	}
	if err != nil {
		return 0, dberr.Wrap(err, "resolve_category")
	}
	return id, nil
}

// replaceGenres links a title to every genre slug in the payload.
func replaceGenres(ctx context.Context, tx pgx.Tx, titleID int64, slugs []string) error {
	resolveQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.RefGenre.ID, schema.RefGenre.Table, schema.RefGenre.Slug)
	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.RefTitleGenre.Table, schema.RefTitleGenre.TitleID, schema.RefTitleGenre.GenreID)

	for _, slug := range slugs {
		var genreID int64
		err := tx.QueryRow(ctx, resolveQuery, slug).Scan(&genreID)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldGenre,
				Message: fmt.Sprintf("Unknown genre %q", slug),
			})
		}
		if err != nil {
			return dberr.Wrap(err, "resolve_genre")
		}

		if _, err := tx.Exec(ctx, insertQuery, titleID, genreID); err != nil {
			return dberr.Wrap(err, "link_title_genre")
		}
	}
	return nil
}
