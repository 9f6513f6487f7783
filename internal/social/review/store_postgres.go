package review

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

// selectClause reads a review joined with its author's username.
func selectClause() string {
	return fmt.Sprintf(`SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s a ON a.%s = r.%s`,
		schema.RefReview.ID, schema.RefReview.TitleID, schema.RefReview.AuthorID,
		schema.RefAccount.Username, schema.RefReview.Text, schema.RefReview.Score, schema.RefReview.PubDate,
		schema.RefReview.Table,
		schema.RefAccount.Table, schema.RefAccount.ID, schema.RefReview.AuthorID)
}

func (repository *PostgresRepository) TitleExists(ctx context.Context, titleID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.RefTitle.Table, schema.RefTitle.ID)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_title_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) ListReviews(ctx context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.RefReview.Table, schema.RefReview.TitleID)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	query := selectClause() + fmt.Sprintf(` WHERE r.%s = $1 ORDER BY r.%s DESC, r.%s DESC LIMIT $2 OFFSET $3`,
		schema.RefReview.TitleID, schema.RefReview.PubDate, schema.RefReview.ID)

	rows, err := repository.db.Query(ctx, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		r := &Review{}
		if err := rows.Scan(&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.PubDate); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) GetReview(ctx context.Context, titleID, reviewID int64) (*Review, error) {
	query := selectClause() + fmt.Sprintf(` WHERE r.%s = $1 AND r.%s = $2`,
		schema.RefReview.ID, schema.RefReview.TitleID)

	r := &Review{}
	err := repository.db.QueryRow(ctx, query, reviewID, titleID).
		Scan(&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.PubDate)
	if err != nil {
		return nil, dberr.Wrap(err, "get_review")
	}

	return r, nil
}

func (repository *PostgresRepository) CreateReview(ctx context.Context, r *Review) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s`,
		schema.RefReview.Table, schema.RefReview.TitleID, schema.RefReview.AuthorID,
		schema.RefReview.Text, schema.RefReview.Score, schema.RefReview.ID, schema.RefReview.PubDate)

	err := repository.db.QueryRow(ctx, query, r.TitleID, r.AuthorID, r.Text, r.Score).
		Scan(&r.ID, &r.PubDate)
	if err != nil {
		return dberr.Wrap(err, "create_review")
	}
	return nil
}

func (repository *PostgresRepository) UpdateReview(ctx context.Context, r *Review) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		schema.RefReview.Table, schema.RefReview.Text, schema.RefReview.Score, schema.RefReview.ID)

	cmd, err := repository.db.Exec(ctx, query, r.Text, r.Score, r.ID)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteReviewByID(ctx context.Context, reviewID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RefReview.Table, schema.RefReview.ID)

	cmd, err := repository.db.Exec(ctx, query, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
