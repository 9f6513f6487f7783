package comment

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

// selectClause reads a comment joined with its author's username.
func selectClause() string {
	return fmt.Sprintf(`SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s
		FROM %s c
		JOIN %s a ON a.%s = c.%s`,
		schema.RefComment.ID, schema.RefComment.ReviewID, schema.RefComment.AuthorID,
		schema.RefAccount.Username, schema.RefComment.Text, schema.RefComment.PubDate,
		schema.RefComment.Table,
		schema.RefAccount.Table, schema.RefAccount.ID, schema.RefComment.AuthorID)
}

func (repository *PostgresRepository) ReviewExists(ctx context.Context, titleID, reviewID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.RefReview.Table, schema.RefReview.ID, schema.RefReview.TitleID)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, reviewID, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_review_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) ListComments(ctx context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.RefComment.Table, schema.RefComment.ReviewID)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	query := selectClause() + fmt.Sprintf(` WHERE c.%s = $1 ORDER BY c.%s ASC, c.%s ASC LIMIT $2 OFFSET $3`,
		schema.RefComment.ReviewID, schema.RefComment.PubDate, schema.RefComment.ID)

	rows, err := repository.db.Query(ctx, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		c := &Comment{}
		if err := rows.Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.PubDate); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, c)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) GetCommentByID(ctx context.Context, reviewID, commentID int64) (*Comment, error) {
	query := selectClause() + fmt.Sprintf(` WHERE c.%s = $1 AND c.%s = $2`,
		schema.RefComment.ID, schema.RefComment.ReviewID)

	c := &Comment{}
	err := repository.db.QueryRow(ctx, query, commentID, reviewID).
		Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.PubDate)
	if err != nil {
		return nil, dberr.Wrap(err, "get_comment")
	}

	return c, nil
}

func (repository *PostgresRepository) CreateComment(ctx context.Context, c *Comment) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s, %s`,
		schema.RefComment.Table, schema.RefComment.ReviewID, schema.RefComment.AuthorID,
		schema.RefComment.Text, schema.RefComment.ID, schema.RefComment.PubDate)

	err := repository.db.QueryRow(ctx, query, c.ReviewID, c.AuthorID, c.Text).Scan(&c.ID, &c.PubDate)
	if err != nil {
		return dberr.Wrap(err, "create_comment")
	}
	return nil
}

func (repository *PostgresRepository) UpdateComment(ctx context.Context, c *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.RefComment.Table, schema.RefComment.Text, schema.RefComment.ID)

	cmd, err := repository.db.Exec(ctx, query, c.Text, c.ID)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteCommentByID(ctx context.Context, commentID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RefComment.Table, schema.RefComment.ID)

	cmd, err := repository.db.Exec(ctx, query, commentID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
