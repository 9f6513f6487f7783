package review

import "context"

type Repository interface {
	TitleExists(ctx context.Context, titleID int64) (bool, error)
	ListReviews(ctx context.Context, titleID int64, limit, offset int) ([]*Review, int, error)
	GetReview(ctx context.Context, titleID, reviewID int64) (*Review, error)
	CreateReview(ctx context.Context, review *Review) error
	UpdateReview(ctx context.Context, review *Review) error
	DeleteReviewByID(ctx context.Context, reviewID int64) error
}
