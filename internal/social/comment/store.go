package comment

import "context"

type Repository interface {
	ReviewExists(ctx context.Context, titleID, reviewID int64) (bool, error)
	ListComments(ctx context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error)
	GetCommentByID(ctx context.Context, reviewID, commentID int64) (*Comment, error)
	CreateComment(ctx context.Context, comment *Comment) error
	UpdateComment(ctx context.Context, comment *Comment) error
	DeleteCommentByID(ctx context.Context, commentID int64) error
}
