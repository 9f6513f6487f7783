package comment

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olekker/ratebase/internal/platform/apperr"
	"github.com/olekker/ratebase/internal/platform/sec"
	"github.com/olekker/ratebase/internal/platform/validate"
	"github.com/olekker/ratebase/pkg/pointer"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListComments(ctx context.Context, titleID, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	if err := service.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListComments(ctx, reviewID, limit, offset)
}

func (service *Service) GetComment(ctx context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	if err := service.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.GetCommentByID(ctx, reviewID, commentID)
}

func (service *Service) CreateComment(ctx context.Context, titleID, reviewID int64, actor *sec.AuthClaims, input *Input) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldText, pointer.Val(input.Text))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	c := &Comment{
		ReviewID: reviewID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     *input.Text,
	}
	if err := service.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int64("comment_id", c.ID),
		slog.Int64("review_id", reviewID),
		slog.String("author", actor.Username),
	)
	return c, nil
}

func (service *Service) UpdateComment(ctx context.Context, titleID, reviewID, commentID int64, actor *sec.AuthClaims, input *Input) (*Comment, error) {
	validator := &validate.Validator{}
	if input.Text != nil {
		validator.Required(FieldText, *input.Text)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	c, err := service.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := sec.AuthorModeratorAdminOrReadOnly(http.MethodPatch, actor, &c.AuthorID); err != nil {
		return nil, err
	}

	if input.Text != nil {
		c.Text = *input.Text
	}
	if err := service.repo.UpdateComment(ctx, c); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.Int64("comment_id", commentID))
	return c, nil
}

func (service *Service) DeleteComment(ctx context.Context, titleID, reviewID, commentID int64, actor *sec.AuthClaims) error {
	c, err := service.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := sec.AuthorModeratorAdminOrReadOnly(http.MethodDelete, actor, &c.AuthorID); err != nil {
		return err
	}

	if err := service.repo.DeleteCommentByID(ctx, commentID); err != nil {
		return err
	}

	service.logger.Warn("comment_deleted",
		slog.Int64("comment_id", commentID),
		slog.Int64("review_id", reviewID),
	)
	return nil
}

// requireReview turns a review that does not exist under the given title
// into a 404 before any comment operation runs.
func (service *Service) requireReview(ctx context.Context, titleID, reviewID int64) error {
	exists, err := service.repo.ReviewExists(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Review")
	}
	return nil
}
