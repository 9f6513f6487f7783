package review

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olekker/ratebase/internal/platform/apperr"
	"github.com/olekker/ratebase/internal/platform/dberr"
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

func (service *Service) ListReviews(ctx context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	if err := service.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListReviews(ctx, titleID, limit, offset)
}

func (service *Service) GetReview(ctx context.Context, titleID, reviewID int64) (*Review, error) {
	if err := service.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	return service.repo.GetReview(ctx, titleID, reviewID)
}

func (service *Service) CreateReview(ctx context.Context, titleID int64, actor *sec.AuthClaims, input *Input) (*Review, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldText, pointer.Val(input.Text)).
		Custom(FieldScore, input.Score == nil, "This field is required")
	if input.Score != nil {
		validator.Range(FieldScore, *input.Score, MinScore, MaxScore)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	r := &Review{
		TitleID:  titleID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     *input.Text,
		Score:    *input.Score,
	}
	if err := service.repo.CreateReview(ctx, r); err != nil {
		// The unique (author, title) pair makes a second review a payload
		// problem rather than a state conflict.
		if dberr.IsConflict(err) {
			return nil, apperr.ValidationError("You have already reviewed this title")
		}
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int64("review_id", r.ID),
		slog.Int64("title_id", titleID),
		slog.String("author", actor.Username),
	)
	return r, nil
}

func (service *Service) UpdateReview(ctx context.Context, titleID, reviewID int64, actor *sec.AuthClaims, input *Input) (*Review, error) {
	validator := &validate.Validator{}
	if input.Text != nil {
		validator.Required(FieldText, *input.Text)
	}
	if input.Score != nil {
		validator.Range(FieldScore, *input.Score, MinScore, MaxScore)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	r, err := service.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := sec.AuthorModeratorAdminOrReadOnly(http.MethodPatch, actor, &r.AuthorID); err != nil {
		return nil, err
	}

	if input.Text != nil {
		r.Text = *input.Text
	}
	if input.Score != nil {
		r.Score = *input.Score
	}
	if err := service.repo.UpdateReview(ctx, r); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated", slog.Int64("review_id", reviewID))
	return r, nil
}

func (service *Service) DeleteReview(ctx context.Context, titleID, reviewID int64, actor *sec.AuthClaims) error {
	r, err := service.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := sec.AuthorModeratorAdminOrReadOnly(http.MethodDelete, actor, &r.AuthorID); err != nil {
		return err
	}

	if err := service.repo.DeleteReviewByID(ctx, reviewID); err != nil {
		return err
	}

	service.logger.Warn("review_deleted",
		slog.Int64("review_id", reviewID),
		slog.Int64("title_id", titleID),
	)
	return nil
}

// requireTitle turns a missing parent title into a 404 before any review
// operation runs.
func (service *Service) requireTitle(ctx context.Context, titleID int64) error {
	exists, err := service.repo.TitleExists(ctx, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}
