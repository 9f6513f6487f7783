package title

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/olekker/ratebase/internal/platform/validate"
	"github.com/olekker/ratebase/pkg/pointer"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	// now is swappable in tests so the year bound stays deterministic.
	now func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (service *Service) ListTitles(ctx context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	return service.repo.ListTitles(ctx, filter, limit, offset)
}

func (service *Service) GetTitle(ctx context.Context, id int64) (*Title, error) {
	return service.repo.GetTitleByID(ctx, id)
}

func (service *Service) CreateTitle(ctx context.Context, input *Input) (*Title, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldName, pointer.Val(input.Name)).
		MaxLen(FieldName, pointer.Val(input.Name), MaxNameLen).
		Required(FieldCategory, pointer.Val(input.Category)).
		Custom(FieldYear, input.Year == nil, "This field is required").
		Custom(FieldGenre, len(input.Genre) == 0, "This field is required")
	if input.Year != nil {
		service.validateYear(validator, *input.Year)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	id, err := service.repo.CreateTitle(ctx, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("title_created",
		slog.Int64("title_id", id),
		slog.String("name", *input.Name),
	)
	return service.repo.GetTitleByID(ctx, id)
}

func (service *Service) UpdateTitle(ctx context.Context, id int64, input *Input) (*Title, error) {
	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, MaxNameLen)
	}
	if input.Year != nil {
		service.validateYear(validator, *input.Year)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateTitle(ctx, id, input); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.Int64("title_id", id))
	return service.repo.GetTitleByID(ctx, id)
}

func (service *Service) DeleteTitle(ctx context.Context, id int64) error {
	if err := service.repo.DeleteTitleByID(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("title_deleted", slog.Int64("title_id", id))
	return nil
}

// validateYear rejects years outside [1, current year]. Future works cannot
// be reviewed yet.
func (service *Service) validateYear(validator *validate.Validator, year int) {
	currentYear := service.now().Year()
	validator.Custom(FieldYear, year < MinYear || year > currentYear,
		fmt.Sprintf("Must be between %d and %d", MinYear, currentYear))
}
