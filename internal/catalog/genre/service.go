package genre

import (
	"context"
	"log/slog"

	"github.com/olekker/ratebase/internal/platform/validate"
	"github.com/olekker/ratebase/pkg/slug"
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

func (service *Service) ListGenres(ctx context.Context, filter Filter, limit, offset int) ([]*Genre, int, error) {
	return service.repo.ListGenres(ctx, filter, limit, offset)
}

func (service *Service) GetGenre(ctx context.Context, genreSlug string) (*Genre, error) {
	return service.repo.GetGenreBySlug(ctx, genreSlug)
}

func (service *Service) CreateGenre(ctx context.Context, genre *Genre) error {
	if genre.Slug == "" {
		genre.Slug = slug.From(genre.Name)
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldName, genre.Name).MaxLen(FieldName, genre.Name, MaxNameLen).
		Required(FieldSlug, genre.Slug).Slug(FieldSlug, genre.Slug).MaxLen(FieldSlug, genre.Slug, MaxSlugLen)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.CreateGenre(ctx, genre); err != nil {
		return err
	}

	service.logger.Info("genre_created", slog.String("slug", genre.Slug))
	return nil
}

func (service *Service) DeleteGenre(ctx context.Context, genreSlug string) error {
	if err := service.repo.DeleteGenreBySlug(ctx, genreSlug); err != nil {
		return err
	}

	service.logger.Warn("genre_deleted", slog.String("slug", genreSlug))
	return nil
}
