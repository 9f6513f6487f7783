package category

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

func (service *Service) ListCategories(ctx context.Context, filter Filter, limit, offset int) ([]*Category, int, error) {
	return service.repo.ListCategories(ctx, filter, limit, offset)
}

func (service *Service) GetCategory(ctx context.Context, categorySlug string) (*Category, error) {
	return service.repo.GetCategoryBySlug(ctx, categorySlug)
}

func (service *Service) CreateCategory(ctx context.Context, category *Category) error {
	// A missing slug is derived from the name before validation runs.
	if category.Slug == "" {
		category.Slug = slug.From(category.Name)
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldName, category.Name).MaxLen(FieldName, category.Name, MaxNameLen).
		Required(FieldSlug, category.Slug).Slug(FieldSlug, category.Slug).MaxLen(FieldSlug, category.Slug, MaxSlugLen)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.CreateCategory(ctx, category); err != nil {
		return err
	}

	service.logger.Info("category_created", slog.String("slug", category.Slug))
	return nil
}

func (service *Service) DeleteCategory(ctx context.Context, categorySlug string) error {
	if err := service.repo.DeleteCategoryBySlug(ctx, categorySlug); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.String("slug", categorySlug))
	return nil
}
