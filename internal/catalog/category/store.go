package category

import "context"

type Repository interface {
	ListCategories(ctx context.Context, filter Filter, limit, offset int) ([]*Category, int, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	DeleteCategoryBySlug(ctx context.Context, slug string) error
}
