package genre

import "context"

type Repository interface {
	ListGenres(ctx context.Context, filter Filter, limit, offset int) ([]*Genre, int, error)
	GetGenreBySlug(ctx context.Context, slug string) (*Genre, error)
	CreateGenre(ctx context.Context, genre *Genre) error
	DeleteGenreBySlug(ctx context.Context, slug string) error
}
