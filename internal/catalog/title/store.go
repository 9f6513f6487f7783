package title

import "context"

type Repository interface {
	ListTitles(ctx context.Context, filter Filter, limit, offset int) ([]*Title, int, error)
	GetTitleByID(ctx context.Context, id int64) (*Title, error)
	CreateTitle(ctx context.Context, input *Input) (int64, error)
	UpdateTitle(ctx context.Context, id int64, input *Input) error
	DeleteTitleByID(ctx context.Context, id int64) error
}
