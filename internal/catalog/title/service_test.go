package title_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olekker/ratebase/internal/catalog/title"
	"github.com/olekker/ratebase/internal/platform/apperr"
	"github.com/olekker/ratebase/internal/platform/dberr"
	"github.com/olekker/ratebase/pkg/pointer"
)

type fakeRepository struct {
	byID   map[int64]*title.Title
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[int64]*title.Title{}, nextID: 1}
}

func (f *fakeRepository) ListTitles(_ context.Context, _ title.Filter, _, _ int) ([]*title.Title, int, error) {
	out := make([]*title.Title, 0, len(f.byID))
	for _, t := range f.byID {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetTitleByID(_ context.Context, id int64) (*title.Title, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return t, nil
}

func (f *fakeRepository) CreateTitle(_ context.Context, input *title.Input) (int64, error) {
	id := f.nextID
	f.nextID++
	f.byID[id] = &title.Title{
		ID:          id,
		Name:        pointer.Val(input.Name),
		Year:        pointer.Val(input.Year),
		Description: input.Description,
		Genres:      []title.GenreRef{},
	}
	return id, nil
}

func (f *fakeRepository) UpdateTitle(_ context.Context, id int64, input *title.Input) error {
	t, ok := f.byID[id]
	if !ok {
		return dberr.ErrNotFound
	}
	if input.Name != nil {
		t.Name = *input.Name
	}
	if input.Year != nil {
		t.Year = *input.Year
	}
	if input.Description != nil {
		t.Description = input.Description
	}
	return nil
}

func (f *fakeRepository) DeleteTitleByID(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validInput() *title.Input {
	return &title.Input{
		Name:     pointer.To("Solaris"),
		Year:     pointer.To(1972),
		Genre:    []string{"sci-fi"},
		Category: pointer.To("film"),
	}
}

/*
TestService_CreateTitle verifies the happy path.
*/
func TestService_CreateTitle(t *testing.T) {
	service := title.NewService(newFakeRepository(), testLogger())

	created, err := service.CreateTitle(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Solaris", created.Name)
	assert.Equal(t, 1972, created.Year)
	assert.Nil(t, created.Rating)
}

/*
TestService_CreateTitle_Validation verifies required fields and the year bound.
*/
func TestService_CreateTitle_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*title.Input)
	}{
		{"missing_name", func(i *title.Input) { i.Name = nil }},
		{"missing_year", func(i *title.Input) { i.Year = nil }},
		{"missing_category", func(i *title.Input) { i.Category = nil }},
		{"missing_genre", func(i *title.Input) { i.Genre = nil }},
		{"year_zero", func(i *title.Input) { i.Year = pointer.To(0) }},
		{"year_in_future", func(i *title.Input) { i.Year = pointer.To(9999) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := title.NewService(newFakeRepository(), testLogger())

			input := validInput()
			tt.mutate(input)

			_, err := service.CreateTitle(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_UpdateTitle verifies partial updates leave omitted fields alone.
*/
func TestService_UpdateTitle(t *testing.T) {
	repo := newFakeRepository()
	service := title.NewService(repo, testLogger())

	created, err := service.CreateTitle(context.Background(), validInput())
	require.NoError(t, err)

	updated, err := service.UpdateTitle(context.Background(), created.ID, &title.Input{
		Name: pointer.To("Solaris (Director's Cut)"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Solaris (Director's Cut)", updated.Name)
	assert.Equal(t, 1972, updated.Year)
}

/*
TestService_UpdateTitle_BadYear verifies that a patch cannot set a future year.
*/
func TestService_UpdateTitle_BadYear(t *testing.T) {
	repo := newFakeRepository()
	service := title.NewService(repo, testLogger())

	created, err := service.CreateTitle(context.Background(), validInput())
	require.NoError(t, err)

	_, err = service.UpdateTitle(context.Background(), created.ID, &title.Input{
		Year: pointer.To(9999),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_DeleteTitle_NotFound verifies deletion of an unknown ID.
*/
func TestService_DeleteTitle_NotFound(t *testing.T) {
	service := title.NewService(newFakeRepository(), testLogger())

	err := service.DeleteTitle(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
