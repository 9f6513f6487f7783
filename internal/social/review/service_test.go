package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olekker/ratebase/internal/platform/apperr"
	"github.com/olekker/ratebase/internal/platform/dberr"
	"github.com/olekker/ratebase/internal/platform/sec"
	"github.com/olekker/ratebase/internal/social/review"
	"github.com/olekker/ratebase/pkg/pointer"
)

type fakeRepository struct {
	titles map[int64]bool
	byID   map[int64]*review.Review
	nextID int64
}

func newFakeRepository(titleIDs ...int64) *fakeRepository {
	titles := map[int64]bool{}
	for _, id := range titleIDs {
		titles[id] = true
	}
	return &fakeRepository{titles: titles, byID: map[int64]*review.Review{}, nextID: 1}
}

func (f *fakeRepository) TitleExists(_ context.Context, titleID int64) (bool, error) {
	return f.titles[titleID], nil
}

func (f *fakeRepository) ListReviews(_ context.Context, titleID int64, _, _ int) ([]*review.Review, int, error) {
	out := make([]*review.Review, 0)
	for _, r := range f.byID {
		if r.TitleID == titleID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetReview(_ context.Context, titleID, reviewID int64) (*review.Review, error) {
	r, ok := f.byID[reviewID]
	if !ok || r.TitleID != titleID {
		return nil, dberr.ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRepository) CreateReview(_ context.Context, r *review.Review) error {
	for _, existing := range f.byID {
		if existing.TitleID == r.TitleID && existing.AuthorID == r.AuthorID {
			// The same shape dberr.Wrap produces for SQLSTATE 23505.
			return apperr.Conflict("Resource already exists")
		}
	}
	r.ID = f.nextID
	r.PubDate = time.Now()
	f.nextID++
	clone := *r
	f.byID[r.ID] = &clone
	return nil
}

func (f *fakeRepository) UpdateReview(_ context.Context, r *review.Review) error {
	if _, ok := f.byID[r.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *r
	f.byID[r.ID] = &clone
	return nil
}

func (f *fakeRepository) DeleteReviewByID(_ context.Context, reviewID int64) error {
	if _, ok := f.byID[reviewID]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.byID, reviewID)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func author() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: 7, Username: "olekker", Role: sec.RoleUser}
}

/*
TestService_CreateReview verifies the happy path sets the author from claims.
*/
func TestService_CreateReview(t *testing.T) {
	service := review.NewService(newFakeRepository(1), testLogger())

	created, err := service.CreateReview(context.Background(), 1, author(), &review.Input{
		Text:  pointer.To("Remarkable."),
		Score: pointer.To(9),
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(7), created.AuthorID)
	assert.Equal(t, "olekker", created.Author)
	assert.Equal(t, 9, created.Score)
	assert.False(t, created.PubDate.IsZero())
}

/*
TestService_CreateReview_Validation verifies payload rejection.
*/
func TestService_CreateReview_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input *review.Input
	}{
		{"missing_text", &review.Input{Score: pointer.To(5)}},
		{"missing_score", &review.Input{Text: pointer.To("fine")}},
		{"score_too_low", &review.Input{Text: pointer.To("fine"), Score: pointer.To(0)}},
		{"score_too_high", &review.Input{Text: pointer.To("fine"), Score: pointer.To(11)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := review.NewService(newFakeRepository(1), testLogger())

			_, err := service.CreateReview(context.Background(), 1, author(), tt.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_CreateReview_UnknownTitle verifies the parent check runs before
any write.
*/
func TestService_CreateReview_UnknownTitle(t *testing.T) {
	service := review.NewService(newFakeRepository(), testLogger())

	_, err := service.CreateReview(context.Background(), 99, author(), &review.Input{
		Text:  pointer.To("lost"),
		Score: pointer.To(5),
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_CreateReview_Duplicate verifies that a second review by the same
author surfaces as a 400, not a 409.
*/
func TestService_CreateReview_Duplicate(t *testing.T) {
	service := review.NewService(newFakeRepository(1), testLogger())

	_, err := service.CreateReview(context.Background(), 1, author(), &review.Input{
		Text:  pointer.To("first"),
		Score: pointer.To(8),
	})
	require.NoError(t, err)

	_, err = service.CreateReview(context.Background(), 1, author(), &review.Input{
		Text:  pointer.To("second"),
		Score: pointer.To(3),
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, 400, ae.HTTPStatus)
}

/*
TestService_UpdateReview_Ownership verifies who may modify a review.
*/
func TestService_UpdateReview_Ownership(t *testing.T) {
	tests := []struct {
		name     string
		actor    *sec.AuthClaims
		wantCode string
	}{
		{"author", author(), ""},
		{"stranger", &sec.AuthClaims{UserID: 8, Username: "other", Role: sec.RoleUser}, "FORBIDDEN"},
		{"moderator", &sec.AuthClaims{UserID: 8, Username: "mod", Role: sec.RoleModerator}, ""},
		{"admin", &sec.AuthClaims{UserID: 8, Username: "adm", Role: sec.RoleAdmin}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := review.NewService(newFakeRepository(1), testLogger())

			created, err := service.CreateReview(context.Background(), 1, author(), &review.Input{
				Text:  pointer.To("original"),
				Score: pointer.To(6),
			})
			require.NoError(t, err)

			updated, err := service.UpdateReview(context.Background(), 1, created.ID, tt.actor, &review.Input{
				Text: pointer.To("edited"),
			})

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, "edited", updated.Text)
				// The score is untouched by a text-only patch.
				assert.Equal(t, 6, updated.Score)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.As(err).Code)
			}
		})
	}
}

/*
TestService_DeleteReview_Ownership verifies who may delete a review.
*/
func TestService_DeleteReview_Ownership(t *testing.T) {
	service := review.NewService(newFakeRepository(1), testLogger())

	created, err := service.CreateReview(context.Background(), 1, author(), &review.Input{
		Text:  pointer.To("temporary"),
		Score: pointer.To(2),
	})
	require.NoError(t, err)

	stranger := &sec.AuthClaims{UserID: 99, Username: "other", Role: sec.RoleUser}
	err = service.DeleteReview(context.Background(), 1, created.ID, stranger)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.DeleteReview(context.Background(), 1, created.ID, author()))

	_, err = service.GetReview(context.Background(), 1, created.ID)
	assert.Error(t, err)
}
