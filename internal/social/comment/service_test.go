package comment_test

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
	"github.com/olekker/ratebase/internal/social/comment"
	"github.com/olekker/ratebase/pkg/pointer"
)

// reviewKey pins a review to the title it belongs to.
type reviewKey struct {
	titleID  int64
	reviewID int64
}

type fakeRepository struct {
	reviews map[reviewKey]bool
	byID    map[int64]*comment.Comment
	nextID  int64
}

func newFakeRepository(keys ...reviewKey) *fakeRepository {
	reviews := map[reviewKey]bool{}
	for _, k := range keys {
		reviews[k] = true
	}
	return &fakeRepository{reviews: reviews, byID: map[int64]*comment.Comment{}, nextID: 1}
}

func (f *fakeRepository) ReviewExists(_ context.Context, titleID, reviewID int64) (bool, error) {
	return f.reviews[reviewKey{titleID, reviewID}], nil
}

func (f *fakeRepository) ListComments(_ context.Context, reviewID int64, _, _ int) ([]*comment.Comment, int, error) {
	out := make([]*comment.Comment, 0)
	for _, c := range f.byID {
		if c.ReviewID == reviewID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetCommentByID(_ context.Context, reviewID, commentID int64) (*comment.Comment, error) {
	c, ok := f.byID[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, dberr.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (f *fakeRepository) CreateComment(_ context.Context, c *comment.Comment) error {
	c.ID = f.nextID
	c.PubDate = time.Now()
	f.nextID++
	clone := *c
	f.byID[c.ID] = &clone
	return nil
}

func (f *fakeRepository) UpdateComment(_ context.Context, c *comment.Comment) error {
	if _, ok := f.byID[c.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *c
	f.byID[c.ID] = &clone
	return nil
}

func (f *fakeRepository) DeleteCommentByID(_ context.Context, commentID int64) error {
	if _, ok := f.byID[commentID]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.byID, commentID)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func author() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: 7, Username: "olekker", Role: sec.RoleUser}
}

/*
TestService_CreateComment verifies the happy path.
*/
func TestService_CreateComment(t *testing.T) {
	service := comment.NewService(newFakeRepository(reviewKey{1, 10}), testLogger())

	created, err := service.CreateComment(context.Background(), 1, 10, author(), &comment.Input{
		Text: pointer.To("Agreed."),
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "olekker", created.Author)
	assert.Equal(t, "Agreed.", created.Text)
}

/*
TestService_CreateComment_MissingText verifies payload rejection.
*/
func TestService_CreateComment_MissingText(t *testing.T) {
	service := comment.NewService(newFakeRepository(reviewKey{1, 10}), testLogger())

	_, err := service.CreateComment(context.Background(), 1, 10, author(), &comment.Input{})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_CreateComment_ReviewUnderWrongTitle verifies that a review ID
reached through the wrong title path is a 404.
*/
func TestService_CreateComment_ReviewUnderWrongTitle(t *testing.T) {
	service := comment.NewService(newFakeRepository(reviewKey{1, 10}), testLogger())

	_, err := service.CreateComment(context.Background(), 2, 10, author(), &comment.Input{
		Text: pointer.To("misplaced"),
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_UpdateComment_Ownership verifies who may modify a comment.
*/
func TestService_UpdateComment_Ownership(t *testing.T) {
	tests := []struct {
		name     string
		actor    *sec.AuthClaims
		wantCode string
	}{
		{"author", author(), ""},
		{"stranger", &sec.AuthClaims{UserID: 8, Username: "other", Role: sec.RoleUser}, "FORBIDDEN"},
		{"moderator", &sec.AuthClaims{UserID: 8, Username: "mod", Role: sec.RoleModerator}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := comment.NewService(newFakeRepository(reviewKey{1, 10}), testLogger())

			created, err := service.CreateComment(context.Background(), 1, 10, author(), &comment.Input{
				Text: pointer.To("original"),
			})
			require.NoError(t, err)

			updated, err := service.UpdateComment(context.Background(), 1, 10, created.ID, tt.actor, &comment.Input{
				Text: pointer.To("edited"),
			})

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, "edited", updated.Text)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.As(err).Code)
			}
		})
	}
}

/*
TestService_DeleteComment verifies deletion and the stranger rejection.
*/
func TestService_DeleteComment(t *testing.T) {
	service := comment.NewService(newFakeRepository(reviewKey{1, 10}), testLogger())

	created, err := service.CreateComment(context.Background(), 1, 10, author(), &comment.Input{
		Text: pointer.To("temporary"),
	})
	require.NoError(t, err)

	stranger := &sec.AuthClaims{UserID: 99, Username: "other", Role: sec.RoleUser}
	err = service.DeleteComment(context.Background(), 1, 10, created.ID, stranger)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.DeleteComment(context.Background(), 1, 10, created.ID, author()))
}
