package account_test

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
	"github.com/olekker/ratebase/internal/users/account"
	"github.com/olekker/ratebase/pkg/pointer"
)

type fakeRepository struct {
	byID   map[int64]*account.Account
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[int64]*account.Account{}, nextID: 1}
}

func (f *fakeRepository) ListAccounts(_ context.Context, _ account.Filter, _, _ int) ([]*account.Account, int, error) {
	out := make([]*account.Account, 0, len(f.byID))
	for _, a := range f.byID {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetAccountByID(_ context.Context, id int64) (*account.Account, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (f *fakeRepository) GetAccountByUsername(_ context.Context, username string) (*account.Account, error) {
	for _, a := range f.byID {
		if a.Username == username {
			clone := *a
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) CreateAccount(_ context.Context, a *account.Account) error {
	for _, existing := range f.byID {
		if existing.Username == a.Username || existing.Email == a.Email {
			return apperr.Conflict("Resource already exists")
		}
	}
	a.ID = f.nextID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.nextID++
	clone := *a
	f.byID[a.ID] = &clone
	return nil
}

func (f *fakeRepository) UpdateAccount(_ context.Context, a *account.Account) error {
	if _, ok := f.byID[a.ID]; !ok {
		return dberr.ErrNotFound
	}
	a.UpdatedAt = time.Now()
	clone := *a
	f.byID[a.ID] = &clone
	return nil
}

func (f *fakeRepository) DeleteAccountByUsername(_ context.Context, username string) error {
	for id, a := range f.byID {
		if a.Username == username {
			delete(f.byID, id)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestService_CreateAccount verifies defaults and the happy path.
*/
func TestService_CreateAccount(t *testing.T) {
	service := account.NewService(newFakeRepository(), testLogger())

	created, err := service.CreateAccount(context.Background(), &account.Input{
		Username: pointer.To("olekker"),
		Email:    pointer.To("olekker@example.com"),
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, sec.RoleUser, created.Role)
	assert.False(t, created.IsSuperuser)
}

/*
TestService_CreateAccount_Validation verifies payload rejection.
*/
func TestService_CreateAccount_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input *account.Input
	}{
		{"missing_username", &account.Input{Email: pointer.To("a@example.com")}},
		{"missing_email", &account.Input{Username: pointer.To("somebody")}},
		{"bad_email", &account.Input{Username: pointer.To("somebody"), Email: pointer.To("nope")}},
		{"reserved_username", &account.Input{Username: pointer.To("me"), Email: pointer.To("me@example.com")}},
		{"illegal_username", &account.Input{Username: pointer.To("has spaces"), Email: pointer.To("a@example.com")}},
		{"unknown_role", &account.Input{
			Username: pointer.To("somebody"),
			Email:    pointer.To("a@example.com"),
			Role:     pointer.To("superhero"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := account.NewService(newFakeRepository(), testLogger())

			_, err := service.CreateAccount(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_CreateAccount_Duplicate verifies the conflict path for admin CRUD.
*/
func TestService_CreateAccount_Duplicate(t *testing.T) {
	service := account.NewService(newFakeRepository(), testLogger())

	_, err := service.CreateAccount(context.Background(), &account.Input{
		Username: pointer.To("olekker"),
		Email:    pointer.To("olekker@example.com"),
	})
	require.NoError(t, err)

	_, err = service.CreateAccount(context.Background(), &account.Input{
		Username: pointer.To("olekker"),
		Email:    pointer.To("different@example.com"),
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_UpdateAccount_RoleChange verifies that administrators may assign roles.
*/
func TestService_UpdateAccount_RoleChange(t *testing.T) {
	service := account.NewService(newFakeRepository(), testLogger())

	_, err := service.CreateAccount(context.Background(), &account.Input{
		Username: pointer.To("olekker"),
		Email:    pointer.To("olekker@example.com"),
	})
	require.NoError(t, err)

	updated, err := service.UpdateAccount(context.Background(), "olekker", &account.Input{
		Role: pointer.To("moderator"),
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, updated.Role)
}

/*
TestService_UpdateSelf_RoleReadOnly verifies that a user cannot change their
own role through the profile endpoint.
*/
func TestService_UpdateSelf_RoleReadOnly(t *testing.T) {
	service := account.NewService(newFakeRepository(), testLogger())

	created, err := service.CreateAccount(context.Background(), &account.Input{
		Username: pointer.To("olekker"),
		Email:    pointer.To("olekker@example.com"),
	})
	require.NoError(t, err)

	actor := &sec.AuthClaims{UserID: created.ID, Username: created.Username, Role: created.Role}
	updated, err := service.UpdateSelf(context.Background(), actor, &account.Input{
		Bio:  pointer.To("Reviewer of everything."),
		Role: pointer.To("admin"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Reviewer of everything.", updated.Bio)
	assert.Equal(t, sec.RoleUser, updated.Role)
}

/*
TestService_GetSelf verifies the profile lookup by token identity.
*/
func TestService_GetSelf(t *testing.T) {
	service := account.NewService(newFakeRepository(), testLogger())

	created, err := service.CreateAccount(context.Background(), &account.Input{
		Username: pointer.To("olekker"),
		Email:    pointer.To("olekker@example.com"),
	})
	require.NoError(t, err)

	got, err := service.GetSelf(context.Background(), &sec.AuthClaims{UserID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "olekker", got.Username)
}

/*
TestService_DeleteAccount_NotFound verifies deletion of an unknown username.
*/
func TestService_DeleteAccount_NotFound(t *testing.T) {
	service := account.NewService(newFakeRepository(), testLogger())

	err := service.DeleteAccount(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
