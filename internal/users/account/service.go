package account

import (
	"context"
	"log/slog"

	"github.com/olekker/ratebase/internal/platform/sec"
	"github.com/olekker/ratebase/internal/platform/validate"
	"github.com/olekker/ratebase/pkg/pointer"
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

func (service *Service) ListAccounts(ctx context.Context, filter Filter, limit, offset int) ([]*Account, int, error) {
	return service.repo.ListAccounts(ctx, filter, limit, offset)
}

func (service *Service) GetAccount(ctx context.Context, username string) (*Account, error) {
	return service.repo.GetAccountByUsername(ctx, username)
}

// CreateAccount registers a new user on behalf of an administrator. The role
// defaults to the regular user role when the payload omits it.
func (service *Service) CreateAccount(ctx context.Context, input *Input) (*Account, error) {
	username := pointer.Val(input.Username)
	email := pointer.Val(input.Email)
	role := pointer.Fallback(input.Role, string(sec.RoleUser))

	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, username).
		MaxLen(FieldUsername, username, MaxUsernameLen).
		Username(FieldUsername, username).
		Required(FieldEmail, email).
		MaxLen(FieldEmail, email, MaxEmailLen).
		OneOf(FieldRole, role, sec.Roles()...)
	if email != "" {
		validator.Email(FieldEmail, email)
	}
	validator.
		MaxLen(FieldFirstName, pointer.Val(input.FirstName), MaxNameLen).
		MaxLen(FieldLastName, pointer.Val(input.LastName), MaxNameLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	a := &Account{
		Username:  username,
		Email:     email,
		FirstName: pointer.Val(input.FirstName),
		LastName:  pointer.Val(input.LastName),
		Bio:       pointer.Val(input.Bio),
		Role:      sec.UserRole(role),
	}
	if err := service.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	service.logger.Info("account_created",
		slog.String("username", a.Username),
		slog.String("role", string(a.Role)),
	)
	return a, nil
}

// UpdateAccount applies a partial update to a user. Administrators may change
// any field, including the role.
func (service *Service) UpdateAccount(ctx context.Context, username string, input *Input) (*Account, error) {
	a, err := service.repo.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := applyUpdate(a, input, true); err != nil {
		return nil, err
	}
	if err := service.repo.UpdateAccount(ctx, a); err != nil {
		return nil, err
	}

	service.logger.Info("account_updated", slog.String("username", a.Username))
	return a, nil
}

func (service *Service) DeleteAccount(ctx context.Context, username string) error {
	if err := service.repo.DeleteAccountByUsername(ctx, username); err != nil {
		return err
	}

	service.logger.Warn("account_deleted", slog.String("username", username))
	return nil
}

// GetSelf returns the profile of the authenticated user.
func (service *Service) GetSelf(ctx context.Context, actor *sec.AuthClaims) (*Account, error) {
	return service.repo.GetAccountByID(ctx, actor.UserID)
}

// UpdateSelf applies a partial update to the authenticated user's own
// profile. The role field is read-only here: a user cannot promote
// themselves.
func (service *Service) UpdateSelf(ctx context.Context, actor *sec.AuthClaims, input *Input) (*Account, error) {
	a, err := service.repo.GetAccountByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if err := applyUpdate(a, input, false); err != nil {
		return nil, err
	}
	if err := service.repo.UpdateAccount(ctx, a); err != nil {
		return nil, err
	}

	service.logger.Info("account_self_updated", slog.String("username", a.Username))
	return a, nil
}

// applyUpdate validates the present fields of input and copies them onto the
// account. The role is only applied when allowRole is set.
func applyUpdate(a *Account, input *Input, allowRole bool) error {
	validator := &validate.Validator{}
	if input.Username != nil {
		validator.
			Required(FieldUsername, *input.Username).
			MaxLen(FieldUsername, *input.Username, MaxUsernameLen).
			Username(FieldUsername, *input.Username)
	}
	if input.Email != nil {
		validator.
			Required(FieldEmail, *input.Email).
			MaxLen(FieldEmail, *input.Email, MaxEmailLen).
			Email(FieldEmail, *input.Email)
	}
	if input.FirstName != nil {
		validator.MaxLen(FieldFirstName, *input.FirstName, MaxNameLen)
	}
	if input.LastName != nil {
		validator.MaxLen(FieldLastName, *input.LastName, MaxNameLen)
	}
	if input.Role != nil && allowRole {
		validator.OneOf(FieldRole, *input.Role, sec.Roles()...)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if input.Username != nil {
		a.Username = *input.Username
	}
	if input.Email != nil {
		a.Email = *input.Email
	}
	if input.FirstName != nil {
		a.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		a.LastName = *input.LastName
	}
	if input.Bio != nil {
		a.Bio = *input.Bio
	}
	if input.Role != nil && allowRole {
		a.Role = sec.UserRole(*input.Role)
	}
	return nil
}
