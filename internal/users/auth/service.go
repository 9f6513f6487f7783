package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/olekker/ratebase/internal/platform/apperr"
	"github.com/olekker/ratebase/internal/platform/dberr"
	"github.com/olekker/ratebase/internal/platform/sec"
	"github.com/olekker/ratebase/internal/platform/validate"
	"github.com/olekker/ratebase/internal/users/account"
)

// SignupInput is the payload for requesting a confirmation code.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenInput is the payload for exchanging a confirmation code for a JWT.
type TokenInput struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

type Service struct {
	repo   Repository
	codes  *sec.CodeIssuer
	tokens *sec.TokenService
	ledger CodeLedger
	mailer Mailer
	logger *slog.Logger
}

func NewService(
	repo Repository,
	codes *sec.CodeIssuer,
	tokens *sec.TokenService,
	ledger CodeLedger,
	mailer Mailer,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:   repo,
		codes:  codes,
		tokens: tokens,
		ledger: ledger,
		mailer: mailer,
		logger: logger,
	}
}

// Signup finds or registers the (username, email) pair and mails it a fresh
// confirmation code. Submitting the same pair again simply issues a new
// code; a pair that collides with an existing account on only one of the
// two fields is rejected.
func (service *Service) Signup(ctx context.Context, input *SignupInput) error {
	validator := &validate.Validator{}
	validator.
		Required(account.FieldUsername, input.Username).
		MaxLen(account.FieldUsername, input.Username, account.MaxUsernameLen).
		Username(account.FieldUsername, input.Username).
		Required(account.FieldEmail, input.Email).
		MaxLen(account.FieldEmail, input.Email, account.MaxEmailLen)
	if input.Email != "" {
		validator.Email(account.FieldEmail, input.Email)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	a, err := service.repo.GetAccountByPair(ctx, input.Username, input.Email)
	switch {
	case err == nil:
		// Existing pair: re-issue below.
	case errors.Is(err, dberr.ErrNotFound):
		a = &account.Account{
			Username: input.Username,
			Email:    input.Email,
			Role:     sec.RoleUser,
		}
		if createErr := service.repo.CreateAccount(ctx, a); createErr != nil {
			if dberr.IsConflict(createErr) {
				return apperr.ValidationError("Occupied name or email")
			}
			return createErr
		}
		service.logger.Info("account_registered", slog.String("username", a.Username))
	default:
		return err
	}

	code := service.codes.Issue(a.State())
	if err := service.mailer.SendConfirmationCode(ctx, a.Email, a.Username, code); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Info("confirmation_code_sent", slog.String("username", a.Username))
	return nil
}

// IssueToken exchanges a valid, unused confirmation code for a signed access
// token. An unknown username is a 404; a bad, stale, or replayed code is a
// 400.
func (service *Service) IssueToken(ctx context.Context, input *TokenInput) (string, error) {
	validator := &validate.Validator{}
	validator.
		Required(account.FieldUsername, input.Username).
		Required("confirmation_code", input.ConfirmationCode)
	if err := validator.Err(); err != nil {
		return "", err
	}

	a, err := service.repo.GetAccountByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return "", apperr.NotFound("User")
		}
		return "", err
	}

	if !service.codes.Check(a.State(), input.ConfirmationCode) {
		return "", validate.RequiredError("confirmation_code", "Invalid or expired confirmation code")
	}

	// The replay marker only needs to outlive the code it blocks, so it
	// carries the code's remaining lifetime rather than the full window.
	ttl := service.codes.Remaining(input.ConfirmationCode)
	fresh, err := service.ledger.ConsumeCode(ctx, sec.CodeDigest(input.ConfirmationCode), ttl)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if !fresh {
		return "", validate.RequiredError("confirmation_code", "Confirmation code already used")
	}

	token, err := service.tokens.GenerateAccessToken(a.Claims())
	if err != nil {
		return "", apperr.Internal(err)
	}

	service.logger.Info("access_token_issued", slog.String("username", a.Username))
	return token, nil
}
