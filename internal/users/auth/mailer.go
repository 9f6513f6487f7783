package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Mailer delivers confirmation codes to users.
type Mailer interface {
	SendConfirmationCode(ctx context.Context, email, username, code string) error
}

// LogMailer writes confirmation codes to the structured log instead of
// sending mail. Used in development, where no SMTP relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (mailer *LogMailer) SendConfirmationCode(_ context.Context, email, username, code string) error {
	mailer.logger.Info("confirmation_code_issued",
		slog.String("email", email),
		slog.String("username", username),
		slog.String("code", code),
	)
	return nil
}

// SMTPMailer delivers confirmation codes through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	from string
}

func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

func (mailer *SMTPMailer) SendConfirmationCode(_ context.Context, email, username, code string) error {
	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your Ratebase confirmation code\r\n\r\nHello %s,\r\n\r\nYour confirmation code is: %s\r\n",
		mailer.from, email, username, code)

	if err := smtp.SendMail(mailer.addr, nil, mailer.from, []string{email}, []byte(message)); err != nil {
		return fmt.Errorf("auth: failed to send confirmation mail: %w", err)
	}
	return nil
}
