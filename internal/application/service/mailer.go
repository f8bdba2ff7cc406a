package service

import "context"

type ResetPasswordEmail struct {
	To        string
	ResetLink string
	ExpiresIn string
}

// Mailer dispatches transactional mail. The only consumer today is the
// password-reset flow.
type Mailer interface {
	SendResetPasswordEmail(ctx context.Context, email ResetPasswordEmail) error
}
