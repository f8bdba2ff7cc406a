package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/techfolio/backend/internal/application/service"
	"github.com/techfolio/backend/internal/config"
)

type smtpMailer struct {
	addr string
	from string
}

func NewSMTPMailer(cfg config.Config) service.Mailer {
	return &smtpMailer{
		addr: cfg.SMTP.Host + ":" + cfg.SMTP.Port,
		from: cfg.SMTP.From,
	}
}

func (m *smtpMailer) SendResetPasswordEmail(ctx context.Context, mail service.ResetPasswordEmail) error {
	subject := "Reset your TechFolio password"
	body := fmt.Sprintf(`Hi,

Use the link below to reset your password:
%s

The link is valid for %s.

If you did not request a password reset, you can ignore this email.`, mail.ResetLink, mail.ExpiresIn)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.from, mail.To, subject, body))
	return smtp.SendMail(m.addr, nil, m.from, []string{mail.To}, msg)
}
