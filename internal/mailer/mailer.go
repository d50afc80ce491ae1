// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mailer delivers transactional e-mail for account verification.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"

	"github.com/stocktree/stocktree-auth/internal/config"
	"github.com/stocktree/stocktree-auth/internal/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

const otpEmailSubject = "Stocktree - Email Verification"

// Mailer sends account e-mails. The service layer depends on this interface
// so delivery can be mocked in tests.
type Mailer interface {
	SendOTPEmail(ctx context.Context, email, fullName, otp string) error
}

// smtpMailer delivers e-mail over SMTP using go-mail. Messages are rendered
// from templates embedded at build time.
type smtpMailer struct {
	logger    *logger.Logger
	client    *mail.Client
	sender    string
	templates *template.Template
}

// NewMailer constructs an SMTP-backed [Mailer] from the given configs. The
// connection itself is established lazily on the first send.
func NewMailer(cfg config.Mail, log *logger.Logger) (Mailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating mail client: %w", err)
	}

	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing mail templates: %w", err)
	}

	log.Debug().Str("host", cfg.Host).Msg("creating mailer")

	return &smtpMailer{
		logger:    log,
		client:    client,
		sender:    cfg.Sender,
		templates: templates,
	}, nil
}

// SendOTPEmail renders the verification-code template and delivers it to the
// given address.
func (m *smtpMailer) SendOTPEmail(ctx context.Context, email, fullName, otp string) error {
	log := logger.FromContext(ctx)

	body, err := renderOTPEmail(m.templates, fullName, otp)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.sender); err != nil {
		return fmt.Errorf("error setting mail sender: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("error setting mail recipient: %w", err)
	}
	msg.Subject(otpEmailSubject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Err(err).Str("func", "*smtpMailer.SendOTPEmail").Msg("error sending verification email")
		return fmt.Errorf("error sending verification email: %w", err)
	}

	log.Info().Str("email", email).Msg("verification email sent")

	return nil
}

func renderOTPEmail(templates *template.Template, fullName, otp string) (string, error) {
	var buf bytes.Buffer

	err := templates.ExecuteTemplate(&buf, "otp_email.html", struct {
		FullName string
		OTPCode  string
	}{FullName: fullName, OTPCode: otp})
	if err != nil {
		return "", fmt.Errorf("error rendering verification email: %w", err)
	}

	return buf.String(), nil
}
