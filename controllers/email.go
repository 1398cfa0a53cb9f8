package controllers

import (
	"fmt"
	"io"

	"github.com/go-gomail/gomail"

	"github.com/LokeshAnde180/docspot/configuration"
)

// SMTPMailer delivers courtesy mail through a plain SMTP account.
type SMTPMailer struct {
	host     string
	port     int
	email    string
	password string
}

// NewSMTPMailer returns nil when no SMTP host is configured, which disables
// mail without touching the handlers.
func NewSMTPMailer(cfg *configuration.Config) *SMTPMailer {
	if cfg.SMTPHost == "" || cfg.SMTPEmail == "" {
		return nil
	}
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		email:    cfg.SMTPEmail,
		password: cfg.SMTPPassword,
	}
}

// Send mails the body to a single recipient, attaching attachmentData under
// attachmentName when provided.
func (m *SMTPMailer) Send(subject, to, body, attachmentName string, attachmentData []byte) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.email)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if attachmentName != "" && len(attachmentData) > 0 {
		msg.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachmentData)
			return err
		}))
	}

	d := gomail.NewDialer(m.host, m.port, m.email, m.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}
