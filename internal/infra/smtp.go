package infra

import (
	"fmt"
	"net/smtp"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending operator alert emails.
// A zero-valued host means email is not configured; Enabled() gates all sends.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPUser,
	}
}

// Enabled reports whether SMTP is configured.
func (m *Mailer) Enabled() bool { return m.host != "" }

// Send delivers a plain-text email, optionally attaching a file.
func (m *Mailer) Send(to, subject, body, attachPath string) error {
	if !m.Enabled() {
		return fmt.Errorf("smtp: not configured")
	}

	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if attachPath != "" {
		if _, err := e.AttachFile(attachPath); err != nil {
			return fmt.Errorf("smtp: attach %s: %w", attachPath, err)
		}
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(addr, auth)
}
