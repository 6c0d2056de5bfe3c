// Package mailer sends notification e-mail over SMTP.
package mailer

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/smtp"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/rs/zerolog"

	"assetdesk/internal/config"
)

type SMTP struct {
	addr string
	from string
	auth smtp.Auth
	log  zerolog.Logger
}

// New returns nil when no SMTP address is configured, which disables mail.
func New(cfg config.Config, log zerolog.Logger) *SMTP {
	if cfg.SMTPAddr == "" {
		return nil
	}
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		host, _, err := net.SplitHostPort(cfg.SMTPAddr)
		if err != nil {
			host = cfg.SMTPAddr
		}
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, host)
	}
	return &SMTP{addr: cfg.SMTPAddr, from: cfg.MailFrom, auth: auth, log: log}
}

func (m *SMTP) Send(ctx context.Context, to, subject, body string) error {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: m.from}})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)

	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, buf.Bytes())
}
