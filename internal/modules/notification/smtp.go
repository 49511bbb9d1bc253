package notification

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender delivers the same templates as plain-text mail over SMTP, for
// deployments without an EmailJS account.
type SMTPSender struct {
	cfg    SMTPConfig
	dialer dialer
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if s.cfg.Host == "" || s.cfg.From == "" {
		return &EmailError{Err: ErrNotConfigured}
	}
	if err := ctx.Err(); err != nil {
		return &EmailError{Err: err}
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", renderPlain(msg))

	for _, a := range msg.Attachments {
		data := a.Data
		m.Attach(a.Name,
			gomail.SetHeader(map[string][]string{"Content-Type": {a.MIMEType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return &EmailError{Err: err}
	}
	return nil
}

// renderPlain lists the template params, sorted, one per line.
func renderPlain(msg Message) string {
	keys := make([]string, 0, len(msg.Params))
	for k := range msg.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", msg.Subject)
	for _, k := range keys {
		label := strings.ReplaceAll(k, "_", " ")
		fmt.Fprintf(&b, "%s: %s\n", label, msg.Params[k])
	}
	return b.String()
}
