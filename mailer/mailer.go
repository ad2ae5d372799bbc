// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/rmuchiri/docsign/cliparse"
)

// Sender delivers one outbound notification email. Delivery is best-effort
// from the caller's point of view: a failed send never fails the operation
// that triggered it.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// New picks the delivery mechanism from config: SMTP when configured,
// otherwise a logger so development setups still see outbound mail.
func New(cfg cliparse.Config) Sender {
	if cfg.SMTPAddr != "" {
		return &SMTPSender{Addr: cfg.SMTPAddr, From: cfg.SMTPFrom}
	}
	return &LogSender{}
}

// SMTPSender delivers mail through a plain SMTP relay.
type SMTPSender struct {
	Addr string
	From string
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	if err := smtp.SendMail(s.Addr, nil, s.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}

// LogSender records outbound mail in the structured log instead of
// delivering it.
type LogSender struct{}

func (s *LogSender) Send(to, subject, htmlBody string) error {
	slog.Info("outbound email (smtp not configured)",
		"to", to,
		"subject", subject,
		"body_len", len(htmlBody),
	)
	return nil
}
