// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mailer sends sign-request notification emails.

The Sender interface keeps handlers independent of the delivery mechanism:

	sender := mailer.New(cfg)
	err := sender.Send(to, subject, htmlBody)

mailer.New returns an SMTP sender when SMTP_ADDR/SMTP_FROM are configured and
a log-only sender otherwise. Tests substitute their own Sender to capture
outbound mail.
*/
package mailer
