// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3325)
  - DatabaseURL: sqlite file or postgres connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - BaseURL: public base URL used in emailed sign links
  - LinkSalt: secret for sign link token HMAC (required)
  - SMTPAddr, SMTPFrom: outbound mail settings (optional)

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-base-url   Public base URL
	-link-salt  Link token salt
	-smtp-addr  SMTP server host:port
	-smtp-from  From address

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	BASE_URL        → -base-url
	LINK_TOKEN_SALT → -link-salt
	SMTP_ADDR       → -smtp-addr
	SMTP_FROM       → -smtp-from

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - LINK_TOKEN_SALT must be provided
  - SMTP_FROM must accompany SMTP_ADDR

When BASE_URL is unset it defaults to http://localhost:<port>. When SMTP is
unconfigured, outbound mail is logged instead of delivered.
*/
package cliparse
