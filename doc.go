// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the docsign API server.

Docsign is a document signing add-on: signers place signature and stamp
markers on business documents, attribution fields fill in automatically
as documents move through their workflow, and the print engine fetches
positioned overlay markup for the final rendered page.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... LINK_TOKEN_SALT=secret go run main.go -t postgres

Or with sqlite for local development:

	go run main.go -d docsign.db -link-salt secret

# Configuration

Required settings:

  - DATABASE_URL (-d): Connection string (postgres URL or sqlite file)
  - LINK_TOKEN_SALT (-link-salt): Secret for sign link HMAC tokens

Optional settings:

  - PORT (-p): Server port (default: 3325)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - BASE_URL (-base-url): Public URL prefixed to image refs and sign links
  - SMTP_ADDR (-smtp-addr): Mail relay; emails are logged when unset
  - SMTP_FROM (-smtp-from): Sender address for sign request emails

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (mappings, documents, positions, assets)
  - signatory: Role resolution, signature waterfall, attribution auto-fill
  - overlay: Percentage-to-millimeter conversion and print markup
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON/HTML helpers
  - models: Request/response and domain types
  - auth: ID generation, sign link slugs and HMAC tokens
  - mailer: SMTP or log-only outbound mail
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
