// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - signatory_mapping: per-doctype attribution field configuration
  - document: generic records the signing layer attaches to
  - signature_position: placed signature/stamp markers
  - signature_capture: drawn signatures (per user, one default)
  - signature_selection: uploaded signatures (per user, one default)
  - company_stamp: shared stamp images
  - employee: personnel record slice (email, digital signature)
  - sign_request: outbound requests to sign

# Portability

The same schema string runs on both sqlite and postgres. That rules out a few
dialect conveniences: no NOW() defaults (timestamps are passed from Go), no
BOOLEAN columns (INTEGER 0/1), no JSONB (document fields are JSON text).

# Indexes

  - signature_position(reference_doctype, reference_name) for overlay reads
  - signature_position(..., signed_by, signing_role) for scoped batch replace
  - signature_capture/signature_selection(user_id)
  - sign_request.link_slug (unique)
*/
package db
