// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The SQL is kept portable between sqlite and postgres: timestamps are always
// written explicitly from Go, booleans are INTEGER 0/1, and JSON payloads are
// plain TEXT.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Signatory Mappings (at most one per doctype)
CREATE TABLE IF NOT EXISTS signatory_mapping (
    id TEXT PRIMARY KEY,
    doctype_name TEXT NOT NULL UNIQUE,
    created_by_field TEXT,
    created_at_field TEXT,
    approved_by_field TEXT,
    approved_at_field TEXT,
    requested_by_field TEXT,
    requested_at_field TEXT,
    procured_by_field TEXT,
    created_at TIMESTAMP NOT NULL
);

-- Documents (generic records the signing layer attaches to)
CREATE TABLE IF NOT EXISTS document (
    doctype TEXT NOT NULL,
    name TEXT NOT NULL,
    owner TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT '',
    fields TEXT NOT NULL DEFAULT '{}',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (doctype, name)
);

CREATE INDEX IF NOT EXISTS idx_document_owner ON document(owner);

-- Placed signature/stamp markers
CREATE TABLE IF NOT EXISTS signature_position (
    id TEXT PRIMARY KEY,
    reference_doctype TEXT NOT NULL,
    reference_name TEXT NOT NULL,
    signed_by TEXT NOT NULL,
    signing_role TEXT NOT NULL,
    signed_on TIMESTAMP NOT NULL,
    marker_type TEXT NOT NULL CHECK (marker_type IN ('Signature', 'Stamp')),
    x_pct REAL NOT NULL CHECK (x_pct >= 0 AND x_pct <= 100),
    y_pct REAL NOT NULL CHECK (y_pct >= 0 AND y_pct <= 100),
    page_no INTEGER NOT NULL DEFAULT 1 CHECK (page_no >= 1),
    width_px REAL NOT NULL DEFAULT 150,
    height_px REAL NOT NULL DEFAULT 80,
    image_ref TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_signature_position_ref ON signature_position(reference_doctype, reference_name);
CREATE INDEX IF NOT EXISTS idx_signature_position_signer ON signature_position(reference_doctype, reference_name, signed_by, signing_role);

-- Drawn signatures
CREATE TABLE IF NOT EXISTS signature_capture (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    signature_image TEXT NOT NULL DEFAULT '',
    is_default INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_signature_capture_user ON signature_capture(user_id);

-- Uploaded signatures
CREATE TABLE IF NOT EXISTS signature_selection (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    signature_image TEXT NOT NULL DEFAULT '',
    is_default INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_signature_selection_user ON signature_selection(user_id);

-- Company stamps (shared, not user-scoped)
CREATE TABLE IF NOT EXISTS company_stamp (
    id TEXT PRIMARY KEY,
    stamp_name TEXT NOT NULL UNIQUE,
    stamp_image TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

-- Personnel records (only the attributes the asset resolver needs)
CREATE TABLE IF NOT EXISTS employee (
    user_id TEXT PRIMARY KEY,
    email TEXT NOT NULL DEFAULT '',
    digital_signature TEXT NOT NULL DEFAULT ''
);

-- Outbound requests to sign
CREATE TABLE IF NOT EXISTS sign_request (
    id TEXT PRIMARY KEY,
    reference_doctype TEXT NOT NULL,
    reference_name TEXT NOT NULL,
    recipient_user TEXT NOT NULL DEFAULT '',
    recipient_email TEXT NOT NULL DEFAULT '',
    message TEXT NOT NULL DEFAULT '',
    requested_by TEXT NOT NULL,
    link_slug TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sign_request_ref ON sign_request(reference_doctype, reference_name);
`
