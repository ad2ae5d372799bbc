// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package signatory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/rmuchiri/docsign/models"
)

// Resolver answers the three lookup questions the signing layer needs:
// which fields carry attribution for a doctype, what role a user holds on a
// document, and which signature image to place for a user. All lookups are
// total - absence comes back as nil / "" / RoleOther, never as an error the
// caller must branch on.
type Resolver struct {
	db *sql.DB
}

func NewResolver(db *sql.DB) *Resolver {
	return &Resolver{db: db}
}

var fieldNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidFieldName reports whether s is usable as a mapped document field name.
// Mappings are validated once at creation so role resolution and auto-fill
// can treat configured names as trusted lookups.
func ValidFieldName(s string) bool {
	return fieldNameRe.MatchString(s)
}

// Mapping returns the Signatory Mapping for a doctype, or nil when none is
// configured. Absence is not an error: it means the signing feature is
// disabled for that doctype.
func (r *Resolver) Mapping(ctx context.Context, doctype string) (*models.SignatoryMapping, error) {
	var m models.SignatoryMapping
	err := r.db.QueryRowContext(ctx, `
		SELECT id, doctype_name, created_by_field, created_at_field,
		       approved_by_field, approved_at_field, requested_by_field,
		       requested_at_field, procured_by_field, created_at
		FROM signatory_mapping
		WHERE doctype_name = $1
	`, doctype).Scan(
		&m.ID, &m.DoctypeName, &m.CreatedByField, &m.CreatedAtField,
		&m.ApprovedByField, &m.ApprovedAtField, &m.RequestedByField,
		&m.RequestedAtField, &m.ProcuredByField, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query signatory mapping: %w", err)
	}
	return &m, nil
}

// LoadDocument reads one document record. Returns sql.ErrNoRows unchanged
// when the document does not exist.
func LoadDocument(ctx context.Context, db *sql.DB, doctype, name string) (*models.Document, error) {
	var d models.Document
	var fieldsJSON string
	err := db.QueryRowContext(ctx, `
		SELECT doctype, name, owner, status, fields, created_at, updated_at
		FROM document
		WHERE doctype = $1 AND name = $2
	`, doctype, name).Scan(&d.Doctype, &d.Name, &d.Owner, &d.Status, &fieldsJSON, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &d.Fields); err != nil {
		return nil, fmt.Errorf("malformed document fields: %w", err)
	}
	return &d, nil
}

// SigningRole determines the user's role on a specific document by comparing
// document field values against the doctype's Signatory Mapping.
//
// Precedence is fixed: requested-by field, then created-by field (both map to
// Requested By), then approved-by, then procured-by, then generic document
// ownership. Anything else - including a missing mapping or a document that
// cannot be loaded - is Other.
func (r *Resolver) SigningRole(ctx context.Context, doctype, name, user string) string {
	if user == "" {
		return models.RoleOther
	}

	mapping, err := r.Mapping(ctx, doctype)
	if err != nil {
		slog.Error("failed to resolve signatory mapping", "error", err, "doctype", doctype)
		return models.RoleOther
	}
	if mapping == nil {
		return models.RoleOther
	}

	doc, err := LoadDocument(ctx, r.db, doctype, name)
	if err != nil {
		if err != sql.ErrNoRows {
			slog.Error("failed to load document for role resolution", "error", err, "doctype", doctype, "name", name)
		}
		return models.RoleOther
	}

	// Requested-by wins over created-by; both resolve to Requested By
	if mapping.RequestedByField != "" && doc.Field(mapping.RequestedByField) == user {
		return models.RoleRequestedBy
	}
	if mapping.CreatedByField != "" && doc.Field(mapping.CreatedByField) == user {
		return models.RoleRequestedBy
	}

	if mapping.ApprovedByField != "" && doc.Field(mapping.ApprovedByField) == user {
		return models.RoleApprovedBy
	}

	if mapping.ProcuredByField != "" && doc.Field(mapping.ProcuredByField) == user {
		return models.RoleProcuredBy
	}

	// Fallback: the document's owner counts as its requester
	if doc.Owner == user {
		return models.RoleRequestedBy
	}

	return models.RoleOther
}

// SignatureImage returns the best available signature image reference for a
// user, or "" when the user has none. Priority:
//  1. employee digital signature (set during onboarding)
//  2. drawn Signature Capture flagged default
//  3. uploaded Signature Selection flagged default
//
// Unexpected database failures are logged and treated as a miss so the
// waterfall continues to the next source.
func (r *Resolver) SignatureImage(ctx context.Context, user string) string {
	if user == "" {
		return ""
	}

	var img string
	err := r.db.QueryRowContext(ctx, `
		SELECT digital_signature FROM employee WHERE user_id = $1
	`, user).Scan(&img)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query employee signature", "error", err, "user", user)
	}
	if img != "" {
		return img
	}

	img = ""
	err = r.db.QueryRowContext(ctx, `
		SELECT signature_image FROM signature_capture
		WHERE user_id = $1 AND is_default = 1
		LIMIT 1
	`, user).Scan(&img)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query signature capture", "error", err, "user", user)
	}
	if img != "" {
		return img
	}

	img = ""
	err = r.db.QueryRowContext(ctx, `
		SELECT signature_image FROM signature_selection
		WHERE user_id = $1 AND is_default = 1
		LIMIT 1
	`, user).Scan(&img)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query signature selection", "error", err, "user", user)
	}
	return img
}
