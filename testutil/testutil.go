// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rmuchiri/docsign/auth"
	"github.com/rmuchiri/docsign/cliparse"
	"github.com/rmuchiri/docsign/db"
	"github.com/rmuchiri/docsign/models"
	_ "modernc.org/sqlite"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// One connection keeps every statement on the same in-memory database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3325,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		BaseURL:      "https://docs.example.com",
		LinkSalt:     "test-link-salt",
	}
}

// CreateTestMapping inserts a Signatory Mapping row and returns its ID
func CreateTestMapping(t *testing.T, d *sql.DB, m models.SignatoryMapping) string {
	t.Helper()

	id, _ := auth.GenerateID(8)
	_, err := d.Exec(`
		INSERT INTO signatory_mapping (id, doctype_name, created_by_field, created_at_field,
			approved_by_field, approved_at_field, requested_by_field, requested_at_field,
			procured_by_field, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, id, m.DoctypeName, m.CreatedByField, m.CreatedAtField, m.ApprovedByField,
		m.ApprovedAtField, m.RequestedByField, m.RequestedAtField, m.ProcuredByField, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test mapping: %v", err)
	}

	return id
}

// CreateTestDocument inserts a document row with the given free-form fields
func CreateTestDocument(t *testing.T, d *sql.DB, doctype, name, owner, status string, fields map[string]string) {
	t.Helper()

	if fields == nil {
		fields = map[string]string{}
	}
	fieldsJSON, _ := json.Marshal(fields)
	now := time.Now()
	_, err := d.Exec(`
		INSERT INTO document (doctype, name, owner, status, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, doctype, name, owner, status, string(fieldsJSON), now, now)
	if err != nil {
		t.Fatalf("Failed to create test document: %v", err)
	}
}

// AddTestStamp inserts a company stamp and returns its ID
func AddTestStamp(t *testing.T, d *sql.DB, name, image string) string {
	t.Helper()

	id, _ := auth.GenerateID(8)
	_, err := d.Exec(`
		INSERT INTO company_stamp (id, stamp_name, stamp_image, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, name, image, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test stamp: %v", err)
	}

	return id
}

// AddTestCapture inserts a drawn signature for a user and returns its ID
func AddTestCapture(t *testing.T, d *sql.DB, user, image string, isDefault bool) string {
	t.Helper()

	id, _ := auth.GenerateID(8)
	flag := 0
	if isDefault {
		flag = 1
	}
	_, err := d.Exec(`
		INSERT INTO signature_capture (id, user_id, signature_image, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, user, image, flag, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test capture: %v", err)
	}

	return id
}

// AddTestSelection inserts an uploaded signature for a user and returns its ID
func AddTestSelection(t *testing.T, d *sql.DB, user, image string, isDefault bool) string {
	t.Helper()

	id, _ := auth.GenerateID(8)
	flag := 0
	if isDefault {
		flag = 1
	}
	_, err := d.Exec(`
		INSERT INTO signature_selection (id, user_id, signature_image, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, user, image, flag, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test selection: %v", err)
	}

	return id
}

// SetTestEmployee upserts a personnel record for a user
func SetTestEmployee(t *testing.T, d *sql.DB, user, email, signature string) {
	t.Helper()

	_, err := d.Exec(`
		INSERT INTO employee (user_id, email, digital_signature)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET email = excluded.email, digital_signature = excluded.digital_signature
	`, user, email, signature)
	if err != nil {
		t.Fatalf("Failed to set test employee: %v", err)
	}
}

// InsertTestPosition inserts a placed marker row directly (bypassing the handler)
func InsertTestPosition(t *testing.T, d *sql.DB, pos models.SignaturePosition) string {
	t.Helper()

	if pos.ID == "" {
		pos.ID = uuid.NewString()
	}
	if pos.PageNo == 0 {
		pos.PageNo = 1
	}
	if pos.WidthPx == 0 {
		pos.WidthPx = models.DefaultWidthPx
	}
	if pos.HeightPx == 0 {
		pos.HeightPx = models.DefaultHeightPx
	}
	if pos.SignedOn.IsZero() {
		pos.SignedOn = time.Now()
	}
	_, err := d.Exec(`
		INSERT INTO signature_position (id, reference_doctype, reference_name, signed_by,
			signing_role, signed_on, marker_type, x_pct, y_pct, page_no, width_px, height_px, image_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, pos.ID, pos.ReferenceDoctype, pos.ReferenceName, pos.SignedBy, pos.SigningRole,
		pos.SignedOn, pos.MarkerType, pos.XPct, pos.YPct, pos.PageNo, pos.WidthPx, pos.HeightPx, pos.ImageRef)
	if err != nil {
		t.Fatalf("Failed to insert test position: %v", err)
	}

	return pos.ID
}

// CountPositions counts the marker rows for one (document, signer, role) scope
func CountPositions(t *testing.T, d *sql.DB, doctype, name, user, role string) int {
	t.Helper()

	var count int
	err := d.QueryRow(`
		SELECT COUNT(*) FROM signature_position
		WHERE reference_doctype = $1 AND reference_name = $2 AND signed_by = $3 AND signing_role = $4
	`, doctype, name, user, role).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count positions: %v", err)
	}

	return count
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	// httptest.NewRequest rejects request targets containing spaces
	path = strings.ReplaceAll(path, " ", "%20")
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v. Body: %s", err, w.Body.String())
	}
}
