// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rmuchiri/docsign/models"
	"github.com/rmuchiri/docsign/testutil"
)

func TestSaveCapture_DefaultIsExclusivePerKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewSignatureHandler(db, testutil.GetTestConfig())

	// Existing default capture, plus a default selection that must survive
	oldCapture := testutil.AddTestCapture(t, db, "alice@example.com", "/files/old.png", true)
	selection := testutil.AddTestSelection(t, db, "alice@example.com", "/files/upload.png", true)

	r := testutil.MakeRequest("POST", "/signatures/captures", models.SaveSignatureRequest{
		SignatureImage: "/files/new.png",
		IsDefault:      true,
	}, map[string]string{"X-User": "alice@example.com"})
	w := httptest.NewRecorder()
	h.SaveCapture(w, r)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SaveSignatureResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.SignatureID == "" {
		t.Fatal("Expected a signature ID")
	}

	var oldDefault, newDefault, selDefault int
	if err := db.QueryRow(`SELECT is_default FROM signature_capture WHERE id = $1`, oldCapture).Scan(&oldDefault); err != nil {
		t.Fatalf("Failed to read old capture: %v", err)
	}
	if err := db.QueryRow(`SELECT is_default FROM signature_capture WHERE id = $1`, resp.SignatureID).Scan(&newDefault); err != nil {
		t.Fatalf("Failed to read new capture: %v", err)
	}
	if err := db.QueryRow(`SELECT is_default FROM signature_selection WHERE id = $1`, selection).Scan(&selDefault); err != nil {
		t.Fatalf("Failed to read selection: %v", err)
	}

	if oldDefault != 0 {
		t.Error("Expected prior default capture unflagged")
	}
	if newDefault != 1 {
		t.Error("Expected new capture flagged default")
	}
	// The two kinds keep independent defaults
	if selDefault != 1 {
		t.Error("Expected default selection untouched")
	}
}

func TestSaveSelection_NonDefaultLeavesFlagsAlone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewSignatureHandler(db, testutil.GetTestConfig())
	existing := testutil.AddTestSelection(t, db, "bob@example.com", "/files/a.png", true)

	r := testutil.MakeRequest("POST", "/signatures/selections", models.SaveSignatureRequest{
		SignatureImage: "/files/b.png",
	}, map[string]string{"X-User": "bob@example.com"})
	w := httptest.NewRecorder()
	h.SaveSelection(w, r)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var flag int
	if err := db.QueryRow(`SELECT is_default FROM signature_selection WHERE id = $1`, existing).Scan(&flag); err != nil {
		t.Fatalf("Failed to read selection: %v", err)
	}
	if flag != 1 {
		t.Error("Expected existing default to survive a non-default save")
	}
}

func TestSaveCapture_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewSignatureHandler(db, testutil.GetTestConfig())

	// No user
	r := testutil.MakeRequest("POST", "/signatures/captures", models.SaveSignatureRequest{
		SignatureImage: "/files/x.png",
	}, nil)
	w := httptest.NewRecorder()
	h.SaveCapture(w, r)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	// No image
	r = testutil.MakeRequest("POST", "/signatures/captures", models.SaveSignatureRequest{},
		map[string]string{"X-User": "alice@example.com"})
	w = httptest.NewRecorder()
	h.SaveCapture(w, r)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestListMine_ScopedToUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewSignatureHandler(db, testutil.GetTestConfig())

	testutil.AddTestCapture(t, db, "alice@example.com", "/files/a1.png", true)
	testutil.AddTestSelection(t, db, "alice@example.com", "/files/a2.png", false)
	testutil.AddTestCapture(t, db, "bob@example.com", "/files/b1.png", true)

	r := testutil.MakeRequest("GET", "/signatures", nil, map[string]string{"X-User": "alice@example.com"})
	w := httptest.NewRecorder()
	h.ListMine(w, r)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Captures   []models.SignatureCapture `json:"captures"`
		Selections []models.SignatureCapture `json:"selections"`
	}
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Captures) != 1 || resp.Captures[0].SignatureImage != "/files/a1.png" {
		t.Errorf("Expected alice's capture only, got %+v", resp.Captures)
	}
	if len(resp.Selections) != 1 || resp.Selections[0].SignatureImage != "/files/a2.png" {
		t.Errorf("Expected alice's selection only, got %+v", resp.Selections)
	}
}

func TestSetEmployee_Upserts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewSignatureHandler(db, testutil.GetTestConfig())

	put := func(sig string) {
		r := testutil.MakeRequest("PUT", "/employees/alice@example.com/signature", models.SetEmployeeRequest{
			Email:            "alice@example.com",
			DigitalSignature: sig,
		}, map[string]string{"X-User": "admin@example.com"})
		r.SetPathValue("user", "alice@example.com")
		w := httptest.NewRecorder()
		h.SetEmployee(w, r)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	put("/files/v1.png")
	put("/files/v2.png")

	var sig string
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM employee WHERE user_id = 'alice@example.com'`).Scan(&count); err != nil {
		t.Fatalf("Failed to count employees: %v", err)
	}
	if err := db.QueryRow(`SELECT digital_signature FROM employee WHERE user_id = 'alice@example.com'`).Scan(&sig); err != nil {
		t.Fatalf("Failed to read employee: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 employee row, got %d", count)
	}
	if sig != "/files/v2.png" {
		t.Errorf("Expected updated signature, got %q", sig)
	}
}

func TestCreateStamp_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewSignatureHandler(db, testutil.GetTestConfig())

	r := testutil.MakeRequest("POST", "/stamps", models.CreateStampRequest{
		StampName:  "Head Office",
		StampImage: "/files/head.png",
	}, map[string]string{"X-User": "admin@example.com"})
	w := httptest.NewRecorder()
	h.CreateStamp(w, r)
	testutil.AssertStatus(t, w, http.StatusCreated)

	r = testutil.MakeRequest("POST", "/stamps", models.CreateStampRequest{
		StampName:  "Head Office",
		StampImage: "/files/other.png",
	}, map[string]string{"X-User": "admin@example.com"})
	w = httptest.NewRecorder()
	h.CreateStamp(w, r)
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestInlineSignatureImage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	h := NewSignatureHandler(db, cfg)

	testutil.SetTestEmployee(t, db, "alice@example.com", "alice@example.com", "/files/alice.png")

	r := testutil.MakeRequest("GET", "/users/alice@example.com/signature-image?width=200px", nil, nil)
	r.SetPathValue("user", "alice@example.com")
	w := httptest.NewRecorder()
	h.InlineSignatureImage(w, r)
	testutil.AssertStatus(t, w, http.StatusOK)

	body := w.Body.String()
	if !strings.Contains(body, cfg.BaseURL+"/files/alice.png") {
		t.Errorf("Expected signature image URL in markup, got %s", body)
	}
	if !strings.Contains(body, "width:200px") {
		t.Errorf("Expected requested width in markup, got %s", body)
	}

	// A user without any signature gets the blank line placeholder
	r = testutil.MakeRequest("GET", "/users/ghost@example.com/signature-image", nil, nil)
	r.SetPathValue("user", "ghost@example.com")
	w = httptest.NewRecorder()
	h.InlineSignatureImage(w, r)
	testutil.AssertStatus(t, w, http.StatusOK)

	if !strings.Contains(w.Body.String(), "border-bottom") {
		t.Errorf("Expected placeholder markup, got %s", w.Body.String())
	}
}
