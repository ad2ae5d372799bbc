// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package signatory_test

import (
	"context"
	"testing"

	"github.com/rmuchiri/docsign/models"
	"github.com/rmuchiri/docsign/signatory"
	"github.com/rmuchiri/docsign/testutil"
)

func TestSignatureImage_Priority(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	resolver := signatory.NewResolver(db)
	ctx := context.Background()

	user := "alice@example.com"

	// No sources at all -> none
	if img := resolver.SignatureImage(ctx, user); img != "" {
		t.Errorf("Expected no signature, got %q", img)
	}

	// Default uploaded selection is the weakest source
	testutil.AddTestSelection(t, db, user, "/files/alice-upload.png", true)
	if img := resolver.SignatureImage(ctx, user); img != "/files/alice-upload.png" {
		t.Errorf("Expected uploaded signature, got %q", img)
	}

	// Default drawn capture beats the selection
	testutil.AddTestCapture(t, db, user, "/files/alice-drawn.png", true)
	if img := resolver.SignatureImage(ctx, user); img != "/files/alice-drawn.png" {
		t.Errorf("Expected drawn signature, got %q", img)
	}

	// Employee digital signature beats everything
	testutil.SetTestEmployee(t, db, user, "alice@example.com", "/files/alice-onboarding.png")
	if img := resolver.SignatureImage(ctx, user); img != "/files/alice-onboarding.png" {
		t.Errorf("Expected employee signature, got %q", img)
	}
}

func TestSignatureImage_IgnoresNonDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	resolver := signatory.NewResolver(db)
	ctx := context.Background()

	user := "bob@example.com"
	testutil.AddTestCapture(t, db, user, "/files/bob-old.png", false)
	testutil.AddTestSelection(t, db, user, "/files/bob-upload.png", false)

	if img := resolver.SignatureImage(ctx, user); img != "" {
		t.Errorf("Non-default signatures must not resolve, got %q", img)
	}

	// Another user's default must not leak
	testutil.AddTestCapture(t, db, "carol@example.com", "/files/carol.png", true)
	if img := resolver.SignatureImage(ctx, user); img != "" {
		t.Errorf("Expected no signature for %s, got %q", user, img)
	}

	if img := resolver.SignatureImage(ctx, ""); img != "" {
		t.Errorf("Empty user must resolve to none, got %q", img)
	}
}

func TestMapping_AbsenceIsNotAnError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	resolver := signatory.NewResolver(db)

	mapping, err := resolver.Mapping(context.Background(), "Unmapped Doctype")
	if err != nil {
		t.Fatalf("Mapping() error = %v", err)
	}
	if mapping != nil {
		t.Errorf("Expected nil mapping, got %+v", mapping)
	}
}

func TestSigningRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	resolver := signatory.NewResolver(db)
	ctx := context.Background()

	testutil.CreateTestMapping(t, db, models.SignatoryMapping{
		DoctypeName:      "Purchase Order",
		CreatedByField:   "created_by",
		ApprovedByField:  "approved_by",
		RequestedByField: "requested_by",
		ProcuredByField:  "procured_by",
	})

	testutil.CreateTestDocument(t, db, "Purchase Order", "PO-0001", "owner@example.com", "Draft", map[string]string{
		"requested_by": "req@example.com",
		"created_by":   "creator@example.com",
		"approved_by":  "appr@example.com",
		"procured_by":  "proc@example.com",
	})

	tests := []struct {
		name string
		user string
		want string
	}{
		{"requested by field", "req@example.com", models.RoleRequestedBy},
		{"created by field", "creator@example.com", models.RoleRequestedBy},
		{"approved by field", "appr@example.com", models.RoleApprovedBy},
		{"procured by field", "proc@example.com", models.RoleProcuredBy},
		{"owner fallback", "owner@example.com", models.RoleRequestedBy},
		{"unrelated user", "stranger@example.com", models.RoleOther},
		{"empty user", "", models.RoleOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolver.SigningRole(ctx, "Purchase Order", "PO-0001", tt.user); got != tt.want {
				t.Errorf("SigningRole() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSigningRole_RequestedWinsOverApproved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	resolver := signatory.NewResolver(db)

	testutil.CreateTestMapping(t, db, models.SignatoryMapping{
		DoctypeName:      "Expense Claim",
		ApprovedByField:  "approved_by",
		RequestedByField: "requested_by",
	})

	// Same user appears in both fields; the fixed check order decides
	testutil.CreateTestDocument(t, db, "Expense Claim", "EXP-0001", "owner@example.com", "Approved", map[string]string{
		"requested_by": "dana@example.com",
		"approved_by":  "dana@example.com",
	})

	got := resolver.SigningRole(context.Background(), "Expense Claim", "EXP-0001", "dana@example.com")
	if got != models.RoleRequestedBy {
		t.Errorf("SigningRole() = %q, want %q", got, models.RoleRequestedBy)
	}
}

func TestSigningRole_SoftAbsence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	resolver := signatory.NewResolver(db)
	ctx := context.Background()

	// No mapping for the doctype
	if got := resolver.SigningRole(ctx, "Unmapped Doctype", "X-1", "alice@example.com"); got != models.RoleOther {
		t.Errorf("SigningRole() without mapping = %q, want %q", got, models.RoleOther)
	}

	// Mapping exists but the document does not
	testutil.CreateTestMapping(t, db, models.SignatoryMapping{
		DoctypeName:      "Purchase Order",
		RequestedByField: "requested_by",
	})
	if got := resolver.SigningRole(ctx, "Purchase Order", "PO-MISSING", "alice@example.com"); got != models.RoleOther {
		t.Errorf("SigningRole() for missing document = %q, want %q", got, models.RoleOther)
	}
}

func TestValidFieldName(t *testing.T) {
	valid := []string{"approved_by", "requested_by", "x", "sig2_field"}
	invalid := []string{"", "Approved By", "2nd_field", "drop table", "_hidden", "UPPER"}

	for _, name := range valid {
		if !signatory.ValidFieldName(name) {
			t.Errorf("ValidFieldName(%q) = false, want true", name)
		}
	}
	for _, name := range invalid {
		if signatory.ValidFieldName(name) {
			t.Errorf("ValidFieldName(%q) = true, want false", name)
		}
	}
}
