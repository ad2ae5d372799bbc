// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package signatory

import (
	"time"

	"github.com/rmuchiri/docsign/models"
)

// The add-on's own doctypes are never auto-filled; a mapping configured for
// one of these would otherwise recurse into the signing layer itself.
var autoFillSkip = map[string]bool{
	models.DoctypeSignatoryMapping:  true,
	models.DoctypeSignatureCapture:  true,
	models.DoctypeSignatureSelect:   true,
	models.DoctypeCompanyStamp:      true,
	models.DoctypeSignRequest:       true,
	models.DoctypeSignaturePosition: true,
}

// AutoFill fills created/approved/requested attribution fields on a document
// that is about to be saved, per the doctype's Signatory Mapping. It mutates
// doc in place and reports whether anything changed; persisting is the
// caller's job.
//
// Rules:
//   - Only empty fields are ever written; repeated saves are idempotent.
//   - On a new document, created-by and requested-by fill independently -
//     a mapping may configure both and both will name the acting user.
//   - Approved-by fills on any save while the document status is one of
//     Approved/Accepted/Completed.
//   - Each *_at_field fills alongside its *_by slot when configured and empty.
func AutoFill(mapping *models.SignatoryMapping, doc *models.Document, user string, isNew bool, now time.Time) bool {
	if mapping == nil || doc == nil || user == "" {
		return false
	}
	if autoFillSkip[doc.Doctype] {
		return false
	}

	changed := false
	ts := now.Format(time.RFC3339)

	// Created By
	if isNew && mapping.CreatedByField != "" {
		if doc.Field(mapping.CreatedByField) == "" {
			doc.SetField(mapping.CreatedByField, user)
			changed = true
		}
		if mapping.CreatedAtField != "" && doc.Field(mapping.CreatedAtField) == "" {
			doc.SetField(mapping.CreatedAtField, ts)
			changed = true
		}
	}

	// Approved By - triggered while status sits in the approval set
	if mapping.ApprovedByField != "" && isApprovalStatus(doc.Status) {
		if doc.Field(mapping.ApprovedByField) == "" {
			doc.SetField(mapping.ApprovedByField, user)
			changed = true
		}
		if mapping.ApprovedAtField != "" && doc.Field(mapping.ApprovedAtField) == "" {
			doc.SetField(mapping.ApprovedAtField, ts)
			changed = true
		}
	}

	// Requested By
	if isNew && mapping.RequestedByField != "" {
		if doc.Field(mapping.RequestedByField) == "" {
			doc.SetField(mapping.RequestedByField, user)
			changed = true
		}
		if mapping.RequestedAtField != "" && doc.Field(mapping.RequestedAtField) == "" {
			doc.SetField(mapping.RequestedAtField, ts)
			changed = true
		}
	}

	return changed
}

func isApprovalStatus(status string) bool {
	switch status {
	case models.StatusApproved, models.StatusAccepted, models.StatusCompleted:
		return true
	}
	return false
}
