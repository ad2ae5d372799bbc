// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package signatory resolves who signs what, and in which role.

# Mapping Resolution

Each doctype may have at most one Signatory Mapping naming the free-form
document fields that carry attribution:

	mapping, err := resolver.Mapping(ctx, "Purchase Order")
	if mapping == nil {
		// signing disabled for this doctype
	}

# Role Resolution

SigningRole compares the document's mapped field values against a user:

	role := resolver.SigningRole(ctx, "Purchase Order", "PO-0001", user)

Precedence is fixed: requested-by field → created-by field (both yield
"Requested By") → approved-by → procured-by → document owner → "Other".
The function is total; any failure resolves to "Other".

# Signature Assets

SignatureImage walks a strict priority waterfall and returns the first
non-empty image reference:

	img := resolver.SignatureImage(ctx, user)

 1. employee.digital_signature
 2. default Signature Capture (drawn)
 3. default Signature Selection (uploaded)

# Auto-Fill

AutoFill runs on every document save and fills empty attribution fields from
the acting user, per the mapping. It never overwrites populated values, so
repeated saves are idempotent. The add-on's own doctypes are skipped.

	mapping, _ := resolver.Mapping(ctx, doc.Doctype)
	signatory.AutoFill(mapping, doc, user, isNew, time.Now())
*/
package signatory
