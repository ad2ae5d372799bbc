// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateMappingRequest: per-doctype signatory field configuration
  - CreateDocumentRequest / UpdateDocumentRequest: generic document records
  - SavePositionsRequest: batch of Placement markers plus optional role
  - SaveSignatureRequest: drawn or uploaded signature image + default flag
  - CreateStampRequest: shared company stamp
  - SetEmployeeRequest: personnel email + digital signature
  - CreateSignRequestRequest: ask a recipient to sign a document

# Response Types

Types for JSON responses:

  - SavePositionsResponse: status, signing_role
  - UserAssetsResponse: signature, stamps, signing_role, my/other positions
  - SaveSignatureResponse: signature_id
  - CreateSignRequestResponse: request_id, sign_url
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - SignatoryMapping: which document fields carry attribution, per doctype
  - Document: generic (doctype, name) record with free-form fields
  - SignaturePosition: one placed marker, percent coordinates + pixel size
  - SignatureCapture / SignatureSelection: per-user signature assets
  - CompanyStamp: shared stamp image
  - SignRequest: outbound request-to-sign with emailed link

# Constants

Signing roles:

	RoleRequestedBy = "Requested By"
	RoleApprovedBy  = "Approved By"
	RoleProcuredBy  = "Procured By"
	RoleOther       = "Other"

Marker types:

	MarkerSignature = "Signature"
	MarkerStamp     = "Stamp"

Statuses that trigger the approved-by auto-fill:

	StatusApproved, StatusAccepted, StatusCompleted
*/
package models
