// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Signing role constants. A role describes the user's relationship to the
// document being signed, resolved from the Signatory Mapping for its doctype.
const (
	RoleRequestedBy = "Requested By"
	RoleApprovedBy  = "Approved By"
	RoleProcuredBy  = "Procured By"
	RoleOther       = "Other"
)

// Marker type constants
const (
	MarkerSignature = "Signature"
	MarkerStamp     = "Stamp"
)

// Document statuses that trigger the approved-by auto-fill
const (
	StatusApproved  = "Approved"
	StatusAccepted  = "Accepted"
	StatusCompleted = "Completed"
)

// Default placement dimensions in pixels (96 dpi)
const (
	DefaultWidthPx  = 150.0
	DefaultHeightPx = 80.0
)

// Doctype names reserved by the signing add-on itself. Auto-fill must never
// run against these.
const (
	DoctypeSignatoryMapping  = "Signatory Mapping"
	DoctypeSignatureCapture  = "Signature Capture"
	DoctypeSignatureSelect   = "Signature Selection"
	DoctypeCompanyStamp      = "Company Stamp"
	DoctypeSignRequest       = "Document Sign Request"
	DoctypeSignaturePosition = "Document Signature Position"
)

// Request types

type CreateMappingRequest struct {
	DoctypeName      string `json:"doctype_name"`
	CreatedByField   string `json:"created_by_field"`
	CreatedAtField   string `json:"created_at_field"`
	ApprovedByField  string `json:"approved_by_field"`
	ApprovedAtField  string `json:"approved_at_field"`
	RequestedByField string `json:"requested_by_field"`
	RequestedAtField string `json:"requested_at_field"`
	ProcuredByField  string `json:"procured_by_field"`
}

type CreateDocumentRequest struct {
	Doctype string            `json:"doctype"`
	Name    string            `json:"name"`
	Status  string            `json:"status"`
	Fields  map[string]string `json:"fields"`
}

type UpdateDocumentRequest struct {
	Status *string           `json:"status"`
	Fields map[string]string `json:"fields"`
}

// Placement is one requested marker position, as percentages of the page.
type Placement struct {
	Type      string   `json:"type"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	PageNo    int      `json:"page_no"`
	Width     *float64 `json:"width"`
	Height    *float64 `json:"height"`
	StampName string   `json:"stamp_name"`
}

type SavePositionsRequest struct {
	Positions   []Placement `json:"positions"`
	SigningRole string      `json:"signing_role"`
}

type SaveSignatureRequest struct {
	SignatureImage string `json:"signature_image"`
	IsDefault      bool   `json:"is_default"`
}

type CreateStampRequest struct {
	StampName  string `json:"stamp_name"`
	StampImage string `json:"stamp_image"`
}

type SetEmployeeRequest struct {
	Email            string `json:"email"`
	DigitalSignature string `json:"digital_signature"`
}

type CreateSignRequestRequest struct {
	ReferenceDoctype string `json:"reference_doctype"`
	ReferenceName    string `json:"reference_name"`
	RecipientUser    string `json:"recipient_user"`
	RecipientEmail   string `json:"recipient_email"`
	Message          string `json:"message"`
}

// Response types

type SavePositionsResponse struct {
	Status      string `json:"status"`
	SigningRole string `json:"signing_role"`
}

type UserAssetsResponse struct {
	Signature      string              `json:"signature"`
	Stamps         []CompanyStamp      `json:"stamps"`
	SigningRole    string              `json:"signing_role"`
	MyPositions    []SignaturePosition `json:"my_positions"`
	OtherPositions []SignaturePosition `json:"other_positions"`
}

type SaveSignatureResponse struct {
	SignatureID string `json:"signature_id"`
}

type CreateSignRequestResponse struct {
	RequestID string `json:"request_id"`
	SignURL   string `json:"sign_url"`
}

// Domain types

// SignatoryMapping names, per doctype, which free-form document fields carry
// the created/approved/requested/procured attribution. Empty field names mean
// that slot is not configured for the doctype.
type SignatoryMapping struct {
	ID               string    `json:"id"`
	DoctypeName      string    `json:"doctype_name"`
	CreatedByField   string    `json:"created_by_field,omitempty"`
	CreatedAtField   string    `json:"created_at_field,omitempty"`
	ApprovedByField  string    `json:"approved_by_field,omitempty"`
	ApprovedAtField  string    `json:"approved_at_field,omitempty"`
	RequestedByField string    `json:"requested_by_field,omitempty"`
	RequestedAtField string    `json:"requested_at_field,omitempty"`
	ProcuredByField  string    `json:"procured_by_field,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Document is a generic stored record identified by (doctype, name). The
// attribution fields named by a Signatory Mapping live in the free-form
// Fields map; owner and status are first-class because every document has
// them regardless of mapping.
type Document struct {
	Doctype   string            `json:"doctype"`
	Name      string            `json:"name"`
	Owner     string            `json:"owner"`
	Status    string            `json:"status"`
	Fields    map[string]string `json:"fields"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Field returns the value of a free-form field, or "" when unset.
func (d *Document) Field(name string) string {
	if d.Fields == nil {
		return ""
	}
	return d.Fields[name]
}

// SetField sets a free-form field value.
func (d *Document) SetField(name, value string) {
	if d.Fields == nil {
		d.Fields = map[string]string{}
	}
	d.Fields[name] = value
}

// SignaturePosition is one placed signature or stamp marker on a document.
// X/Y are percentages (0-100) of the printed page; width/height are pixels.
type SignaturePosition struct {
	ID               string    `json:"id"`
	ReferenceDoctype string    `json:"reference_doctype"`
	ReferenceName    string    `json:"reference_name"`
	SignedBy         string    `json:"signed_by"`
	SigningRole      string    `json:"signing_role"`
	SignedOn         time.Time `json:"signed_on"`
	MarkerType       string    `json:"marker_type"`
	XPct             float64   `json:"x_pct"`
	YPct             float64   `json:"y_pct"`
	PageNo           int       `json:"page_no"`
	WidthPx          float64   `json:"width_px"`
	HeightPx         float64   `json:"height_px"`
	ImageRef         string    `json:"image_ref"`
}

// SignatureCapture is a drawn signature owned by a user.
type SignatureCapture struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	SignatureImage string    `json:"signature_image"`
	IsDefault      bool      `json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
}

// SignatureSelection is an uploaded signature image owned by a user.
type SignatureSelection struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	SignatureImage string    `json:"signature_image"`
	IsDefault      bool      `json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
}

// CompanyStamp is a shared stamp image; any signer may place any stamp.
type CompanyStamp struct {
	ID         string `json:"id"`
	StampName  string `json:"stamp_name"`
	StampImage string `json:"stamp_image"`
}

// SignRequest asks a recipient to sign a specific document. Creation sends
// an email with a tokenized link back to the document.
type SignRequest struct {
	ID               string    `json:"id"`
	ReferenceDoctype string    `json:"reference_doctype"`
	ReferenceName    string    `json:"reference_name"`
	RecipientUser    string    `json:"recipient_user,omitempty"`
	RecipientEmail   string    `json:"recipient_email,omitempty"`
	Message          string    `json:"message,omitempty"`
	RequestedBy      string    `json:"requested_by"`
	LinkSlug         string    `json:"link_slug"`
	CreatedAt        time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
