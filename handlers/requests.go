// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rmuchiri/docsign/auth"
	"github.com/rmuchiri/docsign/cliparse"
	"github.com/rmuchiri/docsign/mailer"
	"github.com/rmuchiri/docsign/middleware"
	"github.com/rmuchiri/docsign/models"
)

// RequestHandler manages outbound requests to sign a document.
type RequestHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	mailer mailer.Sender
}

// NewRequestHandler creates a new sign request handler
func NewRequestHandler(db *sql.DB, cfg cliparse.Config, m mailer.Sender) *RequestHandler {
	return &RequestHandler{db: db, cfg: cfg, mailer: m}
}

// CreateSignRequest handles POST /sign-requests
// Records the request and emails the recipient a tokenized link to the
// document. A failed email send is logged but does not fail the request;
// the link is still returned to the caller.
func (h *RequestHandler) CreateSignRequest(w http.ResponseWriter, r *http.Request) {
	user := middleware.ActingUser(r)
	if user == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User header required")
		return
	}

	var req models.CreateSignRequestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.ReferenceDoctype == "" || req.ReferenceName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Reference doctype and name are required")
		return
	}
	if req.RecipientUser == "" && req.RecipientEmail == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "A recipient user or email is required")
		return
	}

	var exists int
	err := h.db.QueryRow(`
		SELECT COUNT(*) FROM document WHERE doctype = $1 AND name = $2
	`, req.ReferenceDoctype, req.ReferenceName).Scan(&exists)
	if err != nil {
		slog.Error("Failed to check document existence", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create sign request")
		return
	}
	if exists == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Document not found")
		return
	}

	// An email can be derived from the recipient's employee record when
	// only a user was given.
	email := req.RecipientEmail
	if email == "" {
		err := h.db.QueryRow(`SELECT email FROM employee WHERE user_id = $1`, req.RecipientUser).Scan(&email)
		if err != nil && err != sql.ErrNoRows {
			slog.Error("Failed to look up recipient email", "error", err, "user", req.RecipientUser)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create sign request")
			return
		}
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("Failed to generate request ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create sign request")
		return
	}
	slug := auth.GenerateLinkSlug(id, h.cfg.LinkSalt)
	token := auth.GenerateSignToken(id, h.cfg.LinkSalt)
	signURL := fmt.Sprintf("%s/sign/%s?token=%s", h.cfg.BaseURL, slug, token)

	_, err = h.db.Exec(`
		INSERT INTO sign_request
			(id, reference_doctype, reference_name, recipient_user,
			 recipient_email, message, requested_by, link_slug, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, req.ReferenceDoctype, req.ReferenceName, req.RecipientUser,
		email, req.Message, user, slug, time.Now())
	if err != nil {
		slog.Error("Failed to insert sign request", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create sign request")
		return
	}

	if email != "" {
		subject := fmt.Sprintf("Signature requested: %s %s", req.ReferenceDoctype, req.ReferenceName)
		body := fmt.Sprintf(
			`<p>%s has requested your signature on <b>%s %s</b>.</p><p>%s</p><p><a href="%s">Review and sign</a></p>`,
			user, req.ReferenceDoctype, req.ReferenceName, req.Message, signURL)
		if err := h.mailer.Send(email, subject, body); err != nil {
			slog.Warn("Failed to send sign request email", "error", err, "to", email, "request", id)
		}
	}

	slog.Info("Sign request created", "request", id,
		"doctype", req.ReferenceDoctype, "name", req.ReferenceName, "by", user)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSignRequestResponse{
		RequestID: id,
		SignURL:   signURL,
	})
}

// ResolveSignLink handles GET /sign/{slug}
// Exchanges an emailed link for the sign request it points at. The token
// is verified against the request ID, so a guessed slug without a
// matching token gets nothing.
func (h *RequestHandler) ResolveSignLink(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	token := r.URL.Query().Get("token")
	if slug == "" || token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Slug and token are required")
		return
	}

	var sr models.SignRequest
	err := h.db.QueryRow(`
		SELECT id, reference_doctype, reference_name, recipient_user,
		       recipient_email, message, requested_by, link_slug, created_at
		FROM sign_request
		WHERE link_slug = $1
	`, slug).Scan(&sr.ID, &sr.ReferenceDoctype, &sr.ReferenceName, &sr.RecipientUser,
		&sr.RecipientEmail, &sr.Message, &sr.RequestedBy, &sr.LinkSlug, &sr.CreatedAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Sign request not found")
		return
	}
	if err != nil {
		slog.Error("Failed to load sign request", "error", err, "slug", slug)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to resolve sign link")
		return
	}

	if err := auth.ValidateSignToken(sr.ID, token, h.cfg.LinkSalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid sign token")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sr)
}
