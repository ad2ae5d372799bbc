// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rmuchiri/docsign/cliparse"
	"github.com/rmuchiri/docsign/middleware"
	"github.com/rmuchiri/docsign/models"
	"github.com/rmuchiri/docsign/overlay"
	"github.com/rmuchiri/docsign/signatory"
)

// DocumentHandler manages the stored document records that signatures
// attach to, including attribution auto-fill on save.
type DocumentHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	resolver *signatory.Resolver
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(db *sql.DB, cfg cliparse.Config) *DocumentHandler {
	return &DocumentHandler{db: db, cfg: cfg, resolver: signatory.NewResolver(db)}
}

// CreateDocument handles POST /documents
// The acting user becomes the document owner, and the doctype's mapped
// attribution fields fill in as for any first save.
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	user := middleware.ActingUser(r)
	if user == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User header required")
		return
	}

	var req models.CreateDocumentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Doctype == "" || req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Document doctype and name are required")
		return
	}

	if _, err := signatory.LoadDocument(r.Context(), h.db, req.Doctype, req.Name); err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Document already exists")
		return
	} else if err != sql.ErrNoRows {
		slog.Error("Failed to check document existence", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create document")
		return
	}

	now := time.Now()
	doc := &models.Document{
		Doctype:   req.Doctype,
		Name:      req.Name,
		Owner:     user,
		Status:    req.Status,
		Fields:    req.Fields,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Fields == nil {
		doc.Fields = map[string]string{}
	}

	mapping, err := h.resolver.Mapping(r.Context(), req.Doctype)
	if err != nil {
		slog.Error("Failed to load signatory mapping", "error", err, "doctype", req.Doctype)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create document")
		return
	}
	signatory.AutoFill(mapping, doc, user, true, now)

	fieldsJSON, err := json.Marshal(doc.Fields)
	if err != nil {
		slog.Error("Failed to encode document fields", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create document")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO document (doctype, name, owner, status, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, doc.Doctype, doc.Name, doc.Owner, doc.Status, string(fieldsJSON), doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		slog.Error("Failed to insert document", "error", err, "doctype", doc.Doctype, "name", doc.Name)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create document")
		return
	}

	slog.Info("Document created", "doctype", doc.Doctype, "name", doc.Name, "owner", user)
	middleware.JSONResponse(w, http.StatusCreated, doc)
}

// GetDocument handles GET /documents/{doctype}/{name}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doctype := r.PathValue("doctype")
	name := r.PathValue("name")

	doc, err := signatory.LoadDocument(r.Context(), h.db, doctype, name)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Document not found")
		return
	}
	if err != nil {
		slog.Error("Failed to load document", "error", err, "doctype", doctype, "name", name)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load document")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, doc)
}

// UpdateDocument handles PUT /documents/{doctype}/{name}
// Merges the submitted fields over the stored ones, optionally moves the
// status, then re-runs attribution auto-fill. Fields already carrying a
// value never change through auto-fill, so repeated saves are idempotent.
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	doctype := r.PathValue("doctype")
	name := r.PathValue("name")

	user := middleware.ActingUser(r)
	if user == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User header required")
		return
	}

	var req models.UpdateDocumentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	doc, err := signatory.LoadDocument(r.Context(), h.db, doctype, name)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Document not found")
		return
	}
	if err != nil {
		slog.Error("Failed to load document", "error", err, "doctype", doctype, "name", name)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update document")
		return
	}

	for k, v := range req.Fields {
		doc.SetField(k, v)
	}
	if req.Status != nil {
		doc.Status = *req.Status
	}

	now := time.Now()
	mapping, err := h.resolver.Mapping(r.Context(), doctype)
	if err != nil {
		slog.Error("Failed to load signatory mapping", "error", err, "doctype", doctype)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update document")
		return
	}
	signatory.AutoFill(mapping, doc, user, false, now)
	doc.UpdatedAt = now

	fieldsJSON, err := json.Marshal(doc.Fields)
	if err != nil {
		slog.Error("Failed to encode document fields", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update document")
		return
	}

	_, err = h.db.Exec(`
		UPDATE document SET status = $1, fields = $2, updated_at = $3
		WHERE doctype = $4 AND name = $5
	`, doc.Status, string(fieldsJSON), doc.UpdatedAt, doctype, name)
	if err != nil {
		slog.Error("Failed to update document", "error", err, "doctype", doctype, "name", name)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update document")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, doc)
}

// GetOverlays handles GET /documents/{doctype}/{name}/overlays
// Returns the print overlay markup for every placed marker on the
// document. A document with no placements (or none with a resolvable
// image) yields an empty 200 body.
func (h *DocumentHandler) GetOverlays(w http.ResponseWriter, r *http.Request) {
	doctype := r.PathValue("doctype")
	name := r.PathValue("name")
	if doctype == "" || name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Document doctype and name are required")
		return
	}

	positions, err := queryPositions(h.db, doctype, name)
	if err != nil {
		slog.Error("Failed to query positions", "error", err, "doctype", doctype, "name", name)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render overlays")
		return
	}

	middleware.HTMLResponse(w, http.StatusOK, overlay.Render(positions, h.cfg.BaseURL))
}
