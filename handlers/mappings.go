// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/rmuchiri/docsign/auth"
	"github.com/rmuchiri/docsign/cliparse"
	"github.com/rmuchiri/docsign/middleware"
	"github.com/rmuchiri/docsign/models"
	"github.com/rmuchiri/docsign/signatory"
)

// MappingHandler administers Signatory Mappings, the per-doctype
// configuration that drives role resolution and auto-fill.
type MappingHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	resolver *signatory.Resolver
}

// NewMappingHandler creates a new mapping handler
func NewMappingHandler(db *sql.DB, cfg cliparse.Config) *MappingHandler {
	return &MappingHandler{db: db, cfg: cfg, resolver: signatory.NewResolver(db)}
}

// CreateMapping handles PUT /mappings
// Creates or replaces the mapping for a doctype. Field names are
// validated here, once, so every later lookup can trust them.
func (h *MappingHandler) CreateMapping(w http.ResponseWriter, r *http.Request) {
	user := middleware.ActingUser(r)
	if user == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User header required")
		return
	}

	var req models.CreateMappingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.DoctypeName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "doctype_name is required")
		return
	}

	fields := []string{
		req.CreatedByField, req.CreatedAtField,
		req.ApprovedByField, req.ApprovedAtField,
		req.RequestedByField, req.RequestedAtField,
		req.ProcuredByField,
	}
	for _, f := range fields {
		if f != "" && !signatory.ValidFieldName(f) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid field name: "+f)
			return
		}
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("Failed to generate mapping ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save mapping")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO signatory_mapping
			(id, doctype_name, created_by_field, created_at_field,
			 approved_by_field, approved_at_field, requested_by_field,
			 requested_at_field, procured_by_field, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (doctype_name) DO UPDATE SET
			created_by_field = excluded.created_by_field,
			created_at_field = excluded.created_at_field,
			approved_by_field = excluded.approved_by_field,
			approved_at_field = excluded.approved_at_field,
			requested_by_field = excluded.requested_by_field,
			requested_at_field = excluded.requested_at_field,
			procured_by_field = excluded.procured_by_field
	`, id, req.DoctypeName, req.CreatedByField, req.CreatedAtField,
		req.ApprovedByField, req.ApprovedAtField, req.RequestedByField,
		req.RequestedAtField, req.ProcuredByField, time.Now())
	if err != nil {
		slog.Error("Failed to upsert mapping", "error", err, "doctype", req.DoctypeName)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save mapping")
		return
	}

	slog.Info("Mapping saved", "doctype", req.DoctypeName, "by", user)

	mapping, err := h.resolver.Mapping(r.Context(), req.DoctypeName)
	if err != nil || mapping == nil {
		slog.Error("Failed to reload mapping", "error", err, "doctype", req.DoctypeName)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save mapping")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, mapping)
}

// GetMapping handles GET /mappings/{doctype}
func (h *MappingHandler) GetMapping(w http.ResponseWriter, r *http.Request) {
	doctype := r.PathValue("doctype")

	mapping, err := h.resolver.Mapping(r.Context(), doctype)
	if err != nil {
		slog.Error("Failed to load mapping", "error", err, "doctype", doctype)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load mapping")
		return
	}
	if mapping == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "No mapping for doctype: "+doctype)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, mapping)
}
