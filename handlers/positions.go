// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rmuchiri/docsign/cliparse"
	"github.com/rmuchiri/docsign/middleware"
	"github.com/rmuchiri/docsign/models"
	"github.com/rmuchiri/docsign/signatory"
)

// PositionHandler manages signature and stamp placements on documents
type PositionHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	resolver *signatory.Resolver
	locks    sync.Map // one mutex per (document, signer, role) submission scope
}

// NewPositionHandler creates a new position handler
func NewPositionHandler(db *sql.DB, cfg cliparse.Config) *PositionHandler {
	return &PositionHandler{db: db, cfg: cfg, resolver: signatory.NewResolver(db)}
}

func (h *PositionHandler) submissionLock(doctype, name, user, role string) *sync.Mutex {
	key := doctype + "\x00" + name + "\x00" + user + "\x00" + role
	mu, _ := h.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// validatePlacement checks one placement and applies defaults in place.
// Returns an error message, or "" when the placement is acceptable.
func validatePlacement(p *models.Placement) string {
	if p.Type != models.MarkerSignature && p.Type != models.MarkerStamp {
		return fmt.Sprintf("Placement type must be %q or %q", models.MarkerSignature, models.MarkerStamp)
	}
	if p.X < 0 || p.X > 100 {
		return "Placement x must be between 0 and 100"
	}
	if p.Y < 0 || p.Y > 100 {
		return "Placement y must be between 0 and 100"
	}
	if p.PageNo == 0 {
		p.PageNo = 1
	}
	if p.PageNo < 1 {
		return "Placement page_no must be at least 1"
	}
	if p.Width == nil {
		w := models.DefaultWidthPx
		p.Width = &w
	} else if *p.Width <= 0 {
		return "Placement width must be positive"
	}
	if p.Height == nil {
		ht := models.DefaultHeightPx
		p.Height = &ht
	} else if *p.Height <= 0 {
		return "Placement height must be positive"
	}
	return ""
}

func validSigningRole(role string) bool {
	switch role {
	case models.RoleRequestedBy, models.RoleApprovedBy, models.RoleProcuredBy, models.RoleOther:
		return true
	}
	return false
}

// stampImage resolves the image for a stamp placement within the open
// transaction. A named stamp that does not exist yields an empty ref
// rather than an error; an unnamed stamp falls back to the first stamp
// by name, if any.
func stampImage(tx *sql.Tx, stampName string) (string, error) {
	var image string
	var err error
	if stampName != "" {
		err = tx.QueryRow(`SELECT stamp_image FROM company_stamp WHERE stamp_name = $1`, stampName).Scan(&image)
	} else {
		err = tx.QueryRow(`SELECT stamp_image FROM company_stamp ORDER BY stamp_name LIMIT 1`).Scan(&image)
	}
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return image, nil
}

// SavePositions handles POST /documents/{doctype}/{name}/positions
// Replaces the acting signer's placements for one signing role on one
// document. Other signers' placements on the same document are untouched.
func (h *PositionHandler) SavePositions(w http.ResponseWriter, r *http.Request) {
	doctype := r.PathValue("doctype")
	name := r.PathValue("name")
	if doctype == "" || name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Document doctype and name are required")
		return
	}

	user := middleware.ActingUser(r)
	if user == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User header required")
		return
	}

	var req models.SavePositionsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.SigningRole != "" && !validSigningRole(req.SigningRole) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown signing role: "+req.SigningRole)
		return
	}

	// Validate the whole batch before touching the store. A single bad
	// placement rejects the call with nothing persisted.
	for i := range req.Positions {
		if msg := validatePlacement(&req.Positions[i]); msg != "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, msg)
			return
		}
	}

	role := req.SigningRole
	if role == "" {
		role = h.resolver.SigningRole(r.Context(), doctype, name, user)
	}

	// Resolve the signer's signature image before the transaction opens.
	// With a single-connection pool the open transaction owns the only
	// connection, so reads outside it would block.
	sigImage := ""
	for _, pos := range req.Positions {
		if pos.Type == models.MarkerSignature {
			sigImage = h.resolver.SignatureImage(r.Context(), user)
			break
		}
	}

	// Serialize submissions for the same scope so interleaved
	// delete+insert pairs cannot mix partial batches.
	mu := h.submissionLock(doctype, name, user, role)
	mu.Lock()
	defer mu.Unlock()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("Failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save positions")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		DELETE FROM signature_position
		WHERE reference_doctype = $1 AND reference_name = $2 AND signed_by = $3 AND signing_role = $4
	`, doctype, name, user, role)
	if err != nil {
		slog.Error("Failed to clear prior placements", "error", err, "doctype", doctype, "name", name)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save positions")
		return
	}

	now := time.Now()
	for _, pos := range req.Positions {
		imageRef := sigImage
		if pos.Type == models.MarkerStamp {
			imageRef, err = stampImage(tx, pos.StampName)
			if err != nil {
				slog.Error("Failed to resolve stamp image", "error", err, "stamp", pos.StampName)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save positions")
				return
			}
		}

		_, err = tx.Exec(`
			INSERT INTO signature_position
				(id, reference_doctype, reference_name, signed_by, signing_role,
				 marker_type, x_pct, y_pct, page_no, width_px, height_px, image_ref, signed_on)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`, uuid.NewString(), doctype, name, user, role,
			pos.Type, pos.X, pos.Y, pos.PageNo, *pos.Width, *pos.Height, imageRef, now)
		if err != nil {
			slog.Error("Failed to insert placement", "error", err, "doctype", doctype, "name", name)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save positions")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("Failed to commit placements", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save positions")
		return
	}

	slog.Info("Positions saved", "doctype", doctype, "name", name,
		"signed_by", user, "signing_role", role, "count", len(req.Positions))

	middleware.JSONResponse(w, http.StatusOK, models.SavePositionsResponse{
		Status:      "Success",
		SigningRole: role,
	})
}

// queryPositions loads all placements for one document in render order.
func queryPositions(db *sql.DB, doctype, name string) ([]models.SignaturePosition, error) {
	rows, err := db.Query(`
		SELECT id, reference_doctype, reference_name, signed_by, signing_role,
		       marker_type, x_pct, y_pct, page_no, width_px, height_px, image_ref, signed_on
		FROM signature_position
		WHERE reference_doctype = $1 AND reference_name = $2
		ORDER BY page_no, signed_on, id
	`, doctype, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := []models.SignaturePosition{}
	for rows.Next() {
		var p models.SignaturePosition
		err := rows.Scan(&p.ID, &p.ReferenceDoctype, &p.ReferenceName, &p.SignedBy, &p.SigningRole,
			&p.MarkerType, &p.XPct, &p.YPct, &p.PageNo, &p.WidthPx, &p.HeightPx, &p.ImageRef, &p.SignedOn)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// GetUserAssets handles GET /assets
// Returns everything the signing UI needs for the acting user: their
// resolved signature image, the stamp catalog, and, when a document is
// named via query parameters, their signing role and the document's
// placements split into their own versus everyone else's.
func (h *PositionHandler) GetUserAssets(w http.ResponseWriter, r *http.Request) {
	user := middleware.ActingUser(r)
	if user == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User header required")
		return
	}

	signature := h.resolver.SignatureImage(r.Context(), user)

	rows, err := h.db.Query(`SELECT id, stamp_name, stamp_image FROM company_stamp ORDER BY stamp_name`)
	if err != nil {
		slog.Error("Failed to query stamps", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load assets")
		return
	}
	defer rows.Close()

	stamps := []models.CompanyStamp{}
	for rows.Next() {
		var s models.CompanyStamp
		if err := rows.Scan(&s.ID, &s.StampName, &s.StampImage); err != nil {
			slog.Error("Failed to scan stamp", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load assets")
			return
		}
		stamps = append(stamps, s)
	}
	if err := rows.Err(); err != nil {
		slog.Error("Failed to read stamps", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load assets")
		return
	}

	resp := models.UserAssetsResponse{
		Signature:      signature,
		Stamps:         stamps,
		SigningRole:    models.RoleOther,
		MyPositions:    []models.SignaturePosition{},
		OtherPositions: []models.SignaturePosition{},
	}

	doctype := r.URL.Query().Get("doctype")
	name := r.URL.Query().Get("name")
	if doctype != "" && name != "" {
		resp.SigningRole = h.resolver.SigningRole(r.Context(), doctype, name, user)

		positions, err := queryPositions(h.db, doctype, name)
		if err != nil {
			slog.Error("Failed to query positions", "error", err, "doctype", doctype, "name", name)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load assets")
			return
		}
		for _, p := range positions {
			if p.SignedBy == user {
				resp.MyPositions = append(resp.MyPositions, p)
			} else {
				resp.OtherPositions = append(resp.OtherPositions, p)
			}
		}
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
