// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rmuchiri/docsign/auth"
	"github.com/rmuchiri/docsign/cliparse"
	"github.com/rmuchiri/docsign/middleware"
	"github.com/rmuchiri/docsign/models"
	"github.com/rmuchiri/docsign/overlay"
	"github.com/rmuchiri/docsign/signatory"
)

// SignatureHandler manages the signature assets themselves: drawn
// captures, uploaded selections, the shared stamp catalog, and the
// employee digital signature record.
type SignatureHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	resolver *signatory.Resolver
}

// NewSignatureHandler creates a new signature asset handler
func NewSignatureHandler(db *sql.DB, cfg cliparse.Config) *SignatureHandler {
	return &SignatureHandler{db: db, cfg: cfg, resolver: signatory.NewResolver(db)}
}

// saveUserSignature inserts one signature row into table (signature_capture
// or signature_selection) and, when it is flagged default, unflags every
// other row of the same kind for the user. The two kinds keep independent
// default flags.
func (h *SignatureHandler) saveUserSignature(w http.ResponseWriter, r *http.Request, table string) {
	user := middleware.ActingUser(r)
	if user == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User header required")
		return
	}

	var req models.SaveSignatureRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.SignatureImage == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "signature_image is required")
		return
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("Failed to generate signature ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save signature")
		return
	}

	isDefault := 0
	if req.IsDefault {
		isDefault = 1
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("Failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save signature")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO `+table+` (id, user_id, signature_image, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, user, req.SignatureImage, isDefault, time.Now())
	if err != nil {
		slog.Error("Failed to insert signature", "error", err, "table", table, "user", user)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save signature")
		return
	}

	if req.IsDefault {
		_, err = tx.Exec(`
			UPDATE `+table+` SET is_default = 0
			WHERE user_id = $1 AND id != $2
		`, user, id)
		if err != nil {
			slog.Error("Failed to unflag prior defaults", "error", err, "table", table, "user", user)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save signature")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("Failed to commit signature", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save signature")
		return
	}

	slog.Info("Signature saved", "table", table, "user", user,
		"default", req.IsDefault, "size", humanize.Bytes(uint64(len(req.SignatureImage))))

	middleware.JSONResponse(w, http.StatusCreated, models.SaveSignatureResponse{SignatureID: id})
}

// SaveCapture handles POST /signatures/captures
func (h *SignatureHandler) SaveCapture(w http.ResponseWriter, r *http.Request) {
	h.saveUserSignature(w, r, "signature_capture")
}

// SaveSelection handles POST /signatures/selections
func (h *SignatureHandler) SaveSelection(w http.ResponseWriter, r *http.Request) {
	h.saveUserSignature(w, r, "signature_selection")
}

// ListMine handles GET /signatures
// Returns the acting user's captures and selections, newest first.
func (h *SignatureHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := middleware.ActingUser(r)
	if user == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User header required")
		return
	}

	captures, err := h.listSignatures("signature_capture", user)
	if err != nil {
		slog.Error("Failed to list captures", "error", err, "user", user)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list signatures")
		return
	}
	selections, err := h.listSignatures("signature_selection", user)
	if err != nil {
		slog.Error("Failed to list selections", "error", err, "user", user)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list signatures")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"captures":   captures,
		"selections": selections,
	})
}

func (h *SignatureHandler) listSignatures(table, user string) ([]models.SignatureCapture, error) {
	rows, err := h.db.Query(`
		SELECT id, user_id, signature_image, is_default, created_at
		FROM `+table+`
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`, user)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sigs := []models.SignatureCapture{}
	for rows.Next() {
		var s models.SignatureCapture
		var isDefault int
		if err := rows.Scan(&s.ID, &s.UserID, &s.SignatureImage, &isDefault, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.IsDefault = isDefault != 0
		sigs = append(sigs, s)
	}
	return sigs, rows.Err()
}

// SetEmployee handles PUT /employees/{user}/signature
// Upserts the employee record that sits at the top of the signature
// image waterfall.
func (h *SignatureHandler) SetEmployee(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "User is required")
		return
	}

	var req models.SetEmployeeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO employee (user_id, email, digital_signature)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET email = excluded.email, digital_signature = excluded.digital_signature
	`, userID, req.Email, req.DigitalSignature)
	if err != nil {
		slog.Error("Failed to upsert employee", "error", err, "user", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save employee")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"user_id": userID})
}

// CreateStamp handles POST /stamps
func (h *SignatureHandler) CreateStamp(w http.ResponseWriter, r *http.Request) {
	user := middleware.ActingUser(r)
	if user == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User header required")
		return
	}

	var req models.CreateStampRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.StampName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "stamp_name is required")
		return
	}

	var exists int
	err := h.db.QueryRow(`SELECT COUNT(*) FROM company_stamp WHERE stamp_name = $1`, req.StampName).Scan(&exists)
	if err != nil {
		slog.Error("Failed to check stamp existence", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create stamp")
		return
	}
	if exists > 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Stamp already exists: "+req.StampName)
		return
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("Failed to generate stamp ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create stamp")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO company_stamp (id, stamp_name, stamp_image, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, req.StampName, req.StampImage, time.Now())
	if err != nil {
		slog.Error("Failed to insert stamp", "error", err, "stamp", req.StampName)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create stamp")
		return
	}

	slog.Info("Stamp created", "stamp", req.StampName, "by", user,
		"size", humanize.Bytes(uint64(len(req.StampImage))))

	middleware.JSONResponse(w, http.StatusCreated, models.CompanyStamp{
		ID: id, StampName: req.StampName, StampImage: req.StampImage,
	})
}

// ListStamps handles GET /stamps
func (h *SignatureHandler) ListStamps(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`SELECT id, stamp_name, stamp_image FROM company_stamp ORDER BY stamp_name`)
	if err != nil {
		slog.Error("Failed to query stamps", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list stamps")
		return
	}
	defer rows.Close()

	stamps := []models.CompanyStamp{}
	for rows.Next() {
		var s models.CompanyStamp
		if err := rows.Scan(&s.ID, &s.StampName, &s.StampImage); err != nil {
			slog.Error("Failed to scan stamp", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list stamps")
			return
		}
		stamps = append(stamps, s)
	}
	if err := rows.Err(); err != nil {
		slog.Error("Failed to read stamps", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list stamps")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stamps)
}

// InlineSignatureImage handles GET /users/{user}/signature-image
// Returns a ready-to-embed <img> fragment for the user's resolved
// signature, or a blank signature-line placeholder when they have none.
func (h *SignatureHandler) InlineSignatureImage(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "User is required")
		return
	}

	img := h.resolver.SignatureImage(r.Context(), userID)
	width := r.URL.Query().Get("width")
	height := r.URL.Query().Get("height")

	middleware.HTMLResponse(w, http.StatusOK, overlay.InlineSignature(img, h.cfg.BaseURL, width, height))
}
