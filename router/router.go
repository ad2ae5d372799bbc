// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/rmuchiri/docsign/cliparse"
	"github.com/rmuchiri/docsign/handlers"
	"github.com/rmuchiri/docsign/mailer"
	"github.com/rmuchiri/docsign/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, sender mailer.Sender) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	mappingHandler := handlers.NewMappingHandler(db, cfg)
	documentHandler := handlers.NewDocumentHandler(db, cfg)
	positionHandler := handlers.NewPositionHandler(db, cfg)
	signatureHandler := handlers.NewSignatureHandler(db, cfg)
	requestHandler := handlers.NewRequestHandler(db, cfg, sender)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Signatory Mapping administration
	mux.HandleFunc("PUT /mappings", middleware.WithLogging(mappingHandler.CreateMapping))
	mux.HandleFunc("GET /mappings/{doctype}", middleware.WithLogging(mappingHandler.GetMapping))

	// Documents and auto-fill
	mux.HandleFunc("POST /documents", middleware.WithLogging(documentHandler.CreateDocument))
	mux.HandleFunc("GET /documents/{doctype}/{name}", middleware.WithLogging(documentHandler.GetDocument))
	mux.HandleFunc("PUT /documents/{doctype}/{name}", middleware.WithLogging(documentHandler.UpdateDocument))
	mux.HandleFunc("GET /documents/{doctype}/{name}/overlays", middleware.WithLogging(documentHandler.GetOverlays))

	// Marker placement and the signing UI's asset bundle
	mux.HandleFunc("POST /documents/{doctype}/{name}/positions", middleware.WithLogging(positionHandler.SavePositions))
	mux.HandleFunc("GET /assets", middleware.WithLogging(positionHandler.GetUserAssets))

	// Signature assets
	mux.HandleFunc("POST /signatures/captures", middleware.WithLogging(signatureHandler.SaveCapture))
	mux.HandleFunc("POST /signatures/selections", middleware.WithLogging(signatureHandler.SaveSelection))
	mux.HandleFunc("GET /signatures", middleware.WithLogging(signatureHandler.ListMine))
	mux.HandleFunc("POST /stamps", middleware.WithLogging(signatureHandler.CreateStamp))
	mux.HandleFunc("GET /stamps", middleware.WithLogging(signatureHandler.ListStamps))
	mux.HandleFunc("PUT /employees/{user}/signature", middleware.WithLogging(signatureHandler.SetEmployee))
	mux.HandleFunc("GET /users/{user}/signature-image", middleware.WithLogging(signatureHandler.InlineSignatureImage))

	// Sign requests and emailed links
	mux.HandleFunc("POST /sign-requests", middleware.WithLogging(requestHandler.CreateSignRequest))
	mux.HandleFunc("GET /sign/{slug}", middleware.WithLogging(requestHandler.ResolveSignLink))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("docsign API v1"))
	})

	return mux
}
