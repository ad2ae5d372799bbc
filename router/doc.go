// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the document signing API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, sender)

# Endpoints

Health:

	GET /health

Signatory Mapping administration:

	PUT /mappings           - Create or replace a doctype mapping
	GET /mappings/{doctype} - Get a doctype mapping

Documents:

	POST /documents                          - Create document (auto-fill)
	GET  /documents/{doctype}/{name}         - Get document
	PUT  /documents/{doctype}/{name}         - Update document (auto-fill)
	GET  /documents/{doctype}/{name}/overlays - Print overlay markup

Marker placement:

	POST /documents/{doctype}/{name}/positions - Replace the signer's markers
	GET  /assets                               - Signing UI asset bundle

Signature assets:

	POST /signatures/captures          - Save a drawn signature
	POST /signatures/selections        - Save an uploaded signature
	GET  /signatures                   - List the acting user's signatures
	POST /stamps                       - Create a company stamp
	GET  /stamps                       - List company stamps
	PUT  /employees/{user}/signature   - Set an employee digital signature
	GET  /users/{user}/signature-image - Inline signature markup

Sign requests:

	POST /sign-requests - Create a request and email the link
	GET  /sign/{slug}   - Resolve an emailed link (requires token)

# Handler Initialization

The router creates handler instances with dependency injection:

	mappingHandler := handlers.NewMappingHandler(db, cfg)
	documentHandler := handlers.NewDocumentHandler(db, cfg)
	positionHandler := handlers.NewPositionHandler(db, cfg)
	signatureHandler := handlers.NewSignatureHandler(db, cfg)
	requestHandler := handlers.NewRequestHandler(db, cfg, sender)

All handlers receive the database connection and configuration; the sign
request handler additionally receives the mail sender.
*/
package router
