// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the document signing API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - MappingHandler: Signatory Mapping administration
  - DocumentHandler: Document records, auto-fill, print overlays
  - PositionHandler: Placed markers and the signing UI's asset bundle
  - SignatureHandler: Captures, selections, stamps, employee signatures
  - RequestHandler: Outbound sign requests and emailed links

Handlers are created via constructor functions that accept *sql.DB and Config:

	positionHandler := handlers.NewPositionHandler(db, cfg)

# Signing Flow

An admin configures a mapping per doctype, then documents pick up
attribution automatically as they are saved:

	PUT  /mappings                 → CreateMapping
	POST /documents                → CreateDocument (auto-fill on create)
	PUT  /documents/{doctype}/{name} → UpdateDocument (auto-fill on approval)

Signers place markers and the print engine fetches the overlay markup:

	POST /documents/{doctype}/{name}/positions → SavePositions
	GET  /documents/{doctype}/{name}/overlays  → GetOverlays
	GET  /assets                               → GetUserAssets

Saving positions replaces only the acting signer's markers for one
signing role; everyone else's markers on the document survive.

# Identity

There are no sessions. The upstream gateway authenticates and sets the
X-User header; handlers read it via middleware.ActingUser.

# Asset Resolution

The image placed for a Signature marker comes from a fixed waterfall
(employee digital signature, then default capture, then default
selection), implemented in the signatory package. Stamp markers resolve
against the shared company_stamp catalog.
*/
package handlers
