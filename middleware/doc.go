// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Acting User

The service has no session state. The authenticating gateway sets the X-User
header, and handlers read it once per request:

	user := middleware.ActingUser(r)
	if user == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User header required")
		return
	}

The identity is then passed explicitly into every resolver and store call;
nothing downstream reads ambient request state.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, user, remote) and completion (duration_ms).

# Response Helpers

	middleware.JSONResponse(w, http.StatusOK, payload)
	middleware.HTMLResponse(w, http.StatusOK, fragment)
	middleware.ErrorResponse(w, http.StatusBadRequest, "positions are required")

ErrorResponse wraps the message in a models.ErrorResponse with the standard
status text. HTMLResponse serves the overlay and signature-line fragments the
print engine embeds.

# CORS

CORS wraps the whole mux and handles preflight requests, allowing the X-User
header alongside the usual ones.
*/
package middleware
