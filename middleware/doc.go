// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Every request carries a request id, taken from X-Request-ID
or generated as a UUID. It is echoed in the response header and available
to handlers through RequestID(r.Context()).

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows GET, POST and OPTIONS with the actor headers X-User-ID and
X-User-Token.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusConflict, "session has ended")

	var req models.JoinSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Honours X-Forwarded-For and X-Real-IP. Used in request logs.
*/
package middleware
