// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/classengage/auth"
)

const (
	userIDHeader    = "X-User-ID"
	userTokenHeader = "X-User-Token"
)

// actorID returns the acting user from the X-User-ID and X-User-Token
// headers. The token must be the one issued to that user at create or join.
func actorID(r *http.Request, salt string) (int64, error) {
	userID, err := auth.ParseUserID(r.Header.Get(userIDHeader))
	if err != nil {
		return 0, err
	}
	if err := auth.ValidateUserToken(userID, r.Header.Get(userTokenHeader), salt); err != nil {
		return 0, err
	}
	return userID, nil
}

// viewerID is actorID for endpoints readable without identifying. It
// returns 0 when no X-User-ID header is sent.
func viewerID(r *http.Request, salt string) (int64, error) {
	if r.Header.Get(userIDHeader) == "" {
		return 0, nil
	}
	return actorID(r, salt)
}
