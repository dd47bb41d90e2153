// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides join code generation and acting-user tokens.

# Join Codes

Join codes are short random strings that identify a session:

	code, err := auth.GenerateJoinCode(6) // e.g. "K3Q9ZD"

Characters are drawn uniformly from A-Z and 0-9 with crypto/rand. Codes
entered by users are canonicalised with NormalizeCode (trimmed, uppercased)
before lookup. Uniqueness is enforced by the sessions table, not here.

# User Tokens

User tokens use HMAC-SHA256 to bind a user id to the server secret:

	token := auth.GenerateUserToken(userID, salt)
	err := auth.ValidateUserToken(userID, token, salt)

The token is URL-safe base64 encoded without padding. Since it's deterministic,
the same user id and salt always produce the same token, so nothing is stored.
Clients send it as X-User-Token next to X-User-ID.
*/
package auth
