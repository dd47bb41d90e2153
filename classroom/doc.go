// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package classroom implements the classroom use cases on top of the stores.

A Service composes the identity, registry, roster, ledger and votes
packages. It holds no state beyond the database pool, so one Service can be
shared by every request.

	svc := classroom.NewService(db)
	session, err := svc.CreateSession(ctx, "Ms Lee", "Algebra")

# Acting User

Every operation that acts on behalf of a user takes the user id as an
explicit argument. Authenticating that id is the caller's job; the HTTP
layer does it with HMAC user tokens.

# Rules

  - A host may have at most three draft or active sessions.
  - Ended sessions accept no joins and no questions.
  - Only roster members may ask questions; each may have three pending.
  - Liking is create-or-noop; the like counter always equals the vote rows.
  - Start, end and answer are host only.

The host cap and the pending cap are check-then-act. Concurrent requests
from the same user can exceed them briefly.

Failures are the sentinel errors in package models, matched with
errors.Is.
*/
package classroom
