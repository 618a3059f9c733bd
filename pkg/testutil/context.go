package testutil

import (
	"net/http"

	id "dochub/pkg/domain"
	"dochub/pkg/requestcontext"
)

// WithAuth puts an authenticated user, session and role on the request context,
// as the session middleware would.
func WithAuth(req *http.Request, userID id.UserID, sessionID id.SessionID, role string) *http.Request {
	ctx := req.Context()
	ctx = requestcontext.WithUserID(ctx, userID)
	ctx = requestcontext.WithSessionID(ctx, sessionID)
	ctx = requestcontext.WithRole(ctx, role)
	return req.WithContext(ctx)
}
