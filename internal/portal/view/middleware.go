package view

import (
	"context"
	"log/slog"
	"net/http"

	"dochub/internal/auth/models"
	id "dochub/pkg/domain"
	"dochub/pkg/platform/httputil"
	"dochub/pkg/requestcontext"
)

// SessionLoader returns the active session for an id.
type SessionLoader interface {
	Session(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
}

type sessionKey struct{}

// WithSession stores the caller's session in ctx.
func WithSession(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFrom returns the session stored by RequireView, or nil.
func SessionFrom(ctx context.Context) *models.Session {
	sess, _ := ctx.Value(sessionKey{}).(*models.Session)
	return sess
}

// RequireView loads the caller's session and lets the request through only
// when the guard allows target. It must run after auth.RequireAuth.
func (n *Navigator) RequireView(sessions SessionLoader, target View, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			var sess *models.Session
			if sessionID := requestcontext.SessionID(ctx); !sessionID.IsNil() {
				loaded, err := sessions.Session(ctx, sessionID)
				if err != nil {
					logger.WarnContext(ctx, "failed to load session for view",
						"view", string(target),
						"error", err,
						"request_id", requestcontext.RequestID(ctx),
					)
					httputil.WriteError(w, err)
					return
				}
				sess = loaded
			}
			if err := n.Check(ctx, target, sess); err != nil {
				httputil.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(ctx, sess)))
		})
	}
}
