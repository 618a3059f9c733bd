package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/httputil"
	"dochub/pkg/requestcontext"
)

// Principal is the authenticated caller resolved from a session token.
type Principal struct {
	UserID    id.UserID
	SessionID id.SessionID
	Role      string
}

// SessionValidator resolves a bearer token to an active session.
// Implementations return CodeUnauthorized for invalid, expired or revoked sessions.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*Principal, error)
}

func bearerToken(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

func withPrincipal(ctx context.Context, p *Principal) context.Context {
	ctx = requestcontext.WithUserID(ctx, p.UserID)
	ctx = requestcontext.WithSessionID(ctx, p.SessionID)
	return requestcontext.WithRole(ctx, p.Role)
}

// RequireAuth rejects requests without a valid session token.
func RequireAuth(validator SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := bearerToken(r)
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}

			principal, err := validator.ValidateSession(ctx, token)
			if err != nil {
				if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
					logger.WarnContext(ctx, "unauthorized access - invalid session",
						"error", err,
						"request_id", requestcontext.RequestID(ctx),
					)
				} else {
					logger.ErrorContext(ctx, "failed to validate session",
						"error", err,
						"request_id", requestcontext.RequestID(ctx),
					)
				}
				httputil.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withPrincipal(ctx, principal)))
		})
	}
}

// OptionalAuth attaches the principal when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(validator SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			principal, err := validator.ValidateSession(ctx, token)
			if err != nil {
				logger.DebugContext(ctx, "ignoring invalid optional session",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(withPrincipal(ctx, principal)))
		})
	}
}
