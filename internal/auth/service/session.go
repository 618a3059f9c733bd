package service

import (
	"context"
	"errors"

	"dochub/internal/auth/models"
	sessionStore "dochub/internal/auth/store/session"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/audit"
	"dochub/pkg/platform/sentinel"
	"dochub/pkg/requestcontext"
)

// Logout revokes the session. Logging out twice is not an error.
func (s *Service) Logout(ctx context.Context, sessionID id.SessionID) error {
	if sessionID.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "session required")
	}
	err := s.sessions.RevokeSessionIfActive(ctx, sessionID, requestcontext.Now(ctx))
	switch {
	case err == nil:
	case errors.Is(err, sessionStore.ErrSessionRevoked):
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "session not found")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke session")
	}

	s.logAudit(ctx, string(audit.EventSessionRevoked),
		"user_id", requestcontext.UserID(ctx).String(),
		"session_id", sessionID.String(),
		"reason", "logout",
	)
	return nil
}

// Session returns an active session by id.
func (s *Service) Session(ctx context.Context, sessionID id.SessionID) (*models.Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if !session.IsActive(requestcontext.Now(ctx)) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session expired or revoked")
	}
	return session, nil
}

// UpdateSession applies mutate to an active session atomically.
func (s *Service) UpdateSession(ctx context.Context, sessionID id.SessionID, mutate func(*models.Session)) (*models.Session, error) {
	now := requestcontext.Now(ctx)
	session, err := s.sessions.Execute(ctx, sessionID,
		func(sess *models.Session) error {
			if !sess.IsActive(now) {
				return dErrors.New(dErrors.CodeUnauthorized, "session expired or revoked")
			}
			return nil
		},
		mutate,
	)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			return nil, err
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update session")
	}
	return session, nil
}

// SetLanguage records the caller's language choice on their session.
func (s *Service) SetLanguage(ctx context.Context, sessionID id.SessionID, lang string) error {
	_, err := s.UpdateSession(ctx, sessionID, func(sess *models.Session) {
		sess.Language = lang
	})
	return err
}
