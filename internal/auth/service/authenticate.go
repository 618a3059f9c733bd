package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"dochub/internal/auth/device"
	"dochub/internal/auth/models"
	"dochub/internal/auth/password"
	"dochub/internal/i18n"
	"dochub/internal/identity"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/audit"
	authmw "dochub/pkg/platform/middleware/auth"
	"dochub/pkg/platform/sentinel"
	"dochub/pkg/requestcontext"
)

// Authenticate checks credentials and opens a session. Unknown identifiers,
// wrong passwords, disabled accounts and a role other than the stored one
// all fail with the same unauthorized error.
func (s *Service) Authenticate(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	ctx, span := tracer.Start(ctx, "auth.Authenticate")
	defer span.End()
	span.SetAttributes(attribute.String("auth.method", string(creds.Method)), attribute.String("auth.role", string(creds.Role)))

	invalid := dErrors.New(dErrors.CodeUnauthorized, i18n.TC(ctx, i18n.InvalidCredentials))

	user, err := s.users.FindByIdentifier(ctx, creds.Method, identity.Normalize(creds.Method, creds.Identifier))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.hasher.DummyCompare([]byte(creds.Password))
			s.authFailure(ctx, "user_not_found", "method", string(creds.Method), "role", string(creds.Role))
			s.metrics.ObserveLogin(string(creds.Role), "invalid")
			return nil, invalid
		}
		s.metrics.ObserveLogin(string(creds.Role), "error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	if err := s.hasher.Compare(user.PasswordHash, []byte(creds.Password)); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.metrics.ObserveLogin(string(creds.Role), "error")
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
		}
		s.authFailure(ctx, "password_mismatch", "user_id", user.ID.String(), "role", string(creds.Role))
		s.metrics.ObserveLogin(string(creds.Role), "invalid")
		return nil, invalid
	}
	if !user.IsActive() {
		s.authFailure(ctx, "user_disabled", "user_id", user.ID.String(), "role", string(creds.Role))
		s.metrics.ObserveLogin(string(creds.Role), "invalid")
		return nil, invalid
	}
	if user.Role != creds.Role {
		s.authFailure(ctx, "role_mismatch", "user_id", user.ID.String(), "role", string(creds.Role))
		s.metrics.ObserveLogin(string(creds.Role), "invalid")
		return nil, invalid
	}

	result, err := s.openSession(ctx, user, creds.RememberMe)
	if err != nil {
		s.metrics.ObserveLogin(string(creds.Role), "error")
		return nil, err
	}
	s.metrics.ObserveLogin(string(user.Role), "success")
	s.logAudit(ctx, string(audit.EventLoginSucceeded),
		"user_id", user.ID.String(),
		"session_id", result.Session.ID.String(),
		"role", string(user.Role),
	)
	return result, nil
}

func (s *Service) openSession(ctx context.Context, user *models.User, rememberMe bool) (*models.AuthResult, error) {
	now := requestcontext.Now(ctx)
	session := &models.Session{
		ID:          id.SessionID(uuid.New()),
		UserID:      user.ID,
		Role:        user.Role,
		DisplayName: user.DisplayName(),
		Status:      models.SessionStatusActive,
		RememberMe:  rememberMe,
		Device:      device.DisplayName(requestcontext.UserAgent(ctx)),
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.sessionTTL(rememberMe)),
		// dashboards are named after roles
		CurrentView: string(user.Role),
		Language:    i18n.FromContext(ctx).String(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	token, err := s.tokens.GenerateSessionToken(user.ID, session.ID, string(user.Role), session.ExpiresAt)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue session token")
	}

	return &models.AuthResult{
		Role:        user.Role,
		DisplayName: session.DisplayName,
		Token:       token,
		ExpiresAt:   session.ExpiresAt,
		Session:     session,
	}, nil
}

// ValidateSession resolves a bearer token to an active session.
func (s *Service) ValidateSession(ctx context.Context, token string) (*authmw.Principal, error) {
	session, err := s.SessionForToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return &authmw.Principal{
		UserID:    session.UserID,
		SessionID: session.ID,
		Role:      string(session.Role),
	}, nil
}

// SessionForToken returns the active session behind token.
func (s *Service) SessionForToken(ctx context.Context, token string) (*models.Session, error) {
	claims, userID, sessionID, err := s.tokens.ParseIDs(token)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid session token")
	}
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if session.UserID != userID || string(session.Role) != claims.Role {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session does not match token")
	}
	if !session.IsActive(requestcontext.Now(ctx)) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session expired or revoked")
	}
	return session, nil
}
