package service

import (
	"context"
	"errors"

	"dochub/internal/i18n"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/email"
	"dochub/pkg/platform/audit"
	"dochub/pkg/platform/sentinel"
)

// DeleteUser removes a user and every session they hold. An admin cannot
// delete their own account.
func (s *Service) DeleteUser(ctx context.Context, actorID, userID id.UserID) error {
	if userID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}
	if actorID == userID {
		return dErrors.New(dErrors.CodeInvalidState, i18n.TC(ctx, i18n.CannotDeleteSelf))
	}

	// Capture user before deletion to enrich audit events
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, i18n.TC(ctx, i18n.UserNotFound))
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to lookup user")
	}

	if err := s.sessions.DeleteSessionsByUser(ctx, userID); err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user sessions")
		}
	}

	auditAttrs := []any{
		"user_id", userID.String(),
		"subject", email.Mask(user.Email),
		"role", string(user.Role),
		"actor_id", actorID.String(),
	}

	s.logAudit(ctx, string(audit.EventSessionRevoked), append(auditAttrs, "reason", "user_deleted")...)

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, i18n.TC(ctx, i18n.UserNotFound))
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user")
	}

	s.logAudit(ctx, string(audit.EventUserDeleted), auditAttrs...)

	return nil
}
