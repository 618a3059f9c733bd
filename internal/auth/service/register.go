package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"dochub/internal/auth/form"
	"dochub/internal/auth/models"
	userStore "dochub/internal/auth/store/user"
	"dochub/internal/i18n"
	"dochub/internal/identity"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/email"
	"dochub/pkg/platform/audit"
	"dochub/pkg/platform/sentinel"
	"dochub/pkg/requestcontext"
)

// Register validates the form, enforces identifier uniqueness and stores
// the user. Conflicts come back on the offending field.
func (s *Service) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "auth.Register")
	defer span.End()

	lang := i18n.FromContext(ctx)
	if errs := form.ValidateRegistration(lang, reg); len(errs) > 0 {
		return nil, errs.Err(lang)
	}

	hash, err := s.hasher.Hash([]byte(reg.Password))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user := &models.User{
		ID:           id.UserID(uuid.New()),
		FullName:     strings.TrimSpace(reg.FullName),
		Email:        email.Normalize(reg.Email),
		Phone:        strings.TrimSpace(reg.Phone),
		Role:         reg.Role,
		PasswordHash: hash,
		Status:       models.UserStatusActive,
		CreatedAt:    requestcontext.Now(ctx),
	}
	if nid := strings.TrimSpace(reg.NationalID); nid != "" {
		user.NationalID = identity.Normalize(identity.MethodNationalID, nid)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if conflict := conflictFor(lang, err); conflict != nil {
			return nil, conflict
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.metrics.IncrementUsersRegistered(string(user.Role))
	s.logAudit(ctx, string(audit.EventUserRegistered),
		"user_id", user.ID.String(),
		"subject", email.Mask(user.Email),
		"role", string(user.Role),
	)
	return user, nil
}

func conflictFor(lang i18n.Language, err error) error {
	var field string
	var key i18n.Key
	switch {
	case errors.Is(err, userStore.ErrEmailTaken):
		field, key = form.FieldEmail, i18n.EmailTaken
	case errors.Is(err, userStore.ErrPhoneTaken):
		field, key = form.FieldPhone, i18n.PhoneTaken
	case errors.Is(err, userStore.ErrNationalIDTaken):
		field, key = form.FieldNationalID, i18n.NationalIDTaken
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "user already exists")
	default:
		return nil
	}
	msg := i18n.T(lang, key)
	return dErrors.WithFields(dErrors.CodeConflict, msg, map[string]string{field: msg})
}

// ForgotPassword answers with the same message whether or not the account
// exists. Only a known account produces an audit event.
func (s *Service) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (string, error) {
	ctx, span := tracer.Start(ctx, "auth.ForgotPassword")
	defer span.End()

	lang := i18n.FromContext(ctx)
	if errs := form.ValidateForgotPassword(lang, req); len(errs) > 0 {
		return "", errs.Err(lang)
	}

	user, err := s.users.FindByIdentifier(ctx, req.Method, identity.Normalize(req.Method, req.Identifier))
	switch {
	case err == nil:
		s.metrics.IncrementPasswordResets()
		s.logAudit(ctx, string(audit.EventPasswordResetRequested),
			"user_id", user.ID.String(),
			"method", string(req.Method),
		)
	case errors.Is(err, sentinel.ErrNotFound):
		s.logger.DebugContext(ctx, "password reset for unknown identifier", "method", string(req.Method))
	default:
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}
	return i18n.T(lang, i18n.ResetLinkSent), nil
}
