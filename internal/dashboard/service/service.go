// Package service implements the citizen, officer, and admin dashboards on
// top of the application and document repositories.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"

	appmodels "dochub/internal/applications/models"
	authmodels "dochub/internal/auth/models"
	userStore "dochub/internal/auth/store/user"
	docmodels "dochub/internal/documents/models"
	"dochub/internal/i18n"
	"dochub/internal/platform/metrics"
	"dochub/pkg/attrs"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/audit"
	"dochub/pkg/platform/sentinel"
	"dochub/pkg/requestcontext"
)

var tracer = otel.Tracer("dochub/dashboard")

type ApplicationStore interface {
	Create(ctx context.Context, app *appmodels.Application) error
	FindByID(ctx context.Context, appID id.ApplicationID) (*appmodels.Application, error)
	List(ctx context.Context, filter appmodels.Filter) ([]*appmodels.Application, error)
	Update(ctx context.Context, appID id.ApplicationID, mutate func(*appmodels.Application) error) (*appmodels.Application, error)
	Delete(ctx context.Context, appID id.ApplicationID) error
	DeleteByOwner(ctx context.Context, ownerID id.UserID) (int, error)
	CountByStatus(ctx context.Context, ownerID id.UserID) (map[appmodels.Status]int, error)
}

type DocumentStore interface {
	Create(ctx context.Context, doc *docmodels.Document) error
	FindByID(ctx context.Context, docID id.DocumentID) (*docmodels.Document, error)
	ListByOwner(ctx context.Context, ownerID id.UserID) ([]*docmodels.Document, error)
	CountByOwner(ctx context.Context, ownerID id.UserID) (int, error)
	Delete(ctx context.Context, docID id.DocumentID) error
	DeleteByOwner(ctx context.Context, ownerID id.UserID) (int, error)
	DetachApplication(ctx context.Context, appID id.ApplicationID) error
}

// SessionUpdater persists dashboard-local state on the caller's session.
type SessionUpdater interface {
	UpdateSession(ctx context.Context, sessionID id.SessionID, mutate func(*authmodels.Session)) (*authmodels.Session, error)
}

type UserDirectory interface {
	List(ctx context.Context, filter userStore.ListFilter) ([]*authmodels.User, error)
	CountByRole(ctx context.Context, role authmodels.Role) (int, error)
}

// UserRemover deletes an account and its sessions.
type UserRemover interface {
	DeleteUser(ctx context.Context, actorID, userID id.UserID) error
}

type ActivityLog interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// base carries the ambient dependencies every dashboard shares.
type base struct {
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
}

type Option func(*base)

func WithLogger(logger *slog.Logger) Option {
	return func(b *base) {
		b.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(b *base) {
		b.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(b *base) {
		b.auditPublisher = publisher
	}
}

func newBase(opts []Option) base {
	b := base{logger: slog.Default()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) logAudit(ctx context.Context, event audit.AuditEvent, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(event), "log_type", "audit")
	b.logger.InfoContext(ctx, string(event), args...)
	if b.auditPublisher == nil {
		return
	}
	userID, _ := id.ParseUserID(attrs.ExtractString(attributes, "user_id"))
	_ = b.auditPublisher.Emit(ctx, audit.Event{
		UserID:  userID,
		Subject: attrs.ExtractString(attributes, "subject"),
		Action:  string(event),
		Reason:  attrs.ExtractString(attributes, "reason"),
		Role:    requestcontext.Role(ctx),
		ActorID: attrs.ExtractString(attributes, "actor_id"),
	})
}

// requireConfirmation guards destructive actions.
func requireConfirmation(ctx context.Context, confirm bool) error {
	if !confirm {
		return dErrors.New(dErrors.CodeConfirmationRequired, i18n.TC(ctx, i18n.ConfirmationNeeded))
	}
	return nil
}

// storeError translates repository failures. Missing records become a
// localized not-found, anything else an internal error.
func storeError(ctx context.Context, err error, notFound i18n.Key, op string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, i18n.TC(ctx, notFound))
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, op)
}
