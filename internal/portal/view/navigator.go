package view

import (
	"context"
	"log/slog"

	"dochub/internal/auth/models"
	"dochub/internal/i18n"
	"dochub/internal/platform/metrics"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/audit"
	"dochub/pkg/requestcontext"
)

type Authorizer interface {
	Allow(ctx context.Context, in Input) (bool, error)
}

type SessionUpdater interface {
	UpdateSession(ctx context.Context, sessionID id.SessionID, mutate func(*models.Session)) (*models.Session, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Navigator moves a caller between views. The guard runs before any state
// changes.
type Navigator struct {
	guard          Authorizer
	sessions       SessionUpdater
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
}

type Option func(*Navigator)

func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) { n.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(n *Navigator) { n.metrics = m }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(n *Navigator) { n.auditPublisher = p }
}

func NewNavigator(guard Authorizer, sessions SessionUpdater, opts ...Option) *Navigator {
	n := &Navigator{guard: guard, sessions: sessions, logger: slog.Default()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// State is the caller's current position in the portal.
type State struct {
	View    View                   `json:"view"`
	Session *models.SessionSummary `json:"session,omitempty"`
}

// Current reports the view recorded on the session, or home for anonymous callers.
func (n *Navigator) Current(sess *models.Session) State {
	if sess == nil {
		return State{View: Home}
	}
	summary := sess.Summary()
	v, ok := Parse(sess.CurrentView)
	if !ok {
		v = Home
	}
	return State{View: v, Session: &summary}
}

// Check evaluates the guard without changing anything.
func (n *Navigator) Check(ctx context.Context, target View, sess *models.Session) error {
	allowed, err := n.guard.Allow(ctx, NewInput(target, sess, requestcontext.Now(ctx)))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to evaluate view guard")
	}
	if allowed {
		return nil
	}

	n.metrics.IncrementViewDenied(string(target))
	attrs := []any{"view", string(target), "event", string(audit.EventViewDenied), "log_type", "audit"}
	event := audit.Event{Action: string(audit.EventViewDenied), Subject: string(target)}
	if sess != nil {
		attrs = append(attrs, "user_id", sess.UserID.String(), "role", string(sess.Role))
		event.UserID = sess.UserID
		event.Role = string(sess.Role)
	}
	n.logger.WarnContext(ctx, string(audit.EventViewDenied), attrs...)
	if n.auditPublisher != nil {
		_ = n.auditPublisher.Emit(ctx, event)
	}

	if sess == nil {
		return dErrors.New(dErrors.CodeUnauthorized, i18n.TC(ctx, i18n.SessionRequired))
	}
	return dErrors.New(dErrors.CodeForbidden, i18n.TC(ctx, i18n.ViewForbidden))
}

// Navigate moves the caller to target. Leaving a dashboard clears its
// selected service and open detail record.
func (n *Navigator) Navigate(ctx context.Context, sess *models.Session, target View) (State, error) {
	if !target.Valid() {
		return State{}, dErrors.New(dErrors.CodeBadRequest, "unknown view")
	}
	if err := n.Check(ctx, target, sess); err != nil {
		return State{}, err
	}
	if sess == nil {
		return State{View: target}, nil
	}

	updated, err := n.sessions.UpdateSession(ctx, sess.ID, func(cur *models.Session) {
		if View(cur.CurrentView).IsDashboard() && View(cur.CurrentView) != target {
			cur.ClearDashboardState()
		}
		cur.CurrentView = string(target)
	})
	if err != nil {
		return State{}, err
	}
	return n.Current(updated), nil
}
