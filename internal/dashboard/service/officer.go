package service

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	appmodels "dochub/internal/applications/models"
	"dochub/internal/catalog"
	"dochub/internal/i18n"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/audit"
	"dochub/pkg/requestcontext"
)

// Tab is an officer worklist tab.
type Tab string

const (
	TabPending   Tab = "pending"
	TabReviewed  Tab = "reviewed"
	TabCompleted Tab = "completed"
)

// statuses returns the application statuses a tab shows. Completed holds
// every decided application, approved or rejected.
func (t Tab) statuses() ([]appmodels.Status, bool) {
	switch t {
	case "", TabPending:
		return []appmodels.Status{appmodels.StatusPending}, true
	case TabReviewed:
		return []appmodels.Status{appmodels.StatusInProgress}, true
	case TabCompleted:
		return []appmodels.Status{appmodels.StatusCompleted, appmodels.StatusRejected}, true
	}
	return nil, false
}

// OfficerQuery filters the worklist. Department "all" or empty matches every
// service.
type OfficerQuery struct {
	Tab        Tab
	Department string
	Search     string
	Limit      int
}

type OfficerStats struct {
	Pending  int
	Reviewed int
	Approved int
	Rejected int
}

type OfficerDashboard struct {
	Stats        OfficerStats
	Tab          Tab
	Applications []*appmodels.Application
}

// Officer serves the officer worklist and review transitions.
type Officer struct {
	base
	apps ApplicationStore
}

func NewOfficer(apps ApplicationStore, opts ...Option) (*Officer, error) {
	if apps == nil {
		return nil, errors.New("application store is required")
	}
	return &Officer{base: newBase(opts), apps: apps}, nil
}

func (o *Officer) Dashboard(ctx context.Context, q OfficerQuery) (*OfficerDashboard, error) {
	ctx, span := tracer.Start(ctx, "dashboard.officer.Dashboard")
	defer span.End()

	tab := Tab(strings.ToLower(strings.TrimSpace(string(q.Tab))))
	statuses, ok := tab.statuses()
	if !ok {
		return nil, dErrors.WithFields(dErrors.CodeValidation, "unknown tab", map[string]string{"tab": "unknown tab"})
	}
	if tab == "" {
		tab = TabPending
	}
	filter := appmodels.Filter{Statuses: statuses, Search: q.Search, Limit: q.Limit}

	dept := strings.ToLower(strings.TrimSpace(q.Department))
	if dept != "" && dept != "all" {
		svc, ok := catalog.ForDepartment(catalog.Department(dept))
		if !ok {
			return nil, dErrors.WithFields(dErrors.CodeValidation, "unknown department", map[string]string{"department": "unknown department"})
		}
		filter.Services = []catalog.ServiceKind{svc.Kind}
	}

	apps, err := o.apps.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}
	stats, err := o.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &OfficerDashboard{Stats: stats, Tab: tab, Applications: apps}, nil
}

// Stats counts every application by review state.
func (o *Officer) Stats(ctx context.Context) (OfficerStats, error) {
	counts, err := o.apps.CountByStatus(ctx, id.UserID{})
	if err != nil {
		return OfficerStats{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count applications")
	}
	return OfficerStats{
		Pending:  counts[appmodels.StatusPending],
		Reviewed: counts[appmodels.StatusInProgress],
		Approved: counts[appmodels.StatusCompleted],
		Rejected: counts[appmodels.StatusRejected],
	}, nil
}

var transitionEvents = map[appmodels.Action]audit.AuditEvent{
	appmodels.ActionReview:  audit.EventApplicationReviewed,
	appmodels.ActionApprove: audit.EventApplicationApproved,
	appmodels.ActionReject:  audit.EventApplicationRejected,
}

// Transition applies an officer decision. Moves outside
// pending -> in-progress -> completed (or reject while open) are
// invalid-state errors and leave the application unchanged.
func (o *Officer) Transition(ctx context.Context, actorID id.UserID, appID id.ApplicationID, action appmodels.Action, reason string) (*appmodels.Application, error) {
	ctx, span := tracer.Start(ctx, "dashboard.officer.Transition", trace.WithAttributes(
		attribute.String("application.id", appID.String()),
		attribute.String("application.action", string(action)),
	))
	defer span.End()

	event, ok := transitionEvents[action]
	if !ok {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown action")
	}
	app, err := o.apps.Update(ctx, appID, func(a *appmodels.Application) error {
		return a.Apply(action, reason, requestcontext.Now(ctx))
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidState) {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidState, i18n.TC(ctx, i18n.InvalidTransition))
		}
		return nil, storeError(ctx, err, i18n.ApplicationNotFound, "failed to update application")
	}

	o.metrics.IncrementTransitions(string(app.Status))
	o.logAudit(ctx, event,
		"user_id", app.OwnerID.String(),
		"subject", app.Number,
		"actor_id", actorID.String(),
		"reason", app.Notes,
	)
	return app, nil
}
