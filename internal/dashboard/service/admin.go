package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	authmodels "dochub/internal/auth/models"
	userStore "dochub/internal/auth/store/user"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/audit"
	"dochub/pkg/requestcontext"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

const (
	healthOK       = "ok"
	healthDegraded = "degraded"
	healthTimeout  = 2 * time.Second

	defaultActivityLimit = 10
)

// Admin serves the administrator dashboard.
type Admin struct {
	base
	users    UserDirectory
	remover  UserRemover
	apps     ApplicationStore
	docs     DocumentStore
	activity ActivityLog
	checks   map[string]HealthCheck
}

func NewAdmin(users UserDirectory, remover UserRemover, apps ApplicationStore, docs DocumentStore, activity ActivityLog, checks map[string]HealthCheck, opts ...Option) (*Admin, error) {
	switch {
	case users == nil:
		return nil, errors.New("user directory is required")
	case remover == nil:
		return nil, errors.New("user remover is required")
	case apps == nil:
		return nil, errors.New("application store is required")
	case docs == nil:
		return nil, errors.New("document store is required")
	case activity == nil:
		return nil, errors.New("activity log is required")
	}
	return &Admin{
		base:     newBase(opts),
		users:    users,
		remover:  remover,
		apps:     apps,
		docs:     docs,
		activity: activity,
		checks:   maps.Clone(checks),
	}, nil
}

type AdminOverview struct {
	TotalCitizens     int
	ActiveOfficers    int
	TotalApplications int
	SystemHealth      string
	Dependencies      map[string]string
	RecentActivity    []audit.Event
}

// Overview gathers the counters, dependency health, and recent activity
// concurrently. A failing health check degrades SystemHealth; it does not
// fail the overview.
func (a *Admin) Overview(ctx context.Context) (*AdminOverview, error) {
	ctx, span := tracer.Start(ctx, "dashboard.admin.Overview")
	defer span.End()

	out := &AdminOverview{Dependencies: make(map[string]string, len(a.checks))}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := a.users.CountByRole(gctx, authmodels.RoleCitizen)
		if err != nil {
			return fmt.Errorf("count citizens: %w", err)
		}
		out.TotalCitizens = n
		return nil
	})
	g.Go(func() error {
		n, err := a.users.CountByRole(gctx, authmodels.RoleOfficer)
		if err != nil {
			return fmt.Errorf("count officers: %w", err)
		}
		out.ActiveOfficers = n
		return nil
	})
	g.Go(func() error {
		counts, err := a.apps.CountByStatus(gctx, id.UserID{})
		if err != nil {
			return fmt.Errorf("count applications: %w", err)
		}
		for _, n := range counts {
			out.TotalApplications += n
		}
		return nil
	})
	g.Go(func() error {
		events, err := a.activity.ListRecent(gctx, defaultActivityLimit)
		if err != nil {
			return fmt.Errorf("list activity: %w", err)
		}
		out.RecentActivity = events
		return nil
	})

	var mu sync.Mutex
	for name, check := range a.checks {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, healthTimeout)
			defer cancel()
			status := healthOK
			if err := check(cctx); err != nil {
				a.logger.WarnContext(ctx, "dependency unhealthy", "dependency", name, "error", err)
				status = healthDegraded
			}
			mu.Lock()
			out.Dependencies[name] = status
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build overview")
	}
	out.SystemHealth = healthOK
	for _, status := range out.Dependencies {
		if status != healthOK {
			out.SystemHealth = healthDegraded
		}
	}
	return out, nil
}

// UserQuery filters the users list.
type UserQuery struct {
	Role   string
	Search string
	Limit  int
}

func (a *Admin) Users(ctx context.Context, q UserQuery) ([]*authmodels.User, error) {
	filter := userStore.ListFilter{Search: q.Search, Limit: q.Limit}
	if role := strings.ToLower(strings.TrimSpace(q.Role)); role != "" && role != "all" {
		r, ok := authmodels.ParseRole(role)
		if !ok {
			return nil, dErrors.WithFields(dErrors.CodeValidation, "unknown role", map[string]string{"role": "unknown role"})
		}
		filter.Role = r
	}
	users, err := a.users.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	return users, nil
}

// DeleteUser removes an account after explicit confirmation, together with
// its sessions, applications, and documents.
func (a *Admin) DeleteUser(ctx context.Context, actorID, userID id.UserID, confirm bool) error {
	if err := requireConfirmation(ctx, confirm); err != nil {
		return err
	}
	if err := a.remover.DeleteUser(ctx, actorID, userID); err != nil {
		return err
	}
	apps, err := a.apps.DeleteByOwner(ctx, userID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user applications")
	}
	docs, err := a.docs.DeleteByOwner(ctx, userID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user documents")
	}
	a.logger.InfoContext(ctx, "user data removed",
		"user_id", userID.String(),
		"applications", apps,
		"documents", docs,
	)
	return nil
}

// RecentActivity lists the newest audit events.
func (a *Admin) RecentActivity(ctx context.Context, limit int) ([]audit.Event, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	events, err := a.activity.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list activity")
	}
	return events, nil
}

// BackupReceipt acknowledges a backup request.
type BackupReceipt struct {
	Reference   string
	RequestedAt time.Time
}

// Backup records a backup request. No data is copied.
func (a *Admin) Backup(ctx context.Context, actorID id.UserID) (*BackupReceipt, error) {
	now := requestcontext.Now(ctx)
	receipt := &BackupReceipt{
		Reference:   fmt.Sprintf("backup-%s-%s", now.UTC().Format("20060102T150405Z"), uuid.NewString()[:8]),
		RequestedAt: now,
	}
	a.logAudit(ctx, audit.EventBackupRequested,
		"user_id", actorID.String(),
		"subject", receipt.Reference,
		"actor_id", actorID.String(),
	)
	return receipt, nil
}
