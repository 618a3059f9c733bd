// Package models defines citizen service applications and their review
// lifecycle.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"dochub/internal/catalog"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
)

var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusRejected}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Open reports whether the application still awaits a decision.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusInProgress
}

// CompletionWindow is added to the submission time for the estimate.
const CompletionWindow = 14 * 24 * time.Hour

const MaxTitleLen = 200

// Application is one citizen request for a catalog service.
type Application struct {
	ID                  id.ApplicationID
	Number              string
	OwnerID             id.UserID
	Service             catalog.ServiceKind
	Title               string
	Status              Status
	SubmittedAt         time.Time
	EstimatedCompletion time.Time
	RequiredDocuments   []string
	Notes               string
	UpdatedAt           time.Time
}

// New builds a pending application for svc with the service's document
// checklist.
func New(ownerID id.UserID, svc catalog.Service, now time.Time) *Application {
	appID := id.ApplicationID(uuid.New())
	return &Application{
		ID:                  appID,
		Number:              Number(svc.NumberPrefix, now, appID),
		OwnerID:             ownerID,
		Service:             svc.Kind,
		Title:               svc.Name.EN,
		Status:              StatusPending,
		SubmittedAt:         now,
		EstimatedCompletion: now.Add(CompletionWindow),
		RequiredDocuments:   append([]string(nil), svc.RequiredDocuments...),
		UpdatedAt:           now,
	}
}

// Number renders a human-readable application number such as CIT-2026-3F9A1C.
func Number(prefix string, now time.Time, appID id.ApplicationID) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.UUID(appID).String(), "-", "")[:6])
	return fmt.Sprintf("%s-%d-%s", prefix, now.Year(), suffix)
}

// Rename sets a new title. A blank or unchanged title is a no-op and
// reports false.
func (a *Application) Rename(title string, now time.Time) (bool, error) {
	title = strings.TrimSpace(title)
	if title == "" || title == a.Title {
		return false, nil
	}
	if !govalidator.StringLength(title, "1", strconv.Itoa(MaxTitleLen)) {
		return false, dErrors.New(dErrors.CodeValidation, "title too long")
	}
	a.Title = title
	a.UpdatedAt = now
	return true, nil
}

// Action is an officer decision.
type Action string

const (
	ActionReview  Action = "review"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

func ParseAction(s string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case ActionReview, ActionApprove, ActionReject:
		return a, true
	}
	return "", false
}

// Target returns the status an action leads to.
func (a Action) Target() Status {
	switch a {
	case ActionReview:
		return StatusInProgress
	case ActionApprove:
		return StatusCompleted
	default:
		return StatusRejected
	}
}

// Apply moves the application along the review graph:
// pending -> in-progress -> completed, with reject allowed from either
// open status. Anything else is an invalid-state error.
func (a *Application) Apply(action Action, reason string, now time.Time) error {
	allowed := false
	switch action {
	case ActionReview:
		allowed = a.Status == StatusPending
	case ActionApprove:
		allowed = a.Status == StatusInProgress
	case ActionReject:
		allowed = a.Status.Open()
	}
	if !allowed {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("cannot %s an application that is %s", action, a.Status))
	}
	a.Status = action.Target()
	if action == ActionReject {
		a.Notes = strings.TrimSpace(reason)
	}
	a.UpdatedAt = now
	return nil
}

// Filter narrows listings. Zero values match everything.
type Filter struct {
	OwnerID  id.UserID
	Statuses []Status
	Services []catalog.ServiceKind
	Search   string
	Limit    int
}
