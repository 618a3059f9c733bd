package audit

import (
	"context"
	"time"

	id "dochub/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers account lifecycle and record deletion.
	CategoryCompliance EventCategory = "compliance"
	// CategorySecurity covers authentication failures, revocations and abuse signals.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers routine activity such as submissions and uploads.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. It stays
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	UserID    id.UserID     `json:"user_id"`
	Subject   string        `json:"subject"`
	Action    string        `json:"action"`
	Reason    string        `json:"reason,omitempty"`
	Role      string        `json:"role,omitempty"`
	IP        string        `json:"ip,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	// ActorID is set when someone other than UserID performed the action,
	// for example an officer deciding on a citizen's application.
	ActorID string `json:"actor_id,omitempty"`
}

type AuditEvent string

const (
	EventUserRegistered         AuditEvent = "user_registered"
	EventUserDeleted            AuditEvent = "user_deleted"
	EventLoginSucceeded         AuditEvent = "login_succeeded"
	EventLoginFailed            AuditEvent = "login_failed"
	EventSessionRevoked         AuditEvent = "session_revoked"
	EventPasswordResetRequested AuditEvent = "password_reset_requested"
	EventRateLimitExceeded      AuditEvent = "rate_limit_exceeded"
	EventViewDenied             AuditEvent = "view_denied"

	EventApplicationCreated  AuditEvent = "application_created"
	EventApplicationUpdated  AuditEvent = "application_updated"
	EventApplicationDeleted  AuditEvent = "application_deleted"
	EventApplicationReviewed AuditEvent = "application_review_started"
	EventApplicationApproved AuditEvent = "application_approved"
	EventApplicationRejected AuditEvent = "application_rejected"

	EventDocumentUploaded AuditEvent = "document_uploaded"
	EventDocumentDeleted  AuditEvent = "document_deleted"

	EventBackupRequested AuditEvent = "backup_requested"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventUserRegistered:      CategoryCompliance,
	EventUserDeleted:         CategoryCompliance,
	EventApplicationDeleted:  CategoryCompliance,
	EventApplicationApproved: CategoryCompliance,
	EventApplicationRejected: CategoryCompliance,
	EventDocumentDeleted:     CategoryCompliance,
	EventBackupRequested:     CategoryCompliance,

	EventLoginFailed:            CategorySecurity,
	EventSessionRevoked:         CategorySecurity,
	EventPasswordResetRequested: CategorySecurity,
	EventRateLimitExceeded:      CategorySecurity,
	EventViewDenied:             CategorySecurity,
}

// Category returns the category for this event. Unknown events are operations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events and serves the most recent ones.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Sink receives every event drained by the worker.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
