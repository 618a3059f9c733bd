package models

import (
	"time"

	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
)

type SessionStatus string

const (
	SessionStatusActive  SessionStatus = "active"
	SessionStatusRevoked SessionStatus = "revoked"
)

// Session is the authenticated context the view router consults. Besides
// identity it carries the portal state that survives between requests.
type Session struct {
	ID          id.SessionID  `json:"id"`
	UserID      id.UserID     `json:"user_id"`
	Role        Role          `json:"role"`
	DisplayName string        `json:"display_name"`
	Status      SessionStatus `json:"status"`
	RememberMe  bool          `json:"remember_me"`
	Device      string        `json:"device,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	ExpiresAt   time.Time     `json:"expires_at"`
	RevokedAt   *time.Time    `json:"revoked_at,omitempty"`

	CurrentView       string           `json:"current_view"`
	SelectedService   string           `json:"selected_service,omitempty"`
	OpenApplicationID id.ApplicationID `json:"open_application_id"`
	Language          string           `json:"language,omitempty"`
}

// IsActive reports whether the session can authorize requests at now.
func (s *Session) IsActive(now time.Time) bool {
	return s.Status == SessionStatusActive && now.Before(s.ExpiresAt)
}

// CanRevoke returns an invalid-state error for sessions already revoked.
func (s *Session) CanRevoke() error {
	if s.Status == SessionStatusRevoked {
		return dErrors.New(dErrors.CodeInvalidState, "session already revoked")
	}
	return nil
}

func (s *Session) ApplyRevocation(now time.Time) {
	s.Status = SessionStatusRevoked
	s.RevokedAt = &now
	s.ClearDashboardState()
	s.CurrentView = "home"
}

// ClearDashboardState drops the selected service and the open detail record.
func (s *Session) ClearDashboardState() {
	s.SelectedService = ""
	s.OpenApplicationID = id.ApplicationID{}
}

// SessionSummary is the public view of a session.
type SessionSummary struct {
	SessionID         string    `json:"session_id"`
	UserID            string    `json:"user_id"`
	Role              Role      `json:"role"`
	DisplayName       string    `json:"display_name"`
	CurrentView       string    `json:"current_view"`
	SelectedService   string    `json:"selected_service,omitempty"`
	OpenApplicationID string    `json:"open_application_id,omitempty"`
	Language          string    `json:"language,omitempty"`
	Device            string    `json:"device,omitempty"`
	ExpiresAt         time.Time `json:"expires_at"`
}

func (s *Session) Summary() SessionSummary {
	out := SessionSummary{
		SessionID:       s.ID.String(),
		UserID:          s.UserID.String(),
		Role:            s.Role,
		DisplayName:     s.DisplayName,
		CurrentView:     s.CurrentView,
		SelectedService: s.SelectedService,
		Language:        s.Language,
		Device:          s.Device,
		ExpiresAt:       s.ExpiresAt,
	}
	if !s.OpenApplicationID.IsNil() {
		out.OpenApplicationID = s.OpenApplicationID.String()
	}
	return out
}
