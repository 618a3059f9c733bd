package user

import (
	"fmt"
	"strings"

	"dochub/internal/auth/models"
	"dochub/pkg/platform/sentinel"
)

// Uniqueness violations. Each wraps sentinel.ErrConflict.
var (
	ErrEmailTaken      = fmt.Errorf("email already registered: %w", sentinel.ErrConflict)
	ErrPhoneTaken      = fmt.Errorf("phone already registered: %w", sentinel.ErrConflict)
	ErrNationalIDTaken = fmt.Errorf("national id already registered: %w", sentinel.ErrConflict)
)

// ListFilter narrows List. Zero values match everything.
type ListFilter struct {
	Role   models.Role
	Search string
	Limit  int
}

func (f ListFilter) matches(u *models.User) bool {
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return strings.Contains(strings.ToLower(u.FullName), q) ||
			strings.Contains(strings.ToLower(u.Email), q)
	}
	return true
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
