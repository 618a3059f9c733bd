package models

import (
	"strings"
	"time"

	"dochub/internal/identity"
	id "dochub/pkg/domain"
)

// Role is the account type a user registers and logs in as.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleOfficer Role = "officer"
	RoleAdmin   Role = "admin"
)

// Roles lists roles in display order.
var Roles = []Role{RoleCitizen, RoleOfficer, RoleAdmin}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	return r == RoleCitizen || r == RoleOfficer || r == RoleAdmin
}

// DefaultDisplayName is shown when a user has no stored full name.
func (r Role) DefaultDisplayName() string {
	switch r {
	case RoleOfficer:
		return "Government Officer"
	case RoleAdmin:
		return "Administrator"
	default:
		return "Citizen User"
	}
}

// RequiresNationalID is false only for administrators.
func (r Role) RequiresNationalID() bool {
	return r != RoleAdmin
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

type User struct {
	ID           id.UserID
	FullName     string
	Email        string
	Phone        string
	NationalID   string
	Role         Role
	PasswordHash string
	Status       UserStatus
	CreatedAt    time.Time
}

func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.FullName); name != "" {
		return name
	}
	return u.Role.DefaultDisplayName()
}

// Identifier returns the user's identifier for the given login method.
func (u *User) Identifier(m identity.Method) string {
	switch m {
	case identity.MethodEmail:
		return u.Email
	case identity.MethodPhone:
		return u.Phone
	case identity.MethodNationalID:
		return u.NationalID
	}
	return ""
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Credentials is a validated login form submission.
type Credentials struct {
	Method     identity.Method
	Identifier string
	Password   string
	Role       Role
	RememberMe bool
}

// AuthResult is the typed outcome of a successful login.
type AuthResult struct {
	Role        Role
	DisplayName string
	Token       string
	ExpiresAt   time.Time
	Session     *Session
}

// Registration is a registration form submission.
type Registration struct {
	FullName        string
	Email           string
	Phone           string
	NationalID      string
	Password        string
	ConfirmPassword string
	Role            Role
}

// ForgotPasswordRequest identifies an account by one method.
type ForgotPasswordRequest struct {
	Method     identity.Method
	Identifier string
}
