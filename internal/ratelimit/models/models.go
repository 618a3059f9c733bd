// Package models holds rate limit classes, limits and check results.
package models

import (
	"time"
)

// Class groups endpoints that share a per-IP budget.
type Class string

const (
	ClassLogin         Class = "login"
	ClassPasswordReset Class = "password_reset"
	ClassRegister      Class = "register"
)

// Limit allows Requests per sliding Window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// Result is the outcome of one check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds
}

// NewResult fills in RetryAfter for denied checks.
func NewResult(allowed bool, limit, remaining int, resetAt, now time.Time) *Result {
	r := &Result{Allowed: allowed, Limit: limit, Remaining: max(remaining, 0), ResetAt: resetAt}
	if !allowed {
		r.RetryAfter = max(int(resetAt.Sub(now).Round(time.Second).Seconds()), 1)
	}
	return r
}
