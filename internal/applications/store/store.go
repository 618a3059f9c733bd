// Package store persists applications in memory or PostgreSQL.
package store

import (
	"slices"
	"strings"

	"dochub/internal/applications/models"
)

func matches(f models.Filter, a *models.Application) bool {
	if !f.OwnerID.IsNil() && a.OwnerID != f.OwnerID {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, a.Status) {
		return false
	}
	if len(f.Services) > 0 && !slices.Contains(f.Services, a.Service) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return strings.Contains(strings.ToLower(a.Number), q) ||
			strings.Contains(strings.ToLower(a.Title), q)
	}
	return true
}

func clone(a *models.Application) *models.Application {
	cp := *a
	cp.RequiredDocuments = slices.Clone(a.RequiredDocuments)
	return &cp
}
