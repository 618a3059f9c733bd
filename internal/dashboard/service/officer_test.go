package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmodels "dochub/internal/applications/models"
	appstore "dochub/internal/applications/store"
	"dochub/internal/catalog"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/requestcontext"
)

func seedApplication(t *testing.T, store *appstore.InMemoryStore, kind catalog.ServiceKind, status appmodels.Status, at time.Time) *appmodels.Application {
	t.Helper()
	svc, ok := catalog.Lookup(kind)
	require.True(t, ok)
	app := appmodels.New(id.UserID(uuid.New()), svc, at)
	app.Status = status
	require.NoError(t, store.Create(context.Background(), app))
	return app
}

func TestOfficer_Dashboard(t *testing.T) {
	store := appstore.NewInMemory()
	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	pendingCit := seedApplication(t, store, catalog.CitizenshipCertificate, appmodels.StatusPending, base)
	pendingBir := seedApplication(t, store, catalog.BirthCertificate, appmodels.StatusPending, base.Add(time.Hour))
	reviewing := seedApplication(t, store, catalog.MarriageRegistration, appmodels.StatusInProgress, base)
	approved := seedApplication(t, store, catalog.BirthCertificate, appmodels.StatusCompleted, base)
	rejected := seedApplication(t, store, catalog.BirthCertificate, appmodels.StatusRejected, base.Add(time.Minute))

	officer, err := NewOfficer(store)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("default tab is pending", func(t *testing.T) {
		dash, err := officer.Dashboard(ctx, OfficerQuery{})
		require.NoError(t, err)
		assert.Equal(t, TabPending, dash.Tab)
		assert.Equal(t, []id.ApplicationID{pendingBir.ID, pendingCit.ID}, appIDs(dash.Applications))
		assert.Equal(t, OfficerStats{Pending: 2, Reviewed: 1, Approved: 1, Rejected: 1}, dash.Stats)
	})

	t.Run("reviewed and completed tabs", func(t *testing.T) {
		dash, err := officer.Dashboard(ctx, OfficerQuery{Tab: TabReviewed})
		require.NoError(t, err)
		assert.Equal(t, []id.ApplicationID{reviewing.ID}, appIDs(dash.Applications))

		dash, err = officer.Dashboard(ctx, OfficerQuery{Tab: "Completed"})
		require.NoError(t, err)
		assert.Equal(t, []id.ApplicationID{rejected.ID, approved.ID}, appIDs(dash.Applications))
	})

	t.Run("department and search", func(t *testing.T) {
		dash, err := officer.Dashboard(ctx, OfficerQuery{Department: "citizenship"})
		require.NoError(t, err)
		assert.Equal(t, []id.ApplicationID{pendingCit.ID}, appIDs(dash.Applications))

		dash, err = officer.Dashboard(ctx, OfficerQuery{Department: "all", Search: pendingBir.Number})
		require.NoError(t, err)
		assert.Equal(t, []id.ApplicationID{pendingBir.ID}, appIDs(dash.Applications))
	})

	t.Run("unknown filters", func(t *testing.T) {
		_, err := officer.Dashboard(ctx, OfficerQuery{Tab: "archived"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		_, err = officer.Dashboard(ctx, OfficerQuery{Department: "tax"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestOfficer_Transition(t *testing.T) {
	store := appstore.NewInMemory()
	now := time.Date(2026, 7, 2, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	officerID := id.UserID(uuid.New())

	officer, err := NewOfficer(store)
	require.NoError(t, err)

	t.Run("review then approve", func(t *testing.T) {
		app := seedApplication(t, store, catalog.BirthCertificate, appmodels.StatusPending, now.Add(-time.Hour))

		got, err := officer.Transition(ctx, officerID, app.ID, appmodels.ActionReview, "")
		require.NoError(t, err)
		assert.Equal(t, appmodels.StatusInProgress, got.Status)
		assert.Equal(t, now, got.UpdatedAt)

		got, err = officer.Transition(ctx, officerID, app.ID, appmodels.ActionApprove, "")
		require.NoError(t, err)
		assert.Equal(t, appmodels.StatusCompleted, got.Status)
	})

	t.Run("reject stores the reason", func(t *testing.T) {
		app := seedApplication(t, store, catalog.MarriageRegistration, appmodels.StatusInProgress, now)
		got, err := officer.Transition(ctx, officerID, app.ID, appmodels.ActionReject, "witness missing")
		require.NoError(t, err)
		assert.Equal(t, appmodels.StatusRejected, got.Status)
		assert.Equal(t, "witness missing", got.Notes)
	})

	t.Run("moves outside the graph are invalid state", func(t *testing.T) {
		app := seedApplication(t, store, catalog.CitizenshipCertificate, appmodels.StatusPending, now)
		_, err := officer.Transition(ctx, officerID, app.ID, appmodels.ActionApprove, "")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))

		found, _ := store.FindByID(ctx, app.ID)
		assert.Equal(t, appmodels.StatusPending, found.Status)
	})

	t.Run("unknown application and action", func(t *testing.T) {
		_, err := officer.Transition(ctx, officerID, id.ApplicationID(uuid.New()), appmodels.ActionReview, "")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

		_, err = officer.Transition(ctx, officerID, id.ApplicationID(uuid.New()), appmodels.Action("archive"), "")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func appIDs(apps []*appmodels.Application) []id.ApplicationID {
	out := make([]id.ApplicationID, len(apps))
	for i, a := range apps {
		out[i] = a.ID
	}
	return out
}
