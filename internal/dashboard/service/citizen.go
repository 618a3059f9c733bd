package service

import (
	"context"
	"errors"
	"strings"

	appmodels "dochub/internal/applications/models"
	authmodels "dochub/internal/auth/models"
	"dochub/internal/catalog"
	docmodels "dochub/internal/documents/models"
	"dochub/internal/i18n"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/audit"
	"dochub/pkg/requestcontext"
)

// Citizen serves the citizen dashboard. Every operation is scoped to the
// session owner; records belonging to someone else read as not found.
type Citizen struct {
	base
	apps     ApplicationStore
	docs     DocumentStore
	sessions SessionUpdater
}

func NewCitizen(apps ApplicationStore, docs DocumentStore, sessions SessionUpdater, opts ...Option) (*Citizen, error) {
	switch {
	case apps == nil:
		return nil, errors.New("application store is required")
	case docs == nil:
		return nil, errors.New("document store is required")
	case sessions == nil:
		return nil, errors.New("session updater is required")
	}
	return &Citizen{
		base:     newBase(opts),
		apps:     apps,
		docs:     docs,
		sessions: sessions,
	}, nil
}

// CitizenStats are the four overview counters.
type CitizenStats struct {
	Total      int
	InProgress int
	Completed  int
	Documents  int
}

type CitizenDashboard struct {
	Stats           CitizenStats
	Services        []catalog.View
	SelectedService string
	Applications    []*appmodels.Application
	Documents       []*docmodels.Document
	OpenApplication *appmodels.Application
}

// Dashboard assembles the overview for the session owner in the request
// language.
func (c *Citizen) Dashboard(ctx context.Context, sess *authmodels.Session) (*CitizenDashboard, error) {
	ctx, span := tracer.Start(ctx, "dashboard.citizen.Dashboard")
	defer span.End()

	apps, err := c.apps.List(ctx, appmodels.Filter{OwnerID: sess.UserID})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}
	docs, err := c.docs.ListByOwner(ctx, sess.UserID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list documents")
	}

	out := &CitizenDashboard{
		Stats:           statsFor(apps, len(docs)),
		Services:        catalog.Localized(i18n.FromContext(ctx)),
		SelectedService: sess.SelectedService,
		Applications:    apps,
		Documents:       docs,
	}
	for _, app := range apps {
		if app.ID == sess.OpenApplicationID {
			out.OpenApplication = app
		}
	}
	return out, nil
}

func statsFor(apps []*appmodels.Application, documents int) CitizenStats {
	stats := CitizenStats{Total: len(apps), Documents: documents}
	for _, app := range apps {
		switch app.Status {
		case appmodels.StatusPending, appmodels.StatusInProgress:
			stats.InProgress++
		case appmodels.StatusCompleted:
			stats.Completed++
		}
	}
	return stats
}

// Stats reports the overview counters without loading the full lists.
func (c *Citizen) Stats(ctx context.Context, ownerID id.UserID) (CitizenStats, error) {
	counts, err := c.apps.CountByStatus(ctx, ownerID)
	if err != nil {
		return CitizenStats{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count applications")
	}
	docs, err := c.docs.CountByOwner(ctx, ownerID)
	if err != nil {
		return CitizenStats{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count documents")
	}
	stats := CitizenStats{
		InProgress: counts[appmodels.StatusPending] + counts[appmodels.StatusInProgress],
		Completed:  counts[appmodels.StatusCompleted],
		Documents:  docs,
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// SelectService records the chosen service on the session. An empty kind
// clears the selection.
func (c *Citizen) SelectService(ctx context.Context, sess *authmodels.Session, kind string) (*authmodels.Session, error) {
	kind = strings.TrimSpace(kind)
	if kind != "" {
		if _, ok := catalog.Lookup(catalog.ServiceKind(kind)); !ok {
			msg := i18n.TC(ctx, i18n.UnknownService)
			return nil, dErrors.WithFields(dErrors.CodeValidation, msg, map[string]string{"service": msg})
		}
	}
	return c.sessions.UpdateSession(ctx, sess.ID, func(s *authmodels.Session) {
		s.SelectedService = kind
	})
}

// CreateApplication files a new application for kind, or for the session's
// selected service when kind is empty. With neither, nothing is created.
func (c *Citizen) CreateApplication(ctx context.Context, sess *authmodels.Session, kind string) (*appmodels.Application, error) {
	ctx, span := tracer.Start(ctx, "dashboard.citizen.CreateApplication")
	defer span.End()

	kind = strings.TrimSpace(kind)
	if kind == "" {
		kind = sess.SelectedService
	}
	if kind == "" {
		msg := i18n.TC(ctx, i18n.ServiceSelection)
		return nil, dErrors.WithFields(dErrors.CodeValidation, msg, map[string]string{"service": msg})
	}
	svc, ok := catalog.Lookup(catalog.ServiceKind(kind))
	if !ok {
		msg := i18n.TC(ctx, i18n.UnknownService)
		return nil, dErrors.WithFields(dErrors.CodeValidation, msg, map[string]string{"service": msg})
	}

	app := appmodels.New(sess.UserID, svc, requestcontext.Now(ctx))
	if err := c.apps.Create(ctx, app); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create application")
	}
	c.metrics.IncrementApplicationsCreated(string(svc.Kind))
	c.logAudit(ctx, audit.EventApplicationCreated,
		"user_id", sess.UserID.String(),
		"subject", app.Number,
		"service", string(svc.Kind),
	)
	return app, nil
}

// ownedApplication loads appID and checks it belongs to the session owner.
func (c *Citizen) ownedApplication(ctx context.Context, sess *authmodels.Session, appID id.ApplicationID) (*appmodels.Application, error) {
	app, err := c.apps.FindByID(ctx, appID)
	if err != nil {
		return nil, storeError(ctx, err, i18n.ApplicationNotFound, "failed to load application")
	}
	if app.OwnerID != sess.UserID {
		return nil, dErrors.New(dErrors.CodeNotFound, i18n.TC(ctx, i18n.ApplicationNotFound))
	}
	return app, nil
}

// OpenApplication returns the application and marks it as the session's open
// detail record.
func (c *Citizen) OpenApplication(ctx context.Context, sess *authmodels.Session, appID id.ApplicationID) (*appmodels.Application, error) {
	app, err := c.ownedApplication(ctx, sess, appID)
	if err != nil {
		return nil, err
	}
	if _, err := c.sessions.UpdateSession(ctx, sess.ID, func(s *authmodels.Session) {
		s.OpenApplicationID = app.ID
	}); err != nil {
		return nil, err
	}
	return app, nil
}

// RenameApplication edits the title. A blank or unchanged title reports
// changed=false and leaves the record as is.
func (c *Citizen) RenameApplication(ctx context.Context, sess *authmodels.Session, appID id.ApplicationID, title string) (*appmodels.Application, bool, error) {
	if _, err := c.ownedApplication(ctx, sess, appID); err != nil {
		return nil, false, err
	}

	changed := false
	app, err := c.apps.Update(ctx, appID, func(a *appmodels.Application) error {
		ok, err := a.Rename(title, requestcontext.Now(ctx))
		changed = ok
		return err
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			msg := i18n.TC(ctx, i18n.TitleTooLong)
			return nil, false, dErrors.WithFields(dErrors.CodeValidation, msg, map[string]string{"title": msg})
		}
		return nil, false, storeError(ctx, err, i18n.ApplicationNotFound, "failed to update application")
	}
	if changed {
		c.logAudit(ctx, audit.EventApplicationUpdated,
			"user_id", sess.UserID.String(),
			"subject", app.Number,
		)
	}
	return app, changed, nil
}

// DeleteApplication removes an application after explicit confirmation. If
// it was the open detail record, the detail view is closed. Documents
// attached to it are kept and detached.
func (c *Citizen) DeleteApplication(ctx context.Context, sess *authmodels.Session, appID id.ApplicationID, confirm bool) error {
	if err := requireConfirmation(ctx, confirm); err != nil {
		return err
	}
	app, err := c.ownedApplication(ctx, sess, appID)
	if err != nil {
		return err
	}
	if err := c.apps.Delete(ctx, appID); err != nil {
		return storeError(ctx, err, i18n.ApplicationNotFound, "failed to delete application")
	}
	if err := c.docs.DetachApplication(ctx, appID); err != nil {
		c.logger.WarnContext(ctx, "failed to detach documents", "application_id", appID.String(), "error", err)
	}
	if sess.OpenApplicationID == appID {
		if _, err := c.sessions.UpdateSession(ctx, sess.ID, func(s *authmodels.Session) {
			if s.OpenApplicationID == appID {
				s.OpenApplicationID = id.ApplicationID{}
			}
		}); err != nil {
			return err
		}
	}
	c.logAudit(ctx, audit.EventApplicationDeleted,
		"user_id", sess.UserID.String(),
		"subject", app.Number,
	)
	return nil
}

// UploadDocuments records one document per upload. Only metadata is kept.
// A non-nil appID attaches the documents to one of the owner's applications.
func (c *Citizen) UploadDocuments(ctx context.Context, sess *authmodels.Session, appID id.ApplicationID, uploads []docmodels.Upload) ([]*docmodels.Document, error) {
	ctx, span := tracer.Start(ctx, "dashboard.citizen.UploadDocuments")
	defer span.End()

	if len(uploads) == 0 {
		msg := i18n.TC(ctx, i18n.NoFiles)
		return nil, dErrors.WithFields(dErrors.CodeValidation, msg, map[string]string{"files": msg})
	}
	if !appID.IsNil() {
		if _, err := c.ownedApplication(ctx, sess, appID); err != nil {
			return nil, err
		}
	}

	now := requestcontext.Now(ctx)
	out := make([]*docmodels.Document, 0, len(uploads))
	for _, up := range uploads {
		doc := docmodels.New(sess.UserID, appID, up, now)
		if err := c.docs.Create(ctx, doc); err != nil {
			return out, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record document")
		}
		c.metrics.ObserveUpload(doc.SizeBytes)
		c.logAudit(ctx, audit.EventDocumentUploaded,
			"user_id", sess.UserID.String(),
			"subject", doc.Name,
		)
		out = append(out, doc)
	}
	return out, nil
}

// DeleteDocument removes a document record after explicit confirmation.
func (c *Citizen) DeleteDocument(ctx context.Context, sess *authmodels.Session, docID id.DocumentID, confirm bool) error {
	if err := requireConfirmation(ctx, confirm); err != nil {
		return err
	}
	doc, err := c.docs.FindByID(ctx, docID)
	if err != nil {
		return storeError(ctx, err, i18n.DocumentNotFound, "failed to load document")
	}
	if doc.OwnerID != sess.UserID {
		return dErrors.New(dErrors.CodeNotFound, i18n.TC(ctx, i18n.DocumentNotFound))
	}
	if err := c.docs.Delete(ctx, docID); err != nil {
		return storeError(ctx, err, i18n.DocumentNotFound, "failed to delete document")
	}
	c.logAudit(ctx, audit.EventDocumentDeleted,
		"user_id", sess.UserID.String(),
		"subject", doc.Name,
	)
	return nil
}
