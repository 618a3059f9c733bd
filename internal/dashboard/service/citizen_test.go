package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ApplicationStore,DocumentStore,SessionUpdater,UserDirectory,UserRemover,ActivityLog,AuditPublisher

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	appmodels "dochub/internal/applications/models"
	appstore "dochub/internal/applications/store"
	authmodels "dochub/internal/auth/models"
	"dochub/internal/catalog"
	"dochub/internal/dashboard/service/mocks"
	docmodels "dochub/internal/documents/models"
	docstore "dochub/internal/documents/store"
	"dochub/internal/i18n"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/audit"
	"dochub/pkg/requestcontext"
)

type CitizenSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	ctx      context.Context
	now      time.Time
	apps     *appstore.InMemoryStore
	docs     *docstore.InMemoryStore
	sessions *mocks.MockSessionUpdater
	audit    *mocks.MockAuditPublisher
	sess     *authmodels.Session
	svc      *Citizen
}

func TestCitizenSuite(t *testing.T) {
	suite.Run(t, new(CitizenSuite))
}

func (s *CitizenSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.now = time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)
	s.ctx = i18n.WithLanguage(requestcontext.WithTime(context.Background(), s.now), i18n.English)
	s.apps = appstore.NewInMemory()
	s.docs = docstore.NewInMemory()
	s.sessions = mocks.NewMockSessionUpdater(s.ctrl)
	s.audit = mocks.NewMockAuditPublisher(s.ctrl)
	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	s.sess = &authmodels.Session{
		ID:          id.SessionID(uuid.New()),
		UserID:      id.UserID(uuid.New()),
		Role:        authmodels.RoleCitizen,
		Status:      authmodels.SessionStatusActive,
		CurrentView: "citizen",
		ExpiresAt:   s.now.Add(time.Hour),
	}

	var err error
	s.svc, err = NewCitizen(s.apps, s.docs, s.sessions, WithAuditPublisher(s.audit))
	s.Require().NoError(err)
}

func (s *CitizenSuite) TearDownTest() {
	s.ctrl.Finish()
}

// expectSessionUpdates applies every mutation to the suite session.
func (s *CitizenSuite) expectSessionUpdates() {
	s.sessions.EXPECT().UpdateSession(gomock.Any(), s.sess.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ id.SessionID, mutate func(*authmodels.Session)) (*authmodels.Session, error) {
			mutate(s.sess)
			cp := *s.sess
			return &cp, nil
		}).AnyTimes()
}

func (s *CitizenSuite) foreignApplication() *appmodels.Application {
	svc, _ := catalog.Lookup(catalog.BirthCertificate)
	app := appmodels.New(id.UserID(uuid.New()), svc, s.now)
	s.Require().NoError(s.apps.Create(s.ctx, app))
	return app
}

func (s *CitizenSuite) TestNew() {
	_, err := NewCitizen(nil, s.docs, s.sessions)
	s.Error(err)
	_, err = NewCitizen(s.apps, nil, s.sessions)
	s.Error(err)
	_, err = NewCitizen(s.apps, s.docs, nil)
	s.Error(err)
}

func (s *CitizenSuite) TestCreateApplication() {
	s.Run("without a selected service nothing is created", func() {
		_, err := s.svc.CreateApplication(s.ctx, s.sess, "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal("Please select a service first", dErrors.FieldsOf(err)["service"])

		apps, _ := s.apps.List(s.ctx, appmodels.Filter{})
		s.Empty(apps)
	})

	s.Run("selection prompt is localized", func() {
		ctx := i18n.WithLanguage(s.ctx, i18n.Nepali)
		_, err := s.svc.CreateApplication(ctx, s.sess, "")
		s.Equal(i18n.T(i18n.Nepali, i18n.ServiceSelection), dErrors.FieldsOf(err)["service"])
	})

	s.Run("uses the session's selected service", func() {
		s.sess.SelectedService = string(catalog.MarriageRegistration)
		app, err := s.svc.CreateApplication(s.ctx, s.sess, "")
		s.Require().NoError(err)
		s.Equal(catalog.MarriageRegistration, app.Service)
		s.Equal(appmodels.StatusPending, app.Status)
		s.Equal(s.now, app.SubmittedAt)
		s.Equal(s.now.Add(14*24*time.Hour), app.EstimatedCompletion)
		s.True(strings.HasPrefix(app.Number, "MAR-2026-"), app.Number)
		s.Equal(s.sess.UserID, app.OwnerID)
	})

	s.Run("explicit kind wins and unknown kinds are rejected", func() {
		app, err := s.svc.CreateApplication(s.ctx, s.sess, string(catalog.BirthCertificate))
		s.Require().NoError(err)
		s.Equal(catalog.BirthCertificate, app.Service)

		_, err = s.svc.CreateApplication(s.ctx, s.sess, "passport")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(dErrors.FieldsOf(err), "service")
	})
}

func (s *CitizenSuite) TestSelectService() {
	s.expectSessionUpdates()

	_, err := s.svc.SelectService(s.ctx, s.sess, "passport")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Empty(s.sess.SelectedService)

	updated, err := s.svc.SelectService(s.ctx, s.sess, " birth-certificate ")
	s.Require().NoError(err)
	s.Equal("birth-certificate", updated.SelectedService)

	updated, err = s.svc.SelectService(s.ctx, s.sess, "")
	s.Require().NoError(err)
	s.Empty(updated.SelectedService)
}

func (s *CitizenSuite) TestOpenAndDeleteApplication() {
	s.expectSessionUpdates()
	app, err := s.svc.CreateApplication(s.ctx, s.sess, string(catalog.CitizenshipCertificate))
	s.Require().NoError(err)

	opened, err := s.svc.OpenApplication(s.ctx, s.sess, app.ID)
	s.Require().NoError(err)
	s.Equal(app.ID, opened.ID)
	s.Equal(app.ID, s.sess.OpenApplicationID)

	s.Run("requires confirmation", func() {
		err := s.svc.DeleteApplication(s.ctx, s.sess, app.ID, false)
		s.True(dErrors.HasCode(err, dErrors.CodeConfirmationRequired))
		_, err = s.apps.FindByID(s.ctx, app.ID)
		s.NoError(err)
		s.Equal(app.ID, s.sess.OpenApplicationID)
	})

	s.Run("other owners' applications read as not found", func() {
		foreign := s.foreignApplication()
		_, err := s.svc.OpenApplication(s.ctx, s.sess, foreign.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		err = s.svc.DeleteApplication(s.ctx, s.sess, foreign.ID, true)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("confirmed delete closes the open detail", func() {
		s.Require().NoError(s.svc.DeleteApplication(s.ctx, s.sess, app.ID, true))
		_, err := s.apps.FindByID(s.ctx, app.ID)
		s.Error(err)
		s.True(s.sess.OpenApplicationID.IsNil())
	})

	s.Run("deleting again is not found", func() {
		err := s.svc.DeleteApplication(s.ctx, s.sess, app.ID, true)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.EqualError(err, "Application not found")
	})
}

func (s *CitizenSuite) TestDeleteKeepsOtherOpenDetail() {
	s.expectSessionUpdates()
	keep, err := s.svc.CreateApplication(s.ctx, s.sess, string(catalog.CitizenshipCertificate))
	s.Require().NoError(err)
	drop, err := s.svc.CreateApplication(s.ctx, s.sess, string(catalog.BirthCertificate))
	s.Require().NoError(err)

	_, err = s.svc.OpenApplication(s.ctx, s.sess, keep.ID)
	s.Require().NoError(err)
	s.Require().NoError(s.svc.DeleteApplication(s.ctx, s.sess, drop.ID, true))
	s.Equal(keep.ID, s.sess.OpenApplicationID)
}

func (s *CitizenSuite) TestRenameApplication() {
	app, err := s.svc.CreateApplication(s.ctx, s.sess, string(catalog.BirthCertificate))
	s.Require().NoError(err)

	_, changed, err := s.svc.RenameApplication(s.ctx, s.sess, app.ID, "   ")
	s.Require().NoError(err)
	s.False(changed)

	_, changed, err = s.svc.RenameApplication(s.ctx, s.sess, app.ID, app.Title)
	s.Require().NoError(err)
	s.False(changed)

	updated, changed, err := s.svc.RenameApplication(s.ctx, s.sess, app.ID, " Daughter's birth certificate ")
	s.Require().NoError(err)
	s.True(changed)
	s.Equal("Daughter's birth certificate", updated.Title)

	_, _, err = s.svc.RenameApplication(s.ctx, s.sess, app.ID, strings.Repeat("x", appmodels.MaxTitleLen+1))
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Contains(dErrors.FieldsOf(err), "title")
}

func (s *CitizenSuite) TestUploadAndDeleteDocuments() {
	_, err := s.svc.UploadDocuments(s.ctx, s.sess, id.ApplicationID{}, nil)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Contains(dErrors.FieldsOf(err), "files")

	foreign := s.foreignApplication()
	_, err = s.svc.UploadDocuments(s.ctx, s.sess, foreign.ID, []docmodels.Upload{{Name: "a.pdf"}})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	docs, err := s.svc.UploadDocuments(s.ctx, s.sess, id.ApplicationID{}, []docmodels.Upload{
		{Name: "photo.jpg", ContentType: "image/jpeg", SizeBytes: 250_000},
		{Name: "birth.pdf", ContentType: "application/pdf", SizeBytes: 1_200_000},
	})
	s.Require().NoError(err)
	s.Require().Len(docs, 2)
	s.Equal("JPG", docs[0].Type)
	s.Equal("PDF", docs[1].Type)
	s.Equal("1.2 MB", docs[1].Size())

	err = s.svc.DeleteDocument(s.ctx, s.sess, docs[0].ID, false)
	s.True(dErrors.HasCode(err, dErrors.CodeConfirmationRequired))

	s.Require().NoError(s.svc.DeleteDocument(s.ctx, s.sess, docs[0].ID, true))
	err = s.svc.DeleteDocument(s.ctx, s.sess, docs[0].ID, true)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	n, _ := s.docs.CountByOwner(s.ctx, s.sess.UserID)
	s.Equal(1, n)
}

func (s *CitizenSuite) TestDashboardAndStats() {
	s.expectSessionUpdates()
	first, err := s.svc.CreateApplication(s.ctx, s.sess, string(catalog.CitizenshipCertificate))
	s.Require().NoError(err)
	second, err := s.svc.CreateApplication(s.ctx, s.sess, string(catalog.BirthCertificate))
	s.Require().NoError(err)
	_, err = s.apps.Update(s.ctx, second.ID, func(a *appmodels.Application) error {
		a.Status = appmodels.StatusCompleted
		return nil
	})
	s.Require().NoError(err)
	_, err = s.svc.UploadDocuments(s.ctx, s.sess, first.ID, []docmodels.Upload{{Name: "photo.png", SizeBytes: 10}})
	s.Require().NoError(err)
	s.foreignApplication()
	_, err = s.svc.OpenApplication(s.ctx, s.sess, first.ID)
	s.Require().NoError(err)

	want := CitizenStats{Total: 2, InProgress: 1, Completed: 1, Documents: 1}

	dash, err := s.svc.Dashboard(s.ctx, s.sess)
	s.Require().NoError(err)
	s.Equal(want, dash.Stats)
	s.Len(dash.Applications, 2)
	s.Len(dash.Services, 3)
	s.Require().NotNil(dash.OpenApplication)
	s.Equal(first.ID, dash.OpenApplication.ID)

	stats, err := s.svc.Stats(s.ctx, s.sess.UserID)
	s.Require().NoError(err)
	s.Equal(want, stats)
}

func (s *CitizenSuite) TestAuditsMutations() {
	audits := mocks.NewMockAuditPublisher(s.ctrl)
	svc, err := NewCitizen(s.apps, s.docs, s.sessions, WithAuditPublisher(audits))
	s.Require().NoError(err)

	audits.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
		s.Equal(string(audit.EventApplicationCreated), e.Action)
		s.Equal(s.sess.UserID, e.UserID)
		return nil
	})
	_, err = svc.CreateApplication(s.ctx, s.sess, string(catalog.BirthCertificate))
	s.Require().NoError(err)
}
