package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks CitizenService,OfficerService,AdminService

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	appmodels "dochub/internal/applications/models"
	authmodels "dochub/internal/auth/models"
	"dochub/internal/catalog"
	"dochub/internal/dashboard/handler/mocks"
	"dochub/internal/dashboard/service"
	docmodels "dochub/internal/documents/models"
	"dochub/internal/i18n"
	"dochub/internal/portal/view"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/audit"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	citizen *mocks.MockCitizenService
	officer *mocks.MockOfficerService
	admin   *mocks.MockAdminService
	sess    *authmodels.Session
	router  chi.Router
	now     time.Time
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.citizen = mocks.NewMockCitizenService(s.ctrl)
	s.officer = mocks.NewMockOfficerService(s.ctrl)
	s.admin = mocks.NewMockAdminService(s.ctrl)
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.sess = &authmodels.Session{
		ID:     id.SessionID(uuid.New()),
		UserID: id.UserID(uuid.New()),
		Role:   authmodels.RoleCitizen,
		Status: authmodels.SessionStatusActive,
	}

	h := New(s.citizen, s.officer, s.admin, slog.New(slog.NewTextHandler(io.Discard, nil)), 1<<20)
	withSession := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := i18n.WithLanguage(r.Context(), i18n.English)
			next.ServeHTTP(w, r.WithContext(view.WithSession(ctx, s.sess)))
		})
	}
	r := chi.NewRouter()
	r.Route("/citizen", func(r chi.Router) {
		r.Use(withSession)
		h.RegisterCitizen(r)
	})
	r.Route("/officer", func(r chi.Router) {
		r.Use(withSession)
		h.RegisterOfficer(r)
	})
	r.Route("/admin", func(r chi.Router) {
		r.Use(withSession)
		h.RegisterAdmin(r)
	})
	s.router = r
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) do(method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v))
}

func (s *HandlerSuite) application(kind catalog.ServiceKind) *appmodels.Application {
	svc, ok := catalog.Lookup(kind)
	s.Require().True(ok)
	return appmodels.New(s.sess.UserID, svc, s.now)
}

func (s *HandlerSuite) TestCitizenDashboard() {
	app := s.application(catalog.BirthCertificate)
	s.citizen.EXPECT().Dashboard(gomock.Any(), s.sess).Return(&service.CitizenDashboard{
		Stats:        service.CitizenStats{Total: 1, InProgress: 1},
		Services:     catalog.Localized(i18n.English),
		Applications: []*appmodels.Application{app},
	}, nil)

	rec := s.do(http.MethodGet, "/citizen/dashboard", nil, "")

	s.Equal(http.StatusOK, rec.Code)
	var resp CitizenDashboardResponse
	s.decode(rec, &resp)
	s.Equal(1, resp.Stats.Total)
	s.Require().Len(resp.Applications, 1)
	s.Equal(app.Number, resp.Applications[0].ApplicationNumber)
	s.Equal("2026-03-01", resp.Applications[0].SubmittedDate)
	s.Equal("pending", resp.Applications[0].Status)
}

func (s *HandlerSuite) TestSelectService() {
	s.citizen.EXPECT().SelectService(gomock.Any(), s.sess, "marriage-registration").
		DoAndReturn(func(_ any, sess *authmodels.Session, kind string) (*authmodels.Session, error) {
			updated := *sess
			updated.SelectedService = kind
			return &updated, nil
		})

	rec := s.do(http.MethodPut, "/citizen/selection", strings.NewReader(`{"service":"marriage-registration"}`), "application/json")

	s.Equal(http.StatusOK, rec.Code)
	var resp SelectionResponse
	s.decode(rec, &resp)
	s.Equal("marriage-registration", resp.SelectedService)
}

func (s *HandlerSuite) TestCreateApplication() {
	s.Run("empty body falls back to the selection", func() {
		app := s.application(catalog.CitizenshipCertificate)
		s.citizen.EXPECT().CreateApplication(gomock.Any(), s.sess, "").Return(app, nil)

		rec := s.do(http.MethodPost, "/citizen/applications", nil, "")

		s.Equal(http.StatusCreated, rec.Code)
		var resp ApplicationResponse
		s.decode(rec, &resp)
		s.Equal(app.ID.String(), resp.ID)
		s.Equal("citizenship-certificate", resp.ServiceKind)
	})

	s.Run("missing selection is unprocessable", func() {
		s.citizen.EXPECT().CreateApplication(gomock.Any(), s.sess, "").
			Return(nil, dErrors.WithFields(dErrors.CodeValidation, "Please select a service first", map[string]string{"service": "Please select a service first"}))

		rec := s.do(http.MethodPost, "/citizen/applications", nil, "")

		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		s.Contains(rec.Body.String(), "service")
	})
}

func (s *HandlerSuite) TestOpenApplication() {
	s.Run("invalid id", func() {
		rec := s.do(http.MethodGet, "/citizen/applications/not-a-uuid", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("not found", func() {
		appID := id.ApplicationID(uuid.New())
		s.citizen.EXPECT().OpenApplication(gomock.Any(), s.sess, appID).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "Application not found"))

		rec := s.do(http.MethodGet, "/citizen/applications/"+appID.String(), nil, "")

		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerSuite) TestRenameApplication() {
	app := s.application(catalog.BirthCertificate)
	renamed := *app
	renamed.Title = "Birth certificate for Asha"
	s.citizen.EXPECT().RenameApplication(gomock.Any(), s.sess, app.ID, "Birth certificate for Asha").
		Return(&renamed, true, nil)

	rec := s.do(http.MethodPatch, "/citizen/applications/"+app.ID.String(),
		strings.NewReader(`{"title":"Birth certificate for Asha"}`), "application/json")

	s.Equal(http.StatusOK, rec.Code)
	var resp RenameResponse
	s.decode(rec, &resp)
	s.True(resp.Changed)
	s.Equal("Birth certificate for Asha", resp.Application.Title)
}

func (s *HandlerSuite) TestDeleteApplication() {
	appID := id.ApplicationID(uuid.New())

	s.Run("unconfirmed", func() {
		s.citizen.EXPECT().DeleteApplication(gomock.Any(), s.sess, appID, false).
			Return(dErrors.New(dErrors.CodeConfirmationRequired, "Please confirm this action"))

		rec := s.do(http.MethodDelete, "/citizen/applications/"+appID.String(), nil, "")

		s.Equal(http.StatusPreconditionRequired, rec.Code)
	})

	s.Run("confirmed", func() {
		s.citizen.EXPECT().DeleteApplication(gomock.Any(), s.sess, appID, true).Return(nil)

		rec := s.do(http.MethodDelete, "/citizen/applications/"+appID.String()+"?confirm=true", nil, "")

		s.Equal(http.StatusNoContent, rec.Code)
	})
}

func (s *HandlerSuite) multipartBody(appID string, files map[string]string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if appID != "" {
		s.Require().NoError(mw.WriteField("applicationId", appID))
	}
	for name, content := range files {
		part, err := mw.CreateFormFile("files", name)
		s.Require().NoError(err)
		_, err = part.Write([]byte(content))
		s.Require().NoError(err)
	}
	s.Require().NoError(mw.Close())
	return &buf, mw.FormDataContentType()
}

func (s *HandlerSuite) TestUploadDocuments() {
	s.Run("records metadata for each file", func() {
		appID := id.ApplicationID(uuid.New())
		body, contentType := s.multipartBody(appID.String(), map[string]string{"passport.pdf": "%PDF-1.4 sample"})
		s.citizen.EXPECT().UploadDocuments(gomock.Any(), s.sess, appID, gomock.Any()).
			DoAndReturn(func(_ any, sess *authmodels.Session, appID id.ApplicationID, uploads []docmodels.Upload) ([]*docmodels.Document, error) {
				s.Require().Len(uploads, 1)
				s.Equal("passport.pdf", uploads[0].Name)
				s.EqualValues(len("%PDF-1.4 sample"), uploads[0].SizeBytes)
				return []*docmodels.Document{docmodels.New(sess.UserID, appID, uploads[0], s.now)}, nil
			})

		rec := s.do(http.MethodPost, "/citizen/documents", body, contentType)

		s.Equal(http.StatusCreated, rec.Code)
		var resp UploadResponse
		s.decode(rec, &resp)
		s.Require().Len(resp.Documents, 1)
		s.Equal("PDF", resp.Documents[0].Type)
		s.Equal(appID.String(), resp.Documents[0].ApplicationID)
	})

	s.Run("non multipart body", func() {
		rec := s.do(http.MethodPost, "/citizen/documents", strings.NewReader(`{}`), "application/json")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("malformed application id", func() {
		body, contentType := s.multipartBody("nope", map[string]string{"a.png": "x"})
		rec := s.do(http.MethodPost, "/citizen/documents", body, contentType)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestUploadTooLarge() {
	h := New(s.citizen, s.officer, s.admin, slog.New(slog.NewTextHandler(io.Discard, nil)), 64)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(view.WithSession(req.Context(), s.sess)))
		})
	})
	h.RegisterCitizen(r)

	body, contentType := s.multipartBody("", map[string]string{"scan.jpg": strings.Repeat("x", 1024)})
	req := httptest.NewRequest(http.MethodPost, "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *HandlerSuite) TestDeleteDocument() {
	docID := id.DocumentID(uuid.New())
	s.citizen.EXPECT().DeleteDocument(gomock.Any(), s.sess, docID, true).Return(nil)

	rec := s.do(http.MethodDelete, "/citizen/documents/"+docID.String()+"?confirm=1", nil, "")

	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *HandlerSuite) TestOfficerDashboard() {
	s.officer.EXPECT().Dashboard(gomock.Any(), service.OfficerQuery{
		Tab:        service.Tab("reviewed"),
		Department: "civil-registration",
		Search:     "BIR",
		Limit:      5,
	}).Return(&service.OfficerDashboard{
		Stats: service.OfficerStats{Pending: 2, Reviewed: 1},
		Tab:   service.Tab("reviewed"),
	}, nil)

	rec := s.do(http.MethodGet, "/officer/dashboard?tab=reviewed&department=civil-registration&q=BIR&limit=5", nil, "")

	s.Equal(http.StatusOK, rec.Code)
	var resp OfficerDashboardResponse
	s.decode(rec, &resp)
	s.Equal(2, resp.Stats.Pending)
	s.Equal("reviewed", resp.Tab)
	s.NotNil(resp.Applications)
}

func (s *HandlerSuite) TestTransition() {
	app := s.application(catalog.BirthCertificate)

	s.Run("approve", func() {
		approved := *app
		approved.Status = appmodels.StatusCompleted
		s.officer.EXPECT().Transition(gomock.Any(), s.sess.UserID, app.ID, appmodels.ActionApprove, "").Return(&approved, nil)

		rec := s.do(http.MethodPost, "/officer/applications/"+app.ID.String()+"/approve", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		var resp ApplicationResponse
		s.decode(rec, &resp)
		s.Equal("completed", resp.Status)
	})

	s.Run("reject with reason", func() {
		rejected := *app
		rejected.Status = appmodels.StatusRejected
		rejected.Notes = "blurry scan"
		s.officer.EXPECT().Transition(gomock.Any(), s.sess.UserID, app.ID, appmodels.ActionReject, "blurry scan").Return(&rejected, nil)

		rec := s.do(http.MethodPost, "/officer/applications/"+app.ID.String()+"/reject",
			strings.NewReader(`{"reason":"blurry scan"}`), "application/json")

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("unknown action", func() {
		rec := s.do(http.MethodPost, "/officer/applications/"+app.ID.String()+"/archive", nil, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("invalid state", func() {
		s.officer.EXPECT().Transition(gomock.Any(), s.sess.UserID, app.ID, appmodels.ActionReview, "").
			Return(nil, dErrors.New(dErrors.CodeInvalidState, "This application cannot move to that status"))

		rec := s.do(http.MethodPost, "/officer/applications/"+app.ID.String()+"/review", nil, "")

		s.Equal(http.StatusConflict, rec.Code)
	})
}

func (s *HandlerSuite) TestAdminOverview() {
	s.Run("ok", func() {
		s.admin.EXPECT().Overview(gomock.Any()).Return(&service.AdminOverview{
			TotalCitizens:  3,
			ActiveOfficers: 1,
			SystemHealth:   "degraded",
			Dependencies:   map[string]string{"postgres": "ok", "redis": "degraded"},
			RecentActivity: []audit.Event{{Action: string(audit.EventLoginSucceeded), Timestamp: s.now}},
		}, nil)

		rec := s.do(http.MethodGet, "/admin/dashboard", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		var resp AdminOverviewResponse
		s.decode(rec, &resp)
		s.Equal(3, resp.TotalCitizens)
		s.Equal("degraded", resp.SystemHealth)
		s.Require().Len(resp.RecentActivity, 1)
		s.NotEmpty(resp.RecentActivity[0].Category)
	})

	s.Run("internal error hides description", func() {
		s.admin.EXPECT().Overview(gomock.Any()).Return(nil, dErrors.Wrap(errors.New("db down"), dErrors.CodeInternal, "count users"))

		rec := s.do(http.MethodGet, "/admin/dashboard", nil, "")

		s.Equal(http.StatusInternalServerError, rec.Code)
		s.NotContains(rec.Body.String(), "db down")
	})
}

func (s *HandlerSuite) TestUsers() {
	s.admin.EXPECT().Users(gomock.Any(), service.UserQuery{Role: "officer", Search: "ram"}).
		Return([]*authmodels.User{{ID: id.UserID(uuid.New()), Email: "ram@example.com", Role: authmodels.RoleOfficer}}, nil)

	rec := s.do(http.MethodGet, "/admin/users?role=officer&q=ram", nil, "")

	s.Equal(http.StatusOK, rec.Code)
	var resp struct {
		Users []UserResponse `json:"users"`
	}
	s.decode(rec, &resp)
	s.Require().Len(resp.Users, 1)
	s.Equal("officer", resp.Users[0].Role)
}

func (s *HandlerSuite) TestDeleteUser() {
	target := id.UserID(uuid.New())
	s.admin.EXPECT().DeleteUser(gomock.Any(), s.sess.UserID, target, true).Return(nil)

	rec := s.do(http.MethodDelete, "/admin/users/"+target.String()+"?confirm=true", nil, "")

	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *HandlerSuite) TestActivityAndBackup() {
	s.admin.EXPECT().RecentActivity(gomock.Any(), 25).Return(nil, nil)
	rec := s.do(http.MethodGet, "/admin/activity?limit=25", nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"activity":[]}`, rec.Body.String())

	s.admin.EXPECT().Backup(gomock.Any(), s.sess.UserID).Return(&service.BackupReceipt{
		Reference:   "backup-20260301T090000Z-abcdef12",
		RequestedAt: s.now,
	}, nil)
	rec = s.do(http.MethodPost, "/admin/backup", nil, "")
	s.Equal(http.StatusAccepted, rec.Code)
	var resp BackupResponse
	s.decode(rec, &resp)
	s.Equal("backup-20260301T090000Z-abcdef12", resp.Reference)
	s.Equal("Backup has been scheduled", resp.Message)
}

func (s *HandlerSuite) TestMissingSession() {
	h := New(s.citizen, s.officer, s.admin, slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	r := chi.NewRouter()
	h.RegisterCitizen(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	s.Equal(http.StatusInternalServerError, rec.Code)
}
