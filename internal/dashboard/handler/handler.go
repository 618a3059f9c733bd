package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appmodels "dochub/internal/applications/models"
	authmodels "dochub/internal/auth/models"
	"dochub/internal/dashboard/service"
	docmodels "dochub/internal/documents/models"
	"dochub/internal/i18n"
	"dochub/internal/portal/view"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/audit"
	"dochub/pkg/platform/httputil"
	"dochub/pkg/requestcontext"
)

type CitizenService interface {
	Dashboard(ctx context.Context, sess *authmodels.Session) (*service.CitizenDashboard, error)
	SelectService(ctx context.Context, sess *authmodels.Session, kind string) (*authmodels.Session, error)
	CreateApplication(ctx context.Context, sess *authmodels.Session, kind string) (*appmodels.Application, error)
	OpenApplication(ctx context.Context, sess *authmodels.Session, appID id.ApplicationID) (*appmodels.Application, error)
	RenameApplication(ctx context.Context, sess *authmodels.Session, appID id.ApplicationID, title string) (*appmodels.Application, bool, error)
	DeleteApplication(ctx context.Context, sess *authmodels.Session, appID id.ApplicationID, confirm bool) error
	UploadDocuments(ctx context.Context, sess *authmodels.Session, appID id.ApplicationID, uploads []docmodels.Upload) ([]*docmodels.Document, error)
	DeleteDocument(ctx context.Context, sess *authmodels.Session, docID id.DocumentID, confirm bool) error
}

type OfficerService interface {
	Dashboard(ctx context.Context, q service.OfficerQuery) (*service.OfficerDashboard, error)
	Transition(ctx context.Context, actorID id.UserID, appID id.ApplicationID, action appmodels.Action, reason string) (*appmodels.Application, error)
}

type AdminService interface {
	Overview(ctx context.Context) (*service.AdminOverview, error)
	Users(ctx context.Context, q service.UserQuery) ([]*authmodels.User, error)
	DeleteUser(ctx context.Context, actorID, userID id.UserID, confirm bool) error
	RecentActivity(ctx context.Context, limit int) ([]audit.Event, error)
	Backup(ctx context.Context, actorID id.UserID) (*service.BackupReceipt, error)
}

// Handler serves the three dashboards. Routes expect view.RequireView to
// have placed the caller's session in the request context.
type Handler struct {
	citizen        CitizenService
	officer        OfficerService
	admin          AdminService
	logger         *slog.Logger
	maxUploadBytes int64
}

func New(citizen CitizenService, officer OfficerService, admin AdminService, logger *slog.Logger, maxUploadBytes int64) *Handler {
	return &Handler{
		citizen:        citizen,
		officer:        officer,
		admin:          admin,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) RegisterCitizen(r chi.Router) {
	r.Get("/dashboard", h.HandleCitizenDashboard)
	r.Put("/selection", h.HandleSelectService)
	r.Post("/applications", h.HandleCreateApplication)
	r.Get("/applications/{id}", h.HandleOpenApplication)
	r.Patch("/applications/{id}", h.HandleRenameApplication)
	r.Delete("/applications/{id}", h.HandleDeleteApplication)
	r.Post("/documents", h.HandleUploadDocuments)
	r.Delete("/documents/{id}", h.HandleDeleteDocument)
}

func (h *Handler) RegisterOfficer(r chi.Router) {
	r.Get("/dashboard", h.HandleOfficerDashboard)
	r.Post("/applications/{id}/{action}", h.HandleTransition)
}

func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/dashboard", h.HandleAdminOverview)
	r.Get("/users", h.HandleUsers)
	r.Delete("/users/{id}", h.HandleDeleteUser)
	r.Get("/activity", h.HandleActivity)
	r.Post("/backup", h.HandleBackup)
}

// session returns the context session or writes an internal error.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*authmodels.Session, bool) {
	sess := view.SessionFrom(r.Context())
	if sess == nil {
		h.logger.ErrorContext(r.Context(), "session missing from context despite view guard",
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "session context error"))
		return nil, false
	}
	return sess, true
}

// fail logs by severity and writes the error envelope.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	attrs := []any{"error", err, "request_id", requestcontext.RequestID(ctx)}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

func applicationIDParam(r *http.Request) (id.ApplicationID, error) {
	appID, err := id.ParseApplicationID(chi.URLParam(r, "id"))
	if err != nil {
		return id.ApplicationID{}, dErrors.New(dErrors.CodeBadRequest, "invalid application id")
	}
	return appID, nil
}

// -----------------------------------------------------------------------------
// Citizen
// -----------------------------------------------------------------------------

func (h *Handler) HandleCitizenDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	dash, err := h.citizen.Dashboard(r.Context(), sess)
	if err != nil {
		h.fail(w, r, "failed to load citizen dashboard", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCitizenDashboard(i18n.FromContext(r.Context()), dash))
}

func (h *Handler) HandleSelectService(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req SelectServiceRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	updated, err := h.citizen.SelectService(r.Context(), sess, req.Service)
	if err != nil {
		h.fail(w, r, "failed to select service", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SelectionResponse{SelectedService: updated.SelectedService})
}

func (h *Handler) HandleCreateApplication(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req CreateApplicationRequest
	if err := decodeOptional(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	app, err := h.citizen.CreateApplication(r.Context(), sess, req.Service)
	if err != nil {
		h.fail(w, r, "failed to create application", err)
		return
	}
	h.logger.InfoContext(r.Context(), "application created",
		"application_number", app.Number,
		"user_id", sess.UserID.String(),
		"request_id", requestcontext.RequestID(r.Context()),
	)
	httputil.WriteJSON(w, http.StatusCreated, toApplication(i18n.FromContext(r.Context()), app))
}

func (h *Handler) HandleOpenApplication(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	appID, err := applicationIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	app, err := h.citizen.OpenApplication(r.Context(), sess, appID)
	if err != nil {
		h.fail(w, r, "failed to open application", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplication(i18n.FromContext(r.Context()), app))
}

func (h *Handler) HandleRenameApplication(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	appID, err := applicationIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req RenameRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	app, changed, err := h.citizen.RenameApplication(r.Context(), sess, appID, req.Title)
	if err != nil {
		h.fail(w, r, "failed to rename application", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RenameResponse{
		Application: toApplication(i18n.FromContext(r.Context()), app),
		Changed:     changed,
	})
}

func (h *Handler) HandleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	appID, err := applicationIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.citizen.DeleteApplication(r.Context(), sess, appID, confirmed(r)); err != nil {
		h.fail(w, r, "failed to delete application", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleUploadDocuments(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	appID, uploads, err := readUploads(w, r, h.maxUploadBytes)
	if err != nil {
		h.fail(w, r, "failed to read upload", err)
		return
	}
	docs, err := h.citizen.UploadDocuments(r.Context(), sess, appID, uploads)
	if err != nil {
		h.fail(w, r, "failed to record documents", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, UploadResponse{Documents: toDocuments(docs)})
}

func (h *Handler) HandleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	docID, err := id.ParseDocumentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid document id"))
		return
	}
	if err := h.citizen.DeleteDocument(r.Context(), sess, docID, confirmed(r)); err != nil {
		h.fail(w, r, "failed to delete document", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -----------------------------------------------------------------------------
// Officer
// -----------------------------------------------------------------------------

func (h *Handler) HandleOfficerDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	dash, err := h.officer.Dashboard(r.Context(), service.OfficerQuery{
		Tab:        service.Tab(q.Get("tab")),
		Department: q.Get("department"),
		Search:     q.Get("q"),
		Limit:      limit,
	})
	if err != nil {
		h.fail(w, r, "failed to load officer dashboard", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toOfficerDashboard(i18n.FromContext(r.Context()), dash))
}

func (h *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	appID, err := applicationIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	action, ok := appmodels.ParseAction(chi.URLParam(r, "action"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown action"))
		return
	}
	var req TransitionRequest
	if err := decodeOptional(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	app, err := h.officer.Transition(r.Context(), sess.UserID, appID, action, req.Reason)
	if err != nil {
		h.fail(w, r, "failed to apply transition", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplication(i18n.FromContext(r.Context()), app))
}

// -----------------------------------------------------------------------------
// Admin
// -----------------------------------------------------------------------------

func (h *Handler) HandleAdminOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.admin.Overview(r.Context())
	if err != nil {
		h.fail(w, r, "failed to load admin overview", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAdminOverview(overview))
}

func (h *Handler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	users, err := h.admin.Users(r.Context(), service.UserQuery{
		Role:   q.Get("role"),
		Search: q.Get("q"),
		Limit:  limit,
	})
	if err != nil {
		h.fail(w, r, "failed to list users", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"users": toUsers(users)})
}

func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	userID, err := id.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid user id"))
		return
	}
	if err := h.admin.DeleteUser(r.Context(), sess.UserID, userID, confirmed(r)); err != nil {
		h.fail(w, r, "failed to delete user", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := h.admin.RecentActivity(r.Context(), limit)
	if err != nil {
		h.fail(w, r, "failed to list activity", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"activity": toActivity(events)})
}

func (h *Handler) HandleBackup(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	receipt, err := h.admin.Backup(r.Context(), sess.UserID)
	if err != nil {
		h.fail(w, r, "failed to request backup", err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, BackupResponse{
		Reference:   receipt.Reference,
		RequestedAt: receipt.RequestedAt,
		Message:     i18n.TC(r.Context(), i18n.BackupScheduled),
	})
}
