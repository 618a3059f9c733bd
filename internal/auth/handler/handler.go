package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dochub/internal/auth/form"
	"dochub/internal/auth/models"
	"dochub/internal/i18n"
	"dochub/internal/identity"
	rlmodels "dochub/internal/ratelimit/models"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/httputil"
	"dochub/pkg/requestcontext"
)

// Service is the auth surface the handler needs.
type Service interface {
	Authenticate(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (string, error)
	Logout(ctx context.Context, sessionID id.SessionID) error
	Session(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Throttle returns the rate limit middleware for a class of form posts.
type Throttle func(class rlmodels.Class) func(http.Handler) http.Handler

// Register mounts the public form endpoints, each behind throttle when one
// is given.
func (h *Handler) Register(r chi.Router, throttle Throttle) {
	with := func(class rlmodels.Class) chi.Router {
		if throttle == nil {
			return r
		}
		return r.With(throttle(class))
	}
	with(rlmodels.ClassLogin).Post("/login", h.HandleLogin)
	with(rlmodels.ClassRegister).Post("/register", h.HandleRegister)
	with(rlmodels.ClassPasswordReset).Post("/forgot-password", h.HandleForgotPassword)
}

// RegisterAuthenticated mounts endpoints that need RequireAuth.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Post("/logout", h.HandleLogout)
	r.Get("/me", h.HandleMe)
}

// HandleLogin drives a fresh login form with the submitted values, so field
// validation and banner wording match the interactive form.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	f := form.NewLogin(i18n.FromContext(ctx))
	if req.Method != "" {
		if err := f.SelectMethod(identity.Method(req.Method)); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	if req.Role != "" {
		role, ok := models.ParseRole(req.Role)
		if !ok {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown role"))
			return
		}
		_ = f.SelectRole(role)
	}
	f.SetIdentifier(req.Identifier)
	f.SetPassword(req.Password)
	f.SetRememberMe(req.RememberMe)

	result, err := f.Submit(ctx, h.service)
	if err != nil {
		attrs := []any{"error", err, "request_id", requestcontext.RequestID(ctx)}
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "login failed", attrs...)
		} else {
			h.logger.InfoContext(ctx, "login rejected", attrs...)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toLoginResponse(result))
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	user, err := h.service.Register(ctx, req.toModel())
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "failed to register user",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, RegisterResponse{
		UserID:  user.ID.String(),
		Role:    user.Role,
		Message: i18n.TC(ctx, i18n.RegistrationSuccess),
	})
}

func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ForgotPasswordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	msg, err := h.service.ForgotPassword(ctx, req.toModel())
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "failed to process password reset",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Logout(ctx, requestcontext.SessionID(ctx)); err != nil {
		h.logger.WarnContext(ctx, "logout failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := h.service.Session(ctx, requestcontext.SessionID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sess.Summary())
}
