// Package handler serves the public portal surface: landing content, the
// service catalog, the language toggle, and view navigation.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dochub/internal/auth/models"
	"dochub/internal/catalog"
	"dochub/internal/i18n"
	"dochub/internal/portal/landing"
	"dochub/internal/portal/view"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/httputil"
	"dochub/pkg/requestcontext"
)

type Navigator interface {
	Current(sess *models.Session) view.State
	Check(ctx context.Context, target view.View, sess *models.Session) error
	Navigate(ctx context.Context, sess *models.Session, target view.View) (view.State, error)
}

type Sessions interface {
	Session(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	SetLanguage(ctx context.Context, sessionID id.SessionID, lang string) error
}

type Handler struct {
	nav      Navigator
	sessions Sessions
	logger   *slog.Logger
}

func New(nav Navigator, sessions Sessions, logger *slog.Logger) *Handler {
	return &Handler{nav: nav, sessions: sessions, logger: logger}
}

// Register mounts the portal routes. They run behind OptionalAuth so that
// anonymous callers are served too.
func (h *Handler) Register(r chi.Router) {
	r.Get("/landing", h.HandleLanding)
	r.Get("/services", h.HandleServices)
	r.Post("/language/toggle", h.HandleToggleLanguage)
	r.Get("/views", h.HandleCurrentView)
	r.Get("/views/{view}", h.HandleCheckView)
	r.Post("/views/{view}", h.HandleNavigate)
}

// session returns the caller's session, or nil when anonymous. A token
// whose session has since expired is treated as anonymous.
func (h *Handler) session(ctx context.Context) (*models.Session, error) {
	sessionID := requestcontext.SessionID(ctx)
	if sessionID.IsNil() {
		return nil, nil
	}
	sess, err := h.sessions.Session(ctx, sessionID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			return nil, nil
		}
		return nil, err
	}
	return sess, nil
}

func (h *Handler) HandleLanding(w http.ResponseWriter, r *http.Request) {
	page, err := landing.Compose(i18n.FromContext(r.Context()))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to compose landing page",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "landing content unavailable"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) HandleServices(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"services": catalog.Localized(i18n.FromContext(r.Context())),
	})
}

// HandleToggleLanguage flips between English and Nepali. The choice is kept
// in a cookie and, for signed-in callers, on the session.
func (h *Handler) HandleToggleLanguage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	next := i18n.FromContext(ctx).Toggle()
	i18n.SetCookie(w, next)

	if sessionID := requestcontext.SessionID(ctx); !sessionID.IsNil() {
		if err := h.sessions.SetLanguage(ctx, sessionID, next.String()); err != nil {
			h.logger.WarnContext(ctx, "failed to store language on session",
				"error", err,
				"session_id", sessionID.String(),
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"language": next.String()})
}

func (h *Handler) HandleCurrentView(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.nav.Current(sess))
}

// HandleCheckView reports whether the caller may open a view without moving
// them there.
func (h *Handler) HandleCheckView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	target, ok := view.Parse(chi.URLParam(r, "view"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown view"))
		return
	}
	sess, err := h.session(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.nav.Check(ctx, target, sess); err != nil {
		httputil.WriteError(w, err)
		return
	}
	state := h.nav.Current(sess)
	state.View = target
	httputil.WriteJSON(w, http.StatusOK, state)
}

func (h *Handler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	target, ok := view.Parse(chi.URLParam(r, "view"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown view"))
		return
	}
	sess, err := h.session(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	state, err := h.nav.Navigate(ctx, sess, target)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "failed to navigate",
				"error", err,
				"view", string(target),
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state)
}
