package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"dochub/internal/auth/models"
	"dochub/internal/identity"
	jwttoken "dochub/internal/jwt_token"
	"dochub/internal/platform/metrics"
	"dochub/pkg/attrs"
	id "dochub/pkg/domain"
	"dochub/pkg/platform/audit"
	"dochub/pkg/requestcontext"
)

var tracer = otel.Tracer("dochub/auth")

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByIdentifier(ctx context.Context, method identity.Method, value string) (*models.User, error)
	Delete(ctx context.Context, userID id.UserID) error
}

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	Execute(ctx context.Context, sessionID id.SessionID, validate func(*models.Session) error, mutate func(*models.Session)) (*models.Session, error)
	RevokeSessionIfActive(ctx context.Context, sessionID id.SessionID, now time.Time) error
	DeleteSessionsByUser(ctx context.Context, userID id.UserID) error
}

type TokenIssuer interface {
	GenerateSessionToken(userID id.UserID, sessionID id.SessionID, role string, expiresAt time.Time) (string, error)
	ParseIDs(token string) (*jwttoken.Claims, id.UserID, id.SessionID, error)
}

type PasswordHasher interface {
	Hash(password []byte) (string, error)
	Compare(hash string, password []byte) error
	DummyCompare(password []byte)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Config holds session lifetimes.
type Config struct {
	SessionTTL    time.Duration
	RememberMeTTL time.Duration
}

// Service authenticates portal users and owns their sessions.
type Service struct {
	users          UserStore
	sessions       SessionStore
	tokens         TokenIssuer
	hasher         PasswordHasher
	cfg            Config
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(users UserStore, sessions SessionStore, tokens TokenIssuer, hasher PasswordHasher, cfg Config, opts ...Option) (*Service, error) {
	switch {
	case users == nil:
		return nil, errors.New("user store is required")
	case sessions == nil:
		return nil, errors.New("session store is required")
	case tokens == nil:
		return nil, errors.New("token issuer is required")
	case hasher == nil:
		return nil, errors.New("password hasher is required")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	if cfg.RememberMeTTL < cfg.SessionTTL {
		cfg.RememberMeTTL = cfg.SessionTTL
	}

	s := &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		hasher:   hasher,
		cfg:      cfg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) sessionTTL(rememberMe bool) time.Duration {
	if rememberMe {
		return s.cfg.RememberMeTTL
	}
	return s.cfg.SessionTTL
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
	if s.auditPublisher == nil {
		return
	}
	userID, _ := id.ParseUserID(attrs.ExtractString(attributes, "user_id"))
	subject := attrs.ExtractString(attributes, "subject")
	if subject == "" {
		subject = userID.String()
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		UserID:  userID,
		Subject: subject,
		Action:  event,
		Reason:  attrs.ExtractString(attributes, "reason"),
		Role:    attrs.ExtractString(attributes, "role"),
		ActorID: attrs.ExtractString(attributes, "actor_id"),
	})
}

// authFailure logs a failed authentication and records it as a security event.
func (s *Service) authFailure(ctx context.Context, reason string, attributes ...any) {
	attributes = append(attributes, "reason", reason, "client_ip", requestcontext.ClientIP(ctx))
	s.logAudit(ctx, string(audit.EventLoginFailed), attributes...)
}
