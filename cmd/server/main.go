package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	appstore "dochub/internal/applications/store"
	authhandler "dochub/internal/auth/handler"
	"dochub/internal/auth/password"
	authservice "dochub/internal/auth/service"
	sessionstore "dochub/internal/auth/store/session"
	userstore "dochub/internal/auth/store/user"
	dashhandler "dochub/internal/dashboard/handler"
	dashservice "dochub/internal/dashboard/service"
	docstore "dochub/internal/documents/store"
	jwttoken "dochub/internal/jwt_token"
	"dochub/internal/platform/config"
	"dochub/internal/platform/httpserver"
	"dochub/internal/platform/kafka"
	"dochub/internal/platform/logger"
	"dochub/internal/platform/metrics"
	"dochub/internal/platform/migrate"
	"dochub/internal/platform/postgres"
	platformredis "dochub/internal/platform/redis"
	portalhandler "dochub/internal/portal/handler"
	"dochub/internal/portal/view"
	rlmw "dochub/internal/ratelimit/middleware"
	rlmodels "dochub/internal/ratelimit/models"
	rlservice "dochub/internal/ratelimit/service"
	"dochub/internal/ratelimit/store/bucket"
	"dochub/internal/seed"
	httptransport "dochub/internal/transport/http"
	audit "dochub/pkg/platform/audit"
	"dochub/pkg/platform/audit/publisher"
	auditsink "dochub/pkg/platform/audit/sink/kafka"
	auditmemory "dochub/pkg/platform/audit/store/memory"
	auditpostgres "dochub/pkg/platform/audit/store/postgres"
	"dochub/pkg/platform/audit/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

type accountStore interface {
	authservice.UserStore
	dashservice.UserDirectory
}

type auditStore interface {
	audit.Sink
	dashservice.ActivityLog
}

// infra holds the optional backends. A nil field means the in-memory
// implementation is used for that concern.
type infra struct {
	db       *sql.DB
	redis    *platformredis.Client
	producer *kafka.Producer
}

func (i *infra) close() {
	if i.producer != nil {
		i.producer.Close()
	}
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
}

func connect(ctx context.Context, cfg *config.Config, log *slog.Logger) (*infra, error) {
	in := &infra{}
	var err error

	if in.db, err = postgres.Open(ctx, cfg.Database); err != nil {
		return nil, err
	}
	if in.db != nil && cfg.Database.AutoMigrate {
		if err := migrate.Run(cfg.Database.URL, migrate.Up); err != nil {
			in.close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("database migrated")
	}
	if in.redis, err = platformredis.New(ctx, cfg.Redis); err != nil {
		in.close()
		return nil, err
	}
	if in.producer, err = kafka.NewProducer(ctx, cfg.KafkaBrokers(), cfg.Kafka.AuditTopic, log); err != nil {
		in.close()
		return nil, err
	}

	log.Info("backends selected",
		"postgres", in.db != nil,
		"redis", in.redis != nil,
		"kafka", in.producer != nil,
	)
	return in, nil
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	in, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer in.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var (
		users    accountStore
		sessions authservice.SessionStore
		apps     dashservice.ApplicationStore
		docs     dashservice.DocumentStore
		activity auditStore
		buckets  rlservice.BucketStore
	)
	if in.db != nil {
		users = userstore.NewPostgres(in.db)
		apps = appstore.NewPostgres(in.db)
		docs = docstore.NewPostgres(in.db)
		activity = auditpostgres.New(in.db)
	} else {
		users = userstore.New()
		apps = appstore.NewInMemory()
		docs = docstore.NewInMemory()
		activity = auditmemory.NewInMemoryStore()
	}
	if in.redis != nil {
		sessions = sessionstore.NewRedis(in.redis.Client)
		buckets = bucket.NewRedis(in.redis.Client)
	} else {
		sessions = sessionstore.New()
		buckets = bucket.NewInMemory()
	}

	auditPublisher := publisher.New(
		publisher.WithLogger(log),
		publisher.WithDropCounter(m.AuditDropped),
	)
	sinks := []audit.Sink{activity}
	if in.producer != nil {
		sinks = append(sinks, auditsink.New(in.producer, log))
	}
	auditWorker := worker.NewWorker(auditPublisher.Events(), log, sinks...)

	authSvc, err := authservice.New(
		users,
		sessions,
		jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer),
		password.NewHasher(cfg.Auth.BcryptCost),
		authservice.Config{SessionTTL: cfg.Auth.SessionTTL, RememberMeTTL: cfg.Auth.RememberMeTTL},
		authservice.WithLogger(log),
		authservice.WithMetrics(m),
		authservice.WithAuditPublisher(auditPublisher),
	)
	if err != nil {
		return fmt.Errorf("auth service: %w", err)
	}

	guard, err := view.NewGuard(ctx)
	if err != nil {
		return fmt.Errorf("view guard: %w", err)
	}
	nav := view.NewNavigator(guard, authSvc,
		view.WithLogger(log),
		view.WithMetrics(m),
		view.WithAuditPublisher(auditPublisher),
	)

	dashOpts := []dashservice.Option{
		dashservice.WithLogger(log),
		dashservice.WithMetrics(m),
		dashservice.WithAuditPublisher(auditPublisher),
	}
	citizen, err := dashservice.NewCitizen(apps, docs, authSvc, dashOpts...)
	if err != nil {
		return fmt.Errorf("citizen dashboard: %w", err)
	}
	officer, err := dashservice.NewOfficer(apps, dashOpts...)
	if err != nil {
		return fmt.Errorf("officer dashboard: %w", err)
	}
	admin, err := dashservice.NewAdmin(users, authSvc, apps, docs, activity, healthChecks(in, guard), dashOpts...)
	if err != nil {
		return fmt.Errorf("admin dashboard: %w", err)
	}

	limiter, err := rlservice.New(buckets,
		rlservice.WithLogger(log),
		rlservice.WithMetrics(m),
		rlservice.WithAuditPublisher(auditPublisher),
		rlservice.WithLimit(rlmodels.ClassLogin, rlmodels.Limit{Requests: cfg.RateLimit.LoginAttempts, Window: cfg.RateLimit.Window}),
		rlservice.WithLimit(rlmodels.ClassPasswordReset, rlmodels.Limit{Requests: cfg.RateLimit.ResetAttempts, Window: cfg.RateLimit.Window}),
		rlservice.WithLimit(rlmodels.ClassRegister, rlmodels.Limit{Requests: cfg.RateLimit.RegisterAttempts, Window: cfg.RateLimit.Window}),
	)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if cfg.Auth.SeedDemoAccounts {
		if err := seedDemo(ctx, authSvc, apps, log); err != nil {
			return err
		}
	}

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:         log,
		Metrics:        m,
		Gatherer:       reg,
		AdminToken:     cfg.Server.AdminToken,
		AllowedOrigins: cfg.AllowedOrigins(),
		Sessions:       authSvc,
		Navigator:      nav,
		RateLimit:      rlmw.New(limiter, log, rlmw.WithDisabled(cfg.RateLimit.Disabled)),
		Auth:           authhandler.New(authSvc, log),
		Portal:         portalhandler.New(nav, authSvc, log),
		Dashboard:      dashhandler.New(citizen, officer, admin, log, cfg.Auth.MaxUploadBytes),
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	// The worker stops once the publisher is closed, after the server has
	// drained its in-flight requests.
	g.Go(func() error {
		return auditWorker.Run(context.WithoutCancel(gctx))
	})
	g.Go(func() error {
		defer auditPublisher.Close()
		return httpserver.Serve(gctx, srv, cfg.Server.ShutdownTimeout, log)
	})
	return g.Wait()
}

func healthChecks(in *infra, guard *view.Guard) map[string]dashservice.HealthCheck {
	checks := map[string]dashservice.HealthCheck{
		"policy": guard.HealthCheck,
	}
	if in.db != nil {
		checks["database"] = func(ctx context.Context) error { return postgres.Health(ctx, in.db) }
	}
	if in.redis != nil {
		checks["redis"] = in.redis.Health
	}
	if in.producer != nil {
		checks["kafka"] = in.producer.Health
	}
	return checks
}

func seedDemo(ctx context.Context, users seed.Registrar, apps seed.ApplicationStore, log *slog.Logger) error {
	fixture, err := seed.Demo()
	if err != nil {
		return fmt.Errorf("demo fixture: %w", err)
	}
	report, err := seed.Apply(ctx, fixture, users, apps, log)
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	log.Info("demo data seeded",
		"users", report.Users,
		"skipped", report.Skipped,
		"applications", report.Applications,
	)
	return nil
}
