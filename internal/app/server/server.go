package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrportal/internal/domain/audit"
	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/dashboard"
	"hrportal/internal/domain/disciplinary"
	"hrportal/internal/domain/employees"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/medical"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/domain/performance"
	"hrportal/internal/domain/records"
	"hrportal/internal/domain/session"
	"hrportal/internal/platform/config"
	"hrportal/internal/platform/db"
	"hrportal/internal/platform/email"
	"hrportal/internal/platform/events"
	"hrportal/internal/platform/jobs"
	"hrportal/internal/platform/metrics"
	"hrportal/internal/platform/seed"
	audithandler "hrportal/internal/transport/http/handlers/audit"
	authhandler "hrportal/internal/transport/http/handlers/auth"
	dashboardhandler "hrportal/internal/transport/http/handlers/dashboard"
	employeeshandler "hrportal/internal/transport/http/handlers/employees"
	leavehandler "hrportal/internal/transport/http/handlers/leave"
	medicalhandler "hrportal/internal/transport/http/handlers/medical"
	notificationshandler "hrportal/internal/transport/http/handlers/notifications"
	performancehandler "hrportal/internal/transport/http/handlers/performance"
	warningshandler "hrportal/internal/transport/http/handlers/warnings"
	"hrportal/internal/transport/http/middleware"
)

const jobQueueSize = 256

// Services groups the domain services behind the router.
type Services struct {
	Directory     *auth.Directory
	Sessions      *session.Manager
	Employees     *employees.Service
	Leave         *leave.Service
	Medical       *medical.Service
	Warnings      *disciplinary.Service
	Reviews       *performance.Service
	Audit         *audit.Service
	Notifications *notifications.Service
	Dashboard     *dashboard.Service
}

type App struct {
	Config   config.Config
	DB       *pgxpool.Pool
	Router   http.Handler
	Services Services
	Jobs     *jobs.Service
	Metrics  *metrics.Collector

	publisher notifications.Publisher
	cancel    context.CancelFunc
}

// New wires the application. Without DATABASE_URL sessions and audit events
// live in memory.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg}

	var (
		sessionStore session.Store = session.NewMemoryStore()
		auditStore   audit.Store   = audit.NewMemoryStore()
	)
	if cfg.PersistenceEnabled() {
		if cfg.RunMigrations {
			if err := db.Migrate(cfg.DatabaseURL); err != nil {
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		app.DB = pool
		sessionStore = session.NewPGStore(pool)
		auditStore = audit.NewPGStore(pool)
	}

	if cfg.MetricsEnabled {
		app.Metrics = metrics.New()
	}

	runCtx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel
	app.Jobs = jobs.New(jobQueueSize, app.Metrics)
	app.Jobs.Start(runCtx)

	app.publisher = events.New(slog.Default(), cfg.Kafka)
	directory := auth.NewDirectory()
	notifySvc := notifications.New(notifications.NewMemoryStore(), email.New(cfg.Email), app.publisher, app.Jobs, directory)
	notifySvc.DefaultFrom = cfg.Email.From
	auditSvc := audit.New(auditStore)

	hooks := records.Hooks{Audit: auditSvc, Notifier: notifySvc, Metrics: app.Metrics}
	employeesSvc := employees.NewService(hooks)
	leaveSvc := leave.NewService(employeesSvc, hooks)
	medicalSvc := medical.NewService(employeesSvc, leaveSvc, hooks)
	warningsSvc := disciplinary.NewService(employeesSvc, hooks)
	reviewsSvc := performance.NewService(employeesSvc, hooks)

	app.Services = Services{
		Directory:     directory,
		Sessions:      session.NewManager(directory, sessionStore, cfg.JWTSecret, cfg.SessionTTL),
		Employees:     employeesSvc,
		Leave:         leaveSvc,
		Medical:       medicalSvc,
		Warnings:      warningsSvc,
		Reviews:       reviewsSvc,
		Audit:         auditSvc,
		Notifications: notifySvc,
		Dashboard: &dashboard.Service{
			Leave:     leaveSvc,
			Medical:   medicalSvc,
			Warnings:  warningsSvc,
			Reviews:   reviewsSvc,
			Employees: employeesSvc,
		},
	}

	if cfg.SeedDemoData {
		if err := seed.Load(seed.Targets{
			Directory: directory,
			Employees: employeesSvc,
			Leave:     leaveSvc,
			Medical:   medicalSvc,
			Warnings:  warningsSvc,
			Reviews:   reviewsSvc,
		}); err != nil {
			app.Close()
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	sessions := app.Services.Sessions
	app.Jobs.Every(runCtx, jobs.JobSessionPurge, cfg.SessionPurgeInterval, func(ctx context.Context) error {
		purged, err := sessions.PurgeExpired(ctx)
		if err != nil {
			return fmt.Errorf("purge sessions: %w", err)
		}
		if purged > 0 {
			slog.Info("expired sessions purged", "count", purged)
		}
		return nil
	})

	app.Router = app.routes()
	return app, nil
}

func (a *App) routes() http.Handler {
	cfg := a.Config
	svc := a.Services

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(a.Metrics.Instrument)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if a.DB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := a.DB.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if a.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", a.Metrics.Handler())
	}

	authHandler := authhandler.NewHandler(svc.Sessions)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
		r.Use(middleware.Auth(svc.Sessions))
		r.Use(middleware.SensitiveMutationRateLimit(cfg.LoginRatePerMinute*4, time.Minute))
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

		authHandler.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			authHandler.RegisterRoutes(r)
			employeeshandler.NewHandler(svc.Employees).RegisterRoutes(r)
			leavehandler.NewHandler(svc.Leave).RegisterRoutes(r)
			medicalhandler.NewHandler(svc.Medical).RegisterRoutes(r)
			warningshandler.NewHandler(svc.Warnings).RegisterRoutes(r)
			performancehandler.NewHandler(svc.Reviews).RegisterRoutes(r)
			notificationshandler.NewHandler(svc.Notifications).RegisterRoutes(r)
			dashboardhandler.NewHandler(svc.Dashboard).RegisterRoutes(r)
			audithandler.NewHandler(svc.Audit).RegisterRoutes(r)
		})
	})

	return router
}

// Close stops background jobs and releases external connections.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.Jobs != nil {
		a.Jobs.Wait()
	}
	if closer, ok := a.publisher.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("close event publisher failed", "err", err)
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
