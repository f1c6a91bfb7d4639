package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/fazendaapp/fazenda-backend/api/routes"
	"github.com/fazendaapp/fazenda-backend/internal/auth"
	"github.com/fazendaapp/fazenda-backend/internal/cron"
	"github.com/fazendaapp/fazenda-backend/internal/files"
	"github.com/fazendaapp/fazenda-backend/internal/herd"
	"github.com/fazendaapp/fazenda-backend/internal/incidents"
	"github.com/fazendaapp/fazenda-backend/internal/licenses"
	"github.com/fazendaapp/fazenda-backend/internal/lifecycle"
	"github.com/fazendaapp/fazenda-backend/internal/seed"
	"github.com/fazendaapp/fazenda-backend/internal/supplies"
	"github.com/fazendaapp/fazenda-backend/internal/tasks"
	"github.com/fazendaapp/fazenda-backend/internal/telemetry"
	"github.com/fazendaapp/fazenda-backend/internal/tickets"
	"github.com/fazendaapp/fazenda-backend/internal/users"
	"github.com/fazendaapp/fazenda-backend/internal/workers"
	"github.com/fazendaapp/fazenda-backend/pkg/config"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
	"github.com/fazendaapp/fazenda-backend/pkg/logger"
	"github.com/fazendaapp/fazenda-backend/pkg/metrics"
)

const shutdownGrace = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fazenda-api: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logg := logger.New(logger.Options{
		ServiceName: "fazenda-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		err = multierr.Append(err, store.Close())
	}()

	m := metrics.New(prometheus.DefaultRegisterer)

	deps, err := buildDependencies(ctx, cfg, logg, m, store)
	if err != nil {
		return err
	}

	if cfg.Cron.Enabled {
		cronSvc, cronErr := buildCron(cfg, logg, store, deps)
		if cronErr != nil {
			return cronErr
		}
		go func() {
			if runErr := cronSvc.Run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
				logg.Error(ctx, "cron.stopped", runErr)
			}
		}()
	}

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "server.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case serveErr := <-errCh:
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
	case <-ctx.Done():
		logg.Info(context.Background(), "server.shutting_down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			err = multierr.Append(err, shutdownErr)
		}
	}
	return err
}

func openStore(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Store.Driver)) {
	case config.StoreDriverMemory:
		return kv.NewMemory(), nil
	case config.StoreDriverRedis:
		return kv.NewRedis(ctx, cfg.Redis)
	default:
		return kv.NewSQLite(cfg.Store.SQLitePath)
	}
}

func buildCron(cfg *config.Config, logg *logger.Logger, store kv.Store, deps routes.Dependencies) (*cron.Service, error) {
	lock, err := cron.NewStoreLock(store, kv.Key(cfg.Store.Namespace, "cron_lock"), cfg.Cron.LockTTL)
	if err != nil {
		return nil, err
	}
	expiryJob, err := cron.NewExpiryJob(cron.ExpiryJobParams{
		Logger:   logg,
		Users:    deps.Users,
		Licenses: deps.Licenses,
	})
	if err != nil {
		return nil, err
	}
	return cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(expiryJob),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Cron.Interval,
	})
}

func buildDependencies(ctx context.Context, cfg *config.Config, logg *logger.Logger, m *metrics.AppMetrics, store kv.Store) (routes.Dependencies, error) {
	namespace := cfg.Store.Namespace

	usersRepo, err := users.NewRepository(ctx, store, namespace, m)
	if err != nil {
		return routes.Dependencies{}, err
	}
	licensesRepo, err := licenses.NewRepository(ctx, store, namespace, m)
	if err != nil {
		return routes.Dependencies{}, err
	}
	ticketsRepo, err := tickets.NewRepository(ctx, store, namespace, m)
	if err != nil {
		return routes.Dependencies{}, err
	}
	herdRepo, err := herd.NewRepository(ctx, store, namespace, m)
	if err != nil {
		return routes.Dependencies{}, err
	}
	incidentsRepo, err := incidents.NewRepository(ctx, store, namespace, m)
	if err != nil {
		return routes.Dependencies{}, err
	}
	workersRepo, err := workers.NewRepository(ctx, store, namespace, m)
	if err != nil {
		return routes.Dependencies{}, err
	}
	tasksRepo, err := tasks.NewRepository(ctx, store, namespace, m)
	if err != nil {
		return routes.Dependencies{}, err
	}
	suppliesRepo, err := supplies.NewRepository(ctx, store, namespace, m)
	if err != nil {
		return routes.Dependencies{}, err
	}
	filesRepo, err := files.NewRepository(ctx, store, namespace, m)
	if err != nil {
		return routes.Dependencies{}, err
	}

	if cfg.Seed.Enabled {
		if err := seed.Run(ctx, logg, seed.Repositories{
			Users:     usersRepo,
			Licenses:  licensesRepo,
			Tickets:   ticketsRepo,
			Herd:      herdRepo,
			Incidents: incidentsRepo,
			Workers:   workersRepo,
			Tasks:     tasksRepo,
			Supplies:  suppliesRepo,
		}, time.Now()); err != nil {
			return routes.Dependencies{}, fmt.Errorf("seeding demo data: %w", err)
		}
	}

	authSvc, err := auth.NewService(usersRepo, licensesRepo, store, namespace, auth.WithObserver(m))
	if err != nil {
		return routes.Dependencies{}, err
	}
	lifecycleSvc, err := lifecycle.NewService(usersRepo, licensesRepo, cfg.Plans.TrialDays, cfg.Plans.ReactivationMonths)
	if err != nil {
		return routes.Dependencies{}, err
	}
	telemetrySvc, err := telemetry.NewService(workersRepo, incidentsRepo, tasksRepo, cfg.Tracker.NoiseFloorMeters)
	if err != nil {
		return routes.Dependencies{}, err
	}
	ticketsSvc, err := tickets.NewService(ticketsRepo, usersRepo, licensesRepo)
	if err != nil {
		return routes.Dependencies{}, err
	}

	return routes.Dependencies{
		Config:    cfg,
		Logger:    logg,
		Metrics:   m,
		Store:     store,
		Auth:      authSvc,
		Lifecycle: lifecycleSvc,
		Telemetry: telemetrySvc,
		Tickets:   ticketsSvc,
		Users:     usersRepo,
		Licenses:  licensesRepo,
		Herd:      herdRepo,
		Incidents: incidentsRepo,
		Workers:   workersRepo,
		Tasks:     tasksRepo,
		Supplies:  suppliesRepo,
		Files:     filesRepo,
	}, nil
}
