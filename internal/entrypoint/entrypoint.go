package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookalchemy/internal/audit"
	"github.com/mrlokans/bookalchemy/internal/catalog"
	"github.com/mrlokans/bookalchemy/internal/config"
	"github.com/mrlokans/bookalchemy/internal/database"
	auditrepo "github.com/mrlokans/bookalchemy/internal/database/audit"
	http_controllers "github.com/mrlokans/bookalchemy/internal/http"
	"github.com/mrlokans/bookalchemy/internal/metadata"
	"github.com/mrlokans/bookalchemy/internal/scheduler"
	"github.com/mrlokans/bookalchemy/internal/tasks"
)

const taskStopTimeout = 5 * time.Second

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired components of a running catalog.
type App struct {
	DB        *database.Database
	Catalog   *catalog.Service
	Auditor   *audit.Service
	Tasks     *tasks.Client
	Retention *scheduler.RetentionScheduler
	Router    *gin.Engine

	// ctx scopes background work and is cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSummaryResolver builds the Open Library resolver, or a no-op resolver
// when summary lookups are disabled.
func NewSummaryResolver(cfg config.OpenLibrary) metadata.SummaryResolver {
	if !cfg.Enabled {
		log.Printf("Summary lookup disabled, books will be stored without summaries")
		return metadata.NoopResolver{}
	}
	return metadata.NewOpenLibraryClient(metadata.ClientConfig{
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	})
}

// NewApp opens the database, starts the task queue and wires the catalog,
// audit trail and router. Startup queues an audit retention cleanup.
func NewApp(cfg *config.Config, version string) (*App, error) {
	db, err := database.Open(cfg.Database.Path, cfg.Database.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	taskCfg := tasks.DefaultConfig()
	taskCfg.Workers = cfg.Tasks.Workers
	taskClient, err := tasks.NewClient(cfg.Database.Path, taskCfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize task queue: %w", err)
	}

	auditor := audit.NewService(auditrepo.NewRepository(db.DB))
	taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditor))

	ctx, cancel := context.WithCancel(context.Background())
	go taskClient.Start(ctx)

	retention := scheduler.NewRetentionScheduler(taskClient, cfg.Audit.RetentionDays, cfg.Audit.CleanupSchedule)
	if cfg.Audit.RetentionDays > 0 {
		if _, err := retention.RunOnce(); err != nil {
			log.Printf("WARNING: failed to queue audit retention cleanup: %v", err)
		}
	}

	svc := catalog.NewServiceFromDB(db.DB, NewSummaryResolver(cfg.OpenLibrary))
	svc.SetAuditService(auditor)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Books:    svc,
		Authors:  svc,
		Audit:    auditor,
		Database: db,
		Version:  version,
	})

	return &App{
		DB:        db,
		Catalog:   svc,
		Auditor:   auditor,
		Tasks:     taskClient,
		Retention: retention,
		Router:    router,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// StartBackground starts the audit retention schedule. It runs until Close.
func (a *App) StartBackground() error {
	return a.Retention.Start(a.ctx)
}

// Close stops background jobs, flushes pending audit events and closes the
// databases.
func (a *App) Close() error {
	a.Retention.Stop()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), taskStopTimeout)
	defer stopCancel()
	a.Tasks.Stop(stopCtx)
	a.cancel()

	a.Auditor.Wait()
	if err := a.Tasks.Close(); err != nil {
		log.Printf("Error closing task client: %v", err)
	}
	return a.DB.Close()
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Runs after in-flight requests drain so their audit events are flushed
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting BookAlchemy v%s", version)

	app, err := NewApp(cfg, version)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.StartBackground(); err != nil {
		log.Fatalf("Failed to start audit retention scheduler: %v", err)
	}

	onShutdown := func(ctx context.Context) {
		if err := app.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}

	Serve(app.Router, cfg, onShutdown)
}
