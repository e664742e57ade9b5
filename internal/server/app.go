// Package server assembles and runs the tutor backend: it opens the
// database, applies migrations, builds the services and serves the JSON API
// and the gRPC health endpoint until the context is cancelled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/aitutor/internal/logging"
	"github.com/dmitrijs2005/aitutor/internal/server/aiclient"
	"github.com/dmitrijs2005/aitutor/internal/server/config"
	"github.com/dmitrijs2005/aitutor/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/aitutor/internal/server/services"
	"github.com/dmitrijs2005/aitutor/internal/server/storage"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/aitutor/internal/server/grpc"
	hs "github.com/dmitrijs2005/aitutor/internal/server/http"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *hs.HTTPServer
	grpc   *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	ai, err := aiclient.New(c.AIServiceURL, c.AIRequestTimeout)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ai client init error: %w", err)
	}

	var archiver services.Archiver
	s3, err := storage.NewS3Archiver(ctx, c)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	if s3 != nil {
		archiver = s3
	} else {
		logger.Warn(ctx, "S3 bucket not configured, uploaded PDFs will not be archived")
	}

	accounts := services.NewAccountService(db, m, c)
	usage := services.NewUsageService(db, m)
	stats := services.NewStatsService(db, m)
	bs := services.NewBadgeService(db, m)
	tutor := services.NewTutorService(ai, usage, stats, bs, archiver, logger)

	h := hs.NewHandler(accounts, usage, stats, bs, tutor, logger)
	app := &App{
		config: c,
		logger: logger,
		db:     db,
		http:   hs.NewHTTPServer(c.HTTPAddr, hs.NewRouter(h, c.CORSOrigins), logger),
	}
	if c.GRPCAddr != "" {
		app.grpc = gs.NewGRPCServer(c.GRPCAddr, logger, db)
	}
	return app, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM/SIGQUIT arrives. The
// first server failure stops the others.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.http.Run(ctx) })
	if app.grpc != nil {
		g.Go(func() error { return app.grpc.Run(ctx) })
	}

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "app stopped", "error", err)
	} else {
		app.logger.Info(ctx, "app stopped")
	}
	return err
}
