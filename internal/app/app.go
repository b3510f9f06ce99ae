package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/alejomeek/cotizaciones/internal/app/config"
	apphttp "github.com/alejomeek/cotizaciones/internal/app/http"
	"github.com/alejomeek/cotizaciones/internal/app/http/handlers"
	"github.com/alejomeek/cotizaciones/internal/domain/quote"
	pdfgen "github.com/alejomeek/cotizaciones/internal/domain/quote/pdf/gofpdf"
	"github.com/alejomeek/cotizaciones/internal/infra/db/memory"
	"github.com/alejomeek/cotizaciones/internal/infra/db/postgres"
	"github.com/alejomeek/cotizaciones/internal/infra/logger"
)

func Run() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	var (
		repo quote.Repository
		seq  quote.Sequencer
	)
	if cfg.DatabaseURL == "" {
		// Quotes and counters live in process memory only; the cart and
		// PDF features keep working without storage credentials.
		log.Warn("DATABASE_URL not set, persistence is process-local")
		repo = memory.NewQuoteRepository()
		seq = memory.NewSequencer()
	} else {
		if err := runMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
			log.Error("migrations failed", "err", err)
			os.Exit(1)
		}
		db, err := postgres.New(cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			log.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		repo = postgres.NewQuoteRepository(db)
		seq = postgres.NewSequencer(db)
	}

	gen := pdfgen.New(pdfgen.Options{
		Company: pdfgen.Company{
			Name:    cfg.Company.Name,
			TaxID:   cfg.Company.TaxID,
			Phone:   cfg.Company.Phone,
			Email:   cfg.Company.Email,
			Address: cfg.Company.Address,
		},
		LogoPath:         cfg.LogoPath,
		FontDir:          cfg.FontDir,
		FreightThreshold: cfg.FreightThreshold,
	})

	h := handlers.New(cfg, log, repo, seq, gen)
	router := apphttp.NewRouter(cfg, log, h)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
			stop()
		}
	}()
	log.Info("listening", "addr", cfg.HTTPAddr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func runMigrations(dsn, dir string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, dir)
}
