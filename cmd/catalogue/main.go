package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/edison-energies/catalogue/internal/config"
	"github.com/edison-energies/catalogue/internal/db"
	"github.com/edison-energies/catalogue/internal/events"
	"github.com/edison-energies/catalogue/internal/httpserver"
	"github.com/edison-energies/catalogue/internal/logging"
	"github.com/edison-energies/catalogue/internal/mailer"
	loggingmw "github.com/edison-energies/catalogue/internal/middleware/logging"
	"github.com/edison-energies/catalogue/internal/repo"
	"github.com/edison-energies/catalogue/internal/search"
	"github.com/edison-energies/catalogue/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	store := &repo.GormRepo{DB: database}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
	}

	var notifier service.Notifier
	if cfg.SMTPHost != "" && len(cfg.DANotifyTo) > 0 {
		notifier = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword,
			cfg.SMTPFrom, cfg.DANotifyTo, cfg.UploadDir)
	}

	catalogueSvc := &service.CatalogueService{Repo: store}
	daSvc := &service.DAService{Repo: store, Mailer: notifier}
	if producer != nil {
		catalogueSvc.Events = producer
		daSvc.Events = producer
	}
	authSvc := &service.AuthService{Repo: store, JWTSecret: cfg.JWTSecret}
	fileSvc := &service.FileService{Repo: store, Dir: cfg.UploadDir}

	deps := &httpserver.Deps{
		Catalogue: &httpserver.CatalogueHTTP{Svc: catalogueSvc},
		DA:        &httpserver.DAHTTP{Svc: daSvc},
		Auth:      &httpserver.AuthHTTP{Svc: authSvc},
		Files:     &httpserver.FileHTTP{Svc: fileSvc},
	}

	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Printf("warning: elasticsearch unavailable, search endpoint disabled: %v", err)
		} else {
			deps.Search = &httpserver.SearchHTTP{ES: es, Index: cfg.ESIndex}
		}
	}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("catalogue listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("catalogue stopped")
}
