package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jeomhps/hotelbooking-api/internal/config"
	"github.com/Jeomhps/hotelbooking-api/internal/logging"
	"github.com/Jeomhps/hotelbooking-api/internal/server"
	"github.com/Jeomhps/hotelbooking-api/internal/store"
	"github.com/Jeomhps/hotelbooking-api/internal/store/jsonstore"
	"github.com/Jeomhps/hotelbooking-api/internal/store/sqlstore"
	"github.com/Jeomhps/hotelbooking-api/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// Optional .env for local runs
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: cfg.ServiceName,
		Stdout:      cfg.OTelStdout,
	})
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}

	repo, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer repo.Close()

	gin.SetMode(gin.ReleaseMode)
	r := server.New(server.Options{
		Repo:          repo,
		Log:           log,
		CORSOrigins:   cfg.AllowedOrigins(),
		DocsServerURL: cfg.ServerURL(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.WithError(err).Warn("http shutdown")
		}
		if err := shutdownTracing(sctx); err != nil {
			log.WithError(err).Warn("telemetry shutdown")
		}
	}()

	log.WithFields(logrus.Fields{"addr": cfg.Addr(), "store": cfg.StoreDriver}).Info("The server is running")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http: %v", err)
	}
	log.Info("stopped")
}

// openStore picks the record store backend from config.
func openStore(ctx context.Context, cfg config.Config, log *logrus.Logger) (store.Repository, error) {
	switch cfg.StoreDriver {
	case config.StoreMySQL, config.StorePostgres:
		driver := sqlstore.DriverMySQL
		if cfg.StoreDriver == config.StorePostgres {
			driver = sqlstore.DriverPostgres
		}
		s, err := sqlstore.Open(ctx, driver, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		s, err := jsonstore.Open(cfg.DBPath, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
