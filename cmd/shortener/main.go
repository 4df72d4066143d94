package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/encurtador/shortener/internal/app"
	"github.com/encurtador/shortener/internal/config"
	"github.com/encurtador/shortener/internal/logger"
	"github.com/encurtador/shortener/internal/store"
	"github.com/encurtador/shortener/internal/store/memory"
	"github.com/encurtador/shortener/internal/store/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func newStore(ctx context.Context, conf *config.ServerConfig, logger *zap.SugaredLogger) (store.Store, error) {
	if conf.DatabaseDSN != "" {
		return postgres.NewPostgresStore(ctx, conf.DatabaseDSN)
	}

	logger.Infoln("no DSN configured, using in-memory storage")
	return memory.NewMemoryStorage()
}

func run() error {
	conf, err := config.ParseFlags()
	if err != nil {
		return err
	}

	logger, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // flushing on exit

	ctx := context.Background()
	storage, err := newStore(ctx, conf, logger)
	if err != nil {
		return err
	}
	defer storage.Close(ctx) //nolint:errcheck // closing on exit

	shortenerApp := app.NewApp(conf, storage, logger)
	r, err := shortenerApp.SetupRouter()
	if err != nil {
		return err
	}

	logger.Infow("starting server", "addr", conf.RunAddr)
	return http.ListenAndServe(conf.RunAddr, r)
}
