package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"EduCom/internal/app"
	"EduCom/internal/config"
	"EduCom/internal/shop"
	"EduCom/pkg/kit"
)

func main() {
	service := "shop"
	configPath := flag.String("config", "", "path to a config file (default: ./config.yaml if present)")
	flag.Parse()

	// A local .env only fills variables the environment does not already set.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log := kit.NewLogger(service)
		log.Fatal("load config failed", zap.Error(err))
	}

	log := kit.NewLoggerWith(service, kit.LogOptions{Level: cfg.Log.Level, File: cfg.Log.File})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("open storage failed", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}

	a, err := app.New(ctx, cfg, store, log)
	if err != nil {
		_ = store.Close()
		log.Fatal("init state failed", zap.Error(err))
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("close storage", zap.Error(err))
		}
	}()

	h := shop.NewHandler(&shop.Server{Log: log, App: a, TokenTTL: cfg.Auth.TokenTTL}, shop.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       a.Registry,
		Metrics:        a.Metrics,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	log.Info("starting",
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.Storage.Driver),
	)
	if err := kit.RunHTTPServer(ctx, cfg.HTTP.Addr, h, log); err != nil {
		log.Error("http server stopped", zap.Error(err))
	}
}

func loadConfig(path string) (*config.AppConfig, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
