// Package app assembles the state stores around one durable store.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"EduCom/internal/auth"
	"EduCom/internal/cart"
	"EduCom/internal/catalog"
	"EduCom/internal/config"
	"EduCom/internal/interaction"
	"EduCom/internal/kv"
	"EduCom/internal/notify"
	"EduCom/internal/order"
	"EduCom/pkg/kit"
)

const feedSize = 50

type App struct {
	Config *config.AppConfig
	Log    *zap.Logger

	KV       kv.Store
	Registry *prometheus.Registry
	Metrics  *kit.Metrics
	Bus      *notify.Bus
	Feed     *notify.Feed
	Tokens   *auth.TokenMaker

	Session      *auth.Store
	Interactions *interaction.Store
	Cart         *cart.Store
	Catalog      *catalog.Service
	Orders       *order.Service
}

// OpenStore connects the durable store selected by cfg.Driver.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (kv.Store, error) {
	var (
		store kv.Store
		err   error
	)
	switch cfg.Driver {
	case config.DriverMemory:
		store = kv.NewMemStore()
	case config.DriverBolt:
		store, err = kv.OpenBolt(cfg.Bolt.Path)
	case config.DriverRedis:
		store, err = kv.DialRedis(ctx, kv.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	case config.DriverPostgres:
		store, err = kv.OpenPostgres(ctx, cfg.Postgres.DSN)
	default:
		err = fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// New wires every store to store and restores the previous session. The
// returned App owns store and closes it in Close.
func New(ctx context.Context, cfg *config.AppConfig, store kv.Store, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	reg := prometheus.NewRegistry()
	metrics := kit.NewMetrics(reg)

	bus := notify.NewBus()
	feed := notify.NewFeed(feedSize)
	if err := bus.Subscribe(feed.Handle); err != nil {
		return nil, fmt.Errorf("subscribe feed: %w", err)
	}
	if err := bus.LogTo(log); err != nil {
		return nil, fmt.Errorf("subscribe log: %w", err)
	}

	interactions, err := interaction.NewStore(ctx, store, interaction.Options{Log: log, Metrics: metrics})
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}

	carts := cart.NewStore(store, cart.Options{Log: log, Notifier: bus, Metrics: metrics})

	session := auth.NewStore(store, auth.Options{
		Log:      log,
		Notifier: bus,
		Metrics:  metrics,
		Latency: auth.Latency{
			Login:    cfg.Latency.Login,
			Register: cfg.Latency.Register,
		},
		HashPasswords: cfg.Auth.HashPasswords,
	})
	session.Subscribe(interactions)
	session.Subscribe(carts)

	products := catalog.NewService(catalog.NewMemStore(), interactions, catalog.Latency{
		List:    cfg.Latency.Products,
		Get:     cfg.Latency.Product,
		Search:  cfg.Latency.Search,
		Filter:  cfg.Latency.Filter,
		Suggest: cfg.Latency.Suggest,
	}, log)

	orders := order.NewService(order.NewStore(store, log, metrics), carts, order.Options{
		Log:      log,
		Notifier: bus,
		Metrics:  metrics,
		Latency:  cfg.Latency.Checkout,
	})

	if sess, ok, err := session.Restore(ctx); err != nil {
		return nil, err
	} else if ok {
		log.Info("resumed session", zap.String("user_id", sess.UserID))
	}

	return &App{
		Config:       cfg,
		Log:          log,
		KV:           store,
		Registry:     reg,
		Metrics:      metrics,
		Bus:          bus,
		Feed:         feed,
		Tokens:       auth.NewTokenMaker(cfg.Auth.JWTSecret),
		Session:      session,
		Interactions: interactions,
		Cart:         carts,
		Catalog:      products,
		Orders:       orders,
	}, nil
}

// Ready reports whether the durable store answers.
func (a *App) Ready(ctx context.Context) error {
	return errors.Join(a.KV.Ping(ctx), a.Catalog.Ping(ctx))
}

func (a *App) Close() error {
	return a.KV.Close()
}
