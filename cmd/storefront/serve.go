package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/account"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/badge"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/storefront-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/handlers"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/kv"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/latency"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/promo"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/wishlist"
)

const purgeInterval = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, logger)
	},
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	a, err := build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
	return nil
}

// app is the wired service plus the cleanup for everything it opened.
type app struct {
	handler http.Handler
	closers []func()
}

func (a *app) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// close runs cleanups in reverse order of registration.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	a := &app{}
	wired := false
	defer func() {
		if !wired {
			a.close()
		}
	}()

	flow, err := checkout.ParseFlow(cfg.CheckoutFlow)
	if err != nil {
		return nil, err
	}
	codes, err := promo.ParseCodes(cfg.PromoCodes)
	if err != nil {
		return nil, err
	}

	var probes []handlers.HealthProbe

	// --- key-value store ---
	var store kv.Store
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    []string{cfg.RedisAddr},
			Password: cfg.RedisPassword,
		})
		a.onClose(func() { _ = client.Close() })
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		store = kv.NewRedisStore(client)
		probes = append(probes, handlers.HealthProbe{Name: "redis", Check: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})

	case config.BackendPostgres:
		if cfg.RunMigrations {
			if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
				return nil, fmt.Errorf("db migrate: %w", err)
			}
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		a.onClose(pool.Close)

		pgStore := kv.NewPostgresStore(pool)
		store = pgStore
		a.onClose(startPurger(ctx, pgStore, logger))
		probes = append(probes, handlers.HealthProbe{Name: "postgres", Check: pool.Ping})

	default:
		store = kv.NewMemoryStore()
	}

	// --- orders + event sequences ---
	var orders order.Repository = order.NewMemoryRepository()
	var seq events.SequenceRepository = events.NewMemorySequence()
	if cfg.StoreBackend == config.BackendPostgres {
		sqlDB, err := db.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		a.onClose(func() { _ = sqlDB.Close() })
		orders = order.NewRepository(sqlDB)
		seq = events.NewSequenceRepository(sqlDB)
	}

	// --- AMQP ---
	var publisher events.OrderPublisher = events.LogPublisher{Logger: logger}
	if cfg.RabbitMQURL != "" {
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			return nil, err
		}
		a.onClose(func() { _ = conn.Close() })

		p, err := events.NewPublisher(conn, seq, logger)
		if err != nil {
			return nil, fmt.Errorf("create order publisher: %w", err)
		}
		a.onClose(func() {
			if err := p.Close(); err != nil {
				logger.Warn("publisher close error", zap.Error(err))
			}
		})
		publisher = p
		probes = append(probes, handlers.HealthProbe{Name: "rabbitmq", Check: func(context.Context) error {
			if conn.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}})
	}

	// --- domain ---
	bus := events.NewBus()
	cat := catalog.Default()
	rates := pricing.DefaultRates()

	carts := cart.NewService(cart.NewRepository(store, cfg.SessionTTL, logger), cat, rates, bus, logger)
	wl := wishlist.NewService(store, cfg.SessionTTL, cat, carts, bus, logger)
	co := checkout.NewController(checkout.Deps{
		Flow:      flow,
		Sessions:  checkout.NewSessionRepository(store, cfg.SessionTTL, logger),
		Carts:     carts,
		Promos:    promo.NewCodeValidator(codes, latency.Fixed(cfg.PromoDelay)),
		Orders:    orders,
		Publisher: publisher,
		Delivery:  cart.DeliveryPolicy{FreeThreshold: cfg.FreeDeliveryThreshold, Fee: cfg.DeliveryFee},
		Logger:    logger,
	})
	accounts := account.NewLocalAuthenticator(store, cfg.SessionTTL, latency.Fixed(cfg.AuthDelay), logger)
	board := badge.NewBoard(bus, carts, wl, cfg.SessionTTL)
	a.onClose(board.Close)

	a.handler = httpapi.NewRouter(httpapi.Deps{
		Logger:       logger,
		Cfg:          cfg,
		Catalog:      cat,
		Prices:       rates,
		Carts:        carts,
		Wishlist:     wl,
		Checkout:     co,
		Accounts:     accounts,
		Orders:       orders,
		Badges:       board,
		HealthProbes: probes,
	})
	wired = true
	return a, nil
}

// startPurger deletes expired Postgres entries until the returned stop is called.
func startPurger(ctx context.Context, s *kv.PostgresStore, logger *zap.Logger) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		t := time.NewTicker(purgeInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				n, err := s.PurgeExpired(ctx)
				if err != nil {
					logger.Warn("purge expired entries", zap.Error(err))
					continue
				}
				if n > 0 {
					logger.Debug("purged expired entries", zap.Int64("count", n))
				}
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
