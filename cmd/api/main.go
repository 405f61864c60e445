package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sharifahmad/medimart-backend/api/routes"
	"github.com/sharifahmad/medimart-backend/internal/cart"
	"github.com/sharifahmad/medimart-backend/internal/categories"
	"github.com/sharifahmad/medimart-backend/internal/medicines"
	"github.com/sharifahmad/medimart-backend/internal/payments"
	"github.com/sharifahmad/medimart-backend/internal/promotions"
	"github.com/sharifahmad/medimart-backend/internal/users"
	"github.com/sharifahmad/medimart-backend/pkg/config"
	"github.com/sharifahmad/medimart-backend/pkg/db"
	"github.com/sharifahmad/medimart-backend/pkg/logger"
	"github.com/sharifahmad/medimart-backend/pkg/metrics"
	"github.com/sharifahmad/medimart-backend/pkg/migrate"
	"github.com/sharifahmad/medimart-backend/pkg/pubsub"
	"github.com/sharifahmad/medimart-backend/pkg/redis"
	"github.com/sharifahmad/medimart-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	// Pub/Sub is optional: without a project id the paid events are skipped.
	var publisher *pubsub.Client
	if cfg.GCP.ProjectID != "" {
		publisher, err = pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "pubsub disabled: no GCP project configured")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	usersRepo := users.NewRepository(dbClient.DB())
	usersService, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	categoriesRepo := categories.NewRepository(dbClient.DB())
	medicinesRepo := medicines.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())

	categoriesService, err := categories.NewService(categoriesRepo, medicinesRepo, cartRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create categories service", err)
		os.Exit(1)
	}

	medicinesService, err := medicines.NewService(medicinesRepo, categoriesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create medicines service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	var eventPublisher payments.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	paymentsService, err := payments.NewService(payments.NewRepository(dbClient.DB()), stripeClient, eventPublisher, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	promotionsService, err := promotions.NewService(promotions.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create promotions service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			HTTPMetrics: httpMetrics,
			MetricsHTTP: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			Users:       usersService,
			Categories:  categoriesService,
			Medicines:   medicinesService,
			Cart:        cartService,
			Payments:    paymentsService,
			Promotions:  promotionsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
