package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shophub/storefront/internal"
	"github.com/shophub/storefront/internal/api"
	"github.com/shophub/storefront/internal/billing"
	"github.com/shophub/storefront/internal/cart"
	"github.com/shophub/storefront/internal/checkout"
	"github.com/shophub/storefront/internal/currency"
	"github.com/shophub/storefront/internal/handler/storefront"
	"github.com/shophub/storefront/internal/middleware"
	"github.com/shophub/storefront/internal/pricing"
	"github.com/shophub/storefront/internal/router"
	"github.com/shophub/storefront/internal/session"
	"github.com/shophub/storefront/internal/storage"
	"github.com/shophub/storefront/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Durable state: cart and session survive restarts, checkout scratch
	// state lives beside them.
	durable, err := storage.NewLocalStorage(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open data directory: %w", err)
	}
	transient, err := storage.NewLocalStorage(filepath.Join(cfg.DataDir, "checkout"))
	if err != nil {
		return fmt.Errorf("failed to open checkout directory: %w", err)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	storeMetrics := telemetry.NewStoreMetrics(registry)
	httpMetrics := middleware.NewMetrics(registry, "storefront")

	// Session and backend API client
	sessions := session.NewStore(durable, logger)
	if err := sessions.Load(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	apiClient := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	}, sessions, logger)

	// Cart
	cartStore := cart.NewStore(durable, logger, storeMetrics)
	if err := cartStore.Load(ctx); err != nil {
		return fmt.Errorf("failed to restore cart: %w", err)
	}

	// Pricing
	calculator := pricing.NewCalculator(pricing.Config{
		FreeShippingThresholdCents: cfg.Pricing.FreeShippingThresholdCents,
		FlatShippingFeeCents:       cfg.Pricing.FlatShippingFeeCents,
		TaxRate:                    cfg.Pricing.TaxRate,
	})
	formatter := currency.NewFormatter(cfg.Store.Currency)

	// Payment gateway
	var provider billing.Provider
	switch cfg.Gateway.Provider {
	case "stripe":
		provider = billing.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.PublishableKey, logger)
	default:
		provider = billing.NewRemoteProvider(apiClient, cfg.Gateway.Provider)
	}
	gateway := billing.NewHostedGateway()

	// Checkout flows
	newFlow := func() *checkout.Flow {
		return checkout.NewFlow(checkout.Deps{
			Cart:      cartStore,
			Pricing:   calculator,
			Orders:    apiClient,
			Provider:  provider,
			Gateway:   gateway,
			Session:   sessions,
			Transient: transient,
			Logger:    logger,
			Metrics:   storeMetrics,
			Config: checkout.Config{
				StoreName:  cfg.Store.Name,
				Currency:   cfg.Store.Currency,
				ThemeColor: cfg.Store.ThemeColor,
			},
		})
	}

	// HTTP surface
	handlers := router.Handlers{
		Cart:     storefront.NewCartHandler(cartStore, calculator, formatter, logger),
		Checkout: storefront.NewCheckoutHandler(newFlow, logger),
		Gateway:  storefront.NewGatewayHandler(gateway, logger),
		Products: storefront.NewProductHandler(apiClient, formatter, logger),
		Orders:   storefront.NewOrderHandler(apiClient, formatter, logger),
	}
	handler := router.New(handlers, httpMetrics, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute, // payment long-poll holds the response open
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting storefront", "port", cfg.Port, "env", cfg.Env, "gateway", cfg.Gateway.Provider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("Storefront stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
