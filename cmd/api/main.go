package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ct-storefront/internal/cache"
	"ct-storefront/internal/commercetools"
	"ct-storefront/internal/config"
	"ct-storefront/internal/db"
	"ct-storefront/internal/httpserver"
	"ct-storefront/internal/logging"
	cartrepo "ct-storefront/internal/repository/cart"
	customerrepo "ct-storefront/internal/repository/customer"
	orderrepo "ct-storefront/internal/repository/order"
	productrepo "ct-storefront/internal/repository/product"
	projectrepo "ct-storefront/internal/repository/project"
	shippingrepo "ct-storefront/internal/repository/shipping"
	cartsvc "ct-storefront/internal/service/cart"
	catalogsvc "ct-storefront/internal/service/catalog"
	customersvc "ct-storefront/internal/service/customer"
	productsvc "ct-storefront/internal/service/product"
	"ct-storefront/internal/session"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.New(cfg.IsProd())
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()
	api := commercetools.New(ctx, commercetools.Config{
		ClientID:     cfg.CTClientID,
		ClientSecret: cfg.CTClientSecret,
		ProjectKey:   cfg.CTProjectKey,
		AuthURL:      cfg.CTAuthURL,
		APIURL:       cfg.CTAPIURL,
		Scopes:       cfg.CTScopes,
	}, logger.Named("commercetools"))

	var store cache.Cache = cache.NewMemory()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, catalog cache may miss", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		store = cache.NewRedis(client, "ct-storefront:")
		logger.Info("catalog cache backed by redis", zap.String("addr", cfg.RedisAddr))
	}

	var (
		dbpool *pgxpool.Pool
		ledger orderrepo.Ledger
	)
	if cfg.DBConnString != "" {
		dbpool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatal("connect to db", zap.Error(err))
		}
		defer dbpool.Close()
		ledger = orderrepo.NewPostgres(dbpool)
	} else {
		logger.Info("DB_DSN not set, order ledger disabled")
	}

	catalogService := catalogsvc.New(projectrepo.NewPlatform(api), store, cfg.CatalogCacheTTL, logger.Named("catalog"))
	productService := productsvc.New(productrepo.NewPlatform(api, logger.Named("product")), catalogService, logger.Named("product"))
	cartService := cartsvc.New(
		cartrepo.NewPlatform(api),
		shippingrepo.NewPlatform(api),
		orderrepo.NewPlatform(api),
		ledger,
		logger.Named("cart"),
	)
	customerService := customersvc.New(customerrepo.NewPlatform(api), ledger, logger.Named("customer"))

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:           catalogService,
		Products:          productService,
		Carts:             cartService,
		Customers:         customerService,
		Sessions:          session.NewCodec(cfg.SessionSecret, cfg.SessionTTL, logger.Named("session")),
		CookieName:        cfg.SessionCookie,
		CookieSecure:      cfg.IsProd(),
		FrontendURL:       cfg.FrontendURL,
		AuthRatePerMinute: cfg.AuthRatePerMinute,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
