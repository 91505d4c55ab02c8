// Command server runs the EcoAgua storefront.
//
//	@title			EcoAgua Storefront
//	@version		1.0
//	@description	Server-rendered storefront for water-saving products.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/ecoagua/storefront/docs"
	"github.com/ecoagua/storefront/internal/api"
	"github.com/ecoagua/storefront/internal/api/middleware"
	"github.com/ecoagua/storefront/internal/api/render"
	"github.com/ecoagua/storefront/internal/core/domain"
	"github.com/ecoagua/storefront/internal/core/service"
	mongodb "github.com/ecoagua/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/ecoagua/storefront/internal/infrastructure/db/redis"
	"github.com/ecoagua/storefront/internal/infrastructure/http/handlers"
	"github.com/ecoagua/storefront/internal/infrastructure/queue"
	"github.com/ecoagua/storefront/internal/pkg/config"
	"github.com/ecoagua/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Env:    cfg.Env,
	})

	logoutMode := domain.ParseLogoutMode(cfg.Auth.LogoutMode)
	if string(logoutMode) != cfg.Auth.LogoutMode {
		log.Warn().Str("logout_mode", cfg.Auth.LogoutMode).Msg("unknown LOGOUT_MODE, using destroy")
	}

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	productRepo := mongodb.NewProductRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	checkoutRepo := mongodb.NewCheckoutRepository(db)
	sessions := redisdb.NewSessionStore(rdb, cfg.Session.TTL)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if cfg.Catalog.Seed {
		if err := mongodb.SeedCatalog(ctx, productRepo, mongodb.DefaultCatalog); err != nil {
			log.Fatal().Err(err).Msg("failed to seed catalog")
		}
		log.Info().Int("products", len(mongodb.DefaultCatalog)).Msg("catalog seeded")
	}

	// --- Receipt workers ---
	dispatcher := queue.NewDispatcher(
		cfg.Checkout.ReceiptWorkers,
		checkoutRepo,
		redisdb.NewReceiptDedup(rdb, cfg.Checkout.DedupWindow),
		logger.Component("receipts"),
	)
	dispatcher.Start(ctx)

	// --- Services ---
	cartSvc := service.NewCartService(productRepo, sessions, cfg.Catalog.PageSize, logger.Component("cart"))
	checkoutSvc := service.NewCheckoutService(sessions, dispatcher, cfg.Checkout.ClearCart, logger.Component("checkout"))
	authSvc := service.NewAuthService(userRepo, sessions, cfg.Auth.BcryptCost, logoutMode, logger.Component("auth"))

	renderer, err := render.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse templates")
	}

	e := api.NewRouter(api.Deps{
		Log:      log,
		Renderer: renderer,
		Sessions: sessions,
		Catalog:  cartSvc,
		Cart:     cartSvc,
		Checkout: checkoutSvc,
		Auth:     authSvc,
		Cookie: middleware.CookieConfig{
			Secret: cfg.Session.Secret,
			MaxAge: cfg.Session.TTL,
			Secure: cfg.IsProduction(),
		},
		LogoutMode: logoutMode,
		StaticDir:  cfg.StaticDir,
		Checks: map[string]handlers.Checker{
			"mongodb": handlers.MongoChecker(db),
			"redis":   handlers.RedisChecker(rdb),
		},
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("storefront listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	// In-flight checkouts have finished; store whatever they queued.
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("receipt queue not fully drained")
	}
}
