package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/mjtech-br/catalog-proxy/internal/api/dashboard"
	"github.com/mjtech-br/catalog-proxy/internal/api/handlers"
	"github.com/mjtech-br/catalog-proxy/internal/api/middleware"
	"github.com/mjtech-br/catalog-proxy/internal/cache"
	"github.com/mjtech-br/catalog-proxy/internal/config"
	"github.com/mjtech-br/catalog-proxy/internal/feed"
	"github.com/mjtech-br/catalog-proxy/internal/meli"
	"github.com/mjtech-br/catalog-proxy/internal/session"
	"github.com/mjtech-br/catalog-proxy/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog feed server",
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	tokens := meli.NewOAuthTokenProvider(
		cfg.Meli.ClientID,
		cfg.Meli.ClientSecret,
		meli.WithTokenURL(cfg.Meli.TokenURL),
	)

	users := meli.NewUserClient(tokens, meli.WithUsersAPIURL(cfg.Meli.APIURL))

	limiter := meli.NewRateLimiter(
		cfg.Meli.RateLimit.PerSecond,
		cfg.Meli.RateLimit.Burst,
		cfg.Meli.RateLimit.DailyLimit,
	)

	search := meli.NewSearchClient(tokens,
		meli.WithSearchAPIURL(cfg.Meli.APIURL),
		meli.WithSite(cfg.Meli.Site),
		meli.WithRateLimiter(limiter),
	)

	sess := session.New()
	if cfg.Meli.SellerID != "" {
		sess = session.NewWithSeller(cfg.Meli.SellerID)
		log.Info("using configured seller id", "seller_id", cfg.Meli.SellerID)
	}
	resolver := session.NewResolver(users, sess, log)

	store := buildStore(cfg, log)

	fetcher := feed.NewFetcher(tokens, resolver, sess, search, feed.Options{
		Category: cfg.Meli.Category,
		Limit:    cfg.Meli.Limit,
		Sort:     cfg.Meli.Sort,
	}, log)

	svc := feed.NewService(store, fetcher, cfg.Cache.TTL, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	dashboard.RegisterRoutes(e)

	api := humaecho.New(e, huma.DefaultConfig("Catalog Proxy API", Version))
	handlers.RegisterProductsRoutes(api, handlers.NewProductsHandler(svc, sess))
	handlers.RegisterRefreshRoutes(api, handlers.NewRefreshHandler(svc))
	handlers.RegisterHealthRoutes(
		api,
		handlers.NewHealthHandler(cfg, sess, tokens, svc, Version),
	)
	handlers.RegisterConfigRoutes(api, handlers.NewConfigHandler(cfg, tokens))

	// Warm up credentials and seller identity in the background so the
	// first feed request doesn't pay for them. Failures are logged only;
	// every request path degrades to the fallback catalog on its own.
	go warmup(tokens, resolver, log)

	var sched *feed.Scheduler
	if cfg.Schedule.RefreshEnabled {
		sched, err = feed.NewScheduler(svc, cfg.Schedule.RefreshInterval, log)
		if err != nil {
			return fmt.Errorf("creating refresh scheduler: %w", err)
		}
		sched.Start()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	if sched != nil {
		<-sched.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// buildStore picks the cache backend. An unreachable Redis falls back to
// the in-process memory store so startup never depends on it.
func buildStore(cfg *config.Config, log *slog.Logger) cache.Store {
	if cfg.Cache.Backend == "redis" {
		store, err := cache.NewRedis(
			cfg.Cache.Redis.Addr,
			cfg.Cache.Redis.Password,
			cfg.Cache.Redis.DB,
			log,
		)
		if err == nil {
			log.Info("using redis cache backend", "addr", cfg.Cache.Redis.Addr)
			return store
		}
		log.Warn("redis unavailable, falling back to memory cache", "error", err)
	}
	return cache.NewMemory()
}

func warmup(
	tokens *meli.OAuthTokenProvider,
	resolver *session.Resolver,
	log *slog.Logger,
) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := tokens.Token(ctx); err != nil {
		log.Warn("token warmup failed", "error", err)
		return
	}

	id, err := resolver.Resolve(ctx)
	if err != nil {
		log.Warn("seller resolution warmup failed", "error", err)
		return
	}
	log.Info("seller resolved",
		"seller_id", id.SellerID,
		"confirmed", id.Confirmed,
	)
}
