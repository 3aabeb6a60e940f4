// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	commonaws "github.com/oogway7h/ShopIA-web/internal/common/aws"
	"github.com/oogway7h/ShopIA-web/internal/common/config"
	"github.com/oogway7h/ShopIA-web/internal/common/database"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/common/observability"

	"github.com/oogway7h/ShopIA-web/internal/catalog"
	"github.com/oogway7h/ShopIA-web/internal/forecast"
	"github.com/oogway7h/ShopIA-web/internal/nlp"
	"github.com/oogway7h/ShopIA-web/internal/notifications"
	"github.com/oogway7h/ShopIA-web/internal/reports"
	"github.com/oogway7h/ShopIA-web/internal/sales"
	"github.com/oogway7h/ShopIA-web/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting shopia-web", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		log.WithError(err).Error("postgres init failed", nil)
		os.Exit(1)
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		log.WithError(err).Error("postgres unreachable", nil)
		os.Exit(1)
	}

	redisClient, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		log.WithError(err).Error("redis init failed", nil)
		os.Exit(1)
	}
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err != nil {
		log.WithError(err).Warn("redis unreachable, category cache disabled", nil)
		redisClient = nil
	}

	esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		log.WithError(err).Error("elasticsearch init failed", nil)
		os.Exit(1)
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	catalogRepo := catalog.NewRepository(pg, log)
	var categoryCache *catalog.CategoryCache
	if redisClient != nil {
		ttl := time.Duration(cfg.Database.Redis.CategoryTTL) * time.Second
		categoryCache = catalog.NewCategoryCache(redisClient, ttl, log)
	}
	productSearch := catalog.NewProductSearch(esClient, cfg.Database.Elasticsearch.ProductIndex, log)
	catalogSvc := catalog.NewService(catalogRepo, categoryCache, productSearch, log)

	interpreter := nlp.NewInterpreter(nlp.NewSpanishTokenizer(), catalogSvc, log)
	if err := interpreter.Initialize(ctx); err != nil {
		// keeps serving with fixed rules only; category commands come back
		// after the next successful reload
		log.WithError(err).Warn("interpreter category load failed", nil)
	}

	salesRepo := sales.NewRepository(pg, log)
	reportsSvc := reports.NewService(salesRepo, log)

	forecastStore := forecast.NewPostgresStore(pg, log)
	forecastSvc := forecast.NewService(salesRepo, forecastStore,
		cfg.Forecast.MinSamples, cfg.Forecast.HistoryMonths, log)
	if cfg.Forecast.Enabled {
		scheduler := forecast.NewScheduler(forecastSvc,
			time.Duration(cfg.Forecast.IntervalHours)*time.Hour, log)
		go scheduler.Run(ctx)
	}

	dispatcher := setupNotifications(ctx, cfg, log)

	deps := server.Deps{
		Config:        cfg,
		Log:           log,
		Interpreter:   interpreter,
		Catalog:       catalogSvc,
		Reports:       reportsSvc,
		Forecast:      forecastSvc,
		Predictions:   forecastStore,
		Ventas:        salesRepo,
		Obs:           obs,
		Postgres:      pg,
		Redis:         redisClient,
		Elasticsearch: esClient,
	}
	if dispatcher != nil {
		deps.Notifier = dispatcher
	}
	srv := server.New(deps)

	httpServer := srv.HTTPServer()
	go func() {
		log.Info("http server listening", map[string]interface{}{"addr": httpServer.Addr})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server failed", nil)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed", nil)
	}
}

// setupNotifications builds the SNS/SES dispatcher when either channel is
// enabled. The dispatcher is handed to order processing out of band; the
// server itself has no notification endpoints.
func setupNotifications(ctx context.Context, cfg *config.Config, log logger.Logger) *notifications.Dispatcher {
	if !cfg.Notifications.Push.Enabled && !cfg.Notifications.Email.Enabled {
		return nil
	}

	var push notifications.PushSender
	if cfg.Notifications.Push.Enabled {
		snsClient, err := commonaws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			log.WithError(err).Warn("sns init failed, push disabled", nil)
		} else {
			push = snsClient
		}
	}

	var email notifications.EmailSender
	if cfg.Notifications.Email.Enabled {
		sesClient, err := commonaws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			log.WithError(err).Warn("ses init failed, email disabled", nil)
		} else {
			email = sesClient
		}
	}

	if push == nil && email == nil {
		return nil
	}
	return notifications.NewDispatcher(push, email,
		cfg.Notifications.Push.TopicARN, cfg.Notifications.Email.FromEmail, log)
}
