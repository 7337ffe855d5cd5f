package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ratesboard/internal/adapters/cache"
	"ratesboard/internal/adapters/httpclient"
	"ratesboard/internal/api"
	"ratesboard/internal/config"
	"ratesboard/internal/exporter"
	"ratesboard/internal/metrics"
	"ratesboard/internal/notify"
	httpserver "ratesboard/internal/platform/http"
	"ratesboard/internal/rate"
	"ratesboard/internal/rate/handler"
	"ratesboard/internal/web"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics on a dedicated registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// Base HTTP client (configurable timeout)
	baseHTTPClient := &http.Client{Timeout: appCfg.HTTPClient.Timeout()}
	ratesClient := httpclient.NewExchangeRatesClient(baseHTTPClient, appCfg.ExchangeRateAPI.URL)

	filterCache, err := cache.NewFilterCache(appCfg.Cache.MaxItems)
	if err != nil {
		logrus.WithError(err).Error("Failed to create filter cache")
		return err
	}
	defer filterCache.Close()
	logrus.Info("✅ Filter cache ready")

	notifications := notify.NewChannel(notify.Options{
		Limit:     appCfg.Notifications.Limit,
		AutoClose: appCfg.Notifications.AutoClose(),
		Metrics:   appMetrics,
	})
	defer notifications.Close()

	// Services
	rateValidator := rate.NewQueryValidator(appCfg.Table.PerPageOptions, appCfg.Table.DefaultPerPage)
	rateService := rate.NewService(ratesClient, filterCache, notifications, appMetrics, rateValidator.PerPageOptions())
	rateExporter := exporter.New(notifications, appMetrics)
	scheduler := rate.NewScheduler(rateService, time.Duration(appCfg.Scheduler.RefreshIntervalSec)*time.Second)
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context; the first fetch runs right away
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	pages, err := web.NewPages()
	if err != nil {
		logrus.WithError(err).Error("Failed to load page templates")
		return err
	}

	// Handlers and router
	rateHandler := handler.NewRateHandler(rateService, rateValidator, rateExporter, notifications, pages)
	router := api.NewRouter(rateHandler, promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	logrus.Info("Starting http server")
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		// Block until context is canceled, then perform graceful shutdown.
		return httpserver.Start(groupCtx, appCfg.HTTPServer, router)
	})
	if serverErr := group.Wait(); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
