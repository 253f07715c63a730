package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blinkwatch/archive"
	"blinkwatch/config"
	"blinkwatch/fetch"
	"blinkwatch/notify"
	"blinkwatch/watcher"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	defaultCfg := config.DefaultConfig()

	listingURL := flag.String("listing-url", defaultCfg.ListingURL, "Product listing page to watch")
	siteOrigin := flag.String("origin", defaultCfg.SiteOrigin, "Site origin prepended to relative landing URLs")
	interval := flag.Duration("interval", defaultCfg.Interval, "Time between watch cycles")
	timeout := flag.Duration("timeout", defaultCfg.Timeout, "Page fetch timeout")
	smtpHost := flag.String("smtp-host", defaultCfg.SMTPHost, "SMTP host for alert mail")
	smtpPort := flag.Int("smtp-port", defaultCfg.SMTPPort, "SMTP port for alert mail")
	archiveDir := flag.String("archive-dir", "", "Directory for page/product snapshots (empty disables)")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics listen address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := defaultCfg
	cfg.ListingURL = *listingURL
	cfg.SiteOrigin = *siteOrigin
	cfg.Interval = *interval
	cfg.Timeout = *timeout
	cfg.SMTPHost = *smtpHost
	cfg.SMTPPort = *smtpPort
	cfg.ArchiveDir = *archiveDir
	cfg.MetricsAddr = *metricsAddr
	cfg.Verbose = *verbose
	cfg.LoadEnv()

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	client, err := fetch.NewClient(cfg)
	if err != nil {
		slog.Error("initialising fetch client", slog.Any("error", err))
		os.Exit(1)
	}

	w := watcher.New(cfg, client, notify.NewMailer(cfg))
	if cfg.ArchiveDir != "" {
		writer, err := archive.NewWriter(cfg.ArchiveDir)
		if err != nil {
			slog.Error("initialising archive writer", slog.Any("error", err))
			os.Exit(1)
		}
		w.SetArchiver(writer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received, waiting for in-flight cycle to finish")
	}()

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(w.Metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	slog.Info("starting watcher",
		slog.String("listing_url", cfg.ListingURL),
		slog.Duration("interval", cfg.Interval),
	)

	scheduler := watcher.NewScheduler(cfg.Interval, w.RunCycle)
	scheduler.OnSkip = func() {
		w.Metrics.IncCycle(string(watcher.OutcomeSkipped))
	}
	scheduler.Run(ctx)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	slog.Info("watcher stopped")
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
