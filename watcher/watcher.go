// Package watcher orchestrates the fetch-extract-detect-notify cycle.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"blinkwatch/config"
	"blinkwatch/detect"
	"blinkwatch/extract"
	"blinkwatch/fetch"
	"blinkwatch/models"
	"blinkwatch/parser"
)

// Fetcher retrieves the rendered body text of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Notifier delivers an alert message.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}

// Archiver persists diagnostic snapshots of a cycle.
type Archiver interface {
	SavePage(text string) (string, error)
	SaveProducts(products []models.ProductSummary) (string, error)
}

// Outcome labels how a cycle ended.
type Outcome string

const (
	OutcomeDealFound     Outcome = "deal_found"
	OutcomeTrackerBroken Outcome = "tracker_broken"
	OutcomeQuiet         Outcome = "quiet"
	OutcomeAborted       Outcome = "aborted"
	OutcomeSkipped       Outcome = "skipped"
)

const (
	subjectDealFound     = "Blinkdeal Alert!"
	subjectTrackerBroken = "Alert: Blinkdeal Tracker Not Working"
)

// Watcher runs watch cycles against a single listing page. Each cycle is
// self-contained; no state crosses cycle boundaries.
type Watcher struct {
	cfg      *config.Config
	fetcher  Fetcher
	notifier Notifier
	archiver Archiver
	Metrics  *Metrics
}

// New builds a watcher around the given collaborators.
func New(cfg *config.Config, fetcher Fetcher, notifier Notifier) *Watcher {
	return &Watcher{
		cfg:      cfg,
		fetcher:  fetcher,
		notifier: notifier,
		Metrics:  NewMetrics(),
	}
}

// SetArchiver enables snapshot dumps after successful scans.
func (w *Watcher) SetArchiver(a Archiver) {
	w.archiver = a
}

// Scan fetches the listing page, extracts products and finalizes the deal
// signal. Any fetch failure aborts the scan; nothing is sent or archived.
func (w *Watcher) Scan(ctx context.Context) (*models.ScanResult, error) {
	start := time.Now()
	text, err := w.fetcher.Fetch(ctx, w.cfg.ListingURL)
	if err != nil {
		w.Metrics.IncError(fetch.Label(err))
		return nil, fmt.Errorf("fetch listing page: %w", err)
	}
	w.Metrics.ObserveFetch(time.Since(start))

	result := &models.ScanResult{
		SignalFound: detect.Found(text),
	}

	spans := extract.Spans(text, extract.DefaultMarker)
	records := extract.DecodeRecords(spans)
	result.ExtractionOK = len(records) > 0
	result.Products = parser.Summarize(records)
	w.Metrics.AddProducts(len(result.Products))

	if len(result.Products) > 0 {
		detailURL := w.cfg.SiteOrigin + result.Products[0].LandingPageURL
		start = time.Now()
		detail, err := w.fetcher.Fetch(ctx, detailURL)
		if err != nil {
			w.Metrics.IncError(fetch.Label(err))
			return nil, fmt.Errorf("fetch detail page: %w", err)
		}
		w.Metrics.ObserveFetch(time.Since(start))

		// The detail-page verdict replaces the listing-page one outright,
		// even when the listing page matched. A banner shown only on the
		// listing is therefore lost once a product exists. Suspect, but
		// callers depend on alerts firing on the detail page only.
		result.SignalFound = detect.Found(detail)
	}

	if w.archiver != nil {
		if _, err := w.archiver.SavePage(text); err != nil {
			slog.Warn("archive page snapshot failed", slog.Any("error", err))
		}
		if _, err := w.archiver.SaveProducts(result.Products); err != nil {
			slog.Warn("archive products snapshot failed", slog.Any("error", err))
		}
	}

	return result, nil
}

// Report decides which notification, if any, the scan result warrants and
// sends it. Notification failures are logged, never escalated.
func (w *Watcher) Report(ctx context.Context, result *models.ScanResult) Outcome {
	switch {
	case result.SignalFound:
		w.send(ctx, string(OutcomeDealFound), subjectDealFound, dealFoundBody(w.cfg.ListingURL, result.Products))
		return OutcomeDealFound
	case !result.ExtractionOK:
		w.send(ctx, string(OutcomeTrackerBroken), subjectTrackerBroken, trackerBrokenBody(w.cfg.ListingURL))
		return OutcomeTrackerBroken
	default:
		slog.Info("no deal detected", slog.Int("products", len(result.Products)))
		return OutcomeQuiet
	}
}

// RunCycle executes one complete watch cycle. Failures abort the cycle
// silently; the next tick starts fresh.
func (w *Watcher) RunCycle(ctx context.Context) {
	slog.Info("cycle started", slog.String("url", w.cfg.ListingURL))

	result, err := w.Scan(ctx)
	if err != nil {
		slog.Error("cycle aborted", slog.Any("error", err))
		w.Metrics.IncCycle(string(OutcomeAborted))
		return
	}

	outcome := w.Report(ctx, result)
	w.Metrics.IncCycle(string(outcome))
	slog.Info("cycle finished",
		slog.String("outcome", string(outcome)),
		slog.Int("products", len(result.Products)),
		slog.Bool("signal", result.SignalFound),
		slog.Bool("extraction_ok", result.ExtractionOK),
	)
}

func (w *Watcher) send(ctx context.Context, kind, subject, body string) {
	if err := w.notifier.Send(ctx, subject, body); err != nil {
		slog.Error("notification failed", slog.String("kind", kind), slog.Any("error", err))
		w.Metrics.IncNotification(kind, "error")
		return
	}
	slog.Info("notification sent", slog.String("kind", kind))
	w.Metrics.IncNotification(kind, "sent")
}

func dealFoundBody(listingURL string, products []models.ProductSummary) string {
	var b strings.Builder
	b.WriteString("Blinkdeal detected on the watched listing.\n\nProduct pages:\n")
	for _, p := range products {
		fmt.Fprintf(&b, "  %s\n", p.LandingPageURL)
	}
	fmt.Fprintf(&b, "\nFrom: %s\n", listingURL)
	return b.String()
}

func trackerBrokenBody(listingURL string) string {
	return fmt.Sprintf("The watcher fetched %s but could not extract any products.\nThe page layout may have changed; the extraction marker needs review.\n", listingURL)
}
