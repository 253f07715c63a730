// Package fetch retrieves pages from the watched site and reduces them to
// rendered body text.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"blinkwatch/config"
	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// Client fetches pages with a browser-like identity and a bounded timeout.
// The same URLs are revisited every cycle, so revisit checks are disabled.
type Client struct {
	cfg       *config.Config
	collector *colly.Collector
}

// NewClient builds a client restricted to the hosts of the listing URL and
// the site origin.
func NewClient(cfg *config.Config) (*Client, error) {
	listing, err := url.Parse(cfg.ListingURL)
	if err != nil {
		return nil, fmt.Errorf("parse listing url: %w", err)
	}
	if listing.Host == "" {
		return nil, fmt.Errorf("listing url must include a host")
	}

	hosts := []string{listing.Host}
	if origin, err := url.Parse(cfg.SiteOrigin); err == nil && origin.Host != "" && origin.Host != listing.Host {
		hosts = append(hosts, origin.Host)
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(hosts...),
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	collector.SetRequestTimeout(cfg.Timeout)
	collector.IgnoreRobotsTxt = true
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	return &Client{cfg: cfg, collector: collector}, nil
}

// Fetch retrieves pageURL and returns its body text. Network and HTTP errors
// surface as classified errors so the caller can abort the cycle.
func (c *Client) Fetch(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Handlers are collector-wide in colly, so each fetch runs on a clone.
	// Clones share the parent's backend, keeping transport and cookies.
	col := c.collector.Clone()

	var (
		body     []byte
		fetchErr error
	)
	col.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	col.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = Classify(err, status)
	})

	if err := col.Visit(pageURL); err != nil {
		if fetchErr != nil {
			return "", fetchErr
		}
		return "", fmt.Errorf("visit %s: %w", pageURL, err)
	}
	col.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}
	return bodyText(body)
}

// bodyText extracts the rendered text of the body element, script contents
// included. The product JSON lives inside body scripts.
func bodyText(raw []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}
	return doc.Find("body").Text(), nil
}
