// Package fetch obtains rendered listing rows for a route task. It is the
// boundary collaborator of the pipeline: everything past it is parsing.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/farewatch/farewatch-cli/internal/config"
	"github.com/farewatch/farewatch-cli/internal/extract"
	"github.com/farewatch/farewatch-cli/internal/model"
	"github.com/farewatch/farewatch-cli/internal/resilience"
)

// maxBodyBytes caps how much of a listing page is read.
const maxBodyBytes = 4 * 1024 * 1024

// Fetcher obtains the listing rows for one route task. A fetch failure is
// surfaced as an error; the pipeline degrades it to an empty row set.
type Fetcher interface {
	FetchRows(ctx context.Context, task model.RouteTask) ([]extract.Row, error)
}

// HTTPFetcher fetches the provider's listing page over plain HTTP and
// parses it into row handles.
type HTTPFetcher struct {
	cfg     config.FetchConfig
	client  *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewHTTP creates an HTTPFetcher with dial and TLS timeouts and a polite
// per-process rate limit.
func NewHTTP(cfg config.FetchConfig) *HTTPFetcher {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 0.5
	}

	retryCfg := resilience.DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		retryCfg.MaxAttempts = cfg.MaxRetries
	}
	retryCfg.OnRetry = resilience.RetryLogger("listing fetch")

	return &HTTPFetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		retry:   retryCfg,
	}
}

// FetchRows fetches and parses the listing page for a task.
func (f *HTTPFetcher) FetchRows(ctx context.Context, task model.RouteTask) ([]extract.Row, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "fetch: rate limiter")
	}

	body, err := resilience.DoVal(ctx, f.retry, func(ctx context.Context) ([]byte, error) {
		return f.fetchPage(ctx, f.searchURL(task))
	})
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "fetch: parse listing page")
	}
	return extract.ListingRows(doc), nil
}

func (f *HTTPFetcher) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept-Language", "en-US")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: get listing page")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "fetch: read body")
	}

	if resilience.IsTransientHTTPStatus(resp.StatusCode) {
		return nil, resilience.NewTransientError(
			eris.Errorf("fetch: status %d", resp.StatusCode), resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, eris.Errorf("fetch: status %d", resp.StatusCode)
	}
	return body, nil
}

// searchURL builds the provider search URL from the task. The query mirrors
// the provider's natural-language search form.
func (f *HTTPFetcher) searchURL(task model.RouteTask) string {
	q := fmt.Sprintf("Flights from %s to %s on %s returning %s",
		task.Origin, task.Dest, task.DepartDate, task.ReturnDate)
	if task.NonstopOnly {
		q += " nonstop"
	}
	return f.cfg.BaseURL + "?q=" + url.QueryEscape(q) + "&hl=en-US"
}
