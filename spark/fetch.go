package spark

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/trepalabs/sparkbot/core/logger"
	"log/slog"
)

// Fetcher downloads an image by URL. A nil error guarantees the returned
// bytes are a complete response body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches images over HTTP with a bounded timeout and body size.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher builds a fetcher with the given per-request timeout and
// response body cap. Zero values fall back to 5s and 10 MiB.
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch performs a single GET attempt. Non-2xx statuses are errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Warn(ctx, "fetch", "image.fetch.fail",
			slog.String("fetch_url", logger.SanitizeLimit(url, 256)),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn(ctx, "fetch", "image.fetch.fail",
			slog.String("fetch_url", logger.SanitizeLimit(url, 256)),
			slog.Int("http_code", resp.StatusCode),
			slog.Duration("duration", logger.Took(start)),
		)
		return nil, fmt.Errorf("fetch image: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch image body: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("fetch image: body exceeds %d bytes", f.maxBytes)
	}

	logger.Debug(ctx, "fetch", "image.fetch.ok",
		slog.String("fetch_url", logger.SanitizeLimit(url, 256)),
		slog.Int("bytes", len(data)),
		slog.Duration("duration", logger.Took(start)),
	)
	return data, nil
}
