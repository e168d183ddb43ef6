package ingest

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"taxonomy-browser/internal/contextutil"
)

// Source produces the raw structure document.
type Source interface {
	// Open returns a reader over the document. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
	// String describes the source for logs.
	String() string
}

// FileSource reads the document from the local filesystem.
type FileSource struct {
	Path string
}

// Open implements Source.
func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return f, nil
}

func (s FileSource) String() string {
	return "file:" + s.Path
}

// HTTPSource downloads the document, retrying failed attempts with
// exponential backoff.
type HTTPSource struct {
	url         string
	httpClient  *http.Client
	maxAttempts int
	backoff     func(attempt int) time.Duration
}

// NewHTTPSource creates an HTTPSource for url.
func NewHTTPSource(url string, timeout time.Duration, maxAttempts int) *HTTPSource {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxAttempts: maxAttempts,
		backoff:     Backoff,
	}
}

// Open implements Source.
func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if attempt > 0 {
			wait := s.backoff(attempt - 1)
			logger.WarnContext(ctx, "retrying document download",
				"url", s.url, "attempt", attempt+1, "wait", wait, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, ctx.Err())
			case <-time.After(wait):
			}
		}

		body, err := s.fetch(ctx)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %s after %d attempts: %v", ErrSourceUnavailable, s.url, s.maxAttempts, lastErr)
}

func (s *HTTPSource) fetch(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("get document: status %d: %s", resp.StatusCode, string(respBody))
	}
	return resp.Body, nil
}

func (s *HTTPSource) String() string {
	return s.url
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}
