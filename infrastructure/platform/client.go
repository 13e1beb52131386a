package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Kofidell4545/pluseposter/config"
	domainPost "github.com/Kofidell4545/pluseposter/domains/post"
	pkgError "github.com/Kofidell4545/pluseposter/pkg/error"
	"golang.org/x/time/rate"
)

const maxErrorBodyLen = 512

// Client is the shared HTTP client for every adapter: one rate limiter per
// platform and transport failures mapped to TransientNetworkError.
type Client struct {
	platform domainPost.Platform
	http     *http.Client
	limiter  *rate.Limiter
}

func NewClient(platform domainPost.Platform) *Client {
	interval := time.Minute / time.Duration(config.RequestsPerMinute)
	return &Client{
		platform: platform,
		http:     &http.Client{Timeout: config.HTTPTimeout},
		limiter:  rate.NewLimiter(rate.Every(interval), config.RequestsPerMinute),
	}
}

// Do waits for rate-limit headroom, runs the request and maps any transport
// failure. Callers still check the response status via StatusError.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, req.Context().Err()
		}
		return nil, pkgError.TransientNetworkError(fmt.Sprintf("%s: %v", c.platform, err))
	}
	return resp, nil
}

// StatusError maps a non-2xx vendor response to the error taxonomy. Returns
// nil for 2xx.
func (c *Client) StatusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	detail := strings.TrimSpace(string(body))
	msg := fmt.Sprintf("%s: status %d", c.platform, resp.StatusCode)
	if detail != "" {
		msg = msg + ": " + detail
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return pkgError.AuthError(msg)
	case resp.StatusCode == http.StatusTooManyRequests:
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
				return pkgError.RetryAfterError{
					Err:  pkgError.RateLimitError(msg + " (retry after " + retryAfter + "s)"),
					Wait: time.Duration(secs) * time.Second,
				}
			}
		}
		return pkgError.RateLimitError(msg)
	case resp.StatusCode == http.StatusRequestEntityTooLarge || resp.StatusCode == http.StatusUnprocessableEntity:
		return pkgError.ContentError(msg)
	case resp.StatusCode >= 500:
		return pkgError.TransientNetworkError(msg)
	default:
		return pkgError.PermanentPlatformError(msg)
	}
}

// GetJSON is a small helper for credential checks.
func (c *Client) GetJSON(ctx context.Context, url string, authorize func(*http.Request)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	authorize(req)

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.StatusError(resp)
}
