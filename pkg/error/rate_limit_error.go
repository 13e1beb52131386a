package error

import (
	"net/http"
	"time"
)

// RateLimitError reports a vendor 429. Retryable; when the vendor names a
// wait, the error arrives wrapped in a RetryAfterError.
type RateLimitError string

func (err RateLimitError) Error() string {
	return string(err)
}

func (err RateLimitError) ErrCode() string {
	return "RATE_LIMIT_ERROR"
}

func (err RateLimitError) StatusCode() int {
	return http.StatusTooManyRequests
}

// RetryAfterError carries the wait a rate-limited vendor asked for. The
// scheduler uses Wait instead of its own backoff when present.
type RetryAfterError struct {
	Err  RateLimitError
	Wait time.Duration
}

func (err RetryAfterError) Error() string {
	return err.Err.Error()
}

func (err RetryAfterError) ErrCode() string {
	return err.Err.ErrCode()
}

func (err RetryAfterError) StatusCode() int {
	return err.Err.StatusCode()
}

func (err RetryAfterError) Unwrap() error {
	return err.Err
}
