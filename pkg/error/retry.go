package error

import "errors"

// IsRetryable reports whether the scheduler should retry after err.
// Only rate limits and transient network failures qualify; everything else
// propagates to the caller unmodified.
func IsRetryable(err error) bool {
	var transient TransientNetworkError
	if errors.As(err, &transient) {
		return true
	}
	var rateLimited RateLimitError
	return errors.As(err, &rateLimited)
}
