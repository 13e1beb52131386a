package error

import "net/http"

// TransientNetworkError marks failures worth retrying: connection resets,
// timeouts and vendor 5xx responses. The scheduler retries these with backoff.
type TransientNetworkError string

func (err TransientNetworkError) Error() string {
	return string(err)
}

func (err TransientNetworkError) ErrCode() string {
	return "TRANSIENT_NETWORK_ERROR"
}

func (err TransientNetworkError) StatusCode() int {
	return http.StatusServiceUnavailable
}
