package error

import "net/http"

// ConfigurationError reports missing or invalid platform credentials. It is
// raised before any network call so a misconfigured platform fails fast.
type ConfigurationError string

func (err ConfigurationError) Error() string {
	return string(err)
}

func (err ConfigurationError) ErrCode() string {
	return "CONFIGURATION_ERROR"
}

func (err ConfigurationError) StatusCode() int {
	return http.StatusBadRequest
}
