package error

import "net/http"

// NotFoundError covers lookups that miss: an unknown scheduled job id or a
// platform without a registered adapter.
type NotFoundError string

func (err NotFoundError) Error() string {
	return string(err)
}

func (err NotFoundError) ErrCode() string {
	return "NOT_FOUND_ERROR"
}

func (err NotFoundError) StatusCode() int {
	return http.StatusNotFound
}
