package error

import "net/http"

// ContentError reports media or text that violates a platform constraint
// (missing file, oversized media, wrong format, unsupported content type).
type ContentError string

func (err ContentError) Error() string {
	return string(err)
}

func (err ContentError) ErrCode() string {
	return "CONTENT_ERROR"
}

func (err ContentError) StatusCode() int {
	return http.StatusUnprocessableEntity
}
