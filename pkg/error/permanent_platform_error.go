package error

import "net/http"

// PermanentPlatformError covers vendor rejections that retrying cannot fix.
type PermanentPlatformError string

func (err PermanentPlatformError) Error() string {
	return string(err)
}

func (err PermanentPlatformError) ErrCode() string {
	return "PERMANENT_PLATFORM_ERROR"
}

func (err PermanentPlatformError) StatusCode() int {
	return http.StatusBadGateway
}
