package error

// GenericError is implemented by every error in this package so callers
// (REST middleware, CLI) can map an error to an HTTP status and stable code.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}
