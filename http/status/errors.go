package status

// HTTPError is an error mapped onto a concrete status code. Every failure the
// parsing and decoding layers may produce is one of the Err* values below, so
// the connection handler can always tell a protocol violation from an I/O
// failure and respond accordingly instead of tearing its worker down.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest             = NewError(BadRequest, "bad request")
	ErrMalformedRequestLine   = NewError(BadRequest, "malformed request line")
	ErrMissingHost            = NewError(BadRequest, "missing Host header")
	ErrConflictingBodyHeaders = NewError(BadRequest, "both content-length and chunked transfer encoding specified")
	ErrBadChunkSize           = NewError(BadRequest, "malformed chunk size")
	ErrBadChunkTerminator     = NewError(BadRequest, "malformed chunk terminator")
	ErrBadRangeSyntax         = NewError(BadRequest, "malformed range specification")
	ErrMultiRangeUnsupported  = NewError(BadRequest, "multiple ranges are not supported")
	ErrHeaderTooLong          = NewError(RequestHeaderFieldsTooLarge, "too long header line")
	ErrNotFound               = NewError(NotFound, "not found")
	ErrForbidden              = NewError(Forbidden, "forbidden")
	ErrMethodNotAllowed       = NewError(MethodNotAllowed, "method not allowed")
	ErrBodyTooLarge           = NewError(RequestEntityTooLarge, "request body is too large")
	ErrRangeNotSatisfiable    = NewError(RequestedRangeNotSatisfiable, "requested range is not satisfiable")
	ErrInternalServerError    = NewError(InternalServerError, "internal server error")
	ErrMethodNotImplemented   = NewError(NotImplemented, "request method is not supported")
	ErrUnsupportedProtocol    = NewError(HTTPVersionNotSupported, "HTTP version not supported")
)

// CodeOf extracts the status code of an error, falling back to 500 Internal
// Server Error for non-HTTP ones (e.g. I/O failures).
func CodeOf(err error) Code {
	if httpErr, ok := err.(HTTPError); ok {
		return httpErr.Code
	}

	return InternalServerError
}
