package status

type (
	Code   uint16
	Status string
)

// Status codes the server actually emits. Registered with IANA,
// see https://www.iana.org/assignments/http-status-codes/http-status-codes.xhtml
const (
	OK             Code = 200 // RFC 9110, 15.3.1
	PartialContent Code = 206 // RFC 9110, 15.3.7

	BadRequest                   Code = 400 // RFC 9110, 15.5.1
	Forbidden                    Code = 403 // RFC 9110, 15.5.4
	NotFound                     Code = 404 // RFC 9110, 15.5.5
	MethodNotAllowed             Code = 405 // RFC 9110, 15.5.6
	RequestTimeout               Code = 408 // RFC 9110, 15.5.9
	RequestEntityTooLarge        Code = 413 // RFC 9110, 15.5.14
	RequestedRangeNotSatisfiable Code = 416 // RFC 9110, 15.5.17
	RequestHeaderFieldsTooLarge  Code = 431 // RFC 6585, 5

	InternalServerError     Code = 500 // RFC 9110, 15.6.1
	NotImplemented          Code = 501 // RFC 9110, 15.6.2
	HTTPVersionNotSupported Code = 505 // RFC 9110, 15.6.6
)

// Text returns the reason phrase of the code. Unknown codes resolve
// to an empty string.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case PartialContent:
		return "Partial Content"
	case BadRequest:
		return "Bad Request"
	case Forbidden:
		return "Forbidden"
	case NotFound:
		return "Not Found"
	case MethodNotAllowed:
		return "Method Not Allowed"
	case RequestTimeout:
		return "Request Timeout"
	case RequestEntityTooLarge:
		return "Request Entity Too Large"
	case RequestedRangeNotSatisfiable:
		return "Requested Range Not Satisfiable"
	case RequestHeaderFieldsTooLarge:
		return "Request Header Fields Too Large"
	case InternalServerError:
		return "Internal Server Error"
	case NotImplemented:
		return "Not Implemented"
	case HTTPVersionNotSupported:
		return "HTTP Version Not Supported"
	default:
		return ""
	}
}
