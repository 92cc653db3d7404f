package http

import (
	"github.com/indigo-web/filed/kv"
)

// RequestLine is the method-target-version triple of the first request line.
// Immutable once parsed.
type RequestLine struct {
	Method  string
	Target  string
	Version string
}

// Encoding describes the applied message framing.
type Encoding struct {
	// Chunked is set if "chunked" appeared among the Transfer-Encoding tokens,
	// regardless of its position and case.
	Chunked bool
}

// Request carries everything parsed off the wire for a single request. The
// instance is owned exclusively by the worker serving the connection and is
// discarded when the handler returns.
type Request struct {
	Line RequestLine
	// Path is the target without the query string.
	Path  string
	Query string
	// Headers stores lower-cased header names, so lookups are case-insensitive
	// by construction.
	Headers *kv.Storage
	// ContentLength is the parsed Content-Length value, 0 if absent.
	ContentLength int64
	Encoding      Encoding
	// Body is the fully read request body, nil if the request carries none.
	Body []byte
	// RemoteAddr is the peer's address, as reported by the connection.
	RemoteAddr string
}

func NewRequest(headers *kv.Storage) *Request {
	return &Request{
		Headers: headers,
	}
}

// IsHTTP11 reports whether the declared version is exactly HTTP/1.1, the only
// version for which a Host header is mandatory.
func (r *Request) IsHTTP11() bool {
	return r.Line.Version == "HTTP/1.1"
}
