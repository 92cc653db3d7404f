package http1

import (
	"bytes"

	"github.com/indigo-web/filed/http"
	"github.com/indigo-web/filed/http/status"
	"github.com/indigo-web/filed/internal/stream"
)

// ParseRequest consumes the head of a request off the stream: the request line
// and all the header lines up to the empty one. The request object is modified
// in place. An error is always one of the status.Err* values, except I/O
// failures, which propagate unchanged.
func ParseRequest(r *stream.Reader, request *http.Request) error {
	line, err := r.ReadLine()
	if err != nil {
		return err
	}

	if err = parseRequestLine(line, request); err != nil {
		return err
	}

	for {
		line, err = r.ReadLine()
		if err != nil {
			return err
		}

		if len(line) == 0 {
			break
		}

		if err = parseHeaderLine(line, request); err != nil {
			return err
		}
	}

	if request.IsHTTP11() && !request.Headers.Has("host") {
		return status.ErrMissingHost
	}

	return nil
}

// parseRequestLine splits the line on single spaces into exactly three tokens.
// Any other token count, empty tokens included, is a malformed request line.
func parseRequestLine(line []byte, request *http.Request) error {
	first := bytes.IndexByte(line, ' ')
	last := bytes.LastIndexByte(line, ' ')
	if first == -1 || first == last {
		return status.ErrMalformedRequestLine
	}

	method, target, version := line[:first], line[first+1:last], line[last+1:]
	if len(method) == 0 || len(target) == 0 || len(version) == 0 ||
		bytes.IndexByte(target, ' ') != -1 {
		return status.ErrMalformedRequestLine
	}

	request.Line = http.RequestLine{
		Method:  string(method),
		Target:  string(target),
		Version: string(version),
	}

	path := target
	if query := bytes.IndexByte(target, '?'); query != -1 {
		path = target[:query]
		request.Query = string(target[query+1:])
	}

	request.Path = string(path)

	return nil
}

// parseHeaderLine splits the line on the first colon. The name is trimmed and
// lower-cased before insertion, so later lookups are case-insensitive by
// construction. A duplicate name simply overwrites the prior value.
func parseHeaderLine(line []byte, request *http.Request) error {
	colon := bytes.IndexByte(line, ':')
	if colon == -1 {
		return status.ErrBadRequest
	}

	key := bytes.TrimSpace(line[:colon])
	if len(key) == 0 {
		return status.ErrBadRequest
	}

	// the line buffer is reused between reads, so both strings must be copies
	value := bytes.TrimSpace(line[colon+1:])
	request.Headers.Set(string(toLower(key)), string(value))

	return nil
}

// toLower lower-cases ASCII in place. The head is ASCII by grammar, so that's
// all we need.
func toLower(b []byte) []byte {
	for i, char := range b {
		if char >= 'A' && char <= 'Z' {
			b[i] = char | 0x20
		}
	}

	return b
}
