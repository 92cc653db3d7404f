package http1

import (
	"strconv"
	"strings"

	"github.com/indigo-web/filed/http"
	"github.com/indigo-web/filed/http/status"
	"github.com/indigo-web/filed/internal/stream"
	"github.com/indigo-web/utils/strcomp"
)

// ResolveBody is the single place deciding whether a request carries a body
// and how it's framed. Callers never infer body presence from anything else.
//
// The rules, in priority order: declaring both Content-Length and chunked
// transfer encoding is a hard error with no body read attempted; chunked
// delegates to the decoder; a positive Content-Length reads exactly that many
// bytes; everything else means no body. maxSize is the server's policy cap on
// the resulting body length.
func ResolveBody(r *stream.Reader, request *http.Request, maxSize int64) error {
	chunked := hasChunkedToken(request.Headers.Value("transfer-encoding"))
	lengthValue, hasLength := request.Headers.Get("content-length")

	if chunked && hasLength {
		return status.ErrConflictingBodyHeaders
	}

	if chunked {
		request.Encoding.Chunked = true
		decoder := newChunkedDecoder(r, maxSize)
		body, err := decoder.Decode()
		if err != nil {
			return err
		}

		request.Body = body
		request.ContentLength = int64(len(body))

		return nil
	}

	if !hasLength {
		return nil
	}

	length, err := strconv.ParseInt(lengthValue, 10, 64)
	if err != nil || length <= 0 {
		// an unparseable or zero length means no body
		return nil
	}

	if length > maxSize {
		return status.ErrBodyTooLarge
	}

	body := make([]byte, length)
	if err = r.ReadFull(body); err != nil {
		return err
	}

	request.Body = body
	request.ContentLength = length

	return nil
}

// hasChunkedToken recognizes the chunked token among the comma-separated
// transfer encodings, case-insensitively and regardless of its position.
func hasChunkedToken(value string) bool {
	for len(value) > 0 {
		var token string
		comma := strings.IndexByte(value, ',')
		if comma == -1 {
			token, value = value, ""
		} else {
			token, value = value[:comma], value[comma+1:]
		}

		if strcomp.EqualFold(strings.TrimSpace(token), "chunked") {
			return true
		}
	}

	return false
}
