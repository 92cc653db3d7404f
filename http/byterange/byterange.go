// Package byterange parses Range request header values and resolves them
// against a known resource length. The package performs no I/O whatsoever,
// it's pure arithmetic over an already-known length.
package byterange

import (
	"strconv"
	"strings"

	"github.com/indigo-web/filed/http/status"
)

const prefix = "bytes="

type kind uint8

const (
	// kindClosed is bytes=<start>-<end>
	kindClosed kind = iota + 1
	// kindSuffix is bytes=-<length>, the last <length> bytes
	kindSuffix
	// kindOpen is bytes=<start>-, from <start> to the end
	kindOpen
)

// Spec is a parsed range specification, not yet related to any concrete
// resource. Plain value, safe to copy.
type Spec struct {
	start, end int64
	kind       kind
}

func Closed(start, end int64) Spec {
	return Spec{kind: kindClosed, start: start, end: end}
}

func Suffix(length int64) Spec {
	return Spec{kind: kindSuffix, end: length}
}

func Open(start int64) Spec {
	return Spec{kind: kindOpen, start: start}
}

// Resolved is a concrete byte window of a resource. Both bounds are inclusive,
// satisfying 0 <= Start <= End < Total.
type Resolved struct {
	Start, End, Total int64
}

// Parse parses a Range header value. Only a single range is supported:
// a comma anywhere in the value is rejected as unsupported rather than
// silently truncated.
func Parse(value string) (Spec, error) {
	if !strings.HasPrefix(value, prefix) {
		return Spec{}, status.ErrBadRangeSyntax
	}

	value = value[len(prefix):]
	if strings.IndexByte(value, ',') != -1 {
		return Spec{}, status.ErrMultiRangeUnsupported
	}

	dash := strings.IndexByte(value, '-')
	if dash == -1 {
		return Spec{}, status.ErrBadRangeSyntax
	}

	before, after := value[:dash], value[dash+1:]

	if len(before) == 0 {
		// bytes=-<suffix>
		length, ok := parseInt(after)
		if !ok {
			return Spec{}, status.ErrBadRangeSyntax
		}

		return Suffix(length), nil
	}

	start, ok := parseInt(before)
	if !ok {
		return Spec{}, status.ErrBadRangeSyntax
	}

	if len(after) == 0 {
		// bytes=<start>-
		return Open(start), nil
	}

	end, ok := parseInt(after)
	if !ok || start > end {
		return Spec{}, status.ErrBadRangeSyntax
	}

	return Closed(start, end), nil
}

// Resolve relates the spec to a resource of the given length. Inclusive
// concrete offsets are returned; ok=false stands for a not-satisfiable
// outcome, which is a normal result the caller maps onto 416, not an error.
func (s Spec) Resolve(total int64) (resolved Resolved, ok bool) {
	if total <= 0 {
		// an empty resource holds no bytes to return
		return Resolved{}, false
	}

	switch s.kind {
	case kindClosed:
		if s.start >= total {
			return Resolved{}, false
		}

		return Resolved{s.start, min(s.end, total-1), total}, true
	case kindSuffix:
		if s.end == 0 {
			// the last zero bytes of anything is never satisfiable
			return Resolved{}, false
		}

		if s.end >= total {
			return Resolved{0, total - 1, total}, true
		}

		return Resolved{total - s.end, total - 1, total}, true
	case kindOpen:
		if s.start >= total {
			return Resolved{}, false
		}

		return Resolved{s.start, total - 1, total}, true
	default:
		return Resolved{}, false
	}
}

// ContentRange renders the value of a Content-Range response header,
// e.g. "bytes 0-99/1000".
func (r Resolved) ContentRange() string {
	return "bytes " + strconv.FormatInt(r.Start, 10) + "-" +
		strconv.FormatInt(r.End, 10) + "/" + strconv.FormatInt(r.Total, 10)
}

// Len returns the number of bytes the window covers.
func (r Resolved) Len() int64 {
	return r.End - r.Start + 1
}

// NotSatisfiable renders the wildcard Content-Range value carried by a 416
// response, e.g. "bytes */1000".
func NotSatisfiable(total int64) string {
	return "bytes */" + strconv.FormatInt(total, 10)
}

// parseInt accepts non-negative decimal integers with no signs, spaces or
// empty input.
func parseInt(s string) (int64, bool) {
	if len(s) == 0 || s[0] == '+' || s[0] == '-' {
		return 0, false
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}
