package stream

import (
	"bufio"
	"io"

	"github.com/indigo-web/filed/http/status"
)

// Reader is a buffered, line-oriented view over a single connection's byte
// stream. It never blocks beyond what the underlying stream imposes.
type Reader struct {
	src         *bufio.Reader
	lineBuff    []byte
	maxLineSize int
}

func NewReader(src io.Reader, buffSize, maxLineSize int) *Reader {
	return &Reader{
		src:         bufio.NewReaderSize(src, buffSize),
		maxLineSize: maxLineSize,
	}
}

// ReadLine returns the next line with the terminator stripped. Both CRLF and
// bare LF terminators are accepted. A line longer than the limit fails with
// status.ErrHeaderTooLong before any further processing; I/O errors propagate
// unchanged.
//
// The returned slice stays valid until the next ReadLine call.
func (r *Reader) ReadLine() ([]byte, error) {
	r.lineBuff = r.lineBuff[:0]

	for {
		frag, err := r.src.ReadSlice('\n')
		r.lineBuff = append(r.lineBuff, frag...)
		if len(r.lineBuff) > r.maxLineSize {
			return nil, status.ErrHeaderTooLong
		}

		if err == bufio.ErrBufferFull {
			continue
		}

		if err != nil {
			return nil, err
		}

		break
	}

	return trimTerminator(r.lineBuff), nil
}

// ReadFull fills dst entirely from the stream.
func (r *Reader) ReadFull(dst []byte) error {
	_, err := io.ReadFull(r.src, dst)
	return err
}

func trimTerminator(line []byte) []byte {
	// the terminating LF is guaranteed to be there by ReadSlice
	line = line[:len(line)-1]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	return line
}
