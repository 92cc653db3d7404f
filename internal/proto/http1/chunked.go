package http1

import (
	"bytes"
	"math"
	"strconv"

	"github.com/indigo-web/filed/http/status"
	"github.com/indigo-web/filed/internal/stream"
	"github.com/indigo-web/utils/uf"
)

type chunkedState uint8

const (
	eChunkSize chunkedState = iota + 1
	eChunkData
	eChunkTerminator
	eTrailers
	eDone
)

// chunkedDecoder reconstructs a body out of its chunked wire form. An instance
// lives for the duration of a single body decode and is never reused.
type chunkedDecoder struct {
	r *stream.Reader
	// limit is the caller's cap on the reassembled body length. The decoder
	// itself imposes no bound on a single chunk's declared size.
	limit     int64
	state     chunkedState
	remaining uint64
	body      []byte
}

func newChunkedDecoder(r *stream.Reader, limit int64) chunkedDecoder {
	return chunkedDecoder{
		r:     r,
		limit: limit,
		state: eChunkSize,
	}
}

// Decode drives the state machine to completion, returning the fully
// reassembled body. Chunk extensions and trailers are discarded. I/O errors
// propagate unchanged.
func (c *chunkedDecoder) Decode() ([]byte, error) {
	for c.state != eDone {
		var err error

		switch c.state {
		case eChunkSize:
			err = c.chunkSize()
		case eChunkData:
			err = c.chunkData()
		case eChunkTerminator:
			err = c.chunkTerminator()
		case eTrailers:
			err = c.trailers()
		}

		if err != nil {
			return nil, err
		}
	}

	return c.body, nil
}

func (c *chunkedDecoder) chunkSize() error {
	line, err := c.r.ReadLine()
	if err != nil {
		return err
	}

	// everything past the semicolon is a chunk extension, which nobody uses
	if ext := bytes.IndexByte(line, ';'); ext != -1 {
		line = line[:ext]
	}

	size, err := strconv.ParseUint(uf.B2S(line), 16, 64)
	if err != nil {
		return status.ErrBadChunkSize
	}

	if size == 0 {
		c.state = eTrailers
		return nil
	}

	c.remaining = size
	c.state = eChunkData

	return nil
}

func (c *chunkedDecoder) chunkData() error {
	// the declared size is compared in uint64 space: one past the int range
	// would wrap negative in the conversion below and slip under the cap
	if c.remaining > math.MaxInt-uint64(len(c.body)) {
		return status.ErrBodyTooLarge
	}

	if c.limit > 0 && int64(len(c.body))+int64(c.remaining) > c.limit {
		return status.ErrBodyTooLarge
	}

	offset := len(c.body)
	c.body = append(c.body, make([]byte, c.remaining)...)
	if err := c.r.ReadFull(c.body[offset:]); err != nil {
		return err
	}

	c.state = eChunkTerminator

	return nil
}

func (c *chunkedDecoder) chunkTerminator() error {
	line, err := c.r.ReadLine()
	if err != nil {
		return err
	}

	if len(line) != 0 {
		return status.ErrBadChunkTerminator
	}

	c.state = eChunkSize

	return nil
}

func (c *chunkedDecoder) trailers() error {
	for {
		line, err := c.r.ReadLine()
		if err != nil {
			return err
		}

		if len(line) == 0 {
			c.state = eDone
			return nil
		}
	}
}
