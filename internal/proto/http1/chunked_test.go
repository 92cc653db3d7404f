package http1

import (
	"io"
	"testing"

	"github.com/indigo-web/filed/http/status"
	"github.com/stretchr/testify/require"
)

func decode(input string, limit int64) ([]byte, error) {
	decoder := newChunkedDecoder(newStream(input), limit)
	return decoder.Decode()
}

func TestChunkedDecoder(t *testing.T) {
	t.Run("single chunk", func(t *testing.T) {
		body, err := decode("5\r\nhello\r\n0\r\n\r\n", 0)
		require.NoError(t, err)
		require.Equal(t, "hello", string(body))
	})

	t.Run("same content via different split", func(t *testing.T) {
		body, err := decode("3\r\nhel\r\n2\r\nlo\r\n0\r\n\r\n", 0)
		require.NoError(t, err)
		require.Equal(t, "hello", string(body))
	})

	t.Run("empty body", func(t *testing.T) {
		body, err := decode("0\r\n\r\n", 0)
		require.NoError(t, err)
		require.Empty(t, body)
	})

	t.Run("chunk data may contain line breaks", func(t *testing.T) {
		body, err := decode("6\r\nhi\r\nyo\r\n0\r\n\r\n", 0)
		require.NoError(t, err)
		require.Equal(t, "hi\r\nyo", string(body))
	})

	t.Run("extensions are discarded", func(t *testing.T) {
		body, err := decode("5;name=value\r\nhello\r\n0;checksum=no one cares\r\n\r\n", 0)
		require.NoError(t, err)
		require.Equal(t, "hello", string(body))
	})

	t.Run("trailers are discarded", func(t *testing.T) {
		body, err := decode("5\r\nhello\r\n0\r\nExpires: never\r\nX-Sum: 42\r\n\r\n", 0)
		require.NoError(t, err)
		require.Equal(t, "hello", string(body))
	})

	t.Run("lf terminators", func(t *testing.T) {
		body, err := decode("5\nhello\n0\n\n", 0)
		require.NoError(t, err)
		require.Equal(t, "hello", string(body))
	})

	t.Run("hex size is case-insensitive", func(t *testing.T) {
		payload := "aAbBcCdD"
		body, err := decode("8\r\n"+payload+"\r\n0\r\n\r\n", 0)
		require.NoError(t, err)
		require.Equal(t, payload, string(body))

		body, err = decode("D\r\nHello, world!\r\n0\r\n\r\n", 0)
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(body))

		body, err = decode("d\r\nHello, world!\r\n0\r\n\r\n", 0)
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(body))
	})

	t.Run("bad hex size", func(t *testing.T) {
		for _, sample := range []string{
			"g\r\nx\r\n0\r\n\r\n",
			"\r\nx\r\n0\r\n\r\n",
			"5x\r\nhello\r\n0\r\n\r\n",
			"-5\r\nhello\r\n0\r\n\r\n",
		} {
			_, err := decode(sample, 0)
			require.ErrorIs(t, err, status.ErrBadChunkSize, "%q", sample)
		}
	})

	t.Run("bad terminator", func(t *testing.T) {
		_, err := decode("5\r\nhellooops\r\n0\r\n\r\n", 0)
		require.ErrorIs(t, err, status.ErrBadChunkTerminator)
	})

	t.Run("limit exceeded", func(t *testing.T) {
		_, err := decode("5\r\nhello\r\n5\r\nworld\r\n0\r\n\r\n", 8)
		require.ErrorIs(t, err, status.ErrBodyTooLarge)
	})

	t.Run("declared size past the int range", func(t *testing.T) {
		// a well-formed hex size that no slice can hold must fail like any
		// other oversized body, not bring the decoder down
		for _, limit := range []int64{0, 512 * 1024 * 1024} {
			_, err := decode("FFFFFFFFFFFFFFFF\r\nwhatever", limit)
			require.ErrorIs(t, err, status.ErrBodyTooLarge, "limit=%d", limit)
		}
	})

	t.Run("truncated stream propagates io error", func(t *testing.T) {
		_, err := decode("5\r\nhe", 0)
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}
