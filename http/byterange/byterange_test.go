package byterange

import (
	"testing"

	"github.com/indigo-web/filed/http/status"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("closed", func(t *testing.T) {
		spec, err := Parse("bytes=0-99")
		require.NoError(t, err)
		require.Equal(t, Closed(0, 99), spec)
	})

	t.Run("suffix", func(t *testing.T) {
		spec, err := Parse("bytes=-500")
		require.NoError(t, err)
		require.Equal(t, Suffix(500), spec)
	})

	t.Run("open", func(t *testing.T) {
		spec, err := Parse("bytes=9500-")
		require.NoError(t, err)
		require.Equal(t, Open(9500), spec)
	})

	t.Run("multiple ranges are unsupported, not truncated", func(t *testing.T) {
		_, err := Parse("bytes=0-1,5-9")
		require.ErrorIs(t, err, status.ErrMultiRangeUnsupported)
	})

	t.Run("bad syntax", func(t *testing.T) {
		for _, sample := range []string{
			"", "0-99", "byte=0-99", "bytes=", "bytes=-",
			"bytes=99-0", "bytes=a-b", "bytes=1.5-2", "bytes=+1-2", "bytes=--5",
		} {
			_, err := Parse(sample)
			require.ErrorIs(t, err, status.ErrBadRangeSyntax, "%q", sample)
		}
	})
}

func TestResolve(t *testing.T) {
	t.Run("closed within the resource", func(t *testing.T) {
		resolved, ok := Closed(0, 99).Resolve(1000)
		require.True(t, ok)
		require.Equal(t, Resolved{0, 99, 1000}, resolved)
		require.EqualValues(t, 100, resolved.Len())
	})

	t.Run("closed end is clamped", func(t *testing.T) {
		resolved, ok := Closed(500, 5000).Resolve(1000)
		require.True(t, ok)
		require.Equal(t, Resolved{500, 999, 1000}, resolved)
	})

	t.Run("closed past the resource", func(t *testing.T) {
		_, ok := Closed(1000, 1999).Resolve(1000)
		require.False(t, ok)
	})

	t.Run("suffix", func(t *testing.T) {
		resolved, ok := Suffix(500).Resolve(1000)
		require.True(t, ok)
		require.Equal(t, Resolved{500, 999, 1000}, resolved)
	})

	t.Run("suffix longer than the resource covers it entirely", func(t *testing.T) {
		resolved, ok := Suffix(5000).Resolve(1000)
		require.True(t, ok)
		require.Equal(t, Resolved{0, 999, 1000}, resolved)
	})

	t.Run("zero suffix", func(t *testing.T) {
		_, ok := Suffix(0).Resolve(1000)
		require.False(t, ok)
	})

	t.Run("open", func(t *testing.T) {
		resolved, ok := Open(999).Resolve(1000)
		require.True(t, ok)
		require.Equal(t, Resolved{999, 999, 1000}, resolved)
	})

	t.Run("open past the resource", func(t *testing.T) {
		_, ok := Open(1000).Resolve(1000)
		require.False(t, ok)
	})

	t.Run("empty resource is never satisfiable", func(t *testing.T) {
		for _, spec := range []Spec{Closed(0, 0), Suffix(5), Open(0)} {
			_, ok := spec.Resolve(0)
			require.False(t, ok)
		}
	})

	t.Run("resolution invariant", func(t *testing.T) {
		for start := int64(0); start < 6; start++ {
			for end := start; end < 8; end++ {
				for total := int64(0); total < 8; total++ {
					resolved, ok := Closed(start, end).Resolve(total)
					if start >= total || total == 0 {
						require.False(t, ok)
						continue
					}

					require.True(t, ok)
					require.Equal(t, start, resolved.Start)
					require.Equal(t, min(end, total-1), resolved.End)
					require.True(t, resolved.Start <= resolved.End)
					require.True(t, resolved.End < resolved.Total)
				}
			}
		}
	})
}

func TestContentRange(t *testing.T) {
	require.Equal(t, "bytes 0-99/1000", Resolved{0, 99, 1000}.ContentRange())
	require.Equal(t, "bytes */1000", NotSatisfiable(1000))
}
