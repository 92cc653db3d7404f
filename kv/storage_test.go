package kv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	t.Run("case-insensitive lookup", func(t *testing.T) {
		s := New().Set("host", "localhost")
		for _, key := range []string{"host", "Host", "HOST", "hOsT"} {
			value, found := s.Get(key)
			require.True(t, found, key)
			require.Equal(t, "localhost", value)
		}
	})

	t.Run("duplicate key overwrites", func(t *testing.T) {
		s := New().
			Set("content-length", "5").
			Set("Content-Length", "13")
		require.Equal(t, 1, s.Len())
		require.Equal(t, "13", s.Value("content-length"))
	})

	t.Run("missing key", func(t *testing.T) {
		s := New().Set("host", "localhost")
		require.False(t, s.Has("content-length"))
		require.Equal(t, "identity", s.ValueOr("transfer-encoding", "identity"))
	})

	t.Run("iter yields all pairs", func(t *testing.T) {
		s := New().Set("a", "1").Set("b", "2")
		pairs := map[string]string{}
		for key, value := range s.Iter() {
			pairs[key] = value
		}
		require.Equal(t, map[string]string{"a": "1", "b": "2"}, pairs)
	})

	t.Run("clear", func(t *testing.T) {
		s := NewPrealloc(4).Set("a", "1")
		require.False(t, s.Empty())
		s.Clear()
		require.True(t, s.Empty())
		require.Equal(t, 0, s.Len())
	})
}
