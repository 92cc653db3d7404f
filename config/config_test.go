package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHasNoZeroLimits(t *testing.T) {
	cfg := Default()
	assert.NotZero(t, cfg.Headers.MaxLineSize)
	assert.NotZero(t, cfg.Headers.Prealloc)
	assert.NotZero(t, cfg.Body.MaxSize)
	assert.NotZero(t, cfg.NET.ReadBufferSize)
	assert.NotZero(t, cfg.NET.ReadTimeout)
	assert.NotZero(t, cfg.NET.AcceptLoopInterruptPeriod)
	assert.NotZero(t, cfg.Pool.Workers)
	assert.NotEmpty(t, cfg.FS.Root)
	assert.NotEmpty(t, cfg.FS.Index)
}

func TestFill(t *testing.T) {
	cfg := Fill(&Config{
		Headers: Headers{MaxLineSize: 1024},
		Pool:    Pool{Workers: 2},
	})

	require.Equal(t, 1024, cfg.Headers.MaxLineSize)
	require.Equal(t, 2, cfg.Pool.Workers)
	require.Equal(t, Default().Body.MaxSize, cfg.Body.MaxSize)
	require.Equal(t, Default().NET.ReadTimeout, cfg.NET.ReadTimeout)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filed.json")
	blob := `{"headers": {"max_line_size": 2048}, "net": {"read_timeout": 1000000000}, "fs": {"root": "/srv/www"}}`
	require.NoError(t, os.WriteFile(path, []byte(blob), 0o644))

	cfg, err := FromFile(path)
	require.NoError(t, err)
	require.Equal(t, 2048, cfg.Headers.MaxLineSize)
	require.Equal(t, time.Second, cfg.NET.ReadTimeout)
	require.Equal(t, "/srv/www", cfg.FS.Root)
	// omitted fields come from defaults
	require.Equal(t, Default().Pool.Workers, cfg.Pool.Workers)
}
