package config

import (
	"os"
	"runtime"
	"time"

	jsoniter "github.com/json-iterator/go"
)

type (
	Headers struct {
		// MaxLineSize limits the length of a single line of the request head,
		// the request line included. A longer line is a hard parse failure.
		MaxLineSize int `json:"max_line_size"`
		// Prealloc is the number of seats allocated upfront for request headers.
		Prealloc int `json:"prealloc"`
	}

	Body struct {
		// MaxSize caps the size of a request body, whether sized or chunked. The
		// chunked decoder itself enforces no per-chunk limit, so this is the only
		// guard against a peer declaring arbitrarily large bodies.
		MaxSize int64 `json:"max_size"`
	}

	NET struct {
		// ReadBufferSize is the size of the buffered reader placed over each
		// accepted connection.
		ReadBufferSize int `json:"read_buffer_size"`
		// ReadTimeout limits how long a single read on a connection may stall.
		ReadTimeout time.Duration `json:"read_timeout"`
		// AcceptLoopInterruptPeriod controls how often the Accept() call is
		// interrupted in order to check whether it's time to stop.
		AcceptLoopInterruptPeriod time.Duration `json:"accept_loop_interrupt_period"`
	}

	Pool struct {
		// Workers is the number of long-lived worker goroutines serving accepted
		// connections. Must stay positive: the pool rejects zero at construction.
		Workers int `json:"workers"`
	}

	FS struct {
		// Root is the directory the route table is built from.
		Root string `json:"root"`
		// Index is the file a directory path maps to.
		Index string `json:"index"`
	}
)

// Config holds settings used across the server, mainly restrictions,
// limitations and pre-allocations.
//
// Always modify defaults (returned via Default()) instead of instantiating the
// struct manually, otherwise zero limits will reject everything.
type Config struct {
	Headers Headers `json:"headers"`
	Body    Body    `json:"body"`
	NET     NET     `json:"net"`
	Pool    Pool    `json:"pool"`
	FS      FS      `json:"fs"`
}

// Default returns the default config. Limits are fairly permissive.
func Default() *Config {
	return &Config{
		Headers: Headers{
			MaxLineSize: 8192,
			Prealloc:    10,
		},
		Body: Body{
			MaxSize: 512 * 1024 * 1024, // 512 megabytes
		},
		NET: NET{
			ReadBufferSize:            4 * 1024,
			ReadTimeout:               90 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
		Pool: Pool{
			Workers: runtime.NumCPU(),
		},
		FS: FS{
			Root:  ".",
			Index: "index.html",
		},
	}
}

// Fill replaces zero values of the config with defaults, letting the user
// override only the fields of interest.
func Fill(original *Config) *Config {
	defaults := Default()

	original.Headers.MaxLineSize = customOrDefault(original.Headers.MaxLineSize, defaults.Headers.MaxLineSize)
	original.Headers.Prealloc = customOrDefault(original.Headers.Prealloc, defaults.Headers.Prealloc)
	original.Body.MaxSize = customOrDefault(original.Body.MaxSize, defaults.Body.MaxSize)
	original.NET.ReadBufferSize = customOrDefault(original.NET.ReadBufferSize, defaults.NET.ReadBufferSize)
	original.NET.ReadTimeout = customOrDefault(original.NET.ReadTimeout, defaults.NET.ReadTimeout)
	original.NET.AcceptLoopInterruptPeriod = customOrDefault(
		original.NET.AcceptLoopInterruptPeriod, defaults.NET.AcceptLoopInterruptPeriod,
	)
	original.Pool.Workers = customOrDefault(original.Pool.Workers, defaults.Pool.Workers)
	if len(original.FS.Root) == 0 {
		original.FS.Root = defaults.FS.Root
	}
	if len(original.FS.Index) == 0 {
		original.FS.Index = defaults.FS.Index
	}

	return original
}

// FromFile reads a JSON config, filling omitted fields with defaults.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := new(Config)
	if err = jsoniter.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return Fill(cfg), nil
}

func customOrDefault[T int | int64 | time.Duration](custom, def T) T {
	if custom == 0 {
		return def
	}

	return custom
}
