package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/indigo-web/filed"
	"github.com/indigo-web/filed/config"
)

func main() {
	var (
		addr     = flag.String("addr", ":8080", "address to listen on")
		root     = flag.String("root", "", "directory to serve")
		workers  = flag.Int("workers", 0, "worker pool size (defaults to the CPU count)")
		cfgPath  = flag.String("config", "", "path to a JSON config file")
		otelLogs = flag.Bool("otel", false, "route logs through the OpenTelemetry slog bridge")
	)
	flag.Parse()

	// environment overrides beat flag defaults, explicit flags beat both
	if v := os.Getenv("FILED_ADDR"); v != "" && !passed("addr") {
		*addr = v
	}
	if v := os.Getenv("FILED_ROOT"); v != "" && !passed("root") {
		*root = v
	}
	if v := os.Getenv("FILED_WORKERS"); v != "" && !passed("workers") {
		if n, err := strconv.Atoi(v); err == nil {
			*workers = n
		}
	}
	if v := os.Getenv("FILED_CONFIG"); v != "" && !passed("config") {
		*cfgPath = v
	}

	logger := newLogger(*otelLogs)

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.FromFile(*cfgPath); err != nil {
			logger.Error("cannot load the config", "path", *cfgPath, "err", err)
			os.Exit(1)
		}
	}

	if *root != "" {
		cfg.FS.Root = *root
	}
	if *workers > 0 {
		cfg.Pool.Workers = *workers
	}

	app := filed.New(*addr).Tune(cfg).Log(logger)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info("stopping")
		app.Stop()
	}()

	if err := app.Serve(); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(otel bool) *slog.Logger {
	if otel {
		// the global logger provider is expected to be configured by the
		// ambient OTEL_* environment, as usual for collector setups
		return otelslog.NewLogger("filed")
	}

	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func passed(name string) (found bool) {
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})

	return found
}
