// Package filed is a minimal HTTP/1.1 static file server: one request per
// connection, served off an immutable route table by a fixed pool of workers.
package filed

import (
	"log/slog"
	"net"

	"github.com/indigo-web/filed/config"
	"github.com/indigo-web/filed/internal/server"
	"github.com/indigo-web/filed/pool"
	"github.com/indigo-web/filed/router"
	"github.com/indigo-web/filed/transport"
)

type App struct {
	addr string
	cfg  *config.Config
	log  *slog.Logger
	tcp  *transport.TCP
}

// New returns a new App instance listening on addr once served.
func New(addr string) *App {
	return &App{
		addr: addr,
		cfg:  config.Default(),
		log:  slog.Default(),
		tcp:  transport.NewTCP(),
	}
}

// Tune replaces default settings. Zero fields are filled with defaults.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = config.Fill(cfg)
	return a
}

// Log replaces the default logger.
func (a *App) Log(log *slog.Logger) *App {
	a.log = log
	return a
}

// Serve builds the route table, spawns the worker pool and runs the accept
// loop until Stop is called or the listener fails. Every accepted connection
// becomes exactly one job of the pool.
func (a *App) Serve() error {
	r, err := router.New(a.cfg.FS, a.log)
	if err != nil {
		return err
	}

	workers, err := pool.New(a.cfg.Pool.Workers)
	if err != nil {
		return err
	}

	if err = a.tcp.Bind(a.addr); err != nil {
		return err
	}

	srv := server.New(a.cfg, r, a.log)
	a.log.Info("serving", "addr", a.tcp.Addr().String(), "workers", a.cfg.Pool.Workers)

	err = a.tcp.Listen(a.cfg.NET, func(conn net.Conn) {
		if submitErr := workers.Submit(func() { srv.Serve(conn) }); submitErr != nil {
			// the pool is already gone, the connection has nowhere to go
			_ = conn.Close()
		}
	})

	workers.Shutdown()
	closeErr := a.tcp.Close()
	if err == nil {
		err = closeErr
	}

	return err
}

// Stop interrupts the accept loop. Jobs already queued are still served.
func (a *App) Stop() {
	a.tcp.Stop()
}
