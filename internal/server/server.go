// Package server glues the layers together for a single connection: the
// stream reader, the request head parser, the body resolver, the router and
// the serializer.
package server

import (
	"log/slog"
	"net"
	"time"

	"github.com/dchest/uniuri"

	"github.com/indigo-web/filed/config"
	"github.com/indigo-web/filed/http"
	"github.com/indigo-web/filed/http/status"
	"github.com/indigo-web/filed/internal/proto/http1"
	"github.com/indigo-web/filed/internal/stream"
	"github.com/indigo-web/filed/kv"
	"github.com/indigo-web/filed/router"
)

const requestIDLength = 12

type Server struct {
	cfg    *config.Config
	router *router.Router
	log    *slog.Logger
}

func New(cfg *config.Config, r *router.Router, log *slog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		router: r,
		log:    log,
	}
}

// Serve handles one accepted connection: a single request, a single response,
// then close. Any error, protocol or internal, converts into a response; an
// I/O failure aborts just this connection, never the worker executing it.
func (s *Server) Serve(conn net.Conn) {
	defer func() {
		if p := recover(); p != nil {
			// a panicking request must not take its worker down
			s.log.Error("panic while serving a connection",
				"remote", conn.RemoteAddr().String(), "panic", p)
		}

		_ = conn.Close()
	}()

	var (
		id      = uniuri.NewLen(requestIDLength)
		started = time.Now()
	)

	reader := stream.NewReader(
		deadlineReader{conn: conn, timeout: s.cfg.NET.ReadTimeout},
		s.cfg.NET.ReadBufferSize,
		s.cfg.Headers.MaxLineSize,
	)
	request := http.NewRequest(kv.NewPrealloc(s.cfg.Headers.Prealloc))
	request.RemoteAddr = conn.RemoteAddr().String()

	err := http1.ParseRequest(reader, request)
	if err == nil {
		err = http1.ResolveBody(reader, request, s.cfg.Body.MaxSize)
	}

	var response *http.Response
	switch {
	case err == nil:
		response = s.router.OnRequest(request)
	case isProtocolError(err):
		response = s.router.OnError(request, err)
	default:
		// the peer is gone or stalled out: there's nobody to respond to
		s.log.Debug("dropping the connection", "id", id, "remote", request.RemoteAddr, "err", err)
		return
	}

	serializer := http1.NewSerializer(s.cfg.NET.ReadBufferSize)
	if err = serializer.Write(conn, request, response); err != nil {
		s.log.Debug("response write failed", "id", id, "remote", request.RemoteAddr, "err", err)
		return
	}

	s.log.Info("request served",
		"id", id,
		"remote", request.RemoteAddr,
		"method", request.Line.Method,
		"target", request.Line.Target,
		"status", int(response.Status),
		"bytes", len(response.Body),
		"duration", time.Since(started),
	)
}

func isProtocolError(err error) bool {
	_, ok := err.(status.HTTPError)
	return ok
}

// deadlineReader arms the read deadline before every read, so a stalled peer
// eventually unblocks its worker with a timeout.
type deadlineReader struct {
	conn    net.Conn
	timeout time.Duration
}

func (d deadlineReader) Read(b []byte) (int, error) {
	if err := d.conn.SetReadDeadline(time.Now().Add(d.timeout)); err != nil {
		return 0, err
	}

	return d.conn.Read(b)
}
