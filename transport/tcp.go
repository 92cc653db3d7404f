package transport

import (
	"errors"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/indigo-web/filed/config"
)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// TCP is an interruptible accept loop. The deadline trick makes Accept wake up
// periodically to notice a requested stop without dropping pending
// connections.
type TCP struct {
	l    listener
	stop *atomic.Bool
}

func NewTCP() *TCP {
	return &TCP{
		stop: new(atomic.Bool),
	}
}

func (t *TCP) Bind(addr string) error {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return err
	}

	t.l, err = net.ListenTCP("tcp", tcpaddr)

	return err
}

// Listen accepts connections until stopped, handing each one to the callback.
// The callback must not block the loop: dispatching the connection further
// (e.g. onto a worker pool) is its job.
func (t *TCP) Listen(cfg config.NET, cb func(conn net.Conn)) error {
	for !t.stop.Load() {
		if err := t.l.SetDeadline(time.Now().Add(cfg.AcceptLoopInterruptPeriod)); err != nil {
			return err
		}

		conn, err := t.l.Accept()
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}

			return err
		}

		cb(conn)
	}

	return nil
}

func (t *TCP) Stop() {
	t.stop.Store(true)
}

func (t *TCP) Close() error {
	return t.l.Close()
}

func (t *TCP) Addr() net.Addr {
	return t.l.Addr()
}
