// Package client is the D-Bus transport of the stratis command.
package client

import (
	"context"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog/log"

	"github.com/opensvc/stratis/core/clierr"
)

type (
	// T is a connection to a service on the system bus.
	T struct {
		conn    *dbus.Conn
		dest    string
		timeout time.Duration
		private bool
	}

	// Option is a functional option configurer.
	// https://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis
	Option interface {
		apply(t *T) error
	}

	optionFunc func(*T) error
)

func (fn optionFunc) apply(t *T) error {
	return fn(t)
}

// New connects the system bus and returns the client addressing the dest
// service.
func New(opts ...Option) (*T, error) {
	t := &T{}
	for _, opt := range opts {
		if err := opt.apply(t); err != nil {
			return nil, err
		}
	}
	if err := t.Configure(); err != nil {
		return nil, err
	}
	return t, nil
}

// Dest is the option setting the well-known bus name of the remote service.
func Dest(name string) Option {
	return optionFunc(func(t *T) error {
		t.dest = name
		return nil
	})
}

// Timeout is the option setting the deadline of each remote call.
// A zero duration leaves the transport default in place.
func Timeout(d time.Duration) Option {
	return optionFunc(func(t *T) error {
		t.timeout = d
		return nil
	})
}

// Conn is the option setting an already established bus connection.
// The caller keeps the ownership of the connection.
func Conn(conn *dbus.Conn) Option {
	return optionFunc(func(t *T) error {
		t.conn = conn
		return nil
	})
}

// Configure opens a private system bus connection, unless one was set
// by the Conn option.
func (t *T) Configure() error {
	if t.conn != nil {
		return nil
	}
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return &clierr.TransportError{
			Explanation: "Most likely stratis is unable to connect to the D-Bus system bus: " + err.Error(),
			Err:         err,
			Unreachable: true,
		}
	}
	t.conn = conn
	t.private = true
	log.Debug().Str("dest", t.dest).Dur("timeout", t.timeout).Msg("connected the system bus")
	return nil
}

// Close closes the bus connection if it was opened by Configure.
func (t *T) Close() error {
	if t.conn == nil || !t.private {
		return nil
	}
	return t.conn.Close()
}

func (t *T) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.timeout)
}
