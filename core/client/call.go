package client

import (
	"context"
	"errors"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog/log"

	"github.com/opensvc/stratis/core/clierr"
)

const (
	errNoReply        = "org.freedesktop.DBus.Error.NoReply"
	errTimeout        = "org.freedesktop.DBus.Error.Timeout"
	errAccessDenied   = "org.freedesktop.DBus.Error.AccessDenied"
	errServiceUnknown = "org.freedesktop.DBus.Error.ServiceUnknown"
	errNameHasNoOwner = "org.freedesktop.DBus.Error.NameHasNoOwner"

	msgNoReply      = "stratis attempted communication with the daemon, stratisd, over the D-Bus, but stratisd did not respond in the allowed time."
	msgAccessDenied = "Most likely stratis has insufficient permissions for the action requested."
	msgUnreachable  = "Most likely stratis is unable to connect to the stratisd D-Bus service."
)

// Call invokes iface.method on the object at path and returns the reply
// body. Struct values of the reply are decoded as []interface{}.
func (t *T) Call(ctx context.Context, path dbus.ObjectPath, iface, method string, args ...interface{}) ([]interface{}, error) {
	ctx, cancel := t.withTimeout(ctx)
	defer cancel()
	begin := time.Now()
	call := t.conn.Object(t.dest, path).CallWithContext(ctx, iface+"."+method, 0, args...)
	log.Debug().
		Str("path", string(path)).
		Str("method", iface+"."+method).
		Dur("duration", time.Since(begin)).
		AnErr("err", call.Err).
		Msg("call")
	if call.Err != nil {
		return nil, mapError(ctx, call.Err)
	}
	return call.Body, nil
}

// mapError classifies a call error as an interruption or a transport fault.
func mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return &clierr.InterruptedError{Err: err}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &clierr.TransportError{Name: errNoReply, Explanation: msgNoReply, Err: err}
	}
	name := errorName(err)
	switch name {
	case errNoReply, errTimeout:
		return &clierr.TransportError{Name: name, Explanation: msgNoReply, Err: err}
	case errAccessDenied:
		return &clierr.TransportError{Name: name, Explanation: msgAccessDenied, Err: err}
	case errServiceUnknown, errNameHasNoOwner:
		return &clierr.TransportError{Name: name, Explanation: msgUnreachable, Err: err, Unreachable: true}
	case "":
		return &clierr.TransportError{Err: err}
	default:
		return &clierr.InternalError{Err: err}
	}
}

func errorName(err error) string {
	var (
		dbusErr    dbus.Error
		dbusErrPtr *dbus.Error
	)
	switch {
	case errors.As(err, &dbusErr):
		return dbusErr.Name
	case errors.As(err, &dbusErrPtr):
		return dbusErrPtr.Name
	default:
		return ""
	}
}
