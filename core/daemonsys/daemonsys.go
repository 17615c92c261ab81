package daemonsys

import (
	"context"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/opensvc/stratis/core/stratisd"
)

type (
	// T handle dbus.Conn for systemd
	T struct {
		conn *dbus.Conn
	}
)

// ActiveState returns the ActiveState property of the stratisd unit, like
// "active", "inactive" or "failed".
func (t *T) ActiveState(ctx context.Context) (string, error) {
	prop, err := t.conn.GetUnitPropertyContext(ctx, stratisd.ServiceUnit, "ActiveState")
	if err != nil {
		return "", err
	}
	if prop == nil {
		return "", nil
	}
	return strings.Trim(prop.Value.String(), `"`), nil
}

// Close closes systemd dbus connection
func (t *T) Close() error {
	if t.conn != nil {
		t.conn.Close()
	}
	return nil
}

// New provides a connected object to dbus systemd that implement following interfaces:
//
//	ActiveState(ctx context.Context) (string, error)
//	Close() error
func New(ctx context.Context) (*T, error) {
	c, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return nil, err
	}
	return &T{conn: c}, nil
}
