package stratisd

//go:generate mockgen -source=caller.go -destination=../mock_stratisd/caller.go

import (
	"context"

	"github.com/godbus/dbus/v5"
)

// Caller is the remote call primitive. It is implemented by client.T.
type Caller interface {
	Call(ctx context.Context, path dbus.ObjectPath, iface, method string, args ...interface{}) ([]interface{}, error)
	GetProperty(ctx context.Context, path dbus.ObjectPath, iface, name string) (dbus.Variant, error)
	SetProperty(ctx context.Context, path dbus.ObjectPath, iface, name string, value dbus.Variant) error
	Introspect(ctx context.Context, path dbus.ObjectPath) (string, error)
	GetManagedObjects(ctx context.Context, path dbus.ObjectPath) (map[dbus.ObjectPath]map[string]map[string]dbus.Variant, error)
}
