package client

import (
	"context"

	"github.com/godbus/dbus/v5"

	"github.com/opensvc/stratis/core/clierr"
)

const (
	propertiesInterface    = "org.freedesktop.DBus.Properties"
	introspectInterface    = "org.freedesktop.DBus.Introspectable"
	objectManagerInterface = "org.freedesktop.DBus.ObjectManager"
)

// GetProperty returns the value of the iface.name property of the object
// at path.
func (t *T) GetProperty(ctx context.Context, path dbus.ObjectPath, iface, name string) (dbus.Variant, error) {
	body, err := t.Call(ctx, path, propertiesInterface, "Get", iface, name)
	if err != nil {
		return dbus.Variant{}, err
	}
	if len(body) != 1 {
		return dbus.Variant{}, clierr.Internalf("get property %s.%s: unexpected reply length %d", iface, name, len(body))
	}
	v, ok := body[0].(dbus.Variant)
	if !ok {
		return dbus.Variant{}, clierr.Internalf("get property %s.%s: unexpected reply type %T", iface, name, body[0])
	}
	return v, nil
}

// SetProperty sets the value of the iface.name property of the object at
// path.
func (t *T) SetProperty(ctx context.Context, path dbus.ObjectPath, iface, name string, value dbus.Variant) error {
	_, err := t.Call(ctx, path, propertiesInterface, "Set", iface, name, value)
	return err
}

// Introspect returns the introspection xml document of the object at path.
func (t *T) Introspect(ctx context.Context, path dbus.ObjectPath) (string, error) {
	body, err := t.Call(ctx, path, introspectInterface, "Introspect")
	if err != nil {
		return "", err
	}
	if len(body) != 1 {
		return "", clierr.Internalf("introspect %s: unexpected reply length %d", path, len(body))
	}
	s, ok := body[0].(string)
	if !ok {
		return "", clierr.Internalf("introspect %s: unexpected reply type %T", path, body[0])
	}
	return s, nil
}

// GetManagedObjects returns the object map of the object manager at path.
func (t *T) GetManagedObjects(ctx context.Context, path dbus.ObjectPath) (map[dbus.ObjectPath]map[string]map[string]dbus.Variant, error) {
	body, err := t.Call(ctx, path, objectManagerInterface, "GetManagedObjects")
	if err != nil {
		return nil, err
	}
	if len(body) != 1 {
		return nil, clierr.Internalf("get managed objects: unexpected reply length %d", len(body))
	}
	m, ok := body[0].(map[dbus.ObjectPath]map[string]map[string]dbus.Variant)
	if !ok {
		return nil, clierr.Internalf("get managed objects: unexpected reply type %T", body[0])
	}
	return m, nil
}
