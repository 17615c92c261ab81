package stratisd

import (
	"context"

	"github.com/godbus/dbus/v5"

	"github.com/opensvc/stratis/core/props"
)

type (
	// Pool is a stratisd pool object.
	Pool struct {
		c    Caller
		path dbus.ObjectPath
	}

	// CreatedFilesystem is an element of the CreateFilesystems payload.
	CreatedFilesystem struct {
		Path dbus.ObjectPath
		Name string
	}
)

// NewPool returns the pool object stub at path.
func NewPool(c Caller, path dbus.ObjectPath) *Pool {
	return &Pool{c: c, path: path}
}

// Path returns the pool object path.
func (t *Pool) Path() dbus.ObjectPath {
	return t.path
}

func (t *Pool) call(ctx context.Context, method string, args ...any) (any, error) {
	body, err := t.c.Call(ctx, t.path, PoolInterface, method, args...)
	if err != nil {
		return nil, err
	}
	return result(method, body)
}

// callBool calls a method whose payload is a single changed flag.
func (t *Pool) callBool(ctx context.Context, method string, args ...any) (bool, error) {
	v, err := t.call(ctx, method, args...)
	if err != nil {
		return false, err
	}
	return decodeBool(method, v)
}

func (t *Pool) addDevs(ctx context.Context, method string, devices []string) (bool, []dbus.ObjectPath, error) {
	v, err := t.call(ctx, method, devices)
	if err != nil {
		return false, nil, err
	}
	changed, inner, err := decodeChanged(method, v)
	if err != nil {
		return false, nil, err
	}
	paths, err := decodeObjectPaths(method, inner)
	if err != nil {
		return false, nil, err
	}
	return changed, paths, nil
}

// InitCache initializes the cache tier with devices.
func (t *Pool) InitCache(ctx context.Context, devices []string) (bool, []dbus.ObjectPath, error) {
	return t.addDevs(ctx, "InitCache", devices)
}

// AddDataDevs adds devices to the data tier.
func (t *Pool) AddDataDevs(ctx context.Context, devices []string) (bool, []dbus.ObjectPath, error) {
	return t.addDevs(ctx, "AddDataDevs", devices)
}

// AddCacheDevs adds devices to an initialized cache tier.
func (t *Pool) AddCacheDevs(ctx context.Context, devices []string) (bool, []dbus.ObjectPath, error) {
	return t.addDevs(ctx, "AddCacheDevs", devices)
}

// CreateFilesystems creates the filesystems described by specs in one call.
func (t *Pool) CreateFilesystems(ctx context.Context, specs []FilesystemSpec) (bool, []CreatedFilesystem, error) {
	const method = "CreateFilesystems"
	v, err := t.call(ctx, method, specs)
	if err != nil {
		return false, nil, err
	}
	changed, inner, err := decodeChanged(method, v)
	if err != nil {
		return false, nil, err
	}
	var l []any
	switch e := inner.(type) {
	case [][]any:
		for _, m := range e {
			l = append(l, m)
		}
	case []any:
		l = e
	default:
		return false, nil, shapeError(method, v)
	}
	created := make([]CreatedFilesystem, 0, len(l))
	for _, e := range l {
		m, ok := props.AsStruct(e, 2)
		if !ok {
			return false, nil, shapeError(method, v)
		}
		var fs CreatedFilesystem
		if fs.Path, ok = props.AsObjectPath(m[0]); !ok {
			return false, nil, shapeError(method, v)
		}
		if fs.Name, ok = props.AsString(m[1]); !ok {
			return false, nil, shapeError(method, v)
		}
		created = append(created, fs)
	}
	return changed, created, nil
}

// DestroyFilesystems destroys the filesystems at paths and returns the
// uuids of the destroyed ones.
func (t *Pool) DestroyFilesystems(ctx context.Context, paths []dbus.ObjectPath) (bool, []string, error) {
	const method = "DestroyFilesystems"
	v, err := t.call(ctx, method, paths)
	if err != nil {
		return false, nil, err
	}
	changed, inner, err := decodeChanged(method, v)
	if err != nil {
		return false, nil, err
	}
	uuids, ok := props.AsStrings(inner)
	if !ok {
		return false, nil, shapeError(method, v)
	}
	return changed, uuids, nil
}

// SnapshotFilesystem snapshots the origin filesystem.
func (t *Pool) SnapshotFilesystem(ctx context.Context, origin dbus.ObjectPath, name string) (bool, dbus.ObjectPath, error) {
	const method = "SnapshotFilesystem"
	v, err := t.call(ctx, method, origin, name)
	if err != nil {
		return false, "", err
	}
	changed, inner, err := decodeChanged(method, v)
	if err != nil {
		return false, "", err
	}
	path, ok := props.AsObjectPath(inner)
	if !ok {
		return false, "", shapeError(method, v)
	}
	return changed, path, nil
}

// SetName renames the pool.
func (t *Pool) SetName(ctx context.Context, name string) (bool, error) {
	const method = "SetName"
	v, err := t.call(ctx, method, name)
	if err != nil {
		return false, err
	}
	changed, _, err := decodeChanged(method, v)
	return changed, err
}

// GrowPhysicalDevice extends the pool onto the new size of a member device.
func (t *Pool) GrowPhysicalDevice(ctx context.Context, uuid string) (bool, error) {
	return t.callBool(ctx, "GrowPhysicalDevice", uuid)
}

// BindClevis adds a clevis binding.
func (t *Pool) BindClevis(ctx context.Context, pin, config string, slot OptionalUint32) (bool, error) {
	return t.callBool(ctx, "BindClevis", pin, config, slot)
}

// BindKeyring adds a kernel keyring binding.
func (t *Pool) BindKeyring(ctx context.Context, keyDescription string, slot OptionalUint32) (bool, error) {
	return t.callBool(ctx, "BindKeyring", keyDescription, slot)
}

// UnbindClevis removes a clevis binding.
func (t *Pool) UnbindClevis(ctx context.Context, slot OptionalUint32) (bool, error) {
	return t.callBool(ctx, "UnbindClevis", slot)
}

// UnbindKeyring removes a kernel keyring binding.
func (t *Pool) UnbindKeyring(ctx context.Context, slot OptionalUint32) (bool, error) {
	return t.callBool(ctx, "UnbindKeyring", slot)
}

// RebindClevis regenerates a clevis binding.
func (t *Pool) RebindClevis(ctx context.Context, slot OptionalUint32) (bool, error) {
	return t.callBool(ctx, "RebindClevis", slot)
}

// RebindKeyring changes the key description of a keyring binding.
func (t *Pool) RebindKeyring(ctx context.Context, keyDescription string, slot OptionalUint32) (bool, error) {
	return t.callBool(ctx, "RebindKeyring", keyDescription, slot)
}

// EncryptPool encrypts an unencrypted pool online.
func (t *Pool) EncryptPool(ctx context.Context, keys []KeyDescriptionSpec, clevis []ClevisSpec) (bool, error) {
	return t.callBool(ctx, "EncryptPool", keys, clevis)
}

// DecryptPool removes the encryption layer of the pool.
func (t *Pool) DecryptPool(ctx context.Context) (bool, error) {
	return t.callBool(ctx, "DecryptPool")
}

// ReencryptPool changes the pool volume key.
func (t *Pool) ReencryptPool(ctx context.Context) (bool, error) {
	return t.callBool(ctx, "ReencryptPool")
}

// Metadata returns the pool metadata json document, the in-memory
// version if current, else the last written one.
func (t *Pool) Metadata(ctx context.Context, current bool) (string, error) {
	const method = "Metadata"
	v, err := t.call(ctx, method, current)
	if err != nil {
		return "", err
	}
	return decodeString(method, v)
}

// FilesystemMetadata returns the metadata json document of one filesystem,
// or of all filesystems if name is unset.
func (t *Pool) FilesystemMetadata(ctx context.Context, name OptionalString, current bool) (string, error) {
	const method = "FilesystemMetadata"
	v, err := t.call(ctx, method, name, current)
	if err != nil {
		return "", err
	}
	return decodeString(method, v)
}

// SetFsLimit sets the maximum number of filesystems in the pool.
func (t *Pool) SetFsLimit(ctx context.Context, limit uint64) error {
	return t.c.SetProperty(ctx, t.path, PoolInterface, "FsLimit", dbus.MakeVariant(limit))
}

// SetOverprovisioning allows or forbids overprovisioning.
func (t *Pool) SetOverprovisioning(ctx context.Context, allowed bool) error {
	return t.c.SetProperty(ctx, t.path, PoolInterface, "Overprovisioning", dbus.MakeVariant(allowed))
}
