package stratisd

import (
	"context"

	"github.com/godbus/dbus/v5"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/props"
)

type (
	// Manager is the stratisd top object.
	Manager struct {
		c Caller
	}

	// CreatePoolResult is the CreatePool payload.
	CreatePoolResult struct {
		Changed   bool
		Pool      dbus.ObjectPath
		Blockdevs []dbus.ObjectPath
	}

	// StartPoolResult is the StartPool payload.
	StartPoolResult struct {
		Changed     bool
		Pool        dbus.ObjectPath
		Blockdevs   []dbus.ObjectPath
		Filesystems []dbus.ObjectPath
	}

	// SetKeyResult is the SetKey payload.
	SetKeyResult struct {
		Changed bool
		Existed bool
	}
)

// NewManager returns the top object stub.
func NewManager(c Caller) *Manager {
	return &Manager{c: c}
}

func (t *Manager) call(ctx context.Context, method string, args ...any) (any, error) {
	body, err := t.c.Call(ctx, TopObject, ManagerInterface, method, args...)
	if err != nil {
		return nil, err
	}
	return result(method, body)
}

// CreatePool creates a pool from block devices.
func (t *Manager) CreatePool(ctx context.Context, args CreatePoolArgs) (CreatePoolResult, error) {
	const method = "CreatePool"
	var r CreatePoolResult
	v, err := t.call(ctx, method,
		args.Name,
		args.Devices,
		args.KeyDescriptions,
		args.Clevis,
		args.JournalSize,
		args.TagSpec,
		args.AllocateSuperblock,
	)
	if err != nil {
		return r, err
	}
	changed, inner, err := decodeChanged(method, v)
	if err != nil {
		return r, err
	}
	r.Changed = changed
	l, ok := props.AsStruct(inner, 2)
	if !ok {
		return r, shapeError(method, v)
	}
	if r.Pool, ok = props.AsObjectPath(l[0]); !ok {
		return r, shapeError(method, v)
	}
	if r.Blockdevs, err = decodeObjectPaths(method, l[1]); err != nil {
		return r, err
	}
	return r, nil
}

// DestroyPool destroys the pool at path.
func (t *Manager) DestroyPool(ctx context.Context, pool dbus.ObjectPath) (bool, error) {
	const method = "DestroyPool"
	v, err := t.call(ctx, method, pool)
	if err != nil {
		return false, err
	}
	changed, _, err := decodeChanged(method, v)
	return changed, err
}

// StopPool stops a started pool.
func (t *Manager) StopPool(ctx context.Context, id PoolID) (bool, error) {
	const method = "StopPool"
	v, err := t.call(ctx, method, id.ID, id.Type)
	if err != nil {
		return false, err
	}
	changed, _, err := decodeChanged(method, v)
	return changed, err
}

// StartPool starts a stopped pool, unlocking it if required.
func (t *Manager) StartPool(ctx context.Context, id PoolID, unlock UnlockMethod, keyFD OptionalFD) (StartPoolResult, error) {
	const method = "StartPool"
	var r StartPoolResult
	v, err := t.call(ctx, method, id.ID, id.Type, unlock, keyFD)
	if err != nil {
		return r, err
	}
	changed, inner, err := decodeChanged(method, v)
	if err != nil {
		return r, err
	}
	r.Changed = changed
	if !changed {
		return r, nil
	}
	l, ok := props.AsStruct(inner, 3)
	if !ok {
		return r, shapeError(method, v)
	}
	if r.Pool, ok = props.AsObjectPath(l[0]); !ok {
		return r, shapeError(method, v)
	}
	if r.Blockdevs, err = decodeObjectPaths(method, l[1]); err != nil {
		return r, err
	}
	if r.Filesystems, err = decodeObjectPaths(method, l[2]); err != nil {
		return r, err
	}
	return r, nil
}

// SetKey sets a key in the kernel keyring, reading its content from fd.
func (t *Manager) SetKey(ctx context.Context, keyDescription string, fd dbus.UnixFD) (SetKeyResult, error) {
	const method = "SetKey"
	var r SetKeyResult
	v, err := t.call(ctx, method, keyDescription, fd)
	if err != nil {
		return r, err
	}
	l, ok := props.AsStruct(v, 2)
	if !ok {
		return r, shapeError(method, v)
	}
	if r.Changed, ok = props.AsBool(l[0]); !ok {
		return r, shapeError(method, v)
	}
	if r.Existed, ok = props.AsBool(l[1]); !ok {
		return r, shapeError(method, v)
	}
	return r, nil
}

// UnsetKey removes a key from the kernel keyring.
func (t *Manager) UnsetKey(ctx context.Context, keyDescription string) (bool, error) {
	const method = "UnsetKey"
	v, err := t.call(ctx, method, keyDescription)
	if err != nil {
		return false, err
	}
	return decodeBool(method, v)
}

// ListKeys returns the descriptions of the keys in the kernel keyring.
func (t *Manager) ListKeys(ctx context.Context) ([]string, error) {
	const method = "ListKeys"
	v, err := t.call(ctx, method)
	if err != nil {
		return nil, err
	}
	keys, ok := props.AsStrings(v)
	if !ok {
		return nil, shapeError(method, v)
	}
	return keys, nil
}

// RefreshState reloads the pools from their metadata.
func (t *Manager) RefreshState(ctx context.Context) error {
	const method = "RefreshState"
	body, err := t.c.Call(ctx, TopObject, ManagerInterface, method)
	if err != nil {
		return err
	}
	rc, msg, err := status(method, body)
	if err != nil {
		return err
	}
	if rc != OK {
		return &clierr.DaemonReportedError{Code: uint16(rc), Message: msg}
	}
	return nil
}

// EngineStateReport returns the engine state json document.
func (t *Manager) EngineStateReport(ctx context.Context) (string, error) {
	const method = "EngineStateReport"
	v, err := t.call(ctx, method)
	if err != nil {
		return "", err
	}
	return decodeString(method, v)
}

// Version returns the stratisd version.
func (t *Manager) Version(ctx context.Context) (string, error) {
	v, err := t.c.GetProperty(ctx, TopObject, ManagerInterface, "Version")
	if err != nil {
		return "", err
	}
	return decodeString("Version", v.Value())
}

// StoppedPools returns the stopped pools, indexed by unhyphenated uuid.
func (t *Manager) StoppedPools(ctx context.Context) (map[string]StoppedPool, error) {
	v, err := t.c.GetProperty(ctx, TopObject, ManagerInterface, "StoppedPools")
	if err != nil {
		return nil, err
	}
	return DecodeStoppedPools(v.Value())
}

// GetReport returns the named report json document.
func (t *Manager) GetReport(ctx context.Context, name string) (string, error) {
	const method = "GetReport"
	body, err := t.c.Call(ctx, TopObject, ReportInterface, method, name)
	if err != nil {
		return "", err
	}
	v, err := result(method, body)
	if err != nil {
		return "", err
	}
	return decodeString(method, v)
}

// GetManagedObjects returns the managed object map of the top object.
func (t *Manager) GetManagedObjects(ctx context.Context) (map[dbus.ObjectPath]map[string]map[string]dbus.Variant, error) {
	return t.c.GetManagedObjects(ctx, TopObject)
}

// Introspect returns the introspection document of the top object.
func (t *Manager) Introspect(ctx context.Context) (string, error) {
	return t.c.Introspect(ctx, TopObject)
}
