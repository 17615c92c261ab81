package stratisd

import (
	"context"

	"github.com/godbus/dbus/v5"
)

// Filesystem is a stratisd filesystem object.
type Filesystem struct {
	c    Caller
	path dbus.ObjectPath
}

// NewFilesystem returns the filesystem object stub at path.
func NewFilesystem(c Caller, path dbus.ObjectPath) *Filesystem {
	return &Filesystem{c: c, path: path}
}

// Path returns the filesystem object path.
func (t *Filesystem) Path() dbus.ObjectPath {
	return t.path
}

// SetName renames the filesystem.
func (t *Filesystem) SetName(ctx context.Context, name string) (bool, error) {
	const method = "SetName"
	body, err := t.c.Call(ctx, t.path, FilesystemInterface, method, name)
	if err != nil {
		return false, err
	}
	v, err := result(method, body)
	if err != nil {
		return false, err
	}
	changed, _, err := decodeChanged(method, v)
	return changed, err
}

// SetSizeLimit sets the size limit, a decimal bytes count. An unset limit
// removes it.
func (t *Filesystem) SetSizeLimit(ctx context.Context, limit OptionalString) error {
	return t.c.SetProperty(ctx, t.path, FilesystemInterface, "SizeLimit", dbus.MakeVariant(limit))
}

// SetMergeScheduled schedules or cancels the revert of a snapshot into its
// origin at next pool start.
func (t *Filesystem) SetMergeScheduled(ctx context.Context, scheduled bool) error {
	return t.c.SetProperty(ctx, t.path, FilesystemInterface, "MergeScheduled", dbus.MakeVariant(scheduled))
}
