package stratiscmd_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/golang/mock/gomock"
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/mock_stratisd"
	"github.com/opensvc/stratis/core/stratiscmd"
	"github.com/opensvc/stratis/core/stratisd"
)

const (
	introspectR8 = `<node><interface name="org.storage.stratis3.Manager.r8"></interface></node>`
	introspectR7 = `<node><interface name="org.storage.stratis3.Manager.r7"></interface></node>`

	pool1Path dbus.ObjectPath = "/org/storage/stratis3/pool/1"
	pool1UUID                 = "0123456789abcdef0123456789abcdef"
	fs1Path   dbus.ObjectPath = "/org/storage/stratis3/filesystem/1"
	fs1UUID                   = "fedcba9876543210fedcba9876543210"
	dev1Path  dbus.ObjectPath = "/org/storage/stratis3/blockdev/1"
	dev1UUID                  = "00112233445566778899aabbccddeeff"
)

// newCaller installs a mock caller as the connection of the commands run
// by the test.
func newCaller(t *testing.T) *mock_stratisd.MockCaller {
	ctrl := gomock.NewController(t)
	c := mock_stratisd.NewMockCaller(ctrl)
	saved := stratiscmd.Connect
	stratiscmd.Connect = func(context.Context) (stratisd.Caller, func() error, error) {
		return c, func() error { return nil }, nil
	}
	t.Cleanup(func() { stratiscmd.Connect = saved })
	return c
}

// expectGate expects the version gate calls of a command requiring the
// client revision.
func expectGate(c *mock_stratisd.MockCaller) *gomock.Call {
	introspect := c.EXPECT().
		Introspect(gomock.Any(), stratisd.TopObject).
		Return(introspectR8, nil)
	return c.EXPECT().
		GetProperty(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "Version").
		Return(dbus.MakeVariant("3.8.3"), nil).
		After(introspect)
}

func reply(payload any, rc uint16, msg string) []any {
	return []any{payload, rc, msg}
}

func global() *stratiscmd.OptsGlobal {
	return &stratiscmd.OptsGlobal{Output: "human", Color: "no"}
}

func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

type managedObjects map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// objectsWithPool returns a managed object map holding the p1 pool, its
// fs1 filesystem and its data block device.
func objectsWithPool() managedObjects {
	return managedObjects{
		pool1Path: {
			stratisd.PoolInterface: {
				"Name":              dbus.MakeVariant("p1"),
				"Uuid":              dbus.MakeVariant(pool1UUID),
				"Encrypted":         dbus.MakeVariant(false),
				"HasCache":          dbus.MakeVariant(false),
				"Overprovisioning":  dbus.MakeVariant(true),
				"TotalPhysicalSize": dbus.MakeVariant("1073741824"),
				"TotalPhysicalUsed": dbus.MakeVariant([]any{true, "10485760"}),
				"AllocatedSize":     dbus.MakeVariant("1048576"),
				"AvailableActions":  dbus.MakeVariant("fully_operational"),
				"NoAllocSpace":      dbus.MakeVariant(false),
				"FsLimit":           dbus.MakeVariant(uint64(100)),
			},
		},
		fs1Path: {
			stratisd.FilesystemInterface: {
				"Name":           dbus.MakeVariant("fs1"),
				"Uuid":           dbus.MakeVariant(fs1UUID),
				"Pool":           dbus.MakeVariant(pool1Path),
				"Devnode":        dbus.MakeVariant("/dev/stratis/p1/fs1"),
				"Size":           dbus.MakeVariant("1099511627776"),
				"Used":           dbus.MakeVariant([]any{true, "546308096"}),
				"SizeLimit":      dbus.MakeVariant([]any{false, ""}),
				"Created":        dbus.MakeVariant("2024-03-01T10:20:00+00:00"),
				"Origin":         dbus.MakeVariant([]any{false, ""}),
				"MergeScheduled": dbus.MakeVariant(false),
			},
		},
		dev1Path: {
			stratisd.BlockdevInterface: {
				"Devnode":           dbus.MakeVariant("/dev/vdb"),
				"PhysicalPath":      dbus.MakeVariant("/dev/vdb"),
				"Pool":              dbus.MakeVariant(pool1Path),
				"Tier":              dbus.MakeVariant(uint16(0)),
				"TotalPhysicalSize": dbus.MakeVariant("1073741824"),
				"NewPhysicalSize":   dbus.MakeVariant([]any{false, ""}),
				"Uuid":              dbus.MakeVariant(dev1UUID),
			},
		},
	}
}

func expectObjects(c *mock_stratisd.MockCaller, m managedObjects) *gomock.Call {
	return c.EXPECT().
		GetManagedObjects(gomock.Any(), stratisd.TopObject).
		Return(map[dbus.ObjectPath]map[string]map[string]dbus.Variant(m), nil)
}
