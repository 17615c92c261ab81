package stratiscmd_test

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/golang/mock/gomock"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/stratiscmd"
	"github.com/opensvc/stratis/core/stratisd"
)

// objectsWithGrownDevice returns objectsWithPool with a data block device
// observed twice as large as its in-use size.
func objectsWithGrownDevice() managedObjects {
	m := objectsWithPool()
	m[dev1Path][stratisd.BlockdevInterface]["NewPhysicalSize"] = dbus.MakeVariant([]any{true, "2147483648"})
	return m
}

func TestPoolAddData(t *testing.T) {
	c := newCaller(t)
	gate := expectGate(c)
	objs := expectObjects(c, objectsWithPool()).After(gate)
	c.EXPECT().
		Call(gomock.Any(), pool1Path, stratisd.PoolInterface, "AddDataDevs", []string{"/dev/vdc", "/dev/vdd"}).
		Return(reply([]any{true, []dbus.ObjectPath{"/bd/2", "/bd/3"}}, 0, ""), nil).
		After(objs)

	_, _, err := execute(stratiscmd.NewCmdPoolAddData(global()), "p1", "/dev/vdc", "/dev/vdd", "/dev/vdc")
	require.NoError(t, err)
}

func TestPoolExtendData(t *testing.T) {
	t.Run("grows the expandable devices", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		objs := expectObjects(c, objectsWithGrownDevice()).After(gate)
		c.EXPECT().
			Call(gomock.Any(), pool1Path, stratisd.PoolInterface, "GrowPhysicalDevice", dev1UUID).
			Return(reply(true, 0, ""), nil).
			After(objs)

		_, _, err := execute(stratiscmd.NewCmdPoolExtendData(global()), "p1")
		require.NoError(t, err)
	})

	t.Run("no expandable device", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		expectObjects(c, objectsWithPool()).After(gate)

		_, _, err := execute(stratiscmd.NewCmdPoolExtendData(global()), "p1")
		var e *clierr.NoChangeError
		require.True(t, errors.As(err, &e))
	})

	t.Run("unknown device uuid", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		expectObjects(c, objectsWithPool()).After(gate)

		_, _, err := execute(stratiscmd.NewCmdPoolExtendData(global()), "p1", "--device-uuid", fs1UUID)
		var e *clierr.ResourceNotFoundError
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "blockdev", e.Kind)
	})
}

func TestPoolProperties(t *testing.T) {
	t.Run("overprovision", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		objs := expectObjects(c, objectsWithPool()).After(gate)
		c.EXPECT().
			SetProperty(gomock.Any(), pool1Path, stratisd.PoolInterface, "Overprovisioning", dbus.MakeVariant(false)).
			Return(nil).
			After(objs)

		_, _, err := execute(stratiscmd.NewCmdPoolOverprovision(global()), "p1", "no")
		require.NoError(t, err)
	})

	t.Run("fs limit", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		objs := expectObjects(c, objectsWithPool()).After(gate)
		c.EXPECT().
			SetProperty(gomock.Any(), pool1Path, stratisd.PoolInterface, "FsLimit", dbus.MakeVariant(uint64(200))).
			Return(nil).
			After(objs)

		_, _, err := execute(stratiscmd.NewCmdPoolSetFsLimit(global()), "p1", "200")
		require.NoError(t, err)
	})

	t.Run("rename", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		objs := expectObjects(c, objectsWithPool()).After(gate)
		c.EXPECT().
			Call(gomock.Any(), pool1Path, stratisd.PoolInterface, "SetName", "p2").
			Return(reply([]any{true, pool1UUID}, 0, ""), nil).
			After(objs)

		_, _, err := execute(stratiscmd.NewCmdPoolRename(global()), "p1", "p2")
		require.NoError(t, err)
	})

	for name, tc := range map[string]struct {
		cmd  func(*stratiscmd.OptsGlobal) *cobra.Command
		args []string
	}{
		"overprovision maybe":  {stratiscmd.NewCmdPoolOverprovision, []string{"p1", "maybe"}},
		"non numeric fs limit": {stratiscmd.NewCmdPoolSetFsLimit, []string{"p1", "many"}},
	} {
		t.Run(name, func(t *testing.T) {
			newCaller(t)
			_, _, err := execute(tc.cmd(global()), tc.args...)
			var e *clierr.ValidationError
			require.True(t, errors.As(err, &e), "got %v", err)
		})
	}
}

func TestPoolExplain(t *testing.T) {
	newCaller(t)
	stdout, _, err := execute(stratiscmd.NewCmdPoolExplain(global()), "WS001")
	require.NoError(t, err)
	assert.Equal(t, "Every device belonging to the pool has been fully allocated. To increase the allocable space, add additional data devices to the pool.\n", stdout)

	_, _, err = execute(stratiscmd.NewCmdPoolExplain(global()), "XX999")
	var e *clierr.ValidationError
	require.True(t, errors.As(err, &e))
}
