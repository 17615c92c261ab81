package stratiscmd_test

import (
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensvc/stratis/core/stratiscmd"
	"github.com/opensvc/stratis/core/stratisd"
)

func TestPoolListStopped(t *testing.T) {
	t.Run("no stopped pool prints the header row", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		c.EXPECT().
			GetProperty(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StoppedPools").
			Return(dbus.MakeVariant(map[string]map[string]dbus.Variant{}), nil).
			After(gate)

		stdout, _, err := execute(stratiscmd.NewCmdPoolList(global()), "--stopped")
		require.NoError(t, err)
		assert.Equal(t, "Name   UUID   # Devices   Key Description   Clevis\n", stdout)
	})

	t.Run("stopped pools are rows sorted by name", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		c.EXPECT().
			GetProperty(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StoppedPools").
			Return(dbus.MakeVariant(map[string]map[string]dbus.Variant{
				pool1UUID: {
					"name": dbus.MakeVariant("p2"),
					"devs": dbus.MakeVariant([]map[string]dbus.Variant{
						{"uuid": dbus.MakeVariant(dev1UUID), "devnode": dbus.MakeVariant("/dev/vdb")},
					}),
				},
				fs1UUID: {
					"devs": dbus.MakeVariant([]map[string]dbus.Variant{}),
					"key_description": dbus.MakeVariant([]any{true, []any{true, "k1"}}),
					"clevis_info":     dbus.MakeVariant([]any{true, []any{false, []any{"", ""}}}),
				},
			}), nil).
			After(gate)

		stdout, _, err := execute(stratiscmd.NewCmdPoolList(global()), "--stopped")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
		require.Len(t, lines, 3)
		rows := [][]string{strings.Fields(lines[1]), strings.Fields(lines[2])}
		expected := [][]string{
			{"<UNAVAILABLE>", "fedcba98-7654-3210-fedc-ba9876543210", "0", "k1", "N/A"},
			{"p2", "01234567-89ab-cdef-0123-456789abcdef", "1", "unencrypted", "unencrypted"},
		}
		if diff := cmp.Diff(expected, rows); diff != "" {
			t.Errorf("unexpected rows (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown stopped pool is not found", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		c.EXPECT().
			GetProperty(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StoppedPools").
			Return(dbus.MakeVariant(map[string]map[string]dbus.Variant{}), nil).
			After(gate)

		_, _, err := execute(stratiscmd.NewCmdPoolList(global()), "--stopped", "--name", "p9")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name p9")
	})
}

func TestPoolList(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		expectObjects(c, objectsWithPool()).After(gate)

		stdout, _, err := execute(stratiscmd.NewCmdPoolList(global()))
		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "Name   Total / Used / Free"))
		assert.Contains(t, lines[1], "~Ca,~Cr, Op")
		assert.Contains(t, lines[1], "01234567-89ab-cdef-0123-456789abcdef")
	})

	t.Run("absent and uninterpretable flags", func(t *testing.T) {
		m := objectsWithPool()
		delete(m[pool1Path][stratisd.PoolInterface], "HasCache")
		m[pool1Path][stratisd.PoolInterface]["Encrypted"] = dbus.MakeVariant("yes")
		c := newCaller(t)
		gate := expectGate(c)
		expectObjects(c, m).After(gate)

		stdout, _, err := execute(stratiscmd.NewCmdPoolList(global()))
		require.NoError(t, err)
		assert.Contains(t, stdout, "~Ca,?Cr, Op")
	})

	t.Run("unhyphenated uuids", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		expectObjects(c, objectsWithPool()).After(gate)

		g := global()
		g.UnhyphenatedUUIDs = true
		stdout, _, err := execute(stratiscmd.NewCmdPoolList(g))
		require.NoError(t, err)
		assert.Contains(t, stdout, pool1UUID)
	})

	t.Run("detail", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		expectObjects(c, objectsWithPool()).After(gate)

		stdout, _, err := execute(stratiscmd.NewCmdPoolList(global()), "--uuid", pool1UUID)
		require.NoError(t, err)
		lines := strings.Split(stdout, "\n")
		assert.Equal(t, "UUID: 01234567-89ab-cdef-0123-456789abcdef", lines[0])
		assert.Equal(t, "Name: p1", lines[1])
		assert.Equal(t, "Alerts: 0", lines[2])
		assert.Contains(t, stdout, "Actions Allowed: fully_operational\n")
		assert.Contains(t, stdout, "Filesystem Limit: 100\n")
		assert.Contains(t, stdout, "Allows Overprovisioning: Yes\n")
		assert.Contains(t, stdout, "Key Description: unencrypted\n")
		assert.Contains(t, stdout, "Space Usage:\nFully Allocated: No\n    Size: 1.0 GiB\n")
	})

	t.Run("alerts", func(t *testing.T) {
		m := objectsWithPool()
		m[pool1Path][stratisd.PoolInterface]["AvailableActions"] = dbus.MakeVariant("no_ipc_requests")
		m[pool1Path][stratisd.PoolInterface]["NoAllocSpace"] = dbus.MakeVariant(true)
		m[dev1Path][stratisd.BlockdevInterface]["NewPhysicalSize"] = dbus.MakeVariant([]any{true, "2147483648"})
		c := newCaller(t)
		gate := expectGate(c)
		expectObjects(c, m).After(gate)

		stdout, _, err := execute(stratiscmd.NewCmdPoolList(global()))
		require.NoError(t, err)
		assert.Contains(t, stdout, "EM001, EM002, IDS001, WS001")
	})

	t.Run("name and uuid are exclusive", func(t *testing.T) {
		newCaller(t)
		_, _, err := execute(stratiscmd.NewCmdPoolList(global()), "--name", "p1", "--uuid", pool1UUID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})
}
