package stratiscmd_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/stratiscmd"
	"github.com/opensvc/stratis/core/stratisd"
)

func TestFilesystemCreate(t *testing.T) {
	t.Run("sizes are decimal bytes counts", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		objs := expectObjects(c, objectsWithPool()).After(gate)
		size := stratisd.OptionalString{Set: true, Value: "1073741824"}
		c.EXPECT().
			Call(gomock.Any(), pool1Path, stratisd.PoolInterface, "CreateFilesystems", []stratisd.FilesystemSpec{
				{Name: "a", Size: size},
				{Name: "b", Size: size},
			}).
			Return(reply([]any{true, [][]any{{dbus.ObjectPath("/fs/a"), "a"}, {dbus.ObjectPath("/fs/b"), "b"}}}, 0, ""), nil).
			After(objs)

		_, _, err := execute(stratiscmd.NewCmdFilesystemCreate(global()), "p1", "a", "b", "--size", "1GiB")
		require.NoError(t, err)
	})

	t.Run("nothing created", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		objs := expectObjects(c, objectsWithPool()).After(gate)
		c.EXPECT().
			Call(gomock.Any(), pool1Path, stratisd.PoolInterface, "CreateFilesystems", gomock.Any()).
			Return(reply([]any{false, [][]any{}}, 0, ""), nil).
			After(objs)

		_, _, err := execute(stratiscmd.NewCmdFilesystemCreate(global()), "p1", "fs1")
		var e *clierr.NoChangeError
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "filesystem name fs1", e.Target)
	})

	for name, args := range map[string][]string{
		"duplicate names":    {"p1", "a", "a"},
		"size without unit":  {"p1", "a", "--size", "12"},
		"invalid size limit": {"p1", "a", "--size-limit", "x"},
	} {
		t.Run(name, func(t *testing.T) {
			newCaller(t)
			_, _, err := execute(stratiscmd.NewCmdFilesystemCreate(global()), args...)
			var e *clierr.ValidationError
			require.True(t, errors.As(err, &e), "got %v", err)
		})
	}
}

func TestFilesystemList(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		expectObjects(c, objectsWithPool()).After(gate)

		stdout, _, err := execute(stratiscmd.NewCmdFilesystemList(global()), "p1")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "Pool   Filesystem   Total / Used / Free / Limit"))
		expected := []string{
			"p1", "fs1",
			"1.0", "TiB", "/", "521", "MiB", "/", "1023", "GiB", "/", "None",
			"/dev/stratis/p1/fs1", "fedcba98-7654-3210-fedc-ba9876543210",
		}
		if diff := cmp.Diff(expected, strings.Fields(lines[1])); diff != "" {
			t.Errorf("unexpected row (-want +got):\n%s", diff)
		}
	})

	t.Run("detail", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		expectObjects(c, objectsWithPool()).After(gate)

		created, err := time.Parse(time.RFC3339, "2024-03-01T10:20:00+00:00")
		require.NoError(t, err)
		stdout, _, err := execute(stratiscmd.NewCmdFilesystemList(global()), "--name", "fs1")
		require.NoError(t, err)
		expected := "UUID: fedcba98-7654-3210-fedc-ba9876543210\n" +
			"Name: fs1\n" +
			"Pool: p1\n" +
			"Device: /dev/stratis/p1/fs1\n" +
			"Created: " + created.Local().Format("Jan 02 2006 15:04") + "\n" +
			"Snapshot origin: None\n" +
			"Sizes:\n" +
			"    Logical size of thin device: 1.0 TiB\n" +
			"    Total used (including XFS metadata): 521 MiB\n" +
			"    Free: 1023 GiB\n" +
			"    Size Limit: None\n"
		assert.Equal(t, expected, stdout)
	})

	t.Run("unknown pool", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		expectObjects(c, objectsWithPool()).After(gate)

		_, _, err := execute(stratiscmd.NewCmdFilesystemList(global()), "p9")
		var e *clierr.ResourceNotFoundError
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "pool", e.Kind)
	})
}

func TestFilesystemDestroy(t *testing.T) {
	c := newCaller(t)
	gate := expectGate(c)
	objs := expectObjects(c, objectsWithPool()).After(gate)
	c.EXPECT().
		Call(gomock.Any(), pool1Path, stratisd.PoolInterface, "DestroyFilesystems", []dbus.ObjectPath{fs1Path}).
		Return(reply([]any{true, []string{fs1UUID}}, 0, ""), nil).
		After(objs)

	_, stderr, err := execute(stratiscmd.NewCmdFilesystemDestroy(global()), "p1", "fs1", "fs9")
	assert.Equal(t, &clierr.BatchError{Failed: 1, Total: 2}, err)
	assert.Equal(t, "Execution failed: Most likely you specified a filesystem which does not exist: no filesystem found with name fs9\n", stderr)
}

func TestFilesystemRename(t *testing.T) {
	c := newCaller(t)
	gate := expectGate(c)
	objs := expectObjects(c, objectsWithPool()).After(gate)
	c.EXPECT().
		Call(gomock.Any(), fs1Path, stratisd.FilesystemInterface, "SetName", "fs2").
		Return(reply([]any{true, fs1UUID}, 0, ""), nil).
		After(objs)

	_, _, err := execute(stratiscmd.NewCmdFilesystemRename(global()), "p1", "fs1", "fs2")
	require.NoError(t, err)
}

func TestFilesystemSnapshot(t *testing.T) {
	c := newCaller(t)
	gate := expectGate(c)
	objs := expectObjects(c, objectsWithPool()).After(gate)
	c.EXPECT().
		Call(gomock.Any(), pool1Path, stratisd.PoolInterface, "SnapshotFilesystem", fs1Path, "snap").
		Return(reply([]any{true, dbus.ObjectPath("/fs/snap")}, 0, ""), nil).
		After(objs)

	_, _, err := execute(stratiscmd.NewCmdFilesystemSnapshot(global()), "p1", "fs1", "snap")
	require.NoError(t, err)
}

func TestFilesystemSet(t *testing.T) {
	t.Run("size limit", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		objs := expectObjects(c, objectsWithPool()).After(gate)
		c.EXPECT().
			SetProperty(gomock.Any(), fs1Path, stratisd.FilesystemInterface, "SizeLimit",
				dbus.MakeVariant(stratisd.OptionalString{Set: true, Value: "2199023255552"})).
			Return(nil).
			After(objs)

		_, _, err := execute(stratiscmd.NewCmdFilesystemSetSizeLimit(global()), "p1", "fs1", "2TiB")
		require.NoError(t, err)
	})

	t.Run("unset size limit", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		objs := expectObjects(c, objectsWithPool()).After(gate)
		c.EXPECT().
			SetProperty(gomock.Any(), fs1Path, stratisd.FilesystemInterface, "SizeLimit",
				dbus.MakeVariant(stratisd.OptionalString{})).
			Return(nil).
			After(objs)

		_, _, err := execute(stratiscmd.NewCmdFilesystemUnsetSizeLimit(global()), "p1", "fs1")
		require.NoError(t, err)
	})

	t.Run("schedule revert", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		objs := expectObjects(c, objectsWithPool()).After(gate)
		c.EXPECT().
			SetProperty(gomock.Any(), fs1Path, stratisd.FilesystemInterface, "MergeScheduled", dbus.MakeVariant(true)).
			Return(nil).
			After(objs)

		_, _, err := execute(stratiscmd.NewCmdFilesystemScheduleRevert(global()), "p1", "fs1")
		require.NoError(t, err)
	})

	t.Run("invalid size limit makes no remote call", func(t *testing.T) {
		newCaller(t)
		_, _, err := execute(stratiscmd.NewCmdFilesystemSetSizeLimit(global()), "p1", "fs1", "big")
		var e *clierr.ValidationError
		require.True(t, errors.As(err, &e))
	})
}
