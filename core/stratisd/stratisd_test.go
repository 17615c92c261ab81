package stratisd_test

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/mock_stratisd"
	"github.com/opensvc/stratis/core/props"
	"github.com/opensvc/stratis/core/stratisd"
)

func reply(payload any, rc uint16, msg string) []any {
	return []any{payload, rc, msg}
}

func TestManagerCreatePool(t *testing.T) {
	ctx := context.Background()
	args := stratisd.CreatePoolArgs{
		Name:               "p1",
		Devices:            []string{"/dev/vdb"},
		JournalSize:        stratisd.OptionalUint64{Set: true, Value: 128 << 20},
		TagSpec:            stratisd.OptionalString{Set: true, Value: "512b"},
		AllocateSuperblock: stratisd.OptionalBool{Set: true, Value: true},
	}

	t.Run("decodes the created object paths", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := mock_stratisd.NewMockCaller(ctrl)
		c.EXPECT().
			Call(ctx, stratisd.TopObject, stratisd.ManagerInterface, "CreatePool",
				"p1", []string{"/dev/vdb"}, []stratisd.KeyDescriptionSpec(nil), []stratisd.ClevisSpec(nil),
				args.JournalSize, args.TagSpec, args.AllocateSuperblock).
			Return(reply([]any{true, []any{dbus.ObjectPath("/p/1"), []dbus.ObjectPath{"/b/1"}}}, 0, ""), nil)

		r, err := stratisd.NewManager(c).CreatePool(ctx, args)
		require.NoError(t, err)
		assert.True(t, r.Changed)
		assert.Equal(t, dbus.ObjectPath("/p/1"), r.Pool)
		assert.Equal(t, []dbus.ObjectPath{"/b/1"}, r.Blockdevs)
	})

	t.Run("nonzero return code is a daemon reported error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := mock_stratisd.NewMockCaller(ctrl)
		c.EXPECT().
			Call(gomock.Any(), gomock.Any(), gomock.Any(), "CreatePool", gomock.Any()).
			Return(reply([]any{false, []any{dbus.ObjectPath("/"), []dbus.ObjectPath{}}}, 1, "device busy"), nil)

		_, err := stratisd.NewManager(c).CreatePool(ctx, args)
		var e *clierr.DaemonReportedError
		require.True(t, errors.As(err, &e))
		assert.Equal(t, uint16(1), e.Code)
		assert.Equal(t, "device busy", e.Message)
	})

	t.Run("unexpected payload is an internal error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := mock_stratisd.NewMockCaller(ctrl)
		c.EXPECT().
			Call(gomock.Any(), gomock.Any(), gomock.Any(), "CreatePool", gomock.Any()).
			Return(reply("oops", 0, ""), nil)

		_, err := stratisd.NewManager(c).CreatePool(ctx, args)
		var e *clierr.InternalError
		assert.True(t, errors.As(err, &e))
	})
}

func TestManagerListKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock_stratisd.NewMockCaller(ctrl)
	c.EXPECT().
		Call(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "ListKeys", gomock.Any()).
		Return(reply([]string{"k1", "k2"}, 0, ""), nil)

	keys, err := stratisd.NewManager(c).ListKeys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2"}, keys)
}

func TestManagerRefreshState(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock_stratisd.NewMockCaller(ctrl)
	c.EXPECT().
		Call(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "RefreshState", gomock.Any()).
		Return([]any{uint16(4), "engine failure"}, nil)

	err := stratisd.NewManager(c).RefreshState(context.Background())
	var e *clierr.DaemonReportedError
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "engine failure", e.Message)
}

func TestDecodeStoppedPools(t *testing.T) {
	v := map[string]map[string]dbus.Variant{
		"a1": {
			"name": dbus.MakeVariant("p1"),
			"devs": dbus.MakeVariant([]map[string]dbus.Variant{
				{"uuid": dbus.MakeVariant("d1"), "devnode": dbus.MakeVariant("/dev/vdb")},
			}),
			"key_description":  dbus.MakeVariant([]any{true, []any{true, "k1"}}),
			"metadata_version": dbus.MakeVariant([]any{true, uint64(2)}),
		},
		"b2": {
			"devs": dbus.MakeVariant([]map[string]dbus.Variant{}),
		},
	}
	pools, err := stratisd.DecodeStoppedPools(v)
	require.NoError(t, err)
	require.Len(t, pools, 2)

	p := pools["a1"]
	assert.Equal(t, props.Ok("p1"), p.Name)
	assert.Equal(t, []stratisd.StoppedDevice{{UUID: "d1", Devnode: "/dev/vdb"}}, p.Devices)
	require.NotNil(t, p.KeyDescription)
	assert.Equal(t, "k1", p.KeyDescription.Value)
	assert.Nil(t, p.Clevis)
	assert.Equal(t, props.Ok(uint64(2)), p.MetadataVersion)

	p = pools["b2"]
	assert.Equal(t, props.KindUnobtainable, p.Name.Kind())
	assert.Nil(t, p.KeyDescription)

	sorted := stratisd.SortedStoppedPools(pools)
	assert.Equal(t, "a1", sorted[0].UUID)
	assert.Equal(t, "b2", sorted[1].UUID)

	_, err = stratisd.DecodeStoppedPools("bad")
	assert.Error(t, err)
}

func TestPoolSetProperties(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock_stratisd.NewMockCaller(ctrl)
	c.EXPECT().
		SetProperty(gomock.Any(), dbus.ObjectPath("/p/1"), stratisd.PoolInterface, "Overprovisioning", dbus.MakeVariant(false)).
		Return(nil)
	c.EXPECT().
		SetProperty(gomock.Any(), dbus.ObjectPath("/p/1"), stratisd.PoolInterface, "FsLimit", dbus.MakeVariant(uint64(200))).
		Return(nil)

	pool := stratisd.NewPool(c, "/p/1")
	assert.NoError(t, pool.SetOverprovisioning(context.Background(), false))
	assert.NoError(t, pool.SetFsLimit(context.Background(), 200))
}

func TestPoolCreateFilesystems(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock_stratisd.NewMockCaller(ctrl)
	specs := []stratisd.FilesystemSpec{{Name: "fs1"}}
	c.EXPECT().
		Call(gomock.Any(), dbus.ObjectPath("/p/1"), stratisd.PoolInterface, "CreateFilesystems", specs).
		Return(reply([]any{true, [][]any{{dbus.ObjectPath("/f/1"), "fs1"}}}, 0, ""), nil)

	changed, created, err := stratisd.NewPool(c, "/p/1").CreateFilesystems(context.Background(), specs)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []stratisd.CreatedFilesystem{{Path: "/f/1", Name: "fs1"}}, created)
}
