package stratiscmd_test

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/stratiscmd"
	"github.com/opensvc/stratis/core/stratisd"
)

func startedPool() []any {
	return reply([]any{true, []any{pool1Path, []dbus.ObjectPath{dev1Path}, []dbus.ObjectPath{}}}, 0, "")
}

func stoppedPoolsVariant(metadataVersion uint64) dbus.Variant {
	return dbus.MakeVariant(map[string]map[string]dbus.Variant{
		pool1UUID: {
			"name":             dbus.MakeVariant("p1"),
			"devs":             dbus.MakeVariant([]map[string]dbus.Variant{}),
			"metadata_version": dbus.MakeVariant([]any{true, metadataVersion}),
		},
	})
}

func TestPoolStart(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		unlock stratisd.UnlockMethod
	}{
		{
			name:   "unencrypted",
			args:   []string{"--name", "p1"},
			unlock: stratisd.UnlockMethod{Unlock: false, TokenSlot: stratisd.NoTokenSlot},
		},
		{
			name:   "any unlock method",
			args:   []string{"--name", "p1", "--unlock-method", "any"},
			unlock: stratisd.UnlockMethod{Unlock: true, TokenSlot: stratisd.NoTokenSlot},
		},
		{
			name:   "token slot",
			args:   []string{"--name", "p1", "--token-slot", "3"},
			unlock: stratisd.UnlockMethod{Unlock: true, TokenSlot: stratisd.OptionalUint32{Set: true, Value: 3}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newCaller(t)
			gate := expectGate(c)
			c.EXPECT().
				Call(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StartPool",
					"p1", "name", tc.unlock, stratisd.OptionalFD{}).
				Return(startedPool(), nil).
				After(gate)

			_, _, err := execute(stratiscmd.NewCmdPoolStart(global()), tc.args...)
			require.NoError(t, err)
		})
	}

	t.Run("keyring unlock of a legacy pool uses the keyring token slot", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		stopped := c.EXPECT().
			GetProperty(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StoppedPools").
			Return(stoppedPoolsVariant(1), nil).
			After(gate)
		c.EXPECT().
			Call(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StartPool",
				pool1UUID, "uuid",
				stratisd.UnlockMethod{Unlock: true, TokenSlot: stratisd.OptionalUint32{Set: true, Value: 1}},
				stratisd.OptionalFD{}).
			Return(startedPool(), nil).
			After(stopped)

		_, _, err := execute(stratiscmd.NewCmdPoolStart(global()), "--uuid", pool1UUID, "--unlock-method", "keyring")
		require.NoError(t, err)
	})

	t.Run("clevis unlock of a metadata v2 pool is refused", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		c.EXPECT().
			GetProperty(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StoppedPools").
			Return(stoppedPoolsVariant(2), nil).
			After(gate)

		_, _, err := execute(stratiscmd.NewCmdPoolStart(global()), "--name", "p1", "--unlock-method", "clevis")
		var e *clierr.ValidationError
		require.True(t, errors.As(err, &e))
		assert.Equal(t, `"--unlock-method=clevis" can not be used with metadata version V2 pools. Use "--unlock-method=any" or specify a token slot using "--token-slot" instead.`, e.Msg)
	})

	t.Run("already started is a no change error", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		c.EXPECT().
			Call(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StartPool", gomock.Any()).
			Return(reply([]any{false, []any{dbus.ObjectPath("/"), []dbus.ObjectPath{}, []dbus.ObjectPath{}}}, 0, ""), nil).
			After(gate)

		_, _, err := execute(stratiscmd.NewCmdPoolStart(global()), "--name", "p1")
		var e *clierr.NoChangeError
		require.True(t, errors.As(err, &e))
	})

	t.Run("all stopped pools, one failing", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		stopped := c.EXPECT().
			GetProperty(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StoppedPools").
			Return(dbus.MakeVariant(map[string]map[string]dbus.Variant{
				pool1UUID: {"devs": dbus.MakeVariant([]map[string]dbus.Variant{})},
				fs1UUID:   {"devs": dbus.MakeVariant([]map[string]dbus.Variant{})},
			}), nil).
			After(gate)
		first := c.EXPECT().
			Call(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StartPool", pool1UUID, "uuid", gomock.Any(), gomock.Any()).
			Return(reply([]any{false, []any{dbus.ObjectPath("/"), []dbus.ObjectPath{}, []dbus.ObjectPath{}}}, 1, "device missing"), nil).
			After(stopped)
		c.EXPECT().
			Call(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StartPool", fs1UUID, "uuid", gomock.Any(), gomock.Any()).
			Return(startedPool(), nil).
			After(first)

		_, stderr, err := execute(stratiscmd.NewCmdPoolStart(global()), "--all")
		var e *clierr.BatchError
		require.True(t, errors.As(err, &e))
		assert.Equal(t, 1, e.Failed)
		assert.Equal(t, 2, e.Total)
		assert.Equal(t, "Execution failed: stratisd failed to perform the operation that you requested. It returned the following information via the D-Bus: device missing.\n", stderr)
	})
}

func TestPoolStartValidation(t *testing.T) {
	cases := map[string][]string{
		"unlock method and token slot": {"--name", "p1", "--unlock-method", "any", "--token-slot", "1"},
		"unknown unlock method":        {"--name", "p1", "--unlock-method", "fido2"},
		"all and name":                 {"--all", "--name", "p1"},
		"no pool designation":          {},
		"keyfile and capture":          {"--name", "p1", "--keyfile-path", "/k", "--capture-key"},
		"invalid uuid":                 {"--uuid", "xyz"},
		"missing key file":             {"--name", "p1", "--keyfile-path", "/nonexistent/stratis/key"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			newCaller(t)
			_, _, err := execute(stratiscmd.NewCmdPoolStart(global()), args...)
			var e *clierr.ValidationError
			require.True(t, errors.As(err, &e), "got %v", err)
		})
	}

	t.Run("token slot out of range", func(t *testing.T) {
		newCaller(t)
		_, _, err := execute(stratiscmd.NewCmdPoolStart(global()), "--name", "p1", "--token-slot", "4294967296")
		require.Error(t, err)
		assert.ErrorContains(t, err, stratiscmd.ErrFlagInvalid.Error())
	})
}
