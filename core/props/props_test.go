package props

import (
	"math/big"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	table := Table{
		"Name":              dbus.MakeVariant("p1"),
		"HasCache":          dbus.MakeVariant(true),
		"FsLimit":           dbus.MakeVariant(uint64(100)),
		"TotalPhysicalSize": dbus.MakeVariant("1073741824"),
		"TotalPhysicalUsed": dbus.MakeVariant([]any{false, ""}),
		"SizeLimit":         dbus.MakeVariant([]any{true, "2048"}),
		"Encrypted":         dbus.MakeVariant("yes"),
		"Origin":            dbus.MakeVariant([]any{true, uint32(1)}),
	}

	t.Run("ok values", func(t *testing.T) {
		assert.Equal(t, "p1", table.String("Name").String())
		b, ok := table.Bool("HasCache").Bool()
		assert.True(t, ok)
		assert.True(t, b)
		v, ok := table.Uint64("FsLimit").Get()
		require.True(t, ok)
		assert.Equal(t, uint64(100), v)
		v, ok = table.Bytes("TotalPhysicalSize").Get()
		require.True(t, ok)
		assert.Equal(t, 0, big.NewInt(1073741824).Cmp(v.(*big.Int)))
		v, ok = table.MaybeBytes("SizeLimit").Get()
		require.True(t, ok)
		assert.Equal(t, "2048", v.(*big.Int).String())
	})

	t.Run("unobtainable", func(t *testing.T) {
		assert.Equal(t, KindUnobtainable, table.MaybeBytes("TotalPhysicalUsed").Kind())
		assert.Equal(t, FailureString, table.MaybeBytes("TotalPhysicalUsed").String())
		assert.Equal(t, FailureString, table.String("Absent").String())
		assert.Equal(t, "property Absent is absent", table.String("Absent").Reason())
	})

	t.Run("bytes counts are non negative decimals", func(t *testing.T) {
		for _, s := range []string{"-1", "12 GiB", "0x10"} {
			_, ok := AsBytes(s)
			assert.False(t, ok, s)
		}
		v, ok := AsBytes("18446744073709551616")
		require.True(t, ok)
		assert.Equal(t, "18446744073709551616", v.String())
	})

	t.Run("uninterpretable", func(t *testing.T) {
		assert.Equal(t, KindUninterpretable, table.Bool("Encrypted").Kind())
		assert.Equal(t, UnknownString, table.Bool("Encrypted").String())
		assert.Contains(t, table.Bool("Encrypted").Reason(), "unexpected type string")
		assert.Equal(t, UnknownString, table.MaybeString("Origin").String())
		assert.Equal(t, UnknownString, table.Bytes("Name").String())
	})
}

func TestEncryption(t *testing.T) {
	table := Table{
		"KeyDescription": dbus.MakeVariant([]any{true, []any{true, "mykey"}}),
		"ClevisInfo":     dbus.MakeVariant([]any{true, []any{true, []any{"tang", `{"url": "http://tang", "stratis:tang:trust_url": true}`}}}),
		"Absent":         dbus.MakeVariant([]any{true, []any{false, ""}}),
		"Inconsistent":   dbus.MakeVariant([]any{false, "devices disagree"}),
	}

	v, ok := table.KeyDescription("KeyDescription").Get()
	require.True(t, ok)
	assert.Equal(t, Encryption{Consistent: true, Present: true, Value: "mykey"}, v)

	v, ok = table.ClevisInfo("ClevisInfo").Get()
	require.True(t, ok)
	enc := v.(Encryption)
	require.True(t, enc.Present)
	clevis := enc.Value.(Clevis)
	assert.Equal(t, "tang", clevis.Pin)
	assert.Equal(t, "http://tang", clevis.Config["url"])

	v, ok = table.KeyDescription("Absent").Get()
	require.True(t, ok)
	assert.Equal(t, Encryption{Consistent: true}, v)

	v, ok = table.KeyDescription("Inconsistent").Get()
	require.True(t, ok)
	assert.Equal(t, Encryption{Error: "devices disagree"}, v)
}
