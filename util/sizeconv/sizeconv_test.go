package sizeconv

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]struct {
		bytes string
	}{
		"0B":      {"0"},
		"512B":    {"512"},
		"1KiB":    {"1024"},
		"3MiB":    {"3145728"},
		"2GiB":    {"2147483648"},
		"1TiB":    {"1099511627776"},
		"1PiB":    {"1125899906842624"},
		"9000PiB": {"10133099161583616000"},
	}
	for s, tc := range cases {
		t.Run(s, func(t *testing.T) {
			spec, err := Parse(s)
			require.NoError(t, err)
			assert.Equal(t, tc.bytes, spec.Bytes().String())
			assert.Equal(t, s, spec.String())
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, s := range []string{"", "12", "MiB", "-1MiB", "1.5GiB", "1 GiB", "1KB", "1kiB", "1EiB", "1GiBs"} {
		t.Run(s, func(t *testing.T) {
			_, err := Parse(s)
			require.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}

func TestRoundTripExact(t *testing.T) {
	for _, s := range []string{"0B", "1B", "1023B", "1024B", "1536KiB", "7GiB", "123456789012345678901234567890B"} {
		t.Run(s, func(t *testing.T) {
			spec, err := Parse(s)
			require.NoError(t, err)
			canonical := Exact(spec.Bytes())
			reparsed, err := Parse(canonical.String())
			require.NoError(t, err)
			assert.Equal(t, 0, spec.Bytes().Cmp(reparsed.Bytes()), "%s -> %s", s, canonical)
		})
	}
	t.Run("uses the largest exact unit", func(t *testing.T) {
		assert.Equal(t, "3MiB", Exact(big.NewInt(3<<20)).String())
		assert.Equal(t, "1536KiB", Exact(big.NewInt(1536<<10)).String())
		assert.Equal(t, "1025B", Exact(big.NewInt(1025)).String())
	})
}

func TestParseBytes(t *testing.T) {
	b, err := ParseBytes("18446744073709551616")
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551616", b.String())

	_, err = ParseBytes("12 GiB")
	require.ErrorIs(t, err, ErrInvalidBytes)
	_, err = ParseBytes("-1")
	require.ErrorIs(t, err, ErrInvalidBytes)
}

func TestBSizeCompact(t *testing.T) {
	assert.Equal(t, "1.0 GiB", BSizeCompact(big.NewInt(1<<30)))
	assert.Equal(t, "", BSizeCompact(nil))
}
