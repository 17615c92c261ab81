package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBusTimeout(t *testing.T) {
	cases := []struct {
		name     string
		env      string
		expected time.Duration
		err      error
	}{
		{name: "default", expected: 120 * time.Second},
		{name: "milliseconds", env: "1500", expected: 1500 * time.Millisecond},
		{name: "zero", env: "0", expected: 0},
		{name: "transport default", env: "-1", expected: 0},
		{name: "largest", env: "1073741823", expected: 1073741823 * time.Millisecond},
		{name: "too small", env: "-2", err: ErrTimeoutTooSmall},
		{name: "too large", env: "1073741824", err: ErrTimeoutTooLarge},
		{name: "float", env: "1.5", err: ErrTimeoutNotInteger},
		{name: "garbage", env: "abc", err: ErrTimeoutNotInteger},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.env != "" {
				t.Setenv("STRATIS_DBUS_TIMEOUT", tc.env)
			}
			Load()
			d, err := DBusTimeout()
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d)
		})
	}
}

func TestKeyfilePath(t *testing.T) {
	t.Setenv("STRATIS_KEYFILE_PATH", "/etc/stratis/key")
	Load()
	assert.Equal(t, "/etc/stratis/key", KeyfilePath())
}

func TestPalette(t *testing.T) {
	t.Setenv("STRATIS_PALETTE_ERROR", "hired")
	Load()
	p := Palette()
	assert.Equal(t, "hired", p.Error)
	assert.Equal(t, "hiblack", p.Secondary)
	assert.NotNil(t, Colorize().Error)
}
