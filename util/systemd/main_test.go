package systemd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasSystemd(t *testing.T) {
	savedDir, savedComm := runtimeDir, procOneComm
	defer func() { runtimeDir, procOneComm = savedDir, savedComm }()
	dir := t.TempDir()
	runtimeDir = filepath.Join(dir, "run-absent")

	cases := map[string]struct {
		comm     string
		expected bool
	}{
		"systemd init": {"systemd\n", true},
		"other init":   {"tini\n", false},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			procOneComm = filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(procOneComm, []byte(c.comm), 0o644))
			require.Equal(t, c.expected, HasSystemd())
		})
	}

	t.Run("unreadable comm", func(t *testing.T) {
		procOneComm = filepath.Join(dir, "absent")
		require.False(t, HasSystemd())
	})

	t.Run("runtime directory", func(t *testing.T) {
		procOneComm = filepath.Join(dir, "absent")
		runtimeDir = filepath.Join(dir, "run")
		require.NoError(t, os.Mkdir(runtimeDir, 0o755))
		require.True(t, HasSystemd())
	})
}
