package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/opensvc/stratis/util/render/palette"
)

const (
	// Program is the name of the project and command
	Program = "stratis"

	// EnvPrefix is the prefix of the environment variables read by Load.
	EnvPrefix = "STRATIS"

	// DefaultDBusTimeout is the remote call timeout in milliseconds.
	DefaultDBusTimeout = 120000

	// MaxDBusTimeout is the largest timeout, in milliseconds, accepted by
	// the D-Bus transport.
	MaxDBusTimeout = 1073741823

	// TransportDefaultTimeout is the STRATIS_DBUS_TIMEOUT value selecting
	// the transport default timeout.
	TransportDefaultTimeout = -1
)

var (
	// Settings is the global accessor to the viper instance handling configuration
	Settings *viper.Viper

	ErrTimeoutNotInteger = errors.New("the timeout value provided is not an integer")
	ErrTimeoutTooSmall   = fmt.Errorf("the timeout value provided is smaller than the smallest acceptable value, %d", TransportDefaultTimeout)
	ErrTimeoutTooLarge   = fmt.Errorf("the timeout value provided exceeds the largest acceptable value, %d", MaxDBusTimeout)
)

func init() {
	Load()
}

// Load initializes the Settings global from the STRATIS_* environment
// variables:
//
//	STRATIS_DBUS_TIMEOUT       remote call timeout in milliseconds
//	STRATIS_KEYFILE_PATH       default key file of "key set" and "key reset"
//	STRATIS_COLOR              default value of the --color flag
//	STRATIS_PALETTE_<ROLE>     color of a role (primary, secondary, optimal, error, warning)
func Load() {
	v := viper.New()
	def := palette.DefaultPalette()
	v.SetDefault("dbus_timeout", strconv.Itoa(DefaultDBusTimeout))
	v.SetDefault("keyfile_path", "")
	v.SetDefault("color", "auto")
	v.SetDefault("palette.primary", def.Primary)
	v.SetDefault("palette.secondary", def.Secondary)
	v.SetDefault("palette.optimal", def.Optimal)
	v.SetDefault("palette.error", def.Error)
	v.SetDefault("palette.warning", def.Warning)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	Settings = v
}

// DBusTimeout returns the remote call timeout. A zero duration means the
// transport default applies.
func DBusTimeout() (time.Duration, error) {
	s := strings.TrimSpace(Settings.GetString("dbus_timeout"))
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrTimeoutNotInteger, s)
	}
	switch {
	case i < TransportDefaultTimeout:
		return 0, ErrTimeoutTooSmall
	case i > MaxDBusTimeout:
		return 0, ErrTimeoutTooLarge
	case i == TransportDefaultTimeout:
		return 0, nil
	}
	return time.Duration(i) * time.Millisecond, nil
}

// KeyfilePath returns the default key file path, or "" if unset.
func KeyfilePath() string {
	return Settings.GetString("keyfile_path")
}

// Color returns the default output colorization (yes|no|auto).
func Color() string {
	return Settings.GetString("color")
}

// Palette returns the color palette, with the STRATIS_PALETTE_* overrides.
func Palette() palette.StringPalette {
	return palette.StringPalette{
		Primary:   Settings.GetString("palette.primary"),
		Secondary: Settings.GetString("palette.secondary"),
		Optimal:   Settings.GetString("palette.optimal"),
		Error:     Settings.GetString("palette.error"),
		Warning:   Settings.GetString("palette.warning"),
	}
}

// Colorize returns the palette Sprint functions.
func Colorize() *palette.ColorPaletteFunc {
	return palette.New(Palette()).Funcs()
}
