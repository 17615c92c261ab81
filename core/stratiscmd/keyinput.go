package stratiscmd

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"

	"github.com/opensvc/stratis/config"
	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/stratisd"
	"github.com/opensvc/stratis/util/secret"
)

type (
	// OptsKeyInput selects the origin of the key material.
	OptsKeyInput struct {
		KeyfilePath string
		CaptureKey  bool
	}

	// keyFD is the read end of a pipe holding key material, to pass to
	// the daemon.
	keyFD struct {
		fd int
	}
)

// Validate checks --keyfile-path and --capture-key are not both set.
func (t OptsKeyInput) Validate() error {
	if t.KeyfilePath != "" && t.CaptureKey {
		return clierr.Validationf("--keyfile-path and --capture-key are mutually exclusive")
	}
	return nil
}

// IsSet is true if a key origin was selected.
func (t OptsKeyInput) IsSet() bool {
	return t.KeyfilePath != "" || t.CaptureKey
}

// withDefault returns the options with the STRATIS_KEYFILE_PATH key file
// if no origin was selected.
func (t OptsKeyInput) withDefault() OptsKeyInput {
	if !t.IsSet() {
		t.KeyfilePath = config.KeyfilePath()
	}
	return t
}

// load reads the key material. The caller must close the returned buffer.
func (t OptsKeyInput) load(g *OptsGlobal, verify bool) (*secret.Buffer, error) {
	var (
		buf *secret.Buffer
		err error
	)
	switch {
	case t.CaptureKey:
		buf, err = secret.Capture(g.terminal(), g.errOut(), verify)
	case t.KeyfilePath != "":
		buf, err = secret.ReadFile(t.KeyfilePath)
	default:
		return nil, clierr.Validationf("one of --keyfile-path or --capture-key is required")
	}
	if err != nil {
		return nil, keyError(err)
	}
	return buf, nil
}

// pipeKey returns the pipe read end holding the key material, or nil if
// buf is nil. The caller must close the returned keyFD.
func pipeKey(buf *secret.Buffer) (*keyFD, error) {
	if buf == nil {
		return nil, nil
	}
	fd, err := secret.Pipe(buf)
	if err != nil {
		return nil, keyError(err)
	}
	log.Debug().Int("len", buf.Len()).Msg("key material piped")
	return &keyFD{fd: fd}, nil
}

func keyError(err error) error {
	switch {
	case errors.Is(err, secret.ErrEmpty),
		errors.Is(err, secret.ErrMismatch),
		errors.Is(err, secret.ErrKeyfileNotFound),
		errors.Is(err, secret.ErrTooLarge):
		return &clierr.ValidationError{Msg: err.Error()}
	default:
		return &clierr.ValidationError{Msg: fmt.Sprintf("unable to read the key: %s", err)}
	}
}

// UnixFD returns the D-Bus file descriptor argument.
func (t *keyFD) UnixFD() dbus.UnixFD {
	return dbus.UnixFD(t.fd)
}

// Arg returns the (bh) argument, unset if t is nil.
func (t *keyFD) Arg() stratisd.OptionalFD {
	if t == nil {
		return stratisd.OptionalFD{}
	}
	return stratisd.OptionalFD{Set: true, FD: t.UnixFD()}
}

// Close closes the pipe read end. It is safe to call on a nil keyFD.
func (t *keyFD) Close() error {
	if t == nil || t.fd < 0 {
		return nil
	}
	err := unix.Close(t.fd)
	t.fd = -1
	return err
}
