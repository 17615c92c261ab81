// Package secret handles the key material passed to the daemon.
//
// A Buffer has a single owner, which must Close it on every exit path.
// Close overwrites the bytes, so the key does not linger in memory longer
// than the remote call needs it. Key bytes are handed to the daemon through
// an anonymous pipe, never through argv or the environment.
package secret

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	// MaxSize is the largest key accepted, so a key always fits the pipe
	// buffer and writing it never blocks.
	MaxSize = 65536

	PromptEnter  = "Enter passphrase followed by the return key: "
	PromptVerify = "Verify passphrase entered: "

	notTTYWarning = "Warning: this device is not a TTY so the password may be echoed"
)

var (
	ErrEmpty           = errors.New("passphrase is empty")
	ErrMismatch        = errors.New("passphrases do not match")
	ErrKeyfileNotFound = errors.New("keyfile not found")
	ErrTooLarge        = errors.New("key is too large")
)

type (
	// Buffer holds secret bytes until Close.
	Buffer struct {
		b []byte
	}
)

// New returns a Buffer owning b. The caller must not use b afterwards.
func New(b []byte) *Buffer {
	return &Buffer{b: b}
}

// Bytes returns the secret bytes. The slice is invalid after Close.
func (t *Buffer) Bytes() []byte {
	if t == nil {
		return nil
	}
	return t.b
}

// Len returns the number of secret bytes.
func (t *Buffer) Len() int {
	if t == nil {
		return 0
	}
	return len(t.b)
}

// Close overwrites the secret bytes. It is safe to call more than once.
func (t *Buffer) Close() error {
	if t == nil {
		return nil
	}
	zero(t.b)
	t.b = nil
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ReadFile loads a key file. The content is used verbatim, embedded
// newlines included.
func ReadFile(path string) (*Buffer, error) {
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrKeyfileNotFound, path)
	case err != nil:
		return nil, fmt.Errorf("read keyfile %s: %w", path, err)
	}
	if len(b) > MaxSize {
		zero(b)
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, path, MaxSize)
	}
	return New(b), nil
}

// Capture reads a passphrase from in, terminated by the first newline,
// which is not part of the key. If in is a terminal, the echo is disabled.
// With verify set, the passphrase is read twice and both entries must match.
func Capture(in *os.File, out io.Writer, verify bool) (*Buffer, error) {
	isTerminal := isatty.IsTerminal(in.Fd())
	if !isTerminal {
		fmt.Fprintln(out, notTTYWarning)
	}
	read := func(prompt string) ([]byte, error) {
		fmt.Fprint(out, prompt)
		if isTerminal {
			b, err := term.ReadPassword(int(in.Fd()))
			fmt.Fprintln(out)
			return b, err
		}
		return readLine(in)
	}

	first, err := read(PromptEnter)
	if err != nil {
		zero(first)
		return nil, err
	}
	if !verify {
		return checkCaptured(first)
	}
	second, err := read(PromptVerify)
	defer zero(second)
	if err != nil {
		zero(first)
		return nil, err
	}
	if string(first) != string(second) {
		zero(first)
		return nil, ErrMismatch
	}
	return checkCaptured(first)
}

func checkCaptured(b []byte) (*Buffer, error) {
	switch {
	case len(b) == 0:
		return nil, ErrEmpty
	case len(b) > MaxSize:
		zero(b)
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, MaxSize)
	}
	return New(b), nil
}

// readLine reads up to the first newline, excluded, one byte at a time so
// no read-ahead buffer retains bytes past the line. The line buffer is
// allocated once, so appending never leaves a copy behind.
func readLine(r io.Reader) ([]byte, error) {
	var c [1]byte
	defer zero(c[:])
	b := make([]byte, 0, MaxSize+1)
	for {
		n, err := r.Read(c[:])
		if n == 1 {
			if c[0] == '\n' {
				return b, nil
			}
			if len(b) == cap(b) {
				zero(b)
				return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, MaxSize)
			}
			b = append(b, c[0])
		}
		switch {
		case err == nil:
		case errors.Is(err, io.EOF) && len(b) > 0:
			return b, nil
		default:
			zero(b)
			return nil, err
		}
	}
}

// Pipe writes the secret bytes to a new anonymous pipe and returns the read
// end file descriptor, to be sent to the daemon. The caller closes it after
// the remote call returned.
func Pipe(t *Buffer) (int, error) {
	if t.Len() > MaxSize {
		return -1, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, MaxSize)
	}
	fds := make([]int, 2)
	if err := unix.Pipe2(fds, unix.O_CLOEXEC); err != nil {
		return -1, fmt.Errorf("create key pipe: %w", err)
	}
	r, w := fds[0], fds[1]
	b := t.Bytes()
	for len(b) > 0 {
		n, err := unix.Write(w, b)
		if err != nil {
			_ = unix.Close(r)
			_ = unix.Close(w)
			return -1, fmt.Errorf("write key pipe: %w", err)
		}
		b = b[n:]
	}
	if err := unix.Close(w); err != nil {
		_ = unix.Close(r)
		return -1, fmt.Errorf("close key pipe: %w", err)
	}
	return r, nil
}
