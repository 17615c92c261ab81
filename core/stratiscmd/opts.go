// Package stratiscmd implements the stratis commands, one CmdXxx type per
// resource action, each with a cobra command constructor.
//
// A command Run validates its options locally, then issues the remote calls
// and renders the result. Local validation failures make no remote call.
package stratiscmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/config"
	"github.com/opensvc/stratis/core/client"
	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/output"
	"github.com/opensvc/stratis/core/stratisd"
	"github.com/opensvc/stratis/core/versiongate"
)

type (
	// OptsGlobal holds the root persistent flags and the execution context
	// of a command.
	OptsGlobal struct {
		Color             string
		Output            string
		Propagate         bool
		UnhyphenatedUUIDs bool
		Debug             bool

		ctx    context.Context
		stdout io.Writer
		stderr io.Writer
		stdin  io.Reader
	}

	// session is the set of remote handles of one command execution.
	session struct {
		caller  stratisd.Caller
		manager *stratisd.Manager
		close   func() error
	}
)

// Connect returns the remote call primitive. Tests replace it with a mock
// factory.
var Connect = func(ctx context.Context) (stratisd.Caller, func() error, error) {
	timeout, err := config.DBusTimeout()
	if err != nil {
		return nil, nil, &clierr.ValidationError{Msg: err.Error()}
	}
	c, err := client.New(client.Dest(stratisd.BusName), client.Timeout(timeout))
	if err != nil {
		return nil, nil, err
	}
	return c, c.Close, nil
}

// bind copies the root flags and the cobra execution context into t.
func (t *OptsGlobal) bind(cmd *cobra.Command, g *OptsGlobal) {
	if g != nil {
		t.Color = g.Color
		t.Output = g.Output
		t.Propagate = g.Propagate
		t.UnhyphenatedUUIDs = g.UnhyphenatedUUIDs
		t.Debug = g.Debug
	}
	t.ctx = cmd.Context()
	t.stdout = cmd.OutOrStdout()
	t.stderr = cmd.ErrOrStderr()
	t.stdin = cmd.InOrStdin()
}

func (t *OptsGlobal) context() context.Context {
	if t.ctx == nil {
		return context.Background()
	}
	return t.ctx
}

func (t *OptsGlobal) out() io.Writer {
	if t.stdout == nil {
		return os.Stdout
	}
	return t.stdout
}

func (t *OptsGlobal) errOut() io.Writer {
	if t.stderr == nil {
		return os.Stderr
	}
	return t.stderr
}

// terminal returns the file to read passphrases from.
func (t *OptsGlobal) terminal() *os.File {
	if f, ok := t.stdin.(*os.File); ok {
		return f
	}
	return os.Stdin
}

// connect opens the remote session and verifies the daemon supports the
// minRevision interface revision, before any other remote call.
func (t *OptsGlobal) connect(minRevision int) (*session, error) {
	caller, closer, err := Connect(t.context())
	if err != nil {
		return nil, err
	}
	s := &session{
		caller:  caller,
		manager: stratisd.NewManager(caller),
		close:   closer,
	}
	if err := versiongate.Check(t.context(), s.manager, minRevision); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the bus connection.
func (t *session) Close() error {
	if t.close == nil {
		return nil
	}
	return t.close()
}

func (t *session) objects(ctx context.Context) (objects.Map, error) {
	return objects.Fetch(ctx, t.manager)
}

func (t *OptsGlobal) uuidFormatter() func(string) string {
	return objects.UUIDFormatter(t.UnhyphenatedUUIDs)
}

// render prints data in the selected output format, using human for the
// human format if not nil.
func (t *OptsGlobal) render(data any, human output.RenderFunc) error {
	err := output.Renderer{
		Output:        t.Output,
		Color:         t.Color,
		Data:          data,
		HumanRenderer: human,
		Colorize:      config.Colorize(),
	}.Fprint(t.out())
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPrint, err)
	}
	return nil
}

// batch runs fn for each item in order. A failed item is reported on
// stderr and does not stop the others. The returned error is nil if all
// items succeeded.
func (t *OptsGlobal) batch(items []string, fn func(item string) error) error {
	failed := 0
	for _, item := range items {
		err := fn(item)
		if err == nil {
			continue
		}
		if clierr.ExitCode(err) == clierr.ExitInterrupted {
			return err
		}
		failed++
		fmt.Fprintln(t.errOut(), clierr.Message(err, t.Propagate))
	}
	if failed > 0 {
		return &clierr.BatchError{Failed: failed, Total: len(items)}
	}
	return nil
}

// noChange returns a NoChangeError if changed is false.
func noChange(changed bool, action, target string) error {
	if changed {
		return nil
	}
	return &clierr.NoChangeError{Action: action, Target: target}
}

// resourceID returns the identifier designated by exclusive --name and --uuid
// flags.
func resourceID(name, uuid string) (objects.ID, error) {
	switch {
	case name != "" && uuid != "":
		return objects.ID{}, clierr.Validationf("--name and --uuid are mutually exclusive")
	case uuid != "":
		return objects.NewUUID(uuid)
	case name != "":
		return objects.NewName(name), nil
	default:
		return objects.ID{}, clierr.Validationf("one of --name or --uuid is required")
	}
}
