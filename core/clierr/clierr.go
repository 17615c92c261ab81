// Package clierr classifies the failures of a stratis command.
//
// Every error type implements ExitCode() so the command executor can
// select the process exit code with errors.As.
package clierr

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

const (
	msgUnexpected = "stratis encountered an unexpected error during execution. Rerun with --propagate to display the error details."
	msgInterface  = "The version of stratis you are running expects a different D-Bus interface than the one stratisd provides. Most likely you are running a version that requires a newer version of stratisd than you are running"
)

var (
	// ErrInterrupted is returned when a signal cancels the command context.
	ErrInterrupted = errors.New("interrupted")
)

type (
	// UsageError is a malformed command line, detected by the parser.
	UsageError struct {
		Err error
	}

	// ValidationError is a well-formed command line with semantically
	// invalid values, detected before any remote call.
	ValidationError struct {
		Msg string
	}

	// ResourceNotFoundError is an identifier matching no remote object.
	ResourceNotFoundError struct {
		Kind string
		ID   string
	}

	// AmbiguousResourceError is a name matching more than one remote object.
	AmbiguousResourceError struct {
		Kind  string
		ID    string
		Paths []string
	}

	// VersionMismatchError is a daemon too old or too new for the command.
	VersionMismatchError struct {
		Required string
		Actual   string
	}

	// TransportError is a fault of the message bus, not of the daemon.
	TransportError struct {
		Name        string
		Explanation string
		Err         error

		// Unreachable is true when the daemon did not own its bus name.
		Unreachable bool
	}

	// DaemonReportedError is a nonzero return code of a remote method.
	DaemonReportedError struct {
		Code    uint16
		Message string
	}

	// NoChangeError is a successful remote call that reported nothing changed.
	NoChangeError struct {
		Action string
		Target string
	}

	// InternalError wraps unanticipated faults, like a reply of unexpected
	// shape.
	InternalError struct {
		Err error
	}

	// BatchError summarizes a batch operation whose failed items have
	// already been reported one per line.
	BatchError struct {
		Failed int
		Total  int
	}

	// InterruptedError is a command aborted by SIGINT or SIGTERM.
	InterruptedError struct {
		Err error
	}
)

// Validationf returns a formatted ValidationError.
func Validationf(format string, a ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, a...)}
}

// Internalf returns a formatted InternalError.
func Internalf(format string, a ...any) error {
	return &InternalError{Err: fmt.Errorf(format, a...)}
}

func (t *UsageError) Error() string { return t.Err.Error() }
func (t *UsageError) Unwrap() error { return t.Err }
func (t *UsageError) ExitCode() int { return ExitUsage }

func (t *ValidationError) Error() string { return t.Msg }
func (t *ValidationError) ExitCode() int { return ExitFailure }

func (t *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("Most likely you specified a %s which does not exist: no %s found with %s", t.Kind, t.Kind, t.ID)
}
func (t *ResourceNotFoundError) ExitCode() int { return ExitFailure }

func (t *AmbiguousResourceError) Error() string {
	return fmt.Sprintf("more than one %s found with %s: %s", t.Kind, t.ID, strings.Join(t.Paths, ", "))
}
func (t *AmbiguousResourceError) ExitCode() int { return ExitFailure }

func (t *VersionMismatchError) Error() string {
	return fmt.Sprintf("%s: required %s, actual %s", msgInterface, t.Required, t.Actual)
}
func (t *VersionMismatchError) ExitCode() int { return ExitFailure }

func (t *TransportError) Error() string {
	if t.Explanation != "" {
		return t.Explanation
	}
	if t.Err != nil {
		return t.Err.Error()
	}
	return t.Name
}
func (t *TransportError) Unwrap() error { return t.Err }
func (t *TransportError) ExitCode() int { return ExitFailure }

func (t *DaemonReportedError) Error() string {
	return fmt.Sprintf("stratisd failed to perform the operation that you requested. It returned the following information via the D-Bus: %s.", t.Message)
}
func (t *DaemonReportedError) ExitCode() int { return ExitFailure }

func (t *NoChangeError) Error() string {
	return fmt.Sprintf("It appears that you issued an unintended command: the %s operation on %s produced no change", t.Action, t.Target)
}
func (t *NoChangeError) ExitCode() int { return ExitFailure }

func (t *InternalError) Error() string { return t.Err.Error() }
func (t *InternalError) Unwrap() error { return t.Err }
func (t *InternalError) ExitCode() int { return ExitFailure }

func (t *BatchError) Error() string {
	return fmt.Sprintf("%d of %d operations failed", t.Failed, t.Total)
}
func (t *BatchError) ExitCode() int { return ExitFailure }

func (t *InterruptedError) Error() string {
	if t.Err == nil {
		return ErrInterrupted.Error()
	}
	return t.Err.Error()
}
func (t *InterruptedError) Unwrap() error { return ErrInterrupted }
func (t *InterruptedError) ExitCode() int { return ExitInterrupted }

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	type exitcoder interface {
		ExitCode() int
	}
	var xerr exitcoder
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInterrupted):
		return ExitInterrupted
	case errors.As(err, &xerr):
		return xerr.ExitCode()
	default:
		return ExitFailure
	}
}

// Message returns the single line reported on stderr for err, or "" if
// nothing is to be reported. Classified errors are reported without the
// context their callers wrapped them in. Unless propagate is set, the detail
// of internal and unclassified errors is replaced by a generic message.
func Message(err error, propagate bool) string {
	var (
		batchErr    *BatchError
		internalErr *InternalError
		usageErr    *UsageError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &batchErr):
		return ""
	case errors.As(err, &usageErr):
		return usageErr.Error()
	case errors.Is(err, ErrInterrupted):
		return "Execution interrupted"
	case errors.As(err, &internalErr):
	default:
		if c := classified(err); c != nil {
			return "Execution failed: " + c.Error()
		}
	}
	if propagate {
		return "Execution failed: " + err.Error()
	}
	return "Execution failed: " + msgUnexpected
}

// classified returns the first error of the err chain belonging to the
// user facing taxonomy, or nil.
func classified(err error) error {
	var (
		validationErr *ValidationError
		notFoundErr   *ResourceNotFoundError
		ambiguousErr  *AmbiguousResourceError
		versionErr    *VersionMismatchError
		transportErr  *TransportError
		daemonErr     *DaemonReportedError
		noChangeErr   *NoChangeError
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr
	case errors.As(err, &notFoundErr):
		return notFoundErr
	case errors.As(err, &ambiguousErr):
		return ambiguousErr
	case errors.As(err, &versionErr):
		return versionErr
	case errors.As(err, &transportErr):
		return transportErr
	case errors.As(err, &daemonErr):
		return daemonErr
	case errors.As(err, &noChangeErr):
		return noChangeErr
	default:
		return nil
	}
}
