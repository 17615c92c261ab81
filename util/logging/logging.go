package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is the configuration of the zerolog logger and writers
type Config struct {
	// Enable console logging
	WithConsoleLog bool

	// Enable console logging coloring
	WithColor bool

	// WithCaller adds the file:line information of the logger caller
	WithCaller bool

	// Level is the minimum level of the messages to log (debug, info, warn, error)
	Level string
}

const (
	TimeFormat = "15:04:05.000"
)

var (
	// WithCaller adds the file:line information of the logger caller
	WithCaller bool

	consoleWriter = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: TimeFormat}
)

func init() {
	zerolog.ErrorStackMarshaler = marshalStack
}

func marshalStack(err error) interface{} {
	if !WithCaller {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	l := strings.Split(s, "\n")
	n := len(l)
	if n < 3 {
		return nil
	}

	f := make([]string, 0)
	for i := 0; i < n-1; i = i + 1 {
		if !strings.HasPrefix(l[i], "\t") || i == 0 {
			continue
		}
		f = append(f, l[i-1]+" "+l[i][1:])
	}
	return f
}

// SetDefaultConsoleWriter set the default console writer
func SetDefaultConsoleWriter(w zerolog.ConsoleWriter) {
	consoleWriter = w
}

// Configure sets up the global logger.
//
// The stratis command is a one-shot client, so the only sink is the
// console. When console logging is disabled, the logs are discarded.
func Configure(config Config) error {
	var w io.Writer = io.Discard

	level := zerolog.InfoLevel
	if config.Level != "" {
		l, err := zerolog.ParseLevel(config.Level)
		if err != nil {
			return fmt.Errorf("log level %s: %w", config.Level, err)
		}
		level = l
	}
	if config.WithConsoleLog {
		cw := consoleWriter
		cw.NoColor = !config.WithColor
		w = cw
	}
	WithCaller = config.WithCaller

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if config.WithCaller {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()
	return nil
}
