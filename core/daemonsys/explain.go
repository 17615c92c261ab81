package daemonsys

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/opensvc/stratis/core/stratisd"
	"github.com/opensvc/stratis/util/systemd"
)

type (
	stater interface {
		ActiveState(ctx context.Context) (string, error)
		Close() error
	}
)

var (
	hasSystemd = systemd.HasSystemd

	connect = func(ctx context.Context) (stater, error) {
		return New(ctx)
	}
)

// Explain returns a sentence describing the state of the stratisd unit, or
// the empty string if systemd is not the init system or can not be queried.
func Explain(ctx context.Context) string {
	if !hasSystemd() {
		return ""
	}
	c, err := connect(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("connect to systemd")
		return ""
	}
	defer func() { _ = c.Close() }()
	state, err := c.ActiveState(ctx)
	if err != nil || state == "" {
		log.Debug().Err(err).Msg("get stratisd unit state")
		return ""
	}
	return fmt.Sprintf("The %s unit is %s.", stratisd.ServiceUnit, state)
}
