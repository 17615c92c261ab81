package stratiscmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/stratisd"
)

type (
	CmdDaemonVersion struct {
		OptsGlobal
	}

	CmdDaemonRedundancy struct {
		OptsGlobal
	}

	daemonVersion struct {
		Version string `json:"version" yaml:"version"`
	}

	redundancy struct {
		Name  string `json:"name" yaml:"name"`
		Value uint16 `json:"value" yaml:"value"`
	}
)

func NewCmdDaemonVersion(g *OptsGlobal) *cobra.Command {
	var options CmdDaemonVersion
	cmd := &cobra.Command{
		Use:   "version",
		Short: "print the stratisd version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			return options.Run()
		},
	}
	return cmd
}

// Run prints the daemon version. It declares no minimum revision, so an
// unsupported daemon can still be identified.
func (t *CmdDaemonVersion) Run() error {
	s, err := t.connect(0)
	if err != nil {
		return err
	}
	defer s.Close()
	v, err := s.manager.Version(t.context())
	if err != nil {
		return err
	}
	data := daemonVersion{Version: v}
	return t.render(data, func() string {
		return data.Version + "\n"
	})
}

func NewCmdDaemonRedundancy(g *OptsGlobal) *cobra.Command {
	var options CmdDaemonRedundancy
	cmd := &cobra.Command{
		Use:   "redundancy",
		Short: "list the redundancy designations understood by stratisd",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			return options.Run()
		},
	}
	return cmd
}

func (t *CmdDaemonRedundancy) Run() error {
	l := make([]redundancy, len(stratisd.Redundancies))
	for i, r := range stratisd.Redundancies {
		l[i] = redundancy{Name: r.String(), Value: uint16(r)}
	}
	return t.render(l, func() string {
		var b strings.Builder
		for _, r := range l {
			fmt.Fprintf(&b, "%s: %d\n", r.Name, r.Value)
		}
		return b.String()
	})
}
