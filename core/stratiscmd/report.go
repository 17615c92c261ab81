package stratiscmd

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/output"
	"github.com/opensvc/stratis/core/stratisd"
)

const (
	reportEngineState    = "engine_state_report"
	reportManagedObjects = "managed_objects_report"
	reportStoppedPools   = "stopped_pools"
)

var reportNames = []string{reportEngineState, reportManagedObjects, reportStoppedPools}

type (
	CmdReport struct {
		OptsGlobal
		Name       string
		NoSortKeys bool
	}
)

func NewCmdReport(g *OptsGlobal) *cobra.Command {
	var options CmdReport
	cmd := &cobra.Command{
		Use:       "report [" + strings.Join(reportNames, "|") + "]",
		Short:     "print a daemon report",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: reportNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Name = reportEngineState
			if len(args) > 0 {
				options.Name = args[0]
			}
			return options.Run()
		},
	}
	FlagNoSortKeys(cmd.Flags(), &options.NoSortKeys)
	return cmd
}

func (t *CmdReport) Run() error {
	if !slices.Contains(reportNames, t.Name) {
		return clierr.Validationf("invalid report name %q: use one of %s", t.Name, strings.Join(reportNames, ", "))
	}
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := t.context()
	var doc string
	if t.Name == reportEngineState {
		doc, err = s.manager.EngineStateReport(ctx)
	} else {
		doc, err = s.manager.GetReport(ctx, t.Name)
	}
	if err != nil {
		return err
	}
	return t.render(output.Report{Doc: doc, SortKeys: !t.NoSortKeys}, nil)
}
