package stratiscmd

import (
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	CmdFilesystemRename struct {
		OptsGlobal
		Pool    string
		Name    string
		NewName string
	}
)

func NewCmdFilesystemRename(g *OptsGlobal) *cobra.Command {
	var options CmdFilesystemRename
	cmd := &cobra.Command{
		Use:   "rename <pool> <fs> <new>",
		Short: "rename a filesystem",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Pool = args[0]
			options.Name = args[1]
			options.NewName = args[2]
			return options.Run()
		},
	}
	return cmd
}

func (t *CmdFilesystemRename) Run() error {
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := t.context()
	_, fs, err := s.filesystem(ctx, t.Pool, t.Name)
	if err != nil {
		return err
	}
	changed, err := fs.SetName(ctx, t.NewName)
	if err != nil {
		return err
	}
	return noChange(changed, "rename", "filesystem "+objects.NewName(t.Name).String())
}
