package stratis

import (
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/stratiscmd"
)

func newCmdFilesystem(g *stratiscmd.OptsGlobal) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "filesystem",
		Aliases: []string{"fs"},
		Short:   "manage the filesystems",
	}
	cmd.AddCommand(
		stratiscmd.NewCmdFilesystemCreate(g),
		stratiscmd.NewCmdFilesystemSnapshot(g),
		stratiscmd.NewCmdFilesystemList(g),
		stratiscmd.NewCmdFilesystemDestroy(g),
		stratiscmd.NewCmdFilesystemRename(g),
		stratiscmd.NewCmdFilesystemSetSizeLimit(g),
		stratiscmd.NewCmdFilesystemUnsetSizeLimit(g),
		stratiscmd.NewCmdFilesystemScheduleRevert(g),
		stratiscmd.NewCmdFilesystemCancelRevert(g),
	)
	return cmd
}

func newCmdBlockdev(g *stratiscmd.OptsGlobal) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blockdev",
		Short: "list the block devices",
	}
	cmd.AddCommand(
		stratiscmd.NewCmdBlockdevList(g),
	)
	return cmd
}
