package stratis

import (
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/stratiscmd"
)

func newCmdKey(g *stratiscmd.OptsGlobal) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "manage the keys in the kernel keyring",
	}
	cmd.AddCommand(
		stratiscmd.NewCmdKeySet(g),
		stratiscmd.NewCmdKeyReset(g),
		stratiscmd.NewCmdKeyUnset(g),
		stratiscmd.NewCmdKeyList(g),
	)
	return cmd
}

func newCmdDaemon(g *stratiscmd.OptsGlobal) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "query the stratis daemon",
	}
	cmd.AddCommand(
		stratiscmd.NewCmdDaemonVersion(g),
		stratiscmd.NewCmdDaemonRedundancy(g),
	)
	return cmd
}

func newCmdDebug(g *stratiscmd.OptsGlobal) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "commands for troubleshooting the daemon",
	}
	cmdPool := &cobra.Command{
		Use:   "pool",
		Short: "pool debugging commands",
	}
	cmdPool.AddCommand(
		stratiscmd.NewCmdDebugPoolObjectPath(g),
		stratiscmd.NewCmdDebugPoolMetadata(g),
	)
	cmdFilesystem := &cobra.Command{
		Use:     "filesystem",
		Aliases: []string{"fs"},
		Short:   "filesystem debugging commands",
	}
	cmdFilesystem.AddCommand(
		stratiscmd.NewCmdDebugFilesystemObjectPath(g),
		stratiscmd.NewCmdDebugFilesystemMetadata(g),
	)
	cmdBlockdev := &cobra.Command{
		Use:   "blockdev",
		Short: "block device debugging commands",
	}
	cmdBlockdev.AddCommand(
		stratiscmd.NewCmdDebugBlockdevObjectPath(g),
	)
	cmd.AddCommand(
		stratiscmd.NewCmdDebugRefresh(g),
		cmdPool,
		cmdFilesystem,
		cmdBlockdev,
	)
	return cmd
}
