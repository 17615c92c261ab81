package stratis

import (
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/stratiscmd"
)

func newCmdPool(g *stratiscmd.OptsGlobal) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "manage the pools",
	}
	cmdBind := stratiscmd.NewCmdPoolBind()
	cmdBind.AddCommand(
		stratiscmd.NewCmdPoolBindTang(g),
		stratiscmd.NewCmdPoolBindTPM2(g),
		stratiscmd.NewCmdPoolBindKeyring(g),
	)
	cmdUnbind := stratiscmd.NewCmdPoolUnbind()
	cmdUnbind.AddCommand(
		stratiscmd.NewCmdPoolUnbindClevis(g),
		stratiscmd.NewCmdPoolUnbindKeyring(g),
	)
	cmdRebind := stratiscmd.NewCmdPoolRebind()
	cmdRebind.AddCommand(
		stratiscmd.NewCmdPoolRebindClevis(g),
		stratiscmd.NewCmdPoolRebindKeyring(g),
	)
	cmd.AddCommand(
		stratiscmd.NewCmdPoolCreate(g),
		stratiscmd.NewCmdPoolList(g),
		stratiscmd.NewCmdPoolDestroy(g),
		stratiscmd.NewCmdPoolRename(g),
		stratiscmd.NewCmdPoolStart(g),
		stratiscmd.NewCmdPoolStop(g),
		stratiscmd.NewCmdPoolInitCache(g),
		stratiscmd.NewCmdPoolAddData(g),
		stratiscmd.NewCmdPoolAddCache(g),
		stratiscmd.NewCmdPoolExtendData(g),
		stratiscmd.NewCmdPoolSetFsLimit(g),
		stratiscmd.NewCmdPoolOverprovision(g),
		cmdBind,
		cmdUnbind,
		cmdRebind,
		stratiscmd.NewCmdPoolEncrypt(g),
		stratiscmd.NewCmdPoolUnencrypt(g),
		stratiscmd.NewCmdPoolReencrypt(g),
		stratiscmd.NewCmdPoolExplain(g),
	)
	return cmd
}
