package stratiscmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	// CmdPoolEncrypt encrypts an unencrypted pool in place.
	CmdPoolEncrypt struct {
		OptsGlobal
		Name    string
		UUID    string
		KeyDesc string
		Clevis  OptsClevis
	}

	// CmdPoolEncryption runs an encryption action taking no argument on
	// a pool: unencrypt or reencrypt.
	CmdPoolEncryption struct {
		OptsGlobal
		Action string
		Name   string
		UUID   string
	}
)

func NewCmdPoolEncrypt(g *OptsGlobal) *cobra.Command {
	var options CmdPoolEncrypt
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "encrypt an unencrypted pool",
		Long:  "Encrypt the pool designated by --name or --uuid, binding it to a key in the kernel keyring with --key-desc and/or to clevis with --clevis.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			return options.Run()
		},
	}
	flags := cmd.Flags()
	FlagPoolName(flags, &options.Name)
	FlagPoolUUID(flags, &options.UUID)
	FlagKeyDesc(flags, &options.KeyDesc)
	FlagsClevis(flags, &options.Clevis)
	return cmd
}

func (t *CmdPoolEncrypt) Run() error {
	id, err := resourceID(t.Name, t.UUID)
	if err != nil {
		return err
	}
	clevis, err := t.Clevis.Specs()
	if err != nil {
		return err
	}
	keys := keyDescriptions(t.KeyDesc)
	if len(keys) == 0 && len(clevis) == 0 {
		return clierr.Validationf("at least one of --key-desc or --clevis is required to encrypt a pool")
	}
	return runPoolActionByID(&t.OptsGlobal, id, "encrypt", func(ctx context.Context, pool *stratisd.Pool) (bool, error) {
		return pool.EncryptPool(ctx, keys, clevis)
	})
}

func NewCmdPoolUnencrypt(g *OptsGlobal) *cobra.Command {
	return newCmdPoolEncryption(g, "unencrypt", "remove the encryption layer of an encrypted pool")
}

func NewCmdPoolReencrypt(g *OptsGlobal) *cobra.Command {
	return newCmdPoolEncryption(g, "reencrypt", "encrypt an encrypted pool again with a new volume key")
}

func newCmdPoolEncryption(g *OptsGlobal, action, short string) *cobra.Command {
	options := CmdPoolEncryption{Action: action}
	cmd := &cobra.Command{
		Use:   action,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			return options.Run()
		},
	}
	flags := cmd.Flags()
	FlagPoolName(flags, &options.Name)
	FlagPoolUUID(flags, &options.UUID)
	return cmd
}

func (t *CmdPoolEncryption) Run() error {
	id, err := resourceID(t.Name, t.UUID)
	if err != nil {
		return err
	}
	return runPoolActionByID(&t.OptsGlobal, id, t.Action, func(ctx context.Context, pool *stratisd.Pool) (bool, error) {
		if t.Action == "reencrypt" {
			return pool.ReencryptPool(ctx)
		}
		return pool.DecryptPool(ctx)
	})
}
