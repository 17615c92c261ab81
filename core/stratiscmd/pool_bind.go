package stratiscmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	// CmdPoolBind binds an encrypted pool to an additional unlock method.
	CmdPoolBind struct {
		OptsGlobal
		Method     string
		Name       string
		TangURL    string
		Thumbprint string
		TrustURL   bool
		KeyDesc    string
		TokenSlot  OptTokenSlot
	}

	// CmdPoolUnbind removes an unlock method binding.
	CmdPoolUnbind struct {
		OptsGlobal
		Method    string
		Name      string
		TokenSlot OptTokenSlot
	}

	// CmdPoolRebind binds again an unlock method, with a new clevis
	// configuration or key.
	CmdPoolRebind struct {
		OptsGlobal
		Method    string
		Name      string
		KeyDesc   string
		TokenSlot OptTokenSlot
	}
)

func NewCmdPoolBind() *cobra.Command {
	return &cobra.Command{
		Use:   "bind",
		Short: "bind an encrypted pool to an additional unlock method",
	}
}

func NewCmdPoolUnbind() *cobra.Command {
	return &cobra.Command{
		Use:   "unbind",
		Short: "remove an unlock method binding of an encrypted pool",
	}
}

func NewCmdPoolRebind() *cobra.Command {
	return &cobra.Command{
		Use:   "rebind",
		Short: "bind again an unlock method of an encrypted pool",
	}
}

func NewCmdPoolBindTang(g *OptsGlobal) *cobra.Command {
	var options CmdPoolBind
	cmd := &cobra.Command{
		Use:     "tang <pool> <url>",
		Aliases: []string{clevisNBDE},
		Short:   "bind using a tang server",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Method = clevisTang
			options.Name = args[0]
			options.TangURL = args[1]
			return options.Run()
		},
	}
	flags := cmd.Flags()
	FlagThumbprint(flags, &options.Thumbprint)
	FlagTrustURL(flags, &options.TrustURL)
	FlagTokenSlot(flags, &options.TokenSlot)
	cmd.MarkFlagsMutuallyExclusive("thumbprint", "trust-url")
	return cmd
}

func NewCmdPoolBindTPM2(g *OptsGlobal) *cobra.Command {
	var options CmdPoolBind
	cmd := &cobra.Command{
		Use:   "tpm2 <pool>",
		Short: "bind using the tpm2",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Method = clevisTPM2
			options.Name = args[0]
			return options.Run()
		},
	}
	FlagTokenSlot(cmd.Flags(), &options.TokenSlot)
	return cmd
}

func NewCmdPoolBindKeyring(g *OptsGlobal) *cobra.Command {
	var options CmdPoolBind
	cmd := &cobra.Command{
		Use:   "keyring <pool> <keydesc>",
		Short: "bind using a key in the kernel keyring",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Method = unlockKeyring
			options.Name = args[0]
			options.KeyDesc = args[1]
			return options.Run()
		},
	}
	FlagTokenSlot(cmd.Flags(), &options.TokenSlot)
	return cmd
}

func (t *CmdPoolBind) call(ctx context.Context, pool *stratisd.Pool) (bool, error) {
	switch t.Method {
	case unlockKeyring:
		return pool.BindKeyring(ctx, t.KeyDesc, t.TokenSlot.Arg())
	case clevisTPM2:
		return pool.BindClevis(ctx, stratisd.ClevisPinTPM2, "{}", t.TokenSlot.Arg())
	default:
		config, err := tangConfig(t.TangURL, t.Thumbprint, t.TrustURL)
		if err != nil {
			return false, err
		}
		return pool.BindClevis(ctx, stratisd.ClevisPinTang, config, t.TokenSlot.Arg())
	}
}

func (t *CmdPoolBind) Run() error {
	if t.Method == clevisTang {
		if err := validateTang(t.TangURL, t.Thumbprint, t.TrustURL); err != nil {
			return err
		}
	}
	return runPoolAction(&t.OptsGlobal, t.Name, "bind", t.call)
}

func NewCmdPoolUnbindClevis(g *OptsGlobal) *cobra.Command {
	return newCmdPoolUnbind(g, unlockClevis, "remove the clevis binding")
}

func NewCmdPoolUnbindKeyring(g *OptsGlobal) *cobra.Command {
	return newCmdPoolUnbind(g, unlockKeyring, "remove the kernel keyring binding")
}

func newCmdPoolUnbind(g *OptsGlobal, method, short string) *cobra.Command {
	options := CmdPoolUnbind{Method: method}
	cmd := &cobra.Command{
		Use:   method + " <pool>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Name = args[0]
			return options.Run()
		},
	}
	FlagTokenSlot(cmd.Flags(), &options.TokenSlot)
	return cmd
}

func (t *CmdPoolUnbind) Run() error {
	return runPoolAction(&t.OptsGlobal, t.Name, "unbind", func(ctx context.Context, pool *stratisd.Pool) (bool, error) {
		if t.Method == unlockKeyring {
			return pool.UnbindKeyring(ctx, t.TokenSlot.Arg())
		}
		return pool.UnbindClevis(ctx, t.TokenSlot.Arg())
	})
}

func NewCmdPoolRebindClevis(g *OptsGlobal) *cobra.Command {
	options := CmdPoolRebind{Method: unlockClevis}
	cmd := &cobra.Command{
		Use:   "clevis <pool>",
		Short: "bind again using the current clevis configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Name = args[0]
			return options.Run()
		},
	}
	FlagTokenSlot(cmd.Flags(), &options.TokenSlot)
	return cmd
}

func NewCmdPoolRebindKeyring(g *OptsGlobal) *cobra.Command {
	options := CmdPoolRebind{Method: unlockKeyring}
	cmd := &cobra.Command{
		Use:   "keyring <pool> <keydesc>",
		Short: "bind again using a new key in the kernel keyring",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Name = args[0]
			options.KeyDesc = args[1]
			return options.Run()
		},
	}
	FlagTokenSlot(cmd.Flags(), &options.TokenSlot)
	return cmd
}

func (t *CmdPoolRebind) Run() error {
	return runPoolAction(&t.OptsGlobal, t.Name, "rebind", func(ctx context.Context, pool *stratisd.Pool) (bool, error) {
		if t.Method == unlockKeyring {
			return pool.RebindKeyring(ctx, t.KeyDesc, t.TokenSlot.Arg())
		}
		return pool.RebindClevis(ctx, t.TokenSlot.Arg())
	})
}

// runPoolAction resolves the named pool and calls fn on it. A false
// changed flag is a NoChangeError.
func runPoolAction(g *OptsGlobal, name, action string, fn func(context.Context, *stratisd.Pool) (bool, error)) error {
	return runPoolActionByID(g, objects.NewName(name), action, fn)
}

func runPoolActionByID(g *OptsGlobal, id objects.ID, action string, fn func(context.Context, *stratisd.Pool) (bool, error)) error {
	s, err := g.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := g.context()
	_, pool, _, err := s.pool(ctx, id)
	if err != nil {
		return err
	}
	changed, err := fn(ctx, pool)
	if err != nil {
		return err
	}
	return noChange(changed, action, id.String())
}
