package stratiscmd

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/output"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	// CmdKeySet sets a key in the kernel keyring. With Reset, the key
	// must already exist.
	CmdKeySet struct {
		OptsGlobal
		KeyDesc string
		Key     OptsKeyInput
		Verify  bool
		Reset   bool
	}

	CmdKeyUnset struct {
		OptsGlobal
		KeyDesc string
	}

	CmdKeyList struct {
		OptsGlobal
	}
)

func NewCmdKeySet(g *OptsGlobal) *cobra.Command {
	return newCmdKeySet(g, false)
}

func NewCmdKeyReset(g *OptsGlobal) *cobra.Command {
	return newCmdKeySet(g, true)
}

func newCmdKeySet(g *OptsGlobal, reset bool) *cobra.Command {
	options := CmdKeySet{Reset: reset}
	use, short := "set", "set a key in the kernel keyring"
	if reset {
		use, short = "reset", "change the content of a key in the kernel keyring"
	}
	cmd := &cobra.Command{
		Use:   use + " <keydesc>",
		Short: short,
		Long:  short + ". The key is read from --keyfile-path, from the terminal with --capture-key, or from the STRATIS_KEYFILE_PATH file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.KeyDesc = args[0]
			return options.Run()
		},
	}
	flags := cmd.Flags()
	FlagsKeyInput(flags, &options.Key)
	FlagVerify(flags, &options.Verify)
	return cmd
}

func (t *CmdKeySet) Run() error {
	if err := t.Key.Validate(); err != nil {
		return err
	}
	if t.Verify && !t.Key.CaptureKey {
		return clierr.Validationf("--verify can only be used with --capture-key")
	}
	buf, err := t.Key.withDefault().load(&t.OptsGlobal, t.Verify)
	if err != nil {
		return err
	}
	defer buf.Close()
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := t.context()

	if t.Reset {
		keys, err := s.manager.ListKeys(ctx)
		if err != nil {
			return err
		}
		if !slices.Contains(keys, t.KeyDesc) {
			return &clierr.ResourceNotFoundError{Kind: "key", ID: "description " + t.KeyDesc}
		}
	}
	fd, err := pipeKey(buf)
	if err != nil {
		return err
	}
	defer fd.Close()
	r, err := s.manager.SetKey(ctx, t.KeyDesc, fd.UnixFD())
	if err != nil {
		return err
	}
	action := "set"
	if t.Reset {
		action = "reset"
	}
	if err := noChange(r.Changed, action, "key description "+t.KeyDesc); err != nil {
		return err
	}
	if t.Reset && !r.Existed {
		return clierr.Internalf("key %s was not found by the daemon while resetting it", t.KeyDesc)
	}
	return nil
}

func NewCmdKeyUnset(g *OptsGlobal) *cobra.Command {
	var options CmdKeyUnset
	cmd := &cobra.Command{
		Use:   "unset <keydesc>",
		Short: "remove a key from the kernel keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.KeyDesc = args[0]
			return options.Run()
		},
	}
	return cmd
}

func (t *CmdKeyUnset) Run() error {
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	changed, err := s.manager.UnsetKey(t.context(), t.KeyDesc)
	if err != nil {
		return err
	}
	return noChange(changed, "unset", "key description "+t.KeyDesc)
}

func NewCmdKeyList(g *OptsGlobal) *cobra.Command {
	var options CmdKeyList
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list the keys in the kernel keyring",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			return options.Run()
		},
	}
	return cmd
}

func (t *CmdKeyList) Run() error {
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	keys, err := s.manager.ListKeys(t.context())
	if err != nil {
		return err
	}
	slices.Sort(keys)
	tbl := output.NewTable("Key Description")
	for _, k := range keys {
		tbl.Add(k)
	}
	return t.render(tbl, nil)
}
