package stratiscmd

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/stratisd"
	"github.com/opensvc/stratis/util/secret"
)

const (
	unlockAny     = "any"
	unlockClevis  = "clevis"
	unlockKeyring = "keyring"

	// metadataV2 pools have no fixed token slot per unlock method.
	metadataV2 = 2
)

var (
	unlockMethods = []string{unlockAny, unlockClevis, unlockKeyring}

	// legacyTokenSlots are the token slots of the unlock methods in
	// metadata version 1 pools.
	legacyTokenSlots = map[string]uint32{
		unlockKeyring: 1,
		unlockClevis:  2,
	}
)

type (
	CmdPoolStart struct {
		OptsGlobal
		Name         string
		UUID         string
		All          bool
		UnlockMethod string
		TokenSlot    OptTokenSlot
		Key          OptsKeyInput

		keyBuf *secret.Buffer
	}
)

func NewCmdPoolStart(g *OptsGlobal) *cobra.Command {
	var options CmdPoolStart
	cmd := &cobra.Command{
		Use:   "start",
		Short: "start a stopped pool",
		Long:  "Start the stopped pool designated by --name or --uuid, or all the stopped pools with --all, unlocking encrypted pools with the selected method.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			return options.Run()
		},
	}
	flags := cmd.Flags()
	FlagPoolName(flags, &options.Name)
	FlagPoolUUID(flags, &options.UUID)
	flags.BoolVar(&options.All, "all", false, "start all the stopped pools")
	FlagUnlockMethod(flags, &options.UnlockMethod)
	FlagTokenSlot(flags, &options.TokenSlot)
	FlagsKeyInput(flags, &options.Key)
	return cmd
}

func (t *CmdPoolStart) validate() error {
	if err := t.Key.Validate(); err != nil {
		return err
	}
	if t.UnlockMethod != "" {
		if t.TokenSlot.IsSet() {
			return clierr.Validationf("--unlock-method and --token-slot are mutually exclusive")
		}
		if !slices.Contains(unlockMethods, t.UnlockMethod) {
			return clierr.Validationf("invalid --unlock-method value %q: use one of %v", t.UnlockMethod, unlockMethods)
		}
	}
	if t.All && (t.Name != "" || t.UUID != "") {
		return clierr.Validationf("--all and --name or --uuid are mutually exclusive")
	}
	return nil
}

func (t *CmdPoolStart) Run() error {
	if err := t.validate(); err != nil {
		return err
	}
	var id objects.ID
	if !t.All {
		var err error
		if id, err = resourceID(t.Name, t.UUID); err != nil {
			return err
		}
	}
	if t.Key.IsSet() {
		var err error
		if t.keyBuf, err = t.Key.load(&t.OptsGlobal, false); err != nil {
			return err
		}
		defer t.keyBuf.Close()
	}
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()

	if t.All {
		return t.startAll(s)
	}
	unlock, err := t.unlockMethod(s, id, nil)
	if err != nil {
		return err
	}
	return t.start(s, id, unlock)
}

func (t *CmdPoolStart) startAll(s *session) error {
	m, err := s.manager.StoppedPools(t.context())
	if err != nil {
		return err
	}
	l := stratisd.SortedStoppedPools(m)
	items := make([]string, len(l))
	byUUID := make(map[string]stratisd.StoppedPool, len(l))
	for i, p := range l {
		items[i] = p.UUID
		byUUID[p.UUID] = p
	}
	return t.batch(items, func(item string) error {
		p := byUUID[item]
		id, err := objects.NewUUID(p.UUID)
		if err != nil {
			return err
		}
		unlock, err := t.unlockMethod(s, id, &p)
		if err != nil {
			return err
		}
		return t.start(s, id, unlock)
	})
}

// unlockMethod returns the StartPool unlock argument. The keyring and
// clevis methods map to fixed token slots, only valid for pools whose
// metadata version is not 2. The stopped pool is looked up if p is nil.
func (t *CmdPoolStart) unlockMethod(s *session, id objects.ID, p *stratisd.StoppedPool) (stratisd.UnlockMethod, error) {
	switch t.UnlockMethod {
	case "":
		if t.TokenSlot.IsSet() {
			return stratisd.UnlockMethod{Unlock: true, TokenSlot: t.TokenSlot.Arg()}, nil
		}
		return stratisd.UnlockMethod{Unlock: t.Key.IsSet(), TokenSlot: stratisd.NoTokenSlot}, nil
	case unlockAny:
		return stratisd.UnlockMethod{Unlock: true, TokenSlot: stratisd.NoTokenSlot}, nil
	}
	if p == nil {
		stopped, err := s.stoppedPool(t.context(), id)
		if err != nil {
			return stratisd.UnlockMethod{}, err
		}
		p = &stopped
	}
	if v, ok := p.MetadataVersion.Get(); ok && v.(uint64) == metadataV2 {
		return stratisd.UnlockMethod{}, clierr.Validationf(
			"\"--unlock-method=%s\" can not be used with metadata version V2 pools. Use \"--unlock-method=any\" or specify a token slot using \"--token-slot\" instead.",
			t.UnlockMethod)
	}
	slot := legacyTokenSlots[t.UnlockMethod]
	return stratisd.UnlockMethod{Unlock: true, TokenSlot: stratisd.TokenSlot(&slot)}, nil
}

// start starts one pool. The key pipe is opened for this call only.
func (t *CmdPoolStart) start(s *session, id objects.ID, unlock stratisd.UnlockMethod) error {
	fd, err := pipeKey(t.keyBuf)
	if err != nil {
		return err
	}
	defer fd.Close()
	r, err := s.manager.StartPool(t.context(), poolIDArg(id), unlock, fd.Arg())
	if err != nil {
		return err
	}
	return noChange(r.Changed, "start", id.String())
}
