package stratiscmd

import (
	"fmt"
	"math"
	"math/big"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/stratisd"
	"github.com/opensvc/stratis/util/sizeconv"
)

const (
	integrityPreAllocate = "pre-allocate"
	integrityNo          = "no"

	defaultJournalSize = "128MiB"
	defaultTagSpec     = "512b"
)

var (
	integrityOptions = []string{integrityNo, integrityPreAllocate}
	tagSpecs         = []string{"0b", "32b", "512b"}
)

type (
	CmdPoolCreate struct {
		OptsGlobal
		Name            string
		Devices         []string
		KeyDesc         string
		Clevis          OptsClevis
		NoOverprovision bool
		Integrity       string
		JournalSize     string
		TagSpec         string
	}
)

func NewCmdPoolCreate(g *OptsGlobal) *cobra.Command {
	var options CmdPoolCreate
	cmd := &cobra.Command{
		Use:   "create <pool> <blockdev>...",
		Short: "create a pool",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Name = args[0]
			options.Devices = args[1:]
			return options.Run()
		},
	}
	flags := cmd.Flags()
	FlagKeyDesc(flags, &options.KeyDesc)
	FlagsClevis(flags, &options.Clevis)
	flags.BoolVar(&options.NoOverprovision, "no-overprovision", false, "do not allow the sum of the logical sizes of the filesystems to exceed the pool size")
	flags.StringVar(&options.Integrity, "integrity", integrityPreAllocate, "integrity metadata allocation no|pre-allocate")
	flags.StringVar(&options.JournalSize, "journal-size", "", fmt.Sprintf("size of the integrity journal, default %s", defaultJournalSize))
	flags.StringVar(&options.TagSpec, "tag-spec", "", fmt.Sprintf("integrity tag specification 0b|32b|512b, default %s", defaultTagSpec))
	return cmd
}

// integrityArgs returns the journal size, tag spec and superblock
// allocation arguments.
func (t *CmdPoolCreate) integrityArgs() (stratisd.OptionalUint64, stratisd.OptionalString, stratisd.OptionalBool, error) {
	var (
		journal  stratisd.OptionalUint64
		tag      stratisd.OptionalString
		allocate stratisd.OptionalBool
	)
	switch t.Integrity {
	case integrityNo:
		if t.JournalSize != "" || t.TagSpec != "" {
			return journal, tag, allocate, clierr.Validationf("--journal-size and --tag-spec can not be used with --integrity=%s", integrityNo)
		}
		journal = stratisd.OptionalUint64{Set: true, Value: 0}
		tag = stratisd.OptionalString{Set: true, Value: "0b"}
		allocate = stratisd.OptionalBool{Set: true, Value: false}
		return journal, tag, allocate, nil
	case integrityPreAllocate:
	default:
		return journal, tag, allocate, clierr.Validationf("invalid --integrity value %q: use one of %v", t.Integrity, integrityOptions)
	}

	journalSize := t.JournalSize
	if journalSize == "" {
		journalSize = defaultJournalSize
	}
	spec, err := sizeconv.Parse(journalSize)
	if err != nil {
		return journal, tag, allocate, &clierr.ValidationError{Msg: "--journal-size: " + err.Error()}
	}
	b := spec.Bytes()
	if b.Cmp(new(big.Int).SetUint64(math.MaxUint64)) > 0 {
		return journal, tag, allocate, clierr.Validationf("--journal-size value is too large; it must be no greater than %d bytes.", uint64(math.MaxUint64))
	}

	tagSpec := t.TagSpec
	if tagSpec == "" {
		tagSpec = defaultTagSpec
	}
	if !slices.Contains(tagSpecs, tagSpec) {
		return journal, tag, allocate, clierr.Validationf("invalid --tag-spec value %q: use one of %v", tagSpec, tagSpecs)
	}

	journal = stratisd.OptionalUint64{Set: true, Value: b.Uint64()}
	tag = stratisd.OptionalString{Set: true, Value: tagSpec}
	allocate = stratisd.OptionalBool{Set: true, Value: true}
	return journal, tag, allocate, nil
}

func (t *CmdPoolCreate) args() (stratisd.CreatePoolArgs, error) {
	var args stratisd.CreatePoolArgs
	devices, err := absPaths(t.Devices)
	if err != nil {
		return args, err
	}
	clevis, err := t.Clevis.Specs()
	if err != nil {
		return args, err
	}
	journal, tag, allocate, err := t.integrityArgs()
	if err != nil {
		return args, err
	}
	return stratisd.CreatePoolArgs{
		Name:               t.Name,
		Devices:            devices,
		KeyDescriptions:    keyDescriptions(t.KeyDesc),
		Clevis:             clevis,
		JournalSize:        journal,
		TagSpec:            tag,
		AllocateSuperblock: allocate,
	}, nil
}

func (t *CmdPoolCreate) Run() error {
	args, err := t.args()
	if err != nil {
		return err
	}
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := t.context()

	r, err := s.manager.CreatePool(ctx, args)
	if err != nil {
		return err
	}
	if err := noChange(r.Changed, "create", objects.NewName(t.Name).String()); err != nil {
		return err
	}
	log.Debug().Str("pool", string(r.Pool)).Int("blockdevs", len(r.Blockdevs)).Msg("pool created")
	if t.NoOverprovision {
		return stratisd.NewPool(s.caller, r.Pool).SetOverprovisioning(ctx, false)
	}
	return nil
}
