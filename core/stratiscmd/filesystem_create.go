package stratiscmd

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/stratisd"
	"github.com/opensvc/stratis/util/sizeconv"
)

type (
	CmdFilesystemCreate struct {
		OptsGlobal
		Pool      string
		Names     []string
		Size      string
		SizeLimit string
	}
)

func NewCmdFilesystemCreate(g *OptsGlobal) *cobra.Command {
	var options CmdFilesystemCreate
	cmd := &cobra.Command{
		Use:   "create <pool> <fs>...",
		Short: "create filesystems in a pool",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Pool = args[0]
			options.Names = args[1:]
			return options.Run()
		},
	}
	flags := cmd.Flags()
	FlagSize(flags, &options.Size)
	FlagSizeLimit(flags, &options.SizeLimit)
	return cmd
}

// sizeArg returns the (bs) decimal bytes count argument of a size flag
// value, unset if s is empty.
func sizeArg(flag, s string) (stratisd.OptionalString, error) {
	if s == "" {
		return stratisd.OptionalString{}, nil
	}
	spec, err := sizeconv.Parse(s)
	if err != nil {
		return stratisd.OptionalString{}, clierr.Validationf("--%s: %s", flag, err)
	}
	return stratisd.OptionalString{Set: true, Value: spec.Bytes().String()}, nil
}

func (t *CmdFilesystemCreate) specs() ([]stratisd.FilesystemSpec, error) {
	seen := make(map[string]bool, len(t.Names))
	for _, name := range t.Names {
		if seen[name] {
			return nil, clierr.Validationf("filesystem name %q is specified more than once", name)
		}
		seen[name] = true
	}
	size, err := sizeArg("size", t.Size)
	if err != nil {
		return nil, err
	}
	limit, err := sizeArg("size-limit", t.SizeLimit)
	if err != nil {
		return nil, err
	}
	specs := make([]stratisd.FilesystemSpec, len(t.Names))
	for i, name := range t.Names {
		specs[i] = stratisd.FilesystemSpec{Name: name, Size: size, SizeLimit: limit}
	}
	return specs, nil
}

func (t *CmdFilesystemCreate) Run() error {
	specs, err := t.specs()
	if err != nil {
		return err
	}
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := t.context()
	_, pool, _, err := s.pool(ctx, objects.NewName(t.Pool))
	if err != nil {
		return err
	}
	changed, created, err := pool.CreateFilesystems(ctx, specs)
	if err != nil {
		return err
	}
	if err := noChange(changed, "create", "filesystem name "+strings.Join(t.Names, ", ")); err != nil {
		return err
	}
	for _, fs := range created {
		log.Debug().Str("path", string(fs.Path)).Str("name", fs.Name).Msg("filesystem created")
	}
	return nil
}
