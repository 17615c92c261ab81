package stratiscmd

import (
	"context"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/output"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	CmdDebugRefresh struct {
		OptsGlobal
	}

	// CmdDebugObjectPath prints the object path of a resource.
	CmdDebugObjectPath struct {
		OptsGlobal
		Kind string
		Name string
		UUID string
	}

	// CmdDebugMetadata prints the pool metadata, or the filesystem part of
	// the pool metadata.
	CmdDebugMetadata struct {
		OptsGlobal
		Pool       string
		Filesystem bool
		FsName     string
		Pretty     bool
		Written    bool
	}

	objectPath struct {
		Path dbus.ObjectPath `json:"path" yaml:"path"`
	}
)

func NewCmdDebugRefresh(g *OptsGlobal) *cobra.Command {
	var options CmdDebugRefresh
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "reload the pools state from their metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			return options.Run()
		},
	}
	return cmd
}

func (t *CmdDebugRefresh) Run() error {
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.manager.RefreshState(t.context())
}

func NewCmdDebugPoolObjectPath(g *OptsGlobal) *cobra.Command {
	return newCmdDebugObjectPath(g, objects.KindPool, true)
}

func NewCmdDebugFilesystemObjectPath(g *OptsGlobal) *cobra.Command {
	return newCmdDebugObjectPath(g, objects.KindFilesystem, true)
}

func NewCmdDebugBlockdevObjectPath(g *OptsGlobal) *cobra.Command {
	return newCmdDebugObjectPath(g, objects.KindBlockdev, false)
}

func newCmdDebugObjectPath(g *OptsGlobal, kind string, byName bool) *cobra.Command {
	options := CmdDebugObjectPath{Kind: kind}
	cmd := &cobra.Command{
		Use:   "get-object-path",
		Short: "print the object path of a " + kind,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			return options.Run()
		},
	}
	flags := cmd.Flags()
	switch kind {
	case objects.KindPool:
		FlagPoolName(flags, &options.Name)
		FlagPoolUUID(flags, &options.UUID)
	case objects.KindFilesystem:
		FlagFilesystemName(flags, &options.Name)
		FlagFilesystemUUID(flags, &options.UUID)
	default:
		FlagBlockdevUUID(flags, &options.UUID)
	}
	if !byName {
		_ = cmd.MarkFlagRequired("uuid")
	}
	return cmd
}

func (t *CmdDebugObjectPath) Run() error {
	id, err := resourceID(t.Name, t.UUID)
	if err != nil {
		return err
	}
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	m, err := s.objects(t.context())
	if err != nil {
		return err
	}
	o, err := m.Resolve(t.Kind, id, "")
	if err != nil {
		return err
	}
	data := objectPath{Path: o.Path}
	return t.render(data, func() string {
		return string(data.Path) + "\n"
	})
}

func NewCmdDebugPoolMetadata(g *OptsGlobal) *cobra.Command {
	return newCmdDebugMetadata(g, false)
}

func NewCmdDebugFilesystemMetadata(g *OptsGlobal) *cobra.Command {
	return newCmdDebugMetadata(g, true)
}

func newCmdDebugMetadata(g *OptsGlobal, filesystem bool) *cobra.Command {
	options := CmdDebugMetadata{Filesystem: filesystem}
	short := "print the pool metadata"
	if filesystem {
		short = "print the filesystem metadata of a pool"
	}
	cmd := &cobra.Command{
		Use:   "get-metadata <pool>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Pool = args[0]
			return options.Run()
		},
	}
	flags := cmd.Flags()
	FlagPretty(flags, &options.Pretty)
	FlagWritten(flags, &options.Written)
	if filesystem {
		FlagFsName(flags, &options.FsName)
	}
	return cmd
}

func (t *CmdDebugMetadata) fetch(ctx context.Context, pool *stratisd.Pool) (string, error) {
	current := !t.Written
	if t.Filesystem {
		name := stratisd.OptionalString{Set: t.FsName != "", Value: t.FsName}
		return pool.FilesystemMetadata(ctx, name, current)
	}
	return pool.Metadata(ctx, current)
}

func (t *CmdDebugMetadata) Run() error {
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
	doc, err := t.fetch(ctx, pool)
	if err != nil {
		return err
	}
	report := output.Report{Doc: doc, SortKeys: true}
	var text string
	if t.Pretty {
		text, err = report.Format()
	} else {
		text, err = report.Compact()
	}
	if err != nil {
		return clierr.Internalf("decode metadata: %w", err)
	}
	return t.render(report, func() string {
		return text
	})
}
