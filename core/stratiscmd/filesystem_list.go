package stratiscmd

import (
	"sort"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/output"
	"github.com/opensvc/stratis/core/props"
	"github.com/opensvc/stratis/core/stratisd"
)

const (
	noneString         = "None"
	createdTimeFormat  = "Jan 02 2006 15:04"
	headerFsSizeColumn = "Total / Used / Free / Limit"
)

type (
	CmdFilesystemList struct {
		OptsGlobal
		Pool string
		Name string
		UUID string
	}
)

func NewCmdFilesystemList(g *OptsGlobal) *cobra.Command {
	var options CmdFilesystemList
	cmd := &cobra.Command{
		Use:     "list [<pool>]",
		Aliases: []string{"ls"},
		Short:   "list filesystems",
		Long:    "List the filesystems, of all pools or of the named pool. Select a filesystem with --name or --uuid to display its detailed view.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			if len(args) > 0 {
				options.Pool = args[0]
			}
			return options.Run()
		},
	}
	flags := cmd.Flags()
	FlagFilesystemName(flags, &options.Name)
	FlagFilesystemUUID(flags, &options.UUID)
	return cmd
}

func (t *CmdFilesystemList) Run() error {
	var (
		id     objects.ID
		detail bool
	)
	if t.Name != "" || t.UUID != "" {
		var err error
		if id, err = resourceID(t.Name, t.UUID); err != nil {
			return err
		}
		detail = true
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
	var parent dbus.ObjectPath
	if t.Pool != "" {
		pool, err := m.ResolvePool(objects.NewName(t.Pool))
		if err != nil {
			return err
		}
		parent = pool.Path
	}
	if detail {
		fs, err := m.Resolve(objects.KindFilesystem, id, parent)
		if err != nil {
			return err
		}
		return t.render(t.detail(m.PoolNames(), fs), nil)
	}
	l := m.Filesystems()
	if parent != "" {
		l = l.InPool(parent)
	}
	return t.render(t.table(m.PoolNames(), l), nil)
}

func (t *CmdFilesystemList) table(names map[dbus.ObjectPath]string, l objects.Objects) *output.Table {
	format := t.uuidFormatter()
	rows := make([]output.Row, 0, len(l))
	for _, fs := range l {
		table := fs.Props
		rows = append(rows, output.Row{
			poolName(names, table.ObjectPath("Pool")),
			table.String("Name").String(),
			sizeTriple(table.Bytes("Size"), table.MaybeBytes("Used")) + " / " + sizeLimitString(table),
			table.String("Devnode").String(),
			format(fs.UUID()),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i][0] != rows[j][0] {
			return rows[i][0] < rows[j][0]
		}
		return rows[i][1] < rows[j][1]
	})
	tbl := output.NewTable("Pool", "Filesystem", headerFsSizeColumn, "Device", "UUID")
	tbl.Rows = rows
	return tbl
}

func (t *CmdFilesystemList) detail(names map[dbus.ObjectPath]string, fs objects.Object) *output.Detail {
	table := fs.Props
	format := t.uuidFormatter()
	doc := output.NewDetail()
	doc.Add("UUID", format(fs.UUID()))
	doc.Add("Name", table.String("Name").String())
	doc.Add("Pool", poolName(names, table.ObjectPath("Pool")))
	doc.Add("Device", table.String("Devnode").String())
	doc.Add("Created", createdString(table.String("Created")))

	origin, hasOrigin := maybeUnset(table, "Origin")
	if hasOrigin {
		e := doc.Add("Snapshot origin", table.MaybeString("Origin").Render(func(a any) string {
			return format(a.(string))
		}))
		e.Add("Revert scheduled", yesNo(table.Bool("MergeScheduled")))
	} else {
		doc.Add("Snapshot origin", origin)
	}

	e := doc.Add("Sizes", "")
	e.Add("Logical size of thin device", sizeOf(table.Bytes("Size")))
	e.Add("Total used (including XFS metadata)", sizeOf(table.MaybeBytes("Used")))
	e.Add("Free", freeOf(table.Bytes("Size"), table.MaybeBytes("Used")))
	e.Add("Size Limit", sizeLimitString(table))
	return doc
}

// maybeUnset returns "None", false if the (b<T>) property is validly
// unset. It returns "", true otherwise, the caller rendering the value.
func maybeUnset(table props.Table, name string) (string, bool) {
	variant, ok := table[name]
	if !ok {
		return "", true
	}
	valid, _, ok := props.AsMaybe(variant.Value())
	if ok && !valid {
		return noneString, false
	}
	return "", true
}

// sizeLimitString renders the SizeLimit property, "None" when no limit is
// set.
func sizeLimitString(table props.Table) string {
	if s, set := maybeUnset(table, "SizeLimit"); !set {
		return s
	}
	return sizeOf(table.MaybeBytes("SizeLimit"))
}

// createdString renders the RFC3339 creation time in the local timezone.
func createdString(v props.Value) string {
	return v.Render(func(a any) string {
		tm, err := time.Parse(time.RFC3339, a.(string))
		if err != nil {
			return a.(string)
		}
		return tm.Local().Format(createdTimeFormat)
	})
}
