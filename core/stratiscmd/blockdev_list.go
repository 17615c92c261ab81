package stratiscmd

import (
	"sort"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/output"
	"github.com/opensvc/stratis/core/props"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	CmdBlockdevList struct {
		OptsGlobal
		Pool string
	}
)

func NewCmdBlockdevList(g *OptsGlobal) *cobra.Command {
	var options CmdBlockdevList
	cmd := &cobra.Command{
		Use:     "list [<pool>]",
		Aliases: []string{"ls"},
		Short:   "list block devices",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			if len(args) > 0 {
				options.Pool = args[0]
			}
			return options.Run()
		},
	}
	return cmd
}

func (t *CmdBlockdevList) Run() error {
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	m, err := s.objects(t.context())
	if err != nil {
		return err
	}
	l := m.Blockdevs()
	if t.Pool != "" {
		pool, err := m.ResolvePool(objects.NewName(t.Pool))
		if err != nil {
			return err
		}
		l = l.InPool(pool.Path)
	}
	return t.render(t.table(m.PoolNames(), l), nil)
}

func (t *CmdBlockdevList) table(names map[dbus.ObjectPath]string, l objects.Objects) *output.Table {
	format := t.uuidFormatter()
	rows := make([]output.Row, 0, len(l))
	for _, dev := range l {
		table := dev.Props
		rows = append(rows, output.Row{
			poolName(names, table.ObjectPath("Pool")),
			devnodeString(table),
			physicalSizeString(table),
			tierString(table.Uint16("Tier")),
			format(dev.UUID()),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i][0] != rows[j][0] {
			return rows[i][0] < rows[j][0]
		}
		return rows[i][1] < rows[j][1]
	})
	tbl := output.NewTable("Pool Name", "Device Node", "Physical Size", "Tier", "UUID")
	tbl.Rows = rows
	return tbl
}

// devnodeString renders the device node, followed by the physical path
// when it differs, as for a device under an encryption layer.
func devnodeString(table props.Table) string {
	devnode := table.String("Devnode")
	s := devnode.String()
	if physical, ok := table.String("PhysicalPath").Get(); ok {
		if v, ok := devnode.Get(); ok && v.(string) != physical.(string) {
			s += " (" + physical.(string) + ")"
		}
	}
	return s
}

// physicalSizeString renders the in-use size, followed by the observed
// size when the device size changed.
func physicalSizeString(table props.Table) string {
	s := sizeOf(table.Bytes("TotalPhysicalSize"))
	observed := table.MaybeBytes("NewPhysicalSize")
	if observed.IsOk() {
		s += " (new " + sizeOf(observed) + ")"
	}
	return s
}

func tierString(v props.Value) string {
	return v.Render(func(a any) string {
		return stratisd.Tier(a.(uint16)).String()
	})
}
