package stratiscmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/output"
	"github.com/opensvc/stratis/core/props"
	"github.com/opensvc/stratis/core/stratisd"
)

const (
	headerTotalUsedFree = "Total / Used / Free"
	unavailableName     = "<UNAVAILABLE>"
	unencrypted         = "unencrypted"
)

type (
	CmdPoolList struct {
		OptsGlobal
		Stopped bool
		Name    string
		UUID    string
	}
)

func NewCmdPoolList(g *OptsGlobal) *cobra.Command {
	var options CmdPoolList
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list pools",
		Long:    "List the started pools, or the stopped pools with --stopped. Select a pool with --name or --uuid to display its detailed view.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			return options.Run()
		},
	}
	flags := cmd.Flags()
	FlagStopped(flags, &options.Stopped)
	FlagPoolName(flags, &options.Name)
	FlagPoolUUID(flags, &options.UUID)
	return cmd
}

func (t *CmdPoolList) Run() error {
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
	ctx := t.context()

	if t.Stopped {
		if detail {
			p, err := s.stoppedPool(ctx, id)
			if err != nil {
				return err
			}
			return t.render(t.stoppedDetail(p), nil)
		}
		m, err := s.manager.StoppedPools(ctx)
		if err != nil {
			return err
		}
		return t.render(t.stoppedTable(stratisd.SortedStoppedPools(m)), nil)
	}

	m, err := s.objects(ctx)
	if err != nil {
		return err
	}
	if detail {
		pool, err := m.ResolvePool(id)
		if err != nil {
			return err
		}
		return t.render(t.poolDetail(m, pool), nil)
	}
	return t.render(t.poolTable(m), nil)
}

func (t *CmdPoolList) poolTable(m objects.Map) *output.Table {
	format := t.uuidFormatter()
	rows := make([]output.Row, 0)
	for _, pool := range m.Pools() {
		table := pool.Props
		rows = append(rows, output.Row{
			table.String("Name").String(),
			sizeTriple(table.Bytes("TotalPhysicalSize"), table.MaybeBytes("TotalPhysicalUsed")),
			strings.Join([]string{
				flagCode(table, "HasCache", "Ca"),
				flagCode(table, "Encrypted", "Cr"),
				flagCode(table, "Overprovisioning", "Op"),
			}, ","),
			format(pool.UUID()),
			alertString(poolAlerts(m, pool)),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	tbl := output.NewTable("Name", headerTotalUsedFree, "Properties", "UUID", "Alerts")
	tbl.Rows = rows
	return tbl
}

func (t *CmdPoolList) poolDetail(m objects.Map, pool objects.Object) *output.Detail {
	table := pool.Props
	format := t.uuidFormatter()
	encrypted, _ := table.Bool("Encrypted").Bool()
	doc := output.NewDetail()
	doc.Add("UUID", format(pool.UUID()))
	doc.Add("Name", table.String("Name").String())

	l := poolAlerts(m, pool)
	e := doc.Add("Alerts", fmt.Sprint(len(l)))
	for _, a := range l {
		e.Line(a.Code + ": " + a.Summary)
	}

	doc.Add("Actions Allowed", table.String("AvailableActions").String())
	doc.Add("Cache", yesNo(table.Bool("HasCache")))
	doc.Add("Filesystem Limit", table.Uint64("FsLimit").String())
	doc.Add("Allows Overprovisioning", yesNo(table.Bool("Overprovisioning")))
	if encrypted {
		doc.Add("Key Description", encryptionString(table.KeyDescription("KeyDescription"), keyDescriptionString))
		doc.Add("Clevis Configuration", encryptionString(table.ClevisInfo("ClevisInfo"), clevisString))
	} else {
		doc.Add("Key Description", unencrypted)
		doc.Add("Clevis Configuration", unencrypted)
	}

	doc.Add("Space Usage", "")
	e = doc.Add("Fully Allocated", yesNo(table.Bool("NoAllocSpace")))
	e.Add("Size", sizeOf(table.Bytes("TotalPhysicalSize")))
	e.Add("Allocated", sizeOf(table.Bytes("AllocatedSize")))
	e.Add("Used", sizeOf(table.MaybeBytes("TotalPhysicalUsed")))
	return doc
}

func (t *CmdPoolList) stoppedTable(l []stratisd.StoppedPool) *output.Table {
	format := t.uuidFormatter()
	rows := make([]output.Row, 0, len(l))
	for _, p := range l {
		rows = append(rows, output.Row{
			stoppedName(p),
			format(p.UUID),
			fmt.Sprint(len(p.Devices)),
			stoppedEncryptionString(p.KeyDescription, keyDescriptionString),
			stoppedEncryptionString(p.Clevis, func(any) string { return "present" }),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	tbl := output.NewTable("Name", "UUID", "# Devices", "Key Description", "Clevis")
	tbl.Rows = rows
	return tbl
}

func (t *CmdPoolList) stoppedDetail(p stratisd.StoppedPool) *output.Detail {
	format := t.uuidFormatter()
	doc := output.NewDetail()
	doc.Add("Name", stoppedName(p))
	doc.Add("UUID", format(p.UUID))
	doc.Add("Metadata Version", p.MetadataVersion.String())
	doc.Add("Key Description", stoppedEncryptionString(p.KeyDescription, keyDescriptionString))
	doc.Add("Clevis Configuration", stoppedEncryptionString(p.Clevis, clevisString))
	e := doc.Add("Devices", "")
	for _, dev := range p.Devices {
		e.Line(format(dev.UUID) + "  " + dev.Devnode)
	}
	return doc
}

func stoppedName(p stratisd.StoppedPool) string {
	if name, ok := p.Name.Get(); ok {
		return name.(string)
	}
	return unavailableName
}

// encryptionString renders an encryption property value, interpreting
// the value of a consistent and present setting with f.
func encryptionString(v props.Value, f func(any) string) string {
	return v.Render(func(a any) string {
		return encryptionValueString(a.(props.Encryption), f)
	})
}

func stoppedEncryptionString(enc *props.Encryption, f func(any) string) string {
	if enc == nil {
		return unencrypted
	}
	return encryptionValueString(*enc, f)
}

func encryptionValueString(enc props.Encryption, f func(any) string) string {
	switch {
	case !enc.Consistent:
		return "inconsistent"
	case !enc.Present:
		return "N/A"
	default:
		return f(enc.Value)
	}
}

func keyDescriptionString(v any) string {
	return fmt.Sprint(v)
}

// clevisString renders the pin and its configuration, sorted by key.
func clevisString(v any) string {
	c, ok := v.(props.Clevis)
	if !ok {
		return props.UnknownString
	}
	keys := make([]string, 0, len(c.Config))
	for k := range c.Config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	l := make([]string, len(keys))
	for i, k := range keys {
		l[i] = fmt.Sprintf("%s: %v", k, c.Config[k])
	}
	return c.Pin + "   " + strings.Join(l, " ")
}
