package output

import (
	"fmt"
	"strings"

	"github.com/iancoleman/orderedmap"
	tabwriter "github.com/juju/ansiterm"
	"gopkg.in/yaml.v3"
)

const (
	// ColumnPadding is the minimum number of spaces between two columns.
	ColumnPadding = 3
)

type (
	// Row is a table line, one cell per column.
	Row []string

	// Table is a list of rows under a header. Cells are left aligned and
	// columns are as wide as their widest cell.
	Table struct {
		Headers []string
		Rows    []Row
	}
)

// NewTable returns an empty table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// Add appends a row. Missing cells are rendered empty, extra cells are
// dropped.
func (t *Table) Add(cells ...string) {
	row := make(Row, len(t.Headers))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Render returns the table text, header line first.
func (t *Table) Render() string {
	var b strings.Builder
	w := tabwriter.NewTabWriter(&b, 0, 8, ColumnPadding, ' ', 0)
	writeLine(w, t.Headers)
	for _, row := range t.Rows {
		writeLine(w, row)
	}
	_ = w.Flush()
	return b.String()
}

func writeLine(w *tabwriter.TabWriter, cells []string) {
	_, _ = fmt.Fprintln(w, strings.Join(cells, "\t"))
}

func (t *Table) records() []*orderedmap.OrderedMap {
	l := make([]*orderedmap.OrderedMap, len(t.Rows))
	for i, row := range t.Rows {
		m := newOrderedMap()
		for j, header := range t.Headers {
			m.Set(header, row[j])
		}
		l[i] = m
	}
	return l
}

// MarshalJSON renders the table as a list of objects keyed by header, in
// column order.
func (t *Table) MarshalJSON() ([]byte, error) {
	return marshalJSON(t.records(), "")
}

// MarshalYAML renders the table as a sequence of mappings keyed by header,
// in column order.
func (t *Table) MarshalYAML() (interface{}, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range t.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for j, header := range t.Headers {
			m.Content = append(m.Content, scalar(header), scalar(row[j]))
		}
		seq.Content = append(seq.Content, m)
	}
	return seq, nil
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
