package output

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/opensvc/stratis/util/render/tree"
)

const detailIndent = "    "

type (
	// Detail is an ordered labeled document describing one object.
	//
	// Compact rendering:
	//
	//	UUID: 3f2a...
	//	Alerts: 1
	//	    WS001: All devices fully allocated
	//
	// Pretty rendering draws the same document as a tree.
	Detail struct {
		Pretty  bool
		entries []*Entry
	}

	// Entry is a labeled value of a Detail, possibly with nested entries.
	// An entry with no label is a free text line.
	Entry struct {
		Label    string
		Value    string
		children []*Entry
	}
)

// NewDetail returns an empty document.
func NewDetail() *Detail {
	return &Detail{}
}

// Add appends a labeled value and returns it, so nested entries can be
// added to it.
func (t *Detail) Add(label, value string) *Entry {
	e := &Entry{Label: label, Value: value}
	t.entries = append(t.entries, e)
	return e
}

// Add appends a nested labeled value and returns it.
func (t *Entry) Add(label, value string) *Entry {
	e := &Entry{Label: label, Value: value}
	t.children = append(t.children, e)
	return e
}

// Line appends a nested free text line.
func (t *Entry) Line(text string) {
	t.children = append(t.children, &Entry{Value: text})
}

// Render returns the compact or the pretty rendering, depending on Pretty.
func (t *Detail) Render() string {
	if t.Pretty {
		return t.renderTree()
	}
	var b strings.Builder
	for _, e := range t.entries {
		e.render(&b, "")
	}
	return b.String()
}

func (t *Entry) render(b *strings.Builder, prefix string) {
	b.WriteString(prefix)
	switch {
	case t.Label == "":
		b.WriteString(t.Value)
	case t.Value == "":
		b.WriteString(t.Label + ":")
	default:
		b.WriteString(t.Label + ": " + t.Value)
	}
	b.WriteString("\n")
	for _, child := range t.children {
		child.render(b, prefix+detailIndent)
	}
}

func (t *Detail) renderTree() string {
	tr := tree.New()
	for _, e := range t.entries {
		e.loadTree(tr.AddNode())
	}
	return tr.Render()
}

func (t *Entry) loadTree(n *tree.Node) {
	if t.Label == "" {
		n.AddColumn().AddText(t.Value)
	} else {
		n.AddColumn().AddText(t.Label).SetColor(color.Bold)
		n.AddColumn().AddText(t.Value)
	}
	for _, child := range t.children {
		child.loadTree(n.AddNode())
	}
}

// data returns the entries as an ordered map. Entries with nested entries
// become objects whose "value" key holds the entry value, free text lines
// become a "lines" list.
func data(entries []*Entry, value string) *orderedmap.OrderedMap {
	m := newOrderedMap()
	if value != "" {
		m.Set("value", value)
	}
	var lines []string
	for _, e := range entries {
		switch {
		case e.Label == "":
			lines = append(lines, e.Value)
		case len(e.children) == 0:
			m.Set(e.Label, e.Value)
		default:
			m.Set(e.Label, data(e.children, e.Value))
		}
	}
	if lines != nil {
		m.Set("lines", lines)
	}
	return m
}

// MarshalJSON renders the document as an object in entry order.
func (t *Detail) MarshalJSON() ([]byte, error) {
	return marshalJSON(data(t.entries, ""), "")
}

// MarshalYAML renders the document as a mapping in entry order.
func (t *Detail) MarshalYAML() (interface{}, error) {
	return yamlNode(data(t.entries, "")), nil
}

func yamlNode(v any) *yaml.Node {
	switch o := v.(type) {
	case *orderedmap.OrderedMap:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range o.Keys() {
			value, _ := o.Get(k)
			n.Content = append(n.Content, scalar(k), yamlNode(value))
		}
		return n
	case orderedmap.OrderedMap:
		return yamlNode(&o)
	case []string:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, s := range o {
			n.Content = append(n.Content, scalar(s))
		}
		return n
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range o {
			n.Content = append(n.Content, yamlNode(e))
		}
		return n
	case string:
		return scalar(o)
	case map[string]any:
		keys := make([]string, 0, len(o))
		for k := range o {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range keys {
			n.Content = append(n.Content, scalar(k), yamlNode(o[k]))
		}
		return n
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(o.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: o.String()}
	default:
		n := &yaml.Node{}
		_ = n.Encode(v)
		return n
	}
}
