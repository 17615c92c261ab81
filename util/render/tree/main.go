package tree

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	lastNode         = "└ "
	nextNode         = "├ "
	contNode         = "│ "
	contLastNode     = "  "
	defaultSeparator = "  "
	prefixLen        = 2
	defaultWidth     = 78
)

const ansi = "[\u001B\u009B][[\\]()#;?]*(?:(?:(?:[a-zA-Z\\d]*(?:;[a-zA-Z\\d]*)*)?\u0007)|(?:(?:\\d{1,4}(?:;\\d{0,4})*)?[\\dA-PRZcf-ntqry=><~]))"

var re = regexp.MustCompile(ansi)

func realLen(s string) int {
	return utf8.RuneCountInString(stripAnsi(s))
}

func stripAnsi(s string) string {
	return re.ReplaceAllString(s, "")
}

type (
	//
	// Tree exposes methods to populate and print a Tree.
	//
	// Example:
	//
	// Tree := tree.New()
	// Tree.AddColumn().AddText("p1").SetColor(color.Bold)
	//
	// node := Tree.AddNode()
	// node.AddColumn().AddText("Cache")
	// node.AddColumn().AddText("No")
	//
	// node = Tree.AddNode()
	// node.AddColumn().AddText("Space Usage")
	// leaf := node.AddNode()
	// leaf.AddColumn().AddText("Size")
	// leaf.AddColumn().AddText("1 GiB")
	//
	Tree struct {
		Separator   string
		ForcedWidth int

		head        Node
		totalWidth  int
		pads        []int
		columnCount int
		depth       int
	}

	// Node exposes methods to add columns.
	Node struct {
		Forest    *Tree
		Parent    *Node
		columns   []*Column
		children  []*Node
		depth     int
		cellCount int
	}

	// TextBlock is a colored and aligned phrase in a column.
	TextBlock struct {
		Text  string
		color color.Attribute
		align Alignment
	}

	// Cell is a colored and aligned cell in a column. Cells are the result
	// of phrases wrapping to respect the column width. The color and alignment
	// are inherited from the origin TextBlock.
	Cell struct {
		Text  string
		color color.Attribute
		align Alignment
	}

	// Column exposes a method to add extra text blocks
	Column struct {
		Text  []*TextBlock
		Cells []*Cell
		index int
		node  *Node
	}

	// Alignment declares alignment constants as integers
	Alignment int
)

const (
	// AlignLeft is the text left alignment constant
	AlignLeft Alignment = iota
	// AlignRight is the text right alignment constant
	AlignRight
)

// New allocates a new tree and returns a reference.
func New() *Tree {
	t := &Tree{
		Separator: defaultSeparator,
	}
	t.head.Forest = t
	return t
}

// Head return the tree head Node reference.
func (t *Tree) Head() *Node {
	return &t.head
}

// AddNode adds and returns a new Node, child of the head node.
func (t *Tree) AddNode() *Node {
	return t.head.AddNode()
}

// AddColumn adds and returns a column to the head node.
// Phrases can be added through the returned Column object.
func (t *Tree) AddColumn() *Column {
	return t.head.AddColumn()
}

// AddNode adds and returns a new Node, child of this node.
func (n *Node) AddNode() *Node {
	newNode := &Node{
		Forest: n.Forest,
		Parent: n,
		depth:  n.depth + 1,
	}
	n.children = append(n.children, newNode)
	if newNode.depth > n.Forest.depth {
		n.Forest.depth = newNode.depth
	}
	return newNode
}

func (t *Tree) setTotalWidth() {
	if t.ForcedWidth > 0 {
		t.totalWidth = t.ForcedWidth
		return
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 4 {
		t.totalWidth = w - 2
	} else {
		t.totalWidth = defaultWidth
	}
}

// Render returns the string representation of the tree.
//
// Each node is considered tabular, with cells content aligned and wrapped
// to fit the terminal width.
func (t *Tree) Render() string {
	t.setTotalWidth()
	t.getPads()
	t.adjustPads()
	t.wrapData()
	var b strings.Builder
	t.renderRecurse(&b, &t.head, 0, make([]bool, 0))
	return b.String()
}

// getPads analyses the text length in data columns and sets the tree pads,
// with no regard to the terminal width constraint.
func (t *Tree) getPads() {
	t.pads = make([]int, t.columnCount)
	t.head.getPads()
}

func (n *Node) getPads() {
	for idx, col := range n.columns {
		for _, fragment := range col.Text {
			fragmentWidth := realLen(fragment.Text) + len(n.Forest.Separator)
			if fragmentWidth > n.Forest.pads[idx] {
				n.Forest.pads[idx] = fragmentWidth
			}
		}
	}
	for _, child := range n.children {
		child.getPads()
	}
}

// adjustPads distributes the terminal width amongst columns, shrinking the
// widest ones first. The first column is never shrunk.
func (t *Tree) adjustPads() {
	if t.columnCount < 2 {
		return
	}
	maxPrefixLen := t.depth * prefixLen
	width := maxPrefixLen
	for _, pad := range t.pads {
		width += pad
	}
	if width <= t.totalWidth {
		return
	}
	avgColumnWidth := t.totalWidth / t.columnCount
	usableWidth := t.totalWidth - maxPrefixLen - t.pads[0]
	oversizedColumnCount := 0
	for _, pad := range t.pads[1:] {
		if pad > avgColumnWidth {
			oversizedColumnCount++
		} else {
			usableWidth -= pad
		}
	}
	if oversizedColumnCount == 0 || usableWidth <= 0 {
		return
	}
	maxWidth := usableWidth / oversizedColumnCount
	for i, pad := range t.pads[1:] {
		if pad > avgColumnWidth {
			t.pads[i+1] = maxWidth
		}
	}
}

// formatPrefix returns the tree markers as a string for a line.
func formatPrefix(lasts []bool, nChildren int, firstLine bool) string {
	if len(lasts) == 0 {
		return ""
	}
	var b strings.Builder
	for _, last := range lasts[:len(lasts)-1] {
		if last {
			b.WriteString(contLastNode)
		} else {
			b.WriteString(contNode)
		}
	}
	last := lasts[len(lasts)-1]
	switch {
	case firstLine && last:
		b.WriteString(lastNode)
	case firstLine:
		b.WriteString(nextNode)
	case nChildren > 0 || !last:
		// node continuation due to wrapping
		b.WriteString(contNode)
	default:
		b.WriteString(contLastNode)
	}
	return b.String()
}

// formatCell returns the table cell, appending the separator, coloring the
// text and applying the padding for alignment.
func formatCell(text string, width int, textColor color.Attribute, align Alignment) string {
	var f string
	width += utf8.RuneCountInString(text) - realLen(text)
	switch align {
	case AlignRight:
		f = fmt.Sprintf("%%%ds", width)
	default:
		f = fmt.Sprintf("%%-%ds", width)
	}
	buff := fmt.Sprintf(f, text)
	if textColor == 0 {
		return buff
	}
	return color.New(textColor).Sprint(buff)
}

// wrappedLines return lines split by the text wrapper wrapping at <width>.
func wrappedLines(text string, width int) []string {
	lines := make([]string, 0)
	if width <= 0 {
		return append(lines, text)
	}
	runes := []rune(text)
	for len(runes) > width {
		lines = append(lines, string(runes[:width]))
		runes = runes[width:]
	}
	return append(lines, string(runes))
}

// wrapData transforms column textblocks into cells
func (t *Tree) wrapData() {
	t.head.wrapData()
}

func (n *Node) wrapData() {
	for i, col := range n.columns {
		col.Cells = col.Cells[:0]
		width := n.Forest.pads[i] - len(n.Forest.Separator)
		for _, fragment := range col.Text {
			for _, line := range wrappedLines(fragment.Text, width) {
				col.Cells = append(col.Cells, &Cell{
					Text:  line,
					color: fragment.color,
					align: fragment.align,
				})
			}
		}
		if len(col.Cells) > n.cellCount {
			n.cellCount = len(col.Cells)
		}
	}
	for _, child := range n.children {
		child.wrapData()
	}
}

// renderRecurse writes the node lines and its children lines to the buffer.
func (t *Tree) renderRecurse(b *strings.Builder, n *Node, depth int, lasts []bool) {
	nChildren := len(n.children)
	for j := 0; j < n.cellCount; j++ {
		var line strings.Builder
		line.WriteString(formatPrefix(lasts, nChildren, j == 0))
		for i, col := range n.columns {
			width := t.pads[i]
			if i == 0 {
				// adjust for col0 alignment shifting due to the prefix
				width += (t.depth - depth) * prefixLen
			}
			cell := &Cell{}
			if j < len(col.Cells) {
				cell = col.Cells[j]
			}
			line.WriteString(formatCell(cell.Text, width, cell.color, cell.align))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteString("\n")
	}
	for i, child := range n.children {
		cLasts := make([]bool, len(lasts), len(lasts)+1)
		copy(cLasts, lasts)
		cLasts = append(cLasts, i == nChildren-1)
		t.renderRecurse(b, child, depth+1, cLasts)
	}
}

// AddText adds a phrase to this column.
func (c *Column) AddText(text string) *TextBlock {
	t := &TextBlock{
		Text: text,
	}
	c.Text = append(c.Text, t)
	return t
}

// SetColor sets the text block color and returns the textBlock ref
// so the caller can chain AddText("").SetColor().SetAlign()
func (t *TextBlock) SetColor(textColor color.Attribute) *TextBlock {
	t.color = textColor
	return t
}

// SetAlign sets the text block alignment and returns the textBlock ref
// so the caller can chain AddText("").SetColor().SetAlign()
func (t *TextBlock) SetAlign(align Alignment) *TextBlock {
	t.align = align
	return t
}

// AddColumn adds and returns a column to the node.
// Phrases can be added through the returned Column object.
func (n *Node) AddColumn() *Column {
	c := &Column{
		node:  n,
		index: len(n.columns),
	}
	n.columns = append(n.columns, c)
	if len(n.columns) > n.Forest.columnCount {
		n.Forest.columnCount = len(n.columns)
	}
	return c
}

// Load loads a decoded json document in the node.
//
// Example dataset:
//
//	{"name": "p1", "devs": ["/dev/vdb", "/dev/vdc"]}
//
// would be rendered as:
//
//	├ devs
//	│ ├ [0]   /dev/vdb
//	│ └ [1]   /dev/vdc
//	└ name    p1
//
// Map keys are sorted.
func (n *Node) Load(data any) {
	switch v := data.(type) {
	case []any:
		for idx, val := range v {
			leaf := n.AddNode()
			leaf.AddColumn().AddText(fmt.Sprintf("[%d]", idx)).SetColor(color.FgHiBlack)
			loadValue(leaf, val)
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			leaf := n.AddNode()
			leaf.AddColumn().AddText(key).SetColor(color.FgHiBlack)
			loadValue(leaf, v[key])
		}
	default:
		n.AddColumn().AddText(fmt.Sprint(data))
	}
}

func loadValue(leaf *Node, val any) {
	switch val.(type) {
	case []any, map[string]any:
		leaf.Load(val)
	case nil:
		leaf.AddColumn().AddText("null")
	default:
		leaf.AddColumn().AddText(fmt.Sprint(val))
	}
}
