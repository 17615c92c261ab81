package tree

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestTreeRender(t *testing.T) {
	color.NoColor = true

	t.Run("aligns the columns of sibling nodes", func(t *testing.T) {
		tree := New()
		tree.ForcedWidth = 80
		tree.AddColumn().AddText("pool").SetColor(color.Bold)
		node := tree.AddNode()
		node.AddColumn().AddText("Name")
		node.AddColumn().AddText("p1")
		node = tree.AddNode()
		node.AddColumn().AddText("Cache")
		node.AddColumn().AddText("No")
		expected := "" +
			"pool\n" +
			"├ Name   p1\n" +
			"└ Cache  No\n"
		assert.Equal(t, expected, tree.Render())
	})

	t.Run("loads a decoded json document with sorted keys", func(t *testing.T) {
		tree := New()
		tree.ForcedWidth = 80
		tree.Head().Load(map[string]any{
			"name": "p1",
			"devs": []any{"/dev/vdb", "/dev/vdc"},
		})
		expected := "" +
			"├ devs\n" +
			"│ ├ [0]   /dev/vdb\n" +
			"│ └ [1]   /dev/vdc\n" +
			"└ name    p1\n"
		assert.Equal(t, expected, tree.Render())
	})

	t.Run("wraps long values to the forced width", func(t *testing.T) {
		tree := New()
		tree.ForcedWidth = 20
		node := tree.AddNode()
		node.AddColumn().AddText("key")
		node.AddColumn().AddText("0123456789abcdefghij")
		s := tree.Render()
		assert.Contains(t, s, "└ key")
		for _, line := range splitLines(s) {
			assert.LessOrEqual(t, realLen(line), 20, line)
		}
	})
}

func TestRealLen(t *testing.T) {
	assert.Equal(t, 2, realLen("\x1b[31mup\x1b[0m"))
	assert.Equal(t, 4, realLen("état"))
}

func splitLines(s string) []string {
	lines := make([]string, 0)
	start := 0
	for i, c := range s {
		if c == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return lines
}
