// Package render hosts the helpers shared by the human output renderers.
package render

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// SetColor sets the fatih/color global switch from a --color flag value.
//
//	"yes" forces colors
//	"no" disables colors
//	"auto" (or anything else) enables colors if stdout is a terminal
func SetColor(s string) {
	switch s {
	case "yes":
		color.NoColor = false
	case "no":
		color.NoColor = true
	default:
		fd := os.Stdout.Fd()
		color.NoColor = os.Getenv("TERM") == "dumb" || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	}
}
