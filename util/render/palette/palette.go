package palette

import "github.com/fatih/color"

// The color names as string, usable in configuration files.
const (
	DefaultPrimary   = "hiblue"
	DefaultSecondary = "hiblack"
	DefaultOptimal   = "green"
	DefaultError     = "red"
	DefaultWarning   = "yellow"
)

type (
	// StringPalette declares the color (as string) to use for each role.
	StringPalette struct {
		Primary   string
		Secondary string
		Optimal   string
		Error     string
		Warning   string
	}

	// ColorPalette declares the color attribute to use for each role.
	ColorPalette struct {
		Primary   color.Attribute
		Secondary color.Attribute
		Optimal   color.Attribute
		Error     color.Attribute
		Warning   color.Attribute
		Bold      color.Attribute
	}

	// ColorPaletteFunc exposes a Sprint function for each role.
	ColorPaletteFunc struct {
		Primary   func(a ...interface{}) string
		Secondary func(a ...interface{}) string
		Optimal   func(a ...interface{}) string
		Error     func(a ...interface{}) string
		Warning   func(a ...interface{}) string
		Bold      func(a ...interface{}) string
	}
)

func toFgColor(s string) color.Attribute {
	switch s {
	case "black":
		return color.FgBlack
	case "red":
		return color.FgRed
	case "green":
		return color.FgGreen
	case "yellow":
		return color.FgYellow
	case "blue":
		return color.FgBlue
	case "magenta":
		return color.FgMagenta
	case "cyan":
		return color.FgCyan
	case "white":
		return color.FgWhite
	case "hiblack":
		return color.FgHiBlack
	case "hired":
		return color.FgHiRed
	case "higreen":
		return color.FgHiGreen
	case "hiyellow":
		return color.FgHiYellow
	case "hiblue":
		return color.FgHiBlue
	case "himagenta":
		return color.FgHiMagenta
	case "hicyan":
		return color.FgHiCyan
	case "hiwhite":
		return color.FgHiWhite
	default:
		return color.Reset
	}
}

// New returns a color palette from a string color palette.
func New(m StringPalette) ColorPalette {
	r := ColorPalette{}
	r.Primary = toFgColor(m.Primary)
	r.Secondary = toFgColor(m.Secondary)
	r.Optimal = toFgColor(m.Optimal)
	r.Error = toFgColor(m.Error)
	r.Warning = toFgColor(m.Warning)
	r.Bold = color.Bold
	return r
}

// Funcs returns the Sprint functions of the palette colors.
func (t ColorPalette) Funcs() *ColorPaletteFunc {
	return &ColorPaletteFunc{
		Primary:   color.New(t.Primary).SprintFunc(),
		Secondary: color.New(t.Secondary).SprintFunc(),
		Optimal:   color.New(t.Optimal).SprintFunc(),
		Error:     color.New(t.Error).SprintFunc(),
		Warning:   color.New(t.Warning).SprintFunc(),
		Bold:      color.New(t.Bold).SprintFunc(),
	}
}

// DefaultPalette returns the palette used when no STRATIS_PALETTE_* override is set.
func DefaultPalette() StringPalette {
	return StringPalette{
		Primary:   DefaultPrimary,
		Secondary: DefaultSecondary,
		Optimal:   DefaultOptimal,
		Error:     DefaultError,
		Warning:   DefaultWarning,
	}
}

// DefaultFuncPalette returns the Sprint functions of the default palette.
func DefaultFuncPalette() *ColorPaletteFunc {
	return New(DefaultPalette()).Funcs()
}
