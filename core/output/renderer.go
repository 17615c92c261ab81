package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/andreazorzetto/yh/highlight"
	"github.com/fatih/color"
	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/opensvc/stratis/util/render"
	"github.com/opensvc/stratis/util/render/palette"
)

type (
	// RenderFunc is the protype of human format renderer functions.
	RenderFunc func() string

	// Renderer hosts the renderer options and data, and exposes the rendering
	// method.
	Renderer struct {
		Output        string
		Color         string
		Data          interface{}
		HumanRenderer RenderFunc
		Colorize      *palette.ColorPaletteFunc
	}

	renderer interface {
		Render() string
	}
)

var (
	indent              = "    "
	regexpJSONKey       = regexp.MustCompile(`(".+":)`)
	regexpJSONErrors    = regexp.MustCompile(`(")(FAILURE|\?\?\?)(")`)
	regexpJSONOptimal   = regexp.MustCompile(`(")(Yes|fully_operational)(")`)
	regexpJSONWarning   = regexp.MustCompile(`(")(no_pool_changes|no_ipc_requests)(")`)
	regexpJSONSecondary = regexp.MustCompile(`(")(None|N/A|unencrypted)(")`)
)

// Sprint returns the string representation of the data in one of the
// supported format (human, json, yaml, flat).
//
// The human format uses the HumanRenderer if set, else the data Render
// method if implemented, else indented json.
func (t Renderer) Sprint() (string, error) {
	format, err := Parse(t.Output)
	if err != nil {
		return "", err
	}
	render.SetColor(t.Color)
	if t.Colorize == nil {
		t.Colorize = palette.DefaultFuncPalette()
	}
	switch data := t.Data.(type) {
	case []string:
		if data == nil {
			// JSON Marshal renders "null" for unallocated empty slices
			t.Data = make([]string, 0)
		}
	}
	switch format {
	case Flat:
		b, err := marshalJSON(t.Data, "")
		if err != nil {
			return "", err
		}
		if color.NoColor {
			return SprintFlat(b, nil)
		}
		return SprintFlat(b, t.Colorize)
	case JSON:
		b, err := marshalJSON(t.Data, indent)
		if err != nil {
			return "", err
		}
		s := string(b) + "\n"
		if color.NoColor {
			return s, nil
		}
		s = regexpJSONKey.ReplaceAllString(s, t.Colorize.Primary("$1"))
		s = regexpJSONErrors.ReplaceAllString(s, "$1"+t.Colorize.Error("$2")+"$3")
		s = regexpJSONOptimal.ReplaceAllString(s, "$1"+t.Colorize.Optimal("$2")+"$3")
		s = regexpJSONWarning.ReplaceAllString(s, "$1"+t.Colorize.Warning("$2")+"$3")
		s = regexpJSONSecondary.ReplaceAllString(s, "$1"+t.Colorize.Secondary("$2")+"$3")
		return s, nil
	case YAML:
		b := bytes.NewBuffer(nil)
		enc := yaml.NewEncoder(b)
		enc.SetIndent(2)
		if err := enc.Encode(t.Data); err != nil {
			return "", err
		}
		if err := enc.Close(); err != nil {
			return "", err
		}
		if color.NoColor {
			return b.String(), nil
		}
		return highlight.Highlight(b)
	default:
		if t.HumanRenderer != nil {
			return t.HumanRenderer(), nil
		}
		if r, ok := t.Data.(renderer); ok {
			return r.Render(), nil
		}
		b, err := marshalJSON(t.Data, indent)
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	}
}

// marshalJSON returns the json encoding of v, indented if indent is not
// empty. The <, > and & characters are not escaped.
func marshalJSON(v any, indent string) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}

// newOrderedMap returns an ordered map not escaping html characters in its
// json encoding.
func newOrderedMap() *orderedmap.OrderedMap {
	m := orderedmap.New()
	m.SetEscapeHTML(false)
	return m
}

// Fprint writes the representation of the data to w.
func (t Renderer) Fprint(w io.Writer) error {
	s, err := t.Sprint()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, s)
	return err
}

// Print prints the representation of the data on stdout.
func (t Renderer) Print() error {
	return t.Fprint(os.Stdout)
}
