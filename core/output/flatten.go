package output

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/opensvc/stratis/util/render/palette"
)

type kv struct {
	k string
	v string
}

func flatten(value any, key *bytes.Buffer, flattened map[string]string) {
	switch v := value.(type) {
	case nil:
		flattened[key.String()] = "null"
	case map[string]any:
		n := key.Len()
		for k, e := range v {
			if key.Len() > 0 {
				key.WriteByte('.')
			}
			if strings.ContainsAny(k, ". /") || hasDigitPrefix(k) {
				key.WriteString(strconv.Quote(k))
			} else {
				key.WriteString(k)
			}
			flatten(e, key, flattened)
			key.Truncate(n)
		}
	case []any:
		n := key.Len()
		for i, e := range v {
			key.WriteByte('[')
			key.WriteString(strconv.Itoa(i))
			key.WriteByte(']')
			flatten(e, key, flattened)
			key.Truncate(n)
		}
	case string:
		flattened[key.String()] = strconv.Quote(v)
	case bool:
		flattened[key.String()] = strconv.FormatBool(v)
	case json.Number:
		flattened[key.String()] = v.String()
	case float64:
		flattened[key.String()] = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		if b, err := json.Marshal(v); err == nil {
			flattened[key.String()] = string(b)
		}
	}
}

// Flatten accepts a decoded json document and returns a map of leaf values
// keyed like a."b c".d[0].e
func Flatten(value any) map[string]string {
	flattened := make(map[string]string)
	var b bytes.Buffer
	flatten(value, &b, flattened)
	return flattened
}

func flatData(b []byte) ([]kv, error) {
	var data any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	flattened := Flatten(data)
	l := make([]kv, 0, len(flattened))
	for k, v := range flattened {
		l = append(l, kv{k: k, v: v})
	}
	sort.Slice(l, func(i, j int) bool { return l[i].k < l[j].k })
	return l, nil
}

// SprintFlat accepts a json document and returns the sorted "key = val"
// lines. Keys are colorized if colorize is not nil.
func SprintFlat(b []byte, colorize *palette.ColorPaletteFunc) (string, error) {
	l, err := flatData(b)
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	for _, e := range l {
		if colorize != nil {
			buf.WriteString(colorize.Primary(e.k + " ="))
		} else {
			buf.WriteString(e.k + " =")
		}
		buf.WriteString(" " + e.v + "\n")
	}
	return buf.String(), nil
}

func hasDigitPrefix(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
