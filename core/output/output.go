package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Type encodes as an integer one of the supported output formats
// (human, json, yaml, flat)
type Type int

const (
	// Human encodes the prefered human friendly output format
	Human Type = iota
	// JSON encodes the json output format
	JSON
	// YAML encodes the yaml output format
	YAML
	// Flat encodes the flattened json output format (a.b[0].c = d)
	Flat
)

var toString = map[Type]string{
	Human: "human",
	JSON:  "json",
	YAML:  "yaml",
	Flat:  "flat",
}

var toID = map[string]Type{
	"human": Human,
	"json":  JSON,
	"yaml":  YAML,
	"flat":  Flat,
}

func (t Type) String() string {
	return toString[t]
}

// New returns the integer value of the output format
func New(s string) Type {
	return toID[s]
}

// Parse returns the output format named s, or an error listing the
// supported formats.
func Parse(s string) (Type, error) {
	if t, ok := toID[s]; ok {
		return t, nil
	}
	return Human, fmt.Errorf("invalid output format %q: use one of %s", s, strings.Join(Names(), ", "))
}

// Names returns the sorted names of the supported output formats.
func Names() []string {
	l := make([]string, 0, len(toID))
	for s := range toID {
		l = append(l, s)
	}
	sort.Strings(l)
	return l
}

// MarshalJSON marshals the enum as a quoted json string
func (t Type) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(toString[t])
	buffer.WriteString(`"`)
	return buffer.Bytes(), nil
}

// UnmarshalJSON unmashals a quoted json string to the enum value
func (t *Type) UnmarshalJSON(b []byte) error {
	var j string
	err := json.Unmarshal(b, &j)
	if err != nil {
		return err
	}
	*t = toID[j]
	return nil
}
