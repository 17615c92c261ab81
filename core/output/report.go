package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidReport is returned when a daemon report is not a single json
// document.
var ErrInvalidReport = errors.New("invalid report document")

// Report is a json document returned by the daemon, re-serialized for
// display.
type Report struct {
	// Doc is the json document as returned by the daemon.
	Doc string

	// SortKeys orders the object keys. When unset, the daemon key order is
	// preserved.
	SortKeys bool
}

// Decode returns the document decoded as generic data, preserving the key
// order in ordered maps unless SortKeys is set. Numbers are kept as
// json.Number, so their text is preserved in both modes.
func (t Report) Decode() (any, error) {
	dec := json.NewDecoder(strings.NewReader(t.Doc))
	dec.UseNumber()
	var (
		v   any
		err error
	)
	if t.SortKeys {
		err = dec.Decode(&v)
	} else {
		v, err = decodeOrdered(dec)
	}
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after the document", ErrInvalidReport)
	}
	return v, nil
}

// decodeOrdered decodes the next value of dec, json objects as ordered maps.
func decodeOrdered(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		m := newOrderedMap()
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			k, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("%w: object key %v is not a string", ErrInvalidReport, tok)
			}
			v, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			m.Set(k, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return m, nil
	case '[':
		l := make([]any, 0)
		for dec.More() {
			v, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			l = append(l, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, fmt.Errorf("%w: unexpected %s", ErrInvalidReport, delim)
	}
}

// Format returns the document indented by 4 spaces.
func (t Report) Format() (string, error) {
	v, err := t.Decode()
	if err != nil {
		return "", err
	}
	b, err := marshalJSON(v, indent)
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

// Compact returns the document on a single line.
func (t Report) Compact() (string, error) {
	v, err := t.Decode()
	if err != nil {
		return "", err
	}
	b, err := marshalJSON(v, "")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

// Render implements the human rendering.
func (t Report) Render() string {
	s, err := t.Format()
	if err != nil {
		return t.Doc + "\n"
	}
	return s
}

// MarshalJSON returns the decoded document, so the key order policy
// applies to the json output too.
func (t Report) MarshalJSON() ([]byte, error) {
	v, err := t.Decode()
	if err != nil {
		return nil, err
	}
	return marshalJSON(v, "")
}

// MarshalYAML returns the document as a yaml node tree, so the key order
// policy applies to the yaml output too.
func (t Report) MarshalYAML() (interface{}, error) {
	v, err := t.Decode()
	if err != nil {
		return nil, err
	}
	return yamlNode(v), nil
}
