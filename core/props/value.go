// Package props decodes the loosely typed D-Bus property values of stratisd
// objects into sum-typed values.
//
// A Value is either Ok, holding a decoded Go value, or one of two failure
// kinds rendered with distinct sentinels:
//
//	Unobtainable     the daemon could not provide the value, or the property is absent
//	Uninterpretable  the value has a D-Bus type this client can not decode
package props

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	// FailureString is the rendering of an unobtainable value.
	FailureString = "FAILURE"

	// UnknownString is the rendering of an uninterpretable value.
	UnknownString = "???"
)

type (
	// Kind is the discriminant of a Value.
	Kind int

	// Value is a decoded property value or a failure marker.
	Value struct {
		kind   Kind
		v      any
		reason string
	}
)

const (
	KindOk Kind = iota
	KindUnobtainable
	KindUninterpretable
)

var kindToString = map[Kind]string{
	KindOk:              "ok",
	KindUnobtainable:    "unobtainable",
	KindUninterpretable: "uninterpretable",
}

func (t Kind) String() string {
	return kindToString[t]
}

// Ok returns a Value holding v.
func Ok(v any) Value {
	return Value{kind: KindOk, v: v}
}

// Unobtainable returns a Value the daemon could not provide.
func Unobtainable(reason string) Value {
	return Value{kind: KindUnobtainable, reason: reason}
}

// Uninterpretable returns a Value whose type is not decodable.
func Uninterpretable(reason string) Value {
	return Value{kind: KindUninterpretable, reason: reason}
}

// Kind returns the discriminant of the value.
func (t Value) Kind() Kind {
	return t.kind
}

// IsOk returns true if the value holds a decoded Go value.
func (t Value) IsOk() bool {
	return t.kind == KindOk
}

// Get returns the decoded value and true, or nil and false.
func (t Value) Get() (any, bool) {
	if t.kind != KindOk {
		return nil, false
	}
	return t.v, true
}

// Reason returns the explanation of a failure marker.
func (t Value) Reason() string {
	return t.reason
}

// Render returns the sentinel of a failure marker, or f applied to the
// decoded value.
func (t Value) Render(f func(any) string) string {
	if t.kind == KindOk {
		return f(t.v)
	}
	s := t.sentinel()
	log.Debug().Str("kind", t.kind.String()).Str("reason", t.Reason()).Msgf("render %s", s)
	return s
}

// sentinel returns the rendering of a failure marker, or the empty string
// for an Ok value.
func (t Value) sentinel() string {
	switch t.kind {
	case KindOk:
		return ""
	case KindUnobtainable:
		return FailureString
	default:
		return UnknownString
	}
}

// String renders the value with the %v verb.
func (t Value) String() string {
	return t.Render(func(v any) string { return fmt.Sprint(v) })
}

// Bool returns the decoded boolean, and false if the value is not an Ok
// boolean.
func (t Value) Bool() (bool, bool) {
	b, ok := t.v.(bool)
	return b, ok && t.kind == KindOk
}
