package props

import (
	"math/big"

	"github.com/godbus/dbus/v5"

	"github.com/opensvc/stratis/util/sizeconv"
)

// godbus decodes D-Bus structs as []interface{} and basic arrays as typed
// slices. These helpers assert such shapes, returning false on mismatch.

func AsStruct(v any, n int) ([]any, bool) {
	l, ok := v.([]any)
	if !ok || len(l) != n {
		return nil, false
	}
	return l, true
}

func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func AsUint16(v any) (uint16, bool) {
	i, ok := v.(uint16)
	return i, ok
}

func AsUint64(v any) (uint64, bool) {
	i, ok := v.(uint64)
	return i, ok
}

func AsObjectPath(v any) (dbus.ObjectPath, bool) {
	p, ok := v.(dbus.ObjectPath)
	return p, ok
}

func AsObjectPaths(v any) ([]dbus.ObjectPath, bool) {
	switch l := v.(type) {
	case []dbus.ObjectPath:
		return l, true
	case []any:
		paths := make([]dbus.ObjectPath, len(l))
		for i, e := range l {
			p, ok := e.(dbus.ObjectPath)
			if !ok {
				return nil, false
			}
			paths[i] = p
		}
		return paths, true
	default:
		return nil, false
	}
}

func AsStrings(v any) ([]string, bool) {
	switch l := v.(type) {
	case []string:
		return l, true
	case []any:
		ss := make([]string, len(l))
		for i, e := range l {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			ss[i] = s
		}
		return ss, true
	default:
		return nil, false
	}
}

// AsMaybe decodes the (b<T>) stratisd idiom: a validity flag and a value
// meaningful only when the flag is set.
func AsMaybe(v any) (bool, any, bool) {
	l, ok := AsStruct(v, 2)
	if !ok {
		return false, nil, false
	}
	valid, ok := AsBool(l[0])
	if !ok {
		return false, nil, false
	}
	return valid, l[1], true
}

// AsBytes decodes a decimal string of bytes count.
func AsBytes(v any) (*big.Int, bool) {
	s, ok := AsString(v)
	if !ok {
		return nil, false
	}
	i, err := sizeconv.ParseBytes(s)
	if err != nil {
		return nil, false
	}
	return i, true
}
