package props

import (
	"encoding/json"
	"fmt"

	"github.com/godbus/dbus/v5"
)

type (
	// Table is the property set of one interface of a remote object, as
	// found in the managed object map.
	Table map[string]dbus.Variant

	// Encryption is the decoded (b(b<T>)) value of an encryption property:
	// a consistency flag, then a presence flag and the value.
	Encryption struct {
		Consistent bool
		Present    bool
		Value      any
		Error      string
	}

	// Clevis is a clevis pin and its configuration.
	Clevis struct {
		Pin    string
		Config map[string]any
	}
)

func (t Table) lookup(name string) (any, Value, bool) {
	variant, ok := t[name]
	if !ok {
		return nil, Unobtainable(fmt.Sprintf("property %s is absent", name)), false
	}
	return variant.Value(), Value{}, true
}

func mismatch(name string, v any) Value {
	return Uninterpretable(fmt.Sprintf("property %s has unexpected type %T", name, v))
}

// Bool decodes a b property.
func (t Table) Bool(name string) Value {
	v, failure, ok := t.lookup(name)
	if !ok {
		return failure
	}
	if b, ok := AsBool(v); ok {
		return Ok(b)
	}
	return mismatch(name, v)
}

// String decodes a s property.
func (t Table) String(name string) Value {
	v, failure, ok := t.lookup(name)
	if !ok {
		return failure
	}
	if s, ok := AsString(v); ok {
		return Ok(s)
	}
	return mismatch(name, v)
}

// Uint16 decodes a q property.
func (t Table) Uint16(name string) Value {
	v, failure, ok := t.lookup(name)
	if !ok {
		return failure
	}
	if i, ok := AsUint16(v); ok {
		return Ok(i)
	}
	return mismatch(name, v)
}

// Uint64 decodes a t property.
func (t Table) Uint64(name string) Value {
	v, failure, ok := t.lookup(name)
	if !ok {
		return failure
	}
	if i, ok := AsUint64(v); ok {
		return Ok(i)
	}
	return mismatch(name, v)
}

// ObjectPath decodes a o property.
func (t Table) ObjectPath(name string) Value {
	v, failure, ok := t.lookup(name)
	if !ok {
		return failure
	}
	if p, ok := AsObjectPath(v); ok {
		return Ok(p)
	}
	return mismatch(name, v)
}

// Bytes decodes a s property holding a decimal bytes count as *big.Int.
func (t Table) Bytes(name string) Value {
	v, failure, ok := t.lookup(name)
	if !ok {
		return failure
	}
	if i, ok := AsBytes(v); ok {
		return Ok(i)
	}
	return mismatch(name, v)
}

// MaybeString decodes a (bs) property. An unset flag is Unobtainable.
func (t Table) MaybeString(name string) Value {
	v, failure, ok := t.lookup(name)
	if !ok {
		return failure
	}
	valid, inner, ok := AsMaybe(v)
	if !ok {
		return mismatch(name, v)
	}
	if !valid {
		return Unobtainable(fmt.Sprintf("property %s is not set", name))
	}
	if s, ok := AsString(inner); ok {
		return Ok(s)
	}
	return mismatch(name, v)
}

// MaybeBool decodes a (bb) property. An unset flag is Uninterpretable: the
// daemon could not determine the value.
func (t Table) MaybeBool(name string) Value {
	v, failure, ok := t.lookup(name)
	if !ok {
		return failure
	}
	valid, inner, ok := AsMaybe(v)
	if !ok {
		return mismatch(name, v)
	}
	if !valid {
		return Uninterpretable(fmt.Sprintf("property %s is not determined", name))
	}
	if b, ok := AsBool(inner); ok {
		return Ok(b)
	}
	return mismatch(name, v)
}

// MaybeBytes decodes a (bs) property holding a decimal bytes count.
// An unset flag is Unobtainable.
func (t Table) MaybeBytes(name string) Value {
	v, failure, ok := t.lookup(name)
	if !ok {
		return failure
	}
	valid, inner, ok := AsMaybe(v)
	if !ok {
		return mismatch(name, v)
	}
	if !valid {
		return Unobtainable(fmt.Sprintf("property %s is not set", name))
	}
	if i, ok := AsBytes(inner); ok {
		return Ok(i)
	}
	return mismatch(name, v)
}

// KeyDescription decodes the (b(bs)) key description property.
func (t Table) KeyDescription(name string) Value {
	v, failure, ok := t.lookup(name)
	if !ok {
		return failure
	}
	enc, ok := DecodeEncryption(v, func(inner any) (any, bool) {
		return AsString(inner)
	})
	if !ok {
		return mismatch(name, v)
	}
	return Ok(enc)
}

// ClevisInfo decodes the (b(b(ss))) clevis info property.
func (t Table) ClevisInfo(name string) Value {
	v, failure, ok := t.lookup(name)
	if !ok {
		return failure
	}
	enc, ok := DecodeEncryption(v, DecodeClevis)
	if !ok {
		return mismatch(name, v)
	}
	return Ok(enc)
}

// DecodeEncryption decodes a (b(b<T>)) value, using f to decode <T>.
// When the consistency flag is unset, the second member is an error message.
func DecodeEncryption(v any, f func(any) (any, bool)) (Encryption, bool) {
	consistent, inner, ok := AsMaybe(v)
	if !ok {
		return Encryption{}, false
	}
	if !consistent {
		msg, _ := AsString(inner)
		return Encryption{Error: msg}, true
	}
	present, value, ok := AsMaybe(inner)
	if !ok {
		return Encryption{}, false
	}
	enc := Encryption{Consistent: true, Present: present}
	if !present {
		return enc, true
	}
	if enc.Value, ok = f(value); !ok {
		return Encryption{}, false
	}
	return enc, true
}

// DecodeClevis decodes a (ss) clevis pin and json configuration.
func DecodeClevis(v any) (any, bool) {
	l, ok := AsStruct(v, 2)
	if !ok {
		return nil, false
	}
	pin, ok := AsString(l[0])
	if !ok {
		return nil, false
	}
	s, ok := AsString(l[1])
	if !ok {
		return nil, false
	}
	config := make(map[string]any)
	if err := json.Unmarshal([]byte(s), &config); err != nil {
		return nil, false
	}
	return Clevis{Pin: pin, Config: config}, true
}
