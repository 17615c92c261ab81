package stratisd

import (
	"github.com/godbus/dbus/v5"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/props"
)

// result checks a (payload, q, s) reply and returns the payload. A nonzero
// return code is a DaemonReportedError and the payload is discarded.
func result(method string, body []any) (any, error) {
	if len(body) != 3 {
		return nil, clierr.Internalf("%s: unexpected reply length %d", method, len(body))
	}
	rc, msg, err := status(method, body[1:])
	if err != nil {
		return nil, err
	}
	if rc != OK {
		return nil, &clierr.DaemonReportedError{Code: uint16(rc), Message: msg}
	}
	return body[0], nil
}

// status decodes a (q, s) pair.
func status(method string, body []any) (ReturnCode, string, error) {
	if len(body) != 2 {
		return 0, "", clierr.Internalf("%s: unexpected status length %d", method, len(body))
	}
	rc, ok := props.AsUint16(body[0])
	if !ok {
		return 0, "", clierr.Internalf("%s: unexpected return code type %T", method, body[0])
	}
	msg, ok := props.AsString(body[1])
	if !ok {
		return 0, "", clierr.Internalf("%s: unexpected message type %T", method, body[1])
	}
	return ReturnCode(rc), msg, nil
}

func shapeError(method string, v any) error {
	return clierr.Internalf("%s: unexpected payload %#v", method, v)
}

func decodeBool(method string, v any) (bool, error) {
	b, ok := props.AsBool(v)
	if !ok {
		return false, shapeError(method, v)
	}
	return b, nil
}

func decodeString(method string, v any) (string, error) {
	s, ok := props.AsString(v)
	if !ok {
		return "", shapeError(method, v)
	}
	return s, nil
}

// decodeChanged decodes the (b<T>) payload of mutating methods.
func decodeChanged(method string, v any) (bool, any, error) {
	l, ok := props.AsStruct(v, 2)
	if !ok {
		return false, nil, shapeError(method, v)
	}
	changed, ok := props.AsBool(l[0])
	if !ok {
		return false, nil, shapeError(method, v)
	}
	return changed, l[1], nil
}

func decodeObjectPaths(method string, v any) ([]dbus.ObjectPath, error) {
	paths, ok := props.AsObjectPaths(v)
	if !ok {
		return nil, shapeError(method, v)
	}
	return paths, nil
}
