package objects

import (
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"

	"github.com/opensvc/stratis/core/clierr"
)

// ID designates a resource by name or by uuid. Exactly one is set.
type ID struct {
	name string
	uuid string
}

// NewName returns a name identifier.
func NewName(name string) ID {
	return ID{name: name}
}

// NewUUID parses a hyphenated or unhyphenated uuid and returns an
// identifier holding its canonical unhyphenated form.
func NewUUID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, clierr.Validationf("invalid uuid %q: %s", s, err)
	}
	return ID{uuid: Unhyphenate(u)}, nil
}

// Unhyphenate returns the stratisd representation of u.
func Unhyphenate(u uuid.UUID) string {
	return strings.ReplaceAll(u.String(), "-", "")
}

// IsUUID is true if the identifier is a uuid.
func (t ID) IsUUID() bool {
	return t.uuid != ""
}

// Value returns the name or the unhyphenated uuid.
func (t ID) Value() string {
	if t.IsUUID() {
		return t.uuid
	}
	return t.name
}

func (t ID) String() string {
	if t.IsUUID() {
		return "UUID " + t.uuid
	}
	return "name " + t.name
}

func (t ID) matches(o Object) bool {
	if t.IsUUID() {
		return o.UUID() == t.uuid
	}
	return o.Name() == t.name
}

// Resolve returns the object of kind designated by id, restricted to the
// objects of the parent pool when parent is not empty.
func (t Map) Resolve(kind string, id ID, parent dbus.ObjectPath) (Object, error) {
	candidates := t.Search(kind)
	if parent != "" {
		candidates = candidates.InPool(parent)
	}
	matches := make(Objects, 0)
	for _, o := range candidates {
		if !id.matches(o) {
			continue
		}
		if id.IsUUID() {
			return o, nil
		}
		matches = append(matches, o)
	}
	switch len(matches) {
	case 0:
		return Object{}, &clierr.ResourceNotFoundError{Kind: kind, ID: id.String()}
	case 1:
		return matches[0], nil
	default:
		paths := make([]string, len(matches))
		for i, o := range matches {
			paths[i] = string(o.Path)
		}
		return Object{}, &clierr.AmbiguousResourceError{Kind: kind, ID: id.String(), Paths: paths}
	}
}

// ResolvePool is Resolve for a pool.
func (t Map) ResolvePool(id ID) (Object, error) {
	return t.Resolve(KindPool, id, "")
}

// ResolveFilesystem resolves a filesystem by name in the named pool.
func (t Map) ResolveFilesystem(poolName, fsName string) (Object, Object, error) {
	pool, err := t.ResolvePool(NewName(poolName))
	if err != nil {
		return Object{}, Object{}, err
	}
	fs, err := t.Resolve(KindFilesystem, NewName(fsName), pool.Path)
	if err != nil {
		return Object{}, Object{}, err
	}
	return pool, fs, nil
}

// UUIDFormatter returns a function formatting the unhyphenated uuids
// stratisd reports, hyphenated unless unhyphenated is set. Unparsable
// values are returned as is.
func UUIDFormatter(unhyphenated bool) func(string) string {
	if unhyphenated {
		return func(s string) string { return s }
	}
	return func(s string) string {
		u, err := uuid.Parse(s)
		if err != nil {
			return s
		}
		return u.String()
	}
}

// FormatUUIDs formats a list of uuids with f.
func FormatUUIDs(l []string, f func(string) string) string {
	formatted := make([]string, len(l))
	for i, s := range l {
		formatted[i] = f(s)
	}
	return strings.Join(formatted, ", ")
}
