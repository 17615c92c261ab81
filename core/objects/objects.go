// Package objects indexes the stratisd managed object map and locates
// pools, filesystems and block devices in it by name or uuid.
package objects

import (
	"context"
	"sort"

	"github.com/godbus/dbus/v5"

	"github.com/opensvc/stratis/core/props"
	"github.com/opensvc/stratis/core/stratisd"
)

// Resource kinds, also the interface name suffixes.
const (
	KindPool       = "pool"
	KindFilesystem = "filesystem"
	KindBlockdev   = "blockdev"
)

type (
	// Map is a snapshot of the managed objects: object path, then interface
	// name, then property table.
	Map map[dbus.ObjectPath]map[string]props.Table

	// Object is a located object and the property table of the interface it
	// was located by.
	Object struct {
		Path  dbus.ObjectPath
		Props props.Table
	}

	// Objects is a list of Object sorted by path.
	Objects []Object

	// Fetcher is the part of the top object stub used to load the map.
	Fetcher interface {
		GetManagedObjects(ctx context.Context) (map[dbus.ObjectPath]map[string]map[string]dbus.Variant, error)
	}
)

// Fetch loads the managed object map.
func Fetch(ctx context.Context, f Fetcher) (Map, error) {
	m, err := f.GetManagedObjects(ctx)
	if err != nil {
		return nil, err
	}
	return NewMap(m), nil
}

// NewMap converts a raw GetManagedObjects reply.
func NewMap(m map[dbus.ObjectPath]map[string]map[string]dbus.Variant) Map {
	t := make(Map, len(m))
	for path, ifaces := range m {
		tables := make(map[string]props.Table, len(ifaces))
		for iface, properties := range ifaces {
			tables[iface] = props.Table(properties)
		}
		t[path] = tables
	}
	return t
}

// Search returns the objects implementing the interface of kind, sorted
// by path.
func (t Map) Search(kind string) Objects {
	iface := stratisd.Interface(kind)
	l := make(Objects, 0)
	for path, tables := range t {
		if table, ok := tables[iface]; ok {
			l = append(l, Object{Path: path, Props: table})
		}
	}
	sort.Slice(l, func(i, j int) bool { return l[i].Path < l[j].Path })
	return l
}

// Pools returns the pool objects.
func (t Map) Pools() Objects {
	return t.Search(KindPool)
}

// Filesystems returns the filesystem objects.
func (t Map) Filesystems() Objects {
	return t.Search(KindFilesystem)
}

// Blockdevs returns the block device objects.
func (t Map) Blockdevs() Objects {
	return t.Search(KindBlockdev)
}

// InPool returns the objects whose Pool property is pool.
func (t Objects) InPool(pool dbus.ObjectPath) Objects {
	l := make(Objects, 0)
	for _, o := range t {
		if p, ok := o.Props.ObjectPath("Pool").Get(); ok && p == pool {
			l = append(l, o)
		}
	}
	return l
}

// Name returns the Name property, or the empty string.
func (t Object) Name() string {
	return t.stringProp("Name")
}

// UUID returns the Uuid property, or the empty string.
func (t Object) UUID() string {
	return t.stringProp("Uuid")
}

func (t Object) stringProp(name string) string {
	if v, ok := t.Props.String(name).Get(); ok {
		return v.(string)
	}
	return ""
}

// PoolNames returns a pool object path to name index.
func (t Map) PoolNames() map[dbus.ObjectPath]string {
	m := make(map[dbus.ObjectPath]string)
	for _, o := range t.Pools() {
		m[o.Path] = o.Name()
	}
	return m
}
