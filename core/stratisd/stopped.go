package stratisd

import (
	"sort"

	"github.com/godbus/dbus/v5"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/props"
)

type (
	// StoppedPool is an entry of the StoppedPools manager property.
	StoppedPool struct {
		UUID string

		// Name is unset for pools whose metadata does not record a name.
		Name props.Value

		Devices []StoppedDevice

		// KeyDescription and Clevis are nil when the pool is not encrypted.
		KeyDescription *props.Encryption
		Clevis         *props.Encryption

		// MetadataVersion is an Ok uint64 when known.
		MetadataVersion props.Value
	}

	// StoppedDevice is a member device of a stopped pool.
	StoppedDevice struct {
		UUID    string
		Devnode string
	}
)

// MetadataV1 is the legacy metadata version, using fixed token slots
// per unlock method.
const MetadataV1 = 1

// DecodeStoppedPools decodes the a{sa{sv}} StoppedPools property. Members
// of unexpected type are decoded as failure markers or skipped.
func DecodeStoppedPools(v any) (map[string]StoppedPool, error) {
	m, ok := v.(map[string]map[string]dbus.Variant)
	if !ok {
		return nil, clierr.Internalf("StoppedPools: unexpected property type %T", v)
	}
	pools := make(map[string]StoppedPool, len(m))
	for uuid, info := range m {
		pools[uuid] = decodeStoppedPool(uuid, info)
	}
	return pools, nil
}

func decodeStoppedPool(uuid string, info map[string]dbus.Variant) StoppedPool {
	table := props.Table(info)
	p := StoppedPool{
		UUID:            uuid,
		Name:            table.String("name"),
		MetadataVersion: props.Unobtainable("metadata_version is absent"),
	}
	if variant, ok := info["devs"]; ok {
		p.Devices = decodeStoppedDevices(variant.Value())
	}
	if variant, ok := info["key_description"]; ok {
		if enc, ok := props.DecodeEncryption(variant.Value(), func(v any) (any, bool) { return props.AsString(v) }); ok {
			p.KeyDescription = &enc
		}
	}
	if variant, ok := info["clevis_info"]; ok {
		if enc, ok := props.DecodeEncryption(variant.Value(), props.DecodeClevis); ok {
			p.Clevis = &enc
		}
	}
	if variant, ok := info["metadata_version"]; ok {
		valid, inner, ok := props.AsMaybe(variant.Value())
		version, isUint := props.AsUint64(inner)
		switch {
		case !ok || (valid && !isUint):
			p.MetadataVersion = props.Uninterpretable("metadata_version has unexpected type")
		case valid:
			p.MetadataVersion = props.Ok(version)
		}
	}
	return p
}

func decodeStoppedDevices(v any) []StoppedDevice {
	l, ok := v.([]map[string]dbus.Variant)
	if !ok {
		return nil
	}
	devices := make([]StoppedDevice, 0, len(l))
	for _, m := range l {
		var dev StoppedDevice
		if variant, ok := m["uuid"]; ok {
			dev.UUID, _ = props.AsString(variant.Value())
		}
		if variant, ok := m["devnode"]; ok {
			dev.Devnode, _ = props.AsString(variant.Value())
		}
		devices = append(devices, dev)
	}
	return devices
}

// SortedStoppedPools returns the stopped pools ordered by uuid.
func SortedStoppedPools(m map[string]StoppedPool) []StoppedPool {
	l := make([]StoppedPool, 0, len(m))
	for _, p := range m {
		l = append(l, p)
	}
	sort.Slice(l, func(i, j int) bool { return l[i].UUID < l[j].UUID })
	return l
}
