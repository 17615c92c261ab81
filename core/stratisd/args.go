package stratisd

import "github.com/godbus/dbus/v5"

// The struct types below are encoded by godbus as D-Bus structs, fields in
// declaration order.
type (
	// OptionalUint32 is (bu).
	OptionalUint32 struct {
		Set   bool
		Value uint32
	}

	// OptionalUint64 is (bt).
	OptionalUint64 struct {
		Set   bool
		Value uint64
	}

	// OptionalString is (bs).
	OptionalString struct {
		Set   bool
		Value string
	}

	// OptionalBool is (bb).
	OptionalBool struct {
		Set   bool
		Value bool
	}

	// OptionalFD is (bh).
	OptionalFD struct {
		Set bool
		FD  dbus.UnixFD
	}

	// UnlockMethod is (b(bu)): unlock or not, and the token slot to use.
	UnlockMethod struct {
		Unlock    bool
		TokenSlot OptionalUint32
	}

	// KeyDescriptionSpec is ((bu)s).
	KeyDescriptionSpec struct {
		TokenSlot   OptionalUint32
		Description string
	}

	// ClevisSpec is ((bu)ss).
	ClevisSpec struct {
		TokenSlot OptionalUint32
		Pin       string
		Config    string
	}

	// FilesystemSpec is (s(bs)(bs)), sizes being decimal bytes counts.
	FilesystemSpec struct {
		Name      string
		Size      OptionalString
		SizeLimit OptionalString
	}

	// CreatePoolArgs are the CreatePool arguments.
	CreatePoolArgs struct {
		Name               string
		Devices            []string
		KeyDescriptions    []KeyDescriptionSpec
		Clevis             []ClevisSpec
		JournalSize        OptionalUint64
		TagSpec            OptionalString
		AllocateSuperblock OptionalBool
	}

	// PoolID designates a pool by name or by unhyphenated uuid in the
	// StartPool and StopPool methods.
	PoolID struct {
		ID   string
		Type string
	}
)

// NoTokenSlot lets stratisd choose the token slot.
var NoTokenSlot = OptionalUint32{}

// TokenSlot returns the optional token slot, unset if slot is nil.
func TokenSlot(slot *uint32) OptionalUint32 {
	if slot == nil {
		return NoTokenSlot
	}
	return OptionalUint32{Set: true, Value: *slot}
}

// PoolIDByName designates a pool by name.
func PoolIDByName(name string) PoolID {
	return PoolID{ID: name, Type: "name"}
}

// PoolIDByUUID designates a pool by unhyphenated uuid.
func PoolIDByUUID(uuid string) PoolID {
	return PoolID{ID: uuid, Type: "uuid"}
}
