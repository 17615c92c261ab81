// Package stratisd exposes the D-Bus interface of the stratis daemon as
// typed method stubs.
package stratisd

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	// BusName is the well-known bus name owned by stratisd.
	BusName = "org.storage.stratis3"

	// TopObject is the object path of the manager and object manager.
	TopObject dbus.ObjectPath = "/org/storage/stratis3"

	// Revision is the interface revision this client speaks.
	Revision = 8

	// InterfacePrefix prefixes every stratisd interface name.
	InterfacePrefix = "org.storage.stratis3"

	// ServiceUnit is the systemd unit running stratisd.
	ServiceUnit = "stratisd.service"
)

const (
	ClevisPinTang         = "tang"
	ClevisPinTPM2         = "tpm2"
	ClevisKeyURL          = "url"
	ClevisKeyThumbprint   = "thp"
	ClevisKeyTangTrustURL = "stratis:tang:trust_url"
)

var (
	ManagerInterface    = Interface("Manager")
	PoolInterface       = Interface("pool")
	FilesystemInterface = Interface("filesystem")
	BlockdevInterface   = Interface("blockdev")
	ReportInterface     = Interface("Report")
)

// Interface returns the name of the kind interface at the client revision.
func Interface(kind string) string {
	return fmt.Sprintf("%s.%s.r%d", InterfacePrefix, kind, Revision)
}

// ReturnCode is the numeric status returned by every stratisd method.
type ReturnCode uint16

const (
	OK ReturnCode = iota
	Error
	AlreadyExists
	Busy
	InternalError
	NotFound
)

var returnCodeToString = map[ReturnCode]string{
	OK:            "OK",
	Error:         "ERROR",
	AlreadyExists: "ALREADY_EXISTS",
	Busy:          "BUSY",
	InternalError: "INTERNAL_ERROR",
	NotFound:      "NOT_FOUND",
}

func (t ReturnCode) String() string {
	if s, ok := returnCodeToString[t]; ok {
		return s
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint16(t))
}

// Tier is the blockdev tier in a pool.
type Tier uint16

const (
	TierData Tier = iota
	TierCache
)

func (t Tier) String() string {
	switch t {
	case TierData:
		return "Data"
	case TierCache:
		return "Cache"
	default:
		return "???"
	}
}

// Redundancy is a pool redundancy designation.
type Redundancy uint16

const (
	RedundancyNone Redundancy = iota
)

// Redundancies lists the redundancy designations understood by stratisd.
var Redundancies = []Redundancy{RedundancyNone}

func (t Redundancy) String() string {
	switch t {
	case RedundancyNone:
		return "NONE"
	default:
		return "???"
	}
}
