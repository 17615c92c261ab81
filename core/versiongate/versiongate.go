// Package versiongate refuses to run a command against a stratisd whose
// interface revision or version is not supported.
package versiongate

import (
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"

	"github.com/godbus/dbus/v5/introspect"
	"github.com/hashicorp/go-version"
	"github.com/rs/zerolog/log"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/stratisd"
)

// SupportedVersions is the range of stratisd versions this client speaks to.
const SupportedVersions = ">= 3.8.2, < 4.0.0"

type (
	// Daemon is the part of the top object stub the gate needs.
	Daemon interface {
		Introspect(ctx context.Context) (string, error)
		Version(ctx context.Context) (string, error)
	}
)

var (
	managerInterfaceRegexp = regexp.MustCompile(`^` + regexp.QuoteMeta(stratisd.InterfacePrefix) + `\.Manager\.r([0-9]+)$`)
)

// Check verifies the daemon advertises at least the required Manager
// revision, then verifies the daemon version is in the supported range.
// A required revision of zero disables the check.
func Check(ctx context.Context, d Daemon, required int) error {
	if required <= 0 {
		return nil
	}
	doc, err := d.Introspect(ctx)
	if err != nil {
		return err
	}
	actual, err := Revision(doc)
	if err != nil {
		return err
	}
	log.Debug().Int("required", required).Int("actual", actual).Msg("interface revision")
	if actual < required {
		return &clierr.VersionMismatchError{
			Required: fmt.Sprintf("r%d", required),
			Actual:   fmt.Sprintf("r%d", actual),
		}
	}
	s, err := d.Version(ctx)
	if err != nil {
		return err
	}
	return CheckVersion(s)
}

// CheckVersion verifies s is in the supported version range.
func CheckVersion(s string) error {
	constraints, err := version.NewConstraint(SupportedVersions)
	if err != nil {
		return clierr.Internalf("parse version constraint: %w", err)
	}
	v, err := version.NewVersion(s)
	if err != nil {
		return clierr.Internalf("parse stratisd version %q: %w", s, err)
	}
	if !constraints.Check(v) {
		return &clierr.VersionMismatchError{
			Required: SupportedVersions,
			Actual:   v.String(),
		}
	}
	return nil
}

// Revision returns the highest Manager interface revision found in the
// introspection document of the top object, or zero if none.
func Revision(doc string) (int, error) {
	var node introspect.Node
	if err := xml.Unmarshal([]byte(doc), &node); err != nil {
		return 0, clierr.Internalf("parse introspection data: %w", err)
	}
	revision := 0
	for _, iface := range node.Interfaces {
		m := managerInterfaceRegexp.FindStringSubmatch(iface.Name)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > revision {
			revision = n
		}
	}
	return revision, nil
}
