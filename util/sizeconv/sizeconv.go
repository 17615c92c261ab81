// Package sizeconv parses and formats the storage size specifications
// accepted on the command line, like "512MiB" or "2TiB".
//
// Sizes are arbitrary precision: pools may exceed the int64 range.
package sizeconv

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"

	"github.com/dustin/go-humanize"
)

type (
	// Spec is a size specification: a non-negative integer magnitude and a unit.
	Spec struct {
		Magnitude *big.Int
		Unit      string
	}

	unit struct {
		name  string
		shift uint
	}
)

var (
	// ErrInvalidSpec is returned when a size specification does not match
	// the <integer><unit> syntax.
	ErrInvalidSpec = errors.New("invalid size specification")

	// ErrInvalidBytes is returned when a daemon-reported byte count is not
	// a decimal integer.
	ErrInvalidBytes = errors.New("invalid byte count")

	specRegexp = regexp.MustCompile(`^(?P<magnitude>[0-9]+)(?P<units>([KMGTP]i)?B)$`)

	// units is ordered from the largest to the smallest.
	units = []unit{
		{"PiB", 50},
		{"TiB", 40},
		{"GiB", 30},
		{"MiB", 20},
		{"KiB", 10},
		{"B", 0},
	}
)

// Units returns the accepted unit names, smallest first.
func Units() []string {
	l := make([]string, len(units))
	for i, u := range units {
		l[len(units)-1-i] = u.name
	}
	return l
}

func shiftOf(name string) (uint, bool) {
	for _, u := range units {
		if u.name == name {
			return u.shift, true
		}
	}
	return 0, false
}

// Parse parses a "<integer><unit>" size specification.
func Parse(s string) (Spec, error) {
	m := specRegexp.FindStringSubmatch(s)
	if m == nil {
		return Spec{}, fmt.Errorf("%w: %q, expected <integer><unit> with unit in %v", ErrInvalidSpec, s, Units())
	}
	magnitude, ok := new(big.Int).SetString(m[specRegexp.SubexpIndex("magnitude")], 10)
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidSpec, s)
	}
	return Spec{
		Magnitude: magnitude,
		Unit:      m[specRegexp.SubexpIndex("units")],
	}, nil
}

// Bytes returns the byte count of the size spec.
func (t Spec) Bytes() *big.Int {
	shift, ok := shiftOf(t.Unit)
	if !ok || t.Magnitude == nil {
		return new(big.Int)
	}
	return new(big.Int).Lsh(t.Magnitude, shift)
}

// String returns the size spec in its <integer><unit> form.
func (t Spec) String() string {
	if t.Magnitude == nil {
		return "0" + t.Unit
	}
	return t.Magnitude.String() + t.Unit
}

// Exact returns the size spec of a byte count using the largest unit
// dividing it exactly.
func Exact(b *big.Int) Spec {
	for _, u := range units {
		if u.shift == 0 || b.Sign() == 0 {
			continue
		}
		mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), u.shift), big.NewInt(1))
		if new(big.Int).And(b, mask).Sign() == 0 {
			return Spec{Magnitude: new(big.Int).Rsh(b, u.shift), Unit: u.name}
		}
	}
	return Spec{Magnitude: new(big.Int).Set(b), Unit: "B"}
}

// ParseBytes parses the decimal byte counts the daemon reports as strings.
func ParseBytes(s string) (*big.Int, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok || b.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBytes, s)
	}
	return b, nil
}

// BSizeCompact returns a human readable representation of a byte count,
// using binary prefixes (ex: "1.5 GiB").
func BSizeCompact(b *big.Int) string {
	if b == nil {
		return ""
	}
	return humanize.BigIBytes(b)
}
