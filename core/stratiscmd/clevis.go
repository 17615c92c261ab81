package stratiscmd

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/stratisd"
)

const (
	clevisNBDE = "nbde"
	clevisTang = "tang"
	clevisTPM2 = "tpm2"
)

var clevisMethods = []string{clevisNBDE, clevisTang, clevisTPM2}

type (
	// OptsClevis are the clevis binding flags of pool create and encrypt.
	OptsClevis struct {
		Clevis     string
		TangURL    string
		Thumbprint string
		TrustURL   bool
	}

	// OptTokenSlot is the optional --token-slot value.
	OptTokenSlot struct {
		slot *uint32
	}
)

// Set implements pflag.Value.
func (t *OptTokenSlot) Set(s string) error {
	i, err := strconv.ParseUint(s, 10, 64)
	if err != nil || i > math.MaxUint32 {
		return fmt.Errorf("%w: token slot %q is not a natural number in the u32 range", ErrFlagInvalid, s)
	}
	v := uint32(i)
	t.slot = &v
	return nil
}

// String implements pflag.Value.
func (t *OptTokenSlot) String() string {
	if t.slot == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*t.slot), 10)
}

// Type implements pflag.Value.
func (t *OptTokenSlot) Type() string {
	return "uint32"
}

// Arg returns the (bu) token slot argument.
func (t OptTokenSlot) Arg() stratisd.OptionalUint32 {
	return stratisd.TokenSlot(t.slot)
}

// IsSet is true if --token-slot was given.
func (t OptTokenSlot) IsSet() bool {
	return t.slot != nil
}

// IsSet is true if a clevis method was selected.
func (t OptsClevis) IsSet() bool {
	return t.Clevis != ""
}

// Validate checks the coherence of the clevis flags.
func (t OptsClevis) Validate() error {
	switch t.Clevis {
	case "":
		switch {
		case t.TangURL != "":
			return clierr.Validationf("Specified --tang-url without specifying Clevis encryption method. Use --clevis=tang to choose Clevis encryption.")
		case t.TrustURL || t.Thumbprint != "":
			return clierr.Validationf("Specified --trust-url or --thumbprint without specifying tang URL. Use --tang-url to specify URL.")
		}
		return nil
	case clevisNBDE, clevisTang:
		return validateTang(t.TangURL, t.Thumbprint, t.TrustURL)
	case clevisTPM2:
		if t.TangURL != "" {
			return clierr.Validationf("Specified --tang-url with --clevis=%s. The tang url is only used by the tang clevis encryption.", clevisTPM2)
		}
		if t.TrustURL || t.Thumbprint != "" {
			return clierr.Validationf("Specified --trust-url or --thumbprint without specifying tang URL. Use --tang-url to specify URL.")
		}
		return nil
	default:
		return clierr.Validationf("invalid clevis encryption method %q: use one of %v", t.Clevis, clevisMethods)
	}
}

func validateTang(url, thumbprint string, trustURL bool) error {
	switch {
	case url == "":
		return clierr.Validationf("Specified binding with Clevis Tang server, but URL was not specified. Use --tang-url option to specify tang URL.")
	case thumbprint == "" && !trustURL:
		return clierr.Validationf("Specified binding with Clevis Tang server, but neither --thumbprint nor --trust-url option was specified.")
	case thumbprint != "" && trustURL:
		return clierr.Validationf("--thumbprint and --trust-url are mutually exclusive")
	}
	return nil
}

// Pin returns the clevis pin of the selected method.
func (t OptsClevis) Pin() string {
	if t.Clevis == clevisTPM2 {
		return stratisd.ClevisPinTPM2
	}
	return stratisd.ClevisPinTang
}

// Config returns the json clevis configuration of the selected method.
func (t OptsClevis) Config() (string, error) {
	if t.Clevis == clevisTPM2 {
		return "{}", nil
	}
	return tangConfig(t.TangURL, t.Thumbprint, t.TrustURL)
}

// Specs returns the clevis bindings requested by the flags, empty if no
// clevis method was selected.
func (t OptsClevis) Specs() ([]stratisd.ClevisSpec, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	specs := make([]stratisd.ClevisSpec, 0)
	if !t.IsSet() {
		return specs, nil
	}
	config, err := t.Config()
	if err != nil {
		return nil, err
	}
	return append(specs, stratisd.ClevisSpec{
		TokenSlot: stratisd.NoTokenSlot,
		Pin:       t.Pin(),
		Config:    config,
	}), nil
}

func tangConfig(url, thumbprint string, trustURL bool) (string, error) {
	m := map[string]any{stratisd.ClevisKeyURL: url}
	if trustURL {
		m[stratisd.ClevisKeyTangTrustURL] = true
	} else {
		m[stratisd.ClevisKeyThumbprint] = thumbprint
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", clierr.Internalf("clevis configuration: %s", err)
	}
	return string(b), nil
}

// keyDescriptions returns the keyring bindings requested by --key-desc.
func keyDescriptions(desc string) []stratisd.KeyDescriptionSpec {
	specs := make([]stratisd.KeyDescriptionSpec, 0)
	if desc == "" {
		return specs
	}
	return append(specs, stratisd.KeyDescriptionSpec{
		TokenSlot:   stratisd.NoTokenSlot,
		Description: desc,
	})
}
