package stratiscmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/opensvc/stratis/config"
	"github.com/opensvc/stratis/core/output"
)

// FlagsGlobal declares the root persistent flags.
func FlagsGlobal(flags *pflag.FlagSet, p *OptsGlobal) {
	FlagColor(flags, &p.Color)
	FlagOutput(flags, &p.Output)
	flags.BoolVar(&p.Propagate, "propagate", false, "allow exceptions to propagate, displaying the full error chain")
	flags.BoolVar(&p.UnhyphenatedUUIDs, "unhyphenated-uuids", false, "display uuids in unhyphenated format")
	flags.BoolVar(&p.Debug, "debug", false, "display logs at debug level")
}

func FlagColor(flags *pflag.FlagSet, p *string) {
	flags.StringVar(p, "color", config.Color(), "output colorization yes|no|auto")
}

func FlagOutput(flags *pflag.FlagSet, p *string) {
	flags.StringVarP(p, "output", "o", "human", fmt.Sprintf("output format %s", strings.Join(output.Names(), "|")))
}

func FlagPoolName(flags *pflag.FlagSet, p *string) {
	flags.StringVar(p, "name", "", "name of the pool")
}

func FlagPoolUUID(flags *pflag.FlagSet, p *string) {
	flags.StringVar(p, "uuid", "", "uuid of the pool")
}

func FlagKeyDesc(flags *pflag.FlagSet, p *string) {
	flags.StringVar(p, "key-desc", "", "key description of the key in the kernel keyring used for encryption")
}

func FlagsClevis(flags *pflag.FlagSet, p *OptsClevis) {
	flags.StringVar(&p.Clevis, "clevis", "", fmt.Sprintf("clevis encryption method %s", strings.Join(clevisMethods, "|")))
	FlagTangURL(flags, &p.TangURL)
	FlagThumbprint(flags, &p.Thumbprint)
	FlagTrustURL(flags, &p.TrustURL)
}

func FlagTangURL(flags *pflag.FlagSet, p *string) {
	flags.StringVar(p, "tang-url", "", "url of the tang server")
}

func FlagThumbprint(flags *pflag.FlagSet, p *string) {
	flags.StringVar(p, "thumbprint", "", "thumbprint of the tang server signing key")
}

func FlagTrustURL(flags *pflag.FlagSet, p *bool) {
	flags.BoolVar(p, "trust-url", false, "omit verifying the tang server thumbprint")
}

func FlagTokenSlot(flags *pflag.FlagSet, p *OptTokenSlot) {
	flags.Var(p, "token-slot", "token slot of the binding")
}

func FlagsKeyInput(flags *pflag.FlagSet, p *OptsKeyInput) {
	flags.StringVar(&p.KeyfilePath, "keyfile-path", "", "path to the key file")
	flags.BoolVar(&p.CaptureKey, "capture-key", false, "read the key from the terminal")
}

func FlagVerify(flags *pflag.FlagSet, p *bool) {
	flags.BoolVar(p, "verify", false, "prompt the passphrase twice and verify both entries match")
}

func FlagUnlockMethod(flags *pflag.FlagSet, p *string) {
	flags.StringVar(p, "unlock-method", "", "method to use to unlock an encrypted pool any|clevis|keyring")
}

func FlagPretty(flags *pflag.FlagSet, p *bool) {
	flags.BoolVar(p, "pretty", false, "indent the json document")
}

func FlagWritten(flags *pflag.FlagSet, p *bool) {
	flags.BoolVar(p, "written", false, "read the metadata most recently written instead of the in-memory metadata")
}

func FlagNoSortKeys(flags *pflag.FlagSet, p *bool) {
	flags.BoolVar(p, "no-sort-keys", false, "keep the daemon key order in the report")
}

func FlagStopped(flags *pflag.FlagSet, p *bool) {
	flags.BoolVar(p, "stopped", false, "list stopped pools")
}

func FlagSize(flags *pflag.FlagSet, p *string) {
	flags.StringVar(p, "size", "", "size of the filesystem, like 10GiB")
}

func FlagSizeLimit(flags *pflag.FlagSet, p *string) {
	flags.StringVar(p, "size-limit", "", "upper limit on the size of the filesystem, like 100GiB")
}

func FlagDeviceUUID(flags *pflag.FlagSet, p *[]string) {
	flags.StringArrayVar(p, "device-uuid", nil, "uuid of a member device to extend the pool onto")
}

func FlagFilesystemName(flags *pflag.FlagSet, p *string) {
	flags.StringVar(p, "name", "", "name of the filesystem")
}

func FlagFilesystemUUID(flags *pflag.FlagSet, p *string) {
	flags.StringVar(p, "uuid", "", "uuid of the filesystem")
}

func FlagFsName(flags *pflag.FlagSet, p *string) {
	flags.StringVar(p, "fs-name", "", "name of the filesystem to restrict the metadata to")
}

func FlagBlockdevUUID(flags *pflag.FlagSet, p *string) {
	flags.StringVar(p, "uuid", "", "uuid of the block device")
}
