package version

// version is set at build time with:
//
//	go build -ldflags "-X github.com/opensvc/stratis/util/version.version=3.8.0"
var version = "dev"

// Version returns the stratis client version.
func Version() string {
	return version
}
