// Package systemd tells if the host was booted with systemd.
package systemd

import "os"

var (
	runtimeDir  = "/run/systemd/system"
	procOneComm = "/proc/1/comm"
)

// HasSystemd returns true if the systemd runtime directory exists, or
// if the init process is named systemd.
func HasSystemd() bool {
	if fi, err := os.Lstat(runtimeDir); err == nil && fi.IsDir() {
		return true
	}
	b, err := os.ReadFile(procOneComm)
	if err != nil {
		return false
	}
	return string(b) == "systemd\n"
}
