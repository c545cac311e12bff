package platform

import (
	"runtime"
	"strings"
)

// OS identifies the operating system family discovery has to adapt to
type OS string

const (
	OSLinux   OS = "linux"
	OSDarwin  OS = "darwin"
	OSWindows OS = "windows"
)

// Platform describes the host an interpreter is being searched on
type Platform struct {
	OS   OS
	Arch string
}

// Current returns the platform of the running process
func Current() Platform {
	return Platform{
		OS:   OS(runtime.GOOS),
		Arch: runtime.GOARCH,
	}
}

// Windows returns a Windows platform, mainly for tests
func Windows() Platform {
	return Platform{OS: OSWindows, Arch: "amd64"}
}

// Unix returns a Linux platform, mainly for tests
func Unix() Platform {
	return Platform{OS: OSLinux, Arch: "amd64"}
}

// IsWindows reports whether executables follow Windows naming rules
func (p Platform) IsWindows() bool {
	return p.OS == OSWindows
}

// ExeSuffix returns the executable file extension (".exe" on Windows)
func (p Platform) ExeSuffix() string {
	if p.IsWindows() {
		return ".exe"
	}
	return ""
}

// HasPathSeparator reports whether s contains a path separator of this platform.
// Windows accepts both slash flavours.
func (p Platform) HasPathSeparator(s string) bool {
	if p.IsWindows() {
		return strings.ContainsAny(s, `\/`)
	}
	return strings.Contains(s, "/")
}

// ListSeparator returns the separator between entries of a search-path variable
func (p Platform) ListSeparator() string {
	if p.IsWindows() {
		return ";"
	}
	return ":"
}

func (p Platform) String() string {
	return string(p.OS) + "/" + p.Arch
}
