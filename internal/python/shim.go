package python

import (
	"path/filepath"
	"strings"
)

// IsWindowsStoreShim reports whether path is the Microsoft Store "app execution alias"
// redirector, e.g. C:\Users\me\AppData\Local\Microsoft\WindowsApps\python.exe.
//
// Only the last four components are inspected: python*.exe inside
// Local\Microsoft\WindowsApps. Store-installed Pythons live one directory deeper
// (WindowsApps\PythonSoftwareFoundation.Python.3.11_...\python.exe) and are kept.
// Other redirector locations are not detected.
func IsWindowsStoreShim(path string) bool {
	if !isAbsolute(path) {
		return false
	}

	components := splitComponents(path)
	if len(components) < 4 {
		return false
	}
	components = components[len(components)-4:]

	// Ex) `python.exe`, `python3.exe` or `python3.12.exe`
	dot := strings.LastIndexByte(components[3], '.')
	if dot < 0 {
		return false
	}
	name, ext := components[3][:dot], components[3][dot+1:]
	if !strings.HasPrefix(name, "python") || ext != "exe" {
		return false
	}

	return components[2] == "WindowsApps" &&
		components[1] == "Microsoft" &&
		components[0] == "Local"
}

// isAbsolute accepts host absolute paths plus Windows drive and UNC forms
func isAbsolute(path string) bool {
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return true
	}
	if strings.HasPrefix(path, `\\`) {
		return true
	}
	return len(path) >= 3 && isDriveLetter(path[0]) && path[1] == ':' && (path[2] == '\\' || path[2] == '/')
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// splitComponents splits on both separators and drops empty components
func splitComponents(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '\\' || r == '/'
	})
}

// baseName is the last path component, honouring both separators
func baseName(path string) string {
	components := splitComponents(path)
	if len(components) == 0 {
		return ""
	}
	return components[len(components)-1]
}

// stem is baseName without its final extension
func stem(path string) string {
	base := baseName(path)
	if dot := strings.LastIndexByte(base, '.'); dot > 0 {
		return base[:dot]
	}
	return base
}
