package python

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quantmind-br/pyfind/internal/platform"
	"github.com/quantmind-br/pyfind/internal/security"
)

// SelectorKind is how precisely a version was requested
type SelectorKind int

const (
	SelectorDefault SelectorKind = iota
	SelectorMajor
	SelectorMajorMinor
	SelectorMajorMinorPatch
)

// Selector is a parsed version request. The zero value is the default selector.
type Selector struct {
	kind  SelectorKind
	major uint8
	minor uint8
	patch uint8
}

func DefaultSelector() Selector { return Selector{} }

func MajorSelector(major uint8) Selector {
	return Selector{kind: SelectorMajor, major: major}
}

func MajorMinorSelector(major, minor uint8) Selector {
	return Selector{kind: SelectorMajorMinor, major: major, minor: minor}
}

func MajorMinorPatchSelector(major, minor, patch uint8) Selector {
	return Selector{kind: SelectorMajorMinorPatch, major: major, minor: minor, patch: patch}
}

// ParseSelector parses "3", "3.10" or "3.10.1".
// Every component must fit in a uint8; anything beyond the third dot stays in the
// third component and so fails to parse.
func ParseSelector(request string) (Selector, error) {
	parts := strings.SplitN(request, ".", 3)
	nums := make([]uint8, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return Selector{}, fmt.Errorf("parse version component %q: %w", part, err)
		}
		nums = append(nums, uint8(n))
	}

	switch len(nums) {
	case 1:
		return MajorSelector(nums[0]), nil
	case 2:
		return MajorMinorSelector(nums[0], nums[1]), nil
	default:
		return MajorMinorPatchSelector(nums[0], nums[1], nums[2]), nil
	}
}

func (s Selector) Kind() SelectorKind { return s.kind }

// Major returns the requested major version; ok is false for the default selector
func (s Selector) Major() (major uint8, ok bool) {
	if s.kind == SelectorDefault {
		return 0, false
	}
	return s.major, true
}

// targetsLegacy reports whether the request explicitly names Python 2 or older
func (s Selector) targetsLegacy() bool {
	major, ok := s.Major()
	return ok && major <= 2
}

// couldMatch is the check available before querying, when only major.minor is known
func (s Selector) couldMatch(major, minor uint8) bool {
	switch s.kind {
	case SelectorDefault:
		return true
	case SelectorMajor:
		return s.major == major
	case SelectorMajorMinor, SelectorMajorMinorPatch:
		return s.major == major && s.minor == minor
	}
	return false
}

// Matches reports whether a queried version satisfies the selector.
// The patch level only matters when it was requested.
func (s Selector) Matches(major, minor, patch uint8) bool {
	switch s.kind {
	case SelectorDefault:
		return true
	case SelectorMajor:
		return s.major == major
	case SelectorMajorMinor:
		return s.major == major && s.minor == minor
	case SelectorMajorMinorPatch:
		return s.major == major && s.minor == minor && s.patch == patch
	}
	return false
}

func (s Selector) String() string {
	switch s.kind {
	case SelectorMajor:
		return fmt.Sprintf("%d", s.major)
	case SelectorMajorMinor:
		return fmt.Sprintf("%d.%d", s.major, s.minor)
	case SelectorMajorMinorPatch:
		return fmt.Sprintf("%d.%d.%d", s.major, s.minor, s.patch)
	}
	return "default"
}

// RequestKind classifies what the user passed
type RequestKind int

const (
	// RequestVersion is a numeric request such as "3.10"
	RequestVersion RequestKind = iota
	// RequestName is an executable name looked up in the search path, e.g. "python3.10"
	RequestName
	// RequestPath is a filesystem path handed straight to the query
	RequestPath
)

func (k RequestKind) String() string {
	switch k {
	case RequestVersion:
		return "version"
	case RequestName:
		return "name"
	case RequestPath:
		return "path"
	}
	return "unknown"
}

// Request is a classified interpreter request
type Request struct {
	Kind     RequestKind
	Raw      string
	Selector Selector
	// Path is the normalized path for RequestPath
	Path string
}

// ParseRequest classifies request as a version, a bare executable name or a path
func ParseRequest(request string, p platform.Platform) (Request, error) {
	if strings.TrimSpace(request) == "" {
		return Request{}, ErrEmptyRequest
	}

	if selector, err := ParseSelector(request); err == nil {
		return Request{Kind: RequestVersion, Raw: request, Selector: selector}, nil
	}

	if !p.HasPathSeparator(request) {
		return Request{Kind: RequestName, Raw: request}, nil
	}

	path, err := security.NormalizePath(request)
	if err != nil {
		return Request{}, fmt.Errorf("invalid interpreter path: %w", err)
	}
	return Request{Kind: RequestPath, Raw: request, Path: path}, nil
}
