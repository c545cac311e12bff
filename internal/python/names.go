package python

import (
	"fmt"

	"github.com/quantmind-br/pyfind/internal/platform"
)

// PossibleNames returns the executable names to look for, most specific first.
// Unused trailing slots are empty.
//
//   - Default:         python3, python
//   - Major:           pythonX, python
//   - MajorMinor:      pythonX.Y, pythonX, python
//   - MajorMinorPatch: pythonX.Y.Z, pythonX.Y, pythonX, python
//
// Windows names carry the .exe suffix.
func (s Selector) PossibleNames(p platform.Platform) [4]string {
	ext := p.ExeSuffix()
	python := "python" + ext
	python3 := "python3" + ext

	switch s.kind {
	case SelectorMajor:
		return [4]string{
			fmt.Sprintf("python%d%s", s.major, ext),
			python,
		}
	case SelectorMajorMinor:
		return [4]string{
			fmt.Sprintf("python%d.%d%s", s.major, s.minor, ext),
			fmt.Sprintf("python%d%s", s.major, ext),
			python,
		}
	case SelectorMajorMinorPatch:
		return [4]string{
			fmt.Sprintf("python%d.%d.%d%s", s.major, s.minor, s.patch, ext),
			fmt.Sprintf("python%d.%d%s", s.major, s.minor, ext),
			fmt.Sprintf("python%d%s", s.major, ext),
			python,
		}
	}
	return [4]string{python3, python}
}

// names drops the empty slots of PossibleNames
func (s Selector) names(p platform.Platform) []string {
	all := s.PossibleNames(p)
	out := make([]string, 0, len(all))
	for _, name := range all {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}
