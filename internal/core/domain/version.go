package domain

import (
	"sort"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Version is a dotted-numeric package version with an optional trailing
// dev tag. It parses strings of the form "N(.N)*([.-]tag)?" where N is a
// non-negative integer and tag is any non-numeric trailing component.
type Version struct {
	components []int
	devTag     string
	raw        string
}

// ParseVersion parses s into a Version. Components are separated by "."
// or "-"; the first non-numeric component starts the dev tag and
// consumes the remainder of the string.
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Version{}, zerr.With(ErrInvalidVersion, "input", s)
	}

	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '.' || r == '-'
	})
	if len(parts) == 0 {
		return Version{}, zerr.With(ErrInvalidVersion, "input", s)
	}

	components := make([]int, 0, len(parts))
	devTag := ""
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			devTag = strings.Join(parts[i:], ".")
			break
		}
		if n < 0 {
			return Version{}, zerr.With(ErrInvalidVersion, "input", s)
		}
		components = append(components, n)
	}

	if len(components) == 0 {
		return Version{}, zerr.With(ErrInvalidVersion, "input", s)
	}

	return Version{components: components, devTag: devTag, raw: trimmed}, nil
}

// MustParseVersion parses s and panics on error. Intended for constants.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the original parsed representation.
func (v Version) String() string {
	return v.raw
}

// GobEncode implements gob.GobEncoder, encoding the version as its raw
// string form so the repository index disk cache can round-trip it.
func (v Version) GobEncode() ([]byte, error) {
	return []byte(v.raw), nil
}

// GobDecode implements gob.GobDecoder.
func (v *Version) GobDecode(data []byte) error {
	parsed, err := ParseVersion(string(data))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// IsDev reports whether the version carries a dev/nightly tail.
func (v Version) IsDev() bool {
	return v.devTag != ""
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater
// than other. Trailing-zero components are equivalent to their absence.
// A dev-tagged version compares below its untagged equivalent.
func (v Version) Compare(other Version) int {
	if c := compareNumeric(v.components, other.components); c != 0 {
		return c
	}
	switch {
	case v.devTag == "" && other.devTag == "":
		return 0
	case v.devTag == "" && other.devTag != "":
		return 1
	case v.devTag != "" && other.devTag == "":
		return -1
	default:
		return strings.Compare(v.devTag, other.devTag)
	}
}

// Equal reports whether v and other compare equal.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// LessThan reports whether v sorts strictly before other.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

func compareNumeric(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}

// SortVersionsDescending sorts a slice of Versions from newest to oldest
// in place and returns it for chaining.
func SortVersionsDescending(vs []Version) []Version {
	sort.Slice(vs, func(i, j int) bool {
		return vs[i].Compare(vs[j]) > 0
	})
	return vs
}
