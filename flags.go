package renderers

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFlag is returned by ParseFlags for names it does not recognize.
var ErrUnknownFlag = errors.New("unknown renderer flag")

// Flags is an immutable set of renderer factory feature toggles.
// Combine sets with Union or CombineFlags; test membership with Has.
type Flags uint32

const (
	// FlagEnableAltProfile enables the extended video profile (HEVC) in the
	// FFmpeg fallback decoder.
	FlagEnableAltProfile Flags = 1 << iota
	// FlagDisableFallbackAudio suppresses the fallback audio renderer when
	// the extension mode is ExtensionModeOff.
	FlagDisableFallbackAudio
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagEnableAltProfile, "alt-profile"},
	{FlagDisableFallbackAudio, "disable-fallback-audio"},
}

// CombineFlags returns the union of all given flag sets.
func CombineFlags(flags ...Flags) Flags {
	var out Flags
	for _, f := range flags {
		out = out.Union(f)
	}
	return out
}

// Union returns a set containing the bits of both f and other.
func (f Flags) Union(other Flags) Flags { return f | other }

// Has returns true if every bit of flag is present in f.
func (f Flags) Has(flag Flags) bool { return f&flag == flag }

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	rest := f
	for _, n := range flagNames {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
			rest &^= n.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseFlags parses a list of flag names separated by '|' or ','.
// An empty string or "none" yields the empty set.
func ParseFlags(s string) (Flags, error) {
	var out Flags
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' })
	for _, field := range fields {
		name := strings.ToLower(strings.TrimSpace(field))
		if name == "" || name == "none" {
			continue
		}
		found := false
		for _, n := range flagNames {
			if n.name == name {
				out = out.Union(n.flag)
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, field)
		}
	}
	return out, nil
}
