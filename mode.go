package renderers

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidExtensionMode is returned by ParseExtensionMode.
var ErrInvalidExtensionMode = errors.New("invalid extension renderer mode")

// ExtensionMode controls whether and where the fallback renderer is placed
// relative to the platform renderer.
type ExtensionMode int

const (
	ExtensionModeOff    ExtensionMode = iota // No fallback renderer (audio: see FlagDisableFallbackAudio)
	ExtensionModeOn                          // Fallback tried after the platform renderer
	ExtensionModePrefer                      // Fallback tried before the platform renderer
)

func (m ExtensionMode) String() string {
	switch m {
	case ExtensionModeOff:
		return "off"
	case ExtensionModeOn:
		return "on"
	case ExtensionModePrefer:
		return "prefer"
	default:
		return "unknown"
	}
}

// ParseExtensionMode parses "off", "on" or "prefer" (case-insensitive),
// or the numeric values 0, 1 and 2.
func ParseExtensionMode(s string) (ExtensionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "0":
		return ExtensionModeOff, nil
	case "on", "1":
		return ExtensionModeOn, nil
	case "prefer", "2":
		return ExtensionModePrefer, nil
	default:
		return ExtensionModeOff, fmt.Errorf("%w: %q", ErrInvalidExtensionMode, s)
	}
}

// InsertionIndex returns where the fallback renderer goes in a candidate
// list that currently holds n renderers. ExtensionModeOn appends (index n);
// ExtensionModePrefer inserts before the most recently added renderer
// (index n-1, never below 0). The policy is undefined for ExtensionModeOff
// and any unknown mode, reported by ok == false.
func InsertionIndex(n int, mode ExtensionMode) (index int, ok bool) {
	switch mode {
	case ExtensionModeOn:
		return n, true
	case ExtensionModePrefer:
		if n == 0 {
			return 0, true
		}
		return n - 1, true
	default:
		return 0, false
	}
}
