package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is a 16-bit memory address that remembers whether it was set.
// It implements flag.Value and toml.Unmarshaler.
type Address struct {
	value uint16
	set   bool
}

// NewAddress returns a set Address.
func NewAddress(v uint16) Address { return Address{value: v, set: true} }

// ParseAddress accepts decimal, 0x-prefixed hex and $-prefixed hex.
func ParseAddress(s string) (uint16, error) {
	orig := s
	s = strings.TrimSpace(s)
	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}
	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: must be 0-65535", orig)
	}
	return uint16(v), nil
}

// Get returns the value and whether it was set.
func (a Address) Get() (uint16, bool) { return a.value, a.set }

// IsSet reports whether a value was provided.
func (a Address) IsSet() bool { return a.set }

func (a Address) String() string {
	if !a.set {
		return ""
	}
	return strconv.Itoa(int(a.value))
}

// Set parses s (flag.Value).
func (a *Address) Set(s string) error {
	v, err := ParseAddress(s)
	if err != nil {
		return err
	}
	a.value, a.set = v, true
	return nil
}

// UnmarshalTOML accepts an integer or an address string.
func (a *Address) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case int64:
		if x < 0 || x > 0xFFFF {
			return fmt.Errorf("invalid address %d: must be 0-65535", x)
		}
		a.value, a.set = uint16(x), true
		return nil
	case string:
		return a.Set(x)
	default:
		return fmt.Errorf("invalid address %v: want integer or string", v)
	}
}
