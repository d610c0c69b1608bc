package domain

import (
	"fmt"
	"strings"
)

// Mode controls how undeclared payload keys are treated.
type Mode string

const (
	// ModePermissive silently drops undeclared keys.
	ModePermissive Mode = "permissive"
	// ModeStrict reports every undeclared key as a ViolationUnknownField.
	ModeStrict Mode = "strict"
)

// ParseMode converts a mode name to a Mode. An empty name means permissive.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModePermissive:
		return ModePermissive, nil
	case ModeStrict:
		return ModeStrict, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// IsStrict reports whether undeclared keys are violations.
func (m Mode) IsStrict() bool { return m == ModeStrict }
