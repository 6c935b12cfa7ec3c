package codegen

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateName checks that name can identify a generator: non-empty, no
// surrounding whitespace, no control characters. Inner spaces are allowed
// ("NodeJS Example").
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidName, name)
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: %q contains control characters", ErrInvalidName, name)
	}
	return nil
}
