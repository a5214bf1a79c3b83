package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateName validates a cell, layer or cross-section name.
// It rejects names that could collide with generated names or break
// serialized layouts.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or null bytes
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\\x00") {
		return New(ErrCodeInvalidInput, "name contains invalid characters: %q", name)
	}

	return nil
}

// cellNameRegex matches valid cell names: identifier characters plus the
// separators produced by parameter-based auto-naming ('_', '$', '.', '-').
var cellNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.$-]*$`)

// ValidateCellName validates a cell name for use in registries and
// serialized layouts.
func ValidateCellName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if !cellNameRegex.MatchString(name) {
		return New(ErrCodeInvalidCell, "invalid cell name: %q", name)
	}
	return nil
}

// portNameRegex matches valid port names (e.g. "o1", "W0", "pad_top").
var portNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidatePortName validates a port name.
func ValidatePortName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if !portNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPort, "invalid port name: %q", name)
	}
	return nil
}

// ValidateLayer validates GDS layer and datatype numbers.
// Both must fit in the unsigned 16-bit range used by the GDSII format.
func ValidateLayer(layer, datatype int) error {
	if layer < 0 || layer > 65535 {
		return New(ErrCodeInvalidLayer, "layer number out of range: %d", layer)
	}
	if datatype < 0 || datatype > 65535 {
		return New(ErrCodeInvalidLayer, "datatype out of range: %d", datatype)
	}
	return nil
}
