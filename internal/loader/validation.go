package loader

import (
	"fmt"
	"strings"
)

// validateName rejects identifiers that whitelist rule files cannot
// express: rule lines are whitespace-tokenized and "#" opens a comment,
// so a name containing either could never be matched by an entry.
func validateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name must not be empty", kind)
	}
	if strings.ContainsAny(name, " \t\n\r") {
		return fmt.Errorf("%s name %q must not contain whitespace", kind, name)
	}
	if strings.ContainsRune(name, '#') {
		return fmt.Errorf("%s name %q must not contain '#'", kind, name)
	}
	return nil
}
