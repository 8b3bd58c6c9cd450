package easydb

import (
	"fmt"
	"regexp"
)

// SQL syntax does not allow binding identifiers as parameters, so table and
// column names end up interpolated into the statement text. Only plain,
// optionally schema-qualified names pass.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

func sanitizeIdentifier(name string) (string, error) {
	if !identifierPattern.MatchString(name) {
		return "", fmt.Errorf("invalid identifier %q", name)
	}

	return name, nil
}
