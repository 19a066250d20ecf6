package cli

import (
	"fmt"
	"strings"
)

// ValidateOutputFormat validates the --output flag.
func ValidateOutputFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
	}
}

// ValidateRowsSource validates the --rows-source flag of gridcore's demo
// command.
func ValidateRowsSource(source string) error {
	switch source {
	case "memory", "sqlite":
		return nil
	default:
		return fmt.Errorf("invalid rows source: %s (must be: memory or sqlite)", source)
	}
}

// ValidateTableID validates a --table-id flag value: it becomes part of a
// persisted state file name, so path separators are rejected up front
// rather than surfacing as an obscure file-system error later. The empty
// string is accepted: it means persistence is disabled, not malformed.
func ValidateTableID(id string) error {
	if id == "" {
		return nil
	}
	if strings.ContainsAny(id, "/\\") {
		return fmt.Errorf("invalid table id: %s (must not contain path separators)", id)
	}
	return nil
}
