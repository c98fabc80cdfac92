package export

import (
	"sort"
	"strings"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatFunctional produces OWL functional syntax (.ofn) output.
	FormatFunctional Format = "ofn"

	// FormatJSON produces a JSON document of rendered axioms.
	FormatJSON Format = "json"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatFunctional: {
		Name:        FormatFunctional,
		MIMEType:    "text/owl-functional",
		Extension:   ".ofn",
		Description: "OWL 2 functional-style syntax",
	},
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "JSON - ontology header and axioms in functional syntax",
	},
}

// formatAliases are alternative names accepted by ParseFormat.
var formatAliases = map[string]Format{
	"functional": FormatFunctional,
	"owl":        FormatFunctional,
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat returns the format named by s, ignoring case.
func ParseFormat(s string) (Format, bool) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if _, ok := FormatRegistry[Format(name)]; ok {
		return Format(name), true
	}
	f, ok := formatAliases[name]
	return f, ok
}

// Formats returns the registered format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(FormatRegistry))
	for f := range FormatRegistry {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}
