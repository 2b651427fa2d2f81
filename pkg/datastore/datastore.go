package datastore

import (
	"strings"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/rules"
)

// Store is a PersistenceSink that can also read back what it stored
type Store interface {
	rules.PersistenceSink

	// Load returns the rule stored for a node
	Load(nodeID string) (rules.ValidatedRule, error)

	// List returns all stored rules ordered by node id
	List() ([]rules.ValidatedRule, error)

	// Delete removes the rule stored for a node
	Delete(nodeID string) error
}

// Format is the file encoding used by FileStore
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// DefaultFormat is used when no format is configured
const DefaultFormat = FormatTOML

// Formats lists the supported formats
func Formats() []Format {
	return []Format{FormatTOML, FormatYAML, FormatJSON, FormatXML}
}

// ParseFormat converts a configuration value into a Format. "yml" is
// accepted for YAML and the empty string selects DefaultFormat.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return DefaultFormat, nil
	case "yml":
		return FormatYAML, nil
	case FormatTOML, FormatYAML, FormatJSON, FormatXML:
		return f, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown store format %q", s)
}

// Ext returns the file extension for the format, including the dot
func (f Format) Ext() string {
	return "." + string(f)
}
