package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/tokenrule/pkg/datastore"
	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/rules"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

// AppDirName is the directory name used under the XDG base directories
const AppDirName = "tokenrule"

// Config is the complete tokenrule configuration
type Config struct {
	Draft      DraftConfig      `koanf:"draft"`
	Validation ValidationConfig `koanf:"validation"`
	Store      StoreConfig      `koanf:"store"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// DraftConfig holds the initial values of a new draft
type DraftConfig struct {
	ExpressionType       string           `koanf:"expression_type"`
	CaseSensitivity      string           `koanf:"case_sensitivity"`
	TokenRange           types.TokenRange `koanf:"token_range"`
	CanonicalEquivalence bool             `koanf:"canonical_equivalence"`
	DotAll               bool             `koanf:"dot_all"`
	Multiline            bool             `koanf:"multiline"`
	UnixLines            bool             `koanf:"unix_lines"`
}

// ValidationConfig controls pattern validation
type ValidationConfig struct {
	Engine string `koanf:"engine"`
}

// StoreConfig controls where committed rules are written
type StoreConfig struct {
	Dir    string `koanf:"dir"`
	Format string `koanf:"format"`
}

// LoggingConfig holds the default log verbosity
type LoggingConfig struct {
	Verbosity int `koanf:"verbosity"`
}

// Validate checks enum values and formats
func (c *Config) Validate() error {
	if _, err := types.ParseExpressionType(c.Draft.ExpressionType); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid draft.expression_type")
	}
	if _, err := types.ParseCaseSensitivity(c.Draft.CaseSensitivity); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid draft.case_sensitivity")
	}
	if _, err := rules.ParseEngine(c.Validation.Engine); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid validation.engine")
	}
	if _, err := datastore.ParseFormat(c.Store.Format); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid store.format")
	}
	if c.Logging.Verbosity < 0 {
		return errors.Newf(errors.ErrConfigValid, "logging.verbosity must not be negative, got %d", c.Logging.Verbosity)
	}
	return nil
}

// DraftDefaults returns the configured initial draft with the draft
// invariants applied. Call Validate first.
func (c *Config) DraftDefaults() types.Draft {
	d := types.DefaultDraft()
	if t, err := types.ParseExpressionType(c.Draft.ExpressionType); err == nil {
		d.ExpressionType = t
	}
	if cs, err := types.ParseCaseSensitivity(c.Draft.CaseSensitivity); err == nil {
		d.CaseSensitivity = cs
	}
	d.TokenRange = c.Draft.TokenRange
	d.CanonicalEquivalence = c.Draft.CanonicalEquivalence
	d.DotAll = c.Draft.DotAll
	d.Multiline = c.Draft.Multiline
	d.UnixLines = c.Draft.UnixLines
	return rules.Normalize(d)
}

// Engine returns the configured validation engine
func (c *Config) Engine() rules.Engine {
	e, err := rules.ParseEngine(c.Validation.Engine)
	if err != nil {
		return rules.DefaultEngine
	}
	return e
}

// StoreFormat returns the configured store format
func (c *Config) StoreFormat() datastore.Format {
	f, err := datastore.ParseFormat(c.Store.Format)
	if err != nil {
		return datastore.DefaultFormat
	}
	return f
}

// StoreDir returns the rule directory, defaulting to the XDG data home
func (c *Config) StoreDir() string {
	if c.Store.Dir != "" {
		return c.Store.Dir
	}
	return filepath.Join(xdg.DataHome, AppDirName, "rules")
}

// DefaultConfigPath returns the user config file location
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, "config.toml")
}
