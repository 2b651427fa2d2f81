package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tokenrule/pkg/datastore"
	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/rules"
	"github.com/arthur-debert/tokenrule/pkg/testutil"
	"github.com/arthur-debert/tokenrule/pkg/types"
)

// isolate points the XDG directories at empty temp dirs
func isolate(t *testing.T) string {
	return testutil.NewEnv(t).Root
}

func TestLoadConfiguration(t *testing.T) {
	t.Run("defaults_only", func(t *testing.T) {
		dir := isolate(t)

		cfg, err := LoadConfiguration(LoadOptions{})
		require.NoError(t, err)

		assert.Equal(t, types.DefaultDraft(), cfg.DraftDefaults())
		assert.Equal(t, rules.EngineECMAScript, cfg.Engine())
		assert.Equal(t, datastore.FormatTOML, cfg.StoreFormat())
		assert.Equal(t, filepath.Join(dir, "data", "tokenrule", "rules"), cfg.StoreDir())
		assert.Equal(t, 0, cfg.Logging.Verbosity)
	})

	t.Run("user_toml_file", func(t *testing.T) {
		dir := isolate(t)
		testutil.WriteFile(t, filepath.Join(dir, "config", "tokenrule", "config.toml"), `
[draft]
case_sensitivity = "ignore"
multiline = true

[draft.token_range]
enabled = true
to = 12

[store]
format = "yaml"
`)

		cfg, err := LoadConfiguration(LoadOptions{})
		require.NoError(t, err)

		d := cfg.DraftDefaults()
		assert.Equal(t, types.CaseIgnore, d.CaseSensitivity)
		assert.True(t, d.Multiline)
		assert.Equal(t, types.TokenRange{Enabled: true, From: 0, To: 12}, d.TokenRange)
		assert.Equal(t, datastore.FormatYAML, cfg.StoreFormat())
	})

	t.Run("explicit_yaml_file", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "custom.yaml")
		testutil.WriteFile(t, path, `
draft:
  expression_type: literal
  multiline: true
validation:
  engine: re2
`)

		cfg, err := LoadConfiguration(LoadOptions{ConfigPath: path})
		require.NoError(t, err)

		d := cfg.DraftDefaults()
		assert.Equal(t, types.ExpressionLiteral, d.ExpressionType)
		assert.False(t, d.Multiline, "literal lock applies to configured defaults")
		assert.False(t, d.DotAll)
		assert.Equal(t, rules.EngineRE2, cfg.Engine())
	})

	t.Run("missing_explicit_file", func(t *testing.T) {
		dir := isolate(t)
		_, err := LoadConfiguration(LoadOptions{ConfigPath: filepath.Join(dir, "nope.toml")})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed_file", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "bad.toml")
		testutil.WriteFile(t, path, "[draft\nexpression_type = ")

		_, err := LoadConfiguration(LoadOptions{ConfigPath: path})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("env_overrides_file", func(t *testing.T) {
		dir := isolate(t)
		testutil.WriteFile(t, filepath.Join(dir, "config", "tokenrule", "config.toml"), `
[store]
format = "yaml"
`)
		t.Setenv("TOKENRULE_STORE_FORMAT", "json")
		t.Setenv("TOKENRULE_DRAFT_TOKEN_RANGE_FROM", "150")
		t.Setenv("TOKENRULE_LOGGING_VERBOSITY", "2")
		t.Setenv("TOKENRULE_NOT_A_KEY", "ignored")

		cfg, err := LoadConfiguration(LoadOptions{})
		require.NoError(t, err)

		assert.Equal(t, datastore.FormatJSON, cfg.StoreFormat())
		assert.Equal(t, 99, cfg.DraftDefaults().TokenRange.From, "bounds are clamped")
		assert.Equal(t, 2, cfg.Logging.Verbosity)
	})

	t.Run("overrides_win", func(t *testing.T) {
		isolate(t)
		t.Setenv("TOKENRULE_STORE_DIR", "/from/env")

		cfg, err := LoadConfiguration(LoadOptions{
			Overrides: map[string]interface{}{"store.dir": "/from/flag"},
		})
		require.NoError(t, err)
		assert.Equal(t, "/from/flag", cfg.StoreDir())
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Draft:      DraftConfig{ExpressionType: "regular", CaseSensitivity: "match"},
			Validation: ValidationConfig{Engine: "ecmascript"},
			Store:      StoreConfig{Format: "toml"},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad_expression_type", func(c *Config) { c.Draft.ExpressionType = "glob" }},
		{"bad_case", func(c *Config) { c.Draft.CaseSensitivity = "sometimes" }},
		{"bad_engine", func(c *Config) { c.Validation.Engine = "pcre" }},
		{"bad_format", func(c *Config) { c.Store.Format = "ini" }},
		{"negative_verbosity", func(c *Config) { c.Logging.Verbosity = -1 }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
		})
	}
}

func TestLoadConfiguration_InvalidEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TOKENRULE_DRAFT_CASE_SENSITIVITY", "sometimes")

	_, err := LoadConfiguration(LoadOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}
