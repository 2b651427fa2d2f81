package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Env is an isolated set of XDG base directories under a temp dir
type Env struct {
	Root       string
	ConfigHome string
	DataHome   string
	StateHome  string

	// RulesDir is where the default file store keeps rules
	RulesDir string
	// ConfigFile is the default user config file location
	ConfigFile string
}

// NewEnv points the XDG variables at a fresh temp directory and disables
// colored output for the duration of the test
func NewEnv(t *testing.T) Env {
	t.Helper()
	root := t.TempDir()

	env := Env{
		Root:       root,
		ConfigHome: filepath.Join(root, "config"),
		DataHome:   filepath.Join(root, "data"),
		StateHome:  filepath.Join(root, "state"),
	}
	env.RulesDir = filepath.Join(env.DataHome, "tokenrule", "rules")
	env.ConfigFile = filepath.Join(env.ConfigHome, "tokenrule", "config.toml")

	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	t.Setenv("XDG_DATA_HOME", env.DataHome)
	t.Setenv("XDG_STATE_HOME", env.StateHome)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	t.Setenv("NO_COLOR", "1")
	return env
}

// WriteFile creates path with content, including parent directories
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
