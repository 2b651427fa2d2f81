package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/tokenrule/pkg/errors"
	"github.com/arthur-debert/tokenrule/pkg/logging"
)

// EnvPrefix is the prefix of environment variables read by the loader
const EnvPrefix = "TOKENRULE_"

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigPath is an explicit config file; it must exist when set.
	// When empty, the user config under XDG_CONFIG_HOME is used if present.
	ConfigPath string

	// Overrides are applied last, e.g. values from command line flags
	Overrides map[string]interface{}
}

// LoadConfiguration builds the configuration from all layers and validates it
func LoadConfiguration(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config.loader")
	k := koanf.New(".")
	xdg.Reload()

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	knownKeys := normalizedKeys(k.Keys())

	// 2. User config file
	path, explicit := opts.ConfigPath, opts.ConfigPath != ""
	if !explicit {
		path = findUserConfig()
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if explicit {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", path)
			}
		} else {
			if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config from %s", path)
			}
			logger.Debug().Str("path", path).Msg("Loaded config file")
		}
	}

	// 3. Environment, mapped onto known keys only
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		name := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return knownKeys[name]
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findUserConfig returns the first existing user config file, or ""
func findUserConfig() string {
	dir := filepath.Dir(DefaultConfigPath())
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// normalizedKeys maps each key with dots and underscores folded to
// underscores (the shape of an env var name) back to the real key.
func normalizedKeys(keys []string) map[string]string {
	m := make(map[string]string, len(keys))
	for _, key := range keys {
		m[strings.ReplaceAll(key, ".", "_")] = key
	}
	return m
}
