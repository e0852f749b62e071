package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileEnv names the optional YAML config file.
const ConfigFileEnv = "RELAY_CONFIG"

// envKeys are the environment variables read into Config. Anything else in
// the environment is ignored.
var envKeys = map[string]string{
	"TBA_API_KEY":      "tba_api_key",
	"TBA_BASE_URL":     "tba_base_url",
	"PORT":             "port",
	"PATH_PREFIX":      "path_prefix",
	"DISPLAY_TIMEZONE": "display_timezone",
	"LOG_LEVEL":        "log_level",
	"LOG_FORMAT":       "log_format",
}

// Load layers, lowest precedence first:
//  1. defaults (New())
//  2. YAML file named by RELAY_CONFIG
//  3. environment variables
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("", ".", func(s string) string {
		return envKeys[strings.ToUpper(s)]
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
