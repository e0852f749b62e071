// Package config loads process configuration from defaults, an optional YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AdamBeresnev/tba-match-widget/internal/tba"
)

// EventTimezone makes times display in each event's own timezone.
const EventTimezone = "event"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// APIKey is sent as X-TBA-Auth-Key. It is not validated locally.
	APIKey  string `koanf:"tba_api_key"`
	BaseURL string `koanf:"tba_base_url"`

	Port       int    `koanf:"port"`
	PathPrefix string `koanf:"path_prefix"`

	// DisplayTimezone is an IANA name, "Local", or "event".
	DisplayTimezone string `koanf:"display_timezone"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

func New() *Config {
	return &Config{
		BaseURL:         tba.DefaultBaseURL,
		Port:            3001,
		PathPrefix:      "/api/TBA-matches",
		DisplayTimezone: "Local",
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Location resolves DisplayTimezone. For "event" it returns time.Local,
// which is used when an event reports no timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.DisplayTimezone == "" || c.DisplayTimezone == "Local" || c.UseEventTimezone() {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("%w: display_timezone %q: %v", ErrInvalidConfig, c.DisplayTimezone, err)
	}
	return loc, nil
}

func (c *Config) UseEventTimezone() bool {
	return strings.EqualFold(c.DisplayTimezone, EventTimezone)
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: tba_base_url must not be empty", ErrInvalidConfig)
	}
	if !strings.HasPrefix(c.PathPrefix, "/") {
		return fmt.Errorf("%w: path_prefix must start with /", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}
