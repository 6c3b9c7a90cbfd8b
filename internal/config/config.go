// Package config loads the server configuration file.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/nhdewitt/httpcore/internal/log"
)

const (
	DefaultHost = "localhost"
	DefaultPort = 42069
)

type Config struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	LogLevel       string `yaml:"logLevel"`
	JSONLogs       bool   `yaml:"jsonLogs"`
	NotFoundBody   string `yaml:"notFoundBody"`
	BadRequestBody string `yaml:"badRequestBody"`
	// SilentParseErrors closes malformed connections without a 400.
	SilentParseErrors bool `yaml:"silentParseErrors"`
}

func Default() *Config {
	return &Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		LogLevel:       "info",
		NotFoundBody:   "404",
		BadRequestBody: "400",
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("host must be set"))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
