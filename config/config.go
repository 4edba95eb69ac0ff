package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// DefaultPath is read when no config file is requested explicitly. It may be missing.
const DefaultPath = "./config.yaml"

// EnvPrefix prefixes every environment variable, e.g. MOCKERINO_PORT.
const EnvPrefix = "MOCKERINO"

type (
	// Config holds the settings of a mockerino process
	Config struct {
		Host          string   `yaml:"host" envconfig:"HOST"`
		Port          int      `yaml:"port" envconfig:"PORT"`
		AdminPort     int      `yaml:"-" envconfig:"ADMIN_PORT"`
		AdminBasePath string   `yaml:"adminBasePath" envconfig:"ADMIN_BASE_PATH"`
		BaseDir       string   `yaml:"baseDir" envconfig:"BASE_DIR"`
		FileRoot      string   `yaml:"fileRoot" envconfig:"FILE_ROOT"`
		LogLevel      string   `yaml:"logLevel" envconfig:"LOG_LEVEL"`
		LogFormat     string   `yaml:"logFormat" envconfig:"LOG_FORMAT"`
		MaxProcs      int      `yaml:"maxProcs" envconfig:"MAX_PROCS"`
		Ignore        []string `yaml:"ignore" envconfig:"IGNORE"`

		// adminPortSet distinguishes an explicit 0, which disables the admin app,
		// from an absent value.
		adminPortSet bool
	}

	fileConfig struct {
		Config    `yaml:",inline"`
		AdminPort *int `yaml:"adminPort"`
	}
)

// Load reads the config file at path, overlays the environment and fills in
// defaults. explicit tells whether path was asked for; only then is a missing
// file an error.
func Load(path string, explicit bool) (*Config, error) {
	cfg := &Config{}

	if err := readFile(cfg, path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_ADMIN_PORT"); ok {
		cfg.adminPortSet = true
	}

	cfg.ApplyDefaults()

	return cfg, nil
}

// Default returns a Config holding only defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()

	return cfg
}

func readFile(cfg *Config, path string) error {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}

	fc := fileConfig{}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	*cfg = fc.Config
	if fc.AdminPort != nil {
		cfg.AdminPort = *fc.AdminPort
		cfg.adminPortSet = true
	}

	return nil
}

// SetAdminPort sets the admin port, 0 disables the admin app.
func (c *Config) SetAdminPort(port int) {
	c.AdminPort = port
	c.adminPortSet = true
}

// ApplyDefaults fills unset fields
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 3000
	}
	if c.AdminPort == 0 && !c.adminPortSet {
		c.AdminPort = 3001
	}
	if c.AdminBasePath == "" {
		c.AdminBasePath = "/mockerino"
	}
	if c.BaseDir == "" {
		c.BaseDir = "./spec"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// Validate checks the settings for values the server cannot run with
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.AdminPort < 0 || c.AdminPort > 65535 {
		return fmt.Errorf("adminPort must be between 0 and 65535, got %d", c.AdminPort)
	}
	if c.AdminPort == c.Port {
		return fmt.Errorf("adminPort must differ from port %d", c.Port)
	}
	if !strings.HasPrefix(c.AdminBasePath, "/") {
		return fmt.Errorf("adminBasePath must start with '/'")
	}
	if strings.TrimSpace(c.BaseDir) == "" {
		return errors.New("baseDir is required")
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("logFormat must be 'text' or 'json'")
	}

	if c.MaxProcs < 0 {
		return fmt.Errorf("maxProcs must not be negative")
	}

	for _, p := range c.Ignore {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("ignore pattern %q is invalid", p)
		}
	}

	return nil
}
