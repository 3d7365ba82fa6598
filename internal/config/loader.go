package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".vikibot"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// fileConfig is the YAML schema of the configuration file. It is kept
// separate from Config so durations can be written as "1s" and so the
// merge can distinguish "absent" from "zero".
type fileConfig struct {
	APIURL            string     `yaml:"api_url"`
	UserAgent         string     `yaml:"user_agent"`
	Username          string     `yaml:"username"`
	Password          string     `yaml:"password"`
	Webhooks          Webhooks   `yaml:"webhooks"`
	Pages             Pages      `yaml:"pages"`
	Categories        Categories `yaml:"categories"`
	MinStubWords      int        `yaml:"min_stub_words"`
	ShortlistMaxBytes int64      `yaml:"shortlist_max_bytes"`
	EditInterval      string     `yaml:"edit_interval"`
	QueryLimit        int        `yaml:"query_limit"`
	Timezone          string     `yaml:"timezone"`
	SPARQLEndpoint    string     `yaml:"sparql_endpoint"`
}

// Load builds the effective configuration: defaults, overlaid with the
// configuration file (if any), overlaid with environment variables, and
// finally the user-space page names derived from the username.
//
// If path is empty, the file is searched with FindConfigFile and its
// absence is not an error; an explicitly given path must exist.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	explicit := path != ""
	found := FindConfigFile(path)

	switch {
	case found != "":
		if err := loadFile(cfg, found); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
	case explicit:
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	applyEnv(cfg)
	cfg.derivePages()

	return cfg, nil
}

// loadFile overlays the YAML file at path onto cfg.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return ErrConfigNotFound
		}
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	setString(&cfg.APIURL, fc.APIURL)
	setString(&cfg.UserAgent, fc.UserAgent)
	setString(&cfg.Username, fc.Username)
	setString(&cfg.Password, fc.Password)
	setString(&cfg.Webhooks.Stats, fc.Webhooks.Stats)
	setString(&cfg.Webhooks.Shutdown, fc.Webhooks.Shutdown)
	setString(&cfg.Pages.Stats, fc.Pages.Stats)
	setString(&cfg.Pages.Archive, fc.Pages.Archive)
	setString(&cfg.Pages.Shortlist, fc.Pages.Shortlist)
	setString(&cfg.Pages.Log, fc.Pages.Log)
	setString(&cfg.Categories.Generic, fc.Categories.Generic)
	setString(&cfg.Categories.Male, fc.Categories.Male)
	setString(&cfg.Categories.Female, fc.Categories.Female)
	setString(&cfg.Timezone, fc.Timezone)
	setString(&cfg.SPARQLEndpoint, fc.SPARQLEndpoint)

	if fc.MinStubWords != 0 {
		cfg.MinStubWords = fc.MinStubWords
	}
	if fc.ShortlistMaxBytes != 0 {
		cfg.ShortlistMaxBytes = fc.ShortlistMaxBytes
	}
	if fc.QueryLimit != 0 {
		cfg.QueryLimit = fc.QueryLimit
	}
	if fc.EditInterval != "" {
		d, err := time.ParseDuration(fc.EditInterval)
		if err != nil {
			return fmt.Errorf("invalid edit_interval: %w", err)
		}
		cfg.EditInterval = d
	}

	return nil
}

// setString assigns value to dst unless value is empty.
func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// applyEnv overlays secrets from the environment. Environment values
// win over the file so deployments can keep credentials out of it.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvPassword); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv(EnvStatsWebhook); v != "" {
		cfg.Webhooks.Stats = v
	}
	if v := os.Getenv(EnvShutdownWebhook); v != "" {
		cfg.Webhooks.Shutdown = v
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .vikibot in the current directory
// 3. Look for .vikibot in the user's home directory
//
// Returns the path to the configuration file if found, or empty string
// if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
