package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"

	"github.com/docker/multiagent/pkg/team"
)

const (
	DefaultAppName   = "First_Application_To_Test"
	DefaultUserID    = "User_1"
	DefaultSessionID = "Session_001"
)

// Config holds everything a run can be tuned with. Every field is optional in
// the YAML file; missing ones keep their default.
type Config struct {
	AppName   string       `yaml:"app_name,omitempty"`
	UserID    string       `yaml:"user_id,omitempty"`
	SessionID string       `yaml:"session_id,omitempty"`
	Agent     string       `yaml:"agent,omitempty"`
	Models    ModelsConfig `yaml:"models,omitempty"`
	// MemoryDB is a SQLite file keeping memories across runs. Empty keeps them in process.
	MemoryDB string `yaml:"memory_db,omitempty"`
}

type ModelsConfig struct {
	Root       string `yaml:"root,omitempty"`
	Specialist string `yaml:"specialist,omitempty"`
}

func Default() *Config {
	return &Config{
		AppName:   DefaultAppName,
		UserID:    DefaultUserID,
		SessionID: DefaultSessionID,
		Agent:     team.RootAgentName,
		Models: ModelsConfig{
			Root:       team.DefaultRootModel,
			Specialist: team.DefaultSpecialistModel,
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := Parse(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, leaving fields absent from data untouched.
// Unknown fields are rejected.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return fmt.Errorf("parsing config file\n%s", yaml.FormatError(err, false, true))
	}
	return nil
}

// Save writes cfg as YAML to path, replacing any existing file atomically.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks that every identifier is set and that Agent names one of
// the declared agents.
func (c *Config) Validate() error {
	var errs []error

	for _, field := range []struct {
		name, value string
	}{
		{"app_name", c.AppName},
		{"user_id", c.UserID},
		{"session_id", c.SessionID},
		{"agent", c.Agent},
		{"models.root", c.Models.Root},
		{"models.specialist", c.Models.Specialist},
	} {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", field.name))
		}
	}

	if c.Agent != "" {
		var names []string
		for _, spec := range team.Declarations() {
			names = append(names, spec.Name)
		}
		if !slices.Contains(names, c.Agent) {
			errs = append(errs, fmt.Errorf("unknown agent %q (available agents: %s)", c.Agent, strings.Join(names, ", ")))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) TeamModels() team.Models {
	return team.Models{Root: c.Models.Root, Specialist: c.Models.Specialist}
}
