package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration.
type Config struct {
	LVGLPath   string    `yaml:"lvglPath" toml:"lvglPath" json:"lvglPath"`
	OutputPath string    `yaml:"outputPath" toml:"outputPath" json:"outputPath"`
	Prefix     string    `yaml:"prefix" toml:"prefix" json:"prefix"`
	Blacklist  []string  `yaml:"blacklist" toml:"blacklist" json:"blacklist"`
	Templates  Templates `yaml:"templates" toml:"templates" json:"templates"`
	Frontend   Frontend  `yaml:"frontend" toml:"frontend" json:"frontend"`
}

// Templates holds the template file paths. An empty path selects the
// built-in template.
type Templates struct {
	Header   string `yaml:"header" toml:"header" json:"header"`
	Source   string `yaml:"source" toml:"source" json:"source"`
	FuncDecl string `yaml:"funcDecl" toml:"funcDecl" json:"funcDecl"`
	FuncDef  string `yaml:"funcDef" toml:"funcDef" json:"funcDef"`
}

// Frontend configures the external C front-end invocation.
type Frontend struct {
	Command  string   `yaml:"command" toml:"command" json:"command"`
	Args     []string `yaml:"args" toml:"args" json:"args"`
	FakeLibC string   `yaml:"fakeLibc" toml:"fakeLibc" json:"fakeLibc"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Prefix:    DefaultPrefix,
		Blacklist: DefaultBlacklist(),
	}
}

// LoadFile loads configuration from a file (YAML, TOML, or JSON based on
// extension) and merges it over the current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var loaded Config
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing TOML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		// Try YAML first, then TOML, then JSON
		if yaml.Unmarshal(data, &loaded) != nil {
			loaded = Config{}
			if toml.Unmarshal(data, &loaded) != nil {
				loaded = Config{}
				if json.Unmarshal(data, &loaded) != nil {
					return errors.New("unable to parse config as YAML, TOML, or JSON")
				}
			}
		}
	}

	c.merge(&loaded)
	return nil
}

// merge merges the loaded config into the current config. Absent fields
// keep their current values; a present but empty blacklist clears the
// default one.
func (c *Config) merge(loaded *Config) {
	if loaded.LVGLPath != "" {
		c.LVGLPath = loaded.LVGLPath
	}
	if loaded.OutputPath != "" {
		c.OutputPath = loaded.OutputPath
	}
	if loaded.Prefix != "" {
		c.Prefix = loaded.Prefix
	}
	if loaded.Blacklist != nil {
		c.Blacklist = loaded.Blacklist
	}
	if loaded.Templates.Header != "" {
		c.Templates.Header = loaded.Templates.Header
	}
	if loaded.Templates.Source != "" {
		c.Templates.Source = loaded.Templates.Source
	}
	if loaded.Templates.FuncDecl != "" {
		c.Templates.FuncDecl = loaded.Templates.FuncDecl
	}
	if loaded.Templates.FuncDef != "" {
		c.Templates.FuncDef = loaded.Templates.FuncDef
	}
	if loaded.Frontend.Command != "" {
		c.Frontend.Command = loaded.Frontend.Command
	}
	if loaded.Frontend.Args != nil {
		c.Frontend.Args = loaded.Frontend.Args
	}
	if loaded.Frontend.FakeLibC != "" {
		c.Frontend.FakeLibC = loaded.Frontend.FakeLibC
	}
}

// Validate checks that the fields required for a generation run are set.
func (c *Config) Validate() error {
	if c.LVGLPath == "" {
		return errors.New("lvgl path is required")
	}
	if c.OutputPath == "" {
		return errors.New("output path is required")
	}
	if c.Frontend.Command == "" {
		return errors.New("front-end command is required")
	}
	return nil
}
