// Package config loads settings for the while command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/sergev/while/parser"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "WHILE_CONFIG"

// FileName is the config file looked up in the user's home directory.
const FileName = ".while.yaml"

// Config holds the defaults of the while command. Command-line flags take
// precedence over every field.
type Config struct {
	Format  string `yaml:"format"`  // sexpr or yaml
	Entry   string `yaml:"entry"`   // grammar entry point for parse
	Color   bool   `yaml:"color"`   // colored diagnostics
	History string `yaml:"history"` // REPL history file, empty to disable
}

// Default returns the built-in settings.
func Default() Config {
	c := Config{
		Format: "sexpr",
		Entry:  "statement",
		Color:  true,
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		c.History = filepath.Join(home, ".while_history")
	}
	return c
}

// Path returns the config file to use: explicit if set, then $WHILE_CONFIG,
// then ~/.while.yaml.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads the config file at path over the defaults. A missing file is
// not an error unless required is set.
func Load(path string, required bool) (Config, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return conf, nil
		}
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return conf, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Format {
	case "sexpr", "yaml":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if !slices.Contains(parser.Entries, parser.Entry(c.Entry)) {
		return fmt.Errorf("unknown entry %q", c.Entry)
	}
	return nil
}
