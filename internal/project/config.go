package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigFile marks a wren project root.
const ConfigFile = "wren.yml"

// Config holds project settings read from wren.yml.
type Config struct {
	Name      string // project name, defaults to the root directory name
	Module    string // Go module path of the generated app
	APIPrefix string // route prefix for generated handlers, e.g. /api
}

// FindRoot walks up from dir looking for wren.yml and returns the directory
// containing it.
func FindRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(abs, ConfigFile)); err == nil {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("%s not found. Are you in a wren project directory?", ConfigFile)
		}
		abs = parent
	}
}

// LoadConfig reads wren.yml from root. Environment variables prefixed with
// WREN_ override file values.
func LoadConfig(root string) (*Config, error) {
	if _, err := os.Stat(filepath.Join(root, ConfigFile)); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s not found in %s. Are you in a wren project directory?", ConfigFile, root)
	}

	v := viper.New()
	v.SetConfigName("wren")
	v.SetConfigType("yaml")
	v.AddConfigPath(root)

	v.AutomaticEnv()
	v.SetEnvPrefix("WREN")

	v.SetDefault("project.api_prefix", "/api")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	cfg := &Config{
		Name:      v.GetString("project.name"),
		Module:    v.GetString("project.module"),
		APIPrefix: v.GetString("project.api_prefix"),
	}

	if cfg.Name == "" {
		cfg.Name = filepath.Base(root)
	}
	if cfg.Module == "" {
		return nil, fmt.Errorf("project.module not specified in %s", ConfigFile)
	}

	return cfg, nil
}
